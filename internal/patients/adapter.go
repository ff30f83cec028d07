package patients

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"smart-emr-server/internal/models"
)

// Adapter merges the local patient store with a secondary record source into
// one authoritative view. The local store is the trusted base; the secondary
// fetch is best-effort and never blocks rendering.
type Adapter struct {
	Repo   Repository
	Remote Source
	Log    zerolog.Logger
}

// NewAdapter creates an Adapter.
func NewAdapter(repo Repository, remote Source, log zerolog.Logger) *Adapter {
	return &Adapter{Repo: repo, Remote: remote, Log: log}
}

// LoadMergedPatients returns the merged patient view. Remote patients without
// a local match (by id, or case-insensitive trimmed name) are appended; for
// matched patients, remote visits are merged in unless a local visit already
// covers the same calendar day. Same-day visits from both sources collapse to
// the local one.
func (a *Adapter) LoadMergedPatients(ctx context.Context) ([]models.Patient, error) {
	local, err := a.Repo.LoadAll()
	if err != nil {
		return nil, err
	}

	var remote []models.Patient
	if a.Remote != nil {
		remote, err = a.Remote.FetchPatients(ctx)
		if err != nil {
			a.Log.Warn().Err(err).Msg("Remote patient source unavailable, using local view only")
			remote = nil
		}
	}

	merged := make([]models.Patient, len(local))
	copy(merged, local)

	for _, rp := range remote {
		idx := findMatch(merged, rp)
		if idx == -1 {
			merged = append(merged, rp)
			continue
		}
		mergeVisits(&merged[idx], rp.Visits)
	}

	return merged, nil
}

func findMatch(patients []models.Patient, candidate models.Patient) int {
	candName := normalizedName(candidate.Name)
	for i := range patients {
		if patients[i].ID == candidate.ID {
			return i
		}
		if candName != "" && normalizedName(patients[i].Name) == candName {
			return i
		}
	}
	return -1
}

func normalizedName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// mergeVisits appends incoming visits whose calendar day is not already
// present, then renumbers and recomputes the derived fields. The visit list is
// rebuilt rather than appended in place so the repository's copy is never
// mutated through a shared backing array.
func mergeVisits(patient *models.Patient, incoming models.VisitList) {
	days := make(map[string]bool, len(patient.Visits))
	for _, v := range patient.Visits {
		days[visitDay(v)] = true
	}

	var added models.VisitList
	for _, v := range incoming {
		if days[visitDay(v)] {
			continue
		}
		days[visitDay(v)] = true
		added = append(added, v)
	}
	if len(added) == 0 {
		return
	}

	visits := make(models.VisitList, 0, len(patient.Visits)+len(added))
	visits = append(visits, patient.Visits...)
	visits = append(visits, added...)
	patient.Visits = visits
	patient.RecomputeDerived()
}

func visitDay(v models.Visit) string {
	return v.Timestamp.UTC().Format("2006-01-02")
}
