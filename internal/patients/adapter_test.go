package patients

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"smart-emr-server/internal/models"
)

type stubSource struct {
	patients []models.Patient
	err      error
}

func (s *stubSource) FetchPatients(ctx context.Context) ([]models.Patient, error) {
	return s.patients, s.err
}

func makePatient(id, name string, visitDays ...time.Time) models.Patient {
	p := models.Patient{ID: id, Name: name}
	for _, d := range visitDays {
		p.Visits = append(p.Visits, models.Visit{
			Date:         models.FormatVisitDate(d),
			Timestamp:    d,
			MetricValues: models.MetricMap{"heart_rate": 72},
			Source:       models.VisitSourceLocal,
		})
	}
	p.RecomputeDerived()
	return p
}

func TestLoadMergedPatientsRemoteOnlyPatientAppended(t *testing.T) {
	repo := NewMemoryRepository()
	local := makePatient("L1", "Sarah Johnson", time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(&local))

	remote := makePatient("R1", "Walk In", time.Date(2026, 1, 8, 9, 0, 0, 0, time.UTC))
	a := NewAdapter(repo, &stubSource{patients: []models.Patient{remote}}, zerolog.Nop())

	merged, err := a.LoadMergedPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, merged, 2)
	require.Equal(t, "L1", merged[0].ID)
	require.Equal(t, "R1", merged[1].ID)
}

func TestLoadMergedPatientsSameDayCollapsesToLocal(t *testing.T) {
	day := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository()
	local := makePatient("L1", "Sarah Johnson", day)
	local.Visits[0].Notes = "local note"
	require.NoError(t, repo.Upsert(&local))

	// Same patient matched by name, same calendar day at a different hour.
	remote := makePatient("R9", "sarah johnson", day.Add(5*time.Hour))
	remote.Visits[0].Source = models.VisitSourceRemote
	a := NewAdapter(repo, &stubSource{patients: []models.Patient{remote}}, zerolog.Nop())

	merged, err := a.LoadMergedPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, merged, 1)
	require.Equal(t, 1, merged[0].TotalVisits)
	require.Equal(t, "local note", merged[0].Visits[0].Notes)
	require.Equal(t, models.VisitSourceLocal, merged[0].Visits[0].Source)
}

func TestLoadMergedPatientsInterleavesAndRenumbers(t *testing.T) {
	repo := NewMemoryRepository()
	local := makePatient("L1", "Sarah Johnson",
		time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(&local))

	remote := makePatient("L1", "Sarah Johnson", time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC))
	a := NewAdapter(repo, &stubSource{patients: []models.Patient{remote}}, zerolog.Nop())

	merged, err := a.LoadMergedPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, merged, 1)

	p := merged[0]
	require.Equal(t, 3, p.TotalVisits)
	for i, v := range p.Visits {
		require.Equal(t, i+1, v.VisitNumber)
		if i > 0 {
			require.False(t, v.Timestamp.Before(p.Visits[i-1].Timestamp))
		}
	}
}

func TestLoadMergedPatientsIsIdempotent(t *testing.T) {
	repo := NewMemoryRepository()
	local := makePatient("L1", "Sarah Johnson", time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(&local))

	remote := makePatient("L1", "Sarah Johnson", time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC))
	a := NewAdapter(repo, &stubSource{patients: []models.Patient{remote}}, zerolog.Nop())

	first, err := a.LoadMergedPatients(context.Background())
	require.NoError(t, err)
	second, err := a.LoadMergedPatients(context.Background())
	require.NoError(t, err)
	require.Equal(t, first[0].TotalVisits, second[0].TotalVisits)
	require.Equal(t, 2, second[0].TotalVisits)
}

func TestLoadMergedPatientsRemoteFailureFallsBackToLocal(t *testing.T) {
	repo := NewMemoryRepository()
	local := makePatient("L1", "Sarah Johnson", time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(&local))

	a := NewAdapter(repo, &stubSource{err: errors.New("record store offline")}, zerolog.Nop())

	merged, err := a.LoadMergedPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, merged, 1)
	require.Equal(t, "L1", merged[0].ID)
}

func TestLoadMergedPatientsNoRemoteSource(t *testing.T) {
	repo := NewMemoryRepository()
	local := makePatient("L1", "Sarah Johnson", time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Upsert(&local))

	a := NewAdapter(repo, nil, zerolog.Nop())
	merged, err := a.LoadMergedPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, merged, 1)
}
