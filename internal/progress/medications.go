package progress

import "strings"

// MedStatus labels a medication's transition between two consecutive visits.
type MedStatus string

const (
	MedStarted   MedStatus = "started"
	MedContinued MedStatus = "continued"
	MedStopped   MedStatus = "stopped"
)

// MedChange is one medication with its transition label.
type MedChange struct {
	Name   string    `json:"name"`
	Status MedStatus `json:"status"`
}

func normalizeMed(m string) string {
	return strings.ToLower(strings.TrimSpace(m))
}

// DiffMedications compares the previous and current visits' medication lists.
// Each medication string is an opaque token compared case-insensitively after
// trimming. Current-visit medications come first in their original order,
// followed by stopped medications in their previous-visit order. With no
// previous visit every medication is started.
func DiffMedications(prevMeds, currMeds []string) []MedChange {
	prevSet := make(map[string]bool, len(prevMeds))
	for _, m := range prevMeds {
		prevSet[normalizeMed(m)] = true
	}
	currSet := make(map[string]bool, len(currMeds))
	for _, m := range currMeds {
		currSet[normalizeMed(m)] = true
	}

	result := make([]MedChange, 0, len(currMeds)+len(prevMeds))
	for _, m := range currMeds {
		status := MedStarted
		if prevSet[normalizeMed(m)] {
			status = MedContinued
		}
		result = append(result, MedChange{Name: m, Status: status})
	}
	for _, m := range prevMeds {
		if !currSet[normalizeMed(m)] {
			result = append(result, MedChange{Name: m, Status: MedStopped})
		}
	}
	return result
}
