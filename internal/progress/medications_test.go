package progress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffMedications(t *testing.T) {
	t.Run("started continued stopped", func(t *testing.T) {
		prev := []string{"Metformin 500mg", "Aspirin 75mg"}
		curr := []string{"metformin 500mg", "Atorvastatin 10mg"}

		changes := DiffMedications(prev, curr)
		require.Equal(t, []MedChange{
			{Name: "metformin 500mg", Status: MedContinued},
			{Name: "Atorvastatin 10mg", Status: MedStarted},
			{Name: "Aspirin 75mg", Status: MedStopped},
		}, changes)
	})

	t.Run("first visit marks everything started", func(t *testing.T) {
		changes := DiffMedications(nil, []string{"Sertraline 50mg"})
		require.Equal(t, []MedChange{{Name: "Sertraline 50mg", Status: MedStarted}}, changes)
	})

	t.Run("dose change is a distinct token", func(t *testing.T) {
		changes := DiffMedications([]string{"Metformin 500mg"}, []string{"Metformin 1000mg"})
		require.Equal(t, []MedChange{
			{Name: "Metformin 1000mg", Status: MedStarted},
			{Name: "Metformin 500mg", Status: MedStopped},
		}, changes)
	})

	t.Run("whitespace is trimmed before comparison", func(t *testing.T) {
		changes := DiffMedications([]string{" Aspirin 75mg "}, []string{"aspirin 75mg"})
		require.Equal(t, []MedChange{{Name: "aspirin 75mg", Status: MedContinued}}, changes)
	})

	t.Run("both empty", func(t *testing.T) {
		require.Empty(t, DiffMedications(nil, nil))
	})
}
