package progress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyOverallProgress(t *testing.T) {
	targets := map[string]Target{
		"bp_systolic":  {Min: f(90), Max: f(120), LowerIsBetter: true},
		"bp_diastolic": {Min: f(60), Max: f(80), LowerIsBetter: true},
		"heart_rate":   {Min: f(60), Max: f(100), LowerIsBetter: true},
	}
	primary := []string{"bp_systolic", "bp_diastolic", "heart_rate"}

	t.Run("all metrics improving", func(t *testing.T) {
		first := map[string]float64{"bp_systolic": 160, "bp_diastolic": 100, "heart_rate": 90}
		last := map[string]float64{"bp_systolic": 125, "bp_diastolic": 82, "heart_rate": 78}
		got := ClassifyOverallProgress(first, last, primary, targets)
		require.NotNil(t, got)
		require.Equal(t, OverallImproving, *got)
	})

	t.Run("one of three improving is stable", func(t *testing.T) {
		first := map[string]float64{"bp_systolic": 160, "bp_diastolic": 80, "heart_rate": 70}
		last := map[string]float64{"bp_systolic": 125, "bp_diastolic": 90, "heart_rate": 85}
		got := ClassifyOverallProgress(first, last, primary, targets)
		require.NotNil(t, got)
		require.Equal(t, OverallStable, *got)
	})

	t.Run("nothing improving needs attention", func(t *testing.T) {
		first := map[string]float64{"bp_systolic": 120, "bp_diastolic": 80}
		last := map[string]float64{"bp_systolic": 150, "bp_diastolic": 95}
		got := ClassifyOverallProgress(first, last, primary, targets)
		require.NotNil(t, got)
		require.Equal(t, OverallNeedsAttention, *got)
	})

	t.Run("metric missing in one visit is skipped", func(t *testing.T) {
		first := map[string]float64{"bp_systolic": 160, "heart_rate": 90}
		last := map[string]float64{"bp_systolic": 125}
		got := ClassifyOverallProgress(first, last, primary, targets)
		require.NotNil(t, got)
		require.Equal(t, OverallImproving, *got)
	})

	t.Run("no comparable metrics yields nil", func(t *testing.T) {
		first := map[string]float64{"glucose": 200}
		last := map[string]float64{"glucose": 150}
		require.Nil(t, ClassifyOverallProgress(first, last, primary, targets))
	})

	t.Run("zero baseline counts as considered but not improving", func(t *testing.T) {
		// A single comparable metric whose percent change is undefined still
		// produces a label, and it cannot be improving.
		first := map[string]float64{"bp_systolic": 0}
		last := map[string]float64{"bp_systolic": 120}
		got := ClassifyOverallProgress(first, last, primary, targets)
		require.NotNil(t, got)
		require.Equal(t, OverallNeedsAttention, *got)
	})

	t.Run("nil maps yield nil", func(t *testing.T) {
		require.Nil(t, ClassifyOverallProgress(nil, map[string]float64{}, primary, targets))
		require.Nil(t, ClassifyOverallProgress(map[string]float64{}, nil, primary, targets))
	})
}
