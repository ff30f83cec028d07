package progress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyValue(t *testing.T) {
	targets := map[string]Target{
		"bp_systolic": {Min: f(90), Max: f(120), Unit: "mmHg", LowerIsBetter: true},
		"peak_flow":   {Min: f(400), Unit: "L/min"},
	}

	tests := []struct {
		name  string
		value float64
		want  Status
	}{
		{"below min is critical", 85, StatusCritical},
		{"above max is critical", 130, StatusCritical},
		{"mid range is normal", 105, StatusNormal},
		{"just inside lower band is watch", 92, StatusWatch},
		{"lower band boundary is watch", 94.5, StatusWatch},
		{"just above lower band is normal", 95, StatusNormal},
		{"upper band boundary is watch", 115.5, StatusWatch},
		{"just below upper band is normal", 115, StatusNormal},
		{"exactly min is watch", 90, StatusWatch},
		{"exactly max is watch", 120, StatusWatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.value
			require.Equal(t, tt.want, ClassifyValue("bp_systolic", &v, targets))
		})
	}

	t.Run("missing value is unknown", func(t *testing.T) {
		require.Equal(t, StatusUnknown, ClassifyValue("bp_systolic", nil, targets))
	})
	t.Run("missing target is unknown", func(t *testing.T) {
		v := 42.0
		require.Equal(t, StatusUnknown, ClassifyValue("glucose", &v, targets))
	})
	t.Run("open upper bound has no watch band", func(t *testing.T) {
		// Only Min is set, so anything at or above it is normal.
		v := 401.0
		require.Equal(t, StatusNormal, ClassifyValue("peak_flow", &v, targets))
		v = 350
		require.Equal(t, StatusCritical, ClassifyValue("peak_flow", &v, targets))
	})
}

func TestPercentChange(t *testing.T) {
	t.Run("drop from 160 to 125", func(t *testing.T) {
		first, last := 160.0, 125.0
		pct := PercentChange(&first, &last)
		require.NotNil(t, pct)
		require.InDelta(t, -21.9, *pct, 0.001)
	})
	t.Run("rise from 100 to 125", func(t *testing.T) {
		first, last := 100.0, 125.0
		pct := PercentChange(&first, &last)
		require.NotNil(t, pct)
		require.InDelta(t, 25.0, *pct, 0.001)
	})
	t.Run("zero baseline yields nil", func(t *testing.T) {
		first, last := 0.0, 50.0
		require.Nil(t, PercentChange(&first, &last))
	})
	t.Run("missing endpoints yield nil", func(t *testing.T) {
		v := 50.0
		require.Nil(t, PercentChange(nil, &v))
		require.Nil(t, PercentChange(&v, nil))
	})
	t.Run("negative baseline uses magnitude", func(t *testing.T) {
		first, last := -10.0, -5.0
		pct := PercentChange(&first, &last)
		require.NotNil(t, pct)
		require.InDelta(t, 50.0, *pct, 0.001)
	})
}

func TestIsImprovement(t *testing.T) {
	targets := map[string]Target{
		"glucose": {Min: f(70), Max: f(140), LowerIsBetter: true},
		"spo2":    {Min: f(95), Max: f(100), LowerIsBetter: false},
	}

	down, up := -5.0, 5.0
	require.True(t, IsImprovement("glucose", &down, targets))
	require.False(t, IsImprovement("glucose", &up, targets))
	require.True(t, IsImprovement("spo2", &up, targets))
	require.False(t, IsImprovement("spo2", &down, targets))
	require.False(t, IsImprovement("glucose", nil, targets))
	require.False(t, IsImprovement("unknown_metric", &down, targets))
}
