package progress

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveConditionProfile(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		p := ResolveConditionProfile("Hypertension")
		require.Equal(t, "Hypertension", p.Name)
		require.Equal(t, []string{"bp_systolic", "bp_diastolic"}, p.Primary)
	})

	t.Run("qualified diagnosis falls back to substring match", func(t *testing.T) {
		p := ResolveConditionProfile("Severe Type 2 Diabetes with complications")
		require.Equal(t, "Type 2 Diabetes", p.Name)
	})

	t.Run("case insensitive substring", func(t *testing.T) {
		p := ResolveConditionProfile("hypertension")
		require.Equal(t, "Hypertension", p.Name)
	})

	t.Run("partial label matches full condition name", func(t *testing.T) {
		p := ResolveConditionProfile("Asthma exacerbation")
		require.Equal(t, "Asthma", p.Name)
	})

	t.Run("unknown diagnosis resolves to default", func(t *testing.T) {
		p := ResolveConditionProfile("Flu")
		require.Equal(t, DefaultCondition, p.Name)
	})

	t.Run("empty diagnosis resolves to default", func(t *testing.T) {
		p := ResolveConditionProfile("")
		require.Equal(t, DefaultCondition, p.Name)
	})
}

func TestAutoDetectMetrics(t *testing.T) {
	t.Run("first seen order across visits", func(t *testing.T) {
		visits := []map[string]float64{
			{"weight": 80},
			{"glucose": 130, "heart_rate": 72},
		}
		// Within one visit keys follow the catalog order, so heart_rate
		// precedes glucose.
		require.Equal(t, []string{"weight", "heart_rate", "glucose"}, AutoDetectMetrics(visits))
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		visits := []map[string]float64{{"made_up": 1, "spo2": 97}}
		require.Equal(t, []string{"spo2"}, AutoDetectMetrics(visits))
	})

	t.Run("no visits", func(t *testing.T) {
		require.Nil(t, AutoDetectMetrics(nil))
	})
}
