package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smart-emr-server/internal/models"
	"smart-emr-server/internal/progress"
)

func demoHypertensionPatient() models.Patient {
	p := models.Patient{
		ID:        "ROB-64-M-7310",
		Name:      "Robert Smith",
		Diagnosis: "Hypertension",
	}
	visits := []struct {
		ts      time.Time
		metrics models.MetricMap
		meds    []string
	}{
		{time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
			models.MetricMap{"bp_systolic": 160, "bp_diastolic": 100, "heart_rate": 88},
			[]string{"Amlodipine 5mg"}},
		{time.Date(2026, 2, 4, 10, 0, 0, 0, time.UTC),
			models.MetricMap{"bp_systolic": 148, "bp_diastolic": 94},
			[]string{"Amlodipine 5mg", "Losartan 50mg"}},
		{time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
			models.MetricMap{"bp_systolic": 125, "bp_diastolic": 82, "heart_rate": 78},
			[]string{"Amlodipine 5mg", "Losartan 50mg"}},
	}
	for _, v := range visits {
		p.Visits = append(p.Visits, models.Visit{
			Date:         models.FormatVisitDate(v.ts),
			Timestamp:    v.ts,
			MetricValues: v.metrics,
			Medications:  v.meds,
		})
	}
	p.RecomputeDerived()
	return p
}

func TestBuildProgressSummary(t *testing.T) {
	summary := BuildProgressSummary(demoHypertensionPatient())

	require.Equal(t, "Hypertension", summary.Condition)
	require.False(t, summary.MetricsAutoDetected)
	require.Len(t, summary.Metrics, 2)

	sys := summary.Metrics[0]
	require.Equal(t, "bp_systolic", sys.Key)
	require.Equal(t, "Systolic BP", sys.Label)
	require.Equal(t, "mmHg", sys.Unit)
	require.Len(t, sys.Series, 3)
	require.NotNil(t, sys.First)
	require.NotNil(t, sys.Last)
	require.Equal(t, 160.0, *sys.First)
	require.Equal(t, 125.0, *sys.Last)
	require.NotNil(t, sys.PercentChange)
	require.InDelta(t, -21.9, *sys.PercentChange, 0.001)
	require.True(t, sys.IsImprovement)
	// Latest reading of 125 still exceeds the 120 target max.
	require.Equal(t, progress.StatusCritical, sys.Status)

	require.NotNil(t, summary.OverallProgress)
	require.Equal(t, progress.OverallImproving, *summary.OverallProgress)

	require.Len(t, summary.MedicationTimeline, 3)
	first := summary.MedicationTimeline[0]
	require.Equal(t, []progress.MedChange{
		{Name: "Amlodipine 5mg", Status: progress.MedStarted},
	}, first.Changes)
	second := summary.MedicationTimeline[1]
	require.Equal(t, []progress.MedChange{
		{Name: "Amlodipine 5mg", Status: progress.MedContinued},
		{Name: "Losartan 50mg", Status: progress.MedStarted},
	}, second.Changes)
}

func TestBuildProgressSummaryAutoDetectsMetrics(t *testing.T) {
	p := models.Patient{ID: "X1", Name: "Test", Diagnosis: "Flu"}
	ts := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	p.Visits = append(p.Visits, models.Visit{
		Date: models.FormatVisitDate(ts), Timestamp: ts,
		MetricValues: models.MetricMap{"glucose": 130, "phq9_score": 6},
	})
	p.RecomputeDerived()

	summary := BuildProgressSummary(p)
	require.Equal(t, progress.DefaultCondition, summary.Condition)
	require.True(t, summary.MetricsAutoDetected)
	require.Equal(t, "glucose", summary.Metrics[0].Key)
	// Auto-detected metrics have no target under the resolved profile.
	require.Equal(t, progress.StatusUnknown, summary.Metrics[0].Status)
}

func TestBuildProgressSummarySingleVisitHasNoOverall(t *testing.T) {
	p := demoHypertensionPatient()
	p.Visits = p.Visits[:1]
	p.RecomputeDerived()

	summary := BuildProgressSummary(p)
	require.Nil(t, summary.OverallProgress)
	require.Len(t, summary.MedicationTimeline, 1)
}
