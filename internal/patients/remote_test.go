package patients

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smart-emr-server/internal/models"
)

func TestCoerceNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"72 bpm", f64(72)},
		{"98.6 °F", f64(98.6)},
		{"  120  ", f64(120)},
		{"", nil},
		{"n/a", nil},
	}
	for _, tt := range tests {
		got := CoerceNumeric(tt.in)
		if tt.want == nil {
			require.Nil(t, got, "input %q", tt.in)
			continue
		}
		require.NotNil(t, got, "input %q", tt.in)
		require.Equal(t, *tt.want, *got, "input %q", tt.in)
	}
}

func f64(v float64) *float64 { return &v }

func TestParseBloodPressure(t *testing.T) {
	sys, dia := ParseBloodPressure("120/80 mmHg")
	require.NotNil(t, sys)
	require.NotNil(t, dia)
	require.Equal(t, 120.0, *sys)
	require.Equal(t, 80.0, *dia)

	sys, dia = ParseBloodPressure("not recorded")
	require.Nil(t, sys)
	require.Nil(t, dia)

	sys, dia = ParseBloodPressure("")
	require.Nil(t, sys)
	require.Nil(t, dia)
}

func TestFlattenMedication(t *testing.T) {
	require.Equal(t, "Metformin 500mg oral twice daily", FlattenMedication(models.EMRMedication{
		Name: "Metformin", Dose: "500mg", Route: "oral", Freq: "twice daily",
	}))
	require.Equal(t, "Aspirin", FlattenMedication(models.EMRMedication{Name: "Aspirin"}))
	require.Equal(t, "", FlattenMedication(models.EMRMedication{}))
}

func TestPatientsFromRecords(t *testing.T) {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	records := []models.EMRRecord{
		{
			BaseModel:   models.BaseModel{ID: "r1", CreatedAt: base},
			PatientName: "Sarah Johnson",
			PatientID:   "SAR-58-F-4821",
			EMRData: models.EMRData{
				Diagnosis: "Type 2 Diabetes",
				Vitals: models.EMRVitals{
					BloodPressure: "138/88 mmHg",
					HeartRate:     "82 bpm",
				},
				Medications:   []models.EMRMedication{{Name: "Metformin", Dose: "500mg"}},
				TreatmentPlan: "Start metformin",
				ICDCodes:      []models.ICDCodeEntry{{Code: "E11.9", Description: "Type 2 diabetes"}},
			},
		},
		{
			BaseModel:   models.BaseModel{ID: "r2", CreatedAt: base.AddDate(0, 1, 0)},
			PatientName: "Sarah Johnson",
			PatientID:   "SAR-58-F-4821",
			EMRData: models.EMRData{
				Diagnosis: "Type 2 Diabetes",
				Vitals:    models.EMRVitals{HeartRate: "76 bpm"},
			},
		},
		{
			BaseModel:   models.BaseModel{ID: "r3", CreatedAt: base.AddDate(0, 0, 10)},
			PatientName: "Walk In",
			EMRData:     models.EMRData{Vitals: models.EMRVitals{Temperature: "101.2 F"}},
		},
	}

	got := PatientsFromRecords(records)
	require.Len(t, got, 2)

	sarah := got[0]
	require.Equal(t, "SAR-58-F-4821", sarah.ID)
	require.Equal(t, 2, sarah.TotalVisits)
	require.Equal(t, "Type 2 Diabetes", sarah.Diagnosis)
	require.Equal(t, "E11.9 Type 2 diabetes", sarah.Visits[0].ICDCode)

	v1 := sarah.Visits[0]
	require.Equal(t, 1, v1.VisitNumber)
	require.Equal(t, 138.0, v1.MetricValues["bp_systolic"])
	require.Equal(t, 88.0, v1.MetricValues["bp_diastolic"])
	require.Equal(t, 82.0, v1.MetricValues["heart_rate"])
	require.Equal(t, []string{"Metformin 500mg"}, v1.Medications)
	require.Equal(t, "Start metformin", v1.Notes)
	require.Equal(t, models.VisitSourceRemote, v1.Source)

	walkIn := got[1]
	require.Equal(t, "Walk In", walkIn.Name)
	require.NotEmpty(t, walkIn.ID)
	require.Equal(t, 101.2, walkIn.Visits[0].MetricValues["temperature"])
}

func TestPatientsFromRecordsPartialBloodPressureDropped(t *testing.T) {
	records := []models.EMRRecord{{
		BaseModel:   models.BaseModel{ID: "r1", CreatedAt: time.Now()},
		PatientName: "Test Patient",
		EMRData: models.EMRData{
			Vitals: models.EMRVitals{BloodPressure: "120"},
		},
	}}

	got := PatientsFromRecords(records)
	require.Len(t, got, 1)
	require.NotContains(t, got[0].Visits[0].MetricValues, "bp_systolic")
	require.NotContains(t, got[0].Visits[0].MetricValues, "bp_diastolic")
}
