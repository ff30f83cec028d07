package patients

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"smart-emr-server/internal/models"
	"smart-emr-server/internal/progress"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGeneratePatientID(t *testing.T) {
	id := GeneratePatientID("Sarah Johnson", "58", "Female")
	require.Regexp(t, regexp.MustCompile(`^SAR-58-F-\d{4}$`), id)

	id = GeneratePatientID("Al", "9", "male")
	require.Regexp(t, regexp.MustCompile(`^ALX-9-M-\d{4}$`), id)

	id = GeneratePatientID("", "", "")
	require.Regexp(t, regexp.MustCompile(`^UNK--U-\d{4}$`), id)
}

func TestRecordVisitRejectsAnonymousSubmission(t *testing.T) {
	b := NewBuilder(NewMemoryRepository())

	_, err := b.RecordVisit(VisitInput{Vitals: map[string]any{"heart_rate": 72}})
	require.ErrorIs(t, err, ErrNoIdentity)

	// Unknown id with no name has no retrieval path either.
	_, err = b.RecordVisit(VisitInput{PatientID: "NOPE-1"})
	require.ErrorIs(t, err, ErrNoIdentity)
}

func TestRecordVisitNewPatient(t *testing.T) {
	repo := NewMemoryRepository()
	b := NewBuilder(repo)
	b.now = fixedClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	result, err := b.RecordVisit(VisitInput{
		Name:      "Robert Smith",
		Age:       "64",
		Gender:    "Male",
		Diagnosis: "Hypertension",
		ICDCode:   "I10",
		Vitals: map[string]any{
			"bp_systolic":  160,
			"bp_diastolic": "100 mmHg",
			"heart_rate":   88.0,
			"notes_field":  "",
		},
		Medications: []string{"Amlodipine 5mg"},
	})
	require.NoError(t, err)
	require.True(t, result.IsNew)
	require.Equal(t, 1, result.VisitNumber)
	require.Contains(t, result.Message, "Robert Smith")

	p := result.Patient
	require.Equal(t, 1, p.TotalVisits)
	require.Equal(t, "01 Mar 2026", p.FirstVisitDate)

	v := p.Visits[0]
	require.Equal(t, 160.0, v.MetricValues["bp_systolic"])
	require.Equal(t, 100.0, v.MetricValues["bp_diastolic"])
	require.Equal(t, 88.0, v.MetricValues["heart_rate"])
	require.NotContains(t, v.MetricValues, "notes_field")
	require.Equal(t, models.VisitSourceLocal, v.Source)
}

func TestRecordVisitHypertensionCourse(t *testing.T) {
	repo := NewMemoryRepository()
	b := NewBuilder(repo)
	b.now = fixedClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	first, err := b.RecordVisit(VisitInput{
		Name: "Robert Smith", Age: "64", Gender: "Male",
		Diagnosis: "Hypertension",
		Vitals:    map[string]any{"bp_systolic": 160, "bp_diastolic": 100},
	})
	require.NoError(t, err)

	b.now = fixedClock(time.Date(2026, 4, 12, 9, 0, 0, 0, time.UTC))
	second, err := b.RecordVisit(VisitInput{
		PatientID: first.Patient.ID,
		Vitals:    map[string]any{"bp_systolic": 125, "bp_diastolic": 82},
	})
	require.NoError(t, err)
	require.False(t, second.IsNew)
	require.Equal(t, 2, second.VisitNumber)

	p := second.Patient
	require.Equal(t, 2, p.TotalVisits)
	for i, v := range p.Visits {
		require.Equal(t, i+1, v.VisitNumber)
	}
	// Diagnosis sticks from the first visit even though the follow-up did not
	// repeat it.
	require.Equal(t, "Hypertension", p.Diagnosis)

	profile := progress.ResolveConditionProfile(p.Diagnosis)
	fv := p.Visits[0].MetricValues["bp_systolic"]
	lv := p.Visits[1].MetricValues["bp_systolic"]
	pct := progress.PercentChange(&fv, &lv)
	require.NotNil(t, pct)
	require.InDelta(t, -21.9, *pct, 0.001)
	require.True(t, progress.IsImprovement("bp_systolic", pct, profile.Targets))

	overall := progress.ClassifyOverallProgress(
		p.Visits[0].MetricValues, p.Visits[1].MetricValues, profile.Primary, profile.Targets)
	require.NotNil(t, overall)
	require.Equal(t, progress.OverallImproving, *overall)
}

func TestRecordVisitBackdatedVisitIsReordered(t *testing.T) {
	repo := NewMemoryRepository()
	b := NewBuilder(repo)
	b.now = fixedClock(time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC))

	first, err := b.RecordVisit(VisitInput{
		Name: "Priya Sharma", Age: "34", Gender: "Female",
		Vitals: map[string]any{"phq9_score": 8},
	})
	require.NoError(t, err)

	// A later submission dated before the existing visit sorts first after
	// renumbering.
	second, err := b.RecordVisit(VisitInput{
		PatientID: first.Patient.ID,
		VisitDate: "2026-04-01",
		Vitals:    map[string]any{"phq9_score": 18},
	})
	require.NoError(t, err)

	p := second.Patient
	require.Equal(t, 2, p.TotalVisits)
	require.Equal(t, 18.0, p.Visits[0].MetricValues["phq9_score"])
	require.Equal(t, 1, p.Visits[0].VisitNumber)
	require.Equal(t, 8.0, p.Visits[1].MetricValues["phq9_score"])
	require.Equal(t, 2, p.Visits[1].VisitNumber)
}

func TestRecordVisitUnknownIDWithNameRegisters(t *testing.T) {
	repo := NewMemoryRepository()
	b := NewBuilder(repo)

	result, err := b.RecordVisit(VisitInput{
		PatientID: "EXT-100",
		Name:      "David Kumar",
		Vitals:    map[string]any{"peak_flow": 310},
	})
	require.NoError(t, err)
	require.True(t, result.IsNew)
	require.Equal(t, "EXT-100", result.Patient.ID)

	stored, err := repo.FindByID("EXT-100")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "David Kumar", stored.Name)
}
