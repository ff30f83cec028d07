package patients

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"smart-emr-server/internal/models"
)

// ErrNoIdentity is returned for a visit submission with neither a patient id
// nor a name. An anonymous patient record has no later retrieval path, so this
// is rejected outright rather than silently creating an "Unknown" patient.
var ErrNoIdentity = errors.New("visit submission has no patient id and no name")

// VisitInput is one visit submission: demographics for a possibly-new patient
// plus the encounter's vitals, medications and notes. Vitals are a sparse
// mapping; absent or empty fields are dropped, never coerced to zero.
type VisitInput struct {
	PatientID   string         `json:"patientId"`
	Name        string         `json:"name"`
	Age         string         `json:"age"`
	Gender      string         `json:"gender"`
	BloodGroup  string         `json:"bloodGroup"`
	Contact     string         `json:"contact"`
	Diagnosis   string         `json:"diagnosis"`
	ICDCode     string         `json:"icdCode"`
	Vitals      map[string]any `json:"vitals"`
	Medications []string       `json:"medications"`
	Notes       string         `json:"notes"`
	VisitDate   string         `json:"visitDate"` // optional YYYY-MM-DD override
}

// RecordResult is what a visit submission returns.
type RecordResult struct {
	IsNew       bool            `json:"isNew"`
	Patient     *models.Patient `json:"patient"`
	VisitNumber int             `json:"visitNumber"`
	Message     string          `json:"message"`
}

// Builder validates and shapes visit submissions into canonical visit records
// appended to a patient's history.
type Builder struct {
	Repo Repository

	// now is swappable in tests.
	now func() time.Time
}

// NewBuilder creates a Builder over the given repository.
func NewBuilder(repo Repository) *Builder {
	return &Builder{Repo: repo, now: time.Now}
}

// GeneratePatientID derives a patient id from demographics plus a random
// suffix, e.g. "SAR-58-F-4821".
func GeneratePatientID(name, age, gender string) string {
	nameCode := strings.ToUpper(strings.ReplaceAll(name, " ", ""))
	if nameCode == "" {
		nameCode = "UNK"
	}
	if len(nameCode) > 3 {
		nameCode = nameCode[:3]
	}
	for len(nameCode) < 3 {
		nameCode += "X"
	}
	genderInitial := "U"
	if gender != "" {
		genderInitial = strings.ToUpper(gender[:1])
	}
	hash := 1000 + rand.Intn(9000)
	return fmt.Sprintf("%s-%s-%s-%d", nameCode, age, genderInitial, hash)
}

// RecordVisit appends exactly one new visit. An existing patient is matched by
// id; otherwise a new patient is created. The patient's diagnosis and ICD code
// are overwritten only when the visit supplies non-empty values.
func (b *Builder) RecordVisit(input VisitInput) (*RecordResult, error) {
	if strings.TrimSpace(input.PatientID) == "" && strings.TrimSpace(input.Name) == "" {
		return nil, ErrNoIdentity
	}

	ts := b.now()
	if input.VisitDate != "" {
		if d, err := time.Parse("2006-01-02", input.VisitDate); err == nil {
			ts = d
		}
	}

	visit := models.Visit{
		Date:         models.FormatVisitDate(ts),
		Timestamp:    ts,
		MetricValues: shapeVitals(input.Vitals),
		Medications:  input.Medications,
		Notes:        input.Notes,
		Diagnosis:    input.Diagnosis,
		ICDCode:      input.ICDCode,
		Source:       models.VisitSourceLocal,
	}
	if visit.Medications == nil {
		visit.Medications = []string{}
	}

	// Returning patient
	if input.PatientID != "" {
		patient, err := b.Repo.FindByID(input.PatientID)
		if err != nil {
			return nil, err
		}
		if patient != nil {
			visit.VisitNumber = patient.TotalVisits + 1
			patient.Visits = append(patient.Visits, visit)
			if input.Diagnosis != "" {
				patient.Diagnosis = input.Diagnosis
			}
			if input.ICDCode != "" {
				patient.ICDCode = input.ICDCode
			}
			patient.RecomputeDerived()
			if err := b.Repo.Upsert(patient); err != nil {
				return nil, err
			}
			return &RecordResult{
				IsNew:       false,
				Patient:     patient,
				VisitNumber: visit.VisitNumber,
				Message:     fmt.Sprintf("Visit %d recorded for %s", visit.VisitNumber, patient.Name),
			}, nil
		}
		// Unknown id: fall through and register a new patient, but only if a
		// name was supplied to key it by.
		if strings.TrimSpace(input.Name) == "" {
			return nil, ErrNoIdentity
		}
	}

	// New patient
	id := input.PatientID
	if id == "" {
		id = GeneratePatientID(input.Name, input.Age, input.Gender)
	}
	visit.VisitNumber = 1
	patient := &models.Patient{
		ID:         id,
		Name:       input.Name,
		Age:        input.Age,
		Gender:     input.Gender,
		BloodGroup: input.BloodGroup,
		Contact:    input.Contact,
		Diagnosis:  input.Diagnosis,
		ICDCode:    input.ICDCode,
		Visits:     models.VisitList{visit},
	}
	patient.RecomputeDerived()
	if err := b.Repo.Upsert(patient); err != nil {
		return nil, err
	}
	return &RecordResult{
		IsNew:       true,
		Patient:     patient,
		VisitNumber: 1,
		Message:     fmt.Sprintf("New patient %s registered — ID: %s", patient.Name, id),
	}, nil
}

// shapeVitals drops empty values and coerces the rest to numbers. Unparseable
// entries are omitted rather than failing the submission.
func shapeVitals(raw map[string]any) models.MetricMap {
	vitals := make(models.MetricMap, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case float64:
			vitals[k] = val
		case int:
			vitals[k] = float64(val)
		case string:
			if n := CoerceNumeric(val); n != nil {
				vitals[k] = *n
			}
		}
	}
	return vitals
}
