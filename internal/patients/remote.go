package patients

import (
	"context"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"smart-emr-server/internal/models"
)

// Source provides patients reconstructed from a secondary record store. A
// failed fetch is soft: callers proceed with the local view.
type Source interface {
	FetchPatients(ctx context.Context) ([]models.Patient, error)
}

// RecordSource reconstructs patients from consultation EMR records: one record
// becomes one visit, grouped per patient and reshaped into the canonical visit
// form (numeric vitals, flattened medication strings).
type RecordSource struct {
	DB *gorm.DB
}

// NewRecordSource creates a RecordSource over the EMR record store.
func NewRecordSource(db *gorm.DB) *RecordSource {
	return &RecordSource{DB: db}
}

func (s *RecordSource) FetchPatients(ctx context.Context) ([]models.Patient, error) {
	var records []models.EMRRecord
	if err := s.DB.WithContext(ctx).Order("created_at asc").Find(&records).Error; err != nil {
		return nil, err
	}
	return PatientsFromRecords(records), nil
}

// CoerceNumeric parses a vital string into a number, stripping units and any
// other non-numeric characters ("72 bpm" → 72). Nil when nothing parseable
// remains.
func CoerceNumeric(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseBloodPressure splits a combined reading like "120/80 mmHg" into
// systolic and diastolic values. Both nil when the string is not of that form.
func ParseBloodPressure(s string) (systolic, diastolic *float64) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(s), "mmhg", ""))
	parts := strings.Split(cleaned, "/")
	if len(parts) != 2 {
		return nil, nil
	}
	return CoerceNumeric(parts[0]), CoerceNumeric(parts[1])
}

// FlattenMedication collapses a structured medication into one display string.
func FlattenMedication(m models.EMRMedication) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{m.Name, m.Dose, m.Route, m.Freq} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func nameKey(name string) string {
	if name == "" {
		name = "Unknown"
	}
	return strings.ReplaceAll(strings.TrimSpace(strings.ToLower(name)), " ", "_")
}

// PatientsFromRecords groups per-encounter EMR records into patients with
// ordered visit histories. Records are keyed by patient id when present, else
// by normalized name. Derived fields and visit numbers are computed after
// sorting by record creation time.
func PatientsFromRecords(records []models.EMRRecord) []models.Patient {
	byKey := make(map[string]*models.Patient)
	var order []string

	for _, record := range records {
		key := record.PatientID
		if key == "" {
			key = nameKey(record.PatientName)
		}
		patient, ok := byKey[key]
		if !ok {
			name := record.PatientName
			if name == "" {
				name = "Unknown"
			}
			id := record.PatientID
			if id == "" {
				id = GeneratePatientID(name, "", "")
			}
			patient = &models.Patient{ID: id, Name: name}
			byKey[key] = patient
			order = append(order, key)
		}

		patient.Visits = append(patient.Visits, visitFromRecord(record))
	}

	out := make([]models.Patient, 0, len(order))
	for _, key := range order {
		p := byKey[key]
		p.RecomputeDerived()
		// Diagnosis and ICD reflect the most recent visit.
		if last := p.LastVisit(); last != nil {
			p.Diagnosis = last.Diagnosis
			p.ICDCode = last.ICDCode
		}
		out = append(out, *p)
	}
	return out
}

func visitFromRecord(record models.EMRRecord) models.Visit {
	vitals := record.EMRData.Vitals
	metrics := make(models.MetricMap)

	if sys, dia := ParseBloodPressure(vitals.BloodPressure); sys != nil && dia != nil {
		metrics["bp_systolic"] = *sys
		metrics["bp_diastolic"] = *dia
	}
	for key, raw := range map[string]string{
		"heart_rate":       vitals.HeartRate,
		"temperature":      vitals.Temperature,
		"respiratory_rate": vitals.RespiratoryRate,
		"spo2":             vitals.OxygenSat,
		"weight":           vitals.Weight,
		"height":           vitals.Height,
	} {
		if n := CoerceNumeric(raw); n != nil {
			metrics[key] = *n
		}
	}

	meds := make([]string, 0, len(record.EMRData.Medications))
	for _, m := range record.EMRData.Medications {
		if flat := FlattenMedication(m); flat != "" {
			meds = append(meds, flat)
		}
	}

	notes := record.EMRData.TreatmentPlan
	if notes == "" {
		notes = record.PatientSummary
	}

	var icdParts []string
	for _, c := range record.EMRData.ICDCodes {
		entry := strings.TrimSpace(c.Code + " " + c.Description)
		if entry != "" {
			icdParts = append(icdParts, entry)
		}
	}

	return models.Visit{
		Date:         models.FormatVisitDate(record.CreatedAt),
		Timestamp:    record.CreatedAt,
		MetricValues: metrics,
		Medications:  meds,
		Notes:        notes,
		Diagnosis:    record.EMRData.Diagnosis,
		ICDCode:      strings.Join(icdParts, ", "),
		Source:       models.VisitSourceRemote,
	}
}
