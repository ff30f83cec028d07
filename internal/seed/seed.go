package seed

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"smart-emr-server/internal/models"
	"smart-emr-server/internal/patients"
)

// Run seeds the demo doctor and patient accounts plus a set of patients with
// multi-visit histories, so the progress views have data out of the box. It is
// idempotent: existing rows are left untouched.
func Run(db *gorm.DB, log zerolog.Logger) error {
	if err := seedUsers(db, log); err != nil {
		return err
	}
	return seedPatients(db, log)
}

type demoUser struct {
	email          string
	password       string
	name           string
	role           models.Role
	department     string
	patientID      string
	caretakerName  string
	caretakerPhone string
}

var demoUsers = []demoUser{
	{
		email:      "doctor@smartemr.com",
		password:   "doctor123",
		name:       "Dr. Anil Mehta",
		role:       models.RoleDoctor,
		department: "General Medicine",
	},
	{
		email:          "patient@smartemr.com",
		password:       "patient123",
		name:           "Sarah Johnson",
		role:           models.RolePatient,
		patientID:      "PT-00001",
		caretakerName:  "Mark Johnson",
		caretakerPhone: "+1 555 0142",
	},
}

func seedUsers(db *gorm.DB, log zerolog.Logger) error {
	for _, du := range demoUsers {
		var existing models.User
		err := db.Where("email = ?", du.email).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		user := models.User{
			Email:          du.email,
			Name:           du.name,
			Role:           du.role,
			Department:     du.department,
			PatientID:      du.patientID,
			CaretakerName:  du.caretakerName,
			CaretakerPhone: du.caretakerPhone,
		}
		if err := user.SetPassword(du.password); err != nil {
			return err
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Info().Str("email", du.email).Str("role", string(du.role)).Msg("Seeded demo account")
	}
	return nil
}

// visitSpec is a compact description of one seeded visit; daysAgo anchors the
// timestamp relative to startup.
type visitSpec struct {
	daysAgo int
	metrics models.MetricMap
	meds    []string
	notes   string
}

type patientSpec struct {
	id         string
	name       string
	age        string
	gender     string
	bloodGroup string
	contact    string
	diagnosis  string
	icdCode    string
	visits     []visitSpec
}

var demoPatients = []patientSpec{
	{
		id: "SAR-58-F-4821", name: "Sarah Johnson", age: "58", gender: "Female",
		bloodGroup: "B+", contact: "+1 555 0142",
		diagnosis: "Type 2 Diabetes", icdCode: "E11.9",
		visits: []visitSpec{
			{daysAgo: 120, metrics: models.MetricMap{"glucose": 210, "hba1c": 9.1, "weight": 82, "bp_systolic": 138, "bp_diastolic": 88},
				meds:  []string{"Metformin 500mg", "Atorvastatin 10mg"},
				notes: "Newly diagnosed. Started on metformin, lifestyle counselling given."},
			{daysAgo: 75, metrics: models.MetricMap{"glucose": 165, "hba1c": 8.2, "weight": 80, "bp_systolic": 132, "bp_diastolic": 84},
				meds:  []string{"Metformin 1000mg", "Atorvastatin 10mg"},
				notes: "Responding to therapy. Metformin dose increased."},
			{daysAgo: 30, metrics: models.MetricMap{"glucose": 128, "hba1c": 7.1, "weight": 78, "bp_systolic": 126, "bp_diastolic": 80},
				meds:  []string{"Metformin 1000mg", "Atorvastatin 10mg"},
				notes: "Good glycemic control. Continue current regimen."},
		},
	},
	{
		id: "ROB-64-M-7310", name: "Robert Smith", age: "64", gender: "Male",
		bloodGroup: "O+", contact: "+1 555 0187",
		diagnosis: "Hypertension", icdCode: "I10",
		visits: []visitSpec{
			{daysAgo: 90, metrics: models.MetricMap{"bp_systolic": 160, "bp_diastolic": 100, "heart_rate": 88, "weight": 91},
				meds:  []string{"Amlodipine 5mg"},
				notes: "Stage 2 hypertension. Started amlodipine, advised salt restriction."},
			{daysAgo: 60, metrics: models.MetricMap{"bp_systolic": 148, "bp_diastolic": 94, "heart_rate": 84, "weight": 90},
				meds:  []string{"Amlodipine 5mg", "Losartan 50mg"},
				notes: "Partial response. Added losartan."},
			{daysAgo: 21, metrics: models.MetricMap{"bp_systolic": 125, "bp_diastolic": 82, "heart_rate": 78, "weight": 88},
				meds:  []string{"Amlodipine 5mg", "Losartan 50mg"},
				notes: "Blood pressure at target. Continue and review in 3 months."},
		},
	},
	{
		id: "JAM-71-M-2954", name: "James Wilson", age: "71", gender: "Male",
		bloodGroup: "A-", contact: "+1 555 0223",
		diagnosis: "Acute Myocardial Infarction", icdCode: "I21.9",
		visits: []visitSpec{
			{daysAgo: 45, metrics: models.MetricMap{"troponin": 2.4, "bp_systolic": 102, "bp_diastolic": 64, "heart_rate": 96, "spo2": 93},
				meds:  []string{"Aspirin 75mg", "Clopidogrel 75mg", "Atorvastatin 80mg", "Metoprolol 25mg"},
				notes: "Post-PCI day 2. Dual antiplatelet therapy started."},
			{daysAgo: 30, metrics: models.MetricMap{"troponin": 0.3, "bp_systolic": 112, "bp_diastolic": 70, "heart_rate": 82, "spo2": 96},
				meds:  []string{"Aspirin 75mg", "Clopidogrel 75mg", "Atorvastatin 80mg", "Metoprolol 50mg"},
				notes: "Troponin trending down. Metoprolol uptitrated."},
			{daysAgo: 10, metrics: models.MetricMap{"troponin": 0.02, "bp_systolic": 118, "bp_diastolic": 74, "heart_rate": 72, "spo2": 98},
				meds:  []string{"Aspirin 75mg", "Clopidogrel 75mg", "Atorvastatin 80mg", "Metoprolol 50mg"},
				notes: "Recovering well. Cardiac rehab referral."},
		},
	},
	{
		id: "PRI-34-F-6108", name: "Priya Sharma", age: "34", gender: "Female",
		bloodGroup: "AB+", contact: "+91 98100 22334",
		diagnosis: "Major Depressive Disorder", icdCode: "F32.1",
		visits: []visitSpec{
			{daysAgo: 84, metrics: models.MetricMap{"phq9_score": 18, "gad7_score": 14, "sleep_hours": 4.5},
				meds:  []string{"Sertraline 50mg"},
				notes: "Moderately severe depression. Started sertraline, weekly follow-up."},
			{daysAgo: 56, metrics: models.MetricMap{"phq9_score": 13, "gad7_score": 11, "sleep_hours": 5.5},
				meds:  []string{"Sertraline 100mg"},
				notes: "Partial response at 4 weeks. Dose increased."},
			{daysAgo: 28, metrics: models.MetricMap{"phq9_score": 8, "gad7_score": 7, "sleep_hours": 6.5},
				meds:  []string{"Sertraline 100mg"},
				notes: "Clear improvement. Continue current dose, CBT referral."},
			{daysAgo: 7, metrics: models.MetricMap{"phq9_score": 5, "gad7_score": 5, "sleep_hours": 7},
				meds:  []string{"Sertraline 100mg"},
				notes: "Mild residual symptoms. Maintain for 6 months."},
		},
	},
	{
		id: "DAV-42-M-8577", name: "David Kumar", age: "42", gender: "Male",
		bloodGroup: "O-", contact: "+91 99876 54321",
		diagnosis: "Asthma", icdCode: "J45.909",
		visits: []visitSpec{
			{daysAgo: 60, metrics: models.MetricMap{"peak_flow": 310, "spo2": 94, "respiratory_rate": 22},
				meds:  []string{"Salbutamol inhaler", "Budesonide 200mcg"},
				notes: "Poorly controlled asthma. Started ICS, inhaler technique reviewed."},
			{daysAgo: 35, metrics: models.MetricMap{"peak_flow": 390, "spo2": 96, "respiratory_rate": 18},
				meds:  []string{"Salbutamol inhaler", "Budesonide 200mcg"},
				notes: "Improving. Night symptoms twice a week."},
			{daysAgo: 5, metrics: models.MetricMap{"peak_flow": 450, "spo2": 98, "respiratory_rate": 16},
				meds:  []string{"Salbutamol inhaler", "Budesonide/Formoterol 200/6"},
				notes: "Well controlled on combination inhaler."},
		},
	},
}

func seedPatients(db *gorm.DB, log zerolog.Logger) error {
	repo := patients.NewGormRepository(db)
	now := time.Now()

	for _, spec := range demoPatients {
		existing, err := repo.FindByID(spec.id)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}

		patient := &models.Patient{
			ID:         spec.id,
			Name:       spec.name,
			Age:        spec.age,
			Gender:     spec.gender,
			BloodGroup: spec.bloodGroup,
			Contact:    spec.contact,
			Diagnosis:  spec.diagnosis,
			ICDCode:    spec.icdCode,
		}
		for _, vs := range spec.visits {
			ts := now.AddDate(0, 0, -vs.daysAgo)
			patient.Visits = append(patient.Visits, models.Visit{
				Date:         models.FormatVisitDate(ts),
				Timestamp:    ts,
				MetricValues: vs.metrics,
				Medications:  vs.meds,
				Notes:        vs.notes,
				Diagnosis:    spec.diagnosis,
				ICDCode:      spec.icdCode,
				Source:       models.VisitSourceLocal,
			})
		}
		patient.RecomputeDerived()

		if err := repo.Upsert(patient); err != nil {
			return err
		}
		log.Info().Str("patient", spec.name).Int("visits", patient.TotalVisits).Msg("Seeded demo patient")
	}
	return nil
}
