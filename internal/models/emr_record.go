package models

// EMRRecord workflow statuses.
type EMRStatus string

const (
	StatusTranscribed EMRStatus = "transcribed"
	StatusExtracted   EMRStatus = "extracted"
	StatusCompleted   EMRStatus = "completed"
)

// EMRVitals holds the raw vital strings extracted from a transcript. Values
// keep their units ("120/80 mmHg", "98.6 °F"); numeric coercion happens in the
// remote visit source, not here.
type EMRVitals struct {
	BloodPressure   string `json:"bloodPressure,omitempty"`
	HeartRate       string `json:"heartRate,omitempty"`
	Temperature     string `json:"temperature,omitempty"`
	RespiratoryRate string `json:"respiratoryRate,omitempty"`
	OxygenSat       string `json:"oxygenSat,omitempty"`
	Weight          string `json:"weight,omitempty"`
	Height          string `json:"height,omitempty"`
}

// EMRMedication is one prescribed medication as extracted by the LLM.
type EMRMedication struct {
	Name     string `json:"name"`
	Dose     string `json:"dose,omitempty"`
	Route    string `json:"route,omitempty"`
	Freq     string `json:"freq,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// ICDCodeEntry is one diagnosis code with its description.
type ICDCodeEntry struct {
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// EMRData is the structured consultation data extracted by the LLM.
type EMRData struct {
	ChiefComplaint string          `json:"chiefComplaint,omitempty"`
	Diagnosis      string          `json:"diagnosis,omitempty"`
	Symptoms       []string        `json:"symptoms,omitempty"`
	Vitals         EMRVitals       `json:"vitals"`
	Medications    []EMRMedication `json:"medications,omitempty"`
	TreatmentPlan  string          `json:"treatmentPlan,omitempty"`
	FollowUp       string          `json:"followUp,omitempty"`
	ICDCodes       []ICDCodeEntry  `json:"icdCodes,omitempty"`
	RawText        string          `json:"rawText,omitempty"`
}

// EMRRecord represents one documented consultation: the transcript, the
// structured extraction and the patient identity it belongs to.
type EMRRecord struct {
	BaseModel
	PatientEmail string `gorm:"size:255;index:idx_emr_patient_email" json:"patientEmail"`
	PatientName  string `gorm:"size:150" json:"patientName"`
	PatientID    string `gorm:"size:64" json:"patientId"`

	DoctorID   string `gorm:"size:36;index:idx_emr_doctor" json:"doctorId"`
	DoctorName string `gorm:"size:150" json:"doctorName"`

	Transcript string `gorm:"type:text" json:"transcript,omitempty"`
	IsDemo     bool   `gorm:"default:false" json:"isDemo"`

	EMRData        EMRData   `gorm:"serializer:json;type:json" json:"emrData"`
	PatientSummary string    `gorm:"type:text" json:"patientSummary,omitempty"`
	Status         EMRStatus `gorm:"size:20;default:'transcribed'" json:"status"`

	// Relations
	Doctor      User              `gorm:"foreignKey:DoctorID" json:"-"`
	Attachments []AudioAttachment `gorm:"foreignKey:EMRRecordID" json:"attachments,omitempty"`
}

// AudioAttachment is a consultation audio file stored as binary data.
type AudioAttachment struct {
	BaseModel
	EMRRecordID string `gorm:"not null;type:varchar(36)" json:"emrRecordId"`
	FileName    string `gorm:"not null" json:"fileName"`        // Original name of the file
	FileType    string `gorm:"not null" json:"fileType"`        // MIME type of the file
	FileSize    int64  `json:"fileSize"`                        // Size in bytes
	FileData    []byte `gorm:"type:longblob;not null" json:"-"` // File content as binary data
}
