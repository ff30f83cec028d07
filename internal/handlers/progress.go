package handlers

import (
	"errors"

	"smart-emr-server/internal/ai"
	"smart-emr-server/internal/models"
	"smart-emr-server/internal/patients"
	"smart-emr-server/internal/progress"
	"smart-emr-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// maxAutoDetectedMetrics caps the headline cards when metrics are discovered
// from visit data instead of a condition profile.
const maxAutoDetectedMetrics = 4

// ProgressHandler serves the progress tracking views: the merged patient list,
// per-patient trend summaries and visit submissions.
type ProgressHandler struct {
	Adapter *patients.Adapter
	Builder *patients.Builder
	Repo    patients.Repository
	AI      *ai.Client
	Log     zerolog.Logger
}

// NewProgressHandler creates a new ProgressHandler.
func NewProgressHandler(adapter *patients.Adapter, builder *patients.Builder, repo patients.Repository, aiClient *ai.Client, log zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{Adapter: adapter, Builder: builder, Repo: repo, AI: aiClient, Log: log}
}

// ListPatients returns the merged patient view: local records plus patients
// reconstructed from consultation EMR records.
func (h *ProgressHandler) ListPatients(c *gin.Context) {
	merged, err := h.Adapter.LoadMergedPatients(c.Request.Context())
	if err != nil {
		utils.InternalServerError(c, "Failed to load patients: "+err.Error())
		return
	}
	utils.Success(c, "Patients fetched successfully", merged)
}

// SearchPatients filters the local patient store by name, id or contact.
// Queries shorter than two characters return an empty list.
func (h *ProgressHandler) SearchPatients(c *gin.Context) {
	query := c.Query("q")
	matches, err := h.Repo.Search(query)
	if err != nil {
		utils.InternalServerError(c, "Patient search failed: "+err.Error())
		return
	}
	if matches == nil {
		matches = []models.Patient{}
	}
	utils.Success(c, "Search results", matches)
}

// RecordVisit appends one visit to a patient's history, registering the
// patient first when unknown.
func (h *ProgressHandler) RecordVisit(c *gin.Context) {
	var input patients.VisitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.Builder.RecordVisit(input)
	if err != nil {
		if errors.Is(err, patients.ErrNoIdentity) {
			utils.BadRequest(c, "A patient id or name is required to record a visit")
			return
		}
		utils.InternalServerError(c, "Failed to record visit: "+err.Error())
		return
	}

	if result.IsNew {
		utils.Created(c, result.Message, result)
		return
	}
	utils.Success(c, result.Message, result)
}

// MetricCard is one headline metric with its trend between the first and last
// observed values.
type MetricCard struct {
	Key           string          `json:"key"`
	Label         string          `json:"label"`
	Icon          string          `json:"icon"`
	Unit          string          `json:"unit"`
	Target        progress.Target `json:"target"`
	First         *float64        `json:"first"`
	Last          *float64        `json:"last"`
	PercentChange *float64        `json:"percentChange"`
	Status        progress.Status `json:"status"`
	IsImprovement bool            `json:"isImprovement"`
	Series        []MetricPoint   `json:"series"`
}

// MetricPoint is one observed value for a metric, tagged with its visit.
type MetricPoint struct {
	VisitNumber int     `json:"visitNumber"`
	Date        string  `json:"date"`
	Value       float64 `json:"value"`
}

// MedicationTimelineEntry is the medication diff for one visit against its
// predecessor.
type MedicationTimelineEntry struct {
	VisitNumber int                  `json:"visitNumber"`
	Date        string               `json:"date"`
	Changes     []progress.MedChange `json:"changes"`
}

// ProgressSummary is the full progress view for one patient.
type ProgressSummary struct {
	Patient             models.Patient            `json:"patient"`
	Condition           string                    `json:"condition"`
	MetricsAutoDetected bool                      `json:"metricsAutoDetected"`
	Metrics             []MetricCard              `json:"metrics"`
	MedicationTimeline  []MedicationTimelineEntry `json:"medicationTimeline"`
	OverallProgress     *progress.Overall         `json:"overallProgress"`
}

// GetPatientProgress builds the per-patient progress summary: condition
// profile resolution, per-metric trend cards, the medication timeline and the
// overall progress badge.
func (h *ProgressHandler) GetPatientProgress(c *gin.Context) {
	patient, err := h.findMergedPatient(c)
	if err != nil {
		utils.InternalServerError(c, "Failed to load patient: "+err.Error())
		return
	}
	if patient == nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	utils.Success(c, "Progress summary computed", BuildProgressSummary(*patient))
}

// findMergedPatient resolves the :id path parameter against the merged view,
// so patients that only exist as EMR records still get a progress page.
func (h *ProgressHandler) findMergedPatient(c *gin.Context) (*models.Patient, error) {
	id := c.Param("id")
	merged, err := h.Adapter.LoadMergedPatients(c.Request.Context())
	if err != nil {
		return nil, err
	}
	for i := range merged {
		if merged[i].ID == id {
			return &merged[i], nil
		}
	}
	return h.Repo.FindByID(id)
}

// BuildProgressSummary computes the progress view from a patient's visit
// history. Pure: it reads nothing beyond the patient value.
func BuildProgressSummary(patient models.Patient) ProgressSummary {
	profile := progress.ResolveConditionProfile(patient.Diagnosis)

	visitMetrics := make([]map[string]float64, len(patient.Visits))
	for i, v := range patient.Visits {
		visitMetrics[i] = v.MetricValues
	}

	keys := profile.Primary
	autoDetected := false
	if !anyMetricObserved(keys, visitMetrics) {
		detected := progress.AutoDetectMetrics(visitMetrics)
		if len(detected) > maxAutoDetectedMetrics {
			detected = detected[:maxAutoDetectedMetrics]
		}
		if len(detected) > 0 {
			keys = detected
			autoDetected = true
		}
	}

	summary := ProgressSummary{
		Patient:             patient,
		Condition:           profile.Name,
		MetricsAutoDetected: autoDetected,
		Metrics:             make([]MetricCard, 0, len(keys)),
		MedicationTimeline:  buildMedicationTimeline(patient.Visits),
	}

	for _, key := range keys {
		summary.Metrics = append(summary.Metrics, buildMetricCard(key, patient.Visits, profile.Targets))
	}

	if len(patient.Visits) >= 2 {
		first := patient.Visits[0].MetricValues
		last := patient.Visits[len(patient.Visits)-1].MetricValues
		summary.OverallProgress = progress.ClassifyOverallProgress(first, last, keys, profile.Targets)
	}

	return summary
}

func anyMetricObserved(keys []string, visits []map[string]float64) bool {
	for _, v := range visits {
		for _, k := range keys {
			if _, ok := v[k]; ok {
				return true
			}
		}
	}
	return false
}

func buildMetricCard(key string, visits models.VisitList, targets map[string]progress.Target) MetricCard {
	card := MetricCard{
		Key:    key,
		Label:  progress.MetricLabels[key],
		Icon:   progress.MetricIcons[key],
		Target: targets[key],
		Unit:   targets[key].Unit,
		Series: []MetricPoint{},
	}

	for _, v := range visits {
		if val, ok := v.MetricValues[key]; ok {
			card.Series = append(card.Series, MetricPoint{
				VisitNumber: v.VisitNumber,
				Date:        v.Date,
				Value:       val,
			})
		}
	}

	if len(card.Series) > 0 {
		first := card.Series[0].Value
		last := card.Series[len(card.Series)-1].Value
		card.First = &first
		card.Last = &last
		card.PercentChange = progress.PercentChange(&first, &last)
	}

	card.Status = progress.ClassifyValue(key, card.Last, targets)
	card.IsImprovement = progress.IsImprovement(key, card.PercentChange, targets)
	return card
}

// buildMedicationTimeline diffs each visit's medications against the previous
// visit. The first visit diffs against an empty list, so everything starts as
// started.
func buildMedicationTimeline(visits models.VisitList) []MedicationTimelineEntry {
	timeline := make([]MedicationTimelineEntry, 0, len(visits))
	var prev []string
	for _, v := range visits {
		timeline = append(timeline, MedicationTimelineEntry{
			VisitNumber: v.VisitNumber,
			Date:        v.Date,
			Changes:     progress.DiffMedications(prev, v.Medications),
		})
		prev = v.Medications
	}
	return timeline
}

// GetPatientInsights produces the AI progress narrative for a patient's visit
// history.
func (h *ProgressHandler) GetPatientInsights(c *gin.Context) {
	patient, err := h.findMergedPatient(c)
	if err != nil {
		utils.InternalServerError(c, "Failed to load patient: "+err.Error())
		return
	}
	if patient == nil {
		utils.NotFound(c, "Patient not found")
		return
	}

	insights, demo, err := h.AI.ProgressInsights(c.Request.Context(), patient.Diagnosis, patient.Visits)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate insights: "+err.Error())
		return
	}

	utils.Success(c, "Insights generated", gin.H{
		"insights": insights,
		"isDemo":   demo,
	})
}
