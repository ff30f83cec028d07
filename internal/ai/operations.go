package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"smart-emr-server/internal/models"
)

const extractSystemPrompt = `You are a medical data extraction assistant.
Given a clinical consultation transcript, extract the following fields and return ONLY valid JSON — no explanation, no markdown, no code fences.

JSON shape (use null for any field not mentioned):
{
  "chiefComplaint": "string",
  "symptoms": ["string"],
  "vitals": {
    "bloodPressure": "string or null",
    "heartRate": "string or null",
    "temperature": "string or null",
    "respiratoryRate": "string or null",
    "oxygenSat": "string or null",
    "weight": "string or null",
    "height": "string or null"
  },
  "diagnosis": "string",
  "medications": [
    { "name": "string", "dose": "string", "freq": "string" }
  ],
  "treatmentPlan": "string",
  "followUp": "string or null",
  "icdCodes": [
    { "code": "string", "description": "string" }
  ]
}`

const summarySystemPrompt = `You are a compassionate medical communicator. Rewrite the given clinical summary in simple, friendly, non-technical English that a patient with no medical background can easily understand. Use short sentences. Avoid medical jargon. Reassure the patient where appropriate. Output plain text only — no markdown.`

const translateSystemPrompt = `You are a multilingual medical translator. Detect the language of the input text. If it is English, return it unchanged. If it is any other language (e.g. Hindi, Spanish, Arabic, French), translate it to English. Return ONLY valid JSON with this shape: { "detectedLanguage": "string", "translatedText": "string", "wasTranslated": boolean }. No markdown, no explanation.`

const insightsSystemPrompt = `You are a clinical AI analyzing patient progress. Based on visit history return a JSON with exactly these fields:
{"summary":"2-3 sentence overall progress summary","improvements":["improvement points"],"concerns":["concern points or empty array"],"recommendations":["next visit recommendations"]}.
Return ONLY valid JSON, no markdown, no extra text.`

const demoTranscript = "[Demo Mode] Patient presents with persistent headache for the past three days. " +
	"Reports pain level 7 out of 10. No fever or nausea. History of migraines. " +
	"Prescribed ibuprofen 400mg and advised rest and hydration."

const demoPatientSummary = "You came in because of a headache that has been bothering you for 3 days. " +
	"The doctor diagnosed you with a migraine — a type of severe headache that some people get regularly. " +
	"You have been given a painkiller called Ibuprofen (400 mg) to take every 6 hours when needed. " +
	"Please rest, drink plenty of water, and come back in 1 week if the headache does not improve."

func demoExtraction() models.EMRData {
	return models.EMRData{
		ChiefComplaint: "Persistent headache for 3 days",
		Symptoms:       []string{"Headache", "Pain level 7/10", "No fever", "No nausea"},
		Diagnosis:      "Migraine headache, unspecified",
		Medications: []models.EMRMedication{
			{Name: "Ibuprofen", Dose: "400mg", Freq: "Every 6 hours as needed"},
		},
		TreatmentPlan: "Prescribe Ibuprofen 400mg every 6 hours PRN; advise rest and adequate hydration",
		FollowUp:      "1 week if symptoms persist",
		ICDCodes:      []models.ICDCodeEntry{{Code: "G43.909", Description: "Migraine, unspecified"}},
	}
}

// TranscribeAudio transcribes consultation audio, or returns the canned demo
// transcript when no API key is configured.
func (c *Client) TranscribeAudio(ctx context.Context, filename string, data []byte) (transcript string, demo bool, err error) {
	if !c.Configured() {
		return demoTranscript, true, nil
	}
	transcript, err = c.Transcribe(ctx, filename, data)
	return transcript, false, err
}

// ExtractEMR turns a transcript into structured consultation data.
func (c *Client) ExtractEMR(ctx context.Context, transcript string) (models.EMRData, bool, error) {
	if !c.Configured() {
		return demoExtraction(), true, nil
	}
	var data models.EMRData
	user := fmt.Sprintf("Transcript:\n%s", transcript)
	if err := c.ChatJSON(ctx, extractSystemPrompt, user, 0.1, 1024, &data); err != nil {
		return models.EMRData{}, false, err
	}
	return data, false, nil
}

// PatientSummary rewrites clinical text in patient-friendly language.
func (c *Client) PatientSummary(ctx context.Context, clinicalText string) (string, bool, error) {
	if !c.Configured() {
		return demoPatientSummary, true, nil
	}
	summary, err := c.ChatText(ctx, summarySystemPrompt, clinicalText, 0.4, 512)
	return summary, false, err
}

// Translation is the result of language detection plus translation.
type Translation struct {
	DetectedLanguage string `json:"detectedLanguage"`
	TranslatedText   string `json:"translatedText"`
	WasTranslated    bool   `json:"wasTranslated"`
}

// TranslateToEnglish detects the input language and translates to English
// when needed.
func (c *Client) TranslateToEnglish(ctx context.Context, text string) (Translation, bool, error) {
	if !c.Configured() {
		return Translation{DetectedLanguage: "English", TranslatedText: text}, true, nil
	}
	var result Translation
	if err := c.ChatJSON(ctx, translateSystemPrompt, text, 0.1, 1024, &result); err != nil {
		return Translation{}, false, err
	}
	return result, false, nil
}

// Insights is the opaque display payload produced from a visit history. The
// engine passes it through without validation or reshaping.
type Insights struct {
	Summary         string   `json:"summary"`
	Improvements    []string `json:"improvements"`
	Concerns        []string `json:"concerns"`
	Recommendations []string `json:"recommendations"`
}

// ProgressInsights summarizes a patient's visit history for the given
// diagnosis.
func (c *Client) ProgressInsights(ctx context.Context, diagnosis string, visits []models.Visit) (Insights, bool, error) {
	if !c.Configured() {
		return Insights{
			Summary:         fmt.Sprintf("Demo insights for %s across %d visit(s). Configure GROQ_API_KEY for AI-generated analysis.", diagnosis, len(visits)),
			Improvements:    []string{"Trends are computed from the recorded visits"},
			Concerns:        []string{},
			Recommendations: []string{"Review the metric cards and charts for per-metric detail"},
		}, true, nil
	}
	history, err := json.Marshal(visits)
	if err != nil {
		return Insights{}, false, err
	}
	user := fmt.Sprintf("Patient diagnosis: %s\nVisit history: %s", diagnosis, history)
	var insights Insights
	if err := c.ChatJSON(ctx, insightsSystemPrompt, user, 0.3, 600, &insights); err != nil {
		return Insights{}, false, err
	}
	return insights, false, nil
}
