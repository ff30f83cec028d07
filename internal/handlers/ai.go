package handlers

import (
	"io"

	"smart-emr-server/internal/ai"
	"smart-emr-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// maxAudioUploadBytes bounds consultation audio uploads (25 MB, the Whisper
// endpoint limit).
const maxAudioUploadBytes = 25 << 20

// AIHandler handles transcription, extraction and rewriting requests backed by
// the Groq client.
type AIHandler struct {
	Client *ai.Client
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(client *ai.Client) *AIHandler {
	return &AIHandler{Client: client}
}

// Transcribe handles transcribing an uploaded consultation audio file.
func (h *AIHandler) Transcribe(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		utils.BadRequest(c, "Error retrieving audio file from form: "+err.Error())
		return
	}
	defer file.Close()

	if header.Size > maxAudioUploadBytes {
		utils.BadRequest(c, "Audio file exceeds the 25MB upload limit")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		utils.InternalServerError(c, "Error reading audio content: "+err.Error())
		return
	}

	transcript, demo, err := h.Client.TranscribeAudio(c.Request.Context(), header.Filename, data)
	if err != nil {
		utils.InternalServerError(c, "Transcription failed: "+err.Error())
		return
	}

	utils.Success(c, "Audio transcribed successfully", gin.H{
		"transcript": transcript,
		"isDemo":     demo,
	})
}

// ExtractRequest carries the transcript to structure.
type ExtractRequest struct {
	Transcript string `json:"transcript" binding:"required"`
}

// Extract handles turning a transcript into structured consultation data.
func (h *AIHandler) Extract(c *gin.Context) {
	var req ExtractRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	data, demo, err := h.Client.ExtractEMR(c.Request.Context(), req.Transcript)
	if err != nil {
		utils.InternalServerError(c, "Extraction failed: "+err.Error())
		return
	}

	utils.Success(c, "Consultation data extracted successfully", gin.H{
		"emrData": data,
		"isDemo":  demo,
	})
}

// TextRequest carries free text for the rewriting endpoints.
type TextRequest struct {
	Text string `json:"text" binding:"required"`
}

// PatientSummary handles rewriting clinical text in patient-friendly language.
func (h *AIHandler) PatientSummary(c *gin.Context) {
	var req TextRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	summary, demo, err := h.Client.PatientSummary(c.Request.Context(), req.Text)
	if err != nil {
		utils.InternalServerError(c, "Summary generation failed: "+err.Error())
		return
	}

	utils.Success(c, "Patient summary generated successfully", gin.H{
		"summary": summary,
		"isDemo":  demo,
	})
}

// Translate handles detecting the language of input text and translating it to
// English when needed.
func (h *AIHandler) Translate(c *gin.Context) {
	var req TextRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	translation, demo, err := h.Client.TranslateToEnglish(c.Request.Context(), req.Text)
	if err != nil {
		utils.InternalServerError(c, "Translation failed: "+err.Error())
		return
	}

	utils.Success(c, "Translation completed", gin.H{
		"detectedLanguage": translation.DetectedLanguage,
		"translatedText":   translation.TranslatedText,
		"wasTranslated":    translation.WasTranslated,
		"isDemo":           demo,
	})
}
