package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"smart-emr-server/internal/middleware"
	"smart-emr-server/internal/models"
	"smart-emr-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RecordHandler handles consultation EMR record requests.
type RecordHandler struct {
	DB *gorm.DB
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(db *gorm.DB) *RecordHandler {
	return &RecordHandler{DB: db}
}

// CreateRecordRequest represents the request body for saving a consultation
// record.
type CreateRecordRequest struct {
	PatientEmail   string         `json:"patientEmail"`
	PatientName    string         `json:"patientName" binding:"required"`
	PatientID      string         `json:"patientId"`
	Transcript     string         `json:"transcript"`
	IsDemo         bool           `json:"isDemo"`
	EMRData        models.EMRData `json:"emrData"`
	PatientSummary string         `json:"patientSummary"`
	Status         string         `json:"status"`
}

// CreateRecord handles saving a new consultation record. Only accessible by
// doctors.
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var req CreateRecordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Doctor ID not found in token")
		return
	}

	var doctor models.User
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load doctor account: "+err.Error())
		return
	}

	status := models.EMRStatus(req.Status)
	if status == "" {
		status = models.StatusCompleted
	}

	record := models.EMRRecord{
		PatientEmail:   strings.ToLower(strings.TrimSpace(req.PatientEmail)),
		PatientName:    req.PatientName,
		PatientID:      req.PatientID,
		DoctorID:       doctorID,
		DoctorName:     doctor.Name,
		Transcript:     req.Transcript,
		IsDemo:         req.IsDemo,
		EMRData:        req.EMRData,
		PatientSummary: req.PatientSummary,
		Status:         status,
	}

	if err := h.DB.Create(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to save consultation record: "+err.Error())
		return
	}

	utils.Created(c, "Consultation record saved successfully", record)
}

// GetMyRecords handles fetching the records visible to the authenticated user.
// Doctors see records they created; patients see records addressed to their
// email or clinical patient id.
func (h *RecordHandler) GetMyRecords(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.InternalServerError(c, "Failed to load user account: "+err.Error())
		return
	}

	query := h.DB.Preload("Attachments").Order("created_at desc")
	switch userRole {
	case models.RoleDoctor:
		query = query.Where("doctor_id = ?", userID)
	case models.RolePatient:
		query = query.Where("patient_email = ? OR patient_id = ?", strings.ToLower(user.Email), user.PatientID)
	default:
		// Admins see everything.
	}

	var records []models.EMRRecord
	if err := query.Find(&records).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch consultation records: "+err.Error())
		return
	}

	utils.Success(c, "Consultation records fetched successfully", records)
}

// GetRecordByID handles fetching a single consultation record by its ID.
func (h *RecordHandler) GetRecordByID(c *gin.Context) {
	recordID := c.Param("id")

	var record models.EMRRecord
	if err := h.DB.Preload("Attachments").First(&record, "id = ?", recordID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Consultation record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !h.canAccessRecord(c, &record) {
		utils.Forbidden(c, "You are not authorized to view this consultation record")
		return
	}

	utils.Success(c, "Consultation record fetched successfully", record)
}

// canAccessRecord reports whether the authenticated user may read the record:
// the creating doctor, an admin, or the patient it is addressed to.
func (h *RecordHandler) canAccessRecord(c *gin.Context, record *models.EMRRecord) bool {
	userID, idOK := middleware.GetUserIDFromContext(c)
	userRole, roleOK := middleware.GetUserRoleFromContext(c)
	if !idOK || !roleOK {
		return false
	}

	switch userRole {
	case models.RoleAdmin:
		return true
	case models.RoleDoctor:
		return userID == record.DoctorID
	case models.RolePatient:
		var user models.User
		if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
			return false
		}
		if record.PatientEmail != "" && strings.EqualFold(user.Email, record.PatientEmail) {
			return true
		}
		return record.PatientID != "" && user.PatientID == record.PatientID
	}
	return false
}

// UpdateRecordRequest represents the request body for updating a record.
type UpdateRecordRequest struct {
	EMRData        *models.EMRData `json:"emrData,omitempty"`
	PatientSummary string          `json:"patientSummary,omitempty"`
	Status         string          `json:"status,omitempty"`
	PatientEmail   string          `json:"patientEmail,omitempty"`
	PatientID      string          `json:"patientId,omitempty"`
}

// UpdateRecord handles updating an existing consultation record. Only the
// creating doctor or an admin may update it.
func (h *RecordHandler) UpdateRecord(c *gin.Context) {
	recordID := c.Param("id")

	var req UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var record models.EMRRecord
	if err := h.DB.First(&record, "id = ?", recordID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Consultation record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	isAdmin := userRole == models.RoleAdmin
	isCreatorDoctor := userRole == models.RoleDoctor && userID == record.DoctorID
	if !(isAdmin || isCreatorDoctor) {
		utils.Forbidden(c, "You are not authorized to update this consultation record")
		return
	}

	if req.EMRData != nil {
		record.EMRData = *req.EMRData
	}
	if req.PatientSummary != "" {
		record.PatientSummary = req.PatientSummary
	}
	if req.Status != "" {
		record.Status = models.EMRStatus(req.Status)
	}
	if req.PatientEmail != "" {
		record.PatientEmail = strings.ToLower(strings.TrimSpace(req.PatientEmail))
	}
	if req.PatientID != "" {
		record.PatientID = req.PatientID
	}

	if err := h.DB.Save(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to update consultation record: "+err.Error())
		return
	}

	utils.Success(c, "Consultation record updated successfully", record)
}

// DeleteRecord handles deleting a consultation record. Only the creating
// doctor or an admin may delete it.
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	recordID := c.Param("id")

	var record models.EMRRecord
	if err := h.DB.First(&record, "id = ?", recordID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Consultation record not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)
	if !(userRole == models.RoleAdmin || (userRole == models.RoleDoctor && userID == record.DoctorID)) {
		utils.Forbidden(c, "You are not authorized to delete this consultation record")
		return
	}

	if err := h.DB.Where("emr_record_id = ?", record.ID).Delete(&models.AudioAttachment{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete record attachments: "+err.Error())
		return
	}
	if err := h.DB.Delete(&record).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete consultation record: "+err.Error())
		return
	}

	utils.Success(c, "Consultation record deleted successfully", nil)
}

// UploadRecordAudio handles attaching a consultation audio file to a record.
// Stores the file as binary data in the database. Only accessible by doctors.
func (h *RecordHandler) UploadRecordAudio(c *gin.Context) {
	recordID := c.Param("id")

	var record models.EMRRecord
	if err := h.DB.First(&record, "id = ?", recordID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Consultation record not found")
		} else {
			utils.InternalServerError(c, "Database error verifying record: "+err.Error())
		}
		return
	}

	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		utils.BadRequest(c, "Error retrieving audio file from form: "+err.Error())
		return
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		utils.InternalServerError(c, "Error reading file content: "+err.Error())
		return
	}

	attachment := models.AudioAttachment{
		EMRRecordID: record.ID,
		FileName:    header.Filename,
		FileType:    header.Header.Get("Content-Type"),
		FileSize:    header.Size,
		FileData:    fileData,
	}

	if err := h.DB.Create(&attachment).Error; err != nil {
		utils.InternalServerError(c, "Failed to store audio attachment: "+err.Error())
		return
	}

	// Return a slimmed down version of the attachment, without the FileData
	utils.Success(c, "Audio uploaded and linked to consultation record successfully", gin.H{
		"id":          attachment.ID,
		"emrRecordId": attachment.EMRRecordID,
		"fileName":    attachment.FileName,
		"fileType":    attachment.FileType,
		"fileSize":    attachment.FileSize,
		"createdAt":   attachment.CreatedAt,
	})
}

// GetRecordAudio handles retrieving a stored audio attachment and serving its
// file data.
func (h *RecordHandler) GetRecordAudio(c *gin.Context) {
	attachmentID := c.Param("attachmentId")

	var attachment models.AudioAttachment
	if err := h.DB.First(&attachment, "id = ?", attachmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Audio attachment not found")
		} else {
			utils.InternalServerError(c, "Database error fetching attachment: "+err.Error())
		}
		return
	}

	var record models.EMRRecord
	if err := h.DB.First(&record, "id = ?", attachment.EMRRecordID).Error; err != nil {
		utils.InternalServerError(c, "Could not fetch parent record for authorization check.")
		return
	}

	if !h.canAccessRecord(c, &record) {
		utils.Forbidden(c, "You are not authorized to access this audio attachment.")
		return
	}

	c.Writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	c.Data(http.StatusOK, attachment.FileType, attachment.FileData)
}
