package handlers

import (
	"fmt"
	"io"
	"net/http"

	"adamosign/models"
	"adamosign/services/storage"
	"adamosign/services/wizard"
	"adamosign/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WizardHandler exposes the document composition wizard.
type WizardHandler struct {
	Service wizard.WizardSessionService
	Storage storage.FileStorage
}

// NewWizardHandler creates a WizardHandler.
func NewWizardHandler(svc wizard.WizardSessionService, store storage.FileStorage) *WizardHandler {
	return &WizardHandler{Service: svc, Storage: store}
}

// StartSessionHandler handles POST /api/wizard/session.
func (h *WizardHandler) StartSessionHandler(c *gin.Context) {
	session, err := h.Service.StartSession(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start wizard session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, session)
}

// GetSessionHandler handles GET /api/wizard/session/:sessionID.
func (h *WizardHandler) GetSessionHandler(c *gin.Context) {
	session, err := h.Service.GetSession(c.Param("sessionID"), c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// GoToStepHandler handles PUT /api/wizard/session/:sessionID/step.
// An unreachable step is not an error: the session comes back unchanged.
func (h *WizardHandler) GoToStepHandler(c *gin.Context) {
	var req struct {
		Step int `json:"step"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	session, err := h.Service.GoToStep(c.Param("sessionID"), c.GetString("userID"), req.Step)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// CompleteStepHandler handles POST /api/wizard/session/:sessionID/complete.
func (h *WizardHandler) CompleteStepHandler(c *gin.Context) {
	var req struct {
		Step int `json:"step"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	session, err := h.Service.CompleteStep(c.Param("sessionID"), c.GetString("userID"), req.Step)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// UploadFileHandler handles POST /api/wizard/session/:sessionID/file. The
// PDF is staged in the file store so the session stays a small Redis blob.
func (h *WizardHandler) UploadFileHandler(c *gin.Context) {
	logger := utils.GetLogger()
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a file is required"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file", "details": err.Error()})
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file", "details": err.Error()})
		return
	}
	if len(content) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uploaded file is empty"})
		return
	}

	filename := c.PostForm("filename")
	if filename == "" {
		filename = fileHeader.Filename
	}

	fileKey := fmt.Sprintf("staging/%s.pdf", uuid.New().String())
	if err := h.Storage.Upload(c.Request.Context(), fileKey, content, "application/pdf"); err != nil {
		logger.Error("staging upload failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	session, err := h.Service.SetFile(c.Param("sessionID"), c.GetString("userID"), filename, fileKey)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// AddSignatureHandler handles POST /api/wizard/session/:sessionID/signatures.
func (h *WizardHandler) AddSignatureHandler(c *gin.Context) {
	var sig models.Signature
	if err := c.ShouldBindJSON(&sig); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	session, err := h.Service.AddSignature(c.Param("sessionID"), c.GetString("userID"), sig)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// MoveSignatureHandler handles PUT /api/wizard/session/:sessionID/signatures/:signatureID.
func (h *WizardHandler) MoveSignatureHandler(c *gin.Context) {
	var req struct {
		Left float64 `json:"left"`
		Top  float64 `json:"top"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	session, err := h.Service.MoveSignature(c.Param("sessionID"), c.GetString("userID"), c.Param("signatureID"), req.Left, req.Top)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// DeleteSignatureHandler handles DELETE /api/wizard/session/:sessionID/signatures/:signatureID.
func (h *WizardHandler) DeleteSignatureHandler(c *gin.Context) {
	session, err := h.Service.DeleteSignature(c.Param("sessionID"), c.GetString("userID"), c.Param("signatureID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// SetParticipantsHandler handles PUT /api/wizard/session/:sessionID/participants.
// Validation failures come back as per-index field errors.
func (h *WizardHandler) SetParticipantsHandler(c *gin.Context) {
	var req struct {
		Participants []models.Participant   `json:"participants"`
		Options      models.DocumentOptions `json:"options"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	session, fieldErrs, err := h.Service.SetParticipants(c.Param("sessionID"), c.GetString("userID"), req.Participants, req.Options)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "participant validation failed", "fieldErrors": fieldErrs})
		return
	}
	c.JSON(http.StatusOK, session)
}

// CancelSessionHandler handles DELETE /api/wizard/session/:sessionID.
func (h *WizardHandler) CancelSessionHandler(c *gin.Context) {
	if err := h.Service.CancelSession(c.Param("sessionID"), c.GetString("userID")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session cancelled"})
}
