package handlers

import (
	"errors"
	"io"
	"net/http"

	"adamosign/models"
	"adamosign/services/document"
	"adamosign/services/storage"
	"adamosign/services/wizard"
	"adamosign/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DocumentHandler exposes the owner-facing document surface.
type DocumentHandler struct {
	Docs    document.DocumentService
	Wizard  wizard.WizardSessionService
	Storage storage.FileStorage
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(docs document.DocumentService, wiz wizard.WizardSessionService, store storage.FileStorage) *DocumentHandler {
	return &DocumentHandler{Docs: docs, Wizard: wiz, Storage: store}
}

// SubmitDocumentHandler handles POST /api/documents. It takes the wizard
// session plus the assembled PDF as one multipart request and produces
// exactly one document; on success the session's placed signatures are
// cleared, on failure they are left intact so the user can retry without
// re-placing anything.
func (h *DocumentHandler) SubmitDocumentHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID := c.GetString("userID")
	userEmail := c.GetString("userEmail")

	sessionID := c.PostForm("sessionID")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessionID is required"})
		return
	}
	status := c.PostForm("status")
	if status == "" {
		status = models.DocumentStatusSent
	}

	session, err := h.Wizard.GetSession(sessionID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var file []byte
	if fileHeader, err := c.FormFile("file"); err == nil {
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file", "details": err.Error()})
			return
		}
		defer f.Close()
		if file, err = io.ReadAll(f); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file", "details": err.Error()})
			return
		}
	} else if session.FileKey != "" {
		// Fall back to the PDF staged during the upload step.
		if file, err = h.Storage.Download(c.Request.Context(), session.FileKey); err != nil {
			logger.Error("failed to fetch staged file", zap.String("fileKey", session.FileKey), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch staged file"})
			return
		}
	}

	owner := &models.User{ID: userID, Email: userEmail}
	doc, err := h.Docs.Submit(c.Request.Context(), session, file, owner, status)
	if err != nil {
		if errors.Is(err, document.ErrEmptyFile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("document submission failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create document", "details": err.Error()})
		return
	}

	if err := h.Wizard.ClearSignatures(sessionID, userID); err != nil {
		logger.Warn("failed to clear wizard signatures after submission", zap.Error(err))
	}

	c.JSON(http.StatusCreated, doc)
}

// ListDocumentsHandler handles GET /api/documents.
func (h *DocumentHandler) ListDocumentsHandler(c *gin.Context) {
	docs, err := h.Docs.ListDocuments(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// GetDocumentHandler handles GET /api/documents/id/:documentId.
func (h *DocumentHandler) GetDocumentHandler(c *gin.Context) {
	doc, err := h.Docs.GetDocument(c.GetString("userID"), c.Param("documentId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GetDocumentFileHandler handles GET /api/documents/id/:documentId/file,
// returning a short-lived download URL.
func (h *DocumentHandler) GetDocumentFileHandler(c *gin.Context) {
	doc, err := h.Docs.GetDocument(c.GetString("userID"), c.Param("documentId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	url, err := h.Storage.PresignDownload(c.Request.Context(), doc.FileKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to presign download", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// DeleteDraftHandler handles DELETE /api/documents/id/:documentId.
func (h *DocumentHandler) DeleteDraftHandler(c *gin.Context) {
	if err := h.Docs.DeleteDraft(c.Request.Context(), c.GetString("userID"), c.Param("documentId")); err != nil {
		var docErr *document.DocumentError
		if errors.As(err, &docErr) && docErr.Code == "notDraft" {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Draft deleted"})
}
