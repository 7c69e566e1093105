package handlers

import (
	"errors"
	"net/http"

	"adamosign/services/guest"

	"github.com/gin-gonic/gin"
)

// GuestHandler exposes the token-authenticated guest signer flow.
type GuestHandler struct {
	Guest guest.GuestService
}

// NewGuestHandler creates a GuestHandler.
func NewGuestHandler(svc guest.GuestService) *GuestHandler {
	return &GuestHandler{Guest: svc}
}

// ExchangeTokenHandler handles POST /api/documents/sign/:token, resolving
// the guest token to the document and signer in a single call.
func (h *GuestHandler) ExchangeTokenHandler(c *gin.Context) {
	view, err := h.Guest.Exchange(c.Param("token"))
	if err != nil {
		guestError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// SignerActionHandler handles POST /api/documents/:documentId/signer/:signerId.
// With rejected=true it records a rejection; otherwise it records the
// signature submitted in the signatures[0].* form fields. The two actions
// are mutually exclusive.
func (h *GuestHandler) SignerActionHandler(c *gin.Context) {
	documentID := c.Param("documentId")
	signerID := c.Param("signerId")
	token := c.PostForm("token")

	if c.PostForm("rejected") == "true" {
		outcome, err := h.Guest.Reject(c.Request.Context(), documentID, signerID, token, c.PostForm("reason"))
		if err != nil {
			guestError(c, err)
			return
		}
		c.JSON(http.StatusOK, outcome)
		return
	}

	input := guest.SignatureInput{
		SignID:              c.PostForm("signatures[0].signId"),
		Signature:           c.PostForm("signatures[0].signature"),
		SignatureType:       c.PostForm("signatures[0].signatureType"),
		SignatureText:       c.PostForm("signatureText"),
		SignatureFontFamily: c.PostForm("signatureFontFamily"),
	}
	outcome, err := h.Guest.Sign(c.Request.Context(), documentID, signerID, token, input)
	if err != nil {
		guestError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// guestError maps guest flow error codes onto HTTP statuses.
func guestError(c *gin.Context, err error) {
	var ge *guest.GuestError
	if !errors.As(err, &ge) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": err.Error()})
		return
	}
	switch {
	case ge.Code == guest.CodeInvalidToken:
		c.JSON(http.StatusUnauthorized, gin.H{"error": ge.Message, "code": ge.Code})
	case ge.Code == guest.CodeDocumentNotFound,
		ge.Code == guest.CodeSignerNotFound,
		ge.Code == guest.CodeSignatureNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": ge.Message, "code": ge.Code})
	case guest.IsConflict(ge):
		c.JSON(http.StatusConflict, gin.H{"error": ge.Message, "code": ge.Code})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": ge.Message, "code": ge.Code})
	}
}
