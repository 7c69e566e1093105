package guest

import (
	"context"

	docRepo "adamosign/database/repository/document"
	"adamosign/models"
	"adamosign/services/notifier"
)

// GuestView is what a token exchange resolves to: the document, the signer
// the token belongs to, and the derived flow state with its allowed actions.
type GuestView struct {
	Document  *models.Document `json:"document"`
	SignerID  string           `json:"signerId"`
	State     State            `json:"state"`
	CanSign   bool             `json:"canSign"`
	CanReject bool             `json:"canReject"`
}

// SignatureInput is the guest's submission for one pending signature field.
type SignatureInput struct {
	SignID              string
	Signature           string
	SignatureType       string
	SignatureText       string
	SignatureFontFamily string
}

// Outcome is the result of a sign or reject action. RedirectURL is set when
// the notification bot asks for a WhatsApp deep-link redirect.
type Outcome struct {
	State       State  `json:"state"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// GuestService is the token-authenticated, account-less path by which an
// invited signer interacts with a single document.
type GuestService interface {
	Exchange(token string) (*GuestView, error)
	Sign(ctx context.Context, documentID, signerID, token string, input SignatureInput) (*Outcome, error)
	Reject(ctx context.Context, documentID, signerID, token, reason string) (*Outcome, error)
}

// DefaultGuestService implements GuestService.
type DefaultGuestService struct {
	Repo docRepo.DocumentRepository
	Bot  notifier.Notifier
}
