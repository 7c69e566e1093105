package notifier

import (
	"context"

	"adamosign/models"
)

// BotResult carries the optional follow-up from the notification bot. A nil
// result means no further action; a RedirectURL asks the caller to send the
// browser to a WhatsApp deep link.
type BotResult struct {
	RedirectURL string `json:"redirectUrl"`
}

// Notifier delivers workflow notifications. All calls are best-effort from
// the workflow's point of view: callers log failures and move on.
type Notifier interface {
	NotifySigned(ctx context.Context, token string) (*BotResult, error)
	NotifyRejected(ctx context.Context, token string) (*BotResult, error)
	NotifyInvitation(ctx context.Context, doc *models.Document, signer models.DocumentSigner) error
}
