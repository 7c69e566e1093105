package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"adamosign/models"
	"adamosign/utils"

	"go.uber.org/zap"
)

// BotClient talks to the notification bot webhook. With an empty BaseURL
// every call is a no-op, which keeps local development quiet.
type BotClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewBotClient creates a webhook client for the given base URL.
func NewBotClient(baseURL string) *BotClient {
	return &BotClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NotifySigned reports a completed signature to the bot.
func (b *BotClient) NotifySigned(ctx context.Context, token string) (*BotResult, error) {
	return b.post(ctx, "/whatsapp/signed", token)
}

// NotifyRejected reports a rejection to the bot.
func (b *BotClient) NotifyRejected(ctx context.Context, token string) (*BotResult, error) {
	return b.post(ctx, "/whatsapp/rejected", token)
}

// NotifyInvitation records the invitation fan-out for a signer. Actual
// delivery (email/WhatsApp/Telegram) is handled by the external messaging
// services; here we only log what was dispatched where.
func (b *BotClient) NotifyInvitation(ctx context.Context, doc *models.Document, signer models.DocumentSigner) error {
	utils.GetLogger().Info("dispatching signer invitation",
		zap.String("documentId", doc.ID),
		zap.String("signerId", signer.SignerID),
		zap.String("channel", signer.TypeNotification),
		zap.String("email", signer.Email),
	)
	return nil
}

func (b *BotClient) post(ctx context.Context, path, token string) (*BotResult, error) {
	if b.BaseURL == "" {
		return nil, nil
	}

	body, err := json.Marshal(map[string]string{"token": token})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bot payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build bot request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bot webhook call failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		// Nothing further to do.
		return nil, nil
	case http.StatusOK:
		var payload struct {
			To string `json:"to"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("failed to decode bot response: %w", err)
		}
		if payload.To == "" {
			return nil, nil
		}
		return &BotResult{RedirectURL: "https://wa.me/" + payload.To}, nil
	default:
		return nil, fmt.Errorf("bot webhook returned status %d", resp.StatusCode)
	}
}
