// File: services/wizard/session.go
package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"adamosign/models"
	"adamosign/services/document"
	"adamosign/utils"

	"github.com/google/uuid"
)

// Sessions idle out after this TTL; every save refreshes it.
const sessionTTL = 2 * time.Hour

func sessionKey(sessionID string) string {
	return "wizard:" + sessionID
}

// StartSession creates a new wizard session at the upload step, assigns it a
// unique SessionID, and stores it in Redis.
func (s *DefaultWizardSessionService) StartSession(userID string) (*models.WizardSession, error) {
	session := &models.WizardSession{
		SessionID:     uuid.New().String(),
		UserID:        userID,
		CurrentStep:   StepUpload,
		CreatedAt:     time.Now(),
		LastUpdatedAt: time.Now(),
	}
	if err := saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession loads a session and verifies it belongs to the given user.
func (s *DefaultWizardSessionService) GetSession(sessionID, userID string) (*models.WizardSession, error) {
	return loadSession(sessionID, userID)
}

// GoToStep applies the navigation guard and persists the result. An
// unreachable step leaves the session untouched.
func (s *DefaultWizardSessionService) GoToStep(sessionID, userID string, step int) (*models.WizardSession, error) {
	session, err := loadSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if GoTo(session, step) {
		if err := saveSession(session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

// CompleteStep marks a step done and advances the session.
func (s *DefaultWizardSessionService) CompleteStep(sessionID, userID string, step int) (*models.WizardSession, error) {
	session, err := loadSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	CompleteStep(session, step)
	if err := saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetFile records the uploaded document's name and storage key.
func (s *DefaultWizardSessionService) SetFile(sessionID, userID, filename, fileKey string) (*models.WizardSession, error) {
	session, err := loadSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	session.Filename = filename
	session.FileKey = fileKey
	if err := saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// AddSignature places a new signature field.
func (s *DefaultWizardSessionService) AddSignature(sessionID, userID string, sig models.Signature) (*models.WizardSession, error) {
	session, err := loadSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	AddSignature(session, sig)
	if err := saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// MoveSignature repositions an existing signature field.
func (s *DefaultWizardSessionService) MoveSignature(sessionID, userID, signatureID string, left, top float64) (*models.WizardSession, error) {
	session, err := loadSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if !MoveSignature(session, signatureID, left, top) {
		return nil, &SessionError{Code: "signatureNotFound", Message: fmt.Sprintf("signature %s not found", signatureID)}
	}
	if err := saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSignature flags a signature field as deleted.
func (s *DefaultWizardSessionService) DeleteSignature(sessionID, userID, signatureID string) (*models.WizardSession, error) {
	session, err := loadSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if !DeleteSignature(session, signatureID) {
		return nil, &SessionError{Code: "signatureNotFound", Message: fmt.Sprintf("signature %s not found", signatureID)}
	}
	if err := saveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetParticipants validates and stores the participant list and submission
// options. Validation failures come back as field errors, not as an error.
func (s *DefaultWizardSessionService) SetParticipants(sessionID, userID string, participants []models.Participant, options models.DocumentOptions) (*models.WizardSession, []models.FieldError, error) {
	session, err := loadSession(sessionID, userID)
	if err != nil {
		return nil, nil, err
	}
	if fieldErrs := document.ValidateParticipants(participants); len(fieldErrs) > 0 {
		return session, fieldErrs, nil
	}
	session.Participants = participants
	session.Options = options
	if err := saveSession(session); err != nil {
		return nil, nil, err
	}
	return session, nil, nil
}

// ClearSignatures drops all placed signatures; used after a successful
// submission so a retry never resubmits stale placements.
func (s *DefaultWizardSessionService) ClearSignatures(sessionID, userID string) error {
	session, err := loadSession(sessionID, userID)
	if err != nil {
		return err
	}
	session.Signatures = nil
	return saveSession(session)
}

// CancelSession deletes the session data from the cache.
func (s *DefaultWizardSessionService) CancelSession(sessionID, userID string) error {
	if _, err := loadSession(sessionID, userID); err != nil {
		return err
	}
	ctx := context.Background()
	if err := utils.GetWizardCacheClient().Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to cancel wizard session: %w", err)
	}
	return nil
}

func loadSession(sessionID, userID string) (*models.WizardSession, error) {
	ctx := context.Background()
	data, err := utils.GetWizardCacheClient().Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, NewSessionNotFoundError(sessionID)
	}
	var session models.WizardSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse wizard session: %w", err)
	}
	if session.UserID != userID {
		return nil, NewSessionNotFoundError(sessionID)
	}
	return &session, nil
}

func saveSession(session *models.WizardSession) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	ctx := context.Background()
	if err := utils.GetWizardCacheClient().Set(ctx, sessionKey(session.SessionID), data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}
