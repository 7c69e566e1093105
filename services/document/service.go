package document

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"adamosign/config"
	"adamosign/models"
	"adamosign/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Guest tokens stay valid for the typical life of a signature round.
const signerTokenTTL = 30 * 24 * time.Hour

// Submit turns the wizard session into a persisted document: assembles the
// payload, uploads the PDF, mints per-signer guest tokens and links, stores
// the record, and fans out invitations. There is no partial success: on any
// error the document is not created and the caller keeps its session state
// for a retry.
func (s *DefaultDocumentService) Submit(ctx context.Context, session *models.WizardSession, file []byte, owner *models.User, status string) (*models.Document, error) {
	logger := utils.GetLogger()

	sub, err := Assemble(session, file, status)
	if err != nil {
		return nil, err
	}

	docID := uuid.New().String()
	fileKey := fmt.Sprintf("documents/%s.pdf", docID)
	if err := s.Storage.Upload(ctx, fileKey, sub.File, "application/pdf"); err != nil {
		return nil, fmt.Errorf("failed to store document file: %w", err)
	}

	doc := &models.Document{
		ID:         docID,
		OwnerID:    owner.ID,
		OwnerEmail: owner.Email,
		Filename:   sub.Filename,
		FileKey:    fileKey,
		Status:     sub.Status,
		Options:    sub.Options,
	}

	for _, p := range sub.Participians {
		signerID := uuid.New().String()
		tokenStr, err := utils.GenerateSignerToken(docID, signerID, signerTokenTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to mint signer token: %w", err)
		}
		signerLink := fmt.Sprintf("%s/sign?data=%s",
			config.AppConfig.GuestLinkBaseURL, url.QueryEscape(tokenStr))

		doc.Participants = append(doc.Participants, models.DocumentSigner{
			SignerID:          signerID,
			FirstName:         p.FirstName,
			LastName:          p.LastName,
			Email:             p.Email,
			Phone:             p.Phone,
			TypeNotification:  p.TypeNotification,
			RequireValidation: p.RequireValidation,
			TypeValidation:    p.TypeValidation,
			Signatures:        p.Signatures,
			Token:             TokenFromSignerLink(signerLink),
			SignerLink:        signerLink,
			Status:            models.SignerStatusPending,
		})
	}

	if err := s.Repo.Create(doc); err != nil {
		return nil, fmt.Errorf("failed to persist document: %w", err)
	}

	if doc.Status == models.DocumentStatusSent {
		s.dispatchInvitations(ctx, doc, owner.Email)

		if doc.Options.RemindEvery3Days && s.Reminders != nil {
			if err := s.Reminders.ScheduleReminder(doc); err != nil {
				// Reminders are best-effort; the submission already succeeded.
				logger.Warn("failed to schedule reminder", zap.String("documentId", doc.ID), zap.Error(err))
			}
		}
	}

	return doc, nil
}

// dispatchInvitations notifies every non-self signer. Self-signers are not
// emailed a link; the caller routes them through the in-app flow using the
// signer link returned on the document.
func (s *DefaultDocumentService) dispatchInvitations(ctx context.Context, doc *models.Document, ownerEmail string) {
	logger := utils.GetLogger()
	for _, signer := range doc.Participants {
		self := models.Participant{Email: signer.Email}.IsSelf(ownerEmail)
		if self {
			logger.Info("skipping invitation for self-signer",
				zap.String("documentId", doc.ID), zap.String("signerId", signer.SignerID))
			continue
		}
		if err := s.Notifier.NotifyInvitation(ctx, doc, signer); err != nil {
			logger.Warn("invitation dispatch failed",
				zap.String("documentId", doc.ID), zap.String("signerId", signer.SignerID), zap.Error(err))
		}
	}
}

// GetDocument loads a document and verifies ownership.
func (s *DefaultDocumentService) GetDocument(ownerID, documentID string) (*models.Document, error) {
	doc, err := s.Repo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.OwnerID != ownerID {
		return nil, NewDocumentNotFoundError(documentID)
	}
	return doc, nil
}

// ListDocuments returns the owner's documents, newest first.
func (s *DefaultDocumentService) ListDocuments(ownerID string) ([]models.Document, error) {
	return s.Repo.GetByOwner(ownerID)
}

// DeleteDraft removes a draft document and its stored file. Sent documents
// cannot be deleted through this path.
func (s *DefaultDocumentService) DeleteDraft(ctx context.Context, ownerID, documentID string) error {
	doc, err := s.GetDocument(ownerID, documentID)
	if err != nil {
		return err
	}
	if doc.Status != models.DocumentStatusDraft {
		return &DocumentError{Code: "notDraft", Message: fmt.Sprintf("document %s is not a draft", documentID)}
	}
	if err := s.Repo.Delete(documentID); err != nil {
		return err
	}
	if err := s.Storage.Delete(ctx, doc.FileKey); err != nil {
		utils.GetLogger().Warn("failed to delete stored file for draft",
			zap.String("documentId", documentID), zap.Error(err))
	}
	return nil
}
