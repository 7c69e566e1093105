package guest

import (
	"context"
	"strings"
	"time"

	"adamosign/models"
	"adamosign/services/notifier"
	"adamosign/utils"

	"go.uber.org/zap"
)

// Exchange resolves a guest token to the document and signer it was minted
// for, in a single call.
func (s *DefaultGuestService) Exchange(token string) (*GuestView, error) {
	documentID, signerID, err := utils.ParseSignerToken(token)
	if err != nil {
		return nil, newError(CodeInvalidToken, "guest token is invalid or expired")
	}

	doc, err := s.Repo.GetByID(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, newError(CodeDocumentNotFound, "document %s not found", documentID)
	}
	if doc.Signer(signerID) == nil {
		return nil, newError(CodeSignerNotFound, "signer %s not found on document %s", signerID, documentID)
	}

	state := StateFor(doc, signerID)
	canSign, canReject := ActionsFor(state, doc)
	return &GuestView{
		Document:  doc,
		SignerID:  signerID,
		State:     state,
		CanSign:   canSign,
		CanReject: canReject,
	}, nil
}

// Sign records the guest's mark on exactly one pending signature field
// belonging to the signer, rolls the document status forward, and fires the
// best-effort bot notification. The server is the source of truth for
// conflicts: a retry after success yields alreadySigned.
func (s *DefaultGuestService) Sign(ctx context.Context, documentID, signerID, token string, input SignatureInput) (*Outcome, error) {
	doc, signer, err := s.loadForAction(documentID, signerID, token)
	if err != nil {
		return nil, err
	}

	var target *models.Signature
	for i := range signer.Signatures {
		sig := &signer.Signatures[i]
		if sig.ID == input.SignID && !sig.SignatureDelete {
			target = sig
			break
		}
	}
	if target == nil {
		return nil, newError(CodeSignatureNotFound, "signature %s not found for signer %s", input.SignID, signerID)
	}

	target.SignatureContent = input.Signature
	target.SignatureType = input.SignatureType
	if input.SignatureText != "" {
		target.SignatureText = input.SignatureText
	}
	target.SignatureFontFamily = input.SignatureFontFamily
	target.SignatureIsEdit = true

	now := time.Now()
	signer.Status = models.SignerStatusSigned
	signer.SignedAt = &now

	if err := s.Repo.UpdateSigner(documentID, *signer); err != nil {
		return nil, err
	}

	status := rollUpStatus(doc, signerID)
	if err := s.Repo.SetStatus(documentID, status); err != nil {
		return nil, err
	}

	outcome := &Outcome{State: StateSigned}
	s.notify(ctx, token, true, outcome)
	return outcome, nil
}

// Reject declines the document with a required free-text reason. Rejection
// is terminal for the whole document.
func (s *DefaultGuestService) Reject(ctx context.Context, documentID, signerID, token, reason string) (*Outcome, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, newError(CodeReasonRequired, "a rejection reason is required")
	}

	doc, signer, err := s.loadForAction(documentID, signerID, token)
	if err != nil {
		return nil, err
	}
	if !doc.Options.AllowReject {
		return nil, newError(CodeRejectNotAllowed, "this document does not allow rejection")
	}

	signer.Status = models.SignerStatusRejected
	signer.RejectionReason = reason

	if err := s.Repo.UpdateSigner(documentID, *signer); err != nil {
		return nil, err
	}
	if err := s.Repo.SetStatus(documentID, models.DocumentStatusRejected); err != nil {
		return nil, err
	}

	outcome := &Outcome{State: StateRejected}
	s.notify(ctx, token, false, outcome)
	return outcome, nil
}

// loadForAction revalidates the token against the path parameters, loads the
// document, and rejects actions on documents or signers that are already
// settled.
func (s *DefaultGuestService) loadForAction(documentID, signerID, token string) (*models.Document, *models.DocumentSigner, error) {
	tokenDocID, tokenSignerID, err := utils.ParseSignerToken(token)
	if err != nil || tokenDocID != documentID || tokenSignerID != signerID {
		return nil, nil, newError(CodeInvalidToken, "guest token is invalid for this document")
	}

	doc, err := s.Repo.GetByID(documentID)
	if err != nil {
		return nil, nil, err
	}
	if doc == nil {
		return nil, nil, newError(CodeDocumentNotFound, "document %s not found", documentID)
	}
	if doc.Status == models.DocumentStatusRejected {
		return nil, nil, newError(CodeDocumentRejected, "document %s has been rejected", documentID)
	}

	signer := doc.Signer(signerID)
	if signer == nil {
		return nil, nil, newError(CodeSignerNotFound, "signer %s not found on document %s", signerID, documentID)
	}
	switch signer.Status {
	case models.SignerStatusSigned:
		return nil, nil, newError(CodeAlreadySigned, "signer %s has already signed", signerID)
	case models.SignerStatusRejected:
		return nil, nil, newError(CodeAlreadyRejected, "signer %s has already rejected", signerID)
	}
	return doc, signer, nil
}

// rollUpStatus computes the document status after signerID signed: completed
// once every signer is done, partial otherwise.
func rollUpStatus(doc *models.Document, signedNow string) string {
	for _, p := range doc.Participants {
		if p.SignerID == signedNow {
			continue
		}
		if p.Status == models.SignerStatusPending {
			return models.DocumentStatusPartial
		}
	}
	return models.DocumentStatusCompleted
}

// notify fires the out-of-band bot webhook. Failures are logged and
// discarded; they never affect the user-visible outcome.
func (s *DefaultGuestService) notify(ctx context.Context, token string, signed bool, outcome *Outcome) {
	if s.Bot == nil {
		return
	}
	var result *notifier.BotResult
	var err error
	if signed {
		result, err = s.Bot.NotifySigned(ctx, token)
	} else {
		result, err = s.Bot.NotifyRejected(ctx, token)
	}
	if err != nil {
		utils.GetLogger().Warn("bot notification failed", zap.Error(err))
		return
	}
	if result != nil {
		outcome.RedirectURL = result.RedirectURL
	}
}
