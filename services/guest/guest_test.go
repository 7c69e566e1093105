package guest

import (
	"context"
	"errors"
	"testing"
	"time"

	"adamosign/models"
	"adamosign/services/notifier"
	"adamosign/utils"
)

// fakeDocumentRepo is an in-memory stand-in for the Mongo repository.
type fakeDocumentRepo struct {
	docs map[string]*models.Document
}

func newFakeDocumentRepo(docs ...*models.Document) *fakeDocumentRepo {
	r := &fakeDocumentRepo{docs: make(map[string]*models.Document)}
	for _, d := range docs {
		r.docs[d.ID] = d
	}
	return r
}

func (r *fakeDocumentRepo) Create(doc *models.Document) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocumentRepo) Update(doc *models.Document) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeDocumentRepo) Delete(id string) error {
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepo) GetByID(id string) (*models.Document, error) {
	doc, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	// Hand out a copy so the service mutates its own view, as it would with
	// a decoded Mongo result.
	cp := *doc
	cp.Participants = append([]models.DocumentSigner(nil), doc.Participants...)
	return &cp, nil
}

func (r *fakeDocumentRepo) GetByOwner(ownerID string) ([]models.Document, error) {
	var out []models.Document
	for _, d := range r.docs {
		if d.OwnerID == ownerID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) SetStatus(id, status string) error {
	doc, ok := r.docs[id]
	if !ok {
		return errors.New("document not found")
	}
	doc.Status = status
	return nil
}

func (r *fakeDocumentRepo) UpdateSigner(documentID string, signer models.DocumentSigner) error {
	doc, ok := r.docs[documentID]
	if !ok {
		return errors.New("document not found")
	}
	for i := range doc.Participants {
		if doc.Participants[i].SignerID == signer.SignerID {
			doc.Participants[i] = signer
			return nil
		}
	}
	return errors.New("signer not found")
}

// fakeBot records notification calls and can fail or redirect on demand.
type fakeBot struct {
	signedCalls   int
	rejectedCalls int
	redirect      string
	err           error
}

func (b *fakeBot) NotifySigned(ctx context.Context, token string) (*notifier.BotResult, error) {
	b.signedCalls++
	if b.err != nil {
		return nil, b.err
	}
	if b.redirect != "" {
		return &notifier.BotResult{RedirectURL: b.redirect}, nil
	}
	return nil, nil
}

func (b *fakeBot) NotifyRejected(ctx context.Context, token string) (*notifier.BotResult, error) {
	b.rejectedCalls++
	if b.err != nil {
		return nil, b.err
	}
	return nil, nil
}

func (b *fakeBot) NotifyInvitation(ctx context.Context, doc *models.Document, signer models.DocumentSigner) error {
	return nil
}

func signerToken(t *testing.T, documentID, signerID string) string {
	t.Helper()
	token, err := utils.GenerateSignerToken(documentID, signerID, time.Hour)
	if err != nil {
		t.Fatalf("mint signer token: %v", err)
	}
	return token
}

func twoSignerDocument(allowReject bool) *models.Document {
	return &models.Document{
		ID:      "doc_1",
		OwnerID: "user_1",
		Status:  models.DocumentStatusSent,
		Options: models.DocumentOptions{AllowReject: allowReject},
		Participants: []models.DocumentSigner{
			{
				SignerID: "signer_1",
				Email:    "ana@example.com",
				Status:   models.SignerStatusPending,
				Signatures: []models.Signature{
					{ID: "sig_1", RecipientEmail: "ana@example.com"},
				},
			},
			{
				SignerID: "signer_2",
				Email:    "ben@example.com",
				Status:   models.SignerStatusPending,
				Signatures: []models.Signature{
					{ID: "sig_2", RecipientEmail: "ben@example.com"},
				},
			},
		},
	}
}

func guestErrorCode(t *testing.T, err error) string {
	t.Helper()
	var ge *GuestError
	if !errors.As(err, &ge) {
		t.Fatalf("expected a GuestError, got %v", err)
	}
	return ge.Code
}

func TestExchangeResolvesDocumentAndSigner(t *testing.T) {
	repo := newFakeDocumentRepo(twoSignerDocument(true))
	svc := &DefaultGuestService{Repo: repo}

	view, err := svc.Exchange(signerToken(t, "doc_1", "signer_1"))
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if view.Document.ID != "doc_1" || view.SignerID != "signer_1" {
		t.Fatalf("unexpected view: %+v", view)
	}
	if view.State != StateLoaded {
		t.Fatalf("expected loaded state, got %q", view.State)
	}
	if !view.CanSign || !view.CanReject {
		t.Fatalf("expected both actions available, got canSign=%v canReject=%v", view.CanSign, view.CanReject)
	}
}

func TestExchangeRejectsGarbageToken(t *testing.T) {
	svc := &DefaultGuestService{Repo: newFakeDocumentRepo()}
	_, err := svc.Exchange("not-a-jwt")
	if guestErrorCode(t, err) != CodeInvalidToken {
		t.Fatalf("expected invalidToken, got %v", err)
	}
}

func TestExchangeRejectsAccountToken(t *testing.T) {
	// An account JWT has no signer scope and must not open the guest flow.
	token, err := utils.GenerateToken("user_1", "ana@example.com", time.Hour)
	if err != nil {
		t.Fatalf("mint account token: %v", err)
	}
	svc := &DefaultGuestService{Repo: newFakeDocumentRepo(twoSignerDocument(true))}
	_, err = svc.Exchange(token)
	if guestErrorCode(t, err) != CodeInvalidToken {
		t.Fatalf("expected invalidToken for an account token, got %v", err)
	}
}

func TestExchangeOnRejectedDocumentShortCircuits(t *testing.T) {
	doc := twoSignerDocument(true)
	doc.Status = models.DocumentStatusRejected
	svc := &DefaultGuestService{Repo: newFakeDocumentRepo(doc)}

	view, err := svc.Exchange(signerToken(t, "doc_1", "signer_1"))
	if err != nil {
		t.Fatalf("exchange failed: %v", err)
	}
	if view.State != StateRejected {
		t.Fatalf("expected rejected state regardless of signer status, got %q", view.State)
	}
	if view.CanSign || view.CanReject {
		t.Fatalf("expected a read-only view on a rejected document")
	}
}

func TestSignRollsUpToPartialThenCompleted(t *testing.T) {
	repo := newFakeDocumentRepo(twoSignerDocument(true))
	svc := &DefaultGuestService{Repo: repo}
	ctx := context.Background()

	out, err := svc.Sign(ctx, "doc_1", "signer_1", signerToken(t, "doc_1", "signer_1"),
		SignatureInput{SignID: "sig_1", Signature: "data:image/png;base64,AAA", SignatureType: "draw"})
	if err != nil {
		t.Fatalf("first sign failed: %v", err)
	}
	if out.State != StateSigned {
		t.Fatalf("expected signed outcome, got %q", out.State)
	}
	if repo.docs["doc_1"].Status != models.DocumentStatusPartial {
		t.Fatalf("expected partial after one of two signers, got %q", repo.docs["doc_1"].Status)
	}
	signed := repo.docs["doc_1"].Signer("signer_1")
	if signed.Status != models.SignerStatusSigned || signed.SignedAt == nil {
		t.Fatalf("expected signer_1 marked signed with a timestamp, got %+v", signed)
	}
	if !signed.Signatures[0].SignatureIsEdit || signed.Signatures[0].SignatureContent == "" {
		t.Fatalf("expected the signature field filled in, got %+v", signed.Signatures[0])
	}

	if _, err := svc.Sign(ctx, "doc_1", "signer_2", signerToken(t, "doc_1", "signer_2"),
		SignatureInput{SignID: "sig_2", Signature: "data:image/png;base64,BBB", SignatureType: "draw"}); err != nil {
		t.Fatalf("second sign failed: %v", err)
	}
	if repo.docs["doc_1"].Status != models.DocumentStatusCompleted {
		t.Fatalf("expected completed after all signers, got %q", repo.docs["doc_1"].Status)
	}
}

func TestSignRetryAfterSuccessIsConflict(t *testing.T) {
	repo := newFakeDocumentRepo(twoSignerDocument(true))
	svc := &DefaultGuestService{Repo: repo}
	ctx := context.Background()
	token := signerToken(t, "doc_1", "signer_1")
	input := SignatureInput{SignID: "sig_1", Signature: "x", SignatureType: "draw"}

	if _, err := svc.Sign(ctx, "doc_1", "signer_1", token, input); err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	_, err := svc.Sign(ctx, "doc_1", "signer_1", token, input)
	if guestErrorCode(t, err) != CodeAlreadySigned {
		t.Fatalf("expected alreadySigned on retry, got %v", err)
	}
	if !IsConflict(err) {
		t.Fatalf("expected alreadySigned to classify as conflict")
	}
}

func TestSignRejectsTokenForAnotherSigner(t *testing.T) {
	repo := newFakeDocumentRepo(twoSignerDocument(true))
	svc := &DefaultGuestService{Repo: repo}

	_, err := svc.Sign(context.Background(), "doc_1", "signer_1", signerToken(t, "doc_1", "signer_2"),
		SignatureInput{SignID: "sig_1", Signature: "x", SignatureType: "draw"})
	if guestErrorCode(t, err) != CodeInvalidToken {
		t.Fatalf("expected invalidToken when token and path disagree, got %v", err)
	}
}

func TestSignUnknownSignatureField(t *testing.T) {
	repo := newFakeDocumentRepo(twoSignerDocument(true))
	svc := &DefaultGuestService{Repo: repo}

	_, err := svc.Sign(context.Background(), "doc_1", "signer_1", signerToken(t, "doc_1", "signer_1"),
		SignatureInput{SignID: "sig_missing", Signature: "x", SignatureType: "draw"})
	if guestErrorCode(t, err) != CodeSignatureNotFound {
		t.Fatalf("expected signatureNotFound, got %v", err)
	}
	if repo.docs["doc_1"].Signer("signer_1").Status != models.SignerStatusPending {
		t.Fatalf("expected the signer untouched after a failed sign")
	}
}

func TestRejectIsTerminalForTheDocument(t *testing.T) {
	repo := newFakeDocumentRepo(twoSignerDocument(true))
	bot := &fakeBot{}
	svc := &DefaultGuestService{Repo: repo, Bot: bot}
	ctx := context.Background()

	out, err := svc.Reject(ctx, "doc_1", "signer_1", signerToken(t, "doc_1", "signer_1"), "wrong amount")
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if out.State != StateRejected {
		t.Fatalf("expected rejected outcome, got %q", out.State)
	}
	if repo.docs["doc_1"].Status != models.DocumentStatusRejected {
		t.Fatalf("expected the whole document rejected, got %q", repo.docs["doc_1"].Status)
	}
	if repo.docs["doc_1"].Signer("signer_1").RejectionReason != "wrong amount" {
		t.Fatalf("expected the reason persisted")
	}
	if bot.rejectedCalls != 1 {
		t.Fatalf("expected one rejected notification, got %d", bot.rejectedCalls)
	}

	// The other signer can no longer act.
	_, err = svc.Sign(ctx, "doc_1", "signer_2", signerToken(t, "doc_1", "signer_2"),
		SignatureInput{SignID: "sig_2", Signature: "x", SignatureType: "draw"})
	if guestErrorCode(t, err) != CodeDocumentRejected {
		t.Fatalf("expected documentRejected for the remaining signer, got %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	svc := &DefaultGuestService{Repo: newFakeDocumentRepo(twoSignerDocument(true))}
	_, err := svc.Reject(context.Background(), "doc_1", "signer_1", signerToken(t, "doc_1", "signer_1"), "   ")
	if guestErrorCode(t, err) != CodeReasonRequired {
		t.Fatalf("expected reasonRequired, got %v", err)
	}
}

func TestRejectHonorsAllowRejectOption(t *testing.T) {
	repo := newFakeDocumentRepo(twoSignerDocument(false))
	svc := &DefaultGuestService{Repo: repo}
	_, err := svc.Reject(context.Background(), "doc_1", "signer_1", signerToken(t, "doc_1", "signer_1"), "no")
	if guestErrorCode(t, err) != CodeRejectNotAllowed {
		t.Fatalf("expected rejectNotAllowed, got %v", err)
	}
	if repo.docs["doc_1"].Status != models.DocumentStatusSent {
		t.Fatalf("expected the document untouched, got %q", repo.docs["doc_1"].Status)
	}
}

func TestSignBotFailureDoesNotAffectOutcome(t *testing.T) {
	repo := newFakeDocumentRepo(twoSignerDocument(true))
	bot := &fakeBot{err: errors.New("bot unreachable")}
	svc := &DefaultGuestService{Repo: repo, Bot: bot}

	out, err := svc.Sign(context.Background(), "doc_1", "signer_1", signerToken(t, "doc_1", "signer_1"),
		SignatureInput{SignID: "sig_1", Signature: "x", SignatureType: "draw"})
	if err != nil {
		t.Fatalf("expected the sign to succeed despite the bot failure, got %v", err)
	}
	if out.RedirectURL != "" {
		t.Fatalf("expected no redirect on bot failure")
	}
	if bot.signedCalls != 1 {
		t.Fatalf("expected the bot to have been called once, got %d", bot.signedCalls)
	}
}

func TestSignBotRedirectPropagates(t *testing.T) {
	repo := newFakeDocumentRepo(twoSignerDocument(true))
	bot := &fakeBot{redirect: "https://wa.me/5215512345678"}
	svc := &DefaultGuestService{Repo: repo, Bot: bot}

	out, err := svc.Sign(context.Background(), "doc_1", "signer_1", signerToken(t, "doc_1", "signer_1"),
		SignatureInput{SignID: "sig_1", Signature: "x", SignatureType: "draw"})
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if out.RedirectURL != bot.redirect {
		t.Fatalf("expected the bot redirect surfaced, got %q", out.RedirectURL)
	}
}
