package document

import (
	"context"
	"errors"
	"testing"

	"adamosign/models"
	"adamosign/services/notifier"
	"adamosign/utils"
)

type fakeDocumentRepo struct {
	docs map[string]*models.Document
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*models.Document)}
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
	return doc, nil
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

type fakeStorage struct {
	files   map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(ctx context.Context, key string, content []byte, contentType string) error {
	s.files[key] = content
	return nil
}

func (s *fakeStorage) Download(ctx context.Context, key string) ([]byte, error) {
	content, ok := s.files[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return content, nil
}

func (s *fakeStorage) PresignDownload(ctx context.Context, key string) (string, error) {
	return "https://files.example.com/" + key, nil
}

func (s *fakeStorage) Delete(ctx context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.files, key)
	return nil
}

type fakeNotifier struct {
	invited []string
}

func (n *fakeNotifier) NotifySigned(ctx context.Context, token string) (*notifier.BotResult, error) {
	return nil, nil
}

func (n *fakeNotifier) NotifyRejected(ctx context.Context, token string) (*notifier.BotResult, error) {
	return nil, nil
}

func (n *fakeNotifier) NotifyInvitation(ctx context.Context, doc *models.Document, signer models.DocumentSigner) error {
	n.invited = append(n.invited, signer.Email)
	return nil
}

type fakeReminders struct {
	scheduled []string
	err       error
}

func (r *fakeReminders) ScheduleReminder(doc *models.Document) error {
	if r.err != nil {
		return r.err
	}
	r.scheduled = append(r.scheduled, doc.ID)
	return nil
}

func submitFixture() (*DefaultDocumentService, *fakeDocumentRepo, *fakeStorage, *fakeNotifier, *fakeReminders) {
	repo := newFakeDocumentRepo()
	store := newFakeStorage()
	notif := &fakeNotifier{}
	rem := &fakeReminders{}
	svc := &DefaultDocumentService{Repo: repo, Storage: store, Notifier: notif, Reminders: rem}
	return svc, repo, store, notif, rem
}

func ownerFixture() *models.User {
	return &models.User{ID: "user_1", Email: "owner@example.com"}
}

func TestSubmitSentDocument(t *testing.T) {
	svc, repo, store, notif, _ := submitFixture()
	session := draftSession()

	doc, err := svc.Submit(context.Background(), session, []byte("%PDF-1.4"), ownerFixture(), models.DocumentStatusSent)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if doc.Status != models.DocumentStatusSent {
		t.Fatalf("expected sent status, got %q", doc.Status)
	}
	if _, ok := repo.docs[doc.ID]; !ok {
		t.Fatalf("expected the document persisted")
	}
	if _, ok := store.files[doc.FileKey]; !ok {
		t.Fatalf("expected the file uploaded under %q", doc.FileKey)
	}
	if len(doc.Participants) != 2 {
		t.Fatalf("expected 2 signers, got %d", len(doc.Participants))
	}
	for _, signer := range doc.Participants {
		if signer.SignerID == "" || signer.Token == "" || signer.SignerLink == "" {
			t.Fatalf("expected signer id, token and link minted, got %+v", signer)
		}
		if signer.Status != models.SignerStatusPending {
			t.Fatalf("expected pending signer, got %q", signer.Status)
		}
		// The persisted token must round-trip out of the signer link.
		if TokenFromSignerLink(signer.SignerLink) != signer.Token {
			t.Fatalf("token and signer link disagree for %s", signer.SignerID)
		}
		gotDoc, gotSigner, err := utils.ParseSignerToken(signer.Token)
		if err != nil || gotDoc != doc.ID || gotSigner != signer.SignerID {
			t.Fatalf("signer token does not resolve to its signer: %v", err)
		}
	}
	if len(notif.invited) != 2 {
		t.Fatalf("expected both signers invited, got %v", notif.invited)
	}
}

func TestSubmitDraftSkipsInvitations(t *testing.T) {
	svc, _, _, notif, rem := submitFixture()
	session := draftSession()
	session.Options.RemindEvery3Days = true

	doc, err := svc.Submit(context.Background(), session, []byte("%PDF-1.4"), ownerFixture(), models.DocumentStatusDraft)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if doc.Status != models.DocumentStatusDraft {
		t.Fatalf("expected draft status, got %q", doc.Status)
	}
	if len(notif.invited) != 0 {
		t.Fatalf("expected no invitations for a draft, got %v", notif.invited)
	}
	if len(rem.scheduled) != 0 {
		t.Fatalf("expected no reminders for a draft, got %v", rem.scheduled)
	}
}

func TestSubmitSkipsSelfSignerInvitation(t *testing.T) {
	svc, _, _, notif, _ := submitFixture()
	session := draftSession()
	// The owner signs their own document; the email comparison is
	// case-insensitive.
	session.Participants[0].Email = "Owner@Example.com"
	session.Signatures[0].RecipientEmail = "Owner@Example.com"

	_, err := svc.Submit(context.Background(), session, []byte("%PDF-1.4"), ownerFixture(), models.DocumentStatusSent)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(notif.invited) != 1 || notif.invited[0] != "ben@example.com" {
		t.Fatalf("expected only the non-self signer invited, got %v", notif.invited)
	}
}

func TestSubmitSchedulesReminderWhenOpted(t *testing.T) {
	svc, _, _, _, rem := submitFixture()
	session := draftSession()
	session.Options.RemindEvery3Days = true

	doc, err := svc.Submit(context.Background(), session, []byte("%PDF-1.4"), ownerFixture(), models.DocumentStatusSent)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(rem.scheduled) != 1 || rem.scheduled[0] != doc.ID {
		t.Fatalf("expected one reminder scheduled for the document, got %v", rem.scheduled)
	}
}

func TestSubmitSwallowsReminderFailure(t *testing.T) {
	svc, _, _, _, rem := submitFixture()
	rem.err = errors.New("queue unavailable")
	session := draftSession()
	session.Options.RemindEvery3Days = true

	if _, err := svc.Submit(context.Background(), session, []byte("%PDF-1.4"), ownerFixture(), models.DocumentStatusSent); err != nil {
		t.Fatalf("expected the submission to succeed despite the reminder failure, got %v", err)
	}
}

func TestSubmitEmptyFileDoesNotTouchStorage(t *testing.T) {
	svc, repo, store, _, _ := submitFixture()

	_, err := svc.Submit(context.Background(), draftSession(), nil, ownerFixture(), models.DocumentStatusSent)
	if !errors.Is(err, ErrEmptyFile) {
		t.Fatalf("expected ErrEmptyFile, got %v", err)
	}
	if len(store.files) != 0 {
		t.Fatalf("expected no upload on an empty file")
	}
	if len(repo.docs) != 0 {
		t.Fatalf("expected no document created on an empty file")
	}
}

func TestGetDocumentEnforcesOwnership(t *testing.T) {
	svc, repo, _, _, _ := submitFixture()
	repo.docs["doc_1"] = &models.Document{ID: "doc_1", OwnerID: "user_1", Status: models.DocumentStatusSent}

	if _, err := svc.GetDocument("user_1", "doc_1"); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	_, err := svc.GetDocument("user_2", "doc_1")
	var de *DocumentError
	if !errors.As(err, &de) {
		t.Fatalf("expected a not-found error for a foreign owner, got %v", err)
	}
}

func TestDeleteDraftOnlyDeletesDrafts(t *testing.T) {
	svc, repo, store, _, _ := submitFixture()
	repo.docs["doc_1"] = &models.Document{ID: "doc_1", OwnerID: "user_1", Status: models.DocumentStatusDraft, FileKey: "documents/doc_1.pdf"}
	repo.docs["doc_2"] = &models.Document{ID: "doc_2", OwnerID: "user_1", Status: models.DocumentStatusSent, FileKey: "documents/doc_2.pdf"}
	store.files["documents/doc_1.pdf"] = []byte("%PDF-1.4")

	if err := svc.DeleteDraft(context.Background(), "user_1", "doc_1"); err != nil {
		t.Fatalf("draft delete failed: %v", err)
	}
	if _, ok := repo.docs["doc_1"]; ok {
		t.Fatalf("expected the draft removed")
	}
	if len(store.deleted) != 1 || store.deleted[0] != "documents/doc_1.pdf" {
		t.Fatalf("expected the stored file removed, got %v", store.deleted)
	}

	err := svc.DeleteDraft(context.Background(), "user_1", "doc_2")
	var de *DocumentError
	if !errors.As(err, &de) || de.Code != "notDraft" {
		t.Fatalf("expected notDraft for a sent document, got %v", err)
	}
	if _, ok := repo.docs["doc_2"]; !ok {
		t.Fatalf("expected the sent document untouched")
	}
}
