package document

import (
	"context"

	docRepo "adamosign/database/repository/document"
	"adamosign/models"
	"adamosign/services/notifier"
	"adamosign/services/storage"
)

// ReminderScheduler enqueues pending-signature reminders for a sent document.
type ReminderScheduler interface {
	ScheduleReminder(doc *models.Document) error
}

// DocumentService owns document submission and the owner-facing document
// surface.
type DocumentService interface {
	Submit(ctx context.Context, session *models.WizardSession, file []byte, owner *models.User, status string) (*models.Document, error)
	GetDocument(ownerID, documentID string) (*models.Document, error)
	ListDocuments(ownerID string) ([]models.Document, error)
	DeleteDraft(ctx context.Context, ownerID, documentID string) error
}

// DefaultDocumentService implements DocumentService.
type DefaultDocumentService struct {
	Repo      docRepo.DocumentRepository
	Storage   storage.FileStorage
	Notifier  notifier.Notifier
	Reminders ReminderScheduler
}
