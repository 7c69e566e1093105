package documentRepo

import "adamosign/models"

// DocumentRepository defines persistence for signature documents.
type DocumentRepository interface {
	Create(doc *models.Document) error
	Update(doc *models.Document) error
	Delete(id string) error
	GetByID(id string) (*models.Document, error)
	GetByOwner(ownerID string) ([]models.Document, error)
	SetStatus(id, status string) error
	UpdateSigner(documentID string, signer models.DocumentSigner) error
}
