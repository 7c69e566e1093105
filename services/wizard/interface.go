package wizard

import "adamosign/models"

// WizardSessionService manages the Redis-resident state of the document
// composition wizard. All state mutations go through the pure transition
// functions in this package; the service only loads, applies and saves.
type WizardSessionService interface {
	StartSession(userID string) (*models.WizardSession, error)
	GetSession(sessionID, userID string) (*models.WizardSession, error)
	GoToStep(sessionID, userID string, step int) (*models.WizardSession, error)
	CompleteStep(sessionID, userID string, step int) (*models.WizardSession, error)
	SetFile(sessionID, userID, filename, fileKey string) (*models.WizardSession, error)
	AddSignature(sessionID, userID string, sig models.Signature) (*models.WizardSession, error)
	MoveSignature(sessionID, userID, signatureID string, left, top float64) (*models.WizardSession, error)
	DeleteSignature(sessionID, userID, signatureID string) (*models.WizardSession, error)
	SetParticipants(sessionID, userID string, participants []models.Participant, options models.DocumentOptions) (*models.WizardSession, []models.FieldError, error)
	ClearSignatures(sessionID, userID string) error
	CancelSession(sessionID, userID string) error
}

// DefaultWizardSessionService implements WizardSessionService.
type DefaultWizardSessionService struct{}
