package models

// ReminderPayload is the asynq task body for a pending-signature reminder.
type ReminderPayload struct {
	DocumentID string `json:"documentId"`
	OwnerID    string `json:"ownerId"`
	Filename   string `json:"filename"`
}
