package models

import "time"

// Document lifecycle states.
const (
	DocumentStatusDraft     = "draft"
	DocumentStatusSent      = "sent"
	DocumentStatusPartial   = "partial"
	DocumentStatusCompleted = "completed"
	DocumentStatusRejected  = "rejected"
)

// Per-signer states.
const (
	SignerStatusPending  = "pending"
	SignerStatusSigned   = "signed"
	SignerStatusRejected = "rejected"
)

// DocumentOptions are the sender-chosen toggles for a submission.
type DocumentOptions struct {
	AllowReject      bool `bson:"allowReject" json:"allowReject"`
	RemindEvery3Days bool `bson:"remindEvery3Days" json:"remindEvery3Days"`
}

// DocumentSigner is a participant as persisted on a sent document, with the
// resolved validation requirements, guest token and partitioned signatures.
type DocumentSigner struct {
	SignerID          string      `bson:"signerId" json:"signerId"`
	FirstName         string      `bson:"firstName" json:"firstName"`
	LastName          string      `bson:"lastName" json:"lastName"`
	Email             string      `bson:"email" json:"email"`
	Phone             string      `bson:"phone,omitempty" json:"phone,omitempty"`
	TypeNotification  string      `bson:"typeNotification" json:"typeNotification"`
	RequireValidation bool        `bson:"requireValidation" json:"requireValidation"`
	TypeValidation    []string    `bson:"typeValidation,omitempty" json:"typeValidation,omitempty"`
	Signatures        []Signature `bson:"signatures" json:"signatures"`
	Token             string      `bson:"token,omitempty" json:"token,omitempty"`
	SignerLink        string      `bson:"signerLink,omitempty" json:"signerLink,omitempty"`
	Status            string      `bson:"status" json:"status"`
	RejectionReason   string      `bson:"rejectionReason,omitempty" json:"rejectionReason,omitempty"`
	SignedAt          *time.Time  `bson:"signedAt,omitempty" json:"signedAt,omitempty"`
}

// Document is the persisted signature document.
type Document struct {
	ID           string           `bson:"id" json:"id"`
	OwnerID      string           `bson:"ownerId" json:"ownerId"`
	OwnerEmail   string           `bson:"ownerEmail" json:"ownerEmail"`
	Filename     string           `bson:"filename" json:"filename"`
	FileKey      string           `bson:"fileKey" json:"fileKey"`
	Status       string           `bson:"status" json:"status"`
	Options      DocumentOptions  `bson:"options" json:"options"`
	Participants []DocumentSigner `bson:"participants" json:"participants"`
	CreatedAt    time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// Signer returns the signer with the given ID, or nil.
func (d *Document) Signer(signerID string) *DocumentSigner {
	for i := range d.Participants {
		if d.Participants[i].SignerID == signerID {
			return &d.Participants[i]
		}
	}
	return nil
}

// PendingSigners returns the signers that have neither signed nor rejected.
func (d *Document) PendingSigners() []DocumentSigner {
	var pending []DocumentSigner
	for _, p := range d.Participants {
		if p.Status == SignerStatusPending {
			pending = append(pending, p)
		}
	}
	return pending
}
