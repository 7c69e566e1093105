package models

import "strings"

// Notification channels for inviting a participant to sign.
const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"
	ChannelTelegram = "telegram"
)

// Verification flag keys, as they appear in the wire payload's typeValidation list.
const (
	VerificationSelfie   = "selfie"
	VerificationDocument = "document"
	VerificationIdentity = "identity"
	VerificationFacial   = "facial"
	VerificationPhone    = "phone"
	VerificationEmail    = "email"
)

// Verifications is the set of identity checks required of a participant.
type Verifications struct {
	Selfie   bool `bson:"selfie" json:"selfie"`
	Document bool `bson:"document" json:"document"`
	Identity bool `bson:"identity" json:"identity"`
	Facial   bool `bson:"facial" json:"facial"`
	Phone    bool `bson:"phone" json:"phone"`
	Email    bool `bson:"email" json:"email"`
}

// Enabled returns the keys of the flags that are set, in a stable order.
func (v Verifications) Enabled() []string {
	var keys []string
	if v.Selfie {
		keys = append(keys, VerificationSelfie)
	}
	if v.Document {
		keys = append(keys, VerificationDocument)
	}
	if v.Identity {
		keys = append(keys, VerificationIdentity)
	}
	if v.Facial {
		keys = append(keys, VerificationFacial)
	}
	if v.Phone {
		keys = append(keys, VerificationPhone)
	}
	if v.Email {
		keys = append(keys, VerificationEmail)
	}
	return keys
}

// Any reports whether at least one verification flag is set.
func (v Verifications) Any() bool {
	return v.Selfie || v.Document || v.Identity || v.Facial || v.Phone || v.Email
}

// Participant is a person invited to sign a document, as authored in the wizard.
type Participant struct {
	FirstName        string        `bson:"firstName" json:"firstName"`
	LastName         string        `bson:"lastName" json:"lastName"`
	Email            string        `bson:"email" json:"email"`
	Verifications    Verifications `bson:"verifications" json:"verifications"`
	TypeNotification string        `bson:"typeNotification" json:"typeNotification"`
	Phone            string        `bson:"phone,omitempty" json:"phone,omitempty"`
	CountryCode      string        `bson:"countryCode,omitempty" json:"countryCode,omitempty"`
}

// IsSelf reports whether the participant is the authenticated user themselves.
// The comparison is case-insensitive and never mutates the participant; only
// the delivery path changes (self-signers get an in-app link, no email).
func (p Participant) IsSelf(authedEmail string) bool {
	return strings.EqualFold(p.Email, authedEmail)
}

// FieldError is a per-index, per-field validation failure.
type FieldError struct {
	Index   int    `json:"index"`
	Field   string `json:"field"`
	Message string `json:"message"`
}
