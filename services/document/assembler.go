package document

import (
	"errors"
	"fmt"

	"adamosign/models"
)

// ErrEmptyFile is returned before any storage or network call when the
// submitted PDF buffer is empty.
var ErrEmptyFile = errors.New("document file is empty")

// SignerPayload is one participant in the outbound submission, carrying the
// resolved validation requirements and only the signatures addressed to them.
type SignerPayload struct {
	FirstName         string             `json:"firstName"`
	LastName          string             `json:"lastName"`
	Email             string             `json:"email"`
	Phone             string             `json:"phone,omitempty"`
	TypeNotification  string             `json:"typeNotification"`
	RequireValidation bool               `json:"requireValidation"`
	TypeValidation    []string           `json:"typeValidation,omitempty"`
	Signatures        []models.Signature `json:"signatures"`
}

// Submission is the single outbound payload of a wizard run. The
// "participians" key is the historical wire spelling; downstream consumers
// depend on it, so it is not corrected here.
type Submission struct {
	Filename     string                 `json:"filename"`
	Status       string                 `json:"status"`
	Options      models.DocumentOptions `json:"options"`
	Participians []SignerPayload        `json:"participians"`
	File         []byte                 `json:"-"`
}

// Assemble converts the wizard session into the submission payload:
// rejects an empty file, drops signatures flagged deleted, resolves each
// participant's validation requirements and notification phone, and
// partitions the surviving signatures by recipient email. The email match is
// exact and case-sensitive, matching the historical behavior.
func Assemble(session *models.WizardSession, file []byte, status string) (*Submission, error) {
	if len(file) == 0 {
		return nil, ErrEmptyFile
	}
	if status != models.DocumentStatusDraft && status != models.DocumentStatusSent {
		return nil, fmt.Errorf("invalid submission status %q", status)
	}

	var live []models.Signature
	for _, sig := range session.Signatures {
		if !sig.SignatureDelete {
			live = append(live, sig)
		}
	}

	sub := &Submission{
		Filename: session.Filename,
		Status:   status,
		Options:  session.Options,
		File:     file,
	}

	for _, p := range session.Participants {
		payload := SignerPayload{
			FirstName:         p.FirstName,
			LastName:          p.LastName,
			Email:             p.Email,
			Phone:             resolvePhone(p),
			TypeNotification:  resolveChannel(p),
			RequireValidation: p.Verifications.Any(),
			TypeValidation:    p.Verifications.Enabled(),
		}
		for _, sig := range live {
			if sig.RecipientEmail == p.Email {
				payload.Signatures = append(payload.Signatures, sig)
			}
		}
		sub.Participians = append(sub.Participians, payload)
	}

	return sub, nil
}

func resolvePhone(p models.Participant) string {
	if p.Phone == "" {
		return ""
	}
	return p.CountryCode + p.Phone
}

func resolveChannel(p models.Participant) string {
	if p.TypeNotification == "" {
		return models.ChannelEmail
	}
	return p.TypeNotification
}
