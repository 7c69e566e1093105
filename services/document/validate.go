package document

import (
	"strings"

	"adamosign/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateParticipants checks a participant list before submission:
//   - every participant needs a syntactically valid email;
//   - emails must be unique case-insensitively, and a violation is attached
//     to every index sharing the email, not just later occurrences;
//   - a phone requires a country code and vice versa;
//   - non-email notification channels require a phone.
//
// The returned slice is empty when the list is valid.
func ValidateParticipants(participants []models.Participant) []models.FieldError {
	var errs []models.FieldError

	for i, p := range participants {
		if strings.TrimSpace(p.FirstName) == "" {
			errs = append(errs, models.FieldError{Index: i, Field: "firstName", Message: "first name is required"})
		}
		if strings.TrimSpace(p.LastName) == "" {
			errs = append(errs, models.FieldError{Index: i, Field: "lastName", Message: "last name is required"})
		}
		if err := validate.Var(p.Email, "required,email"); err != nil {
			errs = append(errs, models.FieldError{Index: i, Field: "email", Message: "a valid email is required"})
		}
		if p.Phone != "" && p.CountryCode == "" {
			errs = append(errs, models.FieldError{Index: i, Field: "countryCode", Message: "a country code must accompany the phone number"})
		}
		if p.CountryCode != "" && p.Phone == "" {
			errs = append(errs, models.FieldError{Index: i, Field: "phone", Message: "a phone number must accompany the country code"})
		}
		switch p.TypeNotification {
		case models.ChannelEmail, "":
		case models.ChannelWhatsApp, models.ChannelTelegram:
			if p.Phone == "" {
				errs = append(errs, models.FieldError{Index: i, Field: "phone", Message: "a phone number is required for this notification channel"})
			}
		default:
			errs = append(errs, models.FieldError{Index: i, Field: "typeNotification", Message: "unknown notification channel"})
		}
	}

	// Duplicate detection is case-insensitive and flags every index sharing
	// the email.
	seen := make(map[string][]int)
	for i, p := range participants {
		key := strings.ToLower(p.Email)
		if key == "" {
			continue
		}
		seen[key] = append(seen[key], i)
	}
	for _, indices := range seen {
		if len(indices) < 2 {
			continue
		}
		for _, i := range indices {
			errs = append(errs, models.FieldError{Index: i, Field: "email", Message: "email is duplicated in the participant list"})
		}
	}

	return errs
}
