package models

import "time"

// WizardSession holds the in-flight state of the document composition wizard
// for one authenticated user. It lives in Redis as a JSON blob with a TTL and
// is owned exclusively by that user's session; there is no cross-tab merge.
type WizardSession struct {
	SessionID      string          `json:"sessionId"`
	UserID         string          `json:"userId"`
	CurrentStep    int             `json:"currentStep"`
	CompletedSteps []int           `json:"completedSteps"`
	Filename       string          `json:"filename,omitempty"`
	FileKey        string          `json:"fileKey,omitempty"`
	Signatures     []Signature     `json:"signatures,omitempty"`
	Participants   []Participant   `json:"participants,omitempty"`
	Options        DocumentOptions `json:"options"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// StepCompleted reports whether the given step has been marked complete.
func (s *WizardSession) StepCompleted(step int) bool {
	for _, done := range s.CompletedSteps {
		if done == step {
			return true
		}
	}
	return false
}
