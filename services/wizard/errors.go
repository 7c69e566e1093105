package wizard

import "fmt"

// SessionError carries a machine-readable code alongside the message.
type SessionError struct {
	Code    string
	Message string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSessionNotFoundError(sessionID string) error {
	return &SessionError{
		Code:    "sessionNotFound",
		Message: fmt.Sprintf("wizard session %s not found or expired", sessionID),
	}
}
