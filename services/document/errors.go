package document

import "fmt"

// DocumentError carries a machine-readable code alongside the message.
type DocumentError struct {
	Code    string
	Message string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewDocumentNotFoundError(id string) error {
	return &DocumentError{
		Code:    "documentNotFound",
		Message: fmt.Sprintf("document %s not found", id),
	}
}
