package guest

import "fmt"

// GuestError carries a machine-readable code for the handler layer's status
// mapping.
type GuestError struct {
	Code    string
	Message string
}

func (e *GuestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes used by the guest flow.
const (
	CodeInvalidToken      = "invalidToken"
	CodeDocumentNotFound  = "documentNotFound"
	CodeSignerNotFound    = "signerNotFound"
	CodeSignatureNotFound = "signatureNotFound"
	CodeAlreadySigned     = "alreadySigned"
	CodeAlreadyRejected   = "alreadyRejected"
	CodeDocumentRejected  = "documentRejected"
	CodeRejectNotAllowed  = "rejectNotAllowed"
	CodeReasonRequired    = "reasonRequired"
)

func newError(code, format string, args ...any) error {
	return &GuestError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsConflict reports whether the error is a server-detected conflict
// (already signed/rejected), which handlers surface as 409.
func IsConflict(err error) bool {
	ge, ok := err.(*GuestError)
	if !ok {
		return false
	}
	return ge.Code == CodeAlreadySigned || ge.Code == CodeAlreadyRejected || ge.Code == CodeDocumentRejected
}
