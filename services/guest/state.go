package guest

import "adamosign/models"

// State is the guest flow position for one signer on one document.
type State string

const (
	StateVerifying State = "verifying"
	StateLoaded    State = "loaded"
	StateSigning   State = "signing"
	StateRejecting State = "rejecting"
	StateSigned    State = "signed"
	StateRejected  State = "rejected"
)

// StateFor derives the entry state after a token exchange. A document that
// is already rejected short-circuits straight to the read-only rejected
// view, regardless of the signer's own status.
func StateFor(doc *models.Document, signerID string) State {
	if doc.Status == models.DocumentStatusRejected {
		return StateRejected
	}
	signer := doc.Signer(signerID)
	if signer == nil {
		return StateVerifying
	}
	switch signer.Status {
	case models.SignerStatusSigned:
		return StateSigned
	case models.SignerStatusRejected:
		return StateRejected
	default:
		return StateLoaded
	}
}

// ActionsFor reports which of the two mutually exclusive actions the guest
// may take from the given state.
func ActionsFor(state State, doc *models.Document) (canSign, canReject bool) {
	if state != StateLoaded {
		return false, false
	}
	return true, doc.Options.AllowReject
}
