package wizard

import (
	"adamosign/models"

	"github.com/google/uuid"
)

// Wizard panels, in order. StepConfirm renders a read-only summary; there is
// no forward transition past it.
const (
	StepUpload = iota
	StepPlace
	StepConfigure
	StepConfirm

	StepCount
)

// Reachable reports whether the session may navigate to the given step:
// any completed step is always reachable, as is any step at or before the
// current one. Forward progress is monotonic, backward navigation is free.
func Reachable(s *models.WizardSession, step int) bool {
	if step < 0 || step >= StepCount {
		return false
	}
	return s.StepCompleted(step) || step <= s.CurrentStep
}

// GoTo navigates the session to the given step. An unreachable step is a
// silent no-op and returns false; this is a UX guard, not a security
// boundary. Landing on the upload or placement step clears the in-memory
// signature list (destructive reset).
func GoTo(s *models.WizardSession, step int) bool {
	if !Reachable(s, step) {
		return false
	}
	s.CurrentStep = step
	if step == StepUpload || step == StepPlace {
		s.Signatures = nil
	}
	return true
}

// CompleteStep marks the given step complete and advances to the next panel
// when one exists.
func CompleteStep(s *models.WizardSession, step int) {
	if !s.StepCompleted(step) {
		s.CompletedSteps = append(s.CompletedSteps, step)
	}
	if step == s.CurrentStep && s.CurrentStep < StepCount-1 {
		s.CurrentStep++
	}
}

// AddSignature places a new signature field on the given slide. Placement is
// purely additive; overlapping fields are allowed and are a rendering
// concern only.
func AddSignature(s *models.WizardSession, sig models.Signature) models.Signature {
	if sig.ID == "" {
		sig.ID = uuid.New().String()
	}
	s.Signatures = append(s.Signatures, sig)
	return sig
}

// MoveSignature updates a signature's position in place by id lookup.
// Returns false when no live signature has the given id.
func MoveSignature(s *models.WizardSession, id string, left, top float64) bool {
	for i := range s.Signatures {
		if s.Signatures[i].ID == id && !s.Signatures[i].SignatureDelete {
			s.Signatures[i].Left = left
			s.Signatures[i].Top = top
			return true
		}
	}
	return false
}

// DeleteSignature flags a signature as deleted rather than removing it, so
// ids stay stable for concurrent edit tracking. The record is excluded from
// submission but stays in session state until the wizard resets.
func DeleteSignature(s *models.WizardSession, id string) bool {
	for i := range s.Signatures {
		if s.Signatures[i].ID == id && !s.Signatures[i].SignatureDelete {
			s.Signatures[i].SignatureDelete = true
			return true
		}
	}
	return false
}

// LiveSignatures returns the signatures not flagged as deleted.
func LiveSignatures(s *models.WizardSession) []models.Signature {
	var live []models.Signature
	for _, sig := range s.Signatures {
		if !sig.SignatureDelete {
			live = append(live, sig)
		}
	}
	return live
}
