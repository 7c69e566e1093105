package wizard

import (
	"testing"

	"adamosign/models"
)

func sessionAt(current int, completed ...int) *models.WizardSession {
	return &models.WizardSession{
		SessionID:      "sess_1",
		UserID:         "user_1",
		CurrentStep:    current,
		CompletedSteps: completed,
	}
}

func TestGoToUnreachableStepIsNoop(t *testing.T) {
	s := sessionAt(1, 0, 1)
	s.Signatures = []models.Signature{{ID: "sig_1"}}

	if GoTo(s, 3) {
		t.Fatalf("expected goTo(3) to be refused")
	}
	if s.CurrentStep != 1 {
		t.Fatalf("expected currentStep to stay 1, got %d", s.CurrentStep)
	}
	if len(s.Signatures) != 1 {
		t.Fatalf("expected signatures untouched on refused transition")
	}
}

func TestGoToBackwardClearsSignatures(t *testing.T) {
	s := sessionAt(1, 0, 1)
	s.Signatures = []models.Signature{{ID: "sig_1"}, {ID: "sig_2"}}

	if !GoTo(s, 0) {
		t.Fatalf("expected goTo(0) to succeed")
	}
	if s.CurrentStep != 0 {
		t.Fatalf("expected currentStep 0, got %d", s.CurrentStep)
	}
	if s.Signatures != nil {
		t.Fatalf("expected signatures cleared on entering step 0, got %d", len(s.Signatures))
	}
}

func TestGoToNotYetCompletedForwardStepIsNoop(t *testing.T) {
	s := sessionAt(1, 0, 1)
	if GoTo(s, 2) {
		t.Fatalf("expected goTo(2) to be refused: not completed and ahead of current")
	}
	if s.CurrentStep != 1 {
		t.Fatalf("expected currentStep to stay 1, got %d", s.CurrentStep)
	}
}

func TestGoToCompletedForwardStepSucceeds(t *testing.T) {
	s := sessionAt(1, 0, 1, 2)
	if !GoTo(s, 2) {
		t.Fatalf("expected goTo(2) to succeed for a completed step")
	}
	if s.CurrentStep != 2 {
		t.Fatalf("expected currentStep 2, got %d", s.CurrentStep)
	}
	// Step 2 is past the placement panel; signatures survive.
	s.Signatures = []models.Signature{{ID: "sig_1"}}
	if !GoTo(s, 2) {
		t.Fatalf("expected goTo(2) to remain reachable")
	}
	if len(s.Signatures) != 1 {
		t.Fatalf("expected signatures untouched on step 2")
	}
}

func TestGoToOutOfRange(t *testing.T) {
	s := sessionAt(3, 0, 1, 2, 3)
	if GoTo(s, StepCount) {
		t.Fatalf("expected goTo past the last panel to be refused")
	}
	if GoTo(s, -1) {
		t.Fatalf("expected goTo(-1) to be refused")
	}
}

func TestCompleteStepAdvances(t *testing.T) {
	s := sessionAt(0)
	CompleteStep(s, 0)
	if s.CurrentStep != 1 {
		t.Fatalf("expected advance to step 1, got %d", s.CurrentStep)
	}
	if !s.StepCompleted(0) {
		t.Fatalf("expected step 0 to be marked complete")
	}

	// Completing the same step twice must not duplicate it.
	CompleteStep(s, 0)
	count := 0
	for _, step := range s.CompletedSteps {
		if step == 0 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected step 0 recorded once, got %d", count)
	}
}

func TestCompleteFinalStepDoesNotAdvance(t *testing.T) {
	s := sessionAt(StepConfirm, 0, 1, 2)
	CompleteStep(s, StepConfirm)
	if s.CurrentStep != StepConfirm {
		t.Fatalf("expected to stay on the final panel, got %d", s.CurrentStep)
	}
}

func TestAddSignatureAssignsID(t *testing.T) {
	s := sessionAt(1, 0)
	sig := AddSignature(s, models.Signature{SlideIndex: 2, Left: 0.25, Top: 0.5})
	if sig.ID == "" {
		t.Fatalf("expected an id to be assigned")
	}
	if len(s.Signatures) != 1 {
		t.Fatalf("expected one signature, got %d", len(s.Signatures))
	}
}

func TestMoveSignatureUpdatesInPlace(t *testing.T) {
	s := sessionAt(1, 0)
	AddSignature(s, models.Signature{ID: "sig_1", Left: 0.1, Top: 0.1})

	if !MoveSignature(s, "sig_1", 0.7, 0.3) {
		t.Fatalf("expected move to succeed")
	}
	if s.Signatures[0].Left != 0.7 || s.Signatures[0].Top != 0.3 {
		t.Fatalf("expected position (0.7,0.3), got (%v,%v)", s.Signatures[0].Left, s.Signatures[0].Top)
	}
	if MoveSignature(s, "missing", 0, 0) {
		t.Fatalf("expected move of unknown id to fail")
	}
}

func TestDeleteSignatureFlagsButKeepsRecord(t *testing.T) {
	s := sessionAt(1, 0)
	AddSignature(s, models.Signature{ID: "sig_1"})

	if !DeleteSignature(s, "sig_1") {
		t.Fatalf("expected delete to succeed")
	}
	if len(s.Signatures) != 1 {
		t.Fatalf("expected the record to stay in session state")
	}
	if !s.Signatures[0].SignatureDelete {
		t.Fatalf("expected the delete flag to be set")
	}
	// A deleted signature can no longer be moved or re-deleted.
	if MoveSignature(s, "sig_1", 0.5, 0.5) {
		t.Fatalf("expected move of a deleted signature to fail")
	}
	if DeleteSignature(s, "sig_1") {
		t.Fatalf("expected second delete to fail")
	}

	if live := LiveSignatures(s); len(live) != 0 {
		t.Fatalf("expected no live signatures, got %d", len(live))
	}
}
