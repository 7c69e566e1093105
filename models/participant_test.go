package models

import (
	"reflect"
	"testing"
)

func TestVerificationsEnabledOrder(t *testing.T) {
	v := Verifications{Selfie: true, Facial: true, Email: true}
	want := []string{VerificationSelfie, VerificationFacial, VerificationEmail}
	if got := v.Enabled(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Enabled() = %v, want %v", got, want)
	}
	if !v.Any() {
		t.Fatalf("expected Any() true")
	}

	var none Verifications
	if none.Any() || len(none.Enabled()) != 0 {
		t.Fatalf("expected the zero value to require nothing")
	}
}

func TestParticipantIsSelfIgnoresCase(t *testing.T) {
	p := Participant{Email: "Ana@Example.com"}
	if !p.IsSelf("ana@example.com") {
		t.Fatalf("expected a case-insensitive self match")
	}
	if p.IsSelf("ben@example.com") {
		t.Fatalf("expected a different email not to match")
	}
}
