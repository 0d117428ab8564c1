package validator

import "testing"

type signatureInput struct {
	Pitch string `validate:"required,pitch_band"`
	Pace  string `validate:"required,pace_band"`
}

func TestSignatureBands(t *testing.T) {
	v := New()
	if err := v.Validate(signatureInput{Pitch: "medium", Pace: "fast"}); err != nil {
		t.Fatalf("valid bands rejected: %v", err)
	}
	if err := v.Validate(signatureInput{Pitch: "shrill", Pace: "fast"}); err == nil {
		t.Fatalf("unknown pitch band accepted")
	}
	if err := v.Validate(signatureInput{Pitch: "low", Pace: "normalish"}); err == nil {
		t.Fatalf("unknown pace band accepted")
	}
}
