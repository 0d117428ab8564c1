package workflow

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func request(voiceID string) *entities.IdentificationRequest {
	return &entities.IdentificationRequest{
		ID:           uuid.New(),
		VoiceID:      voiceID,
		SpeakerLabel: "Speaker A",
		MeetingID:    "m1",
		MeetingTitle: "Weekly sync",
		MeetingDate:  t0,
		Status:       entities.RequestPending,
	}
}

func newSession(cfg config.WorkflowConfig, items ...Item) *Session {
	return NewSession(items, cfg, t0)
}

func toIdentify(t *testing.T, s *Session) {
	t.Helper()
	for s.Step != StepIdentify {
		if err := s.Next(t0); err != nil {
			t.Fatalf("next from %s: %v", s.Step, err)
		}
	}
}

func TestSubmitManualEmptyNameSkips(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		s := newSession(config.Default().Workflow, Item{Request: request("v1")})
		toIdentify(t, s)
		_ = s.UpdateForm(FormUpdate{ManualName: &name}, t0)

		r, err := s.Submit(t0)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if r.Action != entities.ActionSkipped || r.UserID != nil {
			t.Fatalf("manual submit with name %q must skip, got %+v", name, r)
		}
	}
}

func TestSubmitManualIdentifies(t *testing.T) {
	s := newSession(config.Default().Workflow, Item{Request: request("v1")})
	toIdentify(t, s)
	name := "  Dana Scully "
	_ = s.UpdateForm(FormUpdate{ManualName: &name}, t0)

	r, err := s.Submit(t0)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if r.Action != entities.ActionIdentified || *r.UserName != "Dana Scully" || r.Method != entities.MethodManual {
		t.Fatalf("unexpected result %+v", r)
	}
	if _, err := uuid.Parse(*r.UserID); err != nil {
		t.Fatalf("expected generated user id, got %q", *r.UserID)
	}
	if r.Confidence != 0.9 {
		t.Fatalf("expected default manual confidence, got %v", r.Confidence)
	}
}

func TestSuggestionPreselectedAboveThreshold(t *testing.T) {
	item := Item{Request: request("v1"), Suggestions: []entities.Suggestion{
		{VoiceID: "k1", UserID: "u1", UserName: "Fox", Confidence: 0.7},
		{VoiceID: "k2", UserID: "u2", UserName: "Walter", Confidence: 0.85},
	}}
	s := newSession(config.Default().Workflow, item)

	if s.Form.Method != entities.MethodSuggested || s.Form.SelectedSuggestion == nil || s.Form.SelectedSuggestion.UserID != "u2" {
		t.Fatalf("expected best suggestion preselected, got %+v", s.Form)
	}

	toIdentify(t, s)
	r, _ := s.Submit(t0)
	if r.Action != entities.ActionIdentified || *r.UserID != "u2" || *r.UserName != "Walter" || r.Confidence != 0.85 {
		t.Fatalf("unexpected result %+v", r)
	}
}

func TestSuggestionBelowThresholdNotPreselected(t *testing.T) {
	item := Item{Request: request("v1"), Suggestions: []entities.Suggestion{
		{VoiceID: "k1", UserID: "u1", UserName: "Fox", Confidence: 0.79},
	}}
	s := newSession(config.Default().Workflow, item)
	if s.Form.SelectedSuggestion != nil || s.Form.Method != entities.MethodManual {
		t.Fatalf("suggestion below threshold must not be preselected")
	}

	method := entities.MethodSuggested
	_ = s.UpdateForm(FormUpdate{Method: &method}, t0)
	toIdentify(t, s)
	if r, _ := s.Submit(t0); r.Action != entities.ActionSkipped {
		t.Fatalf("suggested without selection must skip, got %s", r.Action)
	}
}

func TestSubmitMatchedDerivesStableIdentity(t *testing.T) {
	profile := entities.NewSpeakerProfile("known-voice", t0)
	method := entities.MethodMatched

	var ids []string
	for i := 0; i < 2; i++ {
		s := newSession(config.Default().Workflow, Item{Request: request("v1")})
		_ = s.UpdateForm(FormUpdate{Profile: profile, Method: &method}, t0)
		toIdentify(t, s)
		r, _ := s.Submit(t0)
		if r.Action != entities.ActionIdentified || *r.UserName != UnknownUserName {
			t.Fatalf("unexpected matched result %+v", r)
		}
		ids = append(ids, *r.UserID)
	}
	if ids[0] != ids[1] {
		t.Fatalf("derived id must be stable: %v", ids)
	}

	linked := profile.Clone()
	linked.UserID = entities.StringPtr("u9")
	linked.DisplayName = entities.StringPtr("Skinner")
	s := newSession(config.Default().Workflow, Item{Request: request("v1")})
	_ = s.UpdateForm(FormUpdate{Profile: linked, Method: &method}, t0)
	toIdentify(t, s)
	r, _ := s.Submit(t0)
	if *r.UserID != "u9" || *r.UserName != "Skinner" {
		t.Fatalf("matched must use linked identity, got %+v", r)
	}
}

func TestStepsWithoutComparison(t *testing.T) {
	cfg := config.Default().Workflow
	cfg.VoiceComparisonEnabled = false
	s := newSession(cfg, Item{Request: request("v1")})

	if err := s.Next(t0); err != nil || s.Step != StepIdentify {
		t.Fatalf("expected review -> identify, got %s err=%v", s.Step, err)
	}
	if err := s.Next(t0); err != nil || s.Step != StepConfirm {
		t.Fatalf("expected identify -> confirm, got %s", s.Step)
	}
	if err := s.Next(t0); !errors.Is(err, entities.ErrInvalidStep) {
		t.Fatalf("leaving confirm without submit must fail, got %v", err)
	}
	if err := s.Back(t0); err != nil || s.Step != StepIdentify {
		t.Fatalf("back from confirm failed: %v", err)
	}
}

func TestSkipOnlyAtSkippableSteps(t *testing.T) {
	item := Item{Request: request("v1")}

	s := newSession(config.Default().Workflow, item)
	if _, err := s.Skip(t0); !errors.Is(err, entities.ErrStepNotSkippable) {
		t.Fatalf("review must not be skippable, got %v", err)
	}
	if err := s.Back(t0); !errors.Is(err, entities.ErrInvalidStep) {
		t.Fatalf("back from review must fail, got %v", err)
	}

	_ = s.Next(t0)
	if s.Step != StepCompare {
		t.Fatalf("expected compare step, got %s", s.Step)
	}
	name := "Someone"
	_ = s.UpdateForm(FormUpdate{ManualName: &name}, t0)
	r, err := s.Skip(t0)
	if err != nil || r.Action != entities.ActionSkipped {
		t.Fatalf("skip at compare should skip regardless of form, got %+v err=%v", r, err)
	}

	s = newSession(config.Default().Workflow, item)
	toIdentify(t, s)
	_ = s.Next(t0)
	if _, err := s.Skip(t0); !errors.Is(err, entities.ErrStepNotSkippable) {
		t.Fatalf("confirm must not be skippable, got %v", err)
	}
}

func TestSubmitOnlyAtIdentifyOrConfirm(t *testing.T) {
	s := newSession(config.Default().Workflow, Item{Request: request("v1")})
	if _, err := s.Submit(t0); !errors.Is(err, entities.ErrInvalidStep) {
		t.Fatalf("submit at review must fail, got %v", err)
	}
}

func TestDeferAnyStepAndQueueAdvance(t *testing.T) {
	first, second := request("v1"), request("v2")
	s := newSession(config.Default().Workflow, Item{Request: first}, Item{Request: second})

	r, err := s.Defer(t0)
	if err != nil || r.Action != entities.ActionDeferred || r.RequestID != first.ID {
		t.Fatalf("unexpected defer result %+v err=%v", r, err)
	}
	if s.Current().Request.ID != second.ID || s.Step != StepReview {
		t.Fatalf("expected next request at review")
	}

	if _, err := s.Defer(t0); err != nil {
		t.Fatalf("defer: %v", err)
	}
	if !s.Finished() || len(s.Results) != 2 {
		t.Fatalf("expected finished session with two results")
	}
	if _, err := s.Defer(t0); !errors.Is(err, entities.ErrWorkflowFinished) {
		t.Fatalf("expected finished error, got %v", err)
	}
}

func TestUpdateFormValidation(t *testing.T) {
	s := newSession(config.Default().Workflow, Item{Request: request("v1")})
	bad := 1.5
	if err := s.UpdateForm(FormUpdate{Confidence: &bad}, t0); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("expected validation error for confidence, got %v", err)
	}
	unknown := "nope"
	if err := s.UpdateForm(FormUpdate{SuggestionVoiceID: &unknown}, t0); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("expected validation error for unknown suggestion, got %v", err)
	}
	m := entities.Method("guess")
	if err := s.UpdateForm(FormUpdate{Method: &m}, t0); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("expected validation error for method, got %v", err)
	}
}
