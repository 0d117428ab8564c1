package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

// Step is a stage of the per-speaker identification workflow
type Step string

const (
	StepReview   Step = "review"
	StepCompare  Step = "compare"
	StepIdentify Step = "identify"
	StepConfirm  Step = "confirm"
	StepDone     Step = "done"
)

// UnknownUserName labels matched identities without a display name
const UnknownUserName = "Unknown User"

// voiceNamespace derives stable user ids for matched profiles that are not
// linked to a user yet
var voiceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:meeting-voiceid:voice"))

// Item is one speaker waiting for a decision
type Item struct {
	Request     *entities.IdentificationRequest `json:"request"`
	Suggestions []entities.Suggestion           `json:"suggestions"`
}

// Form holds the inputs accumulated across steps
type Form struct {
	ManualName         string                   `json:"manual_name"`
	SelectedSuggestion *entities.Suggestion     `json:"selected_suggestion,omitempty"`
	SelectedProfile    *entities.SpeakerProfile `json:"selected_profile,omitempty"`
	Method             entities.Method          `json:"method"`
	Confidence         float64                  `json:"confidence"`
}

// FormUpdate changes selected form fields; nil fields are left as is
type FormUpdate struct {
	ManualName        *string
	SuggestionVoiceID *string
	Profile           *entities.SpeakerProfile
	ClearProfile      bool
	Method            *entities.Method
	Confidence        *float64
}

// Session walks a queue of identification requests one decision at a time
type Session struct {
	ID        uuid.UUID                       `json:"id"`
	Queue     []Item                          `json:"queue"`
	Index     int                             `json:"index"`
	Step      Step                            `json:"step"`
	Form      Form                            `json:"form"`
	Results   []entities.IdentificationResult `json:"results"`
	CreatedAt time.Time                       `json:"created_at"`
	UpdatedAt time.Time                       `json:"updated_at"`

	cfg config.WorkflowConfig
}

// NewSession creates a session positioned on the first queued request
func NewSession(items []Item, cfg config.WorkflowConfig, now time.Time) *Session {
	s := &Session{
		ID:        uuid.New(),
		Queue:     items,
		CreatedAt: now,
		UpdatedAt: now,
		cfg:       cfg,
	}
	s.load(0)
	return s
}

// Steps returns the step sequence for this session's configuration
func (s *Session) Steps() []Step {
	if s.cfg.VoiceComparisonEnabled {
		return []Step{StepReview, StepCompare, StepIdentify, StepConfirm}
	}
	return []Step{StepReview, StepIdentify, StepConfirm}
}

// Finished reports whether every queued request has a result
func (s *Session) Finished() bool {
	return s.Step == StepDone
}

// Current returns the item being decided, nil once finished
func (s *Session) Current() *Item {
	if s.Finished() || s.Index >= len(s.Queue) {
		return nil
	}
	return &s.Queue[s.Index]
}

// Next moves to the following step. Leaving confirm requires a submit.
func (s *Session) Next(now time.Time) error {
	if s.Finished() {
		return entities.ErrWorkflowFinished
	}
	steps := s.Steps()
	i := indexOf(steps, s.Step)
	if i < 0 || i == len(steps)-1 {
		return fmt.Errorf("%w: cannot advance past %s", entities.ErrInvalidStep, s.Step)
	}
	s.Step = steps[i+1]
	s.UpdatedAt = now
	return nil
}

// Back returns to the previous step
func (s *Session) Back(now time.Time) error {
	if s.Finished() {
		return entities.ErrWorkflowFinished
	}
	steps := s.Steps()
	i := indexOf(steps, s.Step)
	if i <= 0 {
		return fmt.Errorf("%w: cannot go back from %s", entities.ErrInvalidStep, s.Step)
	}
	s.Step = steps[i-1]
	s.UpdatedAt = now
	return nil
}

// UpdateForm applies a form change
func (s *Session) UpdateForm(u FormUpdate, now time.Time) error {
	if s.Finished() {
		return entities.ErrWorkflowFinished
	}
	if u.Method != nil && !u.Method.IsValid() {
		return fmt.Errorf("%w: unknown method %q", entities.ErrValidation, *u.Method)
	}
	if u.Confidence != nil && (*u.Confidence < 0 || *u.Confidence > 1) {
		return fmt.Errorf("%w: confidence must be within [0,1]", entities.ErrValidation)
	}

	var suggestion *entities.Suggestion
	if u.SuggestionVoiceID != nil && *u.SuggestionVoiceID != "" {
		for _, sg := range s.Current().Suggestions {
			if sg.VoiceID == *u.SuggestionVoiceID {
				suggestion = &sg
				break
			}
		}
		if suggestion == nil {
			return fmt.Errorf("%w: unknown suggestion %s", entities.ErrValidation, *u.SuggestionVoiceID)
		}
	}

	if u.ManualName != nil {
		s.Form.ManualName = *u.ManualName
	}
	if u.SuggestionVoiceID != nil {
		s.Form.SelectedSuggestion = suggestion
	}
	if u.ClearProfile {
		s.Form.SelectedProfile = nil
	}
	if u.Profile != nil {
		s.Form.SelectedProfile = u.Profile.Clone()
	}
	if u.Method != nil {
		s.Form.Method = *u.Method
	}
	if u.Confidence != nil {
		s.Form.Confidence = *u.Confidence
	}
	s.UpdatedAt = now
	return nil
}

// Submit records the decision described by the form. Allowed at identify
// and confirm. A form that does not support an identification under its
// method yields a skipped result.
func (s *Session) Submit(now time.Time) (entities.IdentificationResult, error) {
	if s.Finished() {
		return entities.IdentificationResult{}, entities.ErrWorkflowFinished
	}
	if s.Step != StepIdentify && s.Step != StepConfirm {
		return entities.IdentificationResult{}, fmt.Errorf("%w: submit at %s", entities.ErrInvalidStep, s.Step)
	}
	return s.finish(Decide(s.Current().Request, s.Form, now), now), nil
}

// Skip records a skipped result regardless of the form
func (s *Session) Skip(now time.Time) (entities.IdentificationResult, error) {
	if s.Finished() {
		return entities.IdentificationResult{}, entities.ErrWorkflowFinished
	}
	if s.Step != StepCompare && s.Step != StepIdentify {
		return entities.IdentificationResult{}, fmt.Errorf("%w: %s", entities.ErrStepNotSkippable, s.Step)
	}
	return s.finish(outcome(s.Current().Request, entities.ActionSkipped, s.Form.Method, now), now), nil
}

// Defer postpones the current speaker. Allowed at any step.
func (s *Session) Defer(now time.Time) (entities.IdentificationResult, error) {
	if s.Finished() {
		return entities.IdentificationResult{}, entities.ErrWorkflowFinished
	}
	return s.finish(outcome(s.Current().Request, entities.ActionDeferred, s.Form.Method, now), now), nil
}

// Clone returns a deep copy safe to hand outside the service lock
func (s *Session) Clone() *Session {
	out := *s
	out.Queue = append([]Item(nil), s.Queue...)
	out.Results = append([]entities.IdentificationResult(nil), s.Results...)
	if s.Form.SelectedSuggestion != nil {
		sg := *s.Form.SelectedSuggestion
		out.Form.SelectedSuggestion = &sg
	}
	if s.Form.SelectedProfile != nil {
		out.Form.SelectedProfile = s.Form.SelectedProfile.Clone()
	}
	return &out
}

func (s *Session) finish(r entities.IdentificationResult, now time.Time) entities.IdentificationResult {
	s.Results = append(s.Results, r)
	s.UpdatedAt = now
	s.load(s.Index + 1)
	return r
}

// load positions the session on queue item i with a fresh form
func (s *Session) load(i int) {
	s.Index = i
	if i >= len(s.Queue) {
		s.Step = StepDone
		s.Form = Form{}
		return
	}

	s.Step = StepReview
	s.Form = Form{
		Method:     entities.MethodManual,
		Confidence: s.cfg.DefaultManualConfidence,
	}
	if best := bestSuggestion(s.Queue[i].Suggestions); best != nil && best.Confidence >= s.cfg.AutoSuggestionThreshold {
		s.Form.SelectedSuggestion = best
		s.Form.Method = entities.MethodSuggested
	}
}

func bestSuggestion(list []entities.Suggestion) *entities.Suggestion {
	var best *entities.Suggestion
	for i := range list {
		if best == nil || list[i].Confidence > best.Confidence {
			sg := list[i]
			best = &sg
		}
	}
	return best
}

// Decide maps a form to its terminal result
func Decide(req *entities.IdentificationRequest, form Form, now time.Time) entities.IdentificationResult {
	r := outcome(req, entities.ActionSkipped, form.Method, now)

	switch form.Method {
	case entities.MethodManual:
		name := strings.TrimSpace(form.ManualName)
		if name == "" {
			return r
		}
		r.UserID = entities.StringPtr(uuid.New().String())
		r.UserName = entities.StringPtr(name)
		r.Confidence = form.Confidence
	case entities.MethodSuggested:
		sg := form.SelectedSuggestion
		if sg == nil {
			return r
		}
		r.UserID = entities.StringPtr(sg.UserID)
		r.UserName = entities.StringPtr(sg.UserName)
		r.Confidence = sg.Confidence
	case entities.MethodMatched:
		p := form.SelectedProfile
		if p == nil {
			return r
		}
		if p.UserID != nil && *p.UserID != "" {
			r.UserID = entities.StringPtr(*p.UserID)
		} else {
			r.UserID = entities.StringPtr(uuid.NewSHA1(voiceNamespace, []byte(p.DeepgramVoiceID)).String())
		}
		if p.DisplayName != nil && *p.DisplayName != "" {
			r.UserName = entities.StringPtr(*p.DisplayName)
		} else {
			r.UserName = entities.StringPtr(UnknownUserName)
		}
		r.Confidence = form.Confidence
	default:
		return r
	}

	r.Action = entities.ActionIdentified
	return r
}

func outcome(req *entities.IdentificationRequest, action entities.Action, method entities.Method, now time.Time) entities.IdentificationResult {
	return entities.IdentificationResult{
		RequestID:    req.ID,
		VoiceID:      req.VoiceID,
		SpeakerLabel: req.SpeakerLabel,
		MeetingID:    req.MeetingID,
		MeetingTitle: req.MeetingTitle,
		Action:       action,
		Method:       method,
		DecidedAt:    now,
	}
}

func indexOf(steps []Step, s Step) int {
	for i, st := range steps {
		if st == s {
			return i
		}
	}
	return -1
}
