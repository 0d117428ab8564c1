package presenter

import (
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/workflow"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	wfUsecase "github.com/johnquangdev/meeting-voiceid/internal/usecase/workflow"
)

// ToSessionResponse converts a workflow session to its DTO
func ToSessionResponse(s *wfUsecase.Session) workflow.SessionResponse {
	steps := s.Steps()
	stepNames := make([]string, len(steps))
	for i, st := range steps {
		stepNames[i] = string(st)
	}

	results := make([]workflow.ResultResponse, len(s.Results))
	for i, r := range s.Results {
		results[i] = ToResultResponse(r)
	}

	resp := workflow.SessionResponse{
		ID:        s.ID.String(),
		Step:      string(s.Step),
		Steps:     stepNames,
		Index:     s.Index,
		Total:     len(s.Queue),
		Finished:  s.Finished(),
		Form:      toFormResponse(s.Form),
		Results:   results,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if item := s.Current(); item != nil {
		resp.Current = toItemResponse(item)
	}
	return resp
}

// ToTransitionResponse converts a session and the result its last
// transition produced
func ToTransitionResponse(s *wfUsecase.Session, r *entities.IdentificationResult) workflow.TransitionResponse {
	resp := workflow.TransitionResponse{Session: ToSessionResponse(s)}
	if r != nil {
		res := ToResultResponse(*r)
		resp.Result = &res
	}
	return resp
}

// ToResultResponse converts an identification result to its DTO
func ToResultResponse(r entities.IdentificationResult) workflow.ResultResponse {
	return workflow.ResultResponse{
		RequestID:    r.RequestID.String(),
		VoiceID:      r.VoiceID,
		SpeakerLabel: r.SpeakerLabel,
		MeetingID:    r.MeetingID,
		Action:       string(r.Action),
		UserID:       r.UserID,
		UserName:     r.UserName,
		Confidence:   r.Confidence,
		Method:       string(r.Method),
		DecidedAt:    r.DecidedAt,
	}
}

// ToFormInput converts a form update request to the service input
func ToFormInput(req *workflow.UpdateFormRequest) wfUsecase.FormInput {
	in := wfUsecase.FormInput{
		ManualName:        req.ManualName,
		SuggestionVoiceID: req.SuggestionVoiceID,
		ProfileVoiceID:    req.ProfileVoiceID,
		Confidence:        req.Confidence,
	}
	if req.Method != nil {
		m := entities.Method(*req.Method)
		in.Method = &m
	}
	return in
}

func toItemResponse(item *wfUsecase.Item) *workflow.ItemResponse {
	req := item.Request
	samples := req.SampleTranscripts
	if samples == nil {
		samples = []string{}
	}
	suggestions := make([]workflow.SuggestionResponse, len(item.Suggestions))
	for i, sg := range item.Suggestions {
		suggestions[i] = toSuggestionResponse(sg)
	}
	return &workflow.ItemResponse{
		Request: workflow.RequestResponse{
			ID:                req.ID.String(),
			VoiceID:           req.VoiceID,
			SpeakerLabel:      req.SpeakerLabel,
			MeetingID:         req.MeetingID,
			MeetingTitle:      req.MeetingTitle,
			MeetingDate:       req.MeetingDate,
			SampleTranscripts: samples,
			AudioURL:          req.AudioURL,
		},
		Suggestions: suggestions,
	}
}

func toSuggestionResponse(s entities.Suggestion) workflow.SuggestionResponse {
	return workflow.SuggestionResponse{
		VoiceID:    s.VoiceID,
		UserID:     s.UserID,
		UserName:   s.UserName,
		Confidence: s.Confidence,
		Reason:     s.Reason,
	}
}

func toFormResponse(f wfUsecase.Form) workflow.FormResponse {
	resp := workflow.FormResponse{
		ManualName: f.ManualName,
		Method:     string(f.Method),
		Confidence: f.Confidence,
	}
	if f.SelectedSuggestion != nil {
		sg := toSuggestionResponse(*f.SelectedSuggestion)
		resp.SelectedSuggestion = &sg
	}
	if f.SelectedProfile != nil {
		p := ToProfileResponse(f.SelectedProfile, false)
		resp.SelectedProfile = &p
	}
	return resp
}
