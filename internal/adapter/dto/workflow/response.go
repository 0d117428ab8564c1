package workflow

import (
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/profile"
)

// SuggestionResponse represents a suggested identity
type SuggestionResponse struct {
	VoiceID    string  `json:"voice_id"`
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}

// RequestResponse represents a NeedsIdentification request
type RequestResponse struct {
	ID                string    `json:"id"`
	VoiceID           string    `json:"voice_id"`
	SpeakerLabel      string    `json:"speaker_label"`
	MeetingID         string    `json:"meeting_id"`
	MeetingTitle      string    `json:"meeting_title"`
	MeetingDate       time.Time `json:"meeting_date"`
	SampleTranscripts []string  `json:"sample_transcripts"`
	AudioURL          string    `json:"audio_url,omitempty"`
}

// ItemResponse represents the request under review
type ItemResponse struct {
	Request     RequestResponse      `json:"request"`
	Suggestions []SuggestionResponse `json:"suggestions"`
}

// FormResponse represents the accumulated form inputs
type FormResponse struct {
	ManualName         string                   `json:"manual_name"`
	SelectedSuggestion *SuggestionResponse      `json:"selected_suggestion,omitempty"`
	SelectedProfile    *profile.ProfileResponse `json:"selected_profile,omitempty"`
	Method             string                   `json:"method"`
	Confidence         float64                  `json:"confidence"`
}

// ResultResponse represents one identification outcome
type ResultResponse struct {
	RequestID    string    `json:"request_id"`
	VoiceID      string    `json:"voice_id"`
	SpeakerLabel string    `json:"speaker_label"`
	MeetingID    string    `json:"meeting_id"`
	Action       string    `json:"action"`
	UserID       *string   `json:"user_id,omitempty"`
	UserName     *string   `json:"user_name,omitempty"`
	Confidence   float64   `json:"confidence"`
	Method       string    `json:"method"`
	DecidedAt    time.Time `json:"decided_at"`
}

// SessionResponse represents a workflow session
type SessionResponse struct {
	ID        string           `json:"id"`
	Step      string           `json:"step"`
	Steps     []string         `json:"steps"`
	Index     int              `json:"index"`
	Total     int              `json:"total"`
	Finished  bool             `json:"finished"`
	Current   *ItemResponse    `json:"current,omitempty"`
	Form      FormResponse     `json:"form"`
	Results   []ResultResponse `json:"results"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// TransitionResponse represents a session after a terminal transition
type TransitionResponse struct {
	Session SessionResponse `json:"session"`
	Result  *ResultResponse `json:"result,omitempty"`
}
