package workflow

// StartSessionRequest represents the request to open a session over pending requests
type StartSessionRequest struct {
	Limit int `json:"limit" validate:"gte=0,lte=100"`
}

// SessionIDRequest binds the session id path parameter
type SessionIDRequest struct {
	ID string `param:"id" validate:"required,uuid"`
}

// UpdateFormRequest represents a partial form update. Send an empty
// profile_voice_id to clear the selected profile.
type UpdateFormRequest struct {
	ID                string   `param:"id" validate:"required,uuid"`
	ManualName        *string  `json:"manual_name,omitempty" validate:"omitempty,max=255"`
	SuggestionVoiceID *string  `json:"suggestion_voice_id,omitempty" validate:"omitempty,max=255"`
	ProfileVoiceID    *string  `json:"profile_voice_id,omitempty" validate:"omitempty,max=255"`
	Method            *string  `json:"method,omitempty" validate:"omitempty,oneof=manual suggested matched"`
	Confidence        *float64 `json:"confidence,omitempty" validate:"omitempty,gte=0,lte=1"`
}
