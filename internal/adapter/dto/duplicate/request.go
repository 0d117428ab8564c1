package duplicate

// CompareRequest represents the request to compare a group of profiles.
// The first voice id is the primary.
type CompareRequest struct {
	VoiceIDs []string `json:"voice_ids" validate:"required,min=2,max=10,unique,dive,required"`
}

// ConflictResolution picks the value a conflicted field keeps
type ConflictResolution struct {
	Field            string  `json:"field" validate:"required,oneof=user_id display_name"`
	SecondaryVoiceID string  `json:"secondary_voice_id" validate:"required"`
	Resolution       string  `json:"resolution" validate:"required,oneof=primary secondary custom"`
	CustomValue      *string `json:"custom_value,omitempty" validate:"required_if=Resolution custom"`
}

// MergeRequest represents the request to merge profiles into the first one
type MergeRequest struct {
	VoiceIDs    []string             `json:"voice_ids" validate:"required,min=2,max=10,unique,dive,required"`
	Resolutions []ConflictResolution `json:"resolutions" validate:"dive"`
}
