package profile

import "time"

// AudioSampleResponse represents a stored audio sample
type AudioSampleResponse struct {
	URL             string    `json:"url"`
	Transcript      string    `json:"transcript"`
	Quality         float64   `json:"quality"`
	DurationSeconds float64   `json:"duration_seconds"`
	Timestamp       time.Time `json:"timestamp"`
	MeetingID       string    `json:"meeting_id,omitempty"`
}

// ProfileResponse represents a speaker profile
type ProfileResponse struct {
	VoiceID                  string                `json:"voice_id"`
	UserID                   *string               `json:"user_id,omitempty"`
	DisplayName              *string               `json:"display_name,omitempty"`
	Confirmed                bool                  `json:"confirmed"`
	Confidence               float64               `json:"confidence"`
	FirstHeard               time.Time             `json:"first_heard"`
	LastHeard                time.Time             `json:"last_heard"`
	MeetingsCount            int                   `json:"meetings_count"`
	TotalSpeakingTimeSeconds float64               `json:"total_speaking_time_seconds"`
	SampleCount              int                   `json:"sample_count"`
	Samples                  []AudioSampleResponse `json:"samples,omitempty"`
	MergedInto               *string               `json:"merged_into,omitempty"`
}
