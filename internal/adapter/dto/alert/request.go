package alert

import (
	"math"
	"time"
)

// DetectionRequest represents a speaker detection pushed by the diarization pipeline
type DetectionRequest struct {
	SpeakerID               string     `json:"speaker_id" validate:"required,max=255"`
	MeetingID               string     `json:"meeting_id,omitempty" validate:"max=255"`
	Confidence              float64    `json:"confidence" validate:"gte=0,lte=1"`
	SpeakingDurationSeconds float64    `json:"speaking_duration_seconds" validate:"gte=0"`
	MessageCount            int        `json:"message_count" validate:"gte=0"`
	DetectedAt              *time.Time `json:"detected_at,omitempty"`
	LastActiveAt            *time.Time `json:"last_active_at,omitempty"`
	PitchBand               string     `json:"pitch_band" validate:"required,pitch_band"`
	PaceBand                string     `json:"pace_band" validate:"required,pace_band"`
	ContextClues            []string   `json:"context_clues,omitempty" validate:"max=20"`
}

// MaxDismissMs is the longest dismissal that still fits in a time.Duration
const MaxDismissMs = math.MaxInt64 / int64(time.Millisecond)

// DismissRequest represents the request to dismiss an alert.
// A zero duration dismisses until the service restarts.
type DismissRequest struct {
	DurationMs int64 `json:"duration_ms" validate:"gte=0,lte=9223372036854"`
}

// DeferRequest represents the request to ask again later
type DeferRequest struct {
	Minutes int `json:"minutes" validate:"required,gt=0,lte=10080"`
}

// IngestTranscriptRequest represents the request to turn a completed
// AssemblyAI transcript into detections
type IngestTranscriptRequest struct {
	TranscriptID string `param:"transcript_id" validate:"required"`
	MeetingID    string `json:"meeting_id,omitempty" validate:"max=255"`
}
