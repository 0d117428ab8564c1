package entities

import "time"

// PitchBand is the coarse pitch class reported by diarization
type PitchBand string

const (
	PitchLow    PitchBand = "low"
	PitchMedium PitchBand = "medium"
	PitchHigh   PitchBand = "high"
)

// IsValid checks if the pitch band is known
func (b PitchBand) IsValid() bool {
	switch b {
	case PitchLow, PitchMedium, PitchHigh:
		return true
	}
	return false
}

// PaceBand is the coarse speaking pace class
type PaceBand string

const (
	PaceSlow   PaceBand = "slow"
	PaceNormal PaceBand = "normal"
	PaceFast   PaceBand = "fast"
)

// IsValid checks if the pace band is known
func (b PaceBand) IsValid() bool {
	switch b {
	case PaceSlow, PaceNormal, PaceFast:
		return true
	}
	return false
}

// Signature is the acoustic characteristic used for alert batching
type Signature struct {
	PitchBand PitchBand `json:"pitch_band"`
	PaceBand  PaceBand  `json:"pace_band"`
}

// Matches reports whether both bands are equal
func (s Signature) Matches(other Signature) bool {
	return s.PitchBand == other.PitchBand && s.PaceBand == other.PaceBand
}

// SpeakerDetection is the latest activity snapshot of an unidentified speaker.
// A newer detection for the same SpeakerID supersedes the previous one.
type SpeakerDetection struct {
	SpeakerID               string    `json:"speaker_id"`
	MeetingID               string    `json:"meeting_id,omitempty"`
	Confidence              float64   `json:"confidence"`
	SpeakingDurationSeconds float64   `json:"speaking_duration_seconds"`
	MessageCount            int       `json:"message_count"`
	DetectedAt              time.Time `json:"detected_at"`
	LastActiveAt            time.Time `json:"last_active_at"`
	Signature               Signature `json:"signature"`
	ContextClues            []string  `json:"context_clues,omitempty"`
}

// Clone returns a copy that shares no slices with d
func (d SpeakerDetection) Clone() SpeakerDetection {
	if d.ContextClues != nil {
		d.ContextClues = append([]string(nil), d.ContextClues...)
	}
	return d
}
