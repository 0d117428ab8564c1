package alert

import "time"

// SignatureResponse represents the coarse voice signature
type SignatureResponse struct {
	PitchBand string `json:"pitch_band"`
	PaceBand  string `json:"pace_band"`
}

// DetectionResponse represents one speaker detection
type DetectionResponse struct {
	SpeakerID               string            `json:"speaker_id"`
	MeetingID               string            `json:"meeting_id,omitempty"`
	Confidence              float64           `json:"confidence"`
	SpeakingDurationSeconds float64           `json:"speaking_duration_seconds"`
	MessageCount            int               `json:"message_count"`
	DetectedAt              time.Time         `json:"detected_at"`
	LastActiveAt            time.Time         `json:"last_active_at"`
	Signature               SignatureResponse `json:"signature"`
	ContextClues            []string          `json:"context_clues,omitempty"`
}

// BatchResponse represents an alert batch
type BatchResponse struct {
	Key             string              `json:"key"`
	State           string              `json:"state"`
	Members         []DetectionResponse `json:"members"`
	Signature       SignatureResponse   `json:"signature"`
	FirstDetectedAt time.Time           `json:"first_detected_at"`
	VisibleAt       *time.Time          `json:"visible_at,omitempty"`
	ClosedAt        *time.Time          `json:"closed_at,omitempty"`
	CloseReason     string              `json:"close_reason,omitempty"`
}

// AlertListResponse represents the active alerts plus display hints
type AlertListResponse struct {
	Alerts   []BatchResponse `json:"alerts"`
	Position string          `json:"position"`
	Theme    string          `json:"theme"`
}

// DetectionResultResponse reports where an ingested detection landed.
// Batch is nil when the detection did not qualify.
type DetectionResultResponse struct {
	Qualified bool           `json:"qualified"`
	Batch     *BatchResponse `json:"batch,omitempty"`
}

// IngestTranscriptResponse summarises a transcript ingest
type IngestTranscriptResponse struct {
	TranscriptID string          `json:"transcript_id"`
	Detections   int             `json:"detections"`
	Qualified    int             `json:"qualified"`
	Batches      []BatchResponse `json:"batches"`
}
