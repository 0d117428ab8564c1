package entities

import (
	"time"

	"github.com/google/uuid"
)

// Action is the terminal outcome of an identification or ledger entry
type Action string

const (
	ActionIdentified Action = "identified"
	ActionSkipped    Action = "skipped"
	ActionDeferred   Action = "deferred"
	ActionMerged     Action = "merged"
	ActionUndone     Action = "undone"
)

// Method is how an identity was chosen
type Method string

const (
	MethodManual    Method = "manual"
	MethodSuggested Method = "suggested"
	MethodMatched   Method = "matched"
)

// IsValid checks if the method is known
func (m Method) IsValid() bool {
	switch m {
	case MethodManual, MethodSuggested, MethodMatched:
		return true
	}
	return false
}

// RequestStatus represents the state of a NeedsIdentification request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestResolved RequestStatus = "resolved"
)

// IdentificationRequest asks a user to put a name on an unknown voice
type IdentificationRequest struct {
	ID                uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	VoiceID           string        `json:"voice_id" gorm:"type:varchar(255);not null;index"`
	SpeakerLabel      string        `json:"speaker_label" gorm:"type:varchar(100);not null"`
	MeetingID         string        `json:"meeting_id" gorm:"type:varchar(255);index"`
	MeetingTitle      string        `json:"meeting_title" gorm:"type:varchar(255)"`
	MeetingDate       time.Time     `json:"meeting_date"`
	SampleTranscripts []string      `json:"sample_transcripts" gorm:"type:jsonb;serializer:json"`
	AudioURL          string        `json:"audio_url" gorm:"type:varchar(1000)"`
	Status            RequestStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	ResolvedAction    *Action       `json:"resolved_action,omitempty" gorm:"type:varchar(20)"`
	ResolvedUserID    *string       `json:"resolved_user_id,omitempty" gorm:"type:varchar(255)"`
	ResolvedUserName  *string       `json:"resolved_user_name,omitempty" gorm:"type:varchar(255)"`
	ResolvedAt        *time.Time    `json:"resolved_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (IdentificationRequest) TableName() string {
	return "identification_requests"
}

// IdentificationResult is the immutable outcome of one workflow run
type IdentificationResult struct {
	RequestID    uuid.UUID `json:"request_id"`
	VoiceID      string    `json:"voice_id"`
	SpeakerLabel string    `json:"speaker_label"`
	MeetingID    string    `json:"meeting_id"`
	MeetingTitle string    `json:"meeting_title"`
	Action       Action    `json:"action"`
	UserID       *string   `json:"user_id,omitempty"`
	UserName     *string   `json:"user_name,omitempty"`
	Confidence   float64   `json:"confidence"`
	Method       Method    `json:"method"`
	DecidedAt    time.Time `json:"decided_at"`
}

// Suggestion is a candidate identity offered by the matcher
type Suggestion struct {
	VoiceID    string  `json:"voice_id"`
	UserID     string  `json:"user_id"`
	UserName   string  `json:"user_name"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}
