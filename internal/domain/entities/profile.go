package entities

import (
	"time"
)

// AudioSample is a stored excerpt of a speaker's voice
type AudioSample struct {
	URL             string    `json:"url"`
	Transcript      string    `json:"transcript"`
	Quality         float64   `json:"quality"`
	DurationSeconds float64   `json:"duration_seconds"`
	Timestamp       time.Time `json:"timestamp"`
	MeetingID       string    `json:"meeting_id,omitempty"`
}

// IdentificationRecord is one identification applied to a profile
type IdentificationRecord struct {
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	Method     Method    `json:"method"`
	MeetingID  string    `json:"meeting_id,omitempty"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// SpeakerProfile aggregates everything believed to belong to one voice
type SpeakerProfile struct {
	DeepgramVoiceID          string                 `json:"deepgram_voice_id" gorm:"column:deepgram_voice_id;type:varchar(255);primaryKey"`
	UserID                   *string                `json:"user_id,omitempty" gorm:"type:varchar(255);index"`
	DisplayName              *string                `json:"display_name,omitempty" gorm:"type:varchar(255)"`
	Confirmed                bool                   `json:"confirmed" gorm:"default:false;not null"`
	Confidence               float64                `json:"confidence" gorm:"default:0"`
	FirstHeard               time.Time              `json:"first_heard" gorm:"not null"`
	LastHeard                time.Time              `json:"last_heard" gorm:"not null;index"`
	MeetingsCount            int                    `json:"meetings_count" gorm:"default:0;not null"`
	TotalSpeakingTimeSeconds float64                `json:"total_speaking_time_seconds" gorm:"default:0;not null"`
	AudioSamples             []AudioSample          `json:"audio_samples" gorm:"type:jsonb;serializer:json"`
	IdentificationHistory    []IdentificationRecord `json:"identification_history" gorm:"type:jsonb;serializer:json"`
	MergedInto               *string                `json:"merged_into,omitempty" gorm:"type:varchar(255);index"`
	CreatedAt                time.Time              `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt                time.Time              `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (SpeakerProfile) TableName() string {
	return "speaker_profiles"
}

// NewSpeakerProfile creates an unconfirmed profile first heard at now
func NewSpeakerProfile(voiceID string, now time.Time) *SpeakerProfile {
	return &SpeakerProfile{
		DeepgramVoiceID: voiceID,
		FirstHeard:      now,
		LastHeard:       now,
	}
}

// IsMerged reports whether the profile was folded into another one
func (p *SpeakerProfile) IsMerged() bool {
	return p.MergedInto != nil
}

// Field returns the comparable value of a conflict field, nil when unset
func (p *SpeakerProfile) Field(f ConflictField) *string {
	switch f {
	case FieldUserID:
		return p.UserID
	case FieldDisplayName:
		return p.DisplayName
	}
	return nil
}

// SetField assigns a conflict field
func (p *SpeakerProfile) SetField(f ConflictField, v *string) {
	switch f {
	case FieldUserID:
		p.UserID = cloneString(v)
	case FieldDisplayName:
		p.DisplayName = cloneString(v)
	}
}

// Clone returns a deep copy
func (p *SpeakerProfile) Clone() *SpeakerProfile {
	out := *p
	out.UserID = cloneString(p.UserID)
	out.DisplayName = cloneString(p.DisplayName)
	out.MergedInto = cloneString(p.MergedInto)
	if p.AudioSamples != nil {
		out.AudioSamples = append([]AudioSample(nil), p.AudioSamples...)
	}
	if p.IdentificationHistory != nil {
		out.IdentificationHistory = append([]IdentificationRecord(nil), p.IdentificationHistory...)
	}
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}
