package entities

import (
	"maps"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EntryKind separates identification decisions from merges
type EntryKind string

const (
	EntryIdentification EntryKind = "identification"
	EntryMerge          EntryKind = "merge"
)

// MergeSnapshot holds the profile states needed to undo and redo a merge
type MergeSnapshot struct {
	Before []*SpeakerProfile `json:"before"`
	After  []*SpeakerProfile `json:"after"`
}

// HistoryEntry is one row of the decision ledger
type HistoryEntry struct {
	ID           uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Kind         EntryKind         `json:"kind" gorm:"type:varchar(20);not null;index"`
	Timestamp    time.Time         `json:"timestamp" gorm:"not null;index"`
	RequestID    *uuid.UUID        `json:"request_id,omitempty" gorm:"type:uuid"`
	VoiceID      string            `json:"voice_id" gorm:"type:varchar(255);index"`
	SpeakerLabel string            `json:"speaker_label" gorm:"type:varchar(100)"`
	MeetingID    string            `json:"meeting_id" gorm:"type:varchar(255)"`
	MeetingTitle string            `json:"meeting_title" gorm:"type:varchar(255)"`
	Action       Action            `json:"action" gorm:"type:varchar(20);not null"`
	Method       Method            `json:"method,omitempty" gorm:"type:varchar(20)"`
	UserID       *string           `json:"user_id,omitempty" gorm:"type:varchar(255)"`
	UserName     *string           `json:"user_name,omitempty" gorm:"type:varchar(255)"`
	Confidence   float64           `json:"confidence"`
	Undoable     bool              `json:"undoable" gorm:"not null;default:false"`
	Details      datatypes.JSONMap `json:"details,omitempty" gorm:"type:jsonb"`
	Snapshot     *MergeSnapshot    `json:"-" gorm:"type:jsonb;serializer:json"`
	RecordedAt   time.Time         `json:"-" gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for GORM
func (HistoryEntry) TableName() string {
	return "history_entries"
}

// NewIdentificationEntry builds an undoable ledger entry from a result
func NewIdentificationEntry(r IdentificationResult) *HistoryEntry {
	id := r.RequestID
	return &HistoryEntry{
		ID:           uuid.New(),
		Kind:         EntryIdentification,
		Timestamp:    r.DecidedAt,
		RequestID:    &id,
		VoiceID:      r.VoiceID,
		SpeakerLabel: r.SpeakerLabel,
		MeetingID:    r.MeetingID,
		MeetingTitle: r.MeetingTitle,
		Action:       r.Action,
		Method:       r.Method,
		UserID:       cloneString(r.UserID),
		UserName:     cloneString(r.UserName),
		Confidence:   r.Confidence,
		Undoable:     true,
	}
}

// Clone returns a deep copy of the entry
func (e *HistoryEntry) Clone() *HistoryEntry {
	out := *e
	if e.RequestID != nil {
		id := *e.RequestID
		out.RequestID = &id
	}
	out.UserID = cloneString(e.UserID)
	out.UserName = cloneString(e.UserName)
	if e.Details != nil {
		out.Details = maps.Clone(e.Details)
	}
	if e.Snapshot != nil {
		out.Snapshot = &MergeSnapshot{
			Before: cloneProfiles(e.Snapshot.Before),
			After:  cloneProfiles(e.Snapshot.After),
		}
	}
	return &out
}

func cloneProfiles(in []*SpeakerProfile) []*SpeakerProfile {
	if in == nil {
		return nil
	}
	out := make([]*SpeakerProfile, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
