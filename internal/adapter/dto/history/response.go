package history

import "time"

// EntryResponse represents one ledger entry
type EntryResponse struct {
	ID           string                 `json:"id"`
	Kind         string                 `json:"kind"`
	Timestamp    time.Time              `json:"timestamp"`
	RequestID    *string                `json:"request_id,omitempty"`
	VoiceID      string                 `json:"voice_id"`
	SpeakerLabel string                 `json:"speaker_label,omitempty"`
	MeetingID    string                 `json:"meeting_id,omitempty"`
	MeetingTitle string                 `json:"meeting_title,omitempty"`
	Action       string                 `json:"action"`
	Method       string                 `json:"method,omitempty"`
	UserID       *string                `json:"user_id,omitempty"`
	UserName     *string                `json:"user_name,omitempty"`
	Confidence   float64                `json:"confidence"`
	Undoable     bool                   `json:"undoable"`
	Details      map[string]interface{} `json:"details,omitempty"`
	Restorable   bool                   `json:"restorable"`
}

// EntryListResponse represents a list of ledger entries
type EntryListResponse struct {
	Entries []EntryResponse `json:"entries"`
	Total   int             `json:"total"`
}

// DailyActivityResponse represents one day of the activity trend
type DailyActivityResponse struct {
	Date       string  `json:"date"`
	Identified int     `json:"identified"`
	Skipped    int     `json:"skipped"`
	Deferred   int     `json:"deferred"`
	Merged     int     `json:"merged"`
	Undone     int     `json:"undone"`
	Accuracy   float64 `json:"accuracy"`
}

// StatsResponse represents ledger statistics
type StatsResponse struct {
	Total             int                     `json:"total"`
	Identified        int                     `json:"identified"`
	Skipped           int                     `json:"skipped"`
	Deferred          int                     `json:"deferred"`
	Merged            int                     `json:"merged"`
	Undone            int                     `json:"undone"`
	AverageConfidence float64                 `json:"average_confidence"`
	MethodBreakdown   map[string]int          `json:"method_breakdown"`
	DailyActivity     []DailyActivityResponse `json:"daily_activity"`
}

// RedoResponse represents the outcome of a redo; Entry is nil when there
// was nothing to redo
type RedoResponse struct {
	Entry *EntryResponse `json:"entry,omitempty"`
}
