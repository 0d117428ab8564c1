package entities

import "time"

// AlertState represents the lifecycle state of an alert batch
type AlertState string

const (
	AlertPending   AlertState = "pending"
	AlertDelayed   AlertState = "delayed"
	AlertVisible   AlertState = "visible"
	AlertDismissed AlertState = "dismissed"
	AlertDeferred  AlertState = "deferred"
	AlertExpired   AlertState = "expired"
)

// IsOpen reports whether the batch can still accept members
func (s AlertState) IsOpen() bool {
	return s == AlertPending || s == AlertDelayed
}

// IsTerminal reports whether the batch has left the active set
func (s AlertState) IsTerminal() bool {
	switch s {
	case AlertDismissed, AlertDeferred, AlertExpired:
		return true
	}
	return false
}

// CloseReason explains why a batch reached a terminal state
type CloseReason string

const (
	CloseDismissed CloseReason = "dismissed"
	CloseDeferred  CloseReason = "deferred"
	CloseExpired   CloseReason = "expired"
	// CloseEvicted marks a visible batch pushed out to make room. No
	// suppression is recorded for its speakers.
	CloseEvicted CloseReason = "evicted"
)

// AlertBatch groups detections presented to the user as one alert
type AlertBatch struct {
	Key             string             `json:"key"`
	Members         []SpeakerDetection `json:"members"`
	Signature       Signature          `json:"signature"`
	FirstDetectedAt time.Time          `json:"first_detected_at"`
	State           AlertState         `json:"state"`
	VisibleAt       *time.Time         `json:"visible_at,omitempty"`
	ClosedAt        *time.Time         `json:"closed_at,omitempty"`
	CloseReason     CloseReason        `json:"close_reason,omitempty"`
}

// NewAlertBatch opens a pending batch keyed by the detection's speaker
func NewAlertBatch(d SpeakerDetection, now time.Time) *AlertBatch {
	return &AlertBatch{
		Key:             d.SpeakerID,
		Members:         []SpeakerDetection{d.Clone()},
		Signature:       d.Signature,
		FirstDetectedAt: now,
		State:           AlertPending,
	}
}

// IndexOf returns the member position of speakerID or -1
func (b *AlertBatch) IndexOf(speakerID string) int {
	for i := range b.Members {
		if b.Members[i].SpeakerID == speakerID {
			return i
		}
	}
	return -1
}

// SpeakerIDs returns member ids in arrival order
func (b *AlertBatch) SpeakerIDs() []string {
	ids := make([]string, len(b.Members))
	for i := range b.Members {
		ids[i] = b.Members[i].SpeakerID
	}
	return ids
}

// Clone returns a deep copy safe to hand outside the engine lock
func (b *AlertBatch) Clone() AlertBatch {
	out := *b
	out.Members = make([]SpeakerDetection, len(b.Members))
	for i := range b.Members {
		out.Members[i] = b.Members[i].Clone()
	}
	if b.VisibleAt != nil {
		t := *b.VisibleAt
		out.VisibleAt = &t
	}
	if b.ClosedAt != nil {
		t := *b.ClosedAt
		out.ClosedAt = &t
	}
	return out
}

// Dismissal suppresses alerts for one speaker. A permanent dismissal lasts
// until the process restarts.
type Dismissal struct {
	Until     time.Time `json:"until"`
	Permanent bool      `json:"permanent"`
}

// Active reports whether the dismissal still applies at now
func (d Dismissal) Active(now time.Time) bool {
	return d.Permanent || now.Before(d.Until)
}

// Suppressions holds the per-speaker maps consulted by the alert filter
type Suppressions struct {
	Dismissals map[string]Dismissal
	Deferrals  map[string]time.Time
	LastAlert  map[string]time.Time
}

// NewSuppressions returns empty, ready to use maps
func NewSuppressions() Suppressions {
	return Suppressions{
		Dismissals: make(map[string]Dismissal),
		Deferrals:  make(map[string]time.Time),
		LastAlert:  make(map[string]time.Time),
	}
}

// AlertEventType names a transition reported to listeners
type AlertEventType string

const (
	AlertEventCreated AlertEventType = "created"
	AlertEventUpdated AlertEventType = "updated"
	AlertEventDelayed AlertEventType = "delayed"
	AlertEventVisible AlertEventType = "visible"
	AlertEventClosed  AlertEventType = "closed"
)

// AlertEvent is emitted on every batch transition
type AlertEvent struct {
	Type  AlertEventType `json:"type"`
	Batch AlertBatch     `json:"batch"`
	At    time.Time      `json:"at"`
}
