package alert

import (
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
	"github.com/johnquangdev/meeting-voiceid/pkg/timer"
)

// Scheduler owns the active batches and their presentation timers. It is
// not safe for concurrent use; the Engine serialises access.
type Scheduler struct {
	delay    time.Duration
	autoHide time.Duration
	maxShown int
	timers   *timer.Registry
	batches  []*entities.AlertBatch
	emit     func(entities.AlertEvent)
	onClosed func(b *entities.AlertBatch)
}

// NewScheduler creates a scheduler. emit receives every transition and
// onClosed every batch leaving the active set; both may be nil.
func NewScheduler(cfg config.AlertConfig, emit func(entities.AlertEvent), onClosed func(*entities.AlertBatch)) *Scheduler {
	if emit == nil {
		emit = func(entities.AlertEvent) {}
	}
	if onClosed == nil {
		onClosed = func(*entities.AlertBatch) {}
	}
	return &Scheduler{
		delay:    cfg.AlertDelay,
		autoHide: cfg.AutoHideDelay,
		maxShown: cfg.MaxSimultaneousAlerts,
		timers:   timer.NewRegistry(),
		emit:     emit,
		onClosed: onClosed,
	}
}

func delayKey(key string) string    { return "delay:" + key }
func autoHideKey(key string) string { return "autohide:" + key }

// Add registers a new pending batch and arms its delay timer
func (s *Scheduler) Add(b *entities.AlertBatch, now time.Time) {
	b.State = entities.AlertPending
	s.batches = append(s.batches, b)
	s.publish(entities.AlertEventCreated, b, now)

	key := b.Key
	s.timers.Schedule(delayKey(key), now.Add(s.delay), func(at time.Time) {
		s.present(key, at)
	})
	b.State = entities.AlertDelayed
	s.publish(entities.AlertEventDelayed, b, now)
}

// Touch reports a membership change of an open batch
func (s *Scheduler) Touch(b *entities.AlertBatch, now time.Time) {
	s.publish(entities.AlertEventUpdated, b, now)
}

// Advance fires every timer due at now
func (s *Scheduler) Advance(now time.Time) int {
	return s.timers.Fire(now)
}

// Find returns the active batch with the given key
func (s *Scheduler) Find(key string) *entities.AlertBatch {
	for _, b := range s.batches {
		if b.Key == key {
			return b
		}
	}
	return nil
}

// FindSpeaker returns the active batch containing speakerID
func (s *Scheduler) FindSpeaker(speakerID string) *entities.AlertBatch {
	for _, b := range s.batches {
		if b.IndexOf(speakerID) >= 0 {
			return b
		}
	}
	return nil
}

// Open returns the batches still accepting members, in creation order
func (s *Scheduler) Open() []*entities.AlertBatch {
	var out []*entities.AlertBatch
	for _, b := range s.batches {
		if b.State.IsOpen() {
			out = append(out, b)
		}
	}
	return out
}

// VisibleCount returns the number of batches currently shown
func (s *Scheduler) VisibleCount() int {
	n := 0
	for _, b := range s.batches {
		if b.State == entities.AlertVisible {
			n++
		}
	}
	return n
}

// Active returns copies of every active batch in creation order
func (s *Scheduler) Active() []entities.AlertBatch {
	out := make([]entities.AlertBatch, len(s.batches))
	for i, b := range s.batches {
		out[i] = b.Clone()
	}
	return out
}

// PendingTimers returns the number of armed timers
func (s *Scheduler) PendingTimers() int {
	return s.timers.Len()
}

// Close moves an active batch to a terminal state, cancelling its timers.
// Closing an already closed batch does nothing.
func (s *Scheduler) Close(b *entities.AlertBatch, state entities.AlertState, reason entities.CloseReason, now time.Time) {
	if b.State.IsTerminal() {
		return
	}
	s.timers.Cancel(delayKey(b.Key))
	s.timers.Cancel(autoHideKey(b.Key))

	for i := range s.batches {
		if s.batches[i] == b {
			s.batches = append(s.batches[:i], s.batches[i+1:]...)
			break
		}
	}

	closedAt := now
	b.State = state
	b.ClosedAt = &closedAt
	b.CloseReason = reason
	s.publish(entities.AlertEventClosed, b, now)
	s.onClosed(b)
}

func (s *Scheduler) present(key string, at time.Time) {
	b := s.Find(key)
	if b == nil || !b.State.IsOpen() {
		return
	}

	for s.VisibleCount() >= s.maxShown {
		oldest := s.oldestVisible()
		if oldest == nil {
			break
		}
		s.Close(oldest, entities.AlertDismissed, entities.CloseEvicted, at)
	}

	visibleAt := at
	b.State = entities.AlertVisible
	b.VisibleAt = &visibleAt
	s.publish(entities.AlertEventVisible, b, at)

	if s.autoHide > 0 {
		s.timers.Schedule(autoHideKey(key), at.Add(s.autoHide), func(fired time.Time) {
			if b := s.Find(key); b != nil && b.State == entities.AlertVisible {
				s.Close(b, entities.AlertExpired, entities.CloseExpired, fired)
			}
		})
	}
}

func (s *Scheduler) oldestVisible() *entities.AlertBatch {
	var oldest *entities.AlertBatch
	for _, b := range s.batches {
		if b.State != entities.AlertVisible {
			continue
		}
		if oldest == nil || b.VisibleAt.Before(*oldest.VisibleAt) {
			oldest = b
		}
	}
	return oldest
}

func (s *Scheduler) publish(t entities.AlertEventType, b *entities.AlertBatch, at time.Time) {
	s.emit(entities.AlertEvent{Type: t, Batch: b.Clone(), At: at})
}
