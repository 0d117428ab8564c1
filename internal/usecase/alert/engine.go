package alert

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/repositories"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

type suppressionWrite func(ctx context.Context, store repositories.SuppressionStore) error

// Engine runs the alert pipeline: filter, batcher and scheduler. Every
// event (ingest, dismiss, defer, tick) is applied under one lock, so ingest
// and timers behave as a single consumer. Listener callbacks and store
// writes run after the lock is released.
type Engine struct {
	mu        sync.Mutex
	cfg       config.AlertConfig
	clock     clock.Clock
	store     repositories.SuppressionStore
	logger    *zap.Logger
	tick      time.Duration
	batcher   *Batcher
	scheduler *Scheduler
	latest    map[string]entities.SpeakerDetection
	supp      entities.Suppressions
	listeners []func(entities.AlertEvent)

	events []entities.AlertEvent
	writes []suppressionWrite
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces the wall clock, mainly for tests
func WithClock(c clock.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithStore persists suppression decisions
func WithStore(store repositories.SuppressionStore) Option {
	return func(e *Engine) { e.store = store }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithTickInterval sets how often Run advances timers
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) { e.tick = d }
}

// NewEngine creates an alert engine
func NewEngine(cfg config.AlertConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		clock:   clock.New(),
		logger:  zap.NewNop(),
		tick:    100 * time.Millisecond,
		batcher: NewBatcher(cfg),
		latest:  make(map[string]entities.SpeakerDetection),
		supp:    entities.NewSuppressions(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.scheduler = NewScheduler(cfg, e.record, e.batchClosed)
	return e
}

// Subscribe registers a listener for batch transitions
func (e *Engine) Subscribe(fn func(entities.AlertEvent)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// Restore loads persisted suppressions. Call before serving traffic.
func (e *Engine) Restore(ctx context.Context) error {
	if e.store == nil {
		return nil
	}
	loaded, err := e.store.Load(ctx, e.clock.Now())
	if err != nil {
		return fmt.Errorf("failed to load suppressions: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for id, d := range loaded.Dismissals {
		e.supp.Dismissals[id] = d
	}
	for id, until := range loaded.Deferrals {
		e.supp.Deferrals[id] = until
	}
	for id, at := range loaded.LastAlert {
		e.supp.LastAlert[id] = at
	}
	e.logger.Info("Restored alert suppressions",
		zap.Int("dismissals", len(loaded.Dismissals)),
		zap.Int("deferrals", len(loaded.Deferrals)),
		zap.Int("last_alerts", len(loaded.LastAlert)),
	)
	return nil
}

// Ingest records the latest detection of a speaker and evaluates it. A
// speaker already in an open batch has its member updated in place; one in
// a visible batch is only stored. Returns the batch the detection belongs
// to, or nil when it did not qualify.
func (e *Engine) Ingest(ctx context.Context, d entities.SpeakerDetection) (*entities.AlertBatch, error) {
	if err := validateDetection(d); err != nil {
		return nil, err
	}

	e.mu.Lock()
	now := e.clock.Now()
	e.scheduler.Advance(now)
	e.latest[d.SpeakerID] = d.Clone()

	var result *entities.AlertBatch
	if b := e.scheduler.FindSpeaker(d.SpeakerID); b != nil {
		if b.State.IsOpen() {
			b.Members[b.IndexOf(d.SpeakerID)] = d.Clone()
			e.scheduler.Touch(b, now)
		}
		c := b.Clone()
		result = &c
	} else if Qualifies(d, e.supp, e.cfg, now) {
		b, created := e.batcher.Assign(e.scheduler.Open(), d, now)
		if created {
			e.scheduler.Add(b, now)
			e.scheduler.Advance(now)
		} else {
			e.scheduler.Touch(b, now)
		}
		e.logger.Debug("Detection qualified for alert",
			zap.String("speaker_id", d.SpeakerID),
			zap.String("batch_key", b.Key),
			zap.Bool("new_batch", created),
		)
		c := b.Clone()
		result = &c
	}

	return result, e.unlockAndFlush(ctx)
}

// Dismiss closes the batch and suppresses every member speaker. A zero
// duration dismisses until restart.
func (e *Engine) Dismiss(ctx context.Context, key string, duration time.Duration) error {
	if duration < 0 {
		return fmt.Errorf("%w: dismiss duration must not be negative", entities.ErrValidation)
	}

	e.mu.Lock()
	now := e.clock.Now()
	e.scheduler.Advance(now)
	b := e.scheduler.Find(key)
	if b == nil {
		return e.unknownKey(ctx, key)
	}

	e.scheduler.Close(b, entities.AlertDismissed, entities.CloseDismissed, now)
	dismissal := entities.Dismissal{Permanent: duration == 0}
	if duration > 0 {
		dismissal.Until = now.Add(duration)
	}
	for _, id := range b.SpeakerIDs() {
		e.supp.Dismissals[id] = dismissal
		e.writes = append(e.writes, func(ctx context.Context, st repositories.SuppressionStore) error {
			return st.SetDismissal(ctx, id, dismissal)
		})
		if e.cfg.SuppressRepeatedAlerts {
			e.markAlerted(id, now)
		}
	}

	e.logger.Info("Alert dismissed",
		zap.String("batch_key", key),
		zap.Duration("duration", duration),
		zap.Int("speakers", len(b.Members)),
	)
	return e.unlockAndFlush(ctx)
}

// Defer closes the batch and postpones alerts for its speakers
func (e *Engine) Defer(ctx context.Context, key string, minutes int) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: defer minutes must be positive", entities.ErrValidation)
	}

	e.mu.Lock()
	now := e.clock.Now()
	e.scheduler.Advance(now)
	b := e.scheduler.Find(key)
	if b == nil {
		return e.unknownKey(ctx, key)
	}

	e.scheduler.Close(b, entities.AlertDeferred, entities.CloseDeferred, now)
	until := now.Add(time.Duration(minutes) * time.Minute)
	for _, id := range b.SpeakerIDs() {
		e.supp.Deferrals[id] = until
		e.writes = append(e.writes, func(ctx context.Context, st repositories.SuppressionStore) error {
			return st.SetDeferral(ctx, id, until)
		})
	}

	e.logger.Info("Alert deferred",
		zap.String("batch_key", key),
		zap.Int("minutes", minutes),
	)
	return e.unlockAndFlush(ctx)
}

// Tick fires due timers
func (e *Engine) Tick(ctx context.Context) error {
	e.mu.Lock()
	e.scheduler.Advance(e.clock.Now())
	return e.unlockAndFlush(ctx)
}

// Run advances timers on every tick until ctx is done
func (e *Engine) Run(ctx context.Context) error {
	ticker := e.clock.Ticker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// persistence errors are logged in flush
			_ = e.Tick(ctx)
		}
	}
}

// Active returns copies of the batches not yet closed, in creation order
func (e *Engine) Active() []entities.AlertBatch {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scheduler.Active()
}

// Latest returns the most recent detection recorded for a speaker
func (e *Engine) Latest(speakerID string) (entities.SpeakerDetection, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, ok := e.latest[speakerID]
	return d.Clone(), ok
}

// Suppressions returns a copy of the current suppression maps
func (e *Engine) Suppressions() entities.Suppressions {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := entities.NewSuppressions()
	for k, v := range e.supp.Dismissals {
		out.Dismissals[k] = v
	}
	for k, v := range e.supp.Deferrals {
		out.Deferrals[k] = v
	}
	for k, v := range e.supp.LastAlert {
		out.LastAlert[k] = v
	}
	return out
}

// Config returns the alert settings the engine runs with
func (e *Engine) Config() config.AlertConfig {
	return e.cfg
}

func (e *Engine) record(ev entities.AlertEvent) {
	e.events = append(e.events, ev)
}

// batchClosed runs under the lock for every batch leaving the active set
func (e *Engine) batchClosed(b *entities.AlertBatch) {
	if b.CloseReason == entities.CloseEvicted {
		e.logger.Debug("Visible alert evicted", zap.String("batch_key", b.Key))
		return
	}
	if b.CloseReason == entities.CloseExpired && e.cfg.SuppressRepeatedAlerts {
		for _, id := range b.SpeakerIDs() {
			e.markAlerted(id, *b.ClosedAt)
		}
	}
}

func (e *Engine) markAlerted(speakerID string, at time.Time) {
	e.supp.LastAlert[speakerID] = at
	e.writes = append(e.writes, func(ctx context.Context, st repositories.SuppressionStore) error {
		return st.SetLastAlert(ctx, speakerID, at)
	})
}

func (e *Engine) unknownKey(ctx context.Context, key string) error {
	if err := e.unlockAndFlush(ctx); err != nil {
		e.logger.Warn("Flush failed while handling unknown alert key", zap.Error(err))
	}
	return fmt.Errorf("%w: %s", entities.ErrUnknownBatchKey, key)
}

// unlockAndFlush releases the lock, then notifies listeners and persists
// queued suppression writes. Persistence failures do not roll back the
// in-memory state.
func (e *Engine) unlockAndFlush(ctx context.Context) error {
	events, writes := e.events, e.writes
	e.events, e.writes = nil, nil
	listeners := slices.Clone(e.listeners)
	e.mu.Unlock()

	for _, ev := range events {
		for _, fn := range listeners {
			fn(ev)
		}
	}

	if e.store == nil || len(writes) == 0 {
		return nil
	}
	var errs []error
	for _, w := range writes {
		if err := w(ctx, e.store); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		e.logger.Error("Failed to persist alert suppression", zap.Error(err))
		return fmt.Errorf("%w: %w", entities.ErrPersistenceFailure, err)
	}
	return nil
}

func validateDetection(d entities.SpeakerDetection) error {
	if d.SpeakerID == "" {
		return fmt.Errorf("%w: speaker id is required", entities.ErrValidation)
	}
	if math.IsNaN(d.Confidence) || d.Confidence < 0 || d.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be within [0,1]", entities.ErrValidation)
	}
	if math.IsNaN(d.SpeakingDurationSeconds) || math.IsInf(d.SpeakingDurationSeconds, 0) {
		return fmt.Errorf("%w: speaking duration must be finite", entities.ErrValidation)
	}
	if d.SpeakingDurationSeconds < 0 || d.MessageCount < 0 {
		return fmt.Errorf("%w: duration and message count must not be negative", entities.ErrValidation)
	}
	return nil
}
