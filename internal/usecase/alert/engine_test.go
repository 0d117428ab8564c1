package alert

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

type recordingStore struct {
	err        error
	dismissals map[string]entities.Dismissal
	deferrals  map[string]time.Time
	lastAlerts map[string]time.Time
}

func newRecordingStore() *recordingStore {
	return &recordingStore{
		dismissals: map[string]entities.Dismissal{},
		deferrals:  map[string]time.Time{},
		lastAlerts: map[string]time.Time{},
	}
}

func (s *recordingStore) SetDismissal(_ context.Context, id string, d entities.Dismissal) error {
	if s.err != nil {
		return s.err
	}
	s.dismissals[id] = d
	return nil
}

func (s *recordingStore) SetDeferral(_ context.Context, id string, until time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.deferrals[id] = until
	return nil
}

func (s *recordingStore) SetLastAlert(_ context.Context, id string, at time.Time) error {
	if s.err != nil {
		return s.err
	}
	s.lastAlerts[id] = at
	return nil
}

func (s *recordingStore) Load(context.Context, time.Time) (entities.Suppressions, error) {
	out := entities.NewSuppressions()
	for k, v := range s.dismissals {
		out.Dismissals[k] = v
	}
	for k, v := range s.deferrals {
		out.Deferrals[k] = v
	}
	for k, v := range s.lastAlerts {
		out.LastAlert[k] = v
	}
	return out, s.err
}

func newTestEngine(cfg config.AlertConfig, opts ...Option) (*Engine, *clock.Mock) {
	mock := clock.NewMock()
	mock.Set(t0)
	return NewEngine(cfg, append([]Option{WithClock(mock)}, opts...)...), mock
}

func activeState(e *Engine, key string) (entities.AlertState, bool) {
	for _, b := range e.Active() {
		if b.Key == key {
			return b.State, true
		}
	}
	return "", false
}

func countVisible(e *Engine) int {
	n := 0
	for _, b := range e.Active() {
		if b.State == entities.AlertVisible {
			n++
		}
	}
	return n
}

func TestEngineDelaysPresentation(t *testing.T) {
	cfg := config.Default().Alert
	e, mock := newTestEngine(cfg)
	ctx := context.Background()

	b, err := e.Ingest(ctx, detection("s1", entities.PitchLow, entities.PaceSlow))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if b == nil || b.State != entities.AlertDelayed {
		t.Fatalf("expected delayed batch, got %+v", b)
	}

	mock.Add(cfg.AlertDelay - time.Millisecond)
	_ = e.Tick(ctx)
	if st, _ := activeState(e, "s1"); st != entities.AlertDelayed {
		t.Fatalf("batch shown before delay elapsed: %s", st)
	}

	mock.Add(time.Millisecond)
	_ = e.Tick(ctx)
	if st, _ := activeState(e, "s1"); st != entities.AlertVisible {
		t.Fatalf("expected visible after delay, got %s", st)
	}
}

func TestEngineIgnoresNonQualifyingDetection(t *testing.T) {
	e, _ := newTestEngine(config.Default().Alert)
	d := detection("s1", entities.PitchLow, entities.PaceSlow)
	d.Confidence = 0.5

	b, err := e.Ingest(context.Background(), d)
	if err != nil || b != nil {
		t.Fatalf("expected no batch, got %+v err=%v", b, err)
	}
	if _, ok := e.Latest("s1"); !ok {
		t.Fatalf("latest detection should still be recorded")
	}
}

func TestEngineRejectsInvalidDetection(t *testing.T) {
	e, _ := newTestEngine(config.Default().Alert)
	for name, mutate := range map[string]func(d *entities.SpeakerDetection){
		"missing speaker":    func(d *entities.SpeakerDetection) { d.SpeakerID = "" },
		"confidence above 1": func(d *entities.SpeakerDetection) { d.Confidence = 1.01 },
		"NaN confidence":     func(d *entities.SpeakerDetection) { d.Confidence = math.NaN() },
		"NaN duration":       func(d *entities.SpeakerDetection) { d.SpeakingDurationSeconds = math.NaN() },
		"infinite duration":  func(d *entities.SpeakerDetection) { d.SpeakingDurationSeconds = math.Inf(1) },
		"negative messages":  func(d *entities.SpeakerDetection) { d.MessageCount = -1 },
	} {
		d := detection("s1", entities.PitchLow, entities.PaceSlow)
		mutate(&d)
		if _, err := e.Ingest(context.Background(), d); !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
	if len(e.Active()) != 0 {
		t.Fatalf("rejected detections must not open batches")
	}
}

func TestEngineCancelBeforeDelayNeverShows(t *testing.T) {
	cfg := config.Default().Alert
	ctx := context.Background()

	for _, cancel := range []struct {
		name string
		fn   func(e *Engine) error
	}{
		{"dismiss", func(e *Engine) error { return e.Dismiss(ctx, "s1", 0) }},
		{"defer", func(e *Engine) error { return e.Defer(ctx, "s1", 5) }},
	} {
		t.Run(cancel.name, func(t *testing.T) {
			e, mock := newTestEngine(cfg)
			var shown bool
			e.Subscribe(func(ev entities.AlertEvent) {
				if ev.Type == entities.AlertEventVisible {
					shown = true
				}
			})

			if _, err := e.Ingest(ctx, detection("s1", entities.PitchLow, entities.PaceSlow)); err != nil {
				t.Fatalf("ingest: %v", err)
			}
			if err := cancel.fn(e); err != nil {
				t.Fatalf("cancel: %v", err)
			}
			if n := e.scheduler.PendingTimers(); n != 0 {
				t.Fatalf("closing a delayed batch left %d timers armed", n)
			}
			mock.Add(time.Hour)
			_ = e.Tick(ctx)

			if shown {
				t.Fatalf("cancelled batch became visible")
			}
			if len(e.Active()) != 0 {
				t.Fatalf("cancelled batch still active")
			}
		})
	}
}

func TestEngineCapsVisibleAlerts(t *testing.T) {
	cfg := config.Default().Alert
	cfg.MaxSimultaneousAlerts = 2
	cfg.BatchSimilarAlerts = false
	e, mock := newTestEngine(cfg)
	ctx := context.Background()

	var evicted []string
	e.Subscribe(func(ev entities.AlertEvent) {
		if ev.Type == entities.AlertEventClosed && ev.Batch.CloseReason == entities.CloseEvicted {
			evicted = append(evicted, ev.Batch.Key)
		}
	})

	for _, id := range []string{"s1", "s2", "s3", "s4", "s5"} {
		if _, err := e.Ingest(ctx, detection(id, entities.PitchLow, entities.PaceSlow)); err != nil {
			t.Fatalf("ingest %s: %v", id, err)
		}
		for i := 0; i < 4; i++ {
			mock.Add(time.Second)
			_ = e.Tick(ctx)
			if n := countVisible(e); n > cfg.MaxSimultaneousAlerts {
				t.Fatalf("%d visible alerts exceeds cap", n)
			}
		}
	}

	if len(evicted) != 3 || evicted[0] != "s1" || evicted[1] != "s2" || evicted[2] != "s3" {
		t.Fatalf("expected oldest alerts evicted in order, got %v", evicted)
	}
	supp := e.Suppressions()
	if _, ok := supp.Dismissals["s1"]; ok {
		t.Fatalf("eviction must not record a dismissal")
	}
	if _, ok := supp.LastAlert["s1"]; ok {
		t.Fatalf("eviction must not record a last alert time")
	}
	if st, _ := activeState(e, "s5"); st != entities.AlertVisible {
		t.Fatalf("newest alert should be visible, got %s", st)
	}
}

func TestEngineDismissWithDuration(t *testing.T) {
	cfg := config.Default().Alert
	cfg.SuppressRepeatedAlerts = false
	cfg.AlertDelay = 0
	e, mock := newTestEngine(cfg)
	ctx := context.Background()
	d := detection("s1", entities.PitchLow, entities.PaceSlow)

	b, _ := e.Ingest(ctx, d)
	if b == nil || b.State != entities.AlertVisible {
		t.Fatalf("zero delay should show immediately, got %+v", b)
	}
	if err := e.Dismiss(ctx, "s1", 10*time.Second); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	mock.Add(10*time.Second - time.Millisecond)
	if b, _ := e.Ingest(ctx, d); b != nil {
		t.Fatalf("dismissed speaker alerted again before expiry")
	}
	mock.Add(time.Millisecond)
	if b, _ := e.Ingest(ctx, d); b == nil {
		t.Fatalf("speaker should alert again exactly at dismissal expiry")
	}
}

func TestEngineDismissRecordsLastAlert(t *testing.T) {
	cfg := config.Default().Alert
	store := newRecordingStore()
	e, _ := newTestEngine(cfg, WithStore(store))
	ctx := context.Background()

	_, _ = e.Ingest(ctx, detection("s1", entities.PitchLow, entities.PaceSlow))
	_, _ = e.Ingest(ctx, detection("s2", entities.PitchLow, entities.PaceSlow))
	if err := e.Dismiss(ctx, "s1", 0); err != nil {
		t.Fatalf("dismiss: %v", err)
	}

	for _, id := range []string{"s1", "s2"} {
		if !store.dismissals[id].Permanent {
			t.Fatalf("expected permanent dismissal stored for %s", id)
		}
		if !store.lastAlerts[id].Equal(t0) {
			t.Fatalf("expected last alert recorded for %s", id)
		}
	}
}

func TestEngineUnknownKeyIsNoop(t *testing.T) {
	e, _ := newTestEngine(config.Default().Alert)
	ctx := context.Background()
	_, _ = e.Ingest(ctx, detection("s1", entities.PitchLow, entities.PaceSlow))

	if err := e.Dismiss(ctx, "missing", 0); !errors.Is(err, entities.ErrUnknownBatchKey) {
		t.Fatalf("expected unknown key, got %v", err)
	}
	if err := e.Defer(ctx, "missing", 5); !errors.Is(err, entities.ErrUnknownBatchKey) {
		t.Fatalf("expected unknown key, got %v", err)
	}
	if len(e.Active()) != 1 {
		t.Fatalf("unknown key changed active set")
	}
}

func TestEngineDeferRequiresPositiveMinutes(t *testing.T) {
	e, _ := newTestEngine(config.Default().Alert)
	if err := e.Defer(context.Background(), "s1", 0); !errors.Is(err, entities.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestEngineAutoHideExpires(t *testing.T) {
	cfg := config.Default().Alert
	cfg.AlertDelay = 0
	cfg.AutoHideDelay = 5 * time.Second
	e, mock := newTestEngine(cfg)
	ctx := context.Background()

	_, _ = e.Ingest(ctx, detection("s1", entities.PitchLow, entities.PaceSlow))
	if n := e.scheduler.PendingTimers(); n != 1 {
		t.Fatalf("visible alert should arm its auto-hide timer, %d armed", n)
	}
	mock.Add(5 * time.Second)
	_ = e.Tick(ctx)

	if len(e.Active()) != 0 {
		t.Fatalf("expected expired alert to leave the active set")
	}
	if n := e.scheduler.PendingTimers(); n != 0 {
		t.Fatalf("%d timers left after expiry", n)
	}
	if at, ok := e.Suppressions().LastAlert["s1"]; !ok || !at.Equal(t0.Add(5*time.Second)) {
		t.Fatalf("expiry should record last alert time, got %v", at)
	}
}

func TestEngineUpdatesOpenMemberInPlace(t *testing.T) {
	e, _ := newTestEngine(config.Default().Alert)
	ctx := context.Background()
	d := detection("s1", entities.PitchLow, entities.PaceSlow)
	_, _ = e.Ingest(ctx, d)

	d.MessageCount = 9
	b, err := e.Ingest(ctx, d)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if len(b.Members) != 1 || b.Members[0].MessageCount != 9 {
		t.Fatalf("expected member updated in place, got %+v", b.Members)
	}
}

func TestEnginePersistenceFailureKeepsDecision(t *testing.T) {
	store := newRecordingStore()
	store.err = errors.New("redis down")
	e, _ := newTestEngine(config.Default().Alert, WithStore(store))
	ctx := context.Background()

	_, _ = e.Ingest(ctx, detection("s1", entities.PitchLow, entities.PaceSlow))
	err := e.Dismiss(ctx, "s1", time.Minute)
	if !errors.Is(err, entities.ErrPersistenceFailure) {
		t.Fatalf("expected persistence failure, got %v", err)
	}
	if len(e.Active()) != 0 {
		t.Fatalf("dismiss must not be rolled back")
	}
	if _, ok := e.Suppressions().Dismissals["s1"]; !ok {
		t.Fatalf("in-memory dismissal must survive store failure")
	}
}

func TestEngineRestoreLoadsSuppressions(t *testing.T) {
	store := newRecordingStore()
	store.deferrals["s1"] = t0.Add(time.Hour)
	e, _ := newTestEngine(config.Default().Alert, WithStore(store))
	ctx := context.Background()

	if err := e.Restore(ctx); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if b, _ := e.Ingest(ctx, detection("s1", entities.PitchLow, entities.PaceSlow)); b != nil {
		t.Fatalf("restored deferral should filter the speaker")
	}
}
