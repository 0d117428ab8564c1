package alert

import (
	"testing"
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func detection(id string, pitch entities.PitchBand, pace entities.PaceBand) entities.SpeakerDetection {
	return entities.SpeakerDetection{
		SpeakerID:               id,
		Confidence:              0.75,
		SpeakingDurationSeconds: 8,
		MessageCount:            3,
		Signature:               entities.Signature{PitchBand: pitch, PaceBand: pace},
	}
}

func TestFilterExampleScenario(t *testing.T) {
	cfg := config.Default().Alert
	d := detection("s1", entities.PitchMedium, entities.PaceNormal)

	got := Filter([]entities.SpeakerDetection{d}, entities.NewSuppressions(), cfg, t0)
	if len(got) != 1 || got[0].SpeakerID != "s1" {
		t.Fatalf("expected s1 to qualify, got %+v", got)
	}

	d.Confidence = 0.5
	if got := Filter([]entities.SpeakerDetection{d}, entities.NewSuppressions(), cfg, t0); len(got) != 0 {
		t.Fatalf("expected low confidence detection to be filtered, got %+v", got)
	}
}

func TestFilterNeverPassesShortDurations(t *testing.T) {
	cfg := config.Default().Alert
	for _, dur := range []float64{0, 1, 4.99, 4.999999} {
		d := detection("s1", entities.PitchLow, entities.PaceSlow)
		d.SpeakingDurationSeconds = dur
		d.Confidence = 1
		d.MessageCount = 100
		if Qualifies(d, entities.NewSuppressions(), cfg, t0) {
			t.Fatalf("duration %v should never qualify", dur)
		}
	}

	d := detection("s1", entities.PitchLow, entities.PaceSlow)
	d.SpeakingDurationSeconds = cfg.MinimumDurationSeconds
	if !Qualifies(d, entities.NewSuppressions(), cfg, t0) {
		t.Fatalf("duration equal to the minimum should qualify")
	}
}

func TestFilterRequiresMessages(t *testing.T) {
	cfg := config.Default().Alert
	d := detection("s1", entities.PitchLow, entities.PaceSlow)
	d.MessageCount = 1
	if Qualifies(d, entities.NewSuppressions(), cfg, t0) {
		t.Fatalf("expected message count below minimum to fail")
	}
}

func TestFilterDismissalBoundary(t *testing.T) {
	cfg := config.Default().Alert
	cfg.SuppressRepeatedAlerts = false
	d := detection("s1", entities.PitchLow, entities.PaceSlow)
	window := 10 * time.Second

	s := entities.NewSuppressions()
	s.Dismissals["s1"] = entities.Dismissal{Until: t0.Add(window)}

	if Qualifies(d, s, cfg, t0) {
		t.Fatalf("dismissed speaker qualified at dismissal time")
	}
	if Qualifies(d, s, cfg, t0.Add(window-time.Millisecond)) {
		t.Fatalf("dismissed speaker qualified 1ms before expiry")
	}
	if !Qualifies(d, s, cfg, t0.Add(window)) {
		t.Fatalf("speaker should be eligible again exactly at expiry")
	}
}

func TestFilterPermanentDismissal(t *testing.T) {
	cfg := config.Default().Alert
	d := detection("s1", entities.PitchLow, entities.PaceSlow)
	s := entities.NewSuppressions()
	s.Dismissals["s1"] = entities.Dismissal{Permanent: true}

	if Qualifies(d, s, cfg, t0.Add(365*24*time.Hour)) {
		t.Fatalf("permanent dismissal expired")
	}
}

func TestFilterDeferral(t *testing.T) {
	cfg := config.Default().Alert
	d := detection("s1", entities.PitchLow, entities.PaceSlow)
	s := entities.NewSuppressions()
	s.Deferrals["s1"] = t0.Add(5 * time.Minute)

	if Qualifies(d, s, cfg, t0.Add(4*time.Minute)) {
		t.Fatalf("deferred speaker qualified")
	}
	if !Qualifies(d, s, cfg, t0.Add(5*time.Minute)) {
		t.Fatalf("deferral should lapse at its expiry")
	}
}

func TestFilterSuppressionWindow(t *testing.T) {
	cfg := config.Default().Alert
	d := detection("s1", entities.PitchLow, entities.PaceSlow)
	s := entities.NewSuppressions()
	s.LastAlert["s1"] = t0

	if Qualifies(d, s, cfg, t0.Add(cfg.SuppressionDuration-time.Millisecond)) {
		t.Fatalf("speaker qualified inside suppression window")
	}
	if !Qualifies(d, s, cfg, t0.Add(cfg.SuppressionDuration)) {
		t.Fatalf("speaker should qualify once the suppression window elapsed")
	}

	cfg.SuppressRepeatedAlerts = false
	if !Qualifies(d, s, cfg, t0) {
		t.Fatalf("suppression disabled should ignore last alert time")
	}
}

func TestFilterKeepsInputOrder(t *testing.T) {
	cfg := config.Default().Alert
	short := detection("b", entities.PitchLow, entities.PaceSlow)
	short.SpeakingDurationSeconds = 1
	in := []entities.SpeakerDetection{
		detection("c", entities.PitchLow, entities.PaceSlow),
		short,
		detection("a", entities.PitchHigh, entities.PaceFast),
	}

	got := Filter(in, entities.NewSuppressions(), cfg, t0)
	if len(got) != 2 || got[0].SpeakerID != "c" || got[1].SpeakerID != "a" {
		t.Fatalf("unexpected output order: %+v", got)
	}
}
