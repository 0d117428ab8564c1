package alert

import (
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

// Filter returns the detections that currently qualify for an alert, in
// input order. It has no side effects.
func Filter(detections []entities.SpeakerDetection, s entities.Suppressions, cfg config.AlertConfig, now time.Time) []entities.SpeakerDetection {
	out := make([]entities.SpeakerDetection, 0, len(detections))
	for _, d := range detections {
		if Qualifies(d, s, cfg, now) {
			out = append(out, d)
		}
	}
	return out
}

// Qualifies applies the alert thresholds and suppression maps to one detection
func Qualifies(d entities.SpeakerDetection, s entities.Suppressions, cfg config.AlertConfig, now time.Time) bool {
	if d.SpeakingDurationSeconds < cfg.MinimumDurationSeconds {
		return false
	}
	if d.Confidence < cfg.MinimumConfidence {
		return false
	}
	if d.MessageCount < cfg.MinimumMessages {
		return false
	}
	if dis, ok := s.Dismissals[d.SpeakerID]; ok && dis.Active(now) {
		return false
	}
	if until, ok := s.Deferrals[d.SpeakerID]; ok && now.Before(until) {
		return false
	}
	if cfg.SuppressRepeatedAlerts {
		if last, ok := s.LastAlert[d.SpeakerID]; ok && now.Sub(last) < cfg.SuppressionDuration {
			return false
		}
	}
	return true
}
