package alert

import (
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

// Batcher groups qualifying detections into alert batches
type Batcher struct {
	enabled bool
	window  time.Duration
}

// NewBatcher creates a batcher from the alert settings
func NewBatcher(cfg config.AlertConfig) *Batcher {
	return &Batcher{
		enabled: cfg.BatchSimilarAlerts,
		window:  cfg.BatchTimeWindow,
	}
}

// Assign places d into the first open batch, in creation order, whose window
// is still open and which has a member sharing both signature bands. When
// none fits a new pending batch keyed by d's speaker is returned and created
// is true. Joining appends d to the batch's members.
func (b *Batcher) Assign(open []*entities.AlertBatch, d entities.SpeakerDetection, now time.Time) (batch *entities.AlertBatch, created bool) {
	if b.enabled {
		for _, candidate := range open {
			if !candidate.State.IsOpen() {
				continue
			}
			if now.Sub(candidate.FirstDetectedAt) > b.window {
				continue
			}
			if !sharesSignature(candidate, d.Signature) {
				continue
			}
			candidate.Members = append(candidate.Members, d.Clone())
			return candidate, false
		}
	}
	return entities.NewAlertBatch(d, now), true
}

func sharesSignature(batch *entities.AlertBatch, sig entities.Signature) bool {
	for _, m := range batch.Members {
		if m.Signature.Matches(sig) {
			return true
		}
	}
	return false
}
