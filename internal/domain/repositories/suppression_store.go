package repositories

import (
	"context"
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// SuppressionStore persists the dismissal, deferral and last-alert maps the
// alert filter reads
type SuppressionStore interface {
	SetDismissal(ctx context.Context, speakerID string, d entities.Dismissal) error
	SetDeferral(ctx context.Context, speakerID string, until time.Time) error
	SetLastAlert(ctx context.Context, speakerID string, at time.Time) error

	// Load returns every entry still relevant at now
	Load(ctx context.Context, now time.Time) (entities.Suppressions, error)
}
