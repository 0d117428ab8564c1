package repositories

import (
	"context"
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// HistoryRepository defines the interface for ledger persistence
type HistoryRepository interface {
	// Append stores a new entry
	Append(ctx context.Context, entry *entities.HistoryEntry) error

	// Update replaces a stored entry
	Update(ctx context.Context, entry *entities.HistoryEntry) error

	// List returns entries matching the filter, oldest first
	List(ctx context.Context, filter HistoryFilter) ([]*entities.HistoryEntry, error)
}

// HistoryFilter represents filter options for listing history entries
type HistoryFilter struct {
	Kind  *entities.EntryKind
	Since *time.Time
	Limit int
}
