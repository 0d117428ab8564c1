package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/repositories"
)

// historyRepository implements the HistoryRepository interface
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) repositories.HistoryRepository {
	return &historyRepository{db: db}
}

// Append stores a new entry
func (r *historyRepository) Append(ctx context.Context, entry *entities.HistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Update replaces a stored entry
func (r *historyRepository) Update(ctx context.Context, entry *entities.HistoryEntry) error {
	res := r.db.WithContext(ctx).
		Model(&entities.HistoryEntry{}).
		Where("id = ?", entry.ID).
		Select("action", "timestamp", "undoable", "details", "snapshot").
		Updates(entry)
	if res.Error != nil {
		return fmt.Errorf("failed to update history entry: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", entities.ErrUnknownEntry, entry.ID)
	}
	return nil
}

// List returns entries matching the filter in insertion order
func (r *historyRepository) List(ctx context.Context, filter repositories.HistoryFilter) ([]*entities.HistoryEntry, error) {
	var entries []*entities.HistoryEntry

	query := r.db.WithContext(ctx).Model(&entities.HistoryEntry{})
	if filter.Kind != nil {
		query = query.Where("kind = ?", *filter.Kind)
	}
	if filter.Since != nil {
		query = query.Where("timestamp >= ?", *filter.Since)
	}
	query = query.Order("recorded_at ASC, id ASC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return entries, nil
}
