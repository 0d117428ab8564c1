package history

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/repositories"
	"github.com/johnquangdev/meeting-voiceid/pkg/keylock"
)

// Service owns the in-memory ledger, persists it, and replays merge
// snapshots on undo and redo
type Service struct {
	repo     repositories.HistoryRepository
	profiles repositories.ProfileRepository
	locks    *keylock.Locker
	clock    clock.Clock
	logger   *zap.Logger

	mu     sync.Mutex
	ledger *Ledger
}

// NewService creates a new history service. repo and profiles may be nil
// for a purely in-memory ledger.
func NewService(
	repo repositories.HistoryRepository,
	profiles repositories.ProfileRepository,
	locks *keylock.Locker,
	clk clock.Clock,
	logger *zap.Logger,
) *Service {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if locks == nil {
		locks = keylock.New()
	}
	return &Service{
		repo:     repo,
		profiles: profiles,
		locks:    locks,
		clock:    clk,
		logger:   logger,
		ledger:   NewLedger(),
	}
}

// Load replaces the ledger with the stored entries. Undo and redo stacks
// start empty.
func (s *Service) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	entries, err := s.repo.List(ctx, repositories.HistoryFilter{})
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	s.mu.Lock()
	s.ledger = NewLedger(entries...)
	s.mu.Unlock()

	s.logger.Info("History loaded", zap.Int("entries", len(entries)))
	return nil
}

// Record appends an entry to the ledger and the store
func (s *Service) Record(ctx context.Context, entry *entities.HistoryEntry) error {
	s.mu.Lock()
	err := s.ledger.Append(entry)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if s.repo == nil {
		return nil
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Error("Failed to store history entry", zap.String("entry_id", entry.ID.String()), zap.Error(err))
		return fmt.Errorf("%w: failed to store history entry: %w", entities.ErrPersistenceFailure, err)
	}
	return nil
}

// Entries returns ledger entries in append order, optionally filtered by
// kind and capped to the newest limit entries
func (s *Service) Entries(kind *entities.EntryKind, limit int) []*entities.HistoryEntry {
	s.mu.Lock()
	all := s.ledger.Entries()
	s.mu.Unlock()

	out := all[:0]
	for _, e := range all {
		if kind == nil || e.Kind == *kind {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Stats derives statistics from the current ledger
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeStats(s.ledger.Entries())
}

// Export returns every entry as a flat row
func (s *Service) Export() []ExportRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ExportRows(s.ledger.Entries())
}

// Undo reverts an entry. Merge entries with a snapshot restore the
// pre-merge profiles.
func (s *Service) Undo(ctx context.Context, id uuid.UUID) (*entities.HistoryEntry, error) {
	s.mu.Lock()
	current, ok := s.ledger.Get(id)
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownEntry, id)
	}

	unlock := s.locks.Lock(lockKeys(current)...)
	defer unlock()

	s.mu.Lock()
	undone, err := s.ledger.Undo(id, s.clock.Now())
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.logger.Info("History entry undone",
		zap.String("entry_id", id.String()),
		zap.String("kind", string(undone.Kind)),
	)

	var errs []error
	if undone.Kind == entities.EntryMerge {
		if undone.Snapshot != nil {
			errs = append(errs, s.saveProfiles(ctx, undone.Snapshot.Before))
		} else {
			s.logger.Warn("Merge undone in ledger only; no snapshot to restore profiles",
				zap.String("entry_id", id.String()),
			)
		}
	}
	errs = append(errs, s.update(ctx, undone))
	return undone, persistenceError(errs)
}

// Redo restores the most recently undone entry. Returns nil without error
// when there is nothing to redo.
func (s *Service) Redo(ctx context.Context) (*entities.HistoryEntry, error) {
	for {
		s.mu.Lock()
		top, ok := s.ledger.PeekUndo()
		s.mu.Unlock()
		if !ok {
			return nil, nil
		}

		unlock := s.locks.Lock(lockKeys(top)...)
		s.mu.Lock()
		if next, ok := s.ledger.PeekUndo(); !ok || next.ID != top.ID {
			// another redo won the race; retry with the new top
			s.mu.Unlock()
			unlock()
			continue
		}
		restored, _ := s.ledger.Redo()
		s.mu.Unlock()

		s.logger.Info("History entry redone", zap.String("entry_id", restored.ID.String()))

		var errs []error
		if restored.Kind == entities.EntryMerge && restored.Snapshot != nil {
			errs = append(errs, s.saveProfiles(ctx, restored.Snapshot.After))
		}
		errs = append(errs, s.update(ctx, restored))
		unlock()
		return restored, persistenceError(errs)
	}
}

func (s *Service) saveProfiles(ctx context.Context, profiles []*entities.SpeakerProfile) error {
	if s.profiles == nil || len(profiles) == 0 {
		return nil
	}
	if err := s.profiles.SaveAll(ctx, profiles); err != nil {
		s.logger.Error("Failed to restore profiles", zap.Error(err))
		return fmt.Errorf("restore profiles: %w", err)
	}
	return nil
}

func (s *Service) update(ctx context.Context, entry *entities.HistoryEntry) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Update(ctx, entry); err != nil {
		s.logger.Error("Failed to update history entry", zap.String("entry_id", entry.ID.String()), zap.Error(err))
		return fmt.Errorf("update history entry: %w", err)
	}
	return nil
}

// lockKeys returns the voice ids touched when an entry is undone or redone
func lockKeys(e *entities.HistoryEntry) []string {
	keys := []string{e.VoiceID}
	if e.Snapshot != nil {
		for _, p := range e.Snapshot.Before {
			keys = append(keys, p.DeepgramVoiceID)
		}
	}
	return keys
}

func persistenceError(errs []error) error {
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", entities.ErrPersistenceFailure, err)
	}
	return nil
}
