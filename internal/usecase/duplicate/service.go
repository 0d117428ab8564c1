package duplicate

import (
	"context"
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/repositories"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
	"github.com/johnquangdev/meeting-voiceid/pkg/keylock"
)

// Recorder appends entries to the decision ledger
type Recorder interface {
	Record(ctx context.Context, entry *entities.HistoryEntry) error
}

// Service handles duplicate detection and merge business logic
type Service struct {
	profiles   repositories.ProfileRepository
	recorder   Recorder
	comparator *Comparator
	locks      *keylock.Locker
	cfg        config.MatchingConfig
	clock      clock.Clock
	logger     *zap.Logger
}

// NewService creates a new duplicate service. locks must be shared with
// every other component that mutates profiles.
func NewService(
	profiles repositories.ProfileRepository,
	recorder Recorder,
	scorer SimilarityScorer,
	locks *keylock.Locker,
	cfg config.MatchingConfig,
	clk clock.Clock,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Service{
		profiles:   profiles,
		recorder:   recorder,
		comparator: NewComparator(scorer, cfg),
		locks:      locks,
		cfg:        cfg,
		clock:      clk,
		logger:     logger,
	}
}

// Scan compares all unmerged profiles pairwise
func (s *Service) Scan(ctx context.Context) ([]entities.DuplicateCandidate, error) {
	profiles, err := s.profiles.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	candidates := s.comparator.Scan(profiles)
	s.logger.Info("Duplicate scan finished",
		zap.Int("profiles", len(profiles)),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// Compare scores the given profiles; the first id is the primary
func (s *Service) Compare(ctx context.Context, voiceIDs []string) (*entities.DuplicateCandidate, error) {
	profiles, err := s.load(ctx, voiceIDs)
	if err != nil {
		return nil, err
	}
	return s.comparator.Compare(profiles)
}

// Merge folds the secondaries into the primary (voiceIDs[0]) using the
// given conflict resolutions. Conflicts are recomputed from the stored
// profiles, so resolutions must match the current data.
func (s *Service) Merge(ctx context.Context, voiceIDs []string, resolutions []entities.MergeConflict) (*MergeResult, error) {
	if len(voiceIDs) < 2 {
		return nil, entities.ErrInsufficientProfiles
	}
	unlock := s.locks.Lock(voiceIDs...)
	defer unlock()

	profiles, err := s.load(ctx, voiceIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if p.IsMerged() {
			return nil, fmt.Errorf("%w: %s", entities.ErrProfileAlreadyMerged, p.DeepgramVoiceID)
		}
	}

	candidate, err := s.comparator.Compare(profiles)
	if err != nil {
		return nil, err
	}
	result, err := Merge(candidate, resolutions, s.clock.Now(), s.cfg.CaptureMergeSnapshot)
	if err != nil {
		return nil, err
	}

	toSave := append([]*entities.SpeakerProfile{result.Merged}, result.Secondaries...)
	if err := s.profiles.SaveAll(ctx, toSave); err != nil {
		s.logger.Error("Failed to store merged profiles",
			zap.String("primary", result.Merged.DeepgramVoiceID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: failed to save merged profiles: %w", entities.ErrPersistenceFailure, err)
	}

	if err := s.recorder.Record(ctx, result.Entry); err != nil {
		s.logger.Error("Failed to record merge", zap.String("entry_id", result.Entry.ID.String()), zap.Error(err))
		return result, err
	}

	s.logger.Info("Profiles merged",
		zap.String("primary", result.Merged.DeepgramVoiceID),
		zap.Int("secondaries", len(result.Secondaries)),
		zap.Int("conflicts", len(candidate.Conflicts)),
	)
	return result, nil
}

func (s *Service) load(ctx context.Context, voiceIDs []string) ([]*entities.SpeakerProfile, error) {
	if len(voiceIDs) < 2 {
		return nil, entities.ErrInsufficientProfiles
	}
	profiles, err := s.profiles.FindByVoiceIDs(ctx, voiceIDs)
	if err != nil {
		if errors.Is(err, entities.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return profiles, nil
}
