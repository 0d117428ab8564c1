package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/repositories"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

// Recorder appends entries to the decision ledger
type Recorder interface {
	Record(ctx context.Context, entry *entities.HistoryEntry) error
}

// Suggester produces identity suggestions for a request
type Suggester interface {
	Suggest(ctx context.Context, req *entities.IdentificationRequest) ([]entities.Suggestion, error)
}

// FormInput is a form change addressed by ids
type FormInput struct {
	ManualName        *string
	SuggestionVoiceID *string
	ProfileVoiceID    *string
	Method            *entities.Method
	Confidence        *float64
}

// Service runs identification sessions and forwards their results to the
// identification store and the ledger
type Service struct {
	store     repositories.IdentificationStore
	profiles  repositories.ProfileRepository
	suggester Suggester
	recorder  Recorder
	cfg       config.WorkflowConfig
	clock     clock.Clock
	logger    *zap.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewService creates a new workflow service
func NewService(
	store repositories.IdentificationStore,
	profiles repositories.ProfileRepository,
	suggester Suggester,
	recorder Recorder,
	cfg config.WorkflowConfig,
	clk clock.Clock,
	logger *zap.Logger,
) *Service {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		profiles:  profiles,
		suggester: suggester,
		recorder:  recorder,
		cfg:       cfg,
		clock:     clk,
		logger:    logger,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// Start opens a session over up to limit pending requests
func (s *Service) Start(ctx context.Context, limit int) (*Session, error) {
	reqs, err := s.store.ListPending(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	items := make([]Item, 0, len(reqs))
	for _, req := range reqs {
		var suggestions []entities.Suggestion
		if s.suggester != nil {
			suggestions, err = s.suggester.Suggest(ctx, req)
			if err != nil {
				s.logger.Warn("Failed to build suggestions",
					zap.String("voice_id", req.VoiceID),
					zap.Error(err),
				)
			}
		}
		items = append(items, Item{Request: req, Suggestions: suggestions})
	}

	now := s.clock.Now()
	session := NewSession(items, s.cfg, now)
	s.mu.Lock()
	s.prune(now)
	if !session.Finished() {
		s.sessions[session.ID] = session
	}
	s.mu.Unlock()

	s.logger.Info("Identification session started",
		zap.String("session_id", session.ID.String()),
		zap.Int("requests", len(items)),
	)
	return session.Clone(), nil
}

// Get returns a session snapshot. Finished and idle-expired sessions are
// gone.
func (s *Service) Get(id uuid.UUID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return session.Clone(), nil
}

// UpdateForm changes the current form
func (s *Service) UpdateForm(ctx context.Context, id uuid.UUID, in FormInput) (*Session, error) {
	update := FormUpdate{
		ManualName:        in.ManualName,
		SuggestionVoiceID: in.SuggestionVoiceID,
		Method:            in.Method,
		Confidence:        in.Confidence,
	}
	if in.ProfileVoiceID != nil {
		if *in.ProfileVoiceID == "" {
			update.ClearProfile = true
		} else {
			p, err := s.profiles.FindByVoiceID(ctx, *in.ProfileVoiceID)
			if err != nil {
				return nil, err
			}
			update.Profile = p
		}
	}
	return s.apply(id, func(session *Session) error {
		return session.UpdateForm(update, s.clock.Now())
	})
}

// Next advances the session by one step
func (s *Service) Next(id uuid.UUID) (*Session, error) {
	return s.apply(id, func(session *Session) error {
		return session.Next(s.clock.Now())
	})
}

// Back moves the session one step back
func (s *Service) Back(id uuid.UUID) (*Session, error) {
	return s.apply(id, func(session *Session) error {
		return session.Back(s.clock.Now())
	})
}

// Submit records the form decision
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (*Session, *entities.IdentificationResult, error) {
	return s.terminal(ctx, id, (*Session).Submit)
}

// Skip records a skipped result
func (s *Service) Skip(ctx context.Context, id uuid.UUID) (*Session, *entities.IdentificationResult, error) {
	return s.terminal(ctx, id, (*Session).Skip)
}

// Defer records a deferred result
func (s *Service) Defer(ctx context.Context, id uuid.UUID) (*Session, *entities.IdentificationResult, error) {
	return s.terminal(ctx, id, (*Session).Defer)
}

// apply runs fn on a live session. A session finished by fn is dropped;
// the returned snapshot is the caller's last view of it.
func (s *Service) apply(id uuid.UUID, fn func(*Session) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if session.Finished() {
		delete(s.sessions, id)
	}
	return session.Clone(), nil
}

// lookup must be called with mu held
func (s *Service) lookup(id uuid.UUID) (*Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, entities.ErrSessionNotFound
	}
	if s.expired(session, s.clock.Now()) {
		delete(s.sessions, id)
		return nil, entities.ErrSessionNotFound
	}
	return session, nil
}

// prune must be called with mu held
func (s *Service) prune(now time.Time) {
	for id, session := range s.sessions {
		if s.expired(session, now) {
			delete(s.sessions, id)
			s.logger.Info("Identification session expired", zap.String("session_id", id.String()))
		}
	}
}

func (s *Service) expired(session *Session, now time.Time) bool {
	return s.cfg.SessionTTL > 0 && !now.Before(session.UpdatedAt.Add(s.cfg.SessionTTL))
}

// terminal applies a terminal transition, then persists the result outside
// the lock. A persistence failure is returned with the already advanced
// session.
func (s *Service) terminal(ctx context.Context, id uuid.UUID, fn func(*Session, time.Time) (entities.IdentificationResult, error)) (*Session, *entities.IdentificationResult, error) {
	var result entities.IdentificationResult
	snapshot, err := s.apply(id, func(session *Session) error {
		r, err := fn(session, s.clock.Now())
		result = r
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("Identification decided",
		zap.String("session_id", id.String()),
		zap.String("voice_id", result.VoiceID),
		zap.String("action", string(result.Action)),
		zap.String("method", string(result.Method)),
	)
	return snapshot, &result, s.persist(ctx, result)
}

func (s *Service) persist(ctx context.Context, r entities.IdentificationResult) error {
	var errs []error
	if err := s.store.ResolveRequest(ctx, r.RequestID, r.Action, r.UserID, r.UserName); err != nil {
		errs = append(errs, fmt.Errorf("resolve request: %w", err))
	}
	if r.Action == entities.ActionIdentified {
		if err := s.store.IdentifyVoice(ctx, r.VoiceID, *r.UserID, *r.UserName, r.Method, r.MeetingID, r.Confidence); err != nil {
			errs = append(errs, fmt.Errorf("identify voice: %w", err))
		}
	}
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, entities.NewIdentificationEntry(r)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}

	err := errors.Join(errs...)
	s.logger.Error("Failed to persist identification", zap.String("request_id", r.RequestID.String()), zap.Error(err))
	if errors.Is(err, entities.ErrPersistenceFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", entities.ErrPersistenceFailure, err)
}
