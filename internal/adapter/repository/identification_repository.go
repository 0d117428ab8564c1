package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/repositories"
)

// identificationRepository implements the IdentificationStore interface
type identificationRepository struct {
	db    *gorm.DB
	clock clock.Clock
}

// NewIdentificationRepository creates a new identification store
func NewIdentificationRepository(db *gorm.DB, clk clock.Clock) repositories.IdentificationStore {
	if clk == nil {
		clk = clock.New()
	}
	return &identificationRepository{db: db, clock: clk}
}

// ListPending returns unresolved requests. Requests never deferred come
// first, then by age.
func (r *identificationRepository) ListPending(ctx context.Context, limit int) ([]*entities.IdentificationRequest, error) {
	var reqs []*entities.IdentificationRequest
	query := r.db.WithContext(ctx).
		Where("status = ?", entities.RequestPending).
		Order("resolved_action IS NOT NULL, created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return reqs, nil
}

// FindRequest retrieves a request by id
func (r *identificationRepository) FindRequest(ctx context.Context, id uuid.UUID) (*entities.IdentificationRequest, error) {
	var req entities.IdentificationRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", entities.ErrRequestNotFound, id)
		}
		return nil, fmt.Errorf("failed to find request: %w", err)
	}
	return &req, nil
}

// CreateRequest stores a new pending request
func (r *identificationRepository) CreateRequest(ctx context.Context, req *entities.IdentificationRequest) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.Status == "" {
		req.Status = entities.RequestPending
	}
	return r.db.WithContext(ctx).Create(req).Error
}

// ResolveRequest marks a request with its terminal action. Deferred
// requests stay pending so a later session offers them again.
func (r *identificationRepository) ResolveRequest(ctx context.Context, requestID uuid.UUID, action entities.Action, userID, userName *string) error {
	status := entities.RequestResolved
	if action == entities.ActionDeferred {
		status = entities.RequestPending
	}
	now := r.clock.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&entities.IdentificationRequest{}).
		Where("id = ?", requestID).
		Updates(map[string]interface{}{
			"status":             status,
			"resolved_action":    action,
			"resolved_user_id":   userID,
			"resolved_user_name": userName,
			"resolved_at":        now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to resolve request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", entities.ErrRequestNotFound, requestID)
	}
	return nil
}

// IdentifyVoice links a voice to a user, creating the profile on first sight
func (r *identificationRepository) IdentifyVoice(ctx context.Context, voiceID, userID, userName string, method entities.Method, meetingID string, confidence float64) error {
	return r.withProfile(ctx, voiceID, func(p *entities.SpeakerProfile) {
		now := r.clock.Now().UTC()
		p.UserID = entities.StringPtr(userID)
		p.DisplayName = entities.StringPtr(userName)
		p.Confirmed = true
		p.Confidence = confidence
		p.IdentificationHistory = append(p.IdentificationHistory, entities.IdentificationRecord{
			UserID:     userID,
			UserName:   userName,
			Method:     method,
			MeetingID:  meetingID,
			Confidence: confidence,
			Timestamp:  now,
		})
	})
}

// AddAudioSample appends a sample to a voice profile
func (r *identificationRepository) AddAudioSample(ctx context.Context, voiceID string, sample entities.AudioSample) error {
	return r.withProfile(ctx, voiceID, func(p *entities.SpeakerProfile) {
		p.AudioSamples = append(p.AudioSamples, sample)
		p.TotalSpeakingTimeSeconds += sample.DurationSeconds
		if sample.Timestamp.After(p.LastHeard) {
			p.LastHeard = sample.Timestamp
		}
	})
}

// maxMergeHops bounds how far a write follows merged_into redirects
const maxMergeHops = 8

// withProfile loads the profile row for update, applies fn and saves it. A
// merged profile redirects the write to the profile it was merged into.
func (r *identificationRepository) withProfile(ctx context.Context, voiceID string, fn func(*entities.SpeakerProfile)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		profile, err := resolveMergeTarget(voiceID, func(id string) (*entities.SpeakerProfile, error) {
			var p entities.SpeakerProfile
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("deepgram_voice_id = ?", id).
				First(&p).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return nil, nil
			case err != nil:
				return nil, fmt.Errorf("failed to load profile: %w", err)
			}
			return &p, nil
		})
		if err != nil {
			return err
		}
		if profile == nil {
			profile = entities.NewSpeakerProfile(voiceID, r.clock.Now().UTC())
		}

		fn(profile)
		if err := tx.Save(profile).Error; err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		return nil
	})
}

// resolveMergeTarget follows merged_into from voiceID to the profile that
// should receive writes. load returns nil, nil for a missing row; a missing
// start yields nil, a missing redirect target is an error.
func resolveMergeTarget(voiceID string, load func(id string) (*entities.SpeakerProfile, error)) (*entities.SpeakerProfile, error) {
	seen := make(map[string]bool, 2)
	id := voiceID
	for hop := 0; ; hop++ {
		if seen[id] || hop > maxMergeHops {
			return nil, fmt.Errorf("%w: merge chain from %s does not end", entities.ErrProfileAlreadyMerged, voiceID)
		}
		seen[id] = true

		p, err := load(id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			if id == voiceID {
				return nil, nil
			}
			return nil, fmt.Errorf("%w: %s, merge target of %s", entities.ErrProfileNotFound, id, voiceID)
		}
		if p.MergedInto == nil || *p.MergedInto == "" {
			return p, nil
		}
		id = *p.MergedInto
	}
}
