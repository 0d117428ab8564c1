package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/repositories"
)

// profileRepository implements the ProfileRepository interface
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) repositories.ProfileRepository {
	return &profileRepository{db: db}
}

// FindByVoiceID retrieves a profile by its voice identifier
func (r *profileRepository) FindByVoiceID(ctx context.Context, voiceID string) (*entities.SpeakerProfile, error) {
	var profile entities.SpeakerProfile
	err := r.db.WithContext(ctx).
		Where("deepgram_voice_id = ?", voiceID).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", entities.ErrProfileNotFound, voiceID)
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}

// FindByVoiceIDs retrieves profiles in the order of the given ids
func (r *profileRepository) FindByVoiceIDs(ctx context.Context, voiceIDs []string) ([]*entities.SpeakerProfile, error) {
	var found []*entities.SpeakerProfile
	if err := r.db.WithContext(ctx).
		Where("deepgram_voice_id IN ?", voiceIDs).
		Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to find profiles: %w", err)
	}
	return orderProfiles(found, voiceIDs)
}

// ListActive returns every profile that has not been merged away
func (r *profileRepository) ListActive(ctx context.Context) ([]*entities.SpeakerProfile, error) {
	var profiles []*entities.SpeakerProfile
	err := r.db.WithContext(ctx).
		Where("merged_into IS NULL").
		Order("first_heard ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// ListConfirmed returns active profiles linked to a confirmed user
func (r *profileRepository) ListConfirmed(ctx context.Context) ([]*entities.SpeakerProfile, error) {
	var profiles []*entities.SpeakerProfile
	err := r.db.WithContext(ctx).
		Where("merged_into IS NULL AND confirmed = ? AND user_id IS NOT NULL", true).
		Order("last_heard DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed profiles: %w", err)
	}
	return profiles, nil
}

// Save creates or replaces a profile
func (r *profileRepository) Save(ctx context.Context, profile *entities.SpeakerProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// SaveAll stores several profiles in one transaction
func (r *profileRepository) SaveAll(ctx context.Context, profiles []*entities.SpeakerProfile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range profiles {
			if err := tx.Save(p).Error; err != nil {
				return fmt.Errorf("failed to save profile %s: %w", p.DeepgramVoiceID, err)
			}
		}
		return nil
	})
}

// orderProfiles arranges found in the order of ids and reports the first
// missing id
func orderProfiles(found []*entities.SpeakerProfile, ids []string) ([]*entities.SpeakerProfile, error) {
	byID := make(map[string]*entities.SpeakerProfile, len(found))
	for _, p := range found {
		byID[p.DeepgramVoiceID] = p
	}
	out := make([]*entities.SpeakerProfile, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", entities.ErrProfileNotFound, id)
		}
		out = append(out, p)
	}
	return out, nil
}
