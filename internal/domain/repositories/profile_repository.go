package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// ProfileRepository defines the interface for speaker profile data access
type ProfileRepository interface {
	// FindByVoiceID retrieves a profile by its voice identifier
	FindByVoiceID(ctx context.Context, voiceID string) (*entities.SpeakerProfile, error)

	// FindByVoiceIDs retrieves profiles in the order of the given ids
	FindByVoiceIDs(ctx context.Context, voiceIDs []string) ([]*entities.SpeakerProfile, error)

	// ListActive returns every profile that has not been merged away
	ListActive(ctx context.Context) ([]*entities.SpeakerProfile, error)

	// ListConfirmed returns active profiles linked to a confirmed user
	ListConfirmed(ctx context.Context) ([]*entities.SpeakerProfile, error)

	// Save creates or replaces a profile
	Save(ctx context.Context, profile *entities.SpeakerProfile) error

	// SaveAll stores several profiles atomically
	SaveAll(ctx context.Context, profiles []*entities.SpeakerProfile) error
}
