package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// IdentificationStore is the persistence collaborator for identification
// requests and their outcomes. Calls are assumed idempotent and are not
// retried by callers.
type IdentificationStore interface {
	// ListPending returns unresolved requests, oldest first
	ListPending(ctx context.Context, limit int) ([]*entities.IdentificationRequest, error)

	// FindRequest retrieves a request by id
	FindRequest(ctx context.Context, id uuid.UUID) (*entities.IdentificationRequest, error)

	// CreateRequest stores a new pending request
	CreateRequest(ctx context.Context, req *entities.IdentificationRequest) error

	// ResolveRequest marks a request with its terminal action
	ResolveRequest(ctx context.Context, requestID uuid.UUID, action entities.Action, userID, userName *string) error

	// IdentifyVoice links a voice to a user identity
	IdentifyVoice(ctx context.Context, voiceID, userID, userName string, method entities.Method, meetingID string, confidence float64) error

	// AddAudioSample appends a sample to a voice profile
	AddAudioSample(ctx context.Context, voiceID string, sample entities.AudioSample) error
}
