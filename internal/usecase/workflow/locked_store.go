package workflow

import (
	"context"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/repositories"
	"github.com/johnquangdev/meeting-voiceid/pkg/keylock"
)

// LockedStore wraps an IdentificationStore so profile writes take the same
// per-voice locks as merges and history undo
type LockedStore struct {
	repositories.IdentificationStore
	locks *keylock.Locker
}

// NewLockedStore wraps store. locks must be the Locker shared with the
// duplicate and history services.
func NewLockedStore(store repositories.IdentificationStore, locks *keylock.Locker) *LockedStore {
	if locks == nil {
		locks = keylock.New()
	}
	return &LockedStore{IdentificationStore: store, locks: locks}
}

// IdentifyVoice links a voice to a user while holding the voice lock
func (s *LockedStore) IdentifyVoice(ctx context.Context, voiceID, userID, userName string, method entities.Method, meetingID string, confidence float64) error {
	unlock := s.locks.Lock(voiceID)
	defer unlock()
	return s.IdentificationStore.IdentifyVoice(ctx, voiceID, userID, userName, method, meetingID, confidence)
}

// AddAudioSample appends a sample while holding the voice lock
func (s *LockedStore) AddAudioSample(ctx context.Context, voiceID string, sample entities.AudioSample) error {
	unlock := s.locks.Lock(voiceID)
	defer unlock()
	return s.IdentificationStore.AddAudioSample(ctx, voiceID, sample)
}
