package handler

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/livekit/protocol/livekit"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	dupUsecase "github.com/johnquangdev/meeting-voiceid/internal/usecase/duplicate"
	historyUsecase "github.com/johnquangdev/meeting-voiceid/internal/usecase/history"
	wfUsecase "github.com/johnquangdev/meeting-voiceid/internal/usecase/workflow"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

// AlertEngine is the alert engine surface used by the HTTP layer
type AlertEngine interface {
	Ingest(ctx context.Context, d entities.SpeakerDetection) (*entities.AlertBatch, error)
	Dismiss(ctx context.Context, key string, duration time.Duration) error
	Defer(ctx context.Context, key string, minutes int) error
	Active() []entities.AlertBatch
	Config() config.AlertConfig
}

// DetectionSource turns an external transcript into detections
type DetectionSource interface {
	Fetch(ctx context.Context, transcriptID, meetingID string) ([]entities.SpeakerDetection, error)
}

// DuplicateService finds and merges duplicate profiles
type DuplicateService interface {
	Scan(ctx context.Context) ([]entities.DuplicateCandidate, error)
	Compare(ctx context.Context, voiceIDs []string) (*entities.DuplicateCandidate, error)
	Merge(ctx context.Context, voiceIDs []string, resolutions []entities.MergeConflict) (*dupUsecase.MergeResult, error)
}

// WorkflowService runs identification sessions
type WorkflowService interface {
	Start(ctx context.Context, limit int) (*wfUsecase.Session, error)
	Get(id uuid.UUID) (*wfUsecase.Session, error)
	UpdateForm(ctx context.Context, id uuid.UUID, in wfUsecase.FormInput) (*wfUsecase.Session, error)
	Next(id uuid.UUID) (*wfUsecase.Session, error)
	Back(id uuid.UUID) (*wfUsecase.Session, error)
	Submit(ctx context.Context, id uuid.UUID) (*wfUsecase.Session, *entities.IdentificationResult, error)
	Skip(ctx context.Context, id uuid.UUID) (*wfUsecase.Session, *entities.IdentificationResult, error)
	Defer(ctx context.Context, id uuid.UUID) (*wfUsecase.Session, *entities.IdentificationResult, error)
}

// HistoryService exposes the decision ledger
type HistoryService interface {
	Entries(kind *entities.EntryKind, limit int) []*entities.HistoryEntry
	Stats() historyUsecase.Stats
	Export() []historyUsecase.ExportRow
	Undo(ctx context.Context, id uuid.UUID) (*entities.HistoryEntry, error)
	Redo(ctx context.Context) (*entities.HistoryEntry, error)
}

// SampleStorage stores audio sample objects and returns a playback URL
type SampleStorage interface {
	UploadSample(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
}

// ProfileReader loads speaker profiles
type ProfileReader interface {
	FindByVoiceID(ctx context.Context, voiceID string) (*entities.SpeakerProfile, error)
}

// SampleRecorder appends audio samples to profiles
type SampleRecorder interface {
	AddAudioSample(ctx context.Context, voiceID string, sample entities.AudioSample) error
}

// WebhookReceiver verifies and decodes LiveKit webhook requests
type WebhookReceiver interface {
	Receive(r *http.Request) (*livekit.WebhookEvent, error)
}
