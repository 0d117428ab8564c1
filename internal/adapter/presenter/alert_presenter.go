package presenter

import (
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/alert"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// ToDetection converts a detection request to the domain type. Missing
// timestamps default to now.
func ToDetection(req *alert.DetectionRequest, now time.Time) entities.SpeakerDetection {
	d := entities.SpeakerDetection{
		SpeakerID:               req.SpeakerID,
		MeetingID:               req.MeetingID,
		Confidence:              req.Confidence,
		SpeakingDurationSeconds: req.SpeakingDurationSeconds,
		MessageCount:            req.MessageCount,
		DetectedAt:              now,
		LastActiveAt:            now,
		Signature: entities.Signature{
			PitchBand: entities.PitchBand(req.PitchBand),
			PaceBand:  entities.PaceBand(req.PaceBand),
		},
		ContextClues: req.ContextClues,
	}
	if req.DetectedAt != nil {
		d.DetectedAt = *req.DetectedAt
	}
	if req.LastActiveAt != nil {
		d.LastActiveAt = *req.LastActiveAt
	}
	return d
}

func toSignature(s entities.Signature) alert.SignatureResponse {
	return alert.SignatureResponse{PitchBand: string(s.PitchBand), PaceBand: string(s.PaceBand)}
}

// ToDetectionResponse converts a detection to its DTO
func ToDetectionResponse(d entities.SpeakerDetection) alert.DetectionResponse {
	return alert.DetectionResponse{
		SpeakerID:               d.SpeakerID,
		MeetingID:               d.MeetingID,
		Confidence:              d.Confidence,
		SpeakingDurationSeconds: d.SpeakingDurationSeconds,
		MessageCount:            d.MessageCount,
		DetectedAt:              d.DetectedAt,
		LastActiveAt:            d.LastActiveAt,
		Signature:               toSignature(d.Signature),
		ContextClues:            d.ContextClues,
	}
}

// ToBatchResponse converts an alert batch to its DTO
func ToBatchResponse(b entities.AlertBatch) alert.BatchResponse {
	members := make([]alert.DetectionResponse, len(b.Members))
	for i, m := range b.Members {
		members[i] = ToDetectionResponse(m)
	}
	return alert.BatchResponse{
		Key:             b.Key,
		State:           string(b.State),
		Members:         members,
		Signature:       toSignature(b.Signature),
		FirstDetectedAt: b.FirstDetectedAt,
		VisibleAt:       b.VisibleAt,
		ClosedAt:        b.ClosedAt,
		CloseReason:     string(b.CloseReason),
	}
}

// ToBatchResponses converts a list of batches
func ToBatchResponses(batches []entities.AlertBatch) []alert.BatchResponse {
	out := make([]alert.BatchResponse, len(batches))
	for i, b := range batches {
		out[i] = ToBatchResponse(b)
	}
	return out
}
