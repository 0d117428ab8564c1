package assemblyai

import (
	"context"
	"fmt"
	"strings"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/benbjohnson/clock"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// Pace thresholds in words per minute
const (
	slowPaceWPM = 110
	fastPaceWPM = 170

	maxContextClues = 3
)

// ErrTranscriptNotReady is returned while AssemblyAI is still processing
var ErrTranscriptNotReady = fmt.Errorf("transcript %w", entities.ErrSourceNotReady)

// TranscriptGetter is the part of the AssemblyAI SDK the source needs
type TranscriptGetter interface {
	Get(ctx context.Context, transcriptID string) (aai.Transcript, error)
}

// Source turns diarized AssemblyAI transcripts into speaker detections
type Source struct {
	transcripts TranscriptGetter
	clock       clock.Clock
	logger      *zap.Logger
	retryFirst  time.Duration
	maxElapsed  time.Duration
}

// NewSource creates a detection source backed by the AssemblyAI SDK
func NewSource(apiKey string, clk clock.Clock, logger *zap.Logger) *Source {
	return NewSourceWithGetter(aai.NewClient(apiKey).Transcripts, clk, logger)
}

// NewSourceWithGetter creates a source over any transcript getter
func NewSourceWithGetter(getter TranscriptGetter, clk clock.Clock, logger *zap.Logger) *Source {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		transcripts: getter,
		clock:       clk,
		logger:      logger,
		retryFirst:  time.Second,
		maxElapsed:  30 * time.Second,
	}
}

// Fetch loads a completed transcript and returns one detection per speaker
// in order of first appearance. Transport errors are retried with backoff;
// a transcript that is not completed is returned as ErrTranscriptNotReady.
func (s *Source) Fetch(ctx context.Context, transcriptID, meetingID string) ([]entities.SpeakerDetection, error) {
	var transcript aai.Transcript
	get := func() error {
		t, err := s.transcripts.Get(ctx, transcriptID)
		if err != nil {
			s.logger.Warn("AssemblyAI fetch failed, retrying",
				zap.String("transcript_id", transcriptID),
				zap.Error(err),
			)
			return err
		}
		transcript = t
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retryFirst
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = s.maxElapsed
	if err := backoff.Retry(get, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("failed to fetch transcript %s: %w", transcriptID, err)
	}

	switch transcript.Status {
	case aai.TranscriptStatusCompleted:
	case aai.TranscriptStatusError:
		msg := ""
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("transcript %s failed: %s", transcriptID, msg)
	default:
		return nil, fmt.Errorf("%w: %s is %s", ErrTranscriptNotReady, transcriptID, transcript.Status)
	}

	detections := Detections(transcriptID, meetingID, transcript.Utterances, s.clock.Now())
	s.logger.Info("Detections built from transcript",
		zap.String("transcript_id", transcriptID),
		zap.Int("utterances", len(transcript.Utterances)),
		zap.Int("speakers", len(detections)),
	)
	return detections, nil
}

type speakerStats struct {
	label         string
	durationMs    int64
	words         int
	messages      int
	confidenceSum float64
	clues         []string
}

// Detections aggregates utterances per speaker label. The speaker id is
// "<transcriptID>:<label>" so labels from different transcripts never collide.
func Detections(transcriptID, meetingID string, utterances []aai.TranscriptUtterance, now time.Time) []entities.SpeakerDetection {
	var order []*speakerStats
	byLabel := make(map[string]*speakerStats)

	for _, u := range utterances {
		if u.Speaker == nil || *u.Speaker == "" {
			continue
		}
		st, ok := byLabel[*u.Speaker]
		if !ok {
			st = &speakerStats{label: *u.Speaker}
			byLabel[st.label] = st
			order = append(order, st)
		}

		st.messages++
		if u.Start != nil && u.End != nil && *u.End > *u.Start {
			st.durationMs += *u.End - *u.Start
		}
		if u.Confidence != nil {
			st.confidenceSum += *u.Confidence
		}
		if u.Text != nil {
			text := strings.TrimSpace(*u.Text)
			st.words += len(strings.Fields(text))
			if text != "" && len(st.clues) < maxContextClues {
				st.clues = append(st.clues, text)
			}
		}
	}

	out := make([]entities.SpeakerDetection, 0, len(order))
	for _, st := range order {
		seconds := float64(st.durationMs) / 1000
		out = append(out, entities.SpeakerDetection{
			SpeakerID:               transcriptID + ":" + st.label,
			MeetingID:               meetingID,
			Confidence:              st.confidenceSum / float64(st.messages),
			SpeakingDurationSeconds: seconds,
			MessageCount:            st.messages,
			DetectedAt:              now,
			LastActiveAt:            now,
			Signature: entities.Signature{
				PitchBand: entities.PitchMedium,
				PaceBand:  paceBand(st.words, seconds),
			},
			ContextClues: st.clues,
		})
	}
	return out
}

// AssemblyAI reports no pitch, so only pace is derived
func paceBand(words int, seconds float64) entities.PaceBand {
	if seconds <= 0 {
		return entities.PaceNormal
	}
	wpm := float64(words) / (seconds / 60)
	switch {
	case wpm < slowPaceWPM:
		return entities.PaceSlow
	case wpm > fastPaceWPM:
		return entities.PaceFast
	}
	return entities.PaceNormal
}
