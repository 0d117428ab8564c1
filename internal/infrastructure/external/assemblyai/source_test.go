package assemblyai

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func utterance(speaker, text string, startMs, endMs int64, confidence float64) aai.TranscriptUtterance {
	return aai.TranscriptUtterance{
		Speaker:    aai.String(speaker),
		Text:       aai.String(text),
		Start:      aai.Int64(startMs),
		End:        aai.Int64(endMs),
		Confidence: aai.Float64(confidence),
	}
}

func TestDetectionsAggregatesPerSpeaker(t *testing.T) {
	utterances := []aai.TranscriptUtterance{
		utterance("A", "hello everyone thanks for joining", 0, 3000, 0.9),
		utterance("B", "hi", 3000, 4000, 0.5),
		utterance("A", "let us start with the roadmap", 4000, 7000, 0.7),
		utterance("A", "first item", 7000, 8000, 0.8),
		utterance("A", "second item", 8000, 9000, 0.8),
		{Text: aai.String("no speaker")},
	}

	got := Detections("tr1", "m1", utterances, t0)
	if len(got) != 2 || got[0].SpeakerID != "tr1:A" || got[1].SpeakerID != "tr1:B" {
		t.Fatalf("unexpected speakers %+v", got)
	}

	a := got[0]
	if a.MessageCount != 4 || a.SpeakingDurationSeconds != 8 || a.MeetingID != "m1" {
		t.Fatalf("unexpected aggregate %+v", a)
	}
	if math.Abs(a.Confidence-0.8) > 1e-9 {
		t.Fatalf("confidence = %v", a.Confidence)
	}
	if len(a.ContextClues) != 3 || a.ContextClues[0] != "hello everyone thanks for joining" {
		t.Fatalf("unexpected clues %v", a.ContextClues)
	}
	if !a.DetectedAt.Equal(t0) || a.Signature.PitchBand != entities.PitchMedium {
		t.Fatalf("unexpected detection fields %+v", a)
	}
}

func TestPaceBand(t *testing.T) {
	cases := []struct {
		words   int
		seconds float64
		want    entities.PaceBand
	}{
		{words: 50, seconds: 60, want: entities.PaceSlow},
		{words: 140, seconds: 60, want: entities.PaceNormal},
		{words: 200, seconds: 60, want: entities.PaceFast},
		{words: 10, seconds: 0, want: entities.PaceNormal},
	}
	for _, c := range cases {
		if got := paceBand(c.words, c.seconds); got != c.want {
			t.Errorf("paceBand(%d, %v) = %s, want %s", c.words, c.seconds, got, c.want)
		}
	}
}

type fakeGetter struct {
	calls      int
	failFirst  int
	transcript aai.Transcript
}

func (f *fakeGetter) Get(context.Context, string) (aai.Transcript, error) {
	f.calls++
	if f.calls <= f.failFirst {
		return aai.Transcript{}, errors.New("connection reset")
	}
	return f.transcript, nil
}

func TestFetchRetriesTransportErrors(t *testing.T) {
	getter := &fakeGetter{
		failFirst: 1,
		transcript: aai.Transcript{
			Status:     aai.TranscriptStatusCompleted,
			Utterances: []aai.TranscriptUtterance{utterance("A", "hello there", 0, 2000, 0.9)},
		},
	}
	src := NewSourceWithGetter(getter, nil, nil)
	src.retryFirst = time.Millisecond

	got, err := src.Fetch(context.Background(), "tr1", "m1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if getter.calls != 2 || len(got) != 1 {
		t.Fatalf("calls=%d detections=%d", getter.calls, len(got))
	}
}

func TestFetchNotReady(t *testing.T) {
	getter := &fakeGetter{transcript: aai.Transcript{Status: aai.TranscriptStatusProcessing}}
	src := NewSourceWithGetter(getter, nil, nil)

	if _, err := src.Fetch(context.Background(), "tr1", "m1"); !errors.Is(err, ErrTranscriptNotReady) {
		t.Fatalf("expected not ready, got %v", err)
	}
}
