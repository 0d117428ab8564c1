package workflow

import (
	"context"
	"testing"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/usecase/duplicate"
)

type scoreByVoice map[string]float64

func (s scoreByVoice) Score(_, b *entities.SpeakerProfile) (float64, []string) {
	return s[b.DeepgramVoiceID], []string{"rule"}
}

var _ duplicate.SimilarityScorer = scoreByVoice(nil)

func confirmedProfile(id, user, name string) *entities.SpeakerProfile {
	p := entities.NewSpeakerProfile(id, t0)
	p.Confirmed = true
	p.UserID = entities.StringPtr(user)
	if name != "" {
		p.DisplayName = entities.StringPtr(name)
	}
	return p
}

func TestMatcherRanksAndCaps(t *testing.T) {
	profiles := &fakeProfiles{byID: map[string]*entities.SpeakerProfile{
		"k1": confirmedProfile("k1", "u1", "Fox"),
		"k2": confirmedProfile("k2", "u2", ""),
		"k3": confirmedProfile("k3", "u3", "Dana"),
		"k4": confirmedProfile("k4", "u4", "Zero"),
	}}
	scores := scoreByVoice{"k1": 0.4, "k2": 0.9, "k3": 0.7, "k4": 0}

	out, err := NewMatcher(profiles, scores, 2).Suggest(context.Background(), request("v1"))
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(out) != 2 || out[0].VoiceID != "k2" || out[1].VoiceID != "k3" {
		t.Fatalf("unexpected suggestions %+v", out)
	}
	if out[0].UserName != UnknownUserName || out[0].Reason != "rule" {
		t.Fatalf("unexpected suggestion fields %+v", out[0])
	}
}
