package duplicate

import (
	"errors"
	"testing"
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

type fixedScorer float64

func (f fixedScorer) Score(_, _ *entities.SpeakerProfile) (float64, []string) {
	return float64(f), []string{"fixed"}
}

type pairScorer map[string]float64

func (p pairScorer) Score(a, b *entities.SpeakerProfile) (float64, []string) {
	if s, ok := p[a.DeepgramVoiceID+"|"+b.DeepgramVoiceID]; ok {
		return s, nil
	}
	return p[b.DeepgramVoiceID+"|"+a.DeepgramVoiceID], nil
}

func profile(id string) *entities.SpeakerProfile {
	return &entities.SpeakerProfile{
		DeepgramVoiceID: id,
		FirstHeard:      t0,
		LastHeard:       t0.Add(time.Hour),
	}
}

func TestCompareConfirmedAndNameConflict(t *testing.T) {
	a := profile("v1")
	a.Confirmed = true
	a.DisplayName = entities.StringPtr("Alice")
	b := profile("v2")
	b.DisplayName = entities.StringPtr("Alicia")

	cand, err := NewComparator(fixedScorer(0.95), config.Default().Matching).Compare([]*entities.SpeakerProfile{a, b})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(cand.Conflicts) != 1 {
		t.Fatalf("expected exactly one conflict, got %+v", cand.Conflicts)
	}
	c := cand.Conflicts[0]
	if c.Field != entities.FieldDisplayName || c.PrimaryValue != "Alice" || c.SecondaryValue != "Alicia" {
		t.Fatalf("unexpected conflict %+v", c)
	}
	if cand.AutoMergeable {
		t.Fatalf("candidate with conflicts must not be auto-mergeable")
	}
	if cand.Tier != entities.TierHigh {
		t.Fatalf("tier = %s", cand.Tier)
	}
}

func TestCompareNullValuesNeverConflict(t *testing.T) {
	a := profile("v1")
	a.UserID = entities.StringPtr("u1")
	b := profile("v2")
	b.DisplayName = entities.StringPtr("Bob")

	cand, err := NewComparator(fixedScorer(0.9), config.Default().Matching).Compare([]*entities.SpeakerProfile{a, b})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(cand.Conflicts) != 0 || !cand.AutoMergeable {
		t.Fatalf("expected auto-mergeable without conflicts, got %+v", cand)
	}
}

func TestCompareSecondariesDisagreeWithoutPrimaryValue(t *testing.T) {
	a := profile("v1")
	b := profile("v2")
	b.DisplayName = entities.StringPtr("Alice")
	c := profile("v3")
	c.DisplayName = entities.StringPtr("Bob")

	cand, err := NewComparator(fixedScorer(0.95), config.Default().Matching).Compare([]*entities.SpeakerProfile{a, b, c})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(cand.Conflicts) != 1 {
		t.Fatalf("expected one conflict between secondaries, got %+v", cand.Conflicts)
	}
	got := cand.Conflicts[0]
	if got.Field != entities.FieldDisplayName || got.SecondaryVoiceID != "v3" || got.PrimaryValue != "Alice" || got.SecondaryValue != "Bob" {
		t.Fatalf("unexpected conflict %+v", got)
	}
	if cand.AutoMergeable {
		t.Fatalf("candidate with conflicts must not be auto-mergeable")
	}

	d := profile("v4")
	d.DisplayName = entities.StringPtr("Alice")
	if cs := Conflicts(a, []*entities.SpeakerProfile{b, d}); len(cs) != 0 {
		t.Fatalf("agreeing secondaries must not conflict, got %+v", cs)
	}
}

func TestCompareAutoMergeThreshold(t *testing.T) {
	cfg := config.Default().Matching
	for _, tc := range []struct {
		score float64
		tier  entities.Tier
		auto  bool
	}{
		{0.85, entities.TierHigh, true},
		{0.84, entities.TierHigh, false},
		{0.8, entities.TierHigh, false},
		{0.6, entities.TierMedium, false},
		{0.59, entities.TierLow, false},
	} {
		cand, err := NewComparator(fixedScorer(tc.score), cfg).Compare([]*entities.SpeakerProfile{profile("a"), profile("b")})
		if err != nil {
			t.Fatalf("compare: %v", err)
		}
		if cand.Tier != tc.tier || cand.AutoMergeable != tc.auto {
			t.Fatalf("score %v: tier=%s auto=%v", tc.score, cand.Tier, cand.AutoMergeable)
		}
	}
}

func TestCompareNeedsTwoProfiles(t *testing.T) {
	_, err := NewComparator(fixedScorer(1), config.Default().Matching).Compare([]*entities.SpeakerProfile{profile("a")})
	if !errors.Is(err, entities.ErrInsufficientProfiles) {
		t.Fatalf("expected insufficient profiles, got %v", err)
	}
}

func TestCompareGroupUsesLowestPairScore(t *testing.T) {
	scorer := pairScorer{"p|a": 0.9, "p|b": 0.7}
	cand, err := NewComparator(scorer, config.Default().Matching).Compare([]*entities.SpeakerProfile{profile("p"), profile("a"), profile("b")})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if cand.SimilarityScore != 0.7 || cand.Tier != entities.TierMedium {
		t.Fatalf("unexpected group score %v tier %s", cand.SimilarityScore, cand.Tier)
	}
}

func TestScanSortsAndSkipsMerged(t *testing.T) {
	merged := profile("m")
	merged.MergedInto = entities.StringPtr("a")
	confirmed := profile("c")
	confirmed.Confirmed = true

	scorer := pairScorer{"a|b": 0.6, "a|c": 0.9, "b|c": 0.3, "a|m": 1, "b|m": 1, "c|m": 1}
	out := NewComparator(scorer, config.Default().Matching).Scan([]*entities.SpeakerProfile{profile("a"), profile("b"), confirmed, merged})

	if len(out) != 2 {
		t.Fatalf("expected two candidates, got %d", len(out))
	}
	if out[0].SimilarityScore != 0.9 || out[0].Primary().DeepgramVoiceID != "c" {
		t.Fatalf("expected confirmed profile as primary of best pair, got %+v", out[0].VoiceIDs())
	}
	if out[1].SimilarityScore != 0.6 {
		t.Fatalf("unexpected second score %v", out[1].SimilarityScore)
	}
}

func TestRuleBasedScorer(t *testing.T) {
	a := profile("a")
	a.UserID = entities.StringPtr("u1")
	a.DisplayName = entities.StringPtr("Alice  Smith")
	a.MeetingsCount, a.TotalSpeakingTimeSeconds = 2, 200
	b := profile("b")
	b.UserID = entities.StringPtr("u1")
	b.DisplayName = entities.StringPtr("alice smith")
	b.MeetingsCount, b.TotalSpeakingTimeSeconds = 4, 380

	score, reasons := NewRuleBasedScorer().Score(a, b)
	if score != 1 || len(reasons) != 4 {
		t.Fatalf("expected full score with four reasons, got %v %v", score, reasons)
	}

	c := profile("c")
	c.FirstHeard = t0.Add(30 * 24 * time.Hour)
	c.LastHeard = c.FirstHeard
	if score, _ := NewRuleBasedScorer().Score(a, c); score != 0 {
		t.Fatalf("unrelated profiles should score 0, got %v", score)
	}
}
