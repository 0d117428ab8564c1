package workflow

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/repositories"
	"github.com/johnquangdev/meeting-voiceid/internal/usecase/duplicate"
)

// Matcher suggests known identities for an unknown voice by scoring it
// against confirmed profiles
type Matcher struct {
	profiles repositories.ProfileRepository
	scorer   duplicate.SimilarityScorer
	max      int
}

// NewMatcher creates a matcher returning at most max suggestions
func NewMatcher(profiles repositories.ProfileRepository, scorer duplicate.SimilarityScorer, max int) *Matcher {
	return &Matcher{profiles: profiles, scorer: scorer, max: max}
}

// Suggest returns suggestions for the request, best first
func (m *Matcher) Suggest(ctx context.Context, req *entities.IdentificationRequest) ([]entities.Suggestion, error) {
	subject, err := m.profiles.FindByVoiceID(ctx, req.VoiceID)
	if err != nil {
		if !errors.Is(err, entities.ErrProfileNotFound) {
			return nil, fmt.Errorf("failed to load voice profile: %w", err)
		}
		subject = entities.NewSpeakerProfile(req.VoiceID, req.MeetingDate)
	}

	known, err := m.profiles.ListConfirmed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed profiles: %w", err)
	}

	var out []entities.Suggestion
	for _, p := range known {
		if p.DeepgramVoiceID == subject.DeepgramVoiceID || p.UserID == nil {
			continue
		}
		score, reasons := m.scorer.Score(subject, p)
		if score <= 0 {
			continue
		}
		name := UnknownUserName
		if p.DisplayName != nil {
			name = *p.DisplayName
		}
		sg := entities.Suggestion{
			VoiceID:    p.DeepgramVoiceID,
			UserID:     *p.UserID,
			UserName:   name,
			Confidence: score,
		}
		if len(reasons) > 0 {
			sg.Reason = reasons[0]
		}
		out = append(out, sg)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	if m.max > 0 && len(out) > m.max {
		out = out[:m.max]
	}
	return out, nil
}
