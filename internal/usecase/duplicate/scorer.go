package duplicate

import (
	"math"
	"strings"
	"time"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// SimilarityScorer estimates how likely two profiles belong to one person.
// Scores are in [0,1]; reasons explain the contributing signals.
type SimilarityScorer interface {
	Score(a, b *entities.SpeakerProfile) (score float64, reasons []string)
}

// Rule weights of RuleBasedScorer
const (
	weightSameUser      = 0.5
	weightSameName      = 0.3
	weightRecentOverlap = 0.1
	weightSpeakingRate  = 0.1

	recentWindow     = 7 * 24 * time.Hour
	speakingRateSlop = 0.25
)

// RuleBasedScorer scores profiles from metadata only. It stands in for an
// acoustic model behind the same interface.
type RuleBasedScorer struct{}

// NewRuleBasedScorer creates the metadata scorer
func NewRuleBasedScorer() *RuleBasedScorer {
	return &RuleBasedScorer{}
}

// Score implements SimilarityScorer
func (RuleBasedScorer) Score(a, b *entities.SpeakerProfile) (float64, []string) {
	var (
		score   float64
		reasons []string
	)

	if a.UserID != nil && b.UserID != nil && *a.UserID == *b.UserID {
		score += weightSameUser
		reasons = append(reasons, "Linked to the same user")
	}
	if a.DisplayName != nil && b.DisplayName != nil && normalizeName(*a.DisplayName) == normalizeName(*b.DisplayName) {
		score += weightSameName
		reasons = append(reasons, "Same display name")
	}
	if heardWithin(a, b, recentWindow) {
		score += weightRecentOverlap
		reasons = append(reasons, "Heard in the same week")
	}
	if similarSpeakingRate(a, b) {
		score += weightSpeakingRate
		reasons = append(reasons, "Similar speaking time per meeting")
	}

	return math.Min(1, math.Max(0, score)), reasons
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// heardWithin reports whether the activity ranges overlap or lie within gap
func heardWithin(a, b *entities.SpeakerProfile, gap time.Duration) bool {
	if a.LastHeard.IsZero() || b.LastHeard.IsZero() {
		return false
	}
	if a.FirstHeard.After(b.LastHeard) {
		return a.FirstHeard.Sub(b.LastHeard) <= gap
	}
	if b.FirstHeard.After(a.LastHeard) {
		return b.FirstHeard.Sub(a.LastHeard) <= gap
	}
	return true
}

func similarSpeakingRate(a, b *entities.SpeakerProfile) bool {
	if a.MeetingsCount == 0 || b.MeetingsCount == 0 {
		return false
	}
	ra := a.TotalSpeakingTimeSeconds / float64(a.MeetingsCount)
	rb := b.TotalSpeakingTimeSeconds / float64(b.MeetingsCount)
	hi := math.Max(ra, rb)
	if hi == 0 {
		return false
	}
	return math.Abs(ra-rb)/hi <= speakingRateSlop
}
