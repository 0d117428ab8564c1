package duplicate

import (
	"fmt"
	"sort"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
)

// Comparator turns scored profile groups into duplicate candidates
type Comparator struct {
	scorer SimilarityScorer
	cfg    config.MatchingConfig
}

// NewComparator creates a comparator
func NewComparator(scorer SimilarityScorer, cfg config.MatchingConfig) *Comparator {
	return &Comparator{scorer: scorer, cfg: cfg}
}

// Tier maps a score to its confidence class
func (c *Comparator) Tier(score float64) entities.Tier {
	switch {
	case score >= c.cfg.HighTierThreshold:
		return entities.TierHigh
	case score >= c.cfg.MediumTierThreshold:
		return entities.TierMedium
	}
	return entities.TierLow
}

// Compare scores a group whose first profile is the primary. Every other
// profile is compared against the primary; the group score is the lowest
// pair score.
func (c *Comparator) Compare(profiles []*entities.SpeakerProfile) (*entities.DuplicateCandidate, error) {
	if len(profiles) < 2 {
		return nil, entities.ErrInsufficientProfiles
	}

	primary := profiles[0]
	seen := map[string]bool{primary.DeepgramVoiceID: true}
	score := 1.0
	var reasons []string
	reasonSeen := map[string]bool{}

	for _, other := range profiles[1:] {
		if seen[other.DeepgramVoiceID] {
			return nil, fmt.Errorf("%w: duplicate voice id %s", entities.ErrValidation, other.DeepgramVoiceID)
		}
		seen[other.DeepgramVoiceID] = true

		s, rs := c.scorer.Score(primary, other)
		if s < score {
			score = s
		}
		for _, r := range rs {
			if !reasonSeen[r] {
				reasonSeen[r] = true
				reasons = append(reasons, r)
			}
		}
	}

	conflicts := Conflicts(primary, profiles[1:])
	return &entities.DuplicateCandidate{
		Profiles:        profiles,
		SimilarityScore: score,
		Tier:            c.Tier(score),
		Reasons:         reasons,
		AutoMergeable:   score >= c.cfg.MergeThreshold && len(conflicts) == 0,
		Conflicts:       conflicts,
	}, nil
}

// Scan compares every pair of unmerged profiles and returns the pairs at or
// above the scan threshold, highest score first. Within a pair the confirmed
// profile is primary, otherwise the one listed first.
func (c *Comparator) Scan(profiles []*entities.SpeakerProfile) []entities.DuplicateCandidate {
	var active []*entities.SpeakerProfile
	for _, p := range profiles {
		if !p.IsMerged() {
			active = append(active, p)
		}
	}

	var out []entities.DuplicateCandidate
	for i := 0; i < len(active); i++ {
		for j := i + 1; j < len(active); j++ {
			primary, secondary := active[i], active[j]
			if secondary.Confirmed && !primary.Confirmed {
				primary, secondary = secondary, primary
			}
			cand, err := c.Compare([]*entities.SpeakerProfile{primary, secondary})
			if err != nil || cand.SimilarityScore < c.cfg.ScanMinScore {
				continue
			}
			out = append(out, *cand)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SimilarityScore > out[j].SimilarityScore
	})
	return out
}

// Conflicts lists fields where the merge would have to pick between two
// non-nil, different values. Each secondary is compared against the value
// the merge keeps by default: the primary's, or, when the primary has none,
// the first secondary's that has one. The confirmed flag is never a conflict.
func Conflicts(primary *entities.SpeakerProfile, secondaries []*entities.SpeakerProfile) []entities.MergeConflict {
	kept := make(map[entities.ConflictField]*string, len(entities.ConflictFields))
	for _, f := range entities.ConflictFields {
		kept[f] = primary.Field(f)
	}

	var out []entities.MergeConflict
	for _, s := range secondaries {
		for _, f := range entities.ConflictFields {
			kv, sv := kept[f], s.Field(f)
			if sv == nil {
				continue
			}
			if kv == nil {
				kept[f] = sv
				continue
			}
			if *kv == *sv {
				continue
			}
			out = append(out, entities.MergeConflict{
				Field:            f,
				SecondaryVoiceID: s.DeepgramVoiceID,
				PrimaryValue:     *kv,
				SecondaryValue:   *sv,
			})
		}
	}
	return out
}
