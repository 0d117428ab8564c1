package duplicate

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// MergeResult is the outcome of folding secondaries into a primary profile
type MergeResult struct {
	Merged      *entities.SpeakerProfile
	Secondaries []*entities.SpeakerProfile
	Entry       *entities.HistoryEntry
}

type conflictKey struct {
	field     entities.ConflictField
	secondary string
}

// Merge folds every secondary of the candidate into its primary. Each
// conflict of the candidate needs a matching resolution. Inputs are not
// modified. With captureSnapshot the history entry carries the pre- and
// post-merge profiles so the merge can be undone and redone.
func Merge(candidate *entities.DuplicateCandidate, resolutions []entities.MergeConflict, now time.Time, captureSnapshot bool) (*MergeResult, error) {
	if len(candidate.Profiles) < 2 {
		return nil, entities.ErrInsufficientProfiles
	}

	resolved, err := matchResolutions(candidate.Conflicts, resolutions)
	if err != nil {
		return nil, err
	}

	primary := candidate.Primary()
	merged := primary.Clone()
	merged.MergedInto = nil

	var secondaries []*entities.SpeakerProfile
	for _, src := range candidate.Profiles[1:] {
		merged.AudioSamples = append(merged.AudioSamples, src.AudioSamples...)
		merged.IdentificationHistory = append(merged.IdentificationHistory, src.IdentificationHistory...)
		merged.MeetingsCount += src.MeetingsCount
		merged.TotalSpeakingTimeSeconds += src.TotalSpeakingTimeSeconds
		if src.FirstHeard.Before(merged.FirstHeard) {
			merged.FirstHeard = src.FirstHeard
		}
		if src.LastHeard.After(merged.LastHeard) {
			merged.LastHeard = src.LastHeard
		}
		merged.Confirmed = merged.Confirmed || src.Confirmed
		if src.Confidence > merged.Confidence {
			merged.Confidence = src.Confidence
		}

		for _, f := range entities.ConflictFields {
			if c, ok := resolved[conflictKey{f, src.DeepgramVoiceID}]; ok {
				switch c.Resolution {
				case entities.ResolutionSecondary:
					merged.SetField(f, src.Field(f))
				case entities.ResolutionCustom:
					merged.SetField(f, c.CustomValue)
				}
				continue
			}
			if merged.Field(f) == nil {
				merged.SetField(f, src.Field(f))
			}
		}

		sec := src.Clone()
		sec.MergedInto = entities.StringPtr(primary.DeepgramVoiceID)
		secondaries = append(secondaries, sec)
	}
	merged.UpdatedAt = now

	entry := mergeEntry(candidate, merged, now)
	if captureSnapshot {
		before := make([]*entities.SpeakerProfile, len(candidate.Profiles))
		for i, p := range candidate.Profiles {
			before[i] = p.Clone()
		}
		after := []*entities.SpeakerProfile{merged.Clone()}
		for _, s := range secondaries {
			after = append(after, s.Clone())
		}
		entry.Snapshot = &entities.MergeSnapshot{Before: before, After: after}
	}
	entry.Details["snapshot_captured"] = captureSnapshot

	return &MergeResult{Merged: merged, Secondaries: secondaries, Entry: entry}, nil
}

func matchResolutions(conflicts, resolutions []entities.MergeConflict) (map[conflictKey]entities.MergeConflict, error) {
	given := make(map[conflictKey]entities.MergeConflict, len(resolutions))
	for _, r := range resolutions {
		given[conflictKey{r.Field, r.SecondaryVoiceID}] = r
	}

	out := make(map[conflictKey]entities.MergeConflict, len(conflicts))
	var unresolved []string
	for _, c := range conflicts {
		k := conflictKey{c.Field, c.SecondaryVoiceID}
		r, ok := given[k]
		if !ok || !r.Resolved() {
			unresolved = append(unresolved, fmt.Sprintf("%s@%s", c.Field, c.SecondaryVoiceID))
			continue
		}
		switch r.Resolution {
		case entities.ResolutionPrimary, entities.ResolutionSecondary:
		case entities.ResolutionCustom:
			if r.CustomValue == nil {
				return nil, fmt.Errorf("%w: custom resolution for %s needs a value", entities.ErrValidation, c.Field)
			}
		default:
			return nil, fmt.Errorf("%w: unknown resolution %q", entities.ErrValidation, r.Resolution)
		}
		c.Resolution = r.Resolution
		c.CustomValue = r.CustomValue
		out[k] = c
	}
	if len(unresolved) > 0 {
		return nil, fmt.Errorf("%w: %v", entities.ErrConflictsUnresolved, unresolved)
	}
	return out, nil
}

func mergeEntry(candidate *entities.DuplicateCandidate, merged *entities.SpeakerProfile, now time.Time) *entities.HistoryEntry {
	sources := make([]interface{}, len(candidate.Profiles))
	for i, p := range candidate.Profiles {
		sources[i] = p.DeepgramVoiceID
	}

	entry := &entities.HistoryEntry{
		ID:         uuid.New(),
		Kind:       entities.EntryMerge,
		Timestamp:  now,
		VoiceID:    merged.DeepgramVoiceID,
		Action:     entities.ActionMerged,
		Confidence: candidate.SimilarityScore,
		Undoable:   true,
		Details: datatypes.JSONMap{
			"source_voice_ids": sources,
			"result_voice_id":  merged.DeepgramVoiceID,
			"conflict_count":   len(candidate.Conflicts),
		},
	}
	if merged.UserID != nil {
		entry.UserID = entities.StringPtr(*merged.UserID)
	}
	if merged.DisplayName != nil {
		entry.UserName = entities.StringPtr(*merged.DisplayName)
	}
	return entry
}
