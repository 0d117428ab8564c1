package entities

// Tier is the confidence class of a duplicate candidate
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// ConflictField names a profile field compared during duplicate review
type ConflictField string

const (
	FieldUserID      ConflictField = "user_id"
	FieldDisplayName ConflictField = "display_name"
)

// ConflictFields lists the fields checked for conflicts, in report order.
// Confirmed is never flagged: merges take the logical OR.
var ConflictFields = []ConflictField{FieldUserID, FieldDisplayName}

// Resolution selects which value a conflicted field keeps
type Resolution string

const (
	ResolutionNone      Resolution = ""
	ResolutionPrimary   Resolution = "primary"
	ResolutionSecondary Resolution = "secondary"
	ResolutionCustom    Resolution = "custom"
)

// MergeConflict is a field where a secondary disagrees with the value the
// merge keeps by default. PrimaryValue is that kept value; it comes from an
// earlier secondary when the primary has none.
type MergeConflict struct {
	Field            ConflictField `json:"field"`
	SecondaryVoiceID string        `json:"secondary_voice_id"`
	PrimaryValue     string        `json:"primary_value"`
	SecondaryValue   string        `json:"secondary_value"`
	Resolution       Resolution    `json:"resolution,omitempty"`
	CustomValue      *string       `json:"custom_value,omitempty"`
}

// Resolved reports whether a resolution has been chosen
func (c MergeConflict) Resolved() bool {
	return c.Resolution != ResolutionNone
}

// DuplicateCandidate is a group of profiles likely to be the same person.
// Profiles[0] is the primary.
type DuplicateCandidate struct {
	Profiles        []*SpeakerProfile `json:"profiles"`
	SimilarityScore float64           `json:"similarity_score"`
	Tier            Tier              `json:"tier"`
	Reasons         []string          `json:"reasons"`
	AutoMergeable   bool              `json:"auto_mergeable"`
	Conflicts       []MergeConflict   `json:"conflicts"`
}

// Primary returns the profile whose identity survives a merge
func (c *DuplicateCandidate) Primary() *SpeakerProfile {
	if len(c.Profiles) == 0 {
		return nil
	}
	return c.Profiles[0]
}

// VoiceIDs returns the ids of every profile in the group
func (c *DuplicateCandidate) VoiceIDs() []string {
	ids := make([]string, len(c.Profiles))
	for i, p := range c.Profiles {
		ids[i] = p.DeepgramVoiceID
	}
	return ids
}
