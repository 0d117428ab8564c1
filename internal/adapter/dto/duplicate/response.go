package duplicate

import "github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/profile"

// ConflictResponse represents a field where two profiles disagree
type ConflictResponse struct {
	Field            string  `json:"field"`
	SecondaryVoiceID string  `json:"secondary_voice_id"`
	PrimaryValue     string  `json:"primary_value"`
	SecondaryValue   string  `json:"secondary_value"`
	Resolution       string  `json:"resolution,omitempty"`
	CustomValue      *string `json:"custom_value,omitempty"`
}

// CandidateResponse represents a duplicate candidate group
type CandidateResponse struct {
	Profiles        []profile.ProfileResponse `json:"profiles"`
	SimilarityScore float64                   `json:"similarity_score"`
	Tier            string                    `json:"tier"`
	Reasons         []string                  `json:"reasons"`
	AutoMergeable   bool                      `json:"auto_mergeable"`
	Conflicts       []ConflictResponse        `json:"conflicts"`
}

// CandidateListResponse represents a duplicate scan
type CandidateListResponse struct {
	Candidates []CandidateResponse `json:"candidates"`
	Total      int                 `json:"total"`
}

// MergeResponse represents the outcome of a merge
type MergeResponse struct {
	Merged      profile.ProfileResponse   `json:"merged"`
	Secondaries []profile.ProfileResponse `json:"secondaries"`
	EntryID     string                    `json:"history_entry_id"`
}
