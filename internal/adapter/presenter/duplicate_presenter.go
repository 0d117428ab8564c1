package presenter

import (
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/duplicate"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	dupUsecase "github.com/johnquangdev/meeting-voiceid/internal/usecase/duplicate"
)

// ToCandidateResponse converts a duplicate candidate to its DTO
func ToCandidateResponse(c *entities.DuplicateCandidate) duplicate.CandidateResponse {
	conflicts := make([]duplicate.ConflictResponse, len(c.Conflicts))
	for i, cf := range c.Conflicts {
		conflicts[i] = duplicate.ConflictResponse{
			Field:            string(cf.Field),
			SecondaryVoiceID: cf.SecondaryVoiceID,
			PrimaryValue:     cf.PrimaryValue,
			SecondaryValue:   cf.SecondaryValue,
			Resolution:       string(cf.Resolution),
			CustomValue:      cf.CustomValue,
		}
	}
	reasons := c.Reasons
	if reasons == nil {
		reasons = []string{}
	}
	return duplicate.CandidateResponse{
		Profiles:        ToProfileResponses(c.Profiles),
		SimilarityScore: c.SimilarityScore,
		Tier:            string(c.Tier),
		Reasons:         reasons,
		AutoMergeable:   c.AutoMergeable,
		Conflicts:       conflicts,
	}
}

// ToCandidateListResponse converts a scan result
func ToCandidateListResponse(cs []entities.DuplicateCandidate) duplicate.CandidateListResponse {
	out := make([]duplicate.CandidateResponse, len(cs))
	for i := range cs {
		out[i] = ToCandidateResponse(&cs[i])
	}
	return duplicate.CandidateListResponse{Candidates: out, Total: len(out)}
}

// ToResolutions converts requested resolutions to domain conflicts
func ToResolutions(rs []duplicate.ConflictResolution) []entities.MergeConflict {
	out := make([]entities.MergeConflict, len(rs))
	for i, r := range rs {
		out[i] = entities.MergeConflict{
			Field:            entities.ConflictField(r.Field),
			SecondaryVoiceID: r.SecondaryVoiceID,
			Resolution:       entities.Resolution(r.Resolution),
			CustomValue:      r.CustomValue,
		}
	}
	return out
}

// ToMergeResponse converts a merge result to its DTO
func ToMergeResponse(r *dupUsecase.MergeResult) duplicate.MergeResponse {
	return duplicate.MergeResponse{
		Merged:      ToProfileResponse(r.Merged, false),
		Secondaries: ToProfileResponses(r.Secondaries),
		EntryID:     r.Entry.ID.String(),
	}
}
