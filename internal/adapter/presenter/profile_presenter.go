package presenter

import (
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/profile"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// ToProfileResponse converts a SpeakerProfile entity to its DTO. Samples
// are only included when withSamples is set.
func ToProfileResponse(p *entities.SpeakerProfile, withSamples bool) profile.ProfileResponse {
	resp := profile.ProfileResponse{
		VoiceID:                  p.DeepgramVoiceID,
		UserID:                   p.UserID,
		DisplayName:              p.DisplayName,
		Confirmed:                p.Confirmed,
		Confidence:               p.Confidence,
		FirstHeard:               p.FirstHeard,
		LastHeard:                p.LastHeard,
		MeetingsCount:            p.MeetingsCount,
		TotalSpeakingTimeSeconds: p.TotalSpeakingTimeSeconds,
		SampleCount:              len(p.AudioSamples),
		MergedInto:               p.MergedInto,
	}
	if withSamples {
		resp.Samples = make([]profile.AudioSampleResponse, len(p.AudioSamples))
		for i, s := range p.AudioSamples {
			resp.Samples[i] = ToAudioSampleResponse(s)
		}
	}
	return resp
}

// ToProfileResponses converts a list of profiles without samples
func ToProfileResponses(ps []*entities.SpeakerProfile) []profile.ProfileResponse {
	out := make([]profile.ProfileResponse, len(ps))
	for i, p := range ps {
		out[i] = ToProfileResponse(p, false)
	}
	return out
}

// ToAudioSampleResponse converts an audio sample to its DTO
func ToAudioSampleResponse(s entities.AudioSample) profile.AudioSampleResponse {
	return profile.AudioSampleResponse{
		URL:             s.URL,
		Transcript:      s.Transcript,
		Quality:         s.Quality,
		DurationSeconds: s.DurationSeconds,
		Timestamp:       s.Timestamp,
		MeetingID:       s.MeetingID,
	}
}
