package profile

// UploadSampleRequest represents the multipart fields sent with an audio sample
type UploadSampleRequest struct {
	VoiceID         string  `param:"voice_id" validate:"required,max=255"`
	Transcript      string  `form:"transcript" validate:"max=5000"`
	Quality         float64 `form:"quality" validate:"gte=0,lte=1"`
	DurationSeconds float64 `form:"duration_seconds" validate:"gt=0"`
	MeetingID       string  `form:"meeting_id" validate:"max=255"`
}
