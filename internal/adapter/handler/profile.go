package handler

import (
	"path/filepath"

	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/errors"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/profile"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// maxSampleBytes bounds a single uploaded audio sample
const maxSampleBytes = 20 << 20

// Profile handles speaker profile reads and audio sample uploads
type Profile struct {
	profiles ProfileReader
	samples  SampleRecorder
	storage  SampleStorage
	objectFn func(voiceID, fileName string) string
	clock    clock.Clock
	logger   *zap.Logger
}

// NewProfileHandler creates a new profile handler. objectFn names the
// stored object for a voice id and uploaded file name.
func NewProfileHandler(
	profiles ProfileReader,
	samples SampleRecorder,
	storage SampleStorage,
	objectFn func(voiceID, fileName string) string,
	clk clock.Clock,
	logger *zap.Logger,
) *Profile {
	if clk == nil {
		clk = clock.New()
	}
	return &Profile{
		profiles: profiles,
		samples:  samples,
		storage:  storage,
		objectFn: objectFn,
		clock:    clk,
		logger:   logger,
	}
}

// Get handles GET /profiles/:voice_id
// @Summary      Get a speaker profile
// @Tags         Profiles
// @Produce      json
// @Security     BearerAuth
// @Param        voice_id  path      string  true  "Voice id"
// @Success      200       {object}  common.SuccessResponse{data=profile.ProfileResponse}
// @Failure      404       {object}  common.ErrorResponse
// @Router       /profiles/{voice_id} [get]
func (h *Profile) Get(c echo.Context) error {
	p, err := h.profiles.FindByVoiceID(c.Request().Context(), c.Param("voice_id"))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToProfileResponse(p, true))
}

// UploadSample handles POST /profiles/:voice_id/samples
// @Summary      Upload an audio sample
// @Description  Stores the audio file in object storage and appends it to the profile
// @Tags         Profiles
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        voice_id          path      string  true   "Voice id"
// @Param        file              formData  file    true   "Audio file"
// @Param        transcript        formData  string  false  "What was said in the sample"
// @Param        quality           formData  number  false  "Quality 0..1"
// @Param        duration_seconds  formData  number  true   "Sample length in seconds"
// @Param        meeting_id        formData  string  false  "Meeting the sample was taken from"
// @Success      201               {object}  common.SuccessResponse{data=profile.AudioSampleResponse}
// @Failure      400               {object}  common.ErrorResponse
// @Failure      500               {object}  common.ErrorResponse  "Storage failed"
// @Failure      502               {object}  common.ErrorResponse  "Sample stored but not recorded"
// @Router       /profiles/{voice_id}/samples [post]
func (h *Profile) UploadSample(c echo.Context) error {
	var req profile.UploadSampleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("file is required"))
	}
	if file.Size <= 0 || file.Size > maxSampleBytes {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("file must be between 1 byte and 20MB"))
	}

	src, err := file.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("file could not be read"))
	}
	defer src.Close()

	contentType := file.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx := c.Request().Context()
	objectName := h.objectFn(req.VoiceID, filepath.Base(file.Filename))
	url, err := h.storage.UploadSample(ctx, objectName, src, file.Size, contentType)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("upload sample", err))
	}

	sample := entities.AudioSample{
		URL:             url,
		Transcript:      req.Transcript,
		Quality:         req.Quality,
		DurationSeconds: req.DurationSeconds,
		Timestamp:       h.clock.Now(),
		MeetingID:       req.MeetingID,
	}
	if err := h.samples.AddAudioSample(ctx, req.VoiceID, sample); err != nil {
		if h.logger != nil {
			h.logger.Error("Sample uploaded but not recorded",
				zap.String("voice_id", req.VoiceID),
				zap.String("object", objectName),
				zap.Error(err),
			)
		}
		return HandleError(h.logger, c, errors.ErrPersistenceFailure(err))
	}

	return HandleCreated(h.logger, c, presenter.ToAudioSampleResponse(sample))
}
