package handler

import (
	stdErrors "errors"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/errors"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/dto/alert"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
)

// Alert handles detection ingest and alert lifecycle requests
type Alert struct {
	engine AlertEngine
	source DetectionSource
	clock  clock.Clock
	logger *zap.Logger
}

// NewAlertHandler creates a new alert handler. source may be nil when no
// transcript provider is configured.
func NewAlertHandler(engine AlertEngine, source DetectionSource, clk clock.Clock, logger *zap.Logger) *Alert {
	if clk == nil {
		clk = clock.New()
	}
	return &Alert{
		engine: engine,
		source: source,
		clock:  clk,
		logger: logger,
	}
}

// Ingest handles POST /detections
// @Summary      Ingest a speaker detection
// @Description  Passes one detection through the alert filter and batcher. qualified=false means the detection was stored but raised no alert.
// @Tags         Alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      alert.DetectionRequest  true  "Speaker detection"
// @Success      200      {object}  common.SuccessResponse{data=alert.DetectionResultResponse}
// @Failure      400      {object}  common.ErrorResponse
// @Failure      401      {object}  common.ErrorResponse
// @Router       /detections [post]
func (h *Alert) Ingest(c echo.Context) error {
	var req alert.DetectionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	batch, err := h.engine.Ingest(c.Request().Context(), presenter.ToDetection(&req, h.clock.Now()))
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	resp := alert.DetectionResultResponse{Qualified: batch != nil}
	if batch != nil {
		b := presenter.ToBatchResponse(*batch)
		resp.Batch = &b
	}
	return HandleSuccess(h.logger, c, resp)
}

// List handles GET /alerts
// @Summary      List active alerts
// @Description  Returns pending, delayed and visible alert batches with the display settings
// @Tags         Alerts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.SuccessResponse{data=alert.AlertListResponse}
// @Failure      401  {object}  common.ErrorResponse
// @Router       /alerts [get]
func (h *Alert) List(c echo.Context) error {
	cfg := h.engine.Config()
	return HandleSuccess(h.logger, c, alert.AlertListResponse{
		Alerts:   presenter.ToBatchResponses(h.engine.Active()),
		Position: cfg.Position,
		Theme:    cfg.Theme,
	})
}

// Dismiss handles POST /alerts/:key/dismiss
// @Summary      Dismiss an alert
// @Description  Dismisses every speaker of the batch. duration_ms=0 dismisses until restart.
// @Tags         Alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key      path      string                true  "Batch key"
// @Param        request  body      alert.DismissRequest  false "Dismiss duration"
// @Success      200      {object}  common.SuccessResponse
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse  "Unknown batch key"
// @Router       /alerts/{key}/dismiss [post]
func (h *Alert) Dismiss(c echo.Context) error {
	var req alert.DismissRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	key := c.Param("key")
	if err := h.engine.Dismiss(c.Request().Context(), key, time.Duration(req.DurationMs)*time.Millisecond); err != nil {
		return HandleError(h.logger, c, withBatchKey(err, key))
	}
	return HandleSuccess(h.logger, c, map[string]string{"key": key, "state": string(entities.AlertDismissed)})
}

// Defer handles POST /alerts/:key/defer
// @Summary      Ask again later
// @Description  Defers every speaker of the batch for the given number of minutes
// @Tags         Alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key      path      string              true  "Batch key"
// @Param        request  body      alert.DeferRequest  true  "Deferral"
// @Success      200      {object}  common.SuccessResponse
// @Failure      400      {object}  common.ErrorResponse
// @Failure      404      {object}  common.ErrorResponse  "Unknown batch key"
// @Router       /alerts/{key}/defer [post]
func (h *Alert) Defer(c echo.Context) error {
	var req alert.DeferRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	key := c.Param("key")
	if err := h.engine.Defer(c.Request().Context(), key, req.Minutes); err != nil {
		return HandleError(h.logger, c, withBatchKey(err, key))
	}
	return HandleSuccess(h.logger, c, map[string]string{"key": key, "state": string(entities.AlertDeferred)})
}

// IngestTranscript handles POST /ingest/assemblyai/:transcript_id
// @Summary      Ingest an AssemblyAI transcript
// @Description  Aggregates the diarized utterances per speaker and feeds each detection to the alert engine
// @Tags         Alerts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        transcript_id  path      string                         true   "AssemblyAI transcript id"
// @Param        request        body      alert.IngestTranscriptRequest  false  "Meeting the transcript belongs to"
// @Success      200            {object}  common.SuccessResponse{data=alert.IngestTranscriptResponse}
// @Failure      409            {object}  common.ErrorResponse  "Transcript still processing"
// @Failure      502            {object}  common.ErrorResponse  "AssemblyAI unavailable"
// @Router       /ingest/assemblyai/{transcript_id} [post]
func (h *Alert) IngestTranscript(c echo.Context) error {
	if h.source == nil {
		return HandleError(h.logger, c, errors.ErrExternalAPIFailed("assemblyai", stdErrors.New("no transcript source configured")))
	}

	var req alert.IngestTranscriptRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	ctx := c.Request().Context()
	detections, err := h.source.Fetch(ctx, req.TranscriptID, req.MeetingID)
	if err != nil {
		if !stdErrors.Is(err, entities.ErrSourceNotReady) {
			err = errors.ErrExternalAPIFailed("assemblyai", err)
		}
		return HandleError(h.logger, c, err)
	}

	resp := alert.IngestTranscriptResponse{
		TranscriptID: req.TranscriptID,
		Detections:   len(detections),
		Batches:      []alert.BatchResponse{},
	}
	index := make(map[string]int)
	for _, d := range detections {
		batch, err := h.engine.Ingest(ctx, d)
		if err != nil {
			return HandleError(h.logger, c, err)
		}
		if batch == nil {
			continue
		}
		resp.Qualified++
		// later members update an earlier batch in place
		if i, ok := index[batch.Key]; ok {
			resp.Batches[i] = presenter.ToBatchResponse(*batch)
			continue
		}
		index[batch.Key] = len(resp.Batches)
		resp.Batches = append(resp.Batches, presenter.ToBatchResponse(*batch))
	}

	if h.logger != nil {
		h.logger.Info("Transcript ingested",
			zap.String("transcript_id", req.TranscriptID),
			zap.Int("detections", resp.Detections),
			zap.Int("qualified", resp.Qualified),
		)
	}
	return HandleSuccess(h.logger, c, resp)
}

// withBatchKey attaches the key to unknown batch errors
func withBatchKey(err error, key string) error {
	if stdErrors.Is(err, entities.ErrUnknownBatchKey) {
		return errors.ErrUnknownBatchKey(err).WithDetail("batch_key", key)
	}
	return err
}
