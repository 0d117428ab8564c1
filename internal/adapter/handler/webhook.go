package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/errors"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/presenter"
)

const eventRoomFinished = "room_finished"

// WebhookHandler handles LiveKit webhook events
type WebhookHandler struct {
	receiver   WebhookReceiver
	duplicates DuplicateService
	logger     *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(receiver WebhookReceiver, duplicates DuplicateService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		receiver:   receiver,
		duplicates: duplicates,
		logger:     logger,
	}
}

// HandleLiveKitWebhook verifies the webhook signature. A finished meeting
// triggers a duplicate scan over the profiles it may have created.
// @Summary      LiveKit Webhook
// @Description  Receives signed webhook events from LiveKit. room_finished runs a duplicate profile scan.
// @Tags         Webhooks
// @Accept       json
// @Produce      json
// @Success      200  {object}  common.SuccessResponse
// @Failure      401  {object}  common.ErrorResponse
// @Router       /webhooks/livekit [post]
func (h *WebhookHandler) HandleLiveKitWebhook(c echo.Context) error {
	event, err := h.receiver.Receive(c.Request())
	if err != nil {
		appErr := errors.ErrInvalidToken()
		appErr.Raw = err
		return HandleError(h.logger, c, appErr)
	}

	if event.GetEvent() != eventRoomFinished {
		return HandleSuccess(h.logger, c, map[string]string{"event": event.GetEvent(), "status": "ignored"})
	}

	candidates, err := h.duplicates.Scan(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if h.logger != nil {
		h.logger.Info("Duplicate scan after meeting",
			zap.String("room", event.GetRoom().GetName()),
			zap.Int("candidates", len(candidates)),
		)
	}
	return HandleSuccess(h.logger, c, presenter.ToCandidateListResponse(candidates))
}
