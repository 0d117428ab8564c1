package livekit

import (
	"fmt"
	"net/http"

	"github.com/livekit/protocol/auth"
	"github.com/livekit/protocol/livekit"
	"github.com/livekit/protocol/webhook"
	"go.uber.org/zap"
)

// Event names the service reacts to
const (
	EventRoomFinished = "room_finished"
)

// Receiver verifies LiveKit webhook signatures and decodes the event
type Receiver struct {
	provider auth.KeyProvider
	logger   *zap.Logger
}

// NewReceiver creates a receiver for webhooks signed with the given API key pair
func NewReceiver(apiKey, apiSecret string, logger *zap.Logger) *Receiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Receiver{
		provider: auth.NewSimpleKeyProvider(apiKey, apiSecret),
		logger:   logger,
	}
}

// Receive reads the request body, checks the Authorization token and its
// body hash, and returns the decoded event
func (r *Receiver) Receive(req *http.Request) (*livekit.WebhookEvent, error) {
	event, err := webhook.ReceiveWebhookEvent(req, r.provider)
	if err != nil {
		return nil, fmt.Errorf("failed to verify livekit webhook: %w", err)
	}
	r.logger.Debug("LiveKit webhook received",
		zap.String("event", event.GetEvent()),
		zap.String("room", event.GetRoom().GetName()),
	)
	return event, nil
}
