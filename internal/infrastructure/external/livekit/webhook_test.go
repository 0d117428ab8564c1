package livekit

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/livekit/protocol/auth"
)

const (
	testKey    = "APItest"
	testSecret = "secret-secret-secret-secret-secret"
)

func signedRequest(t *testing.T, secret string, body []byte) *http.Request {
	t.Helper()
	sum := sha256.Sum256(body)
	token, err := auth.NewAccessToken(testKey, secret).
		SetValidFor(time.Minute).
		SetSha256(base64.StdEncoding.EncodeToString(sum[:])).
		ToJWT()
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/livekit", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/webhook+json")
	req.Header.Set("Authorization", token)
	return req
}

func TestReceiveRoomFinished(t *testing.T) {
	body := []byte(`{"event":"room_finished","room":{"name":"weekly-sync"}}`)
	r := NewReceiver(testKey, testSecret, nil)

	event, err := r.Receive(signedRequest(t, testSecret, body))
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if event.GetEvent() != EventRoomFinished || event.GetRoom().GetName() != "weekly-sync" {
		t.Fatalf("event = %v", event)
	}
}

func TestReceiveRejectsWrongSecret(t *testing.T) {
	body := []byte(`{"event":"room_finished"}`)
	r := NewReceiver(testKey, testSecret, nil)

	if _, err := r.Receive(signedRequest(t, "another-secret-another-secret-xx", body)); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestReceiveRejectsMissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/livekit", bytes.NewReader([]byte(`{}`)))
	if _, err := NewReceiver(testKey, testSecret, nil).Receive(req); err == nil {
		t.Fatal("expected error without authorization")
	}
}
