package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-voiceid/internal/adapter/repository"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
	pkgjwt "github.com/johnquangdev/meeting-voiceid/pkg/jwt"
)

// seeds a few speaker profiles and pending identification requests for local
// development, then prints an access token
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	clk := clock.New()
	now := clk.Now().UTC()
	profiles := repository.NewProfileRepository(db)
	requests := repository.NewIdentificationRepository(db, clk)

	alice := "alice@test.local"
	aliceName := "Alice"
	seedProfiles := []*entities.SpeakerProfile{
		{
			DeepgramVoiceID:          "seed-voice-alice",
			UserID:                   &alice,
			DisplayName:              &aliceName,
			Confirmed:                true,
			Confidence:               0.92,
			FirstHeard:               now.Add(-72 * time.Hour),
			LastHeard:                now.Add(-2 * time.Hour),
			MeetingsCount:            6,
			TotalSpeakingTimeSeconds: 1840,
		},
		entities.NewSpeakerProfile("seed-voice-unknown-1", now.Add(-3*time.Hour)),
		entities.NewSpeakerProfile("seed-voice-unknown-2", now.Add(-time.Hour)),
	}
	if err := profiles.SaveAll(ctx, seedProfiles); err != nil {
		logger.Fatal("Failed to seed profiles", zap.Error(err))
	}

	for i, voiceID := range []string{"seed-voice-unknown-1", "seed-voice-unknown-2"} {
		req := &entities.IdentificationRequest{
			ID:                uuid.New(),
			VoiceID:           voiceID,
			SpeakerLabel:      fmt.Sprintf("Speaker %c", 'A'+i),
			MeetingID:         "seed-meeting",
			MeetingTitle:      "Weekly sync",
			MeetingDate:       now.Add(-time.Hour),
			SampleTranscripts: []string{"Let's get started with the roadmap."},
			Status:            entities.RequestPending,
		}
		if err := requests.CreateRequest(ctx, req); err != nil {
			logger.Fatal("Failed to seed request", zap.String("voice_id", voiceID), zap.Error(err))
		}
	}

	jwtManager := pkgjwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)
	token, err := jwtManager.GenerateAccessToken(pkgjwt.Identity{
		UserID: uuid.New(),
		Email:  alice,
		Name:   aliceName,
		Role:   "member",
	})
	if err != nil {
		logger.Fatal("Failed to generate token", zap.Error(err))
	}

	logger.Info("Seed data created", zap.Int("profiles", len(seedProfiles)), zap.Int("requests", 2))
	fmt.Printf("Authorization: Bearer %s\n", token)
}
