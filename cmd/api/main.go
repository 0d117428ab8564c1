package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/meeting-voiceid/docs"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/handler"
	"github.com/johnquangdev/meeting-voiceid/internal/adapter/repository"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/entities"
	"github.com/johnquangdev/meeting-voiceid/internal/domain/repositories"
	"github.com/johnquangdev/meeting-voiceid/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-voiceid/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-voiceid/internal/infrastructure/external/assemblyai"
	"github.com/johnquangdev/meeting-voiceid/internal/infrastructure/external/livekit"
	httpmw "github.com/johnquangdev/meeting-voiceid/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-voiceid/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-voiceid/internal/usecase/alert"
	"github.com/johnquangdev/meeting-voiceid/internal/usecase/duplicate"
	"github.com/johnquangdev/meeting-voiceid/internal/usecase/history"
	"github.com/johnquangdev/meeting-voiceid/internal/usecase/workflow"
	"github.com/johnquangdev/meeting-voiceid/pkg/config"
	"github.com/johnquangdev/meeting-voiceid/pkg/jwt"
	"github.com/johnquangdev/meeting-voiceid/pkg/keylock"
	pkgvalidator "github.com/johnquangdev/meeting-voiceid/pkg/validator"
)

// @title           Meeting Voice ID API
// @version         1.0
// @description     Speaker identification decisions for meeting transcripts

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.New()

	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	logger.Info("Connecting to database")
	db, err := database.NewPostgresDB(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		if _, err := database.RunMigrations(db, database.MigrationsDir, migrate.Up, logger); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	suppressions, closeStore := newSuppressionStore(ctx, cfg, clk, logger)
	defer closeStore()

	logger.Info("Connecting to object storage", zap.String("endpoint", cfg.Storage.Endpoint))
	samples, err := storage.NewMinIOClient(ctx, &cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to connect to object storage", zap.Error(err))
	}

	// one locker for every component that writes profiles
	locks := keylock.New()

	profileRepo := repository.NewProfileRepository(db)
	identStore := workflow.NewLockedStore(repository.NewIdentificationRepository(db, clk), locks)
	historyRepo := repository.NewHistoryRepository(db)

	historyService := history.NewService(historyRepo, profileRepo, locks, clk, logger)
	if err := historyService.Load(ctx); err != nil {
		logger.Fatal("Failed to load history", zap.Error(err))
	}

	scorer := duplicate.NewRuleBasedScorer()
	duplicateService := duplicate.NewService(profileRepo, historyService, scorer, locks, cfg.Engine.Matching, clk, logger)
	matcher := workflow.NewMatcher(profileRepo, scorer, cfg.Engine.Workflow.MaxSuggestions)
	workflowService := workflow.NewService(identStore, profileRepo, matcher, historyService, cfg.Engine.Workflow, clk, logger)

	engine := alert.NewEngine(cfg.Engine.Alert,
		alert.WithClock(clk),
		alert.WithStore(suppressions),
		alert.WithLogger(logger),
		alert.WithTickInterval(cfg.Engine.SchedulerTick),
	)
	engine.Subscribe(func(ev entities.AlertEvent) {
		logger.Debug("Alert event",
			zap.String("type", string(ev.Type)),
			zap.String("key", ev.Batch.Key),
			zap.String("state", string(ev.Batch.State)),
		)
	})
	if err := engine.Restore(ctx); err != nil {
		logger.Warn("Failed to restore alert suppressions", zap.Error(err))
	}
	go func() {
		if err := engine.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("Alert scheduler stopped", zap.Error(err))
		}
	}()

	var source handler.DetectionSource
	if cfg.Assembly.APIKey != "" {
		source = assemblyai.NewSource(cfg.Assembly.APIKey, clk, logger)
	} else {
		logger.Warn("ASSEMBLYAI_API_KEY not set; transcript ingest disabled")
	}

	var webhookHandler *handler.WebhookHandler
	if cfg.LiveKit.APIKey != "" && cfg.LiveKit.APISecret != "" {
		receiver := livekit.NewReceiver(cfg.LiveKit.APIKey, cfg.LiveKit.APISecret, logger)
		webhookHandler = handler.NewWebhookHandler(receiver, duplicateService, logger)
	} else {
		logger.Warn("LiveKit credentials not set; webhook disabled")
	}

	objectName := func(voiceID, fileName string) string {
		return storage.SampleObjectName(voiceID, fileName, clk.Now())
	}

	jwtManager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry, cfg.JWT.Issuer)

	router := handler.NewRouter(cfg, httpmw.EchoAuth(jwtManager), handler.Handlers{
		Alert:     handler.NewAlertHandler(engine, source, clk, logger),
		Duplicate: handler.NewDuplicateHandler(duplicateService, logger),
		Profile:   handler.NewProfileHandler(profileRepo, identStore, samples, objectName, clk, logger),
		Workflow:  handler.NewWorkflowHandler(workflowService, logger),
		History:   handler.NewHistoryHandler(historyService, logger),
		Webhook:   webhookHandler,
	})
	router.Setup(e)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	logger.Info("Server stopped gracefully")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// newSuppressionStore returns the redis store, or the in-memory store when
// redis is disabled
func newSuppressionStore(ctx context.Context, cfg *config.Config, clk clock.Clock, logger *zap.Logger) (repositories.SuppressionStore, func()) {
	ttl := cfg.Engine.Alert.SuppressionDuration
	if !cfg.Redis.Enabled {
		logger.Warn("Redis disabled; alert suppressions are kept in memory")
		return cache.NewMemorySuppressionStore(cache.NewMemoryStore(clk), ttl), func() {}
	}

	logger.Info("Connecting to Redis", zap.String("addr", cfg.GetRedisAddr()))
	client, err := cache.NewRedisClient(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	store := cache.NewRedisSuppressionStore(client, cfg.Redis.KeyPrefix, ttl, clk, logger)
	return store, func() { _ = client.Close() }
}
