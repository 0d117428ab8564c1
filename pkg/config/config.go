package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Assembly AssemblyAIConfig
	LiveKit  LiveKitConfig
	Engine   EngineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
	Enabled   bool
}

// JWTConfig holds JWT configuration. Tokens are issued by the auth service;
// this service only verifies them.
type JWTConfig struct {
	AccessSecret string
	AccessExpiry time.Duration
	Issuer       string
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
	UseSSL          bool
	SampleURLExpiry time.Duration
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey string
}

// LiveKitConfig holds the credentials used to verify LiveKit webhooks
type LiveKitConfig struct {
	APIKey    string
	APISecret string
}

// EngineConfig groups the decision engine settings. Loaded with envconfig
// under the VOICEID prefix, e.g. VOICEID_ALERT_MIN_CONFIDENCE.
type EngineConfig struct {
	Alert         AlertConfig
	Matching      MatchingConfig
	Workflow      WorkflowConfig
	SchedulerTick time.Duration `envconfig:"SCHEDULER_TICK" default:"100ms" validate:"gt=0"`
}

// AlertConfig drives the alert filter, batcher and scheduler.
type AlertConfig struct {
	MinimumDurationSeconds float64       `envconfig:"MIN_DURATION_SECONDS" default:"5" validate:"gte=0"`
	MinimumConfidence      float64       `envconfig:"MIN_CONFIDENCE" default:"0.6" validate:"gte=0,lte=1"`
	MinimumMessages        int           `envconfig:"MIN_MESSAGES" default:"2" validate:"gte=0"`
	AlertDelay             time.Duration `envconfig:"DELAY" default:"2s" validate:"gte=0"`
	AutoHideDelay          time.Duration `envconfig:"AUTO_HIDE_DELAY" default:"0s" validate:"gte=0"`
	MaxSimultaneousAlerts  int           `envconfig:"MAX_SIMULTANEOUS" default:"3" validate:"gte=1"`
	BatchSimilarAlerts     bool          `envconfig:"BATCH_SIMILAR" default:"true"`
	BatchTimeWindow        time.Duration `envconfig:"BATCH_WINDOW" default:"30s" validate:"gte=0"`
	SuppressRepeatedAlerts bool          `envconfig:"SUPPRESS_REPEATED" default:"true"`
	SuppressionDuration    time.Duration `envconfig:"SUPPRESSION_DURATION" default:"5m" validate:"gte=0"`
	Position               string        `envconfig:"POSITION" default:"top-right" validate:"oneof=top-left top-right bottom-left bottom-right"`
	Theme                  string        `envconfig:"THEME" default:"auto" validate:"oneof=light dark auto"`
}

// MatchingConfig holds the duplicate comparison thresholds.
type MatchingConfig struct {
	HighTierThreshold    float64 `envconfig:"HIGH_TIER" default:"0.8" validate:"gte=0,lte=1"`
	MediumTierThreshold  float64 `envconfig:"MEDIUM_TIER" default:"0.6" validate:"gte=0,lte=1,ltefield=HighTierThreshold"`
	MergeThreshold       float64 `envconfig:"MERGE_THRESHOLD" default:"0.85" validate:"gte=0,lte=1"`
	ScanMinScore         float64 `envconfig:"SCAN_MIN_SCORE" default:"0.5" validate:"gte=0,lte=1"`
	CaptureMergeSnapshot bool    `envconfig:"CAPTURE_MERGE_SNAPSHOT" default:"true"`
}

// WorkflowConfig holds the identification workflow settings.
type WorkflowConfig struct {
	VoiceComparisonEnabled  bool    `envconfig:"VOICE_COMPARISON" default:"true"`
	AutoSuggestionThreshold float64 `envconfig:"AUTO_SUGGESTION_THRESHOLD" default:"0.8" validate:"gte=0,lte=1"`
	DefaultManualConfidence float64 `envconfig:"DEFAULT_MANUAL_CONFIDENCE" default:"0.9" validate:"gte=0,lte=1"`
	MaxSuggestions          int     `envconfig:"MAX_SUGGESTIONS" default:"3" validate:"gte=1"`
	// SessionTTL drops sessions left idle this long
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"1h" validate:"gt=0"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "meeting_voiceid"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:      getEnv("REDIS_HOST", "localhost"),
			Port:      getEnv("REDIS_PORT", "6379"),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvAsInt("REDIS_DB", 0),
			KeyPrefix: getEnv("REDIS_KEY_PREFIX", "voiceid"),
			Enabled:   getEnvAsBool("REDIS_ENABLED", true),
		},
		JWT: JWTConfig{
			AccessSecret: getEnv("JWT_ACCESS_SECRET", "your-access-secret-change-in-production"),
			AccessExpiry: getEnvAsDuration("JWT_ACCESS_EXPIRY", "15m"),
			Issuer:       getEnv("JWT_ISSUER", "meeting-assistant"),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "voice-samples"),
			PublicURL:       getEnv("STORAGE_PUBLIC_URL", ""),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			SampleURLExpiry: getEnvAsDuration("STORAGE_SAMPLE_URL_EXPIRY", "168h"),
		},
		Assembly: AssemblyAIConfig{
			APIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		LiveKit: LiveKitConfig{
			APIKey:    getEnv("LIVEKIT_API_KEY", ""),
			APISecret: getEnv("LIVEKIT_API_SECRET", ""),
		},
	}

	if err := envconfig.Process("VOICEID", &config.Engine); err != nil {
		return nil, fmt.Errorf("failed to load engine config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Default returns the engine defaults without reading the environment.
func Default() EngineConfig {
	return EngineConfig{
		Alert: AlertConfig{
			MinimumDurationSeconds: 5,
			MinimumConfidence:      0.6,
			MinimumMessages:        2,
			AlertDelay:             2 * time.Second,
			MaxSimultaneousAlerts:  3,
			BatchSimilarAlerts:     true,
			BatchTimeWindow:        30 * time.Second,
			SuppressRepeatedAlerts: true,
			SuppressionDuration:    5 * time.Minute,
			Position:               "top-right",
			Theme:                  "auto",
		},
		Matching: MatchingConfig{
			HighTierThreshold:    0.8,
			MediumTierThreshold:  0.6,
			MergeThreshold:       0.85,
			ScanMinScore:         0.5,
			CaptureMergeSnapshot: true,
		},
		Workflow: WorkflowConfig{
			VoiceComparisonEnabled:  true,
			AutoSuggestionThreshold: 0.8,
			DefaultManualConfidence: 0.9,
			MaxSuggestions:          3,
			SessionTTL:              time.Hour,
		},
		SchedulerTick: 100 * time.Millisecond,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Environment == "production" && strings.HasPrefix(c.JWT.AccessSecret, "your-") {
		return fmt.Errorf("JWT_ACCESS_SECRET must be set in production")
	}
	return c.Engine.Validate()
}

// Validate checks the engine settings against their struct tags.
func (e *EngineConfig) Validate() error {
	if err := validator.New().Struct(e); err != nil {
		return fmt.Errorf("invalid engine config: %w", err)
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
