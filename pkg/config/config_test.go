package config

import (
	"testing"
	"time"

	"github.com/kelseyhightower/envconfig"
)

func TestDefaultEngineConfigIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Matching.MergeThreshold != 0.85 {
		t.Fatalf("unexpected merge threshold %v", cfg.Matching.MergeThreshold)
	}
}

func TestEngineConfigFromEnv(t *testing.T) {
	t.Setenv("VOICEID_ALERT_MIN_CONFIDENCE", "0.75")
	t.Setenv("VOICEID_ALERT_DELAY", "500ms")
	t.Setenv("VOICEID_ALERT_BATCH_SIMILAR", "false")
	t.Setenv("VOICEID_MATCHING_MERGE_THRESHOLD", "0.9")
	t.Setenv("VOICEID_WORKFLOW_VOICE_COMPARISON", "false")

	var cfg EngineConfig
	if err := envconfig.Process("VOICEID", &cfg); err != nil {
		t.Fatalf("process: %v", err)
	}
	if cfg.Alert.MinimumConfidence != 0.75 {
		t.Fatalf("min confidence = %v", cfg.Alert.MinimumConfidence)
	}
	if cfg.Alert.AlertDelay != 500*time.Millisecond {
		t.Fatalf("alert delay = %v", cfg.Alert.AlertDelay)
	}
	if cfg.Alert.BatchSimilarAlerts {
		t.Fatalf("expected batching disabled")
	}
	if cfg.Matching.MergeThreshold != 0.9 {
		t.Fatalf("merge threshold = %v", cfg.Matching.MergeThreshold)
	}
	if cfg.Workflow.VoiceComparisonEnabled {
		t.Fatalf("expected voice comparison disabled")
	}
	// untouched values keep their defaults
	if cfg.Alert.MaxSimultaneousAlerts != 3 {
		t.Fatalf("max simultaneous = %d", cfg.Alert.MaxSimultaneousAlerts)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestEngineConfigRejectsInvertedTiers(t *testing.T) {
	cfg := Default()
	cfg.Matching.MediumTierThreshold = 0.9
	cfg.Matching.HighTierThreshold = 0.7
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for medium > high")
	}
}

func TestEngineConfigRejectsZeroVisibleAlerts(t *testing.T) {
	cfg := Default()
	cfg.Alert.MaxSimultaneousAlerts = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error")
	}
}
