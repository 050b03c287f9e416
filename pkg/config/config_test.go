package config

import "testing"

// TestNewDefault tests that default construction fills in every default.
func TestNewDefault(t *testing.T) {
	cfg := NewDefault()

	if !cfg.Monitoring.Enabled {
		t.Error("Expected monitoring enabled by default")
	}
	if cfg.Monitoring.IncludeLatencyHistograms {
		t.Error("Expected latency histograms disabled by default")
	}
	if cfg.Monitoring.LatencyBuckets != nil {
		t.Errorf("Expected nil latency buckets by default, got %v", cfg.Monitoring.LatencyBuckets)
	}
	if cfg.Logging.Level != DefaultLoggingLevel {
		t.Errorf("Expected default level %q, got %q", DefaultLoggingLevel, cfg.Logging.Level)
	}
	if cfg.Logging.Format != DefaultLoggingFormat {
		t.Errorf("Expected default format %q, got %q", DefaultLoggingFormat, cfg.Logging.Format)
	}

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected default config to validate, got %v", err)
	}
}

// TestApplyDefaults tests that existing values are not overridden.
func TestApplyDefaults(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:  "debug",
			Format: "text",
		},
	}

	ApplyDefaults(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected level to stay %q, got %q", "debug", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected format to stay %q, got %q", "text", cfg.Logging.Format)
	}
}
