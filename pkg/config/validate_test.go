package config

import (
	"errors"
	"strings"
	"testing"
)

// TestValidate tests validation of individual fields.
func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{
			name:   "valid defaults",
			mutate: func(cfg *Config) {},
		},
		{
			name: "valid buckets",
			mutate: func(cfg *Config) {
				cfg.Monitoring.LatencyBuckets = []float64{0.01, 0.1, 1.0, 10.0}
			},
		},
		{
			name: "non-positive bucket",
			mutate: func(cfg *Config) {
				cfg.Monitoring.LatencyBuckets = []float64{0, 0.1}
			},
			wantField: "monitoring.latency_buckets",
		},
		{
			name: "non-increasing buckets",
			mutate: func(cfg *Config) {
				cfg.Monitoring.LatencyBuckets = []float64{0.1, 0.1}
			},
			wantField: "monitoring.latency_buckets",
		},
		{
			name: "unknown log level",
			mutate: func(cfg *Config) {
				cfg.Logging.Level = "verbose"
			},
			wantField: "logging.level",
		},
		{
			name: "unknown log format",
			mutate: func(cfg *Config) {
				cfg.Logging.Format = "logfmt"
			},
			wantField: "logging.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Expected valid config, got %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("Expected error mentioning %q, got %q", tt.wantField, err.Error())
			}
		})
	}
}

// TestValidate_CollectsAllErrors tests that all errors are reported together.
func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := NewDefault()
	cfg.Logging.Level = "loud"
	cfg.Logging.Format = "xml"
	cfg.Monitoring.LatencyBuckets = []float64{5, 1}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}

	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	if len(verr.Errors) != 3 {
		t.Errorf("Expected 3 field errors, got %d: %v", len(verr.Errors), verr)
	}
}
