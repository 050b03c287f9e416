package config

// Config is the root configuration for Ganymede.
//
// Configuration is loaded from a YAML file via LoadConfig (or
// LoadConfigWithEnvOverrides), after which defaults are applied and the
// result is validated. A typical file looks like:
//
//	monitoring:
//	  enabled: true
//	  include_latency_histograms: true
//	  latency_buckets: [0.005, 0.025, 0.1, 0.5, 1.0, 5.0]
//	logging:
//	  level: info
//	  format: json
type Config struct {
	// Monitoring configures the gRPC server metrics.
	Monitoring MonitoringConfig `yaml:"monitoring"`

	// Logging configures structured logging.
	Logging LoggingConfig `yaml:"logging"`
}

// MonitoringConfig contains gRPC server monitoring configuration.
type MonitoringConfig struct {
	// Enabled controls whether the interceptors record metrics.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// IncludeLatencyHistograms controls whether the per-call latency
	// histogram is registered. When false, latency recording is a no-op.
	// Default: false
	IncludeLatencyHistograms bool `yaml:"include_latency_histograms"`

	// LatencyBuckets defines histogram buckets for call latency (seconds).
	// Only used when IncludeLatencyHistograms is true. When empty, the
	// Prometheus default buckets are used.
	LatencyBuckets []float64 `yaml:"latency_buckets"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format ("json", "text", "console").
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// NewDefault returns a Config populated with default values. Loading a
// YAML file on top of it only overrides the fields present in the file,
// which is how boolean fields that default to true (monitoring.enabled)
// keep their default when omitted.
func NewDefault() *Config {
	cfg := &Config{
		Monitoring: MonitoringConfig{
			Enabled: DefaultMonitoringEnabled,
		},
	}
	ApplyDefaults(cfg)
	return cfg
}
