package config

// Default values for configuration fields.
const (
	// Monitoring defaults
	DefaultMonitoringEnabled        = true
	DefaultIncludeLatencyHistograms = false

	// Logging defaults
	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"
)

// ApplyDefaults fills in default values for any configuration fields
// that were left unset. It does not override values already present.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	// Monitoring.LatencyBuckets stays nil when unset; the metrics factory
	// substitutes the Prometheus default buckets at registration time so
	// the config package does not depend on the client library.
}
