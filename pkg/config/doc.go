// Package config provides YAML-based configuration for Ganymede.
//
// # Loading
//
// Configuration is loaded from a YAML file:
//
//	cfg, err := config.LoadConfig("ganymede.yaml")
//
// or with environment variable overrides applied on top:
//
//	cfg, err := config.LoadConfigWithEnvOverrides("ganymede.yaml")
//
// Environment variables follow the GANYMEDE_SECTION_FIELD convention,
// e.g. GANYMEDE_MONITORING_ENABLED=false or GANYMEDE_LOGGING_LEVEL=debug.
//
// # Defaults and validation
//
// Both loaders apply defaults (ApplyDefaults) and validate the result
// (Validate). Validation errors are collected into a ValidationError
// listing every offending field rather than failing on the first.
//
// # Hot reload
//
// FileWatcher watches the configuration file and invokes a callback with
// each successfully reloaded configuration. Only runtime-toggleable
// settings take effect on reload; metric registration is performed once
// at startup.
package config
