// Package logging provides structured logging for Ganymede.
//
// The Logger wraps log/slog with level and format parsing driven by the
// configuration file:
//
//	logger, err := logging.New(logging.Config{
//		Level:  cfg.Logging.Level,
//		Format: cfg.Logging.Format,
//	})
//	logger.Info("server starting", "addr", addr)
//
// Components that accept a *slog.Logger directly (such as the config
// file watcher) can use logger.Slog().
package logging
