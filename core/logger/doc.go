// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and a helper for correlating all log output of
// a single reconciliation run.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Agent started")
//
//	// During a reconcile tick:
//	l := logger.WithRun(log, runID)
//	l.Error("Cleanup failed", zap.Error(err))
package logger
