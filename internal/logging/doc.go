// Package logging provides structured logging for wifipass.
//
// This package wraps the zap logger with package-level convenience functions.
// Logging is silent unless WIFIPASS_LOG_LEVEL or the --log-level flag is set,
// so the interactive list and the one-shot output are never interleaved with
// log lines. When enabled, logs go to stderr.
//
// # Log Levels
//
//   - Debug: share protocol messages, per-step chain decisions
//   - Info: acquisition runs, source results, connections
//   - Warn: recovered source failures (unreadable file, missing accessor)
//   - Error: failures that end an acquisition run
//
// # Secrets
//
// Records are logged by count and network name only. No helper in this
// package accepts a secret, and callers must not pass one in a field.
//
//	logging.LogSourceResult(runID, "config_file", 3)
//	logging.LogSourceUnavailable("reflective", err)
package logging
