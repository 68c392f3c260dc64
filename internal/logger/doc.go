// Package logger constructs the slog.Logger used across critic.
//
// Logs go to stderr so that review text on stdout stays clean for piping.
// The default level is warn: per-file git failures are logged at debug and
// only surface when CRITIC_LOG_LEVEL=debug is set.
package logger
