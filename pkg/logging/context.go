package logging

import (
	"log/slog"
)

// WithComponent creates a logger with component/subsystem context.
//
// Example:
//
//	log := logging.WithComponent("repl")
//	log.Info("component initialized")
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithInput creates a logger with input-source context. Use this when
// tokenizing a named source such as a file.
//
// Example:
//
//	log := logging.WithInput("queries.sql")
//	log.Debug("tokenized", "tokens", count, "errors", errs)
func WithInput(name string) *slog.Logger {
	return GetLogger().With("input", name)
}

// WithError creates a logger with error context.
// Use this when logging errors to include the error in structured format.
//
// Example:
//
//	log := logging.WithError(err)
//	log.Error("read failed", "path", path)
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}
