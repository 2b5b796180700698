// Package log configures the process-wide slog logger of the Dealflow binaries.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup installs the default logger on stderr. format "json" selects the JSON
// handler, anything else the text handler.
func Setup(level, format string) {
	slog.SetDefault(slog.New(NewHandler(os.Stderr, level, format)))
}

func NewHandler(w io.Writer, level, format string) slog.Handler {
	options := &slog.HandlerOptions{Level: ParseLevel(level)}

	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, options)
	}

	return slog.NewTextHandler(w, options)
}

// ParseLevel accepts slog level names in any case, such as "warn" or
// "DEBUG-2". Unknown values mean info.
func ParseLevel(level string) slog.Level {
	var parsed slog.Level

	err := parsed.UnmarshalText([]byte(strings.TrimSpace(level)))
	if err != nil {
		return slog.LevelInfo
	}

	return parsed
}

// WithModule tags the default logger with the component that emits it.
func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}

// WithRun tags logger with the identifiers of one automation run.
func WithRun(logger *slog.Logger, automationID, executionID, triggerType string) *slog.Logger {
	return logger.With(
		"automation_id", automationID,
		"execution_id", executionID,
		"trigger_type", triggerType,
	)
}
