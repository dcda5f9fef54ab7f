package app

import (
	"log/slog"
	"os"
)

// NewLogger builds the process-wide slog.Logger. JSON output is the
// production default; anything else renders the text handler.
func NewLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{AddSource: true}

	var handler slog.Handler
	if cfg != nil && cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With(
		slog.String("service", "dreamteam"),
		slog.String("env", envName(cfg)),
	)
	slog.SetDefault(logger)
	return logger
}

func envName(cfg *Config) string {
	if cfg == nil {
		return "development"
	}
	return cfg.AppEnv
}
