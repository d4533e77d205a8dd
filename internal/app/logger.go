package app

import (
	"log/slog"
	"os"

	"delivery-routing/internal/logx"
)

// NewLogger builds the JSON slog-backed logger used across the service.
func NewLogger() logx.Logger {
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logx.NewSlogAdapter(base)
}
