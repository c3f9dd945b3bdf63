package libs

import (
	"io"
	"log/slog"
)

// SetupLogger installs the default slog logger at Info, or Debug when debug
// is set.
func SetupLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
