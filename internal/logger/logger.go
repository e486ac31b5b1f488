package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const appName = "dailypush"

// Log is the process-wide logger. Packages log through it directly.
var Log *slog.Logger

func init() {
	Initialize("info", false)
}

// Initialize points Log and the slog default at stdout. main calls it once the
// config is loaded.
func Initialize(level string, useJSON bool) {
	InitializeWriter(os.Stdout, level, useJSON)
}

func InitializeWriter(w io.Writer, level string, useJSON bool) {
	Log = New(w, level, useJSON)
	slog.SetDefault(Log)
}

// New builds a logger tagged with the app name. Source locations are always on.
func New(w io.Writer, level string, useJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level), AddSource: true}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if useJSON {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With("app", appName)
}

// Unknown levels fall back to info.
func parseLevel(level string) slog.Level {
	level = strings.TrimSpace(level)
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
