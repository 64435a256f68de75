package logger

import (
	"log/slog"
	"os"
)

// Logger is usable before Init; Init only adjusts the level.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Init configures the process-wide logger. Output goes to stderr because
// stdout belongs to the terminal UI.
func Init() {
	level := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	Logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	slog.SetDefault(Logger)
}

func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}
