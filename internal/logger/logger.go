package logger

import (
	"io"
	"log/slog"
	"os"
)

var log *slog.Logger

// Init configures the global logger.
// env: "development", "test" or anything else for production.
func Init(env string) {
	InitWithWriter(env, os.Stdout)
}

func InitWithWriter(env string, w io.Writer) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	switch env {
	case "development":
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	case "test":
		opts.Level = slog.LevelWarn
		opts.AddSource = false
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func GetLogger() *slog.Logger {
	if log == nil {
		Init("development")
	}
	return log
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal logs and exits with status 1.
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}
