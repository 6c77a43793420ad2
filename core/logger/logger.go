package logger

import (
	"log/slog"
	"os"
	"strings"
)

var log *slog.Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Init replaces the default logger. level is one of debug|info|warn|error,
// format is "json" or "text".
func Init(level string, format string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log = slog.New(handler)
	slog.SetDefault(log)
}

func Debug(msg string, args ...any) {
	log.Debug(msg, normalize(args)...)
}

func Info(msg string, args ...any) {
	log.Info(msg, normalize(args)...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, normalize(args)...)
}

func Error(msg string, args ...any) {
	log.Error(msg, normalize(args)...)
}

// normalize tolerates the bare-error call form logger.Error("Ctx:Op", err)
// by promoting a lone odd trailing value to an "error"/"value" attribute.
func normalize(args []any) []any {
	if len(args)%2 == 0 {
		return args
	}
	last := args[len(args)-1]
	head := args[:len(args)-1]
	if err, ok := last.(error); ok {
		return append(head, "error", err)
	}
	return append(head, "value", last)
}
