package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Options selects where the process logger writes. The terminal grid owns
// the screen while it runs, so interactive commands set Quiet and route logs
// to a file or nowhere.
type Options struct {
	// File receives the log stream when set.
	File string

	// Quiet discards logs unless File is set. Without it the stream goes
	// to stderr.
	Quiet bool

	Level zerolog.Level
}

// OptionsFromEnv builds Options from TT_LOG_FILE and TT_LOG_LEVEL.
func OptionsFromEnv(quiet bool) Options {
	return Options{
		File:  os.Getenv("TT_LOG_FILE"),
		Quiet: quiet,
		Level: ParseLevel(os.Getenv("TT_LOG_LEVEL")),
	}
}

// FromOptions provides the process logger, closing the log file on shutdown
// when one was opened.
func FromOptions(lc fx.Lifecycle, opts Options) (zerolog.Logger, error) {
	logger, closer, err := build(opts)
	if err != nil {
		return zerolog.Nop(), err
	}
	if closer != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}
	return logger, nil
}

func build(opts Options) (zerolog.Logger, io.Closer, error) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var (
		out    io.Writer
		closer io.Closer
	)
	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), nil, err
		}
		out, closer = f, f
	case opts.Quiet:
		out = io.Discard
	default:
		out = os.Stderr
	}

	logger := zerolog.New(out).
		With().
		Timestamp().
		Logger().
		Level(opts.Level)

	return logger, closer, nil
}

// ParseLevel maps a level string onto a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info", "":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

var Module = fx.Provide(FromOptions)
