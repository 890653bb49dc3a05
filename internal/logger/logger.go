package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	level string
	zl    zerolog.Logger
}

// New returns a human-readable console logger writing to stderr.
func New(level string) *Logger {
	return newLogger(level, zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}

// NewJSON returns a logger emitting one JSON object per line, used in
// production and in tests that inspect log output.
func NewJSON(level string, w io.Writer) *Logger {
	return newLogger(level, w)
}

// ForEnv picks the console writer in development and JSON elsewhere.
func ForEnv(env, level string) *Logger {
	if env == "production" {
		return NewJSON(level, os.Stdout)
	}
	return New(level)
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{level: "disabled", zl: zerolog.Nop()}
}

func newLogger(level string, w io.Writer) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	return &Logger{
		level: lvl.String(),
		zl:    zerolog.New(w).Level(lvl).With().Timestamp().Logger(),
	}
}

// With returns a child logger that adds key=value to every entry.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{
		level: l.level,
		zl:    l.zl.With().Interface(key, value).Logger(),
	}
}

// Level returns the active level name.
func (l *Logger) Level() string {
	return l.level
}

// Zerolog exposes the underlying logger for structured call sites.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.zl.Info().Msgf(msg, args...)
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.zl.Debug().Msgf(msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.zl.Warn().Msgf(msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.zl.Error().Msgf(msg, args...)
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.zl.Fatal().Msgf(msg, args...)
}
