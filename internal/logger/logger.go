// Package logger wraps zerolog behind a small key/value API for the CLI.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Log is the global logger instance.
var Log *Logger

// Logger writes leveled events with alternating key/value fields.
type Logger struct {
	z zerolog.Logger
}

func init() {
	Log = New(os.Stderr, "console")
}

// New builds a logger writing to w. format "json" emits one JSON object per
// line; anything else uses the human-readable console writer, colored only
// when w is a terminal.
func New(w io.Writer, format string) *Logger {
	if strings.EqualFold(format, "json") {
		return &Logger{z: zerolog.New(w).With().Timestamp().Logger()}
	}
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: !isTerminal(w)}
	return &Logger{z: zerolog.New(output).With().Timestamp().Logger()}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// ParseLevel maps debug, info, warn and error (any case) to a zerolog level.
// Unknown names fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Setup configures the global level and replaces Log with a stderr logger
// in the given format.
func Setup(level, format string) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	Log = New(os.Stderr, format)
}

// Info logs at Info level with variadic key-value pairs.
func (l *Logger) Info(msg string, args ...any) {
	emit(l.z.Info(), msg, args)
}

// Debug logs at Debug level with variadic key-value pairs.
func (l *Logger) Debug(msg string, args ...any) {
	emit(l.z.Debug(), msg, args)
}

// Warn logs at Warn level with variadic key-value pairs.
func (l *Logger) Warn(msg string, args ...any) {
	emit(l.z.Warn(), msg, args)
}

// Error logs at Error level with variadic key-value pairs.
func (l *Logger) Error(msg string, args ...any) {
	emit(l.z.Error(), msg, args)
}

// emit adds fields to e and sends it. A trailing key without a value is dropped.
func emit(e *zerolog.Event, msg string, args []any) {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", args[i])
		}
		switch v := args[i+1].(type) {
		case error:
			e.AnErr(key, v)
		case time.Duration:
			e.Dur(key, v)
		default:
			e.Interface(key, v)
		}
	}
	e.Msg(msg)
}
