package logging

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

type LogrusLogger struct {
	e *logrus.Entry
}

func NewLogrusLogger(l *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{e: logrus.NewEntry(l)}
}

// New builds a logrus-backed Logger writing to out. format is "json" or
// "text"; level is any logrus level name.
func New(out io.Writer, level, format string) (*LogrusLogger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)
	switch format {
	case "json", "":
		l.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
	return NewLogrusLogger(l), nil
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *LogrusLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewLogrusLogger(l)
}

func (l *LogrusLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.entry(ctx, args).Debug(msg)
}

func (l *LogrusLogger) Info(ctx context.Context, msg string, args ...any) {
	l.entry(ctx, args).Info(msg)
}

func (l *LogrusLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.entry(ctx, args).Warn(msg)
}

func (l *LogrusLogger) Error(ctx context.Context, msg string, args ...any) {
	l.entry(ctx, args).Error(msg)
}

func (l *LogrusLogger) With(args ...any) Logger {
	return &LogrusLogger{e: l.e.WithFields(fields(args))}
}

func (l *LogrusLogger) entry(ctx context.Context, args []any) *logrus.Entry {
	e := l.e
	if ctx != nil {
		e = e.WithContext(ctx)
		if id := RequestID(ctx); id != "" {
			e = e.WithField("request_id", id)
		}
	}
	if len(args) > 0 {
		e = e.WithFields(fields(args))
	}
	return e
}

// fields turns key–value pairs into logrus fields. A dangling value is
// kept under "!BADKEY", the way log/slog does it.
func fields(args []any) logrus.Fields {
	f := make(logrus.Fields, len(args)/2+1)
	for i := 0; i < len(args); {
		key, ok := args[i].(string)
		if !ok || i+1 == len(args) {
			f["!BADKEY"] = args[i]
			i++
			continue
		}
		v := args[i+1]
		if err, isErr := v.(error); isErr {
			v = err.Error()
		}
		f[key] = v
		i += 2
	}
	return f
}
