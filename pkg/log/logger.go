package log

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	RequestIDKey contextKey = "RequestID"
	LanguageKey  contextKey = "Language"
	ConnIDKey    contextKey = "ConnID"
)

var logger = logrus.New()

// Logger is the process-wide logger behind Println and Printf.
func Logger() *logrus.Logger {
	return logger
}

// SetLevel parses level ("debug", "info", ...) and applies it.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	logger.SetLevel(lvl)
	return nil
}

func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// WithContext tags ctx with key=value for later log lines.
func WithContext(ctx context.Context, key contextKey, value interface{}) context.Context {
	return context.WithValue(ctx, key, value)
}

func ctxToFields(ctx context.Context) logrus.Fields {
	fields := logrus.Fields{}
	for _, key := range []contextKey{RequestIDKey, LanguageKey, ConnIDKey} {
		if value := ctx.Value(key); value != nil {
			fields[string(key)] = value
		}
	}
	return fields
}

// Entry returns a logrus entry carrying l's context tags.
func Entry(l Loggable) *logrus.Entry {
	return logger.WithFields(ctxToFields(l.Ctx()))
}

func Println(l Loggable, args ...interface{}) {
	Entry(l).Infoln(args...)
}

func Printf(l Loggable, format string, args ...interface{}) {
	Entry(l).Infof(format, args...)
}

type Loggable interface {
	Ctx() context.Context
}

// Background is a Loggable with no tags.
var Background Loggable = ctxLoggable{ctx: context.Background()}

type ctxLoggable struct {
	ctx context.Context
}

func (c ctxLoggable) Ctx() context.Context { return c.ctx }

// FromContext wraps a plain context as a Loggable.
func FromContext(ctx context.Context) Loggable {
	return ctxLoggable{ctx: ctx}
}
