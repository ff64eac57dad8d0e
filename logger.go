package houdiniswap

import "github.com/sirupsen/logrus"

// Logger is the logging collaborator the client emits through. Implementations
// must be safe for concurrent use. The client never passes the authorization
// value to a Logger; redactHeaders runs before any header reaches a log call.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// logrusLogger adapts a *logrus.Logger to the Logger interface.
type logrusLogger struct {
	l *logrus.Logger
}

// NewLogrusLogger wraps a logrus logger for use with WithLogger.
func NewLogrusLogger(l *logrus.Logger) Logger {
	return &logrusLogger{l: l}
}

func (a *logrusLogger) fields(keysAndValues []any) logrus.Fields {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}

func (a *logrusLogger) Debug(msg string, keysAndValues ...any) {
	a.l.WithFields(a.fields(keysAndValues)).Debug(msg)
}

func (a *logrusLogger) Info(msg string, keysAndValues ...any) {
	a.l.WithFields(a.fields(keysAndValues)).Info(msg)
}

func (a *logrusLogger) Warn(msg string, keysAndValues ...any) {
	a.l.WithFields(a.fields(keysAndValues)).Warn(msg)
}

func (a *logrusLogger) Error(msg string, keysAndValues ...any) {
	a.l.WithFields(a.fields(keysAndValues)).Error(msg)
}

// redactHeaders copies headers with the authorization value masked. Every log
// emission that includes header material goes through this first.
func redactHeaders(headers map[string]string) map[string]string {
	redacted := make(map[string]string, len(headers))
	for k, v := range headers {
		redacted[k] = v
	}
	if _, ok := redacted["Authorization"]; ok {
		redacted["Authorization"] = "***REDACTED***"
	}
	return redacted
}
