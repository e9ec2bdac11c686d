package pachca

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// testLogger wraps a zap logger with an observer for testing
type testLogger struct {
	*zap.Logger
	observer *observer.ObservedLogs
}

func newTestLogger() *testLogger {
	core, logs := observer.New(zapcore.DebugLevel)
	return &testLogger{
		Logger:   zap.New(core),
		observer: logs,
	}
}

// HasMessage checks if a specific message was logged at any level
func (tl *testLogger) HasMessage(msg string) bool {
	return tl.observer.FilterMessage(msg).Len() > 0
}

// ContainsField reports whether any logged entry carries a string field with the given value
func (tl *testLogger) ContainsField(value string) bool {
	for _, entry := range tl.observer.All() {
		for _, f := range entry.Context {
			if f.Type == zapcore.StringType && f.String == value {
				return true
			}
		}
	}
	return false
}
