package mywebapi

import (
	"fmt"
	"os"
	"strconv"
	"sync/atomic"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

// Logger is the minimal leveled logging interface used for debug output.
// Arguments after the message are alternating key/value pairs.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// DebugConfig controls which client events are logged when a Logger is set.
type DebugConfig struct {
	// Enabled turns debug logging on.
	Enabled bool

	// LogRequests logs request dispatch and resolution.
	LogRequests bool

	// LogCache logs cache hits, misses, stores and invalidations.
	LogCache bool

	// LogSuppression logs duplicate requests dropped by the tracker.
	LogSuppression bool

	// RequestIDGen generates correlation IDs attached to log lines.
	RequestIDGen func() string
}

// DefaultDebugConfig returns a DebugConfig with all event classes selected
// but logging disabled; enable with WithDebug.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:        false,
		LogRequests:    true,
		LogCache:       true,
		LogSuppression: true,
		RequestIDGen:   defaultRequestID,
	}
}

var requestIDCounter uint64

func defaultRequestID() string {
	return "req_" + strconv.FormatUint(atomic.AddUint64(&requestIDCounter, 1), 10)
}

// simpleLogger adapts an apex/log logger to the Logger interface.
type simpleLogger struct {
	root *log.Logger
}

// NewSimpleLogger returns a Logger writing human-readable leveled output to
// stderr.
func NewSimpleLogger() Logger {
	return &simpleLogger{
		root: &log.Logger{
			Handler: cli.New(os.Stderr),
			Level:   log.DebugLevel,
		},
	}
}

func (l *simpleLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.root.WithFields(toFields(keysAndValues)).Debug(msg)
}

func (l *simpleLogger) Info(msg string, keysAndValues ...interface{}) {
	l.root.WithFields(toFields(keysAndValues)).Info(msg)
}

func (l *simpleLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.root.WithFields(toFields(keysAndValues)).Warn(msg)
}

func (l *simpleLogger) Error(msg string, keysAndValues ...interface{}) {
	l.root.WithFields(toFields(keysAndValues)).Error(msg)
}

// toFields pairs up key/value arguments; a trailing unpaired value is dropped.
func toFields(keysAndValues []interface{}) log.Fields {
	fields := log.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
