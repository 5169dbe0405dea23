package mywebapi

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for common failure scenarios.
var (
	// ErrTimeout is returned when a fetch exceeded the configured timeout.
	ErrTimeout = errors.New("mywebapi: request timed out")

	// ErrInvalidConfiguration is returned when client options fail validation.
	ErrInvalidConfiguration = errors.New("mywebapi: invalid configuration")
)

// Error type identifiers carried by ClientError.
const (
	ErrorTypeTimeout = "Timeout"
	ErrorTypeNetwork = "Network"
	ErrorTypeConfig  = "Configuration"
)

// ClientError is a structured error produced by the client. Cache and tracker
// operations never fail; only the network fetch and configuration validation
// can, so every ClientError originates there.
type ClientError struct {
	Type      string
	Message   string
	Cause     error
	Method    string
	URL       string
	Timestamp time.Time
	Duration  time.Duration
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	if target == ErrTimeout {
		return e.Type == ErrorTypeTimeout
	}
	if target == ErrInvalidConfiguration {
		return e.Type == ErrorTypeConfig
	}
	if targetErr, ok := target.(*ClientError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// IsTransient reports whether err represents a failure that might succeed if
// the caller decides to issue the request again. Timeouts and network errors
// are transient; configuration errors are not.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrTimeout) {
		return true
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		switch clientErr.Type {
		case ErrorTypeTimeout, ErrorTypeNetwork:
			return true
		}
	}

	return false
}
