package mywebapi

import "testing"

// Light smoke tests ensuring exported logger APIs do not panic and remain
// callable; the console output itself is not asserted on.
func TestSimpleLoggerLevels(t *testing.T) {
	logger := NewSimpleLogger()

	logger.Debug("debug message", "key", "value")
	logger.Info("info message")
	logger.Warn("warn message", "count", 3)
	logger.Error("error message", "err", "boom")
}

func TestSimpleLoggerOddKeyValues(t *testing.T) {
	logger := NewSimpleLogger()

	// Unpaired trailing values and non-string keys must not panic.
	logger.Info("odd arguments", "only-a-key")
	logger.Info("numeric key", 42, "value")
}

func TestDefaultDebugConfig(t *testing.T) {
	cfg := DefaultDebugConfig()

	if cfg.Enabled {
		t.Error("Expected debug logging to start disabled")
	}
	if !cfg.LogRequests || !cfg.LogCache || !cfg.LogSuppression {
		t.Error("Expected all event classes selected by default")
	}
	if cfg.RequestIDGen == nil {
		t.Fatal("Expected a default request ID generator")
	}

	a, b := cfg.RequestIDGen(), cfg.RequestIDGen()
	if a == "" || a == b {
		t.Errorf("Expected unique non-empty request IDs, got %q and %q", a, b)
	}
}
