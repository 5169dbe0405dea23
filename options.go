package mywebapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client used for fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the amount of time to wait before a fetch is abandoned.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithCacheDisabled starts the client with response caching turned off.
func WithCacheDisabled() Option {
	return func(c *Client) {
		c.cacheEnabled = false
	}
}

// WithContentCache sets a custom caching structure, e.g. one restored from a
// previous session.
func WithContentCache(cache *ContentCache) Option {
	return func(c *Client) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithResourceKeyFunc sets a custom resource identity derivation.
func WithResourceKeyFunc(fn ResourceKeyFunc) Option {
	return func(c *Client) {
		c.resourceKey = fn
	}
}

// WithMaxConcurrency caps the number of fetches running at the same time.
func WithMaxConcurrency(n int64) Option {
	return func(c *Client) {
		c.maxConcurrency = n
	}
}

// WithPersistentParam sets a URL parameter included with every request.
func WithPersistentParam(name, value string) Option {
	return func(c *Client) {
		c.persistentParams.Set(name, value)
	}
}

// WithMetrics enables Prometheus metrics collection on the default registerer.
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector.
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithLogger sets a custom logger for debug output.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithSimpleLogger enables debug logging with a console logger on stderr.
func WithSimpleLogger() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
		c.logger = NewSimpleLogger()
	}
}

// WithDebug enables debug logging with the default configuration.
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets a custom debug configuration.
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs.
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// ValidateConfiguration validates the client configuration and returns an
// error describing every problem found, or nil.
func (c *Client) ValidateConfiguration() error {
	var problems []string

	problems = append(problems, c.validateBaseURL()...)
	problems = append(problems, c.validateTransportConfig()...)
	problems = append(problems, c.validateCacheConfig()...)
	problems = append(problems, c.validateDispatchConfig()...)

	if len(problems) > 0 {
		return &ClientError{
			Type:      ErrorTypeConfig,
			Message:   fmt.Sprintf("invalid configuration: %s", strings.Join(problems, "; ")),
			Timestamp: time.Now(),
		}
	}
	return nil
}

func (c *Client) validateBaseURL() []string {
	if c.baseURL == "" {
		return []string{"base URL must not be empty"}
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return []string{fmt.Sprintf("base URL is not parseable: %v", err)}
	}
	if u.Scheme == "" || u.Host == "" {
		return []string{"base URL must be absolute (scheme and host)"}
	}
	return nil
}

func (c *Client) validateTransportConfig() []string {
	var problems []string
	if c.httpClient == nil {
		problems = append(problems, "HTTP client must not be nil")
	}
	if c.timeout <= 0 {
		problems = append(problems, "timeout must be positive")
	}
	return problems
}

func (c *Client) validateCacheConfig() []string {
	var problems []string
	if c.cache == nil {
		problems = append(problems, "content cache must not be nil")
	}
	if c.resourceKey == nil {
		problems = append(problems, "resource key function must not be nil")
	}
	return problems
}

func (c *Client) validateDispatchConfig() []string {
	if c.maxConcurrency < 1 {
		return []string{fmt.Sprintf("max concurrency must be at least 1, got %d", c.maxConcurrency)}
	}
	return nil
}
