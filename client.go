package mywebapi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

const (
	// DefaultTimeout bounds a single fetch when WithTimeout is not given.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxConcurrency caps simultaneously running fetch workers.
	DefaultMaxConcurrency = 64

	// maxResponseSize caps how much of a response body is read (10 MiB).
	maxResponseSize = 10 * 1024 * 1024
)

// Client is the entry point to a web-based API. It owns the response cache,
// the open-request tracker and the listener registry, and orchestrates every
// request through them: duplicates of an in-flight resource are dropped,
// fresh cached responses complete synchronously, everything else is fetched
// on a bounded worker. A single Client instance is safe for concurrent use.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	resourceKey    ResourceKeyFunc
	maxConcurrency int64
	workers        *semaphore.Weighted

	mu               sync.Mutex
	timeout          time.Duration
	persistentParams *ParamList
	cacheEnabled     bool
	cache            *ContentCache

	tracker   *OpenRequestTracker
	listeners *listenerRegistry
	metrics   *MetricsCollector
	debug     *DebugConfig
	logger    Logger

	validationError error
}

// New constructs a Client for the API rooted at baseURL using the provided
// functional options. Caching starts enabled. A best effort validation is
// performed; call IsValid / ValidationError for errors.
func New(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL:          baseURL,
		httpClient:       &http.Client{},
		resourceKey:      DefaultResourceKey,
		maxConcurrency:   DefaultMaxConcurrency,
		timeout:          DefaultTimeout,
		persistentParams: NewParamList(),
		cacheEnabled:     true,
		cache:            NewContentCache(),
		tracker:          NewOpenRequestTracker(),
		listeners:        newListenerRegistry(),
		metrics:          nil,
		debug:            DefaultDebugConfig(),
		logger:           nil,
	}

	for _, option := range options {
		option(client)
	}

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
	}

	if client.maxConcurrency < 1 {
		client.maxConcurrency = 1
	}
	client.workers = semaphore.NewWeighted(client.maxConcurrency)

	if client.debug != nil && client.debug.Enabled && client.logger != nil {
		client.logger.Debug("Client created",
			"version", Version, "baseURL", client.baseURL, "maxConcurrency", client.maxConcurrency)
	}

	return client
}

// AddListener registers a callback for request resolutions and content
// invalidations. Listeners cannot be removed.
func (c *Client) AddListener(l Listener) {
	c.listeners.add(l)
}

// StartRequest starts a single logical request and returns immediately.
// Listeners are notified when the request resolves.
//
// If a fetch for the same resource identity is already in flight, nothing
// happens: the existing fetch will notify listeners. If caching is enabled,
// the request declares a content name, and a fresh response is cached, the
// request completes synchronously from the cache with no network call.
// Otherwise a fetch is dispatched on a worker.
func (c *Client) StartRequest(req Request) {
	method := requestMethod(req)
	target := c.resolveURL(req)
	key := c.resourceKey(method, target)
	endpoint := endpointFromURL(target)

	var requestID string
	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen != nil {
		requestID = c.debug.RequestIDGen()
	}

	if c.tracker.IsOpen(key) {
		c.metrics.RecordSuppressed(method, endpoint)
		if c.debug != nil && c.debug.Enabled && c.debug.LogSuppression && c.logger != nil {
			c.logger.Debug("Duplicate request suppressed", "requestID", requestID, "resourceKey", key, "endpoint", endpoint)
		}
		return
	}

	contentName := req.ContentName()
	if c.cacheIsEnabled() && contentName != "" {
		if resp, ok := c.contentCache().GetResponse(contentName, key); ok {
			req.Complete(resp)
			c.metrics.RecordCacheHit(method, endpoint)
			c.metrics.RecordResolved(method, endpoint, OutcomeCached)
			if c.debug != nil && c.debug.Enabled && c.debug.LogCache && c.logger != nil {
				c.logger.Debug("Cache hit", "requestID", requestID, "resourceKey", key, "content", contentName)
			}
			c.listeners.notifyResolved(req)
			return
		}
		c.metrics.RecordCacheMiss(method, endpoint)
		if c.debug != nil && c.debug.Enabled && c.debug.LogCache && c.logger != nil {
			c.logger.Debug("Cache miss", "requestID", requestID, "resourceKey", key, "content", contentName)
		}
	}

	// The mark and the membership check are one critical section, so of any
	// number of concurrent callers exactly one dispatches.
	if !c.tracker.StoreRequest(key) {
		c.metrics.RecordSuppressed(method, endpoint)
		return
	}

	c.metrics.RecordRequestStart(method, endpoint)
	if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
		c.logger.Debug("Dispatching fetch", "requestID", requestID, "method", method, "url", target)
	}

	go c.resolve(req, method, target, key, endpoint, requestID)
}

// resolve runs on a fetch worker. The tracker entry is cleared and listeners
// are notified on every exit path, success or failure.
func (c *Client) resolve(req Request, method, target, key, endpoint, requestID string) {
	start := time.Now()

	// Backpressure happens here, off the caller's goroutine: StartRequest
	// never blocks, excess fetches queue on the semaphore.
	if err := c.workers.Acquire(context.Background(), 1); err == nil {
		defer c.workers.Release(1)
	}

	resp, err := c.fetch(method, target, req.Body())

	outcome := OutcomeSuccess
	if err != nil {
		req.Fail()
		outcome = OutcomeFailed
		errType := ErrorTypeNetwork
		var clientErr *ClientError
		if errors.As(err, &clientErr) {
			errType = clientErr.Type
		}
		c.metrics.RecordError(errType, method, endpoint)
		if c.debug != nil && c.debug.Enabled && c.debug.LogRequests && c.logger != nil {
			c.logger.Warn("Fetch failed", "requestID", requestID, "url", target, "error", err.Error())
		}
	} else {
		req.Complete(resp)
		if c.cacheIsEnabled() && req.CacheTime() > 0 && req.ContentName() != "" {
			cache := c.contentCache()
			cache.Add(req.ContentName(), key, resp, req.CacheTime())
			c.metrics.RecordCacheSize("default", cache.Size())
			if c.debug != nil && c.debug.Enabled && c.debug.LogCache && c.logger != nil {
				c.logger.Debug("Response cached", "requestID", requestID, "resourceKey", key, "content", req.ContentName(), "ttl", req.CacheTime())
			}
		}
	}

	c.tracker.RemoveRequest(key)
	c.metrics.RecordRequestEnd(method, endpoint, time.Since(start))
	c.metrics.RecordResolved(method, endpoint, outcome)
	c.listeners.notifyResolved(req)
}

// fetch performs one HTTP call under the configured timeout and reads the
// full body so the response can be cached and shared.
func (c *Client) fetch(method, target string, body []byte) (*Response, error) {
	ctx, cancel := context.WithTimeout(context.Background(), c.requestTimeout())
	defer cancel()

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &ClientError{
			Type: ErrorTypeConfig, Message: "building request failed", Cause: err,
			Method: method, URL: target, Timestamp: time.Now(),
		}
	}
	httpReq.Header.Set("User-Agent", UserAgent())

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		errType, msg := ErrorTypeNetwork, "network request failed"
		if errors.Is(err, context.DeadlineExceeded) {
			errType, msg = ErrorTypeTimeout, "request timed out"
		}
		return nil, &ClientError{
			Type: errType, Message: msg, Cause: err,
			Method: method, URL: target, Timestamp: time.Now(),
		}
	}
	defer func() { _ = httpResp.Body.Close() }()

	// Read one byte past the cap so an oversized body is detected and failed
	// rather than silently truncated.
	payload, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize+1))
	if err != nil {
		return nil, &ClientError{
			Type: ErrorTypeNetwork, Message: "reading response body failed", Cause: err,
			Method: method, URL: target, Timestamp: time.Now(),
		}
	}
	if len(payload) > maxResponseSize {
		return nil, &ClientError{
			Type: ErrorTypeNetwork, Message: "response body exceeds the size limit", Cause: nil,
			Method: method, URL: target, Timestamp: time.Now(),
		}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header.Clone(),
		Body:       payload,
		Expires:    parseExpires(httpResp.Header.Get("Expires")),
	}, nil
}

// InvalidateContent removes every cached response stored under contentName
// and notifies all listeners that the content has been invalidated.
func (c *Client) InvalidateContent(contentName string) {
	c.contentCache().RemoveAll(contentName)
	c.metrics.RecordInvalidation(contentName)
	if c.debug != nil && c.debug.Enabled && c.debug.LogCache && c.logger != nil {
		c.logger.Debug("Content invalidated", "content", contentName)
	}
	c.listeners.notifyContentInvalidated(contentName)
}

// SetCacheEnabled changes the enabled state of the cache. Disabling clears
// all cached responses.
func (c *Client) SetCacheEnabled(enabled bool) {
	c.mu.Lock()
	c.cacheEnabled = enabled
	cache := c.cache
	c.mu.Unlock()

	if !enabled {
		cache.Clear()
		c.metrics.RecordCacheSize("default", 0)
	}
}

// SetTimeout sets the amount of time to wait before a fetch is abandoned.
func (c *Client) SetTimeout(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = d
}

// SetPersistentParam sets a URL parameter included with every request.
// Request-specific parameters of the same name take precedence.
func (c *Client) SetPersistentParam(name, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.persistentParams = c.persistentParams.Merge(nil).Set(name, value)
}

// RemovePersistentParam stops including the named parameter with every
// request.
func (c *Client) RemovePersistentParam(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	params := c.persistentParams.Merge(nil)
	params.Remove(name)
	c.persistentParams = params
}

// ContentCache returns the caching structure, for callers who persist cache
// contents themselves. No serialization format is provided.
func (c *Client) ContentCache() *ContentCache {
	return c.contentCache()
}

// SetContentCache replaces the caching structure, for callers restoring a
// previously persisted cache. A nil cache is ignored.
func (c *Client) SetContentCache(cache *ContentCache) {
	if cache == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = cache
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}

func (c *Client) cacheIsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cacheEnabled
}

func (c *Client) contentCache() *ContentCache {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache
}

func (c *Client) requestTimeout() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeout
}

// resolveURL builds the full target URL: base URL + request path + merged
// query (request parameters win over persistent ones). A malformed full URL
// falls back to the base URL + query, which then fails in the fetch itself
// if it is unusable.
func (c *Client) resolveURL(req Request) string {
	c.mu.Lock()
	persistent := c.persistentParams
	c.mu.Unlock()

	query := req.URLParams().Merge(persistent).Query()
	target := c.baseURL + req.Path() + query
	if _, err := url.Parse(target); err != nil {
		if c.logger != nil {
			c.logger.Warn("Malformed full URL, reverting to base URL", "url", target, "error", err.Error())
		}
		target = c.baseURL + query
	}
	return target
}

func requestMethod(req Request) string {
	if m := req.Method(); m != "" {
		return strings.ToUpper(m)
	}
	return http.MethodGet
}

// endpointFromURL reduces a target URL to a host+path metrics label.
func endpointFromURL(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return "unknown"
	}

	var builder strings.Builder
	builder.WriteString(u.Host)
	if u.Path != "" && u.Path != "/" {
		builder.WriteString(u.Path)
	} else {
		builder.WriteByte('/')
	}
	return builder.String()
}
