package mywebapi

import (
	"net/http"
	"sync"
	"time"
)

// Request describes a logical API request. Implementations declare where the
// resource lives relative to the client's base URL and how its response may be
// cached. Embed BaseRequest to inherit sensible defaults and the completion
// state handling; override only what the request needs.
type Request interface {
	// Path is appended to the client's base URL. Empty means the base URL
	// itself is the target.
	Path() string

	// Method is the HTTP method to use. Empty defaults to GET.
	Method() string

	// URLParams returns the query parameters specific to this request. They
	// are merged with the client's persistent parameters; on conflict the
	// request's value wins. May be nil.
	URLParams() *ParamList

	// Body is the request body, nil or empty for none.
	Body() []byte

	// ContentName is the logical content category this request's response
	// belongs to. Responses are only cached under a non-empty content name,
	// and InvalidateContent removes every response sharing one.
	ContentName() string

	// CacheTime is how long a successful response may be served from cache.
	// Zero or negative disables caching for this request.
	CacheTime() time.Duration

	// Complete is invoked with the response when the request resolves,
	// either from the cache or from a finished fetch.
	Complete(resp *Response)

	// Fail is invoked instead of Complete when the fetch times out or the
	// transport fails. No error is delivered; the request is simply failed.
	Fail()
}

// BaseRequest supplies default Request behavior and tracks completion state.
// The zero value is ready to use.
type BaseRequest struct {
	mu       sync.Mutex
	resolved bool
	failed   bool
	response *Response
}

// Path defaults to the empty path (the client's base URL).
func (r *BaseRequest) Path() string { return "" }

// Method defaults to empty, which the client treats as GET.
func (r *BaseRequest) Method() string { return "" }

// URLParams defaults to no request-specific parameters.
func (r *BaseRequest) URLParams() *ParamList { return nil }

// Body defaults to no body.
func (r *BaseRequest) Body() []byte { return nil }

// ContentName defaults to empty, which disables caching for the request.
func (r *BaseRequest) ContentName() string { return "" }

// CacheTime defaults to zero, which disables caching for the request.
func (r *BaseRequest) CacheTime() time.Duration { return 0 }

// Complete records the response and marks the request resolved.
func (r *BaseRequest) Complete(resp *Response) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = true
	r.failed = false
	r.response = resp
}

// Fail marks the request resolved with a failure and no response.
func (r *BaseRequest) Fail() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolved = true
	r.failed = true
	r.response = nil
}

// IsResolved reports whether the request has finished, successfully or not.
func (r *BaseRequest) IsResolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}

// IsFailed reports whether the request resolved with a failure.
func (r *BaseRequest) IsFailed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// Response returns the response delivered to Complete, or nil.
func (r *BaseRequest) Response() *Response {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.response
}

// Response is a simplified, immutable-by-convention HTTP response. The body
// is fully read before the response is handed to a request, so it can be
// cached and delivered to multiple requests safely.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Header holds the response headers.
	Header http.Header

	// Body is the raw response payload.
	Body []byte

	// Expires is the server-declared expiration from the Expires header.
	// Zero when the server sent none.
	Expires time.Time
}

// Status codes a shared cache may store regardless of freshness information
// (RFC 7231 §6.1).
var alwaysCacheableStatus = map[int]bool{
	http.StatusOK:                   true,
	http.StatusNonAuthoritativeInfo: true,
	http.StatusMultipleChoices:      true,
	http.StatusMovedPermanently:     true,
	http.StatusGone:                 true,
}

// Cacheable reports whether the status code of this response is reliably
// cacheable.
func (r *Response) Cacheable() bool {
	return alwaysCacheableStatus[r.StatusCode]
}

// CacheableTTL returns the time left until the server-declared expiration.
// It returns 0 when the status is not reliably cacheable, when no Expires
// header was present, or when the response already expired.
func (r *Response) CacheableTTL() time.Duration {
	if !r.Cacheable() || r.Expires.IsZero() {
		return 0
	}
	left := time.Until(r.Expires)
	if left < 0 {
		return 0
	}
	return left
}

// parseExpires parses an Expires header value. Returns the zero time when the
// header is absent or in none of the accepted formats.
func parseExpires(header string) time.Time {
	if header == "" {
		return time.Time{}
	}

	for _, layout := range []string{time.RFC1123, time.RFC850, time.ANSIC} {
		if t, err := time.Parse(layout, header); err == nil {
			return t
		}
	}

	return time.Time{}
}
