// Package mywebapi provides an asynchronous client for web-based APIs with
// built-in response caching and request de-duplication:
//
//   - Logical request descriptions (path, method, URL parameters, body,
//     content name, cache duration) decoupled from the HTTP transport
//   - Per-entry expiring response cache with lazy sweep-on-read
//   - Content-name index for bulk invalidation of related responses
//   - Open-request tracking (at most one in-flight fetch per resource)
//   - Listener callbacks on request resolution and content invalidation
//   - Prometheus metrics and lightweight structured debug logging
//
// Design goals:
//   - Small surface area – functional options configure everything
//   - Safe concurrent use of a single *Client instance
//   - Fire-and-forget dispatch: StartRequest never blocks the caller
//   - Extensibility via pluggable resource keys, cache and metrics
//
// Typical usage:
//
//	client := mywebapi.New("https://api.example.com/v1/",
//	    mywebapi.WithTimeout(10*time.Second),
//	    mywebapi.WithMetrics(),
//	)
//	client.AddListener(myListener)
//	client.StartRequest(&articleRequest{ID: 42})
//
// A request whose resource is already being fetched is dropped silently; the
// fetch already in flight resolves it for every listener. A request whose
// content name has a fresh cached response completes synchronously without a
// network call. Everything else is fetched on a bounded worker, cached when
// the request asks for it, and reported to listeners whether it succeeded,
// failed or timed out. Retries are deliberately left to the caller.
package mywebapi
