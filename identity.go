package mywebapi

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ResourceKeyFunc derives the resource identity for a prepared fetch. The
// same identity string keys both the response cache and the open-request
// tracker, so it must be stable and unique per distinct method + resolved
// URL (query parameters included).
type ResourceKeyFunc func(method, url string) string

// DefaultResourceKey hashes method and resolved URL into a compact hex key.
// Headers and body are deliberately not part of the identity: two requests
// for the same URL are the same resource.
func DefaultResourceKey(method, url string) string {
	d := xxhash.New()
	_, _ = d.WriteString(method)
	_, _ = d.WriteString(":")
	_, _ = d.WriteString(url)
	return strconv.FormatUint(d.Sum64(), 16)
}
