package mywebapi

import (
	"net/url"
)

// ParamList is an ordered-by-name list of URL query parameters. Encoding is
// stable (keys sorted, net/url escaping), so two requests carrying the same
// parameters always produce the same resource identity.
//
// A ParamList is not safe for concurrent mutation; the client copies it via
// Merge before use.
type ParamList struct {
	values url.Values
}

// NewParamList creates an empty parameter list.
func NewParamList() *ParamList {
	return &ParamList{values: url.Values{}}
}

// Set assigns a single value to the named parameter, replacing any previous
// value. It returns the list for chaining.
func (p *ParamList) Set(name, value string) *ParamList {
	p.values.Set(name, value)
	return p
}

// Get returns the value of the named parameter, or "" when unset.
func (p *ParamList) Get(name string) string {
	return p.values.Get(name)
}

// Remove deletes the named parameter. No-op when unset.
func (p *ParamList) Remove(name string) {
	p.values.Del(name)
}

// Len returns the number of parameters in the list.
func (p *ParamList) Len() int {
	return len(p.values)
}

// Merge returns a new list containing the receiver's parameters plus every
// parameter of other that the receiver does not already define. Neither input
// is modified. A nil receiver or argument is treated as empty.
func (p *ParamList) Merge(other *ParamList) *ParamList {
	merged := NewParamList()
	if other != nil {
		for name, vals := range other.values {
			if len(vals) > 0 {
				merged.values.Set(name, vals[0])
			}
		}
	}
	if p != nil {
		for name, vals := range p.values {
			if len(vals) > 0 {
				merged.values.Set(name, vals[0])
			}
		}
	}
	return merged
}

// Query renders the list as a URL query string including the leading "?".
// Returns "" for an empty list. Keys are sorted for stable output.
func (p *ParamList) Query() string {
	if p == nil || len(p.values) == 0 {
		return ""
	}
	return "?" + p.values.Encode()
}
