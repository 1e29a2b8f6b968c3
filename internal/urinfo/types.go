package urinfo

import (
	"net/http"
	"time"
)

// Metadata is the result of a successful resolution.
type Metadata struct {
	URI     string            `json:"uri"`
	Headers map[string]string `json:"headers"`
	Title   string            `json:"title,omitempty"`
}

// HasTitle reports whether a title was extracted.
func (m Metadata) HasTitle() bool {
	return m.Title != ""
}

// FetchRequest describes one outbound request issued by the Resolver.
type FetchRequest struct {
	URL    string
	Method string
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// Usable reports whether the response can be used for resolution. Error statuses
// are treated the same as a missing response.
func (r FetchResponse) Usable() bool {
	return r.StatusCode > 0 && r.StatusCode < http.StatusBadRequest
}
