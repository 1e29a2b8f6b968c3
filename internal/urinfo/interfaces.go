package urinfo

import "context"

// Fetcher performs a single HTTP request and returns the response or a transport error.
type Fetcher interface {
	Fetch(ctx context.Context, request FetchRequest) (FetchResponse, error)
}

// MetadataResolver resolves metadata for a URL. A non-nil error always wraps ErrUnresolvable.
type MetadataResolver interface {
	Resolve(ctx context.Context, uri string) (Metadata, error)
}
