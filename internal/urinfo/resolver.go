package urinfo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/urinfo/internal/metrics"
)

// Resolver probes a URL with HEAD and, for HTML resources, fetches the body to
// extract its title. It holds no per-call state and is safe for concurrent use.
type Resolver struct {
	fetcher Fetcher
	logger  *zap.Logger
}

var _ MetadataResolver = (*Resolver)(nil)

// NewResolver builds a Resolver around the given transport.
func NewResolver(fetcher Fetcher, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Resolve returns the metadata for uri. Any transport failure, timeout or unusable
// response on either request fails the whole resolution.
func (r *Resolver) Resolve(ctx context.Context, uri string) (Metadata, error) {
	start := time.Now()
	meta, err := r.resolve(ctx, uri)
	outcome := "success"
	if err != nil {
		outcome = "failure"
		r.logger.Info("resolution failed", zap.String("uri", uri), zap.Error(err))
	}
	metrics.ObserveResolution(outcome, time.Since(start))
	return meta, err
}

func (r *Resolver) resolve(ctx context.Context, uri string) (Metadata, error) {
	probe, err := r.do(ctx, http.MethodHead, uri)
	if err != nil {
		return Metadata{}, failure("probe", err)
	}

	meta := Metadata{
		URI:     uri,
		Headers: NormalizeHeaders(probe.Headers),
	}
	if !isHTML(meta.Headers) {
		return meta, nil
	}

	page, err := r.do(ctx, http.MethodGet, uri)
	if err != nil {
		return Metadata{}, failure("fetch", err)
	}
	if title, ok := extractTitle(page.Body); ok {
		meta.Title = title
	}
	r.logger.Debug("resolved html resource",
		zap.String("uri", uri),
		zap.String("final_url", page.URL),
		zap.Bool("has_title", meta.HasTitle()),
	)
	return meta, nil
}

func (r *Resolver) do(ctx context.Context, method, uri string) (FetchResponse, error) {
	resp, err := r.fetcher.Fetch(ctx, FetchRequest{URL: uri, Method: method})
	if err != nil {
		return FetchResponse{}, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, uri, err)
	}
	if !resp.Usable() {
		return FetchResponse{}, fmt.Errorf("%w: %s %s: status %d", ErrNoResponse, method, uri, resp.StatusCode)
	}
	return resp, nil
}
