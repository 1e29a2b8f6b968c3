// Package cache provides an in-process TTL cache in front of a urinfo.MetadataResolver.
package cache

import (
	"context"
	"maps"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/JakeFAU/urinfo/internal/metrics"
	"github.com/JakeFAU/urinfo/internal/urinfo"
)

// Resolver caches successful resolutions by URI. Failures are never cached.
type Resolver struct {
	next    urinfo.MetadataResolver
	entries *expirable.LRU[string, urinfo.Metadata]
}

var _ urinfo.MetadataResolver = (*Resolver)(nil)

// New wraps next with a cache holding at most size entries for ttl each.
func New(next urinfo.MetadataResolver, size int, ttl time.Duration) *Resolver {
	return &Resolver{
		next:    next,
		entries: expirable.NewLRU[string, urinfo.Metadata](size, nil, ttl),
	}
}

// Resolve returns a cached result when one is live, otherwise delegates.
func (c *Resolver) Resolve(ctx context.Context, uri string) (urinfo.Metadata, error) {
	if meta, ok := c.entries.Get(uri); ok {
		metrics.ObserveCacheLookup(true)
		return clone(meta), nil
	}
	metrics.ObserveCacheLookup(false)

	meta, err := c.next.Resolve(ctx, uri)
	if err != nil {
		return urinfo.Metadata{}, err
	}
	c.entries.Add(uri, clone(meta))
	return meta, nil
}

// Len reports the number of live entries.
func (c *Resolver) Len() int {
	return c.entries.Len()
}

// Purge drops every entry.
func (c *Resolver) Purge() {
	c.entries.Purge()
}

func clone(meta urinfo.Metadata) urinfo.Metadata {
	meta.Headers = maps.Clone(meta.Headers)
	return meta
}
