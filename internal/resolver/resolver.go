// Package resolver orchestrates address classification, the result
// cache and the provider chain into a single country lookup.
package resolver

import (
	"context"

	"github.com/TomasB/geolookup/internal/cache"
	"github.com/TomasB/geolookup/internal/ipaddr"
	"golang.org/x/sync/singleflight"
)

// Source yields a country code for an address, reporting whether one
// was found. *provider.Chain is the production implementation.
type Source interface {
	Resolve(ctx context.Context, addr string) (string, bool)
}

// Resolver answers IP-to-country queries. Non-routable addresses and
// cached results short-circuit before any provider is contacted.
type Resolver struct {
	cache  *cache.Cache
	source Source
	group  *singleflight.Group
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCoalescing makes concurrent lookups of the same uncached address
// share a single provider round-trip instead of each walking the
// chain. Off by default, where concurrent callers race and the last
// cache write wins.
func WithCoalescing() Option {
	return func(r *Resolver) { r.group = new(singleflight.Group) }
}

// New creates a resolver over the given cache and source.
func New(c *cache.Cache, source Source, opts ...Option) *Resolver {
	r := &Resolver{cache: c, source: source}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the two-letter country code for addr, or "" when the
// address is non-routable or no provider could resolve it. Successful
// results are cached; absence is not, so the next call for the same
// address re-attempts every provider rather than pinning a transient
// outage.
func (r *Resolver) Resolve(ctx context.Context, addr string) string {
	if ipaddr.IsNonRoutable(addr) {
		return ""
	}
	if code, ok := r.cache.Get(addr); ok {
		return code
	}

	code, ok := r.lookup(ctx, addr)
	if !ok {
		return ""
	}
	r.cache.Put(addr, code)
	return code
}

type lookupResult struct {
	code string
	ok   bool
}

func (r *Resolver) lookup(ctx context.Context, addr string) (string, bool) {
	if r.group == nil {
		return r.source.Resolve(ctx, addr)
	}
	v, _, _ := r.group.Do(addr, func() (interface{}, error) {
		code, ok := r.source.Resolve(ctx, addr)
		return lookupResult{code: code, ok: ok}, nil
	})
	res := v.(lookupResult)
	return res.code, res.ok
}

// CacheStats exposes the cache contents for diagnostics.
func (r *Resolver) CacheStats() cache.Stats { return r.cache.Stats() }

// ClearCache empties the result cache.
func (r *Resolver) ClearCache() { r.cache.Clear() }
