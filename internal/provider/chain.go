package provider

import (
	"context"
	"errors"
	"log/slog"
)

// Chain tries each provider in construction order and returns the
// first country code found. Order encodes cost and quota preference
// (free public sources before keyed ones) and is never randomized.
type Chain struct {
	providers []Provider
}

// NewChain creates a chain over the given providers. The order is
// fixed for the lifetime of the chain.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Len returns the number of configured providers.
func (c *Chain) Len() int {
	return len(c.providers)
}

// Resolve walks the chain until a provider yields a country code.
// A failing provider is logged and skipped; it never aborts
// resolution. ok is false when every provider missed or failed.
func (c *Chain) Resolve(ctx context.Context, addr string) (string, bool) {
	for _, p := range c.providers {
		code, err := c.lookupOne(ctx, p, addr)
		if err == nil {
			slog.Debug("country resolved", "provider", p.Name(), "ip", addr, "country", code)
			return code, true
		}
		if errors.Is(err, ErrNoResult) {
			slog.Debug("provider had no result", "provider", p.Name(), "ip", addr)
			continue
		}
		slog.Warn("provider lookup failed", "provider", p.Name(), "ip", addr, "error", err)
	}
	slog.Warn("all providers exhausted", "ip", addr)
	return "", false
}

// lookupOne applies the fixed per-call timeout on top of whatever
// deadline the caller already carries.
func (c *Chain) lookupOne(ctx context.Context, p Provider, addr string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()
	return p.Lookup(ctx, addr)
}
