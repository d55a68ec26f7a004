// Package provider implements the external geolocation sources and
// the ordered fallback chain that queries them.
package provider

import (
	"context"
	"errors"
	"time"
)

// ErrNoResult means a source answered but had no usable country code
// for the address. The chain treats it as absence, not failure.
var ErrNoResult = errors.New("provider returned no result")

// lookupTimeout bounds every single provider call.
const lookupTimeout = 3 * time.Second

// Provider is a single geolocation source. Lookup returns a
// two-letter country code, ErrNoResult for an explicit miss, or any
// other error for a transport-level failure.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, addr string) (string, error)
}
