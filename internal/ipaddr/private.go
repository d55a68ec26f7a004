// Package ipaddr classifies IP address strings and extracts client
// addresses from proxied HTTP requests.
package ipaddr

import "strings"

// privatePrefixes are matched literally against the address string.
// The "172." entry covers the whole 172.0.0.0/8 block, wider than the
// RFC 1918 172.16.0.0/12 range; callers depend on the existing
// filtering footprint, so the wider match is kept. Flagged for
// product sign-off before narrowing.
var privatePrefixes = []string{
	"192.168.",
	"10.",
	"172.",
	"fc00:",
	"fd00:",
	"fe80:",
}

// IsNonRoutable reports whether addr is a loopback, link-local or
// private-range address, which no external geolocation provider can
// resolve.
func IsNonRoutable(addr string) bool {
	if addr == "" || addr == "127.0.0.1" || addr == "::1" {
		return true
	}
	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(addr, prefix) {
			return true
		}
	}
	return false
}
