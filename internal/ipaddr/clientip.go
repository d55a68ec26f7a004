package ipaddr

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP derives the originating client address from proxy headers,
// falling back to the transport-level remote address. Precedence:
// X-Forwarded-For (first comma-separated entry, trimmed), X-Real-IP,
// CF-Connecting-IP, then remoteAddr. The first present source wins;
// values are not validated or merged. Returns "" when no source is
// present.
func ClientIP(header http.Header, remoteAddr string) string {
	if v := header.Get("X-Forwarded-For"); v != "" {
		first, _, _ := strings.Cut(v, ",")
		return strings.TrimSpace(first)
	}
	if v := header.Get("X-Real-IP"); v != "" {
		return v
	}
	if v := header.Get("CF-Connecting-IP"); v != "" {
		return v
	}
	if remoteAddr == "" {
		return ""
	}
	// http.Request.RemoteAddr carries a port; proxy headers never do.
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
