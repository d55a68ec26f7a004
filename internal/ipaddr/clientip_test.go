package ipaddr

import (
	"net/http"
	"testing"
)

func TestClientIP_ForwardedForTakesPrecedence(t *testing.T) {
	h := http.Header{}
	h.Set("X-Forwarded-For", "1.2.3.4, 5.6.6.6")
	h.Set("X-Real-IP", "9.9.9.9")

	if got := ClientIP(h, "203.0.113.9:51423"); got != "1.2.3.4" {
		t.Errorf("expected 1.2.3.4, got %q", got)
	}
}

func TestClientIP_ForwardedForFirstEntryTrimmed(t *testing.T) {
	h := http.Header{}
	h.Set("X-Forwarded-For", "  1.2.3.4  ,5.6.6.6")

	if got := ClientIP(h, ""); got != "1.2.3.4" {
		t.Errorf("expected trimmed first entry, got %q", got)
	}
}

func TestClientIP_RealIP(t *testing.T) {
	h := http.Header{}
	h.Set("X-Real-IP", "9.9.9.9")

	if got := ClientIP(h, "203.0.113.9:51423"); got != "9.9.9.9" {
		t.Errorf("expected 9.9.9.9, got %q", got)
	}
}

func TestClientIP_CloudflareConnectingIP(t *testing.T) {
	h := http.Header{}
	h.Set("CF-Connecting-IP", "7.7.7.7")

	if got := ClientIP(h, "203.0.113.9:51423"); got != "7.7.7.7" {
		t.Errorf("expected 7.7.7.7, got %q", got)
	}
}

func TestClientIP_RemoteAddrFallback(t *testing.T) {
	if got := ClientIP(http.Header{}, "203.0.113.9:51423"); got != "203.0.113.9" {
		t.Errorf("expected host part of remote address, got %q", got)
	}
}

func TestClientIP_RemoteAddrWithoutPort(t *testing.T) {
	if got := ClientIP(http.Header{}, "203.0.113.9"); got != "203.0.113.9" {
		t.Errorf("expected remote address as-is, got %q", got)
	}
}

func TestClientIP_NoSources(t *testing.T) {
	if got := ClientIP(http.Header{}, ""); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}
