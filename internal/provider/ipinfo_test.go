package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newIPInfoForTest(srv *httptest.Server, token string) *IPInfo {
	p := NewIPInfo(token)
	p.BaseURL = srv.URL
	p.HTTPClient = srv.Client()
	return p
}

func TestIPInfo_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/8.8.8.8/country" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.RawQuery != "" {
			t.Errorf("expected no query without a token, got %q", r.URL.RawQuery)
		}
		w.Write([]byte("GB\n"))
	}))
	defer srv.Close()

	code, err := newIPInfoForTest(srv, "").Lookup(context.Background(), "8.8.8.8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "GB" {
		t.Errorf("expected GB, got %s", code)
	}
}

func TestIPInfo_TokenInQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("token"); got != "secret" {
			t.Errorf("expected token=secret, got %q", got)
		}
		w.Write([]byte("DE"))
	}))
	defer srv.Close()

	code, err := newIPInfoForTest(srv, "secret").Lookup(context.Background(), "8.8.8.8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != "DE" {
		t.Errorf("expected DE, got %s", code)
	}
}

func TestIPInfo_NonTwoCharBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("error"))
	}))
	defer srv.Close()

	_, err := newIPInfoForTest(srv, "").Lookup(context.Background(), "8.8.8.8")
	if !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult for a 5-character body, got %v", err)
	}
}

func TestIPInfo_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	defer srv.Close()

	_, err := newIPInfoForTest(srv, "").Lookup(context.Background(), "8.8.8.8")
	if !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}
