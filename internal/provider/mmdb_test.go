package provider

import (
	"context"
	"errors"
	"os"
	"testing"
)

const testMMDBPath = "../../testdata/GeoLite2-Country-Test.mmdb"

func skipIfNoMMDB(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(testMMDBPath); os.IsNotExist(err) {
		t.Skip("test MMDB file not found; download it with: curl -L -o testdata/GeoLite2-Country-Test.mmdb https://github.com/maxmind/MaxMind-DB/raw/main/test-data/GeoLite2-Country-Test.mmdb")
	}
}

func TestNewMMDB_InvalidPath(t *testing.T) {
	_, err := NewMMDB("/nonexistent/path.mmdb")
	if err == nil {
		t.Fatal("expected error for invalid path")
	}
}

func TestMMDB_Lookup(t *testing.T) {
	skipIfNoMMDB(t)

	m, err := NewMMDB(testMMDBPath)
	if err != nil {
		t.Fatalf("failed to open MMDB: %v", err)
	}
	defer m.Close()

	tests := []struct {
		name string
		addr string
		want string
	}{
		{name: "UK IP", addr: "2.125.160.216", want: "GB"},
		{name: "US IP", addr: "216.160.83.56", want: "US"},
		{name: "IPv6 JP", addr: "2001:218::", want: "JP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := m.Lookup(context.Background(), tt.addr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if code != tt.want {
				t.Errorf("expected %s, got %s", tt.want, code)
			}
		})
	}
}

func TestMMDB_Lookup_NotAnIP(t *testing.T) {
	skipIfNoMMDB(t)

	m, err := NewMMDB(testMMDBPath)
	if err != nil {
		t.Fatalf("failed to open MMDB: %v", err)
	}
	defer m.Close()

	_, err = m.Lookup(context.Background(), "not-an-ip")
	if !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
}

func TestMMDB_Lookup_Uncovered(t *testing.T) {
	skipIfNoMMDB(t)

	m, err := NewMMDB(testMMDBPath)
	if err != nil {
		t.Fatalf("failed to open MMDB: %v", err)
	}
	defer m.Close()

	_, err = m.Lookup(context.Background(), "203.0.113.7")
	if !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult for uncovered address, got %v", err)
	}
}
