package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/oschwald/geoip2-golang"
)

// MMDB resolves addresses against a local MaxMind database file. The
// file is watched with fsnotify and reopened when it is rewritten, so
// a database refresh does not require a restart. It is appended after
// the remote providers when configured.
type MMDB struct {
	path    string
	watcher *fsnotify.Watcher

	mu sync.RWMutex
	db *geoip2.Reader
}

// NewMMDB opens the database at path and starts watching it.
func NewMMDB(path string) (*MMDB, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MMDB file: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	// Watch the directory: editors and atomic-rename updates replace
	// the file, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		db.Close()
		watcher.Close()
		return nil, fmt.Errorf("failed to watch MMDB directory: %w", err)
	}

	m := &MMDB{path: filepath.Clean(path), watcher: watcher, db: db}
	go m.watch()
	return m, nil
}

// Name identifies the provider in logs.
func (m *MMDB) Name() string { return "mmdb" }

// Lookup returns the ISO country code for addr. Addresses the
// database does not cover, and strings that are not IP literals, are
// misses rather than errors.
func (m *MMDB) Lookup(_ context.Context, addr string) (string, error) {
	ip := net.ParseIP(addr)
	if ip == nil {
		return "", ErrNoResult
	}

	m.mu.RLock()
	record, err := m.db.Country(ip)
	m.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("country lookup failed: %w", err)
	}
	if record.Country.IsoCode == "" {
		return "", ErrNoResult
	}
	return record.Country.IsoCode, nil
}

func (m *MMDB) watch() {
	for {
		select {
		case ev, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != m.path || !ev.Op.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			m.reload()
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("MMDB watcher error", "error", err)
		}
	}
}

func (m *MMDB) reload() {
	db, err := geoip2.Open(m.path)
	if err != nil {
		slog.Warn("MMDB reload failed, keeping previous database", "path", m.path, "error", err)
		return
	}

	m.mu.Lock()
	old := m.db
	m.db = db
	m.mu.Unlock()
	old.Close()

	slog.Info("MMDB reloaded", "path", m.path)
}

// Close stops the watcher and releases the database.
func (m *MMDB) Close() error {
	m.watcher.Close()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.db.Close()
}
