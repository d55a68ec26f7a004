// Package partition wraps the database-side partition maintenance
// procedures. It carries no algorithmic content of its own: the
// partition math and retention policy live in the stored procedures.
//
// Unlike the resolver, errors here are logged and returned to the
// caller rather than swallowed.
package partition

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Maintainer invokes the partition maintenance procedures.
type Maintainer struct {
	db *sqlx.DB
}

// Open connects to the PostgreSQL database at dsn.
func Open(dsn string) (*Maintainer, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Maintainer{db: db}, nil
}

// NewMaintainer wraps an existing connection.
func NewMaintainer(db *sqlx.DB) *Maintainer {
	return &Maintainer{db: db}
}

// CreateUpcoming creates the partitions for upcoming periods.
func (m *Maintainer) CreateUpcoming(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, `SELECT create_upcoming_partitions()`); err != nil {
		slog.Error("create_upcoming_partitions failed", "error", err)
		return fmt.Errorf("create_upcoming_partitions: %w", err)
	}
	return nil
}

// DropExpired drops partitions older than the retention window.
func (m *Maintainer) DropExpired(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, `SELECT drop_expired_partitions()`); err != nil {
		slog.Error("drop_expired_partitions failed", "error", err)
		return fmt.Errorf("drop_expired_partitions: %w", err)
	}
	return nil
}

// Info describes one child partition of a partitioned table.
type Info struct {
	Name string `db:"name"`
	Size string `db:"size"`
}

// List returns the child partitions of parent from the catalog,
// ordered by name.
func (m *Maintainer) List(ctx context.Context, parent string) ([]Info, error) {
	const query = `
		SELECT c.relname AS name,
		       pg_size_pretty(pg_total_relation_size(c.oid)) AS size
		FROM pg_inherits i
		JOIN pg_class c ON c.oid = i.inhrelid
		JOIN pg_class p ON p.oid = i.inhparent
		WHERE p.relname = $1
		ORDER BY c.relname`

	var partitions []Info
	if err := m.db.SelectContext(ctx, &partitions, query, parent); err != nil {
		slog.Error("listing partitions failed", "parent", parent, "error", err)
		return nil, fmt.Errorf("listing partitions of %s: %w", parent, err)
	}
	return partitions, nil
}

// Close releases the database connection.
func (m *Maintainer) Close() error {
	return m.db.Close()
}
