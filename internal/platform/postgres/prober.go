package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// Prober performs a trivial round-trip query against the database, used by
// the health endpoint to report store availability.
type Prober struct {
	db *sql.DB
}

// NewProber creates a Prober backed by the given connection pool.
func NewProber(db *sql.DB) *Prober {
	if db == nil {
		panic("db cannot be nil")
	}
	return &Prober{db: db}
}

// Ping executes SELECT 1 and returns any error encountered.
func (p *Prober) Ping(ctx context.Context) error {
	var one int
	if err := p.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database probe failed: %w", err)
	}
	return nil
}
