package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrSchemaMissing = errors.New("required table missing")
)

// requiredTables are the collections the pipeline cannot run without.
var requiredTables = []string{
	"entities",
	"relations",
	"publications",
	"relation_publications",
}

// VerifySchema checks that every required table exists. Called once at
// startup; a missing table is fatal before any query is served.
func VerifySchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, table := range requiredTables {
		var exists bool
		err := db.QueryRow(ctx,
			`SELECT to_regclass($1) IS NOT NULL`, table,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("verify schema: %w", err)
		}
		if !exists {
			return fmt.Errorf("%w: %s (run migrations first)", ErrSchemaMissing, table)
		}
	}
	return nil
}
