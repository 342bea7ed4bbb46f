package postgres

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schema string

// Schema returns the bootstrap DDL.
func Schema() string {
	return schema
}

// EnsureSchema creates the tables that do not exist yet.
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.Conn(ctx).Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
