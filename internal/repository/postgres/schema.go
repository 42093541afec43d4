package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates tables and indexes if they don't exist.
//
// Documents reference playbooks by id without a foreign key: deleting a
// playbook leaves its documents in place. Reviews cascade with their document.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, tablePrefix string) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				content TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Playbooks),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				playbook_id TEXT NOT NULL,
				name TEXT NOT NULL,
				content TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'processing',
				file_url TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Documents),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				document_id TEXT NOT NULL REFERENCES %s(id) ON DELETE CASCADE,
				conflicts TEXT NOT NULL DEFAULT '',
				gaps TEXT NOT NULL DEFAULT '',
				irrelevant TEXT NOT NULL DEFAULT '',
				corrections TEXT,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`, tables.Reviews, tables.Documents),

		fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS idx_%splaybooks_name_lower ON %s (lower(name))`, tablePrefix, tables.Playbooks),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sdocuments_created_at ON %s (created_at DESC)`, tablePrefix, tables.Documents),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%sreviews_document_created ON %s (document_id, created_at DESC)`, tablePrefix, tables.Reviews),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropAll drops every table, children first.
func DropAll(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range tables.All() {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
	}
	return nil
}

// ClearData deletes all rows but keeps the schema.
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	for _, table := range tables.All() {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
