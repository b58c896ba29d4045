package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema portável entre postgres e sqlite: tipos TEXT/INTEGER/TIMESTAMP
// e defaults simples; ids são uuids gerados na aplicação.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		id                  TEXT PRIMARY KEY,
		email               TEXT NOT NULL UNIQUE,
		name                TEXT NOT NULL,
		company             TEXT NOT NULL DEFAULT '',
		phone               TEXT NOT NULL DEFAULT '',
		data_score          INTEGER NOT NULL DEFAULT 0,
		process_score       INTEGER NOT NULL DEFAULT 0,
		team_score          INTEGER NOT NULL DEFAULT 0,
		strategic_score     INTEGER NOT NULL DEFAULT 0,
		change_score        INTEGER NOT NULL DEFAULT 0,
		total_score         INTEGER NOT NULL DEFAULT 0,
		percentage          INTEGER NOT NULL DEFAULT 0,
		readiness_level     TEXT NOT NULL DEFAULT '',
		email_sequence_step INTEGER NOT NULL DEFAULT 1,
		last_email_sent_at  TIMESTAMP NOT NULL,
		unsubscribed        BOOLEAN NOT NULL DEFAULT FALSE,
		created_at          TIMESTAMP NOT NULL,
		updated_at          TIMESTAMP NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS suppressions (
		email      TEXT PRIMARY KEY,
		created_at TIMESTAMP NOT NULL
	)`,

	// A varredura do scheduler filtra por (passo, último envio)
	`CREATE INDEX IF NOT EXISTS idx_leads_sequence
		ON leads (email_sequence_step, last_email_sent_at)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
