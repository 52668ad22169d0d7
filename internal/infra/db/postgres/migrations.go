package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations applies the schema statements in order. Statements are
// idempotent so startup can re-run them safely.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         VARCHAR(36) PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name  TEXT NOT NULL,
		birthdate  DATE NOT NULL,
		email      TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS trainings (
		id            VARCHAR(26) PRIMARY KEY,
		user_id       VARCHAR(36) NOT NULL REFERENCES users(id),
		start_time    TIMESTAMPTZ NOT NULL,
		end_time      TIMESTAMPTZ NOT NULL,
		activity_type VARCHAR(20) NOT NULL,
		distance      DOUBLE PRECISION NOT NULL,
		average_speed DOUBLE PRECISION NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_trainings_user_end ON trainings (user_id, end_time)`,
	`CREATE INDEX IF NOT EXISTS idx_trainings_end_time ON trainings (end_time)`,
	`CREATE INDEX IF NOT EXISTS idx_trainings_activity ON trainings (activity_type)`,
	`CREATE TABLE IF NOT EXISTS report_runs (
		id                    VARCHAR(36) PRIMARY KEY,
		period                VARCHAR(7) NOT NULL UNIQUE,
		users_processed       INTEGER NOT NULL,
		notifications_queued  INTEGER NOT NULL,
		completed_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}
