package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"fitness-tracker/internal/domain"
	"fitness-tracker/internal/domain/model"
	"fitness-tracker/internal/domain/ports/repository"
)

var _ repository.ReportRunRepository = (*reportRunRepo)(nil)

type reportRunRepo struct {
	pool *pgxpool.Pool
}

func NewReportRunRepo(pool *pgxpool.Pool) repository.ReportRunRepository {
	return &reportRunRepo{pool: pool}
}

func (r *reportRunRepo) Save(ctx context.Context, tx repository.Tx, run *model.ReportRun) error {
	const q = `
INSERT INTO report_runs (id, period, users_processed, notifications_queued, completed_at)
VALUES ($1, $2, $3, $4, $5)`

	// The UNIQUE constraint on period is the duplicate-run guard of record.
	_, err := execSQL(ctx, r.pool, tx, q, run.ID, run.Period, run.UsersProcessed, run.NotificationsQueued, run.CompletedAt)
	return err
}

func (r *reportRunRepo) Exists(ctx context.Context, tx repository.Tx, period string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM report_runs WHERE period = $1)`
	row, err := pickRow(ctx, r.pool, tx, q, period)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := row.Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, domain.ErrReadDatabaseRow
	}
	return exists, nil
}
