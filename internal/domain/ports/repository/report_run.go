package repository

import (
	"context"

	"fitness-tracker/internal/domain/model"
)

// -----------------------------
// Report runs
// -----------------------------

type ReportRunRepository interface {
	// Save records that the monthly report completed for a period.
	Save(ctx context.Context, tx Tx, run *model.ReportRun) error
	// Exists checks whether a run was already recorded for the period.
	Exists(ctx context.Context, tx Tx, period string) (bool, error)
}
