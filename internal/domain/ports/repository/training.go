package repository

import (
	"context"
	"time"

	"fitness-tracker/internal/domain/model"
)

// -----------------------------
// Trainings
// -----------------------------

type TrainingRepository interface {
	Save(ctx context.Context, tx Tx, t *model.Training) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.Training, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.Training, error)
	FindByUserID(ctx context.Context, tx Tx, userID string) ([]*model.Training, error)
	// FindEndedAfter returns trainings with endTime strictly after t.
	FindEndedAfter(ctx context.Context, tx Tx, t time.Time) ([]*model.Training, error)
	FindByActivityType(ctx context.Context, tx Tx, activityType model.ActivityType) ([]*model.Training, error)
	// FindByUserInRange returns the user's trainings with
	// start <= endTime <= end, inclusive on both bounds.
	FindByUserInRange(ctx context.Context, tx Tx, userID string, start, end time.Time) ([]*model.Training, error)
}
