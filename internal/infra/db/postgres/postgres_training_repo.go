package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"fitness-tracker/internal/domain"
	"fitness-tracker/internal/domain/model"
	"fitness-tracker/internal/domain/ports/repository"
)

var _ repository.TrainingRepository = (*PostgresTrainingRepo)(nil)

// PostgresTrainingRepo reads trainings joined with their owning user so the
// returned entities carry a fully populated user reference.
type PostgresTrainingRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresTrainingRepo(pool *pgxpool.Pool) *PostgresTrainingRepo {
	return &PostgresTrainingRepo{pool: pool}
}

const trainingSelect = `
SELECT t.id, t.start_time, t.end_time, t.activity_type, t.distance, t.average_speed,
       u.id, u.first_name, u.last_name, u.birthdate, u.email
  FROM trainings t
  JOIN users u ON u.id = t.user_id`

func (r *PostgresTrainingRepo) Save(ctx context.Context, tx repository.Tx, t *model.Training) error {
	const q = `
INSERT INTO trainings (id, user_id, start_time, end_time, activity_type, distance, average_speed)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (id) DO UPDATE SET
  user_id=$2, start_time=$3, end_time=$4, activity_type=$5, distance=$6, average_speed=$7;
`
	_, err := execSQL(ctx, r.pool, tx, q, t.ID, t.User.ID, t.StartTime, t.EndTime, string(t.ActivityType), t.Distance, t.AverageSpeed)
	return err
}

func (r *PostgresTrainingRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Training, error) {
	row, err := pickRow(ctx, r.pool, tx, trainingSelect+` WHERE t.id=$1;`, id)
	if err != nil {
		return nil, err
	}
	return scanTraining(row)
}

func (r *PostgresTrainingRepo) ListAll(ctx context.Context, tx repository.Tx) ([]*model.Training, error) {
	rows, err := queryRows(ctx, r.pool, tx, trainingSelect+`;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrainings(rows)
}

func (r *PostgresTrainingRepo) FindByUserID(ctx context.Context, tx repository.Tx, userID string) ([]*model.Training, error) {
	rows, err := queryRows(ctx, r.pool, tx, trainingSelect+` WHERE t.user_id=$1;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrainings(rows)
}

func (r *PostgresTrainingRepo) FindEndedAfter(ctx context.Context, tx repository.Tx, after time.Time) ([]*model.Training, error) {
	// Strict inequality: a training ending exactly at the cutoff is excluded.
	rows, err := queryRows(ctx, r.pool, tx, trainingSelect+` WHERE t.end_time > $1;`, after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrainings(rows)
}

func (r *PostgresTrainingRepo) FindByActivityType(ctx context.Context, tx repository.Tx, activityType model.ActivityType) ([]*model.Training, error) {
	rows, err := queryRows(ctx, r.pool, tx, trainingSelect+` WHERE t.activity_type=$1;`, string(activityType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrainings(rows)
}

func (r *PostgresTrainingRepo) FindByUserInRange(ctx context.Context, tx repository.Tx, userID string, start, end time.Time) ([]*model.Training, error) {
	// Inclusive on both bounds.
	const cond = ` WHERE t.user_id=$1 AND t.end_time >= $2 AND t.end_time <= $3;`
	rows, err := queryRows(ctx, r.pool, tx, trainingSelect+cond, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrainings(rows)
}

func scanTrainingFields(s interface{ Scan(...interface{}) error }) (*model.Training, error) {
	var t model.Training
	var u model.User
	var activity string
	err := s.Scan(&t.ID, &t.StartTime, &t.EndTime, &activity, &t.Distance, &t.AverageSpeed,
		&u.ID, &u.FirstName, &u.LastName, &u.Birthdate, &u.Email)
	if err != nil {
		return nil, err
	}
	t.ActivityType = model.ActivityType(activity)
	t.User = &u
	return &t, nil
}

func scanTraining(row pgx.Row) (*model.Training, error) {
	t, err := scanTrainingFields(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func scanTrainings(rows pgx.Rows) ([]*model.Training, error) {
	out := []*model.Training{}
	for rows.Next() {
		t, err := scanTrainingFields(rows)
		if err != nil {
			return nil, domain.ErrReadDatabaseRow
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
