package usecase

import (
	"context"
	"errors"
	"time"

	"fitness-tracker/internal/domain"
	"fitness-tracker/internal/domain/model"
	"fitness-tracker/internal/domain/ports/repository"
	"fitness-tracker/internal/infra/logging"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ TrainingUseCase = (*trainingUC)(nil)

// TrainingUseCase owns the Training lifecycle. Each training references an
// existing user; the reference is resolved on create and on re-point.
type TrainingUseCase interface {
	Get(ctx context.Context, id string) (*model.Training, error)
	List(ctx context.Context) ([]*model.Training, error)
	ListForUser(ctx context.Context, userID string) ([]*model.Training, error)
	EndedAfter(ctx context.Context, t time.Time) ([]*model.Training, error)
	ByActivityType(ctx context.Context, activityType model.ActivityType) ([]*model.Training, error)
	ForUserInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.Training, error)
	Save(ctx context.Context, details model.TrainingDetails) (*model.Training, error)
	Update(ctx context.Context, id string, details model.TrainingUpdate) (*model.Training, error)
}

type trainingUC struct {
	trainings repository.TrainingRepository
	users     repository.UserRepository
	tm        repository.TransactionManager
	log       *zerolog.Logger
}

func NewTrainingUseCase(trainings repository.TrainingRepository, users repository.UserRepository, tm repository.TransactionManager, logger *zerolog.Logger) *trainingUC {
	return &trainingUC{
		trainings: trainings,
		users:     users,
		tm:        tm,
		log:       logger,
	}
}

func (t *trainingUC) Get(ctx context.Context, id string) (*model.Training, error) {
	defer logging.TraceDuration(t.log, "TrainingUC.Get")()
	tr, err := t.trainings.FindByID(ctx, repository.NoTX, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrTrainingNotFound
	}
	return tr, err
}

func (t *trainingUC) List(ctx context.Context) ([]*model.Training, error) {
	defer logging.TraceDuration(t.log, "TrainingUC.List")()
	return t.trainings.ListAll(ctx, repository.NoTX)
}

func (t *trainingUC) ListForUser(ctx context.Context, userID string) ([]*model.Training, error) {
	defer logging.TraceDuration(t.log, "TrainingUC.ListForUser")()
	return t.trainings.FindByUserID(ctx, repository.NoTX, userID)
}

func (t *trainingUC) EndedAfter(ctx context.Context, after time.Time) ([]*model.Training, error) {
	defer logging.TraceDuration(t.log, "TrainingUC.EndedAfter")()
	return t.trainings.FindEndedAfter(ctx, repository.NoTX, after)
}

func (t *trainingUC) ByActivityType(ctx context.Context, activityType model.ActivityType) ([]*model.Training, error) {
	defer logging.TraceDuration(t.log, "TrainingUC.ByActivityType")()
	if !activityType.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	return t.trainings.FindByActivityType(ctx, repository.NoTX, activityType)
}

func (t *trainingUC) ForUserInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.Training, error) {
	defer logging.TraceDuration(t.log, "TrainingUC.ForUserInRange")()
	return t.trainings.FindByUserInRange(ctx, repository.NoTX, userID, start, end)
}

// Save resolves the owning user and persists a new training. Resolve and
// insert share a transaction so a concurrent user deletion cannot leave an
// orphaned training behind.
func (t *trainingUC) Save(ctx context.Context, details model.TrainingDetails) (*model.Training, error) {
	defer logging.TraceDuration(t.log, "TrainingUC.Save")()

	var created *model.Training
	txOpts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	err := t.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		user, err := t.users.FindByID(ctx, tx, details.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		tr, err := model.NewTraining("", user, details.StartTime, details.EndTime, details.ActivityType, details.Distance, details.AverageSpeed)
		if err != nil {
			return err
		}
		if err := t.trainings.Save(ctx, tx, tr); err != nil {
			return err
		}
		created = tr
		return nil
	})
	if err != nil {
		return nil, err
	}
	t.log.Info().Str("training_id", created.ID).Str("user_id", created.User.ID).Msg("training saved")
	return created, nil
}

// Update overwrites start/end/type/distance/speed wholesale and, when a user
// ID is supplied, re-points the training to that user. Partial-merge
// semantics apply to the user reference only.
func (t *trainingUC) Update(ctx context.Context, id string, details model.TrainingUpdate) (*model.Training, error) {
	defer logging.TraceDuration(t.log, "TrainingUC.Update")()

	if !details.ActivityType.Valid() {
		return nil, domain.ErrInvalidArgument
	}

	var updated *model.Training
	err := t.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		tr, err := t.trainings.FindByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrTrainingNotFound
			}
			return err
		}
		if details.UserID != nil {
			user, err := t.users.FindByID(ctx, tx, *details.UserID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.ErrUserNotFound
				}
				return err
			}
			tr.User = user
		}
		tr.StartTime = details.StartTime
		tr.EndTime = details.EndTime
		tr.ActivityType = details.ActivityType
		tr.Distance = details.Distance
		tr.AverageSpeed = details.AverageSpeed
		if err := t.trainings.Save(ctx, tx, tr); err != nil {
			return err
		}
		updated = tr
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
