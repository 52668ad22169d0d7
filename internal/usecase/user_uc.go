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
var _ UserUseCase = (*userUC)(nil)

// UserUseCase owns the User lifecycle: CRUD plus the predicate searches the
// REST surface and the report job rely on.
type UserUseCase interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	SearchByEmail(ctx context.Context, fragment string) ([]*model.User, error)
	OlderThan(ctx context.Context, cutoff time.Time) ([]*model.User, error)
	Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type userUC struct {
	users repository.UserRepository
	tm    repository.TransactionManager
	log   *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, tm repository.TransactionManager, logger *zerolog.Logger) *userUC {
	return &userUC{
		users: users,
		tm:    tm,
		log:   logger,
	}
}

// Create persists a new user. The uniqueness probe and the insert run in one
// serializable transaction so two concurrent creates with the same email
// cannot both pass the check.
func (u *userUC) Create(ctx context.Context, usr *model.User) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.Create")()

	if usr == nil {
		return nil, domain.ErrInvalidArgument
	}
	if usr.ID != "" {
		// A pre-assigned ID means the caller confused create with update.
		return nil, domain.ErrInvalidArgument
	}

	created, err := model.NewUser("", usr.FirstName, usr.LastName, usr.Birthdate, usr.Email)
	if err != nil {
		return nil, err
	}

	txOpts := pgx.TxOptions{IsoLevel: pgx.Serializable}
	err = u.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		existing, err := u.users.FindByEmail(ctx, tx, created.Email)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		return u.users.Save(ctx, tx, created)
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("user_id", created.ID).Msg("user created")
	return created, nil
}

func (u *userUC) Get(ctx context.Context, id string) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.Get")()
	usr, err := u.users.FindByID(ctx, repository.NoTX, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	return usr, err
}

func (u *userUC) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.GetByEmail")()
	usr, err := u.users.FindByEmail(ctx, repository.NoTX, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUserNotFound
	}
	return usr, err
}

func (u *userUC) List(ctx context.Context) ([]*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.List")()
	return u.users.ListAll(ctx, repository.NoTX)
}

func (u *userUC) SearchByEmail(ctx context.Context, fragment string) ([]*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.SearchByEmail")()
	return u.users.SearchByEmailFragment(ctx, repository.NoTX, fragment)
}

func (u *userUC) OlderThan(ctx context.Context, cutoff time.Time) ([]*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.OlderThan")()
	return u.users.FindBornBefore(ctx, repository.NoTX, cutoff)
}

// Update merges the supplied fields into the stored user. Absent fields keep
// their current value; the ID never changes. Email uniqueness is not
// re-checked here; the store's unique index is the only guard on update.
func (u *userUC) Update(ctx context.Context, id string, upd model.UserUpdate) (*model.User, error) {
	defer logging.TraceDuration(u.log, "UserUC.Update")()

	var updated *model.User
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		current, err := u.users.FindByID(ctx, tx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		merged := upd.Apply(*current)
		if err := u.users.Save(ctx, tx, &merged); err != nil {
			return err
		}
		updated = &merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *userUC) Delete(ctx context.Context, id string) error {
	defer logging.TraceDuration(u.log, "UserUC.Delete")()

	err := u.users.Delete(ctx, repository.NoTX, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrUserNotFound
	}
	if err != nil {
		u.log.Error().Err(err).Str("user_id", id).Msg("failed to delete user")
		return err
	}
	u.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
