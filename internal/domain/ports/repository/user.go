package repository

import (
	"context"
	"time"

	"fitness-tracker/internal/domain/model"
)

// -----------------------------
// Users
// -----------------------------

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	// FindByEmail matches the email exactly (case-sensitive).
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.User, error)
	// SearchByEmailFragment matches a case-insensitive substring of the email.
	SearchByEmailFragment(ctx context.Context, tx Tx, fragment string) ([]*model.User, error)
	// FindBornBefore returns users whose birthdate is strictly before cutoff.
	FindBornBefore(ctx context.Context, tx Tx, cutoff time.Time) ([]*model.User, error)
	ListAll(ctx context.Context, tx Tx) ([]*model.User, error)
	Delete(ctx context.Context, tx Tx, id string) error
	Exists(ctx context.Context, tx Tx, id string) (bool, error)
}
