package model

import (
	"time"

	"fitness-tracker/internal/domain"

	"github.com/google/uuid"
)

// User is a domain entity representing a tracked account. Email doubles as a
// natural uniqueness key, enforced at creation time by the use case layer.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Birthdate time.Time `json:"birthdate"`
	Email     string    `json:"email"`
}

func NewUser(id, firstName, lastName string, birthdate time.Time, email string) (*User, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if firstName == "" || lastName == "" {
		return nil, domain.ErrInvalidArgument
	}
	if email == "" {
		return nil, domain.ErrInvalidArgument
	}
	if birthdate.IsZero() {
		return nil, domain.ErrInvalidArgument
	}
	u := &User{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Birthdate: birthdate,
		Email:     email,
	}
	return u, nil
}

func (u *User) IsZero() bool { return u == nil || u.ID == "" }

// FullName is used when addressing the user in notifications.
func (u *User) FullName() string { return u.FirstName + " " + u.LastName }

// UserUpdate carries a partial update: nil fields keep their current value.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Birthdate *time.Time
	Email     *string
}

// Apply merges the update into a copy of u. The merge is pure: u is never
// mutated, the ID is preserved, and applying the same update twice yields
// the same result.
func (p UserUpdate) Apply(u User) User {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Birthdate != nil {
		u.Birthdate = *p.Birthdate
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	return u
}
