//go:build !integration

package model_test

import (
	"errors"
	"testing"
	"time"

	"fitness-tracker/internal/domain"
	"fitness-tracker/internal/domain/model"
)

func validUser(t *testing.T) *model.User {
	t.Helper()
	u, err := model.NewUser("", "Emma", "Wojcik", time.Date(1997, 10, 25, 0, 0, 0, 0, time.UTC), "emma@wp.pl")
	if err != nil {
		t.Fatalf("NewUser failed: %v", err)
	}
	return u
}

func TestNewUser(t *testing.T) {
	t.Run("should generate an ID when none is given", func(t *testing.T) {
		u := validUser(t)
		if u.ID == "" {
			t.Fatal("expected a generated ID")
		}
	})

	t.Run("should keep a caller-supplied ID", func(t *testing.T) {
		u, err := model.NewUser("fixed", "Emma", "Wojcik", time.Date(1997, 10, 25, 0, 0, 0, 0, time.UTC), "emma@wp.pl")
		if err != nil {
			t.Fatalf("NewUser failed: %v", err)
		}
		if u.ID != "fixed" {
			t.Errorf("ID = %q, want fixed", u.ID)
		}
	})

	t.Run("should reject missing fields", func(t *testing.T) {
		birthdate := time.Date(1997, 10, 25, 0, 0, 0, 0, time.UTC)
		cases := []struct {
			name  string
			first string
			last  string
			born  time.Time
			email string
		}{
			{"empty first name", "", "Wojcik", birthdate, "emma@wp.pl"},
			{"empty last name", "Emma", "", birthdate, "emma@wp.pl"},
			{"zero birthdate", "Emma", "Wojcik", time.Time{}, "emma@wp.pl"},
			{"empty email", "Emma", "Wojcik", birthdate, ""},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := model.NewUser("", tc.first, tc.last, tc.born, tc.email)
				if !errors.Is(err, domain.ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
			})
		}
	})
}

func TestUserUpdate_Apply(t *testing.T) {
	t.Run("should not mutate the source", func(t *testing.T) {
		u := validUser(t)
		newFirst := "Eva"

		merged := model.UserUpdate{FirstName: &newFirst}.Apply(*u)
		if u.FirstName != "Emma" {
			t.Error("expected the source user to stay untouched")
		}
		if merged.FirstName != "Eva" {
			t.Errorf("merged first name = %q, want Eva", merged.FirstName)
		}
		if merged.ID != u.ID {
			t.Error("expected the ID to be preserved")
		}
	})

	t.Run("should be idempotent", func(t *testing.T) {
		u := validUser(t)
		newEmail := "eva@wp.pl"
		upd := model.UserUpdate{Email: &newEmail}

		once := upd.Apply(*u)
		twice := upd.Apply(once)
		if once != twice {
			t.Errorf("expected identical results, got %+v and %+v", once, twice)
		}
	})
}

func TestParseActivityType(t *testing.T) {
	cases := []struct {
		in   string
		want model.ActivityType
		ok   bool
	}{
		{"RUNNING", model.ActivityRunning, true},
		{"running", model.ActivityRunning, true},
		{" Tennis ", model.ActivityTennis, true},
		{"YOGA", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := model.ParseActivityType(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseActivityType(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseActivityType(%q) succeeded, want error", tc.in)
		}
	}
}

func TestNewTraining(t *testing.T) {
	owner := &model.User{ID: "u-1", FirstName: "Emma", LastName: "Wojcik", Email: "emma@wp.pl"}
	start := time.Date(2025, 7, 10, 8, 0, 0, 0, time.UTC)

	t.Run("should generate a sortable ID", func(t *testing.T) {
		tr, err := model.NewTraining("", owner, start, start.Add(time.Hour), model.ActivityRunning, 10, 8)
		if err != nil {
			t.Fatalf("NewTraining failed: %v", err)
		}
		if len(tr.ID) != 26 {
			t.Errorf("expected a 26-char ULID, got %q", tr.ID)
		}
	})

	t.Run("should reject a missing owner", func(t *testing.T) {
		_, err := model.NewTraining("", nil, start, start.Add(time.Hour), model.ActivityRunning, 10, 8)
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("should reject negative distance or speed", func(t *testing.T) {
		if _, err := model.NewTraining("", owner, start, start.Add(time.Hour), model.ActivityRunning, -1, 8); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument for distance, got %v", err)
		}
		if _, err := model.NewTraining("", owner, start, start.Add(time.Hour), model.ActivityRunning, 1, -8); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("expected ErrInvalidArgument for speed, got %v", err)
		}
	})

	t.Run("should allow an end before the start", func(t *testing.T) {
		if _, err := model.NewTraining("", owner, start, start.Add(-time.Hour), model.ActivityWalking, 0, 0); err != nil {
			t.Fatalf("expected reversed interval to be accepted, got %v", err)
		}
	})
}

func TestUserFullName(t *testing.T) {
	u := &model.User{FirstName: "Emma", LastName: "Wojcik"}
	if got := u.FullName(); got != "Emma Wojcik" {
		t.Errorf("FullName = %q", got)
	}
}
