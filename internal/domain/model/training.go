package model

import (
	"strings"
	"time"

	"fitness-tracker/internal/domain"

	"github.com/oklog/ulid/v2"
)

// ActivityType enumerates the supported workout kinds.
type ActivityType string

const (
	ActivityRunning  ActivityType = "RUNNING"
	ActivityCycling  ActivityType = "CYCLING"
	ActivityWalking  ActivityType = "WALKING"
	ActivitySwimming ActivityType = "SWIMMING"
	ActivityTennis   ActivityType = "TENNIS"
)

var activityDisplayNames = map[ActivityType]string{
	ActivityRunning:  "Running",
	ActivityCycling:  "Cycling",
	ActivityWalking:  "Walking",
	ActivitySwimming: "Swimming",
	ActivityTennis:   "Tennis",
}

func (a ActivityType) Valid() bool {
	_, ok := activityDisplayNames[a]
	return ok
}

func (a ActivityType) DisplayName() string { return activityDisplayNames[a] }

// ParseActivityType accepts either the enum form ("RUNNING") or the display
// form ("Running"), case-insensitively.
func ParseActivityType(s string) (ActivityType, error) {
	at := ActivityType(strings.ToUpper(strings.TrimSpace(s)))
	if !at.Valid() {
		return "", domain.ErrInvalidArgument
	}
	return at, nil
}

// Training is a single recorded workout owned by a User. The User reference
// is required; the entity never outlives its owner at the store level.
type Training struct {
	ID           string       `json:"id"`
	User         *User        `json:"user"`
	StartTime    time.Time    `json:"start_time"`
	EndTime      time.Time    `json:"end_time"`
	ActivityType ActivityType `json:"activity_type"`
	Distance     float64      `json:"distance"`
	AverageSpeed float64      `json:"average_speed"`
}

// NewTraining builds a training for an existing user. An end time before the
// start time is stored as-is.
func NewTraining(id string, user *User, startTime, endTime time.Time, activityType ActivityType, distance, averageSpeed float64) (*Training, error) {
	if id == "" {
		id = ulid.Make().String()
	}
	if user.IsZero() {
		return nil, domain.ErrInvalidArgument
	}
	if !activityType.Valid() {
		return nil, domain.ErrInvalidArgument
	}
	if distance < 0 || averageSpeed < 0 {
		return nil, domain.ErrInvalidArgument
	}
	t := &Training{
		ID:           id,
		User:         user,
		StartTime:    startTime,
		EndTime:      endTime,
		ActivityType: activityType,
		Distance:     distance,
		AverageSpeed: averageSpeed,
	}
	return t, nil
}

// TrainingDetails carries the full field set for creating a training.
type TrainingDetails struct {
	UserID       string
	StartTime    time.Time
	EndTime      time.Time
	ActivityType ActivityType
	Distance     float64
	AverageSpeed float64
}

// TrainingUpdate replaces every detail field of an existing training.
// Only the user reference is optional: a nil UserID keeps the current owner.
type TrainingUpdate struct {
	UserID       *string
	StartTime    time.Time
	EndTime      time.Time
	ActivityType ActivityType
	Distance     float64
	AverageSpeed float64
}
