package usecase

import (
	"context"
	"fmt"
	"time"

	"fitness-tracker/internal/domain/model"
	"fitness-tracker/internal/domain/ports/adapter"
	"fitness-tracker/internal/domain/ports/repository"
	"fitness-tracker/internal/infra/logging"
	"fitness-tracker/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const summarySubject = "Monthly Training Summary"

// Compile-time check
var _ ReportUseCase = (*reportUC)(nil)

// ReportUseCase computes each user's prior-month training count and hands
// one summary notification per user to the dispatcher.
type ReportUseCase interface {
	// GenerateMonthlySummaries runs one report cycle relative to now and
	// returns the number of notifications queued.
	GenerateMonthlySummaries(ctx context.Context, now time.Time) (int, error)
}

type reportUC struct {
	users      repository.UserRepository
	trainings  repository.TrainingRepository
	runs       repository.ReportRunRepository
	dispatcher adapter.NotificationDispatcher
	loc        *time.Location
	log        *zerolog.Logger
}

func NewReportUseCase(
	users repository.UserRepository,
	trainings repository.TrainingRepository,
	runs repository.ReportRunRepository,
	dispatcher adapter.NotificationDispatcher,
	loc *time.Location,
	logger *zerolog.Logger,
) *reportUC {
	if loc == nil {
		loc = time.UTC
	}
	return &reportUC{
		users:      users,
		trainings:  trainings,
		runs:       runs,
		dispatcher: dispatcher,
		loc:        loc,
		log:        logger,
	}
}

func (r *reportUC) GenerateMonthlySummaries(ctx context.Context, now time.Time) (int, error) {
	defer logging.TraceDuration(r.log, "ReportUC.GenerateMonthlySummaries")()

	start, end := lastMonthRange(now, r.loc)
	period := periodKey(start)

	done, err := r.runs.Exists(ctx, repository.NoTX, period)
	if err != nil {
		metrics.IncReportRun("failed")
		return 0, err
	}
	if done {
		// A restart inside the same month must not re-send summaries.
		r.log.Info().Str("period", period).Msg("monthly report already recorded; skipping")
		metrics.IncReportRun("skipped")
		return 0, nil
	}

	users, err := r.users.ListAll(ctx, repository.NoTX)
	if err != nil {
		metrics.IncReportRun("failed")
		return 0, err
	}

	queued := 0
	for _, user := range users {
		// One user's failure must not block the rest of the run.
		trainings, err := r.trainings.FindByUserInRange(ctx, repository.NoTX, user.ID, start, end)
		if err != nil {
			r.log.Error().Err(err).Str("user_id", user.ID).Str("period", period).Msg("failed to load trainings for summary")
			continue
		}
		req := buildSummary(user, len(trainings))
		if err := r.dispatcher.Dispatch(req); err != nil {
			r.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to queue summary notification")
			continue
		}
		queued++
	}

	run := &model.ReportRun{
		ID:                  uuid.NewString(),
		Period:              period,
		UsersProcessed:      len(users),
		NotificationsQueued: queued,
		CompletedAt:         time.Now(),
	}
	if err := r.runs.Save(ctx, repository.NoTX, run); err != nil {
		// The summaries are already queued; bookkeeping failure is logged only.
		r.log.Error().Err(err).Str("period", period).Msg("failed to record report run")
	}

	metrics.IncReportRun("completed")
	metrics.AddReportNotificationsQueued(queued)
	r.log.Info().Str("period", period).Int("users", len(users)).Int("queued", queued).Msg("monthly report finished")
	return queued, nil
}

// buildSummary renders the fixed summary message for one user.
func buildSummary(user *model.User, count int) model.NotificationRequest {
	word := "trainings"
	if count == 1 {
		word = "training"
	}
	body := fmt.Sprintf("Congratulations %s you have finished %d %s last month!", user.FullName(), count, word)
	return model.NotificationRequest{
		To:      user.Email,
		Subject: summarySubject,
		Body:    body,
	}
}
