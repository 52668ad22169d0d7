package dispatch

import (
	"context"

	"fitness-tracker/internal/domain/model"
	"fitness-tracker/internal/domain/ports/adapter"
	"fitness-tracker/internal/infra/metrics"
	"fitness-tracker/internal/infra/worker"

	"github.com/rs/zerolog"
)

var _ adapter.NotificationDispatcher = (*Dispatcher)(nil)

// Dispatcher delivers notification requests through the mail transport on a
// bounded worker pool. Submission never blocks the caller; a full backlog is
// rejected. Transport failures are logged, counted, and swallowed: nothing
// is persisted, retried, or surfaced.
type Dispatcher struct {
	pool   *worker.Pool
	sender adapter.MailSender
	log    *zerolog.Logger
}

func NewDispatcher(pool *worker.Pool, sender adapter.MailSender, logger *zerolog.Logger) *Dispatcher {
	compLog := logger.With().Str("component", "Dispatcher").Logger()
	return &Dispatcher{
		pool:   pool,
		sender: sender,
		log:    &compLog,
	}
}

func (d *Dispatcher) Dispatch(req model.NotificationRequest) error {
	task := d.createSendTask(req)
	if err := d.pool.Submit(task); err != nil {
		metrics.IncNotification("dropped")
		d.log.Warn().Err(err).Str("to", req.To).Msg("notification rejected; backlog full")
		return err
	}
	return nil
}

// createSendTask creates a closure for the worker pool to execute.
func (d *Dispatcher) createSendTask(req model.NotificationRequest) worker.Task {
	return func(ctx context.Context) error {
		if err := d.sender.Send(ctx, req.To, req.Subject, req.Body); err != nil {
			metrics.IncNotification("failed")
			d.log.Warn().Err(err).Str("to", req.To).Msg("failed to send notification")
			// Swallowed: the pool must not treat a transport failure as a task error.
			return nil
		}
		metrics.IncNotification("sent")
		return nil
	}
}
