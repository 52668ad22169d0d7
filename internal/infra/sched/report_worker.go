package sched

import (
	"context"
	"time"

	"fitness-tracker/internal/usecase"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// A run touches every user; give it ample headroom before the context fires.
const reportRunTimeout = 10 * time.Minute

// ReportWorker triggers the monthly summary report on a cron schedule
// ("0 0 1 * *" by default: 00:00 on day 1) in the configured location.
// SkipIfStillRunning guarantees runs never overlap; a late trigger is
// dropped, not queued.
type ReportWorker struct {
	c       *cron.Cron
	spec    string
	reports usecase.ReportUseCase
	log     *zerolog.Logger
	baseCtx context.Context
}

func NewReportWorker(spec string, loc *time.Location, reports usecase.ReportUseCase, logger *zerolog.Logger) *ReportWorker {
	compLog := logger.With().Str("component", "ReportWorker").Logger()
	if loc == nil {
		loc = time.UTC
	}
	cl := &cronLogger{log: &compLog}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cl)),
	)
	return &ReportWorker{
		c:       c,
		spec:    spec,
		reports: reports,
		log:     &compLog,
	}
}

// Start registers the schedule and begins ticking. ctx bounds every run.
func (w *ReportWorker) Start(ctx context.Context) error {
	w.baseCtx = ctx
	if _, err := w.c.AddFunc(w.spec, w.runOnce); err != nil {
		return err
	}
	w.c.Start()
	w.log.Info().Str("schedule", w.spec).Msg("report worker started")
	return nil
}

// Stop halts the schedule and waits for an in-flight run to finish.
func (w *ReportWorker) Stop() {
	ctx := w.c.Stop()
	<-ctx.Done()
	w.log.Info().Msg("report worker stopped")
}

func (w *ReportWorker) runOnce() {
	base := w.baseCtx
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithTimeout(base, reportRunTimeout)
	defer cancel()

	queued, err := w.reports.GenerateMonthlySummaries(ctx, time.Now())
	if err != nil {
		w.log.Error().Err(err).Msg("monthly report run failed")
		return
	}
	if queued > 0 {
		w.log.Info().Int("queued", queued).Msg("monthly summaries queued")
	}
}

// cronLogger adapts zerolog to cron's logging interface.
type cronLogger struct {
	log *zerolog.Logger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
