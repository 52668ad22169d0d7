// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitness-tracker/internal/config"
	"fitness-tracker/internal/domain/ports/adapter"
	"fitness-tracker/internal/domain/ports/repository"
	"fitness-tracker/internal/infra/api"
	pg "fitness-tracker/internal/infra/db/postgres"
	"fitness-tracker/internal/infra/dispatch"
	"fitness-tracker/internal/infra/logging"
	"fitness-tracker/internal/infra/mail"
	"fitness-tracker/internal/infra/metrics"
	red "fitness-tracker/internal/infra/redis"
	"fitness-tracker/internal/infra/sched"
	"fitness-tracker/internal/infra/worker"
	"fitness-tracker/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, no sampling)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("dev mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.PoolSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	if err := pg.RunMigrations(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}

	// ---- Repositories ----
	var userRepo repository.UserRepository = pg.NewPostgresUserRepo(pool)
	trainingRepo := pg.NewPostgresTrainingRepo(pool)
	runRepo := pg.NewReportRunRepo(pool)
	tm := pg.NewTxManager(pool)

	// ---- Redis (optional user cache) ----
	if cfg.Redis.URL != "" {
		redisClient, err := red.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connect failed")
		}
		defer redisClient.Close()
		userRepo = pg.NewUserRepoCacheDecorator(userRepo, redisClient, cfg.Redis.TTL)
		logger.Info().Str("addr", cfg.Redis.URL).Msg("user cache enabled")
	}

	// ---- Use cases ----
	userUC := usecase.NewUserUseCase(userRepo, tm, logger)
	trainingUC := usecase.NewTrainingUseCase(trainingRepo, userRepo, tm, logger)

	// ---- Notification delivery ----
	var sender adapter.MailSender
	if cfg.Mail.Host != "" {
		sender = mail.NewSMTPSender(cfg.Mail, logger)
	} else {
		logger.Warn().Msg("mail.host not set; notifications will be logged and dropped")
		sender = mail.NewNoopSender(logger)
	}
	dispatchPool := worker.NewPool(cfg.Dispatcher.Workers, cfg.Dispatcher.QueueCapacity, logger)
	dispatchPool.Start(ctx)
	dispatcher := dispatch.NewDispatcher(dispatchPool, sender, logger)

	// ---- Monthly report ----
	loc, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid report timezone")
	}
	reportUC := usecase.NewReportUseCase(userRepo, trainingRepo, runRepo, dispatcher, loc, logger)
	reportWorker := sched.NewReportWorker(cfg.Report.Cron, loc, reportUC, logger)
	if err := reportWorker.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("report worker start failed")
	}

	// ---- HTTP API ----
	srv := api.NewServer(userUC, trainingUC, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.API.Port),
		Handler: srv.Routes(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http api listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
	reportWorker.Stop()
	dispatchPool.Stop()
	cancel()
}
