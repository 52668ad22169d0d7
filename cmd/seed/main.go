package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"fitness-tracker/internal/config"
	"fitness-tracker/internal/domain/model"
	pg "fitness-tracker/internal/infra/db/postgres"
	"fitness-tracker/internal/infra/logging"
	"fitness-tracker/internal/usecase"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := logging.New(cfg.Log, true)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	if err := pg.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	userRepo := pg.NewPostgresUserRepo(pool)
	trainingRepo := pg.NewPostgresTrainingRepo(pool)
	tm := pg.NewTxManager(pool)
	userUC := usecase.NewUserUseCase(userRepo, tm, logger)
	trainingUC := usecase.NewTrainingUseCase(trainingRepo, userRepo, tm, logger)

	// If users already exist, do nothing
	existing, err := userUC.List(ctx)
	if err != nil {
		log.Fatalf("list users: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("%d users already present. No changes.\n", len(existing))
		return
	}

	seedUsers := []struct {
		First string
		Last  string
		Born  string
		Email string
	}{
		{"Emma", "Wojcik", "1997-10-25", "emma.wojcik@wp.pl"},
		{"Ewa", "Kowalska", "1990-02-10", "ewa.kowalska@gmail.com"},
		{"Grzegorz", "Nowak", "1984-06-01", "g.nowak@interia.pl"},
	}

	ids := make([]string, 0, len(seedUsers))
	for _, s := range seedUsers {
		born, err := time.Parse("2006-01-02", s.Born)
		if err != nil {
			log.Fatalf("parse birthdate %q: %v", s.Born, err)
		}
		u := &model.User{FirstName: s.First, LastName: s.Last, Birthdate: born, Email: s.Email}
		created, err := userUC.Create(ctx, u)
		if err != nil {
			log.Fatalf("create user %q: %v", s.Email, err)
		}
		ids = append(ids, created.ID)
		fmt.Printf("seeded user: %s %s (id=%s)\n", created.FirstName, created.LastName, created.ID)
	}

	now := time.Now().UTC().Truncate(time.Hour)
	seedTrainings := []struct {
		UserIdx  int
		DaysAgo  int
		Hours    int
		Activity model.ActivityType
		Distance float64
		Speed    float64
	}{
		{0, 40, 1, model.ActivityRunning, 10.5, 8.2},
		{0, 35, 2, model.ActivityCycling, 44.0, 22.1},
		{1, 38, 1, model.ActivityWalking, 5.2, 5.0},
		{2, 3, 1, model.ActivityTennis, 0, 0},
	}

	for _, s := range seedTrainings {
		start := now.AddDate(0, 0, -s.DaysAgo)
		created, err := trainingUC.Save(ctx, model.TrainingDetails{
			UserID:       ids[s.UserIdx],
			StartTime:    start,
			EndTime:      start.Add(time.Duration(s.Hours) * time.Hour),
			ActivityType: s.Activity,
			Distance:     s.Distance,
			AverageSpeed: s.Speed,
		})
		if err != nil {
			log.Fatalf("create training: %v", err)
		}
		fmt.Printf("seeded training: %s %s (id=%s)\n", created.ActivityType, created.User.Email, created.ID)
	}

	fmt.Println("Seeding complete.")
}
