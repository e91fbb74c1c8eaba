package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"smartsuite/internal/config"
	"smartsuite/internal/database"
	"smartsuite/internal/database/migration"
	"smartsuite/internal/email"
	"smartsuite/internal/logger"
	"smartsuite/internal/repository/postgres"
	"smartsuite/internal/scheduler"
	"smartsuite/internal/service"
)

func main() {
	once := flag.Bool("once", false, "run a single sweep and exit")
	flag.Parse()

	cfg := config.Load()

	zlog, err := logger.New()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(context.Background(), db, time.Local, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	mail := email.NewSMTPSender(cfg.SMTP)

	docRepo := postgres.NewDocumentPostgres(db)
	regRepo := postgres.NewRegisterPostgres(db)
	setRepo := postgres.NewSettingsPostgres(db)
	userRepo := postgres.NewUserPostgres(db)

	sweep := service.NewSweeper(docRepo, regRepo, userRepo,
		service.NewSettingsService(setRepo), mail,
		cfg.BaseURL, cfg.Sweep.LookaheadDays, zlog)

	if *once {
		res, err := sweep.Run(context.Background())
		if err != nil {
			zlog.Fatal("sweep failed", zap.Error(err))
		}
		zlog.Info("sweep finished",
			zap.Int("scanned", res.Scanned),
			zap.Int("sent", res.Sent),
			zap.Int("skipped", res.Skipped),
			zap.Int("failed", res.Failed))
		return
	}

	sched := scheduler.New(zlog)
	if err := sched.AddSweep(cfg.Sweep.Schedule, sweep); err != nil {
		zlog.Fatal("invalid sweep schedule", zap.Error(err))
	}
	sched.Start()
	zlog.Info("sweeper started", zap.String("schedule", cfg.Sweep.Schedule))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	sched.Stop()
}
