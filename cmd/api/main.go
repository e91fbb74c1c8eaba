package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"smartsuite/docs"
	"smartsuite/internal/auth"
	"smartsuite/internal/config"
	"smartsuite/internal/database"
	"smartsuite/internal/database/migration"
	"smartsuite/internal/email"
	handlers "smartsuite/internal/http/handler"
	"smartsuite/internal/http/middleware"
	"smartsuite/internal/logger"
	"smartsuite/internal/model"
	"smartsuite/internal/otel"
	"smartsuite/internal/repository/postgres"
	"smartsuite/internal/service"
	"smartsuite/internal/storage"
)

// @title Business Smart Suite API
// @version 1.0
// @BasePath /
func main() {
	cfg := config.Load()

	zlog, err := logger.New()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	if err := auth.SetSecret(cfg.JWTSecret); err != nil {
		log.Fatalf("failed to configure auth: %v", err)
	}

	loc := time.Local
	shutdownTracing, err := otel.Init(context.Background(), loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(context.Background(), db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	mail := email.NewSMTPSender(cfg.SMTP)

	docRepo := postgres.NewDocumentPostgres(db)
	regRepo := postgres.NewRegisterPostgres(db)
	setRepo := postgres.NewSettingsPostgres(db)
	userRepo := postgres.NewUserPostgres(db)

	settingsSvc := service.NewSettingsService(setRepo)
	svcs := handlers.Services{
		Registers: service.NewRegisterService(regRepo, objStore, zlog),
		Documents: service.NewDocumentService(objStore, docRepo, regRepo, userRepo, mail, cfg.BaseURL, zlog),
		Settings:  settingsSvc,
		Reports:   service.NewReportService(regRepo),
		Sweeper: service.NewSweeper(docRepo, regRepo, userRepo, settingsSvc, mail,
			cfg.BaseURL, cfg.Sweep.LookaheadDays, zlog),
		Users: userRepo,
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Twice the upload cap: oversized files plus multipart overhead
		// still reach the service, which rejects them with the
		// FILE_TOO_LARGE envelope instead of a transport-level abort.
		BodyLimit: 2 * model.MaxUploadSize,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())
	app.Use(promMW.Handler())

	docs.SwaggerInfo.Host = cfg.AppHost
	handlers.RegisterRoutes(app, db, reg, svcs)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		if err := app.Shutdown(); err != nil {
			zlog.Error("server shutdown failed", zap.Error(err))
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		zlog.Warn("tracer shutdown failed", zap.Error(err))
	}
}
