package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"smartsuite/internal/http/middleware"
	"smartsuite/internal/repository"
	"smartsuite/internal/service"
)

// Services bundles the use-case dependencies the HTTP surface needs.
type Services struct {
	Registers service.RegisterService
	Documents service.DocumentService
	Settings  service.SettingsService
	Reports   service.ReportService
	Sweeper   service.Sweeper
	Users     repository.UserRepository
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay thin; business rules live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, gatherer prometheus.Gatherer, s Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Post("/api/login", Login(s.Users))

	api := app.Group("/api", middleware.Auth())

	registers := api.Group("/registers/:module")
	registers.Post("/", CreateRecord(s.Registers))
	registers.Get("/", ListRecords(s.Registers))
	registers.Get("/export", ExportRegister(s.Reports))
	registers.Get("/:id", GetRecord(s.Registers))
	registers.Put("/:id", UpdateRecord(s.Registers))
	registers.Delete("/:id", DeleteRecord(s.Registers))
	registers.Post("/:id/archive", ArchiveRecord(s.Registers))
	registers.Post("/:id/restore", RestoreRecord(s.Registers))
	registers.Post("/:id/documents", UploadDocument(s.Documents))
	registers.Get("/:id/documents", ListDocuments(s.Documents))

	documents := api.Group("/documents/:id")
	documents.Get("/", GetDocument(s.Documents))
	documents.Delete("/", DeleteDocument(s.Documents))
	documents.Get("/download", DownloadDocument(s.Documents))
	documents.Post("/versions", AddVersion(s.Documents))
	documents.Get("/versions", ListVersions(s.Documents))
	documents.Put("/assignee", AssignDocument(s.Documents))
	documents.Put("/expiry", SetExpiry(s.Documents))

	api.Get("/settings/notifications", GetSettings(s.Settings))
	api.Put("/settings/notifications", UpdateSettings(s.Settings))
	api.Post("/notifications/sweep", RunSweep(s.Sweeper))
}
