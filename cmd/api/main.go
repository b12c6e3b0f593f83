package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"companyreg/internal/config"
	"companyreg/internal/database"
	"companyreg/internal/database/migration"
	handlers "companyreg/internal/http/handler"
	"companyreg/internal/http/middleware"
	"companyreg/internal/otel"
	"companyreg/internal/repository/postgres"
	"companyreg/internal/service"
	"companyreg/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC
	ctx := context.Background()

	// Initialize tracing (no-op when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize local document storage under the configured root
	store, err := storage.NewLocal(cfg.Storage.Root)
	if err != nil {
		log.Fatalf("failed to initialize document storage: %v", err)
	}

	// Initialize repositories and services
	companyRepo := postgres.NewCompanyPostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)
	userRepo := postgres.NewUserPostgres(db)
	profileRepo := postgres.NewProfilePostgres(db)
	respRepo := postgres.NewResponsiblePostgres(db)

	docCfg := service.DefaultDocumentConfig(cfg.Storage.MaxUploadBytes())
	svcs := handlers.Services{
		Companies: service.NewCompanyService(companyRepo, userRepo, respRepo),
		Documents: service.NewDocumentService(docCfg, store, companyRepo, docRepo),
		Users:     service.NewUserService(userRepo),
		Profiles:  service.NewProfileService(profileRepo),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Leave headroom above the upload ceiling for multipart framing;
		// the service enforces the exact byte limit.
		BodyLimit: int(cfg.Storage.MaxUploadBytes()) + 1024*1024,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, reg, svcs)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
