package main

import (
	"context"
	"log"

	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/usecase"
	"resume-builder/internal/validate"
	infra "resume-builder/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := newLogger(cfg.Env)

	ctx := context.Background()

	// export auditing is optional; the service runs fine without it
	exportsRepo := repo.NewExportsRepo(nil)
	if cfg.ExportsDatabaseURL != "" {
		pool, err := infra.NewExportsPool(ctx, cfg.ExportsDatabaseURL)
		if err != nil {
			logger.WithField("error", err).Warn("exports DB not available, auditing disabled")
		} else if err := migration.RunMigrations(ctx, pool, logger); err != nil {
			logger.WithField("error", err).Warn("migrations failed, auditing disabled")
		} else {
			exportsRepo = repo.NewExportsRepo(pool)
		}
	}

	server, err := validate.NewServer()
	if err != nil {
		log.Fatalf("building validator: %v", err)
	}

	renderer := infra.NewChromedpRenderer()
	svc := usecase.NewService(server, renderer, exportsRepo, logger, cfg.ArchiveDir)

	app := fiber.New()
	h := httpadapter.NewHandler(svc, logger)
	h.Register(app)

	logger.WithField("port", cfg.Port).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func newLogger(env string) *logrus.Logger {
	logger := logrus.New()
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}
