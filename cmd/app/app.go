package app

import (
	"log"
	"log/slog"

	"inkblog/internal/config"
	"inkblog/internal/database"
	"inkblog/internal/repository"
	"inkblog/internal/service"
	"inkblog/internal/session"
	"inkblog/internal/storage"
)

func App(cfg *config.Config, logger *slog.Logger) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		logger.Warn("migrations were not applied", "error", err)
	}

	// connection MinIO
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}

	repo := repository.NewRepository(db.DB)
	provider := session.NewProvider(repo.User, repo.Session, cfg.Session)

	services := service.NewService(repo, provider, minioClient, cfg, logger)

	return db, repo, services
}
