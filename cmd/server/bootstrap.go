package main

import (
	"github.com/docstack/docstack/internal/auth"
	"github.com/docstack/docstack/internal/config"
	"github.com/docstack/docstack/internal/handlers"
	"github.com/docstack/docstack/internal/models"
	"github.com/docstack/docstack/internal/services"
	"github.com/docstack/docstack/internal/storage"
	"github.com/docstack/docstack/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	authService     *services.AuthService
	maintenance     *services.Maintenance
	authHandler     *handlers.AuthHandler
	projectHandler  *handlers.ProjectHandler
	documentHandler *handlers.DocumentHandler
}

// bootstrap initializes all application dependencies: database, storage,
// services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()
	services.InitSystemLogger(db)

	store := storage.NewFileStore(cfg.Storage.Dir)
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpireMinutes)

	authService := services.NewAuthService(db, tokens)
	projectService := services.NewProjectService(db, store)
	documentService := services.NewDocumentService(db, projectService, store)

	maintenance := services.NewMaintenance(db, store)
	maintenance.Start()

	return &appServices{
		authService:     authService,
		maintenance:     maintenance,
		authHandler:     handlers.NewAuthHandler(db, authService),
		projectHandler:  handlers.NewProjectHandler(projectService),
		documentHandler: handlers.NewDocumentHandler(documentService),
	}
}

// shutdown gracefully stops all background services.
func (s *appServices) shutdown() {
	s.maintenance.Stop()
}
