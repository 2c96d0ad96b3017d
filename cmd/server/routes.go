package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/docstack/docstack/internal/config"
	"github.com/docstack/docstack/internal/handlers"
	"github.com/docstack/docstack/internal/middleware"
	"github.com/docstack/docstack/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, cfg *config.Config, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(
		cfg.RateLimit.AuthRPS,
		cfg.RateLimit.AuthBurst,
		time.Duration(cfg.RateLimit.IdleTTLMinutes)*time.Minute,
	)

	r.GET("/health", handlers.HealthCheck)

	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth", authLimiter.Middleware())
		{
			auth.POST("/register", svc.authHandler.Register)
			auth.POST("/login", svc.authHandler.Login)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(svc.authService))
		protected.Use(middleware.AuditLog())
		{
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/logout", svc.authHandler.Logout)

			// Projects
			protected.POST("/projects", svc.projectHandler.Create)
			protected.GET("/projects", svc.projectHandler.List)
			protected.GET("/projects/:project_id", svc.projectHandler.Get)
			protected.PUT("/projects/:project_id", svc.projectHandler.Update)
			protected.DELETE("/projects/:project_id", svc.projectHandler.Delete)
			protected.POST("/projects/:project_id/participants", svc.projectHandler.AddParticipant)
			protected.GET("/projects/:project_id/members", svc.projectHandler.ListMembers)

			// Documents
			protected.POST("/projects/:project_id/documents", svc.documentHandler.Upload)
			protected.GET("/projects/:project_id/documents", svc.documentHandler.List)
			protected.GET("/projects/:project_id/documents/:document_id", svc.documentHandler.Get)
			protected.GET("/projects/:project_id/documents/:document_id/download", svc.documentHandler.Download)
			protected.PUT("/projects/:project_id/documents/:document_id", svc.documentHandler.Update)
			protected.DELETE("/projects/:project_id/documents/:document_id", svc.documentHandler.Delete)
		}
	}
}
