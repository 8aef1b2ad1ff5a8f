package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ninesuite/ninesuite-backend/internal/handlers"
	"github.com/ninesuite/ninesuite-backend/internal/middleware"
)

type RouterConfig struct {
	TenantMiddleware    *middleware.TenantMiddleware
	RatingHandler       *handlers.RatingHandler
	SourceConfigHandler *handlers.SourceConfigHandler
	AssessmentHandler   *handlers.AssessmentHandler
	SuccessionHandler   *handlers.SuccessionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Company-ID", "X-User-ID"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)

	// Tenant-scoped
	api := router.Group("/api")
	api.Use(cfg.TenantMiddleware.RequireTenant())
	// Ratings
	api.POST("/ratings/calculate", cfg.RatingHandler.Calculate)
	// Source registry
	api.GET("/source-configs", cfg.SourceConfigHandler.List)
	api.POST("/source-configs", cfg.SourceConfigHandler.Upsert)
	api.DELETE("/source-configs/:id", cfg.SourceConfigHandler.Delete)
	// Assessments
	api.POST("/assessments", cfg.AssessmentHandler.Save)
	api.GET("/assessments/:id", cfg.AssessmentHandler.Get)
	api.GET("/employees/:id/assessments", cfg.AssessmentHandler.ListByEmployee)
	// Succession
	api.POST("/succession/:candidateId/evidence", cfg.SuccessionHandler.LinkEvidence)
	api.GET("/succession/:candidateId/evidence", cfg.SuccessionHandler.ListEvidence)

	return router
}
