package main

import (
	"fmt"
	"os"

	"github.com/ninesuite/ninesuite-backend/internal/clients/redis"
	"github.com/ninesuite/ninesuite-backend/internal/db"
	"github.com/ninesuite/ninesuite-backend/internal/handlers"
	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/middleware"
	"github.com/ninesuite/ninesuite-backend/internal/repos"
	"github.com/ninesuite/ninesuite-backend/internal/server"
	"github.com/ninesuite/ninesuite-backend/internal/services"
	"github.com/ninesuite/ninesuite-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Registry cache (optional: registry reads fall through to Postgres)
	registryCache, err := redis.NewRegistryCache(log)
	if err != nil {
		log.Warn("Registry cache unavailable, reads go straight to Postgres", "error", err)
		registryCache = nil
	}

	// Repos
	log.Info("Setting up Repos from main...")
	sourceConfigRepo := repos.NewSourceConfigRepo(thePG, log)
	appraisalRepo := repos.NewAppraisalRepo(thePG, log)
	goalRepo := repos.NewGoalRepo(thePG, log)
	signalSnapshotRepo := repos.NewSignalSnapshotRepo(thePG, log)
	potentialAssessmentRepo := repos.NewPotentialAssessmentRepo(thePG, log)
	nineBoxAssessmentRepo := repos.NewNineBoxAssessmentRepo(thePG, log)
	assessmentEvidenceRepo := repos.NewAssessmentEvidenceRepo(thePG, log)
	successionCandidateRepo := repos.NewSuccessionCandidateRepo(thePG, log)
	successionEvidenceRepo := repos.NewSuccessionEvidenceRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	registryService := services.NewSourceRegistryService(thePG, log, sourceConfigRepo, registryCache)
	evidenceService := services.NewEvidenceService(thePG, log, appraisalRepo, goalRepo, signalSnapshotRepo, potentialAssessmentRepo)
	ratingService := services.NewRatingService(thePG, log, evidenceService, registryService)
	archiveService := services.NewEvidenceArchiveService(thePG, log, assessmentEvidenceRepo)
	successionService := services.NewSuccessionService(thePG, log, successionCandidateRepo, successionEvidenceRepo)
	assessmentService := services.NewAssessmentService(thePG, log, nineBoxAssessmentRepo, assessmentEvidenceRepo, ratingService, archiveService)

	// Handlers
	log.Info("Setting up handlers from main...")
	ratingHandler := handlers.NewRatingHandler(log, ratingService)
	sourceConfigHandler := handlers.NewSourceConfigHandler(log, registryService)
	assessmentHandler := handlers.NewAssessmentHandler(log, assessmentService)
	successionHandler := handlers.NewSuccessionHandler(log, successionService)

	// Middleware
	tenantMiddleware := middleware.NewTenantMiddleware(log)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		TenantMiddleware:    tenantMiddleware,
		RatingHandler:       ratingHandler,
		SourceConfigHandler: sourceConfigHandler,
		AssessmentHandler:   assessmentHandler,
		SuccessionHandler:   successionHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Starting server...", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
