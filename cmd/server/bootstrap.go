package main

import (
	"context"
	"time"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/config"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/handlers"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/metrics"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/search"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/services"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/utils"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/logger"
	"gorm.io/gorm"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	cfg         *config.Config
	db          *gorm.DB
	index       search.Index
	taskQueue   services.TaskQueue
	worker      *services.Worker
	maintenance *services.MaintenanceService

	authHandler        *handlers.AuthHandler
	userHandler        *handlers.UserHandler
	projectHandler     *handlers.ProjectHandler
	voteHandler        *handlers.VoteHandler
	joinRequestHandler *handlers.JoinRequestHandler
	commentHandler     *handlers.CommentHandler
	skillHandler       *handlers.SkillHandler
	healthHandler      *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, search,
// queue, schedulers and handlers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	if err := models.InitDB(&cfg.Database, cfg.Server.Mode == "debug"); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	db := models.GetDB()
	if err := models.SeedDefaultData(db); err != nil {
		logger.Warnf("[Bootstrap] Failed to seed default data: %v", err)
	}

	metrics.Register()
	metrics.RegisterStoreGauges(db)

	index := initSearch(cfg)
	projectService := services.NewProjectService(db, index)
	if index.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := projectService.ReindexAll(ctx); err != nil {
			logger.Warnf("[Bootstrap] Failed to reindex projects: %v", err)
		}
		cancel()
	}

	// Email delivery goes through Redis when enabled, otherwise in process.
	emailService := services.NewEmailService(cfg.SMTP)
	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(emailService.ProcessEmailTask)
	}

	var worker *services.Worker
	if taskQueue.IsAsync() {
		worker = services.NewWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(emailService.ProcessEmailTask)
			if err := worker.Start(); err != nil {
				logger.Errorf("[Bootstrap] Failed to start task worker: %v", err)
			}
		}
	}

	authService := services.NewAuthService(db, &cfg.JWT, cfg.App.ClientURL, taskQueue)
	maintenance := services.NewMaintenanceService(authService)
	if err := maintenance.StartScheduler(); err != nil {
		logger.Warnf("[Bootstrap] Failed to start maintenance scheduler: %v", err)
	}

	joinService := services.NewJoinRequestService(db)
	authHandler := handlers.NewAuthHandler(authService, cfg.Cookie)

	return &appServices{
		cfg:         cfg,
		db:          db,
		index:       index,
		taskQueue:   taskQueue,
		worker:      worker,
		maintenance: maintenance,

		authHandler:        authHandler,
		userHandler:        handlers.NewUserHandler(services.NewUserService(db), joinService, authHandler),
		projectHandler:     handlers.NewProjectHandler(projectService),
		voteHandler:        handlers.NewVoteHandler(services.NewVoteService(db)),
		joinRequestHandler: handlers.NewJoinRequestHandler(joinService),
		commentHandler:     handlers.NewCommentHandler(services.NewCommentService(db)),
		skillHandler:       handlers.NewSkillHandler(services.NewSkillService(db)),
		healthHandler:      handlers.NewHealthHandler(db, taskQueue, index),
	}
}

// initSearch connects to Elasticsearch when configured. Any failure leaves
// search on the database fallback.
func initSearch(cfg *config.Config) search.Index {
	if len(cfg.Elasticsearch.Addresses) == 0 {
		logger.Infof("[Search] Elasticsearch not configured, project search uses the database")
		return search.Noop{}
	}

	es, err := search.NewElastic(cfg.Elasticsearch)
	if err != nil {
		logger.Warnf("[Search] Failed to create Elasticsearch client, using database search: %v", err)
		return search.Noop{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := es.EnsureIndex(ctx); err != nil {
		logger.Warnf("[Search] Elasticsearch unavailable, using database search: %v", err)
		return search.Noop{}
	}

	logger.Infof("[Search] Elasticsearch enabled: addresses=%v, index=%s", cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Index)
	return es
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.maintenance.StopScheduler()
	logger.Infof("[Bootstrap] All schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		if err := s.taskQueue.Close(); err != nil {
			logger.Warnf("[Bootstrap] Failed to close task queue: %v", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}
