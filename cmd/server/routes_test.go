package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/config"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/handlers"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/metrics"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/search"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, models.Migrate(db))
	require.NoError(t, models.SeedDefaultData(db))

	cfg := config.DefaultConfig()
	metrics.Register()

	queue := services.NewSyncQueue()
	authSvc := services.NewAuthService(db, &cfg.JWT, cfg.App.ClientURL, queue)
	joinSvc := services.NewJoinRequestService(db)
	authH := handlers.NewAuthHandler(authSvc, cfg.Cookie)

	svc := &appServices{
		cfg:         cfg,
		db:          db,
		index:       search.Noop{},
		taskQueue:   queue,
		maintenance: services.NewMaintenanceService(authSvc),

		authHandler:        authH,
		userHandler:        handlers.NewUserHandler(services.NewUserService(db), joinSvc, authH),
		projectHandler:     handlers.NewProjectHandler(services.NewProjectService(db, search.Noop{})),
		voteHandler:        handlers.NewVoteHandler(services.NewVoteService(db)),
		joinRequestHandler: handlers.NewJoinRequestHandler(joinSvc),
		commentHandler:     handlers.NewCommentHandler(services.NewCommentService(db)),
		skillHandler:       handlers.NewSkillHandler(services.NewSkillService(db)),
		healthHandler:      handlers.NewHealthHandler(db, queue, search.Noop{}),
	}

	r := gin.New()
	registerRoutes(r, svc)
	return r
}

func TestRegisterRoutes(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"health is public", http.MethodGet, "/api/health", http.StatusOK},
		{"skills are public", http.MethodGet, "/api/skills", http.StatusOK},
		{"projects need auth", http.MethodGet, "/api/projects", http.StatusUnauthorized},
		{"comments need auth", http.MethodGet, "/api/projects/1/comments", http.StatusUnauthorized},
		{"change password needs auth", http.MethodPost, "/api/auth/change-password", http.StatusUnauthorized},
		{"logout without cookie", http.MethodPost, "/api/auth/logout", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound},
		{"outside prefix", http.MethodGet, "/projects", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

			var env struct {
				Success bool `json:"success"`
				Status  int  `json:"status"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
			assert.Equal(t, tt.status, env.Status)
			assert.Equal(t, tt.status < 400, env.Success)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/skills", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "teamup_http_requests_total"))
}
