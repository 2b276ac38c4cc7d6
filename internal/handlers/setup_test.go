package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/config"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/middleware"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/services"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("handler-test-secret")
}

type nopQueue struct{ sent []*services.EmailTask }

func (q *nopQueue) Enqueue(task *services.EmailTask) error {
	q.sent = append(q.sent, task)
	return nil
}
func (q *nopQueue) IsAsync() bool { return false }
func (q *nopQueue) Close() error  { return nil }

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	queue  *nopQueue
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
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

	queue := &nopQueue{}
	cookie := config.CookieConfig{Name: "token"}
	jwtCfg := &config.JWTConfig{ExpireHours: 1, RememberMeDays: 30}

	authH := NewAuthHandler(services.NewAuthService(db, jwtCfg, "http://localhost:5173", queue), cookie)
	joinSvc := services.NewJoinRequestService(db)
	projectH := NewProjectHandler(services.NewProjectService(db, nil))
	voteH := NewVoteHandler(services.NewVoteService(db))
	joinH := NewJoinRequestHandler(joinSvc)
	commentH := NewCommentHandler(services.NewCommentService(db))
	skillH := NewSkillHandler(services.NewSkillService(db))
	userH := NewUserHandler(services.NewUserService(db), joinSvc, authH)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/health", NewHealthHandler(db, queue, nil).CheckHealth)
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/logout", authH.Logout)
	api.POST("/auth/forgot-password", authH.ForgotPassword)
	api.POST("/auth/reset-password/:token", authH.ResetPassword)
	api.GET("/skills", skillH.List)
	api.GET("/skills/search", skillH.Search)

	p := api.Group("", middleware.AuthRequired(cookie.Name))
	p.GET("/auth/me", authH.GetCurrentUser)
	p.GET("/users/me/projects", userH.MyProjects)
	p.GET("/users/me/join-requests", userH.MyJoinRequests)
	p.PATCH("/users/me", userH.UpdateMe)
	p.DELETE("/users/me", userH.DeleteMe)
	p.GET("/users", userH.List)
	p.GET("/users/:id", userH.GetByID)
	p.GET("/projects", projectH.List)
	p.POST("/projects", projectH.Create)
	p.GET("/projects/:id", projectH.GetByID)
	p.PATCH("/projects/:id", projectH.Update)
	p.DELETE("/projects/:id", projectH.Delete)
	p.POST("/projects/:id/leave", projectH.Leave)
	p.POST("/projects/:id/votes", voteH.Toggle)
	p.GET("/projects/:id/votes", voteH.Count)
	p.DELETE("/projects/:id/votes", voteH.Remove)
	p.POST("/projects/:id/join-requests", joinH.Submit)
	p.GET("/projects/:id/join-requests", joinH.List)
	p.DELETE("/projects/:id/join-requests", joinH.Withdraw)
	p.PATCH("/projects/:id/join-requests/:requestId", joinH.Review)
	p.GET("/projects/:id/comments", commentH.List)
	p.POST("/projects/:id/comments", commentH.Create)
	p.POST("/projects/:id/comments/:commentId/likes", commentH.ToggleLike)

	return &testEnv{db: db, router: r, queue: queue}
}

// user stores an account and returns a bearer token for it.
func (e *testEnv) user(t *testing.T, name string) (*models.User, string) {
	t.Helper()
	hashed, err := utils.HashPassword("password123")
	require.NoError(t, err)
	u := &models.User{Username: name, Email: name + "@example.com", Password: hashed}
	require.NoError(t, e.db.Create(u).Error)
	token, err := utils.GenerateToken(u.ID, u.Username, u.Email, time.Hour)
	require.NoError(t, err)
	return u, token
}

type envelope struct {
	Success bool            `json:"success"`
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func decode(t *testing.T, raw json.RawMessage, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out), "data: %s", string(raw))
}

func projectPath(id uint, suffix string) string {
	return fmt.Sprintf("/api/projects/%d%s", id, suffix)
}
