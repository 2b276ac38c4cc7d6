package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/config"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// captureQueue records enqueued mail instead of sending it.
type captureQueue struct {
	mu    sync.Mutex
	tasks []*EmailTask
	err   error
}

func (q *captureQueue) Enqueue(task *EmailTask) error {
	if q.err != nil {
		return q.err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *captureQueue) IsAsync() bool { return false }

func (q *captureQueue) Close() error { return nil }

func (q *captureQueue) last(t *testing.T) *EmailTask {
	t.Helper()
	q.mu.Lock()
	defer q.mu.Unlock()
	require.NotEmpty(t, q.tasks, "no email was queued")
	return q.tasks[len(q.tasks)-1]
}

func newTestAuth(t *testing.T) (*AuthService, *captureQueue, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	queue := &captureQueue{}
	jwtCfg := &config.JWTConfig{Secret: "test-secret", ExpireHours: 1, RememberMeDays: 30}
	return NewAuthService(db, jwtCfg, "http://localhost:5173/", queue), queue, db
}

func resetTokenFrom(t *testing.T, body string) string {
	t.Helper()
	const marker = "http://localhost:5173/reset-password/"
	i := strings.Index(body, marker)
	require.GreaterOrEqual(t, i, 0, "reset link missing from %q", body)
	rest := body[i+len(marker):]
	end := strings.IndexByte(rest, '"')
	require.Greater(t, end, 0)
	return rest[:end]
}

func registerAlice(t *testing.T, svc *AuthService) *LoginResult {
	t.Helper()
	res, err := svc.Register(context.Background(), &RegisterRequest{
		Username:        "alice",
		Email:           "Alice@Example.com ",
		Password:        "password123",
		ConfirmPassword: "password123",
	})
	require.NoError(t, err)
	return res
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()

	reg := registerAlice(t, svc)
	assert.Equal(t, "alice@example.com", reg.User.Email)
	assert.NotEqual(t, "password123", reg.User.Password)

	claims, err := utils.ParseToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, claims.UserID)

	_, err = svc.Register(ctx, &RegisterRequest{
		Username: "alice2", Email: "alice@example.com", Password: "password123", ConfirmPassword: "password123",
	})
	requireStatus(t, err, http.StatusConflict)

	login, err := svc.Login(ctx, &LoginRequest{Email: "ALICE@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), login.ExpireAt, time.Minute)

	_, err = svc.Login(ctx, &LoginRequest{Email: "alice@example.com", Password: "wrong-password"})
	requireStatus(t, err, http.StatusUnauthorized)
	_, err = svc.Login(ctx, &LoginRequest{Email: "nobody@example.com", Password: "password123"})
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestAuthService_RememberMeExtendsToken(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	registerAlice(t, svc)

	assert.Equal(t, time.Hour, svc.TokenTTL(false))
	assert.Equal(t, 30*24*time.Hour, svc.TokenTTL(true))

	login, err := svc.Login(context.Background(), &LoginRequest{Email: "alice@example.com", Password: "password123", RememberMe: true})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), login.ExpireAt, time.Minute)
}

func TestAuthService_PasswordResetFlow(t *testing.T) {
	svc, queue, db := newTestAuth(t)
	ctx := context.Background()
	reg := registerAlice(t, svc)

	requireStatus(t, svc.ForgotPassword(ctx, "nobody@example.com"), http.StatusNotFound)

	require.NoError(t, svc.ForgotPassword(ctx, "alice@example.com"))
	mail := queue.last(t)
	assert.Equal(t, []string{"alice@example.com"}, mail.To)
	token := resetTokenFrom(t, mail.Body)

	var stored models.User
	require.NoError(t, db.First(&stored, reg.User.ID).Error)
	require.NotNil(t, stored.ResetToken)
	assert.Equal(t, utils.HashResetToken(token), *stored.ResetToken, "only the digest is stored")
	require.NotNil(t, stored.ResetExpires)
	assert.WithinDuration(t, time.Now().Add(time.Hour), *stored.ResetExpires, time.Minute)

	newPass := &ResetPasswordRequest{NewPassword: "brand-new-pass", ConfirmPassword: "brand-new-pass"}
	requireStatus(t, svc.ResetPassword(ctx, "not-a-token", newPass), http.StatusBadRequest)
	requireStatus(t, svc.ResetPassword(ctx, "", newPass), http.StatusBadRequest)

	require.NoError(t, svc.ResetPassword(ctx, token, newPass))
	requireStatus(t, svc.ResetPassword(ctx, token, newPass), http.StatusBadRequest)

	_, err := svc.Login(ctx, &LoginRequest{Email: "alice@example.com", Password: "brand-new-pass"})
	require.NoError(t, err)
}

func TestAuthService_ResetTokenExpires(t *testing.T) {
	svc, queue, db := newTestAuth(t)
	ctx := context.Background()
	reg := registerAlice(t, svc)

	require.NoError(t, svc.ForgotPassword(ctx, "alice@example.com"))
	token := resetTokenFrom(t, queue.last(t).Body)
	require.NoError(t, db.Model(&models.User{ID: reg.User.ID}).Update("reset_expires", time.Now().Add(-time.Minute)).Error)

	err := svc.ResetPassword(ctx, token, &ResetPasswordRequest{NewPassword: "brand-new-pass", ConfirmPassword: "brand-new-pass"})
	requireStatus(t, err, http.StatusBadRequest)

	n, err := svc.PurgeExpiredResetTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var stored models.User
	require.NoError(t, db.First(&stored, reg.User.ID).Error)
	assert.Nil(t, stored.ResetToken)
	assert.Nil(t, stored.ResetExpires)
}

func TestAuthService_ForgotPasswordQueueFailure(t *testing.T) {
	svc, queue, _ := newTestAuth(t)
	registerAlice(t, svc)
	queue.err = errors.New("redis unavailable")

	err := svc.ForgotPassword(context.Background(), "alice@example.com")
	requireStatus(t, err, http.StatusInternalServerError)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	ctx := context.Background()
	reg := registerAlice(t, svc)

	err := svc.ChangePassword(ctx, reg.User.ID, &ChangePasswordRequest{OldPassword: "nope", NewPassword: "another-pass"})
	requireStatus(t, err, http.StatusBadRequest)

	require.NoError(t, svc.ChangePassword(ctx, reg.User.ID, &ChangePasswordRequest{OldPassword: "password123", NewPassword: "another-pass"}))
	_, err = svc.Login(ctx, &LoginRequest{Email: "alice@example.com", Password: "another-pass"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, 999, &ChangePasswordRequest{OldPassword: "x", NewPassword: "another-pass"})
	requireStatus(t, err, http.StatusNotFound)
}

func TestAuthService_GetUserByID(t *testing.T) {
	svc, _, _ := newTestAuth(t)
	reg := registerAlice(t, svc)

	user, err := svc.GetUserByID(context.Background(), reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.GetUserByID(context.Background(), 999)
	requireStatus(t, err, http.StatusNotFound)
}

func TestMaintenanceService_PurgeResetTokens(t *testing.T) {
	svc, _, db := newTestAuth(t)
	u := createUser(t, db, "bob")
	expired := time.Now().Add(-time.Hour)
	digest := "deadbeef"
	require.NoError(t, db.Model(&models.User{ID: u.ID}).Updates(map[string]interface{}{
		"reset_token": digest, "reset_expires": expired,
	}).Error)

	NewMaintenanceService(svc).PurgeResetTokens()

	var stored models.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.Nil(t, stored.ResetToken)
}
