package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/config"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/utils"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/logger"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

type AuthService struct {
	db        *gorm.DB
	jwtConfig *config.JWTConfig
	clientURL string
	queue     TaskQueue
}

func NewAuthService(db *gorm.DB, jwtCfg *config.JWTConfig, clientURL string, queue TaskQueue) *AuthService {
	return &AuthService{
		db:        db,
		jwtConfig: jwtCfg,
		clientURL: strings.TrimRight(clientURL, "/"),
		queue:     queue,
	}
}

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,alphanum,min=3,max=30"`
	Email           string `json:"email" binding:"required,email,max=255"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=NewPassword"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
}

type LoginResult struct {
	Token    string
	ExpireAt time.Time
	User     *models.User
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and signs the new user in.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*LoginResult, error) {
	db := s.db.WithContext(ctx)
	email := normalizeEmail(req.Email)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("an account with this email already exists")
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: strings.TrimSpace(req.Username),
		Email:    email,
		Password: hashed,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflict("an account with this email already exists")
		}
		return nil, err
	}

	return s.issue(&user, false)
}

// Login checks credentials and returns a signed token
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(req.Email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid email or password")
	}

	return s.issue(&user, req.RememberMe)
}

// TokenTTL is the lifetime of a token issued with or without remember-me.
func (s *AuthService) TokenTTL(rememberMe bool) time.Duration {
	if rememberMe {
		return time.Duration(s.jwtConfig.RememberMeDays) * 24 * time.Hour
	}
	return time.Duration(s.jwtConfig.ExpireHours) * time.Hour
}

func (s *AuthService) issue(user *models.User, rememberMe bool) (*LoginResult, error) {
	ttl := s.TokenTTL(rememberMe)
	token, err := utils.GenerateToken(user.ID, user.Username, user.Email, ttl)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpireAt: time.Now().Add(ttl), User: user}, nil
}

// GetUserByID retrieves a user with skills loaded
func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Skills", skillsByName).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// ForgotPassword stores a hashed single-use token and emails the raw one.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("no account found with this email")
		}
		return err
	}

	token, digest, err := utils.NewResetToken()
	if err != nil {
		return err
	}
	expires := time.Now().Add(resetTokenTTL)

	err = db.Model(&user).Updates(map[string]interface{}{
		"reset_token":   digest,
		"reset_expires": expires,
	}).Error
	if err != nil {
		return err
	}

	link := s.clientURL + "/reset-password/" + token
	if err := s.queue.Enqueue(PasswordResetEmail(user.Email, user.Username, link)); err != nil {
		logger.Errorf("[Auth] Failed to queue password reset email for user %d: %v", user.ID, err)
		return response.NewServerError("could not send the reset email, please try again later")
	}
	return nil
}

// ResetPassword replaces the password of the account owning token.
func (s *AuthService) ResetPassword(ctx context.Context, token string, req *ResetPasswordRequest) error {
	db := s.db.WithContext(ctx)
	invalid := response.NewBadRequest("invalid or expired reset token")

	if token == "" {
		return invalid
	}

	var user models.User
	err := db.Where("reset_token = ? AND reset_expires > ?", utils.HashResetToken(token), time.Now()).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid
		}
		return err
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return db.Model(&user).Updates(map[string]interface{}{
		"password":      hashed,
		"reset_token":   nil,
		"reset_expires": nil,
	}).Error
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uint, req *ChangePasswordRequest) error {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("user not found")
		}
		return err
	}

	if !utils.CheckPassword(req.OldPassword, user.Password) {
		return response.NewBadRequest("incorrect old password")
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return db.Model(&user).Update("password", hashed).Error
}

// PurgeExpiredResetTokens clears reset tokens past their expiry.
func (s *AuthService) PurgeExpiredResetTokens(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).
		Where("reset_expires IS NOT NULL AND reset_expires <= ?", time.Now()).
		Updates(map[string]interface{}{"reset_token": nil, "reset_expires": nil})
	return res.RowsAffected, res.Error
}
