package services

import (
	"context"
	"errors"
	"strings"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UpdateProfileRequest struct {
	Username *string        `json:"username" binding:"omitempty,alphanum,min=3,max=30"`
	Bio      *string        `json:"bio" binding:"omitempty,max=500"`
	Avatar   *models.Avatar `json:"avatar"`
	Skills   *[]string      `json:"skills"`
}

type UserListResult struct {
	Users      []models.User
	Total      int64
	Page       int
	TotalPages int
}

// List returns users ordered by id
func (s *UserService) List(ctx context.Context, p Pagination) (*UserListResult, error) {
	db := s.db.WithContext(ctx)
	result := &UserListResult{Users: []models.User{}, Page: p.Page}

	if err := db.Model(&models.User{}).Count(&result.Total).Error; err != nil {
		return nil, err
	}
	result.TotalPages = p.TotalPages(result.Total)

	err := db.Preload("Skills", skillsByName).Order("id ASC").Offset(p.Offset()).Limit(p.Limit).Find(&result.Users).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Skills", skillsByName).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies the fields present in req to the caller's account
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*models.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("user not found")
			}
			return err
		}

		updates := map[string]interface{}{}
		if req.Username != nil {
			updates["username"] = strings.TrimSpace(*req.Username)
		}
		if req.Bio != nil {
			updates["bio"] = strings.TrimSpace(*req.Bio)
		}
		if req.Avatar != nil {
			updates["avatar"] = models.NewAvatar(req.Avatar.URL, req.Avatar.PublicID)
		}

		target := &models.User{ID: user.ID}
		if len(updates) > 0 {
			if err := tx.Model(target).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Skills != nil {
			skills, err := resolveSkills(tx, *req.Skills)
			if err != nil {
				return err
			}
			if err := tx.Model(target).Association("Skills").Replace(skills); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, userID)
}

// Delete removes the account. Projects, comments and requests keep the id.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := models.User{ID: userID}
		if err := tx.Model(&user).Association("Skills").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&user)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return response.NewNotFound("user not found")
		}
		return nil
	})
}

// MyProjects lists projects where userID holds a team seat, newest first.
func (s *UserService) MyProjects(ctx context.Context, userID uint) ([]models.Project, error) {
	db := s.db.WithContext(ctx)
	seats := db.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", userID)

	projects := []models.Project{}
	err := db.Scopes(preloadProject).
		Where("projects.id IN (?)", seats).
		Order("projects.created_at DESC").Order("projects.id DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
