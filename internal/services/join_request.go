package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/metrics"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ActionApprove = "approve"
	ActionDecline = "decline"

	minJoinMessage = 10
	maxJoinMessage = 500
)

type SubmitJoinRequest struct {
	JoinMessage string `json:"joinMessage" binding:"required,min=10,max=500"`
}

type ReviewJoinRequest struct {
	Action string `json:"action" binding:"required,oneof=approve decline"`
}

type JoinRequestService struct {
	db *gorm.DB
}

func NewJoinRequestService(db *gorm.DB) *JoinRequestService {
	return &JoinRequestService{db: db}
}

func validateJoinMessage(msg string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(msg))
	if n < minJoinMessage || n > maxJoinMessage {
		return response.NewBadRequest(fmt.Sprintf("joinMessage must be between %d and %d characters", minJoinMessage, maxJoinMessage))
	}
	return nil
}

// Submit creates the caller's request for a seat, or resets an existing one
// back to pending with the new message.
func (s *JoinRequestService) Submit(ctx context.Context, projectID, userID uint, message string) (*models.JoinRequest, error) {
	if err := validateJoinMessage(message); err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)

	var req models.JoinRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProject(tx, projectID); err != nil {
			return err
		}

		member, err := isMember(tx, projectID, userID)
		if err != nil {
			return err
		}
		if member {
			return response.NewConflict("you are already a member of this project")
		}

		draft := models.JoinRequest{
			ProjectID:   projectID,
			UserID:      userID,
			Status:      models.JoinStatusPending,
			JoinMessage: message,
		}
		// One row per (project, user): a resubmission rewrites the existing row
		// and clears the previous review.
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":       models.JoinStatusPending,
				"join_message": message,
				"reviewed_by":  nil,
				"reviewed_at":  nil,
				"updated_at":   time.Now(),
			}),
		}).Create(&draft).Error
		if err != nil {
			return err
		}

		return tx.Where("project_id = ? AND user_id = ?", projectID, userID).First(&req).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.JoinRequests.WithLabelValues("submitted").Inc()
	return &req, nil
}

// Withdraw deletes the caller's request for the project, whatever its status.
func (s *JoinRequestService) Withdraw(ctx context.Context, projectID, userID uint) error {
	res := s.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.JoinRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return response.NewNotFound("no join request found for this project")
	}

	metrics.JoinRequests.WithLabelValues("withdrawn").Inc()
	return nil
}

// List returns the project's requests, oldest first. Only the creator may list.
func (s *JoinRequestService) List(ctx context.Context, projectID, callerID uint, status string) ([]models.JoinRequest, error) {
	db := s.db.WithContext(ctx)

	var project models.Project
	if err := db.Select("id", "created_by").First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projectNotFound(projectID)
		}
		return nil, err
	}
	if project.CreatedBy != callerID {
		return nil, response.NewForbidden("only the project creator can view join requests")
	}

	query := db.Preload("User").Where("project_id = ?", projectID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.JoinRequest
	if err := query.Order("created_at ASC").Order("id ASC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Review approves or declines a request and adjusts the team in the same
// transaction. Approving seats the user once, declining removes any seat.
func (s *JoinRequestService) Review(ctx context.Context, projectID, requestID, callerID uint, action string) (*models.JoinRequest, error) {
	if action != ActionApprove && action != ActionDecline {
		return nil, response.NewBadRequest("invalid action")
	}

	var req models.JoinRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND project_id = ?", requestID, projectID).First(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound(fmt.Sprintf("no join request found with id: %d", requestID))
			}
			return err
		}

		var project models.Project
		if err := tx.Select("id", "created_by").First(&project, projectID).Error; err != nil {
			return err
		}
		if project.CreatedBy != callerID {
			return response.NewForbidden("only the project creator can review join requests")
		}

		switch action {
		case ActionApprove:
			seat := models.ProjectMember{ProjectID: projectID, UserID: req.UserID, Role: models.MemberRoleMember}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
				DoNothing: true,
			}).Create(&seat).Error
			if err != nil {
				return err
			}
			req.Status = models.JoinStatusApproved
		case ActionDecline:
			// The creator's own admin seat is never touched here.
			if req.UserID != project.CreatedBy {
				err := tx.Where("project_id = ? AND user_id = ?", projectID, req.UserID).
					Delete(&models.ProjectMember{}).Error
				if err != nil {
					return err
				}
			}
			req.Status = models.JoinStatusDeclined
		}

		now := time.Now()
		req.ReviewedBy = &callerID
		req.ReviewedAt = &now
		return tx.Model(&req).Updates(map[string]interface{}{
			"status":      req.Status,
			"reviewed_by": callerID,
			"reviewed_at": now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.JoinRequests.WithLabelValues(req.Status).Inc()
	return &req, nil
}

// ForUser lists the caller's own requests, optionally filtered by status.
func (s *JoinRequestService) ForUser(ctx context.Context, userID uint, status string) ([]models.JoinRequest, error) {
	query := s.db.WithContext(ctx).Preload("Project").Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.JoinRequest
	if err := query.Order("updated_at DESC").Order("id DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func isMember(db *gorm.DB, projectID, userID uint) (bool, error) {
	var n int64
	err := db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&n).Error
	return n > 0, err
}
