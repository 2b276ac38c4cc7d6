package services

import (
	"context"
	"errors"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/metrics"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteResult is the caller's view of a project's likes after an operation.
type VoteResult struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}

type VoteService struct {
	db *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{db: db}
}

// Toggle likes the project if userID has not liked it yet, otherwise unlikes it.
func (s *VoteService) Toggle(ctx context.Context, projectID, userID uint) (*VoteResult, error) {
	result := &VoteResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProject(tx, projectID); err != nil {
			return err
		}

		res := tx.Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&models.ProjectLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			like := models.ProjectLike{ProjectID: projectID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
			result.Liked = true
		}
		return countLikes(tx, projectID, &result.LikesCount)
	})
	if err != nil {
		return nil, err
	}

	if result.Liked {
		metrics.Votes.WithLabelValues("like").Inc()
	} else {
		metrics.Votes.WithLabelValues("unlike").Inc()
	}
	return result, nil
}

// Count reports the like total and whether userID is among the likers.
func (s *VoteService) Count(ctx context.Context, projectID, userID uint) (*VoteResult, error) {
	db := s.db.WithContext(ctx)
	if err := ensureProject(db, projectID); err != nil {
		return nil, err
	}

	result := &VoteResult{}
	if err := countLikes(db, projectID, &result.LikesCount); err != nil {
		return nil, err
	}

	var mine int64
	err := db.Model(&models.ProjectLike{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&mine).Error
	if err != nil {
		return nil, err
	}
	result.Liked = mine > 0
	return result, nil
}

// Remove drops userID's like if present. Removing a missing like is not an error.
func (s *VoteService) Remove(ctx context.Context, projectID, userID uint) (*VoteResult, error) {
	result := &VoteResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureProject(tx, projectID); err != nil {
			return err
		}
		res := tx.Where("project_id = ? AND user_id = ?", projectID, userID).Delete(&models.ProjectLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			metrics.Votes.WithLabelValues("unlike").Inc()
		}
		return countLikes(tx, projectID, &result.LikesCount)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func countLikes(db *gorm.DB, projectID uint, out *int64) error {
	return db.Model(&models.ProjectLike{}).Where("project_id = ?", projectID).Count(out).Error
}

func ensureProject(db *gorm.DB, projectID uint) error {
	var project models.Project
	err := db.Select("id").First(&project, projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return projectNotFound(projectID)
	}
	return err
}
