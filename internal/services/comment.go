package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/metrics"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxCommentLength = 200

type CreateCommentRequest struct {
	Text            string `json:"text" binding:"required,max=200"`
	ParentCommentID *uint  `json:"parentCommentId"`
}

type CommentService struct {
	db *gorm.DB
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{db: db}
}

// Tree returns the project's comments nested by reply.
func (s *CommentService) Tree(ctx context.Context, projectID uint) ([]*CommentNode, error) {
	db := s.db.WithContext(ctx)
	if err := ensureProject(db, projectID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err := db.Preload("Author").Preload("Likes").
		Where("project_id = ?", projectID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(comments), nil
}

// Create posts a comment. A parent, when given, must belong to the same project.
func (s *CommentService) Create(ctx context.Context, projectID, authorID uint, req *CreateCommentRequest) (*models.Comment, error) {
	text := strings.TrimSpace(req.Text)
	if n := utf8.RuneCountInString(text); n == 0 || n > maxCommentLength {
		return nil, response.NewBadRequest(fmt.Sprintf("text must be between 1 and %d characters", maxCommentLength))
	}

	db := s.db.WithContext(ctx)
	if err := ensureProject(db, projectID); err != nil {
		return nil, err
	}

	if req.ParentCommentID != nil {
		var parent models.Comment
		err := db.Select("id").Where("id = ? AND project_id = ?", *req.ParentCommentID, projectID).First(&parent).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound(fmt.Sprintf("no parent comment found with id: %d", *req.ParentCommentID))
		}
		if err != nil {
			return nil, err
		}
	}

	comment := models.Comment{
		ProjectID:       projectID,
		Text:            text,
		AuthorID:        authorID,
		ParentCommentID: req.ParentCommentID,
	}
	if err := db.Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}

	metrics.CommentsCreated.Inc()
	return &comment, nil
}

// ToggleLike flips userID's like on a comment and returns the new state.
func (s *CommentService) ToggleLike(ctx context.Context, projectID, commentID, userID uint) (*VoteResult, error) {
	result := &VoteResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		err := tx.Select("id").Where("id = ? AND project_id = ?", commentID, projectID).First(&comment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound(fmt.Sprintf("no comment found with id: %d", commentID))
		}
		if err != nil {
			return err
		}

		res := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&models.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			like := models.CommentLike{CommentID: commentID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
			result.Liked = true
		}
		return tx.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&result.LikesCount).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
