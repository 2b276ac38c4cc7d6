package models

import "time"

// ProjectLike is one user's vote on a project. The composite key keeps a
// user from liking the same project twice.
type ProjectLike struct {
	ProjectID uint      `gorm:"primaryKey;autoIncrement:false" json:"projectId"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ProjectLike) TableName() string { return "project_likes" }

// CommentLike is one user's like on a comment.
type CommentLike struct {
	CommentID uint      `gorm:"primaryKey;autoIncrement:false" json:"commentId"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (CommentLike) TableName() string { return "comment_likes" }
