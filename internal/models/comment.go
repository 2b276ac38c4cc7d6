package models

import "time"

// Comment is a message on a project; replies point at their parent.
type Comment struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	ProjectID       uint          `gorm:"index;not null" json:"projectId"`
	Text            string        `gorm:"size:200;not null" json:"text"`
	AuthorID        uint          `gorm:"index;not null" json:"authorId"`
	Author          *User         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	ParentCommentID *uint         `gorm:"index" json:"parentCommentId"`
	Likes           []CommentLike `gorm:"foreignKey:CommentID" json:"-"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func (Comment) TableName() string { return "comments" }
