package models

import "time"

const (
	JoinStatusPending  = "pending"
	JoinStatusApproved = "approved"
	JoinStatusDeclined = "declined"
)

// JoinRequest asks a project's creator for a seat on the team. There is at
// most one row per (project, user); resubmitting rewrites it.
type JoinRequest struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProjectID   uint       `gorm:"uniqueIndex:idx_join_project_user;not null" json:"projectId"`
	Project     *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID      uint       `gorm:"uniqueIndex:idx_join_project_user;not null" json:"userId"`
	User        *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status      string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	JoinMessage string     `gorm:"size:500;not null" json:"joinMessage"`
	ReviewedBy  *uint      `json:"reviewedBy"`
	ReviewedAt  *time.Time `json:"reviewedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (JoinRequest) TableName() string { return "join_requests" }
