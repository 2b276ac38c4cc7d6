package models

import (
	"time"
)

const (
	MemberRoleAdmin  = "admin"
	MemberRoleMember = "member"
)

// ProjectMember represents a user's seat on a project team.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"projectId"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"userId"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      string    `gorm:"size:20;not null;default:member" json:"role"` // admin, member
	CreatedAt time.Time `json:"createdAt"`
}

func (ProjectMember) TableName() string { return "project_members" }
