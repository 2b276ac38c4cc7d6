package models

import (
	"time"

	"gorm.io/datatypes"
)

// Avatar points at an uploaded profile image.
type Avatar struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// User represents a platform account
type User struct {
	ID           uint                       `gorm:"primaryKey" json:"id"`
	Username     string                     `gorm:"size:30;not null" json:"username"`
	Email        string                     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password     string                     `gorm:"size:255;not null" json:"-"`
	Bio          string                     `gorm:"size:500" json:"bio"`
	Avatar       datatypes.JSONType[Avatar] `json:"avatar"`
	Skills       []Skill                    `gorm:"many2many:user_skills" json:"skills,omitempty"`
	ResetToken   *string                    `gorm:"size:64;index" json:"-"` // sha256 of the emailed token
	ResetExpires *time.Time                 `json:"-"`
	CreatedAt    time.Time                  `json:"createdAt"`
	UpdatedAt    time.Time                  `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

func NewAvatar(url, publicID string) datatypes.JSONType[Avatar] {
	return datatypes.NewJSONType(Avatar{URL: url, PublicID: publicID})
}
