package models

import "time"

// Project is a team looking for members
type Project struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"size:50;not null" json:"title"`
	Description string          `gorm:"size:500;not null" json:"description"`
	CreatedBy   uint            `gorm:"index;not null" json:"createdBy"`
	Creator     *User           `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	ReqSpots    int             `gorm:"not null;default:1" json:"reqSpots"`
	TeamMembers []ProjectMember `gorm:"foreignKey:ProjectID" json:"teamMembers,omitempty"`
	ReqSkills   []Skill         `gorm:"many2many:project_skills" json:"reqSkills,omitempty"`
	Likes       []ProjectLike   `gorm:"foreignKey:ProjectID" json:"-"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (p *Project) TeamCount() int { return len(p.TeamMembers) }

func (p *Project) AvailableSpots() int { return p.ReqSpots - p.TeamCount() }

func (p *Project) LikesCount() int { return len(p.Likes) }

// HasMember reports whether userID appears in the loaded team list.
func (p *Project) HasMember(userID uint) bool {
	for _, m := range p.TeamMembers {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// LikedBy reports whether userID appears in the loaded likes.
func (p *Project) LikedBy(userID uint) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

func (Project) TableName() string { return "projects" }
