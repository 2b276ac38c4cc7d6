package models

// Skill is immutable reference data attached to users and projects.
type Skill struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Category string `gorm:"size:50" json:"category"`
}

func (Skill) TableName() string { return "skills" }
