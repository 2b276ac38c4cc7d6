package models

import (
	"fmt"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/config"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig, debug bool) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	logMode := logger.Warn
	if debug {
		logMode = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
		// Users are referenced by id only; rows may outlive the account.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	DB = db
	return nil
}

func AutoMigrate() error {
	return Migrate(DB)
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Skill{},
		&User{},
		&Project{},
		&ProjectMember{},
		&ProjectLike{},
		&Comment{},
		&CommentLike{},
		&JoinRequest{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

var defaultSkills = []Skill{
	{Name: "Go", Category: "backend"},
	{Name: "Node.js", Category: "backend"},
	{Name: "Python", Category: "backend"},
	{Name: "Java", Category: "backend"},
	{Name: "PostgreSQL", Category: "database"},
	{Name: "MongoDB", Category: "database"},
	{Name: "MySQL", Category: "database"},
	{Name: "JavaScript", Category: "frontend"},
	{Name: "TypeScript", Category: "frontend"},
	{Name: "React", Category: "frontend"},
	{Name: "Vue", Category: "frontend"},
	{Name: "HTML", Category: "frontend"},
	{Name: "CSS", Category: "frontend"},
	{Name: "Docker", Category: "devops"},
	{Name: "Kubernetes", Category: "devops"},
	{Name: "AWS", Category: "devops"},
	{Name: "Figma", Category: "design"},
	{Name: "UI/UX", Category: "design"},
	{Name: "Project Management", Category: "other"},
	{Name: "QA", Category: "other"},
}

// SeedDefaultData fills the skill catalogue on an empty database
func SeedDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Skill{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	skills := make([]Skill, len(defaultSkills))
	copy(skills, defaultSkills)
	return db.Create(&skills).Error
}
