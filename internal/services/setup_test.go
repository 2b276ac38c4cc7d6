package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database with the full schema and the
// default skill catalogue.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.Migrate(db))
	require.NoError(t, models.SeedDefaultData(db))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: fmt.Sprintf("%s@example.com", name), Password: "x"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createProject(t *testing.T, db *gorm.DB, owner *models.User, title string, skills ...string) *models.Project {
	t.Helper()
	svc := NewProjectService(db, nil)
	p, err := svc.Create(t.Context(), owner.ID, &CreateProjectRequest{
		Title:       title,
		Description: "a project called " + title,
		ReqSpots:    3,
		ReqSkills:   skills,
	})
	require.NoError(t, err)
	return p
}

func addMember(t *testing.T, db *gorm.DB, projectID, userID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.ProjectMember{ProjectID: projectID, UserID: userID, Role: models.MemberRoleMember}).Error)
}

// requireStatus asserts err is an AppError with the given HTTP status.
func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	var appErr *response.AppError
	require.True(t, errors.As(err, &appErr), "expected *response.AppError, got %T: %v", err, err)
	require.Equal(t, status, appErr.HTTPStatus, appErr.Message)
}

func memberIDs(t *testing.T, db *gorm.DB, projectID uint) map[uint]string {
	t.Helper()
	var seats []models.ProjectMember
	require.NoError(t, db.Where("project_id = ?", projectID).Find(&seats).Error)
	out := make(map[uint]string, len(seats))
	for _, s := range seats {
		out[s.UserID] = s.Role
	}
	return out
}
