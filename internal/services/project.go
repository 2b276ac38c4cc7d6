package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/search"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/logger"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"gorm.io/gorm"
)

const (
	SortCreatedAsc  = "createdAt-asc"
	SortCreatedDesc = "createdAt-desc"
	SortMostLiked   = "mostLiked"

	searchCandidateLimit = 1000
)

type ProjectService struct {
	db    *gorm.DB
	index search.Index
}

func NewProjectService(db *gorm.DB, index search.Index) *ProjectService {
	if index == nil {
		index = search.Noop{}
	}
	return &ProjectService{db: db, index: index}
}

// ProjectListQuery filters and orders the project listing.
type ProjectListQuery struct {
	Pagination
	Sort   string
	Search string
	// Skills uses AND semantics: a project must require every name.
	Skills []string
}

type ProjectListResult struct {
	Projects   []models.Project
	Total      int64
	Page       int
	TotalPages int
}

type CreateProjectRequest struct {
	Title       string   `json:"title" binding:"required,max=50"`
	Description string   `json:"description" binding:"required,max=500"`
	ReqSpots    int      `json:"reqSpots" binding:"required,min=1"`
	ReqSkills   []string `json:"reqSkills"`
}

type UpdateProjectRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=1,max=50"`
	Description *string   `json:"description" binding:"omitempty,min=1,max=500"`
	ReqSpots    *int      `json:"reqSpots" binding:"omitempty,min=1"`
	ReqSkills   *[]string `json:"reqSkills"`
}

// SplitSkills accepts repeated or comma separated skills query values.
func SplitSkills(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return normalizeNames(out)
}

// List returns one page of projects matching q
func (s *ProjectService) List(ctx context.Context, q ProjectListQuery) (*ProjectListResult, error) {
	if q.Page < 1 || q.Limit < 1 {
		q.Pagination = ParsePagination("", "")
	}
	result := &ProjectListResult{Projects: []models.Project{}, Page: q.Page}

	db := s.db.WithContext(ctx)
	query := db.Model(&models.Project{})

	if term := strings.TrimSpace(q.Search); term != "" {
		ids, err := s.searchIDs(ctx, term)
		switch {
		case err == nil && len(ids) == 0:
			return result, nil
		case err == nil:
			query = query.Where("projects.id IN ?", ids)
		default:
			like := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
			query = query.Where("(LOWER(projects.title) LIKE ? ESCAPE '!' OR LOWER(projects.description) LIKE ? ESCAPE '!')", like, like)
		}
	}

	if skills := normalizeNames(q.Skills); len(skills) > 0 {
		withAll := db.Table("project_skills").
			Select("project_skills.project_id").
			Joins("JOIN skills ON skills.id = project_skills.skill_id").
			Where("skills.name IN ?", skills).
			Group("project_skills.project_id").
			Having("COUNT(DISTINCT skills.id) = ?", len(skills))
		query = query.Where("projects.id IN (?)", withAll)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return nil, err
	}
	result.TotalPages = q.Pagination.TotalPages(result.Total)
	if result.Total == 0 {
		return result, nil
	}

	err := query.Scopes(orderProjects(q.Sort), preloadProject).
		Offset(q.Offset()).
		Limit(q.Limit).
		Find(&result.Projects).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

// likeEscaper makes LIKE wildcards in a search term match literally.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (s *ProjectService) searchIDs(ctx context.Context, term string) ([]uint, error) {
	if !s.index.Enabled() {
		return nil, search.ErrDisabled
	}
	ids, err := s.index.Search(ctx, term, searchCandidateLimit)
	if err != nil {
		logger.Warnf("[Project] Search index unavailable, falling back to database match: %v", err)
		return nil, err
	}
	return ids, nil
}

func orderProjects(sort string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch sort {
		case SortMostLiked:
			return db.Order("(SELECT COUNT(*) FROM project_likes WHERE project_likes.project_id = projects.id) DESC").
				Order("projects.created_at ASC").
				Order("projects.id ASC")
		case SortCreatedDesc:
			return db.Order("projects.created_at DESC").Order("projects.id DESC")
		default:
			return db.Order("projects.created_at ASC").Order("projects.id ASC")
		}
	}
}

func preloadProject(db *gorm.DB) *gorm.DB {
	return db.
		Preload("ReqSkills", skillsByName).
		Preload("TeamMembers", func(db *gorm.DB) *gorm.DB { return db.Order("project_members.id ASC") }).
		Preload("Likes")
}

func projectNotFound(id uint) error {
	return response.NewNotFound(fmt.Sprintf("no project found with id: %d", id))
}

// GetByID returns a project with its team, skills and likes loaded
func (s *ProjectService) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	return loadProject(s.db.WithContext(ctx), id)
}

func loadProject(db *gorm.DB, id uint) (*models.Project, error) {
	var project models.Project
	if err := db.Scopes(preloadProject).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projectNotFound(id)
		}
		return nil, err
	}
	return &project, nil
}

// Create stores a project and seats its creator as admin
func (s *ProjectService) Create(ctx context.Context, userID uint, req *CreateProjectRequest) (*models.Project, error) {
	var project models.Project

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		skills, err := resolveSkills(tx, req.ReqSkills)
		if err != nil {
			return err
		}

		project = models.Project{
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			CreatedBy:   userID,
			ReqSpots:    req.ReqSpots,
			ReqSkills:   skills,
		}
		if err := tx.Create(&project).Error; err != nil {
			return err
		}

		owner := models.ProjectMember{ProjectID: project.ID, UserID: userID, Role: models.MemberRoleAdmin}
		return tx.Create(&owner).Error
	})
	if err != nil {
		return nil, err
	}

	created, err := s.GetByID(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	s.syncIndex(ctx, created)
	return created, nil
}

// Update changes the fields present in req. Only the creator may update.
func (s *ProjectService) Update(ctx context.Context, id, userID uint, req *UpdateProjectRequest) (*models.Project, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		project, err := loadProject(tx, id)
		if err != nil {
			return err
		}
		if project.CreatedBy != userID {
			return response.NewForbidden("only the project creator can update this project")
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			updates["description"] = strings.TrimSpace(*req.Description)
		}
		if req.ReqSpots != nil {
			if *req.ReqSpots < project.TeamCount() {
				return response.NewBadRequest(fmt.Sprintf("reqSpots cannot be less than the current team size (%d)", project.TeamCount()))
			}
			updates["req_spots"] = *req.ReqSpots
		}

		target := &models.Project{ID: project.ID}
		if len(updates) > 0 {
			if err := tx.Model(target).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.ReqSkills != nil {
			skills, err := resolveSkills(tx, *req.ReqSkills)
			if err != nil {
				return err
			}
			if err := tx.Model(target).Association("ReqSkills").Replace(skills); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.syncIndex(ctx, updated)
	return updated, nil
}

// Delete removes a project and everything it owns. Only the creator may delete.
func (s *ProjectService) Delete(ctx context.Context, id, userID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return projectNotFound(id)
			}
			return err
		}
		if project.CreatedBy != userID {
			return response.NewForbidden("only the project creator can delete this project")
		}

		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("project_id = ?", id)
		steps := []func() error{
			func() error { return tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentLike{}).Error },
			func() error { return tx.Where("project_id = ?", id).Delete(&models.Comment{}).Error },
			func() error { return tx.Where("project_id = ?", id).Delete(&models.JoinRequest{}).Error },
			func() error { return tx.Where("project_id = ?", id).Delete(&models.ProjectLike{}).Error },
			func() error { return tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error },
			func() error { return tx.Model(&project).Association("ReqSkills").Clear() },
			func() error { return tx.Delete(&project).Error },
		}
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.index.Delete(ctx, id); err != nil {
		logger.Warnf("[Project] Failed to remove project %d from search index: %v", id, err)
	}
	return nil
}

// Leave removes the caller from the team. The creator cannot leave.
func (s *ProjectService) Leave(ctx context.Context, id, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return projectNotFound(id)
			}
			return err
		}
		if project.CreatedBy == userID {
			return response.NewConflict("the project creator cannot leave the project")
		}

		res := tx.Where("project_id = ? AND user_id = ?", id, userID).Delete(&models.ProjectMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return response.NewBadRequest("you are not a member of this project")
		}
		return nil
	})
}

// ReindexAll pushes every project into the search index.
func (s *ProjectService) ReindexAll(ctx context.Context) error {
	if !s.index.Enabled() {
		return nil
	}
	var projects []models.Project
	if err := s.db.WithContext(ctx).Select("id", "title", "description").Find(&projects).Error; err != nil {
		return err
	}
	docs := make([]search.Document, 0, len(projects))
	for _, p := range projects {
		docs = append(docs, toDocument(&p))
	}
	return s.index.Reindex(ctx, docs)
}

func (s *ProjectService) syncIndex(ctx context.Context, p *models.Project) {
	if err := s.index.Upsert(ctx, toDocument(p)); err != nil {
		logger.Warnf("[Project] Failed to index project %d: %v", p.ID, err)
	}
}

func toDocument(p *models.Project) search.Document {
	return search.Document{ID: p.ID, Title: p.Title, Description: p.Description}
}
