package services

import (
	"context"
	"sort"
	"strings"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"gorm.io/gorm"
)

type SkillService struct {
	db *gorm.DB
}

func NewSkillService(db *gorm.DB) *SkillService {
	return &SkillService{db: db}
}

// List returns every skill ordered by name
func (s *SkillService) List(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	if err := s.db.WithContext(ctx).Order("LOWER(name) ASC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

// Search matches skills whose name contains q, case-insensitively.
func (s *SkillService) Search(ctx context.Context, q string) ([]models.Skill, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, response.NewBadRequest("search query is required")
	}

	var skills []models.Skill
	err := s.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%").
		Order("LOWER(name) ASC").
		Find(&skills).Error
	if err != nil {
		return nil, err
	}
	if len(skills) == 0 {
		return nil, response.NewNotFound("no skills match " + q)
	}
	return skills, nil
}

func skillsByName(db *gorm.DB) *gorm.DB {
	return db.Order("skills.name ASC")
}

// normalizeNames trims, drops blanks and removes duplicates, keeping order.
func normalizeNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// resolveSkills loads skills by exact name, sorted by name. Any unknown
// name is a BadRequest.
func resolveSkills(tx *gorm.DB, names []string) ([]models.Skill, error) {
	names = normalizeNames(names)
	if len(names) == 0 {
		return []models.Skill{}, nil
	}

	var skills []models.Skill
	if err := tx.Where("name IN ?", names).Find(&skills).Error; err != nil {
		return nil, err
	}

	if len(skills) != len(names) {
		found := make(map[string]bool, len(skills))
		for _, sk := range skills {
			found[sk.Name] = true
		}
		var missing []string
		for _, n := range names {
			if !found[n] {
				missing = append(missing, n)
			}
		}
		return nil, response.NewBadRequest("unknown skills: " + strings.Join(missing, ", "))
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	return skills, nil
}
