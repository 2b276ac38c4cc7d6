package handlers

import (
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/dto"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/services"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"github.com/gin-gonic/gin"
)

type SkillHandler struct {
	skillService *services.SkillService
}

func NewSkillHandler(skillService *services.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

// GET /api/skills
func (h *SkillHandler) List(c *gin.Context) {
	skills, err := h.skillService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "skills fetched successfully", gin.H{"skills": dto.ToSkills(skills)})
}

// GET /api/skills/search?q=
func (h *SkillHandler) Search(c *gin.Context) {
	skills, err := h.skillService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "skills fetched successfully", gin.H{"skills": dto.ToSkills(skills)})
}
