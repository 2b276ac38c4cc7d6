package handlers

import (
	"fmt"
	"strconv"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/models"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"github.com/gin-gonic/gin"
)

var joinStatuses = map[string]bool{
	models.JoinStatusPending:  true,
	models.JoinStatusApproved: true,
	models.JoinStatusDeclined: true,
}

// pathID parses a numeric path parameter. A malformed id answers 404 like
// any other id that names nothing.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.NotFound(c, fmt.Sprintf("no item found with id: %s", raw))
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

func statusFilter(c *gin.Context) (string, bool) {
	status := c.Query("status")
	if status != "" && !joinStatuses[status] {
		response.BadRequest(c, "invalid status")
		return "", false
	}
	return status, true
}
