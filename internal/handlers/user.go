package handlers

import (
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/dto"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/middleware"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/services"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
	joinService *services.JoinRequestService
	auth        *AuthHandler
}

func NewUserHandler(userService *services.UserService, joinService *services.JoinRequestService, auth *AuthHandler) *UserHandler {
	return &UserHandler{userService: userService, joinService: joinService, auth: auth}
}

// List returns paginated users
// GET /api/users?page=&limit=
func (h *UserHandler) List(c *gin.Context) {
	p := services.ParsePagination(c.Query("page"), c.Query("limit"))
	res, err := h.userService.List(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "users fetched successfully", dto.ToUserList(res))
}

// GetByID returns a public profile
// GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "user fetched successfully", gin.H{"user": dto.ToUser(user)})
}

// UpdateMe edits the caller's profile
// PATCH /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req services.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "profile updated successfully", gin.H{"user": dto.ToUser(user)})
}

// DeleteMe removes the caller's account and signs them out
// DELETE /api/users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	h.auth.clearTokenCookie(c)
	response.Success(c, "account deleted successfully", nil)
}

// MyProjects lists projects the caller is a team member of
// GET /api/users/me/projects
func (h *UserHandler) MyProjects(c *gin.Context) {
	projects, err := h.userService.MyProjects(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "projects fetched successfully", gin.H{"projects": dto.ToProjects(projects)})
}

// MyJoinRequests lists the caller's join requests
// GET /api/users/me/join-requests?status=
func (h *UserHandler) MyJoinRequests(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		return
	}

	reqs, err := h.joinService.ForUser(c.Request.Context(), middleware.GetUserID(c), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "join requests fetched successfully", gin.H{"joinRequests": dto.ToJoinRequests(reqs)})
}
