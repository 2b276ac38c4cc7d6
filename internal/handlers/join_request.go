package handlers

import (
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/dto"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/middleware"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/services"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"github.com/gin-gonic/gin"
)

type JoinRequestHandler struct {
	joinService *services.JoinRequestService
}

func NewJoinRequestHandler(joinService *services.JoinRequestService) *JoinRequestHandler {
	return &JoinRequestHandler{joinService: joinService}
}

// Submit asks the project creator for a seat
// POST /api/projects/:id/join-requests
func (h *JoinRequestHandler) Submit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.SubmitJoinRequest
	if !bindJSON(c, &req) {
		return
	}

	jr, err := h.joinService.Submit(c.Request.Context(), id, middleware.GetUserID(c), req.JoinMessage)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "join request sent", gin.H{"joinRequest": dto.ToJoinRequest(jr)})
}

// List shows the project's requests to its creator
// GET /api/projects/:id/join-requests?status=
func (h *JoinRequestHandler) List(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	status, ok := statusFilter(c)
	if !ok {
		return
	}

	reqs, err := h.joinService.List(c.Request.Context(), id, middleware.GetUserID(c), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "join requests fetched successfully", gin.H{"joinRequests": dto.ToJoinRequests(reqs)})
}

// Withdraw deletes the caller's request
// DELETE /api/projects/:id/join-requests
func (h *JoinRequestHandler) Withdraw(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.joinService.Withdraw(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "join request withdrawn", nil)
}

// Review approves or declines a request
// PATCH /api/projects/:id/join-requests/:requestId
func (h *JoinRequestHandler) Review(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	requestID, ok := pathID(c, "requestId")
	if !ok {
		return
	}

	var req services.ReviewJoinRequest
	if !bindJSON(c, &req) {
		return
	}

	jr, err := h.joinService.Review(c.Request.Context(), id, requestID, middleware.GetUserID(c), req.Action)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "join request "+jr.Status, gin.H{"joinRequest": dto.ToJoinRequest(jr)})
}
