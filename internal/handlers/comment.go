package handlers

import (
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/dto"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/middleware"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/services"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List returns the project's comments as a reply tree
// GET /api/projects/:id/comments
func (h *CommentHandler) List(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tree, err := h.commentService.Tree(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "comments fetched successfully", gin.H{
		"comments": dto.ToCommentTree(tree),
		"count":    services.CountNodes(tree),
	})
}

// Create posts a comment or a reply
// POST /api/projects/:id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), id, middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "comment created successfully", gin.H{"comment": dto.ToComment(comment)})
}

// ToggleLike flips the caller's like on a comment
// POST /api/projects/:id/comments/:commentId/likes
func (h *CommentHandler) ToggleLike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}

	res, err := h.commentService.ToggleLike(c.Request.Context(), id, commentID, middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, "comment like updated", res)
}
