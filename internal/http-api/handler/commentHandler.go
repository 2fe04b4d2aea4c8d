package handler

import (
	"errors"
	"net/http"
	"strconv"

	"microblog/internal/http-api/dto"
	"microblog/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
	}
}

// RegisterRoutes registers comment-related routes
func (h *CommentHandler) RegisterRoutes(router *gin.Engine, requireLogin, writeLimit gin.HandlerFunc) {
	router.POST("/posts/:post_id/comment/", requireLogin, writeLimit, h.Create)
}

// Create persists a comment and redirects to the post detail page. An
// invalid submission is dropped without surfacing errors and redirects all
// the same.
// POST /posts/:post_id/comment/
func (h *CommentHandler) Create(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		NotFoundPage(c)
		return
	}

	var form dto.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusFound, detailURL(postID))
		return
	}

	err = h.commentService.AddComment(c.Request.Context(), postID, c.GetString("userID"), &form)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			NotFoundPage(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, detailURL(postID))
}
