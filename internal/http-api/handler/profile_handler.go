package handler

import (
	"errors"
	"net/http"

	"microblog/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	postService   service.PostService
	followService service.FollowService
}

func NewProfileHandler(postService service.PostService, followService service.FollowService) *ProfileHandler {
	return &ProfileHandler{
		postService:   postService,
		followService: followService,
	}
}

// RegisterRoutes registers profile and follow routes. The profile page is
// public but personalizes the follow state for authenticated viewers.
func (h *ProfileHandler) RegisterRoutes(router *gin.Engine, requireLogin, optionalLogin gin.HandlerFunc) {
	router.GET("/profile/:username/", optionalLogin, h.Profile)

	router.GET("/profile/:username/follow/", requireLogin, h.Follow)
	router.POST("/profile/:username/follow/", requireLogin, h.Follow)
	router.GET("/profile/:username/unfollow/", requireLogin, h.Unfollow)
	router.POST("/profile/:username/unfollow/", requireLogin, h.Unfollow)
}

// Profile shows one author's posts with their total count and whether the
// requester follows them
// GET /profile/:username/?page=2
func (h *ProfileHandler) Profile(c *gin.Context) {
	username := c.Param("username")
	viewerID := c.GetString("userID")

	page, err := h.postService.Profile(c.Request.Context(), username, viewerID, pageParam(c))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			NotFoundPage(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// Follow idempotently subscribes the requester to the author and redirects
// back to the profile
// GET|POST /profile/:username/follow/
func (h *ProfileHandler) Follow(c *gin.Context) {
	username := c.Param("username")

	err := h.followService.Follow(c.Request.Context(), c.GetString("userID"), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			NotFoundPage(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, profileURL(username))
}

// Unfollow removes the subscription, a missing one is a no-op
// GET|POST /profile/:username/unfollow/
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")

	err := h.followService.Unfollow(c.Request.Context(), c.GetString("userID"), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			NotFoundPage(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, profileURL(username))
}
