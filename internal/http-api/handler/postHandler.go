package handler

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"microblog/internal/http-api/dto"
	"microblog/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PostHandler struct {
	postService service.PostService
	mediaPath   string
}

func NewPostHandler(postService service.PostService, mediaPath string) *PostHandler {
	return &PostHandler{
		postService: postService,
		mediaPath:   mediaPath,
	}
}

// RegisterRoutes registers post-related routes. The index route carries the
// page cache, write routes carry authentication and the write rate limit.
func (h *PostHandler) RegisterRoutes(router *gin.Engine, requireLogin, cachePage, writeLimit gin.HandlerFunc) {
	router.GET("/", cachePage, h.Index)
	router.GET("/group/:slug/", h.GroupPosts)
	router.GET("/posts/:post_id/", h.Detail)

	router.GET("/follow/", requireLogin, h.FollowIndex)

	create := router.Group("/create", requireLogin)
	{
		create.GET("/", h.CreateForm)
		create.POST("/", writeLimit, h.Create)
	}

	edit := router.Group("/posts/:post_id/edit", requireLogin)
	{
		edit.GET("/", h.EditForm)
		edit.POST("/", writeLimit, h.Edit)
	}
}

// Index lists all posts newest-first
// GET /?page=2
func (h *PostHandler) Index(c *gin.Context) {
	posts, err := h.postService.ListIndex(c.Request.Context(), pageParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GroupPosts lists one group's posts
// GET /group/:slug/?page=2
func (h *PostHandler) GroupPosts(c *gin.Context) {
	page, err := h.postService.ListByGroup(c.Request.Context(), c.Param("slug"), pageParam(c))
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			NotFoundPage(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// FollowIndex lists posts from the authors the requester follows
// GET /follow/?page=2
func (h *PostHandler) FollowIndex(c *gin.Context) {
	userID := c.GetString("userID")

	posts, err := h.postService.ListFeed(c.Request.Context(), userID, pageParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// Detail shows one post with its comments and a blank comment form
// GET /posts/:post_id/
func (h *PostHandler) Detail(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		NotFoundPage(c)
		return
	}

	detail, err := h.postService.GetDetail(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			NotFoundPage(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// CreateForm renders the blank post form
// GET /create/
func (h *PostHandler) CreateForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"form": dto.PostForm{}})
}

// Create persists a new post attributed to the requester and redirects to
// their profile
// POST /create/
func (h *PostHandler) Create(c *gin.Context) {
	form, ok := h.bindPostForm(c)
	if !ok {
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"form": form, "errors": errs})
		return
	}

	_, err := h.postService.Create(c.Request.Context(), c.GetString("userID"), form)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"form":   form,
				"errors": gin.H{"group": "unknown group"},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Redirect(http.StatusFound, profileURL(c.GetString("username")))
}

// EditForm renders the edit form prefilled from the stored post. Non-authors
// are redirected to the detail page without an error.
// GET /posts/:post_id/edit/
func (h *PostHandler) EditForm(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		NotFoundPage(c)
		return
	}

	detail, err := h.postService.GetDetail(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			NotFoundPage(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if detail.Post.Author.Username != c.GetString("username") {
		c.Redirect(http.StatusFound, detailURL(postID))
		return
	}

	form := dto.PostForm{Text: detail.Post.Text}
	if detail.Post.Group != nil {
		form.Group = &detail.Post.Group.ID
		form.GroupRaw = strconv.FormatInt(detail.Post.Group.ID, 10)
	}

	c.JSON(http.StatusOK, gin.H{"form": form, "is_edit": true, "post": detail.Post})
}

// Edit persists changes to the requester's own post and redirects to the
// detail page. Non-authors are silently redirected there instead.
// POST /posts/:post_id/edit/
func (h *PostHandler) Edit(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("post_id"), 10, 64)
	if err != nil {
		NotFoundPage(c)
		return
	}

	// Existence and ownership decide the response shape before the form is
	// looked at: non-authors never see validation errors, they get the same
	// redirect a valid submission would produce.
	detail, err := h.postService.GetDetail(c.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			NotFoundPage(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if detail.Post.Author.Username != c.GetString("username") {
		c.Redirect(http.StatusFound, detailURL(postID))
		return
	}

	form, ok := h.bindPostForm(c)
	if !ok {
		return
	}

	if errs := form.Validate(); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"form": form, "errors": errs, "is_edit": true})
		return
	}

	_, err = h.postService.Edit(c.Request.Context(), postID, c.GetString("userID"), form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			NotFoundPage(c)
		case errors.Is(err, service.ErrNotAuthor):
			// Authorization denial is a silent redirect, not an error.
			c.Redirect(http.StatusFound, detailURL(postID))
		case errors.Is(err, service.ErrGroupNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"form":    form,
				"errors":  gin.H{"group": "unknown group"},
				"is_edit": true,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Redirect(http.StatusFound, detailURL(postID))
}

// bindPostForm binds the text/group fields and stores an uploaded image when
// one is attached. Responds and returns false on a malformed body.
func (h *PostHandler) bindPostForm(c *gin.Context) (*dto.PostForm, bool) {
	var form dto.PostForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return &form, true
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	rel := filepath.Join("posts", name)
	if err := c.SaveUploadedFile(file, filepath.Join(h.mediaPath, rel)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("store image: %v", err)})
		return nil, false
	}
	form.Image = rel

	return &form, true
}

// pageParam reads the optional page query parameter, anything unparseable
// falls back to the first page
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

func detailURL(postID int64) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

func profileURL(username string) string {
	return fmt.Sprintf("/profile/%s/", username)
}
