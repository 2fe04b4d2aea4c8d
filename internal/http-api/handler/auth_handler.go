package handler

import (
	"net/http"

	"microblog/internal/http-api/dto"
	"microblog/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService  service.AuthService
	cookieMaxAge int
	cookieSecure bool
}

func NewAuthHandler(authService service.AuthService, cookieMaxAge int, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieMaxAge: cookieMaxAge,
		cookieSecure: cookieSecure,
	}
}

// RegisterRoutes registers auth-related routes
func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup/", h.Signup)
		auth.GET("/login/", h.LoginPrompt)
		auth.POST("/login/", h.Login)
		auth.POST("/refresh/", h.RefreshToken)
	}
}

// Signup registers a new user
// POST /auth/signup/
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupDTO
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.FirstName, req.LastName, req.Password)
	if err == service.ErrNameInUse || err == service.ErrEmailInUse {
		c.JSON(http.StatusConflict, gin.H{"error": "account creation failed"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToUserResponse(user))
}

// LoginPrompt is the target of unauthenticated redirects. It echoes the path
// the visitor was trying to reach.
// GET /auth/login/?next=/create/
func (h *AuthHandler) LoginPrompt(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "authentication required",
		"next":    c.Query("next"),
	})
}

// Login authenticates a user, returning tokens and setting the access token
// cookie that page redirects rely on
// POST /auth/login/
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginDTO
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, refreshToken, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.SetCookie("access_token", accessToken, h.cookieMaxAge, "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.FromModelToUserResponse(user),
	})
}

// RefreshToken exchanges a refresh token for a new access token
// POST /auth/refresh/
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newAccessToken, err := h.authService.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.SetCookie("access_token", newAccessToken, h.cookieMaxAge, "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, dto.AuthResponse{AccessToken: newAccessToken})
}
