package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"microblog/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// LoginURL is the login prompt every unauthenticated request is sent to.
const LoginURL = "/auth/login/"

// accessTokenCookie carries the access token for browser-style clients.
const accessTokenCookie = "access_token"

// RequireLogin is a Gin middleware protecting page endpoints. It accepts the
// access token from the Authorization header or the access_token cookie and
// redirects unauthenticated requests to the login prompt, carrying the
// originally requested path in the next parameter.
func RequireLogin(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			redirectToLogin(c)
			return
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			redirectToLogin(c)
			return
		}

		// Set user info in context for handlers to use
		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)

		c.Next()
	}
}

// OptionalLogin resolves the requester identity when a valid token is
// present but never redirects. Public pages use it to personalize output.
func OptionalLogin(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if claims, err := authService.ValidateToken(tokenString); err == nil {
				c.Set("userID", claims.UserID)
				c.Set("username", claims.Username)
			}
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		// Format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(accessTokenCookie); err == nil {
		return cookie
	}
	return ""
}

func redirectToLogin(c *gin.Context) {
	next := url.QueryEscape(c.Request.URL.Path)
	c.Redirect(http.StatusFound, LoginURL+"?next="+next)
	c.Abort()
}
