package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Static error bodies. Unknown routes and missing records share the 404 body,
// panics fall through to the 500 body via the recovery middleware.

// RegisterErrorPages installs the not-found fallback for unknown routes
func RegisterErrorPages(router *gin.Engine) {
	router.NoRoute(NotFoundPage)
}

// NotFoundPage renders the 404 body carrying the requested path
func NotFoundPage(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error": "page not found",
		"path":  c.Request.URL.Path,
	})
}

// ServerErrorPage is the recovery handler for unhandled panics
func ServerErrorPage(c *gin.Context, _ any) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "internal server error",
	})
}
