package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"microblog/internal/http-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func originRouter(allowed []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CheckOrigin(allowed))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/create/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestCheckOrigin_RejectsForeignOriginOnWrite(t *testing.T) {
	r := originRouter([]string{"https://blog.example.com"})

	req, _ := http.NewRequest(http.MethodPost, "/create/", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCheckOrigin_AllowsListedOrigin(t *testing.T) {
	r := originRouter([]string{"https://blog.example.com"})

	req, _ := http.NewRequest(http.MethodPost, "/create/", nil)
	req.Header.Set("Origin", "https://blog.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckOrigin_IgnoresOriginOnReads(t *testing.T) {
	r := originRouter([]string{"https://blog.example.com"})

	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.net")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCheckOrigin_AllowsMissingOrigin(t *testing.T) {
	r := originRouter([]string{"https://blog.example.com"})

	req, _ := http.NewRequest(http.MethodPost, "/create/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_RejectsAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/create/", middleware.RateLimit(1, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest(http.MethodPost, "/create/", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}
