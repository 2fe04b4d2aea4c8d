package middleware

import (
	"bytes"
	"net/http"
	"time"

	"microblog/internal/cache"

	"github.com/gin-gonic/gin"
)

// IndexCachePrefix keys the cached index pages, one entry per path+query.
const IndexCachePrefix = "page:index:"

type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CachePage serves GET responses from the page cache for the duration of the
// TTL. Writes during the window stay invisible until the entry expires, there
// is no invalidation on write.
func CachePage(pages cache.PageCache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := IndexCachePrefix + c.Request.URL.RequestURI()

		// Cache errors fall through to a live render.
		if page, err := pages.Get(c.Request.Context(), key); err == nil && page != nil {
			c.Data(page.Status, page.ContentType, page.Body)
			c.Abort()
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if writer.Status() != http.StatusOK {
			return
		}

		page := &cache.Page{
			Status:      writer.Status(),
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		}
		_ = pages.Set(c.Request.Context(), key, page, ttl)
	}
}
