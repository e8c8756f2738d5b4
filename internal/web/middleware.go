package web

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/aryanwebd35/portfolio/internal/observability"
)

// requestLogger tags each request with an id and logs it when done.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header("X-Request-ID", reqID)
		c.Request = c.Request.WithContext(observability.WithRequestID(c.Request.Context(), reqID))

		c.Next()

		observability.LoggerFromContext(c.Request.Context()).Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

var untrackedPrefixes = []string{
	"/static/", "/admin/", "/favicon", "/privacy", "/chat", "/ws/", "/photo", "/healthz",
}

// visitorTracking records page views with a hashed IP. Assets, admin pages
// and polling endpoints are skipped, and Do Not Track is respected.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		hashed := s.admin.hashIP(c.ClientIP())
		userAgent := c.GetHeader("User-Agent")
		s.background(func() {
			if err := s.store.RecordVisit(hashed, userAgent, path, time.Now()); err != nil {
				observability.Logger().Error("recording visitor", "error", err)
			}
		})
		c.Next()
	}
}
