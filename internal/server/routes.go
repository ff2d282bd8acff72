package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/guestmap/internal/middleware"
)

// RegisterRoutes sets up all the application routes.
func (s *Server) RegisterRoutes() {
	rateLimiter := middleware.RateLimiter()

	// HTML side: the map page and the htmx form endpoint.
	s.E.GET("/", s.guestbookHandler.MapPage)
	s.E.POST("/guestbook/messages", s.guestbookHandler.SubmitMessage, rateLimiter)

	// JSON API.
	api := s.E.Group("/api/v1")
	api.GET("", s.apiHandler.Root)
	api.GET("/messages", s.apiHandler.ListMessages)
	api.POST("/messages", s.apiHandler.CreateMessage, rateLimiter)
	api.GET("/stats", s.apiHandler.Stats)

	s.E.GET("/health", s.Health)
}

// Health reports liveness including the database link: 200 while the managed
// connection is healthy, 503 once the monitor has flagged it down.
func (s *Server) Health(c echo.Context) error {
	if s.Conn == nil || !s.Conn.IsHealthy() {
		return c.String(http.StatusServiceUnavailable, "database unavailable")
	}
	return c.String(http.StatusOK, "OK")
}
