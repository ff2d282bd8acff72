package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/guestmap/internal/database"
	"github.com/nfrund/guestmap/internal/geoip"
	"github.com/nfrund/guestmap/internal/handlers"
	"github.com/nfrund/guestmap/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRegisterRoutes checks the route table without touching the database:
// the handlers are constructed but never invoked.
func TestRegisterRoutes(t *testing.T) {
	store := database.NewSurrealMessageStore(nil)
	s := &Server{
		E:                echo.New(),
		apiHandler:       handlers.NewAPIHandler(store, nil, stats.NewCollector()),
		guestbookHandler: handlers.NewGuestbookHandler(store, nil, geoip.New("")),
	}
	s.RegisterRoutes()

	want := map[string]string{
		"GET /":                    "",
		"POST /guestbook/messages": "",
		"GET /api/v1":              "",
		"GET /api/v1/messages":     "",
		"POST /api/v1/messages":    "",
		"GET /api/v1/stats":        "",
		"GET /health":              "",
	}

	got := map[string]string{}
	for _, r := range s.E.Routes() {
		got[r.Method+" "+r.Path] = ""
	}
	for route := range want {
		assert.Contains(t, got, route)
	}
}

// TestHealth_ReportsDatabaseState checks that the health endpoint degrades
// when the managed connection is absent or unhealthy.
func TestHealth_ReportsDatabaseState(t *testing.T) {
	e := echo.New()

	t.Run("no connection", func(t *testing.T) {
		s := &Server{E: e}
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, s.Health(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("unhealthy connection", func(t *testing.T) {
		s := &Server{E: e, Conn: database.NewConnection(nil)}
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, s.Health(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
