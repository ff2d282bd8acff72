package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/guestmap/internal/domain"
	"github.com/nfrund/guestmap/internal/middleware"
	"github.com/nfrund/guestmap/internal/pubsub"
	"github.com/nfrund/guestmap/internal/stats"
	"github.com/nfrund/guestmap/internal/topics"
)

// Greeting is the fixed identity string of the API.
const Greeting = "API - 👋🌎🌍🌏"

// APIHandler serves the JSON API: the identity endpoint, the message listing,
// message creation, and the stats counters.
type APIHandler struct {
	store     domain.MessageRepository
	publisher pubsub.Publisher
	collector *stats.Collector
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(store domain.MessageRepository, publisher pubsub.Publisher, collector *stats.Collector) *APIHandler {
	return &APIHandler{
		store:     store,
		publisher: publisher,
		collector: collector,
	}
}

// Root handles GET /api/v1, the liveness/identity endpoint.
func (h *APIHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, GreetingResponse{Message: Greeting})
}

// ListMessages handles GET /api/v1/messages. It returns every stored message
// in creation-date order; there is no pagination or filtering.
func (h *APIHandler) ListMessages(c echo.Context) error {
	msgs, err := h.store.ListMessages(c.Request().Context())
	if err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to list messages", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    CodeStoreError,
			Message: "Failed to load messages",
		})
	}
	if msgs == nil {
		msgs = []domain.Message{}
	}
	return c.JSON(http.StatusOK, msgs)
}

// CreateMessage handles POST /api/v1/messages. The server assigns id and date
// and echoes the full stored record with status 200.
func (h *APIHandler) CreateMessage(c echo.Context) error {
	var req CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidationError,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidationError,
			Message: err.Error(),
		})
	}

	msg := &domain.Message{
		Name:      req.Name,
		Message:   req.Message,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	stored, err := h.store.CreateMessage(c.Request().Context(), msg)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to save message", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    CodeStoreError,
			Message: "Failed to save message",
		})
	}

	h.publishCreated(c, stored)

	return c.JSON(http.StatusOK, stored)
}

// Stats handles GET /api/v1/stats.
func (h *APIHandler) Stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.collector.Snapshot())
}

// publishCreated announces the stored message on the bus. Best-effort: a bus
// failure must not fail the request that already persisted the record.
func (h *APIHandler) publishCreated(c echo.Context, stored *domain.Message) {
	if h.publisher == nil {
		return
	}
	payload, err := json.Marshal(stored)
	if err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to encode created-message event", "error", err)
		return
	}
	if err := h.publisher.Publish(c.Request().Context(), pubsub.Message{
		Topic:   topics.MessageCreated,
		Payload: payload,
	}); err != nil {
		middleware.FromContext(c.Request().Context()).Error("Failed to publish created-message event", "error", err)
	}
}
