package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/guestmap/internal/domain"
	"github.com/nfrund/guestmap/internal/pubsub"
	"github.com/nfrund/guestmap/internal/stats"
	"github.com/nfrund/guestmap/internal/topics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory MessageRepository for handler tests.
type fakeStore struct {
	msgs      []domain.Message
	createErr error
	listErr   error
}

func (f *fakeStore) CreateMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *msg
	stored.ID = fmt.Sprintf("messages:%d", len(f.msgs)+1)
	stored.Date = time.Now().UTC()
	f.msgs = append(f.msgs, stored)
	return &stored, nil
}

func (f *fakeStore) ListMessages(ctx context.Context) ([]domain.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.msgs, nil
}

// fakePublisher records everything published.
type fakePublisher struct {
	published []pubsub.Message
}

func (f *fakePublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	f.published = append(f.published, msg)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func TestAPIRoot(t *testing.T) {
	e := newTestEcho()
	h := NewAPIHandler(&fakeStore{}, nil, stats.NewCollector())

	req := httptest.NewRequest(http.MethodGet, "/api/v1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.Root(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body GreetingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, Greeting, body.Message)
}

func TestCreateMessage(t *testing.T) {
	validBody := `{"name":"CJ","message":"hello from the test suite","latitude":43.0,"longitude":-79.0}`

	t.Run("valid submission is stored and echoed", func(t *testing.T) {
		e := newTestEcho()
		store := &fakeStore{}
		pub := &fakePublisher{}
		h := NewAPIHandler(store, pub, stats.NewCollector())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(validBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, h.CreateMessage(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)

		var stored domain.Message
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
		assert.Equal(t, "CJ", stored.Name)
		assert.Equal(t, "hello from the test suite", stored.Message)
		assert.NotEmpty(t, stored.ID)
		assert.False(t, stored.Date.IsZero())

		require.Len(t, pub.published, 1)
		assert.Equal(t, topics.MessageCreated, pub.published[0].Topic)
	})

	t.Run("rejected fields return a validation error", func(t *testing.T) {
		cases := map[string]string{
			"empty name":        `{"name":"","message":"hello world","latitude":1,"longitude":1}`,
			"name starts badly": `{"name":"!CJ","message":"hello world","latitude":1,"longitude":1}`,
			"message too short": `{"name":"CJ","message":"hi","latitude":1,"longitude":1}`,
			"message too long":  fmt.Sprintf(`{"name":"CJ","message":%q,"latitude":1,"longitude":1}`, strings.Repeat("x", 101)),
			"latitude range":    `{"name":"CJ","message":"hello world","latitude":91,"longitude":1}`,
			"longitude range":   `{"name":"CJ","message":"hello world","latitude":1,"longitude":-181}`,
		}

		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				e := newTestEcho()
				store := &fakeStore{}
				h := NewAPIHandler(store, nil, stats.NewCollector())

				req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
				rec := httptest.NewRecorder()

				require.NoError(t, h.CreateMessage(e.NewContext(req, rec)))
				assert.Equal(t, http.StatusBadRequest, rec.Code)

				var errResp ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
				assert.Equal(t, CodeValidationError, errResp.Code)
				assert.Empty(t, store.msgs, "invalid submission must not reach the store")
			})
		}
	})

	t.Run("trailing junk after an alnum start is accepted", func(t *testing.T) {
		e := newTestEcho()
		h := NewAPIHandler(&fakeStore{}, nil, stats.NewCollector())

		body := `{"name":"CJ!!!","message":"hello world","latitude":1,"longitude":1}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, h.CreateMessage(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("store failure returns a store error", func(t *testing.T) {
		e := newTestEcho()
		h := NewAPIHandler(&fakeStore{createErr: errors.New("connection lost")}, nil, stats.NewCollector())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(validBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		require.NoError(t, h.CreateMessage(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		var errResp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
		assert.Equal(t, CodeStoreError, errResp.Code)
	})
}

func TestListMessages(t *testing.T) {
	t.Run("empty store returns an empty array", func(t *testing.T) {
		e := newTestEcho()
		h := NewAPIHandler(&fakeStore{}, nil, stats.NewCollector())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/messages", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, h.ListMessages(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("created messages come back in the listing", func(t *testing.T) {
		e := newTestEcho()
		store := &fakeStore{}
		h := NewAPIHandler(store, nil, stats.NewCollector())

		body := `{"name":"Ana","message":"greetings from here","latitude":43.65,"longitude":-79.38}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/messages", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		require.NoError(t, h.CreateMessage(e.NewContext(req, rec)))
		require.Equal(t, http.StatusOK, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/api/v1/messages", nil)
		rec = httptest.NewRecorder()
		require.NoError(t, h.ListMessages(e.NewContext(req, rec)))

		var msgs []domain.Message
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
		require.Len(t, msgs, 1)
		assert.Equal(t, "Ana", msgs[0].Name)
	})

	t.Run("listing twice returns the same result", func(t *testing.T) {
		e := newTestEcho()
		store := &fakeStore{msgs: []domain.Message{
			{ID: "messages:1", Name: "CJ", Message: "hello world", Latitude: 1, Longitude: 2},
		}}
		h := NewAPIHandler(store, nil, stats.NewCollector())

		bodies := make([]string, 2)
		for i := range bodies {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/messages", nil)
			rec := httptest.NewRecorder()
			require.NoError(t, h.ListMessages(e.NewContext(req, rec)))
			bodies[i] = rec.Body.String()
		}
		assert.Equal(t, bodies[0], bodies[1])
	})

	t.Run("store failure returns a store error", func(t *testing.T) {
		e := newTestEcho()
		h := NewAPIHandler(&fakeStore{listErr: errors.New("connection lost")}, nil, stats.NewCollector())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/messages", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, h.ListMessages(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestStats(t *testing.T) {
	e := newTestEcho()
	collector := stats.NewCollector()
	collector.Seed([]domain.Message{
		{Name: "CJ", Message: "hello world", Latitude: 1, Longitude: 2},
		{Name: "Ana", Message: "hello again", Latitude: 1, Longitude: 2},
	})
	h := NewAPIHandler(&fakeStore{}, nil, collector)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Stats(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var snap stats.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 2, snap.Messages)
	assert.Equal(t, 1, snap.Locations)
}
