package database

import (
	"context"
	"time"

	"github.com/nfrund/guestmap/internal/domain"
	"github.com/surrealdb/surrealdb.go"
)

// messagesTable is the SurrealDB table holding guestbook entries.
const messagesTable = "messages"

// SurrealMessageStore persists guestbook messages in SurrealDB. It implements
// domain.MessageRepository. Messages are append-only: the application never
// updates or deletes them.
type SurrealMessageStore struct {
	db *surrealdb.DB
}

// NewSurrealMessageStore creates a message store on the given connection.
func NewSurrealMessageStore(db *surrealdb.DB) *SurrealMessageStore {
	return &SurrealMessageStore{db: db}
}

// CreateMessage stores a new message. The record id and creation date are
// assigned here, on the store side; any caller-supplied ID or Date is ignored.
// The full stored record is returned.
func (s *SurrealMessageStore) CreateMessage(ctx context.Context, msg *domain.Message) (*domain.Message, error) {
	if s.db == nil {
		return nil, NewDBError(ErrNotConnected, "create message")
	}
	if msg == nil {
		return nil, NewDBError(ErrInvalidInput, "create message: nil message")
	}

	query := `
		CREATE messages CONTENT {
			name: $name,
			message: $message,
			latitude: $latitude,
			longitude: $longitude,
			date: $date
		} RETURN *, type::string(id) AS id
	`
	params := map[string]any{
		"name":      msg.Name,
		"message":   msg.Message,
		"latitude":  msg.Latitude,
		"longitude": msg.Longitude,
		"date":      time.Now().UTC(),
	}

	created, err := QueryOne[domain.Message](ctx, s.db, query, params)
	if err != nil {
		return nil, NewDBError(ErrQueryFailed, "create message").wrap(err)
	}
	if created == nil {
		return nil, NewDBError(ErrQueryFailed, "create message: empty result")
	}
	return created, nil
}

// ListMessages returns every stored message ordered by creation date
// ascending. Insertion order is the canonical listing order, so the first
// message at a location stays the marker primary across reloads.
func (s *SurrealMessageStore) ListMessages(ctx context.Context) ([]domain.Message, error) {
	if s.db == nil {
		return nil, NewDBError(ErrNotConnected, "list messages")
	}

	query := `SELECT *, type::string(id) AS id FROM messages ORDER BY date ASC`
	msgs, err := Query[domain.Message](ctx, s.db, query, nil)
	if err != nil {
		return nil, NewDBError(ErrQueryFailed, "list messages").wrap(err)
	}
	return msgs, nil
}
