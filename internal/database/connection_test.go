package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go"
)

type staticConfig struct{}

func (staticConfig) GetDBURL() string         { return "ws://user:secret@localhost:8000" }
func (staticConfig) GetDBUser() string        { return "user" }
func (staticConfig) GetDBPass() string        { return "secret" }
func (staticConfig) GetDBNs() string          { return "ns" }
func (staticConfig) GetDBDb() string          { return "db" }
func (staticConfig) GetAppAddr() string       { return ":5000" }
func (staticConfig) GetAppBaseURL() string    { return "http://localhost:5000" }
func (staticConfig) GetGeoIPURL() string      { return "" }
func (staticConfig) GetSessionSecret() string { return "s" }

func TestConnection_UnconnectedIsUnhealthy(t *testing.T) {
	c := NewConnection(staticConfig{})

	assert.False(t, c.IsHealthy())

	db, err := c.DB()
	assert.Nil(t, db)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotConnected))
}

func TestConnection_HealthFlagGatesDB(t *testing.T) {
	c := NewConnection(staticConfig{})
	c.conn = &surrealdb.DB{}

	// A live conn with the health flag down still refuses callers.
	_, err := c.DB()
	assert.True(t, errors.Is(err, ErrNotConnected))

	c.setHealthy(true)
	assert.True(t, c.IsHealthy())
	db, err := c.DB()
	require.NoError(t, err)
	assert.NotNil(t, db)

	c.setHealthy(false)
	assert.False(t, c.IsHealthy())
	_, err = c.DB()
	assert.True(t, errors.Is(err, ErrNotConnected))
}

func TestConnection_CheckHealthWithoutConnection(t *testing.T) {
	c := NewConnection(staticConfig{})
	c.setHealthy(true)

	err := c.checkHealth(context.Background())
	require.Error(t, err)
	assert.False(t, c.IsHealthy())
}

func TestRetryer_GivesUpAfterMaxRetries(t *testing.T) {
	r := &ExponentialBackoffRetryer{
		maxRetries: 2,
		baseDelay:  time.Millisecond,
		maxDelay:   5 * time.Millisecond,
		multiplier: 2.0,
	}

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		return errors.New("still down")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestRetryer_StopsOnFirstSuccess(t *testing.T) {
	r := &ExponentialBackoffRetryer{
		maxRetries: 5,
		baseDelay:  time.Millisecond,
		maxDelay:   5 * time.Millisecond,
		multiplier: 2.0,
	}

	calls := 0
	err := r.Retry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("still down")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryer_HonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewExponentialBackoffRetryer().Retry(ctx, func() error {
		return errors.New("never reached retry wait")
	})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRetryer_DelayIsCapped(t *testing.T) {
	r := &ExponentialBackoffRetryer{
		maxRetries: 10,
		baseDelay:  100 * time.Millisecond,
		maxDelay:   time.Second,
		multiplier: 2.0,
		jitter:     false,
	}

	assert.Equal(t, 100*time.Millisecond, r.calculateDelay(0))
	assert.Equal(t, 800*time.Millisecond, r.calculateDelay(3))
	assert.Equal(t, time.Second, r.calculateDelay(8))
}

func TestRedactDBURL(t *testing.T) {
	redacted := redactDBURL("ws://user:secret@localhost:8000")
	assert.NotContains(t, redacted, "secret")
	assert.Contains(t, redacted, "localhost:8000")
}
