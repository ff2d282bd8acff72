package testutils

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/nfrund/guestmap/internal/config"
	"github.com/nfrund/guestmap/internal/domain"
	"github.com/nfrund/guestmap/internal/logging"
)

// ConfigForTests loads the .env.test file and returns a valid config.Provider.
// This is the definitive way to get configuration for integration tests.
func ConfigForTests(t *testing.T) config.Provider {
	t.Helper()

	// Find project root by looking for go.mod to reliably locate .env.test
	path, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			break
		}
		if path == filepath.Dir(path) {
			t.Fatalf("could not find project root with go.mod")
		}
		path = filepath.Dir(path)
	}

	// Manually read the .env.test file.
	env, err := godotenv.Read(filepath.Join(path, ".env.test"))
	if err != nil {
		t.Fatalf("failed to load .env.test file: %v", err)
	}

	// t.Setenv is the idiomatic and safest way to handle test environments.
	for key, value := range env {
		t.Setenv(key, value)
	}

	logging.New()

	// Now that the environment is set, create the config.
	return config.New()
}

// NewTestMessage returns a stored-looking message with a unique id at the
// given coordinates. Name and text are valid under the submission rules.
func NewTestMessage(lat, lng float64) domain.Message {
	return domain.Message{
		ID:        fmt.Sprintf("messages:%s", uuid.NewString()),
		Name:      "CJ",
		Message:   "coolest app ever",
		Latitude:  lat,
		Longitude: lng,
		Date:      time.Date(2018, 10, 6, 15, 21, 39, 414000000, time.UTC),
	}
}
