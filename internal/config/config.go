package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Provider exposes read-only access to application configuration. Consumers
// depend on this interface rather than the concrete Config so tests can swap
// in fixed values.
type Provider interface {
	GetDBURL() string
	GetDBUser() string
	GetDBPass() string
	GetDBNs() string
	GetDBDb() string
	GetAppAddr() string
	GetAppBaseURL() string
	GetGeoIPURL() string
	GetSessionSecret() string
}

// Config holds all configuration for the application.
type Config struct {
	DBUrl         string
	DBNs          string
	DBDb          string
	DBUser        string
	DBPass        string
	AppAddr       string
	AppBaseURL    string
	GeoIPURL      string
	SessionSecret string
}

// New loads configuration from environment variables.
func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		DBUrl:         os.Getenv("SURREAL_URL"),
		DBUser:        os.Getenv("SURREAL_USER"),
		DBPass:        os.Getenv("SURREAL_PASS"),
		DBNs:          os.Getenv("SURREAL_NS"),
		DBDb:          os.Getenv("SURREAL_DB"),
		AppAddr:       getEnvOrDefault("APP_ADDR", ":5000"),
		AppBaseURL:    getEnvOrDefault("APP_BASE_URL", "http://localhost:5000"),
		GeoIPURL:      os.Getenv("GEOIP_URL"), // empty selects the public ipapi.co service
		SessionSecret: getEnvOrDefault("SESSION_SECRET", "guestmap-dev-secret"),
	}

	if cfg.DBUrl == "" || cfg.DBNs == "" || cfg.DBDb == "" {
		log.Fatal("Required environment variables SURREAL_URL, SURREAL_NS, or SURREAL_DB are not set.")
	}

	return cfg
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *Config) GetDBURL() string         { return c.DBUrl }
func (c *Config) GetDBUser() string        { return c.DBUser }
func (c *Config) GetDBPass() string        { return c.DBPass }
func (c *Config) GetDBNs() string          { return c.DBNs }
func (c *Config) GetDBDb() string          { return c.DBDb }
func (c *Config) GetAppAddr() string       { return c.AppAddr }
func (c *Config) GetAppBaseURL() string    { return c.AppBaseURL }
func (c *Config) GetGeoIPURL() string      { return c.GeoIPURL }
func (c *Config) GetSessionSecret() string { return c.SessionSecret }
