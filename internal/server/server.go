package server

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/guestmap/internal/config"
	"github.com/nfrund/guestmap/internal/database"
	"github.com/nfrund/guestmap/internal/domain"
	"github.com/nfrund/guestmap/internal/geoip"
	"github.com/nfrund/guestmap/internal/handlers"
	"github.com/nfrund/guestmap/internal/logging"
	"github.com/nfrund/guestmap/internal/middleware"
	"github.com/nfrund/guestmap/internal/pubsub"
	"github.com/nfrund/guestmap/internal/rendering"
	"github.com/nfrund/guestmap/internal/stats"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E    *echo.Echo
	Conn *database.Connection
	Cfg  config.Provider

	store        domain.MessageRepository
	bridge       *pubsub.WatermillBridge
	publisher    pubsub.Publisher
	collector    *stats.Collector
	otelShutdown func()

	apiHandler       *handlers.APIHandler
	guestbookHandler *handlers.GuestbookHandler
}

// New creates a new Server instance with every dependency wired.
func New() *Server {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		// We don't have slog configured yet, so we use the standard logger here.
		log.Println("No .env file found, relying on environment variables")
	}

	logging.New() // Initialize the structured logger
	cfg := config.New()

	ctx := context.Background()
	conn := database.NewConnection(cfg)
	if err := conn.Connect(ctx); err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	conn.StartMonitoring()
	db, err := conn.DB()
	if err != nil {
		slog.Error("Failed to get database connection", "error", err)
		os.Exit(1)
	}
	store := database.NewSurrealMessageStore(db)

	// Event bus with optional tracing. When tracing is disabled the tracer is
	// a noop and publishes cost nothing extra.
	bridge := pubsub.NewWatermillBridge()
	tracer, otelShutdown, err := pubsub.SetupOTel(ctx, pubsub.LoadTracingConfigFromEnv())
	if err != nil {
		slog.Error("Failed to set up tracing", "error", err)
		os.Exit(1)
	}
	publisher := pubsub.NewTracedPublisher(bridge, tracer)

	// Seed the stats from the store, then keep them current off the bus.
	collector := stats.NewCollector()
	if msgs, err := store.ListMessages(ctx); err != nil {
		slog.Warn("Could not seed stats from existing messages", "error", err)
	} else {
		collector.Seed(msgs)
	}
	if err := collector.Subscribe(ctx, bridge); err != nil {
		slog.Error("Failed to subscribe stats collector", "error", err)
		os.Exit(1)
	}

	geoClient := geoip.New(cfg.GetGeoIPURL())

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(middleware.Logger)
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// Configure and use session middleware
	sessionStore := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
	}
	e.Use(session.Middleware(sessionStore))

	e.Renderer = rendering.NewEchoRenderer()
	e.Validator = handlers.NewValidator()

	return &Server{
		E:                e,
		Conn:             conn,
		Cfg:              cfg,
		store:            store,
		bridge:           bridge,
		publisher:        publisher,
		collector:        collector,
		otelShutdown:     otelShutdown,
		apiHandler:       handlers.NewAPIHandler(store, publisher, collector),
		guestbookHandler: handlers.NewGuestbookHandler(store, publisher, geoClient),
	}
}
