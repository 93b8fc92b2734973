package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/trackify/trackify/app/db"
	"github.com/trackify/trackify/config"
	"github.com/trackify/trackify/internal/api/auth"
	"github.com/trackify/trackify/internal/api/session"
	"github.com/trackify/trackify/internal/api/spotify"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *slog.Logger
	Pool            *pgxpool.Pool
	SessionStore    session.Store
	AuthHandler     *auth.HandlerImpl
	PlaylistHandler *spotify.HandlerImpl
}

// NewContainer initializes and returns a new dependency container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	// Initialize database
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	// Session store is swappable per config; postgres is the default.
	var sessionStore session.Store
	switch cfg.Session.Store {
	case "", "postgres":
		sessionStore = session.NewPostgresStore(pool, logger)
	case "memory":
		sessionStore = session.NewMemoryStore()
	default:
		pool.Close()
		return nil, fmt.Errorf("unknown session store backend %q", cfg.Session.Store)
	}

	// Auth wiring. Outside development the session cookie is Secure only.
	cookieSecure := cfg.Mode != "development"
	authRepo := auth.NewPostgresAuthRepo(pool, logger)
	authService := auth.NewAuthService(authRepo, sessionStore, cfg.Session.TTL, logger)
	authHandler := auth.NewAuthHandlerImpl(authService, cfg.Session.CookieName, cookieSecure, cfg.Session.TTL, logger)

	// Spotify wiring
	spotifyClient, err := spotify.NewClient(
		cfg.Spotify.ClientID,
		cfg.Spotify.ClientSecret,
		cfg.Spotify.TokenURL,
		cfg.Spotify.APIBaseURL,
		cfg.Spotify.Timeout,
		logger,
	)
	if err != nil {
		pool.Close()
		return nil, err
	}
	playlistService := spotify.NewPlaylistService(spotifyClient, logger)
	playlistHandler := spotify.NewPlaylistHandlerImpl(playlistService, logger)

	return &Container{
		Config:          cfg,
		Logger:          logger,
		Pool:            pool,
		SessionStore:    sessionStore,
		AuthHandler:     authHandler,
		PlaylistHandler: playlistHandler,
	}, nil
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}
