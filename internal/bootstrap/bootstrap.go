package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"gogive-web/internal/backend"
	"gogive-web/internal/config"
	"gogive-web/internal/observability"
	"gogive-web/internal/push"
	"gogive-web/internal/session"

	adminHandler "gogive-web/internal/admin/handler"
	adminProcessor "gogive-web/internal/admin/processor"
	authHandler "gogive-web/internal/auth/handler"
	authProcessor "gogive-web/internal/auth/processor"
	dashboardHandler "gogive-web/internal/dashboard/handler"
	dashboardProcessor "gogive-web/internal/dashboard/processor"

	"github.com/redis/go-redis/v9"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Logger   *observability.Logger
	Backend  *backend.Client
	Sessions *session.Manager

	// Handlers
	AuthHandler      authHandler.Handler
	DashboardHandler dashboardHandler.Handler
	AdminHandler     adminHandler.Handler
	Streamer         *push.Streamer

	// Redis client (for cleanup), nil when real-time is disabled
	RedisClient *redis.Client
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	deps.Backend = backend.NewClient(cfg.Backend, logger)

	// Real-time channel is optional; without it every session runs
	// polling-only and the product degrades gracefully.
	if cfg.Redis.Enabled {
		deps.RedisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := deps.RedisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}

	deps.Sessions = session.NewManager(deps.Backend, deps.RedisClient, cfg.Poll.Interval,
		cfg.Session.Secret, cfg.Session.TTL, logger)

	// Initialize auth processor and handler
	authProc := authProcessor.NewProcessor(deps.Backend, deps.Sessions, logger)
	secureCookie := os.Getenv("GO_ENV") == "production"
	deps.AuthHandler = authHandler.New(authProc, cfg.Session.TTL, secureCookie, logger)

	// Initialize dashboard processor and handler
	dashboardProc := dashboardProcessor.NewProcessor(deps.Backend, logger)
	deps.DashboardHandler = dashboardHandler.New(dashboardProc, logger)

	// Initialize admin processor and handler
	adminProc := adminProcessor.NewProcessor(deps.Backend, logger)
	deps.AdminHandler = adminHandler.New(adminProc, logger)

	deps.Streamer = push.NewStreamer(originChecker(cfg.Server.WebAppURI), logger)

	return deps, nil
}

// originChecker accepts websocket upgrades from the web app origin, plus
// localhost outside production.
func originChecker(webAppURI string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || origin == webAppURI {
			return true
		}
		if os.Getenv("GO_ENV") != "production" && strings.HasPrefix(origin, "http://localhost") {
			return true
		}
		return false
	}
}

// Cleanup releases all resources held by the dependencies
func (d *Dependencies) Cleanup() {
	if d.Sessions != nil {
		d.Sessions.Close()
	}
	if d.RedisClient != nil {
		if err := d.RedisClient.Close(); err != nil {
			d.Logger.Error(context.Background(), "failed to close redis client", err)
		}
	}
}
