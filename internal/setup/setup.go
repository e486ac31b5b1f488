package setup

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/dailypush/dailypush/internal/config"
	"github.com/dailypush/dailypush/internal/handler"
	"github.com/dailypush/dailypush/internal/logger"
	"github.com/dailypush/dailypush/internal/markdown"
	mw "github.com/dailypush/dailypush/internal/middleware"
	"github.com/dailypush/dailypush/internal/service"
	"github.com/dailypush/dailypush/internal/session"
	"github.com/dailypush/dailypush/internal/storage/pg"
	"github.com/dailypush/dailypush/internal/validation"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Redis          *redis.Client // nil when no revocation list is configured
	Auth           *service.Auth
	Topic          *service.Topic
	Post           *service.Post
	Admin          *service.Admin
	Handler        *handler.Handler
	AuthMiddleware *mw.Auth
}

// SetupDependencies connects to the databases and builds the service graph.
func SetupDependencies(ctx context.Context, cfg *config.Config, connCfg pg.ConnectionConfig) (*Dependencies, error) {
	storage, err := pg.New(ctx, cfg.Pg().DSN(), connCfg)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{Config: cfg, Storage: storage}

	var revoker session.Revoker = session.NopRevoker{}
	if url := cfg.RedisURL(); url != "" {
		client, err := session.NewRedisClient(url)
		if err != nil {
			storage.Cleanup()
			return nil, err
		}
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			storage.Cleanup()
			return nil, err
		}
		logger.Log.Info("session revocation list enabled")
		deps.Redis = client
		revoker = session.NewRedisRevoker(client)
	} else {
		logger.Log.Warn("redis_url is empty, logout will not revoke issued tokens")
	}

	validator := validation.New(cfg.Limits())
	renderer := markdown.New()
	tokens := session.NewTokens(cfg.JwtKey(), cfg.JwtTTL())

	deps.Auth = service.NewAuth(storage, validator, tokens, revoker)
	deps.Topic = service.NewTopic(storage, validator)
	deps.Post = service.NewPost(storage, validator, renderer, cfg.Public.PostsPerPage)
	deps.Admin = service.NewAdmin(storage, validator, renderer, service.AdminConfig{
		Username:      cfg.Public.AdminUsername,
		UsersPerPage:  cfg.Public.AdminUsersPerPage,
		TopicsPerPage: cfg.Public.AdminTopicsPerPage,
		PostsPerPage:  cfg.Public.AdminPostsPerPage,
	})

	deps.Handler = handler.New(deps.Auth, deps.Topic, deps.Post, deps.Admin, storage, cfg)
	deps.AuthMiddleware = mw.NewAuth(deps.Auth, cfg.Public.AdminUsername)

	return deps, nil
}

// Cleanup closes the database pools.
func (d *Dependencies) Cleanup() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			logger.Log.Error("failed to close redis client", "error", err)
		}
	}
	if err := d.Storage.Cleanup(); err != nil {
		logger.Log.Error("failed to close database", "error", err)
	}
}
