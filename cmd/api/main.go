package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/graphflix/account-api/internal/api"
	"github.com/graphflix/account-api/internal/core/ports"
	"github.com/graphflix/account-api/internal/infrastructure/config"
	mongodb "github.com/graphflix/account-api/internal/infrastructure/db/mongo"
	neo4jdb "github.com/graphflix/account-api/internal/infrastructure/db/neo4j"
	redisdb "github.com/graphflix/account-api/internal/infrastructure/db/redis"
	"github.com/graphflix/account-api/internal/infrastructure/http/handlers"
	"github.com/graphflix/account-api/pkg/logger"

	_ "github.com/graphflix/account-api/docs"
)

// @title        Account API
// @version      1.0
// @description  User registration and authentication backed by a graph store.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Init(logger.Options{
		Level:  os.Getenv("LOG_LEVEL"),
		Pretty: os.Getenv("ENV") != "production",
	})

	cfg := config.Load(log)
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	var (
		users   ports.UserRepository
		pingers []handlers.DependencyPinger
	)

	switch cfg.StoreDriver {
	case config.StoreDriverNeo4j:
		driver, err := neo4jdb.Connect(ctx, neo4jdb.Config{
			URI:      cfg.Neo4j.URI,
			Username: cfg.Neo4j.Username,
			Password: cfg.Neo4j.Password,
			Database: cfg.Neo4j.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("neo4j connection failed")
		}
		defer driver.Close(context.Background())

		repo := neo4jdb.NewUserRepository(driver, cfg.Neo4j.Database)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("neo4j schema setup failed")
		}
		users = repo
		pingers = append(pingers, handlers.DependencyPinger{Name: "neo4j", Ping: driver.VerifyConnectivity})

	case config.StoreDriverMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		repo := mongodb.NewUserRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("mongo schema setup failed")
		}
		users = repo
		pingers = append(pingers, handlers.DependencyPinger{
			Name: "mongodb",
			Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		})

	default:
		log.Fatal().Str("driver", cfg.StoreDriver).Msg("unknown STORE_DRIVER")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	cache := redisdb.NewProfileCache(rdb)
	pingers = append(pingers, handlers.DependencyPinger{
		Name: "redis",
		Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	})

	e := api.NewRouter(users, cache, cfg, log, pingers...)

	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
