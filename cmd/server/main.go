package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/zbmott/snafoo-challenge/internal/catalog"
	"github.com/zbmott/snafoo-challenge/internal/config"
	"github.com/zbmott/snafoo-challenge/internal/database"
	"github.com/zbmott/snafoo-challenge/internal/logging"
	"github.com/zbmott/snafoo-challenge/internal/quota"
	"github.com/zbmott/snafoo-challenge/internal/redis"
	"github.com/zbmott/snafoo-challenge/internal/server"
	"github.com/zbmott/snafoo-challenge/internal/voting"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	defer func() { _ = redisClient.Close() }()

	userRepo := database.NewUserRepo(pool)
	recordRepo := database.NewRecordRepo(pool)
	quotaCache := redis.NewQuotaCache(redisClient)

	limits := quota.Limits{
		Nominations: cfg.NominationsPerMonth,
		Votes:       cfg.VotesPerMonth,
	}
	quotas := quota.NewCounter(recordRepo, quotaCache, limits, cfg.QuotaCacheTTL, clock, cfg.Location())

	snackSource, err := catalog.New(cfg)
	if err != nil {
		slog.Error("Failed to configure snack source", "error", err)
		os.Exit(1)
	}

	votingSvc := voting.NewService(snackSource, recordRepo, quotas, clock, cfg.Location())

	srv, err := server.NewServer(cfg, votingSvc, quotas, userRepo, pool, redisClient)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
