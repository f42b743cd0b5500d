package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/kimiagar/backend/internal/api"
	"github.com/kimiagar/backend/internal/config"
	"github.com/kimiagar/backend/internal/credential"
	"github.com/kimiagar/backend/internal/database"
	"github.com/kimiagar/backend/internal/history"
	"github.com/kimiagar/backend/internal/llm"
	"github.com/kimiagar/backend/internal/queue"
	"github.com/kimiagar/backend/internal/spell"
	"github.com/kimiagar/backend/internal/storage"
	"github.com/kimiagar/backend/internal/transform"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Database connection (optional — gracefully handle missing DATABASE_URL)
	var db *pgxpool.Pool
	if cfg.Database.URL != "" {
		db, err = database.NewPool(ctx, cfg.Database)
		if err != nil {
			slog.Warn("database unavailable, running without DB", "error", err)
			db = nil
		} else {
			defer db.Close()

			if err := database.RunMigrations(ctx, db); err != nil {
				slog.Warn("migrations failed", "error", err)
			}
		}
	}

	// Redis connection (optional)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	redisUp := rdb.Ping(ctx).Err() == nil
	if !redisUp {
		slog.Warn("redis unavailable, running without cache")
	}
	defer rdb.Close()

	// Pick the most durable key-value backend that came up. Everything the
	// service persists (spells, history, credential, exports) goes through it.
	var kv storage.KV
	switch {
	case db != nil:
		kv = storage.NewPostgresKV(db)
		slog.Info("persistence backend", "kind", "postgres")
	case redisUp:
		kv = storage.NewRedisKV(rdb)
		slog.Info("persistence backend", "kind", "redis")
	default:
		kv = storage.NewMemoryKV()
		slog.Warn("persistence backend is in-memory; state is lost on restart")
	}

	spells := spell.NewStore(ctx, kv)
	ledger := history.NewLedger(ctx, kv)
	creds := credential.NewHolder(ctx, kv, func() bool { return cfg.LLM.APIKey != "" }, cfg.LLM.MiniApp)
	provider := llm.NewGeminiProvider(cfg.LLM.APIKey, cfg.LLM.BaseURL)
	dispatcher := transform.NewDispatcher(spells, creds, ledger, provider, time.Duration(cfg.LLM.TimeoutSeconds)*time.Second)

	var qc *queue.Client
	if redisUp {
		qc = queue.NewClient(cfg.Redis)
		defer qc.Close()
	}

	// Setup router
	router := api.NewRouter(cfg, api.Deps{
		DB:         db,
		Redis:      rdb,
		KV:         kv,
		Spells:     spells,
		Creds:      creds,
		Dispatcher: dispatcher,
		Ledger:     ledger,
		Queue:      qc,
	})
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
