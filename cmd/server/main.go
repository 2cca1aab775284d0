package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"openboard/internal/board/events"
	"openboard/internal/board/handler"
	"openboard/internal/board/service"
	"openboard/internal/board/store"
	"openboard/internal/platform/config"
	"openboard/internal/platform/httpserver"
	"openboard/internal/platform/logger"
	"openboard/internal/platform/metrics"
	"openboard/internal/platform/middleware"
	platformredis "openboard/internal/platform/redis"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var projectorStore service.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("connect to postgres failed", "error", err.Error())
			os.Exit(1)
		}
		defer pool.Close()
		projectorStore = store.NewPostgres(pool)
		log.Info("using postgres store")
	} else {
		mem := store.NewInMemory()
		boardID := store.SeedDemoBoard(mem)
		projectorStore = mem
		log.Info("using in-memory demo store", "board_id", boardID)
	}

	projector := service.New(projectorStore,
		service.WithLogger(log),
		service.WithMetrics(m),
	)

	var snapshots handler.Service = projector
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("connect to redis failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache := service.NewSnapshotCache(redisClient.Client, cfg.SnapshotCacheTTL, log)
		snapshots = service.NewCachedProjector(projector, cache, m)
		log.Info("snapshot cache enabled", "ttl", cfg.SnapshotCacheTTL.String())
	}

	var notifier handler.Notifier
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err := events.NewPublisher(ctx, cfg.KafkaBrokers, log)
		if err != nil {
			log.Error("connect to kafka failed", "error", err.Error())
			os.Exit(1)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			publisher.Close(flushCtx)
		}()
		notifier = publisher
		log.Info("board viewed events enabled", "topic", events.TopicBoardViewed)
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.Latency(m))
	router.Use(middleware.Timeout(cfg.RequestTimeout))

	handler.New(snapshots, notifier, log, m).Register(router)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := projector.Health(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting openboard", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err.Error())
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err.Error())
	}
}
