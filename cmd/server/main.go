package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FMG-lab/surya-painting/internal/config"
	"github.com/FMG-lab/surya-painting/internal/infra"
	"github.com/FMG-lab/surya-painting/internal/router"
	"github.com/FMG-lab/surya-painting/internal/store"
	"github.com/FMG-lab/surya-painting/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Mode selection is immutable for the process lifetime: a present and
	// connectable DATABASE_URL binds the live datastore; anything else
	// degrades to the read-only fixture snapshots.
	var db *gorm.DB
	var st store.Store
	if cfg.DatabaseURL != "" {
		db, err = infra.NewDatabase(cfg.DatabaseURL)
		if err != nil {
			log.Warn().Err(err).Msg("postgres unavailable, falling back to fixture mode")
			db = nil
		}
	}
	if db != nil {
		st = store.NewLive(db)
		log.Info().Msg("datastore: live (postgres)")
	} else {
		st = store.NewFixture(cfg.FixturesDir)
		log.Info().Str("dir", cfg.FixturesDir).Msg("datastore: fixture snapshots")
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, notifications will send directly")
			rdb = nil
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fonnte := infra.NewFonnteClient(cfg.FonnteURL, cfg.FonnteToken, cfg.AdminRecipients)
	dispatcher := worker.NewDispatcher(rdb, fonnte)
	if rdb != nil {
		worker.StartPool(ctx, rdb, fonnte, cfg.WorkerPoolSize)
	}

	r := router.New(cfg, st, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("surya-painting backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
