package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sentinel/vlrstats/internal/api/rest"
	"github.com/sentinel/vlrstats/internal/api/websocket"
	"github.com/sentinel/vlrstats/internal/cache"
	"github.com/sentinel/vlrstats/internal/config"
	"github.com/sentinel/vlrstats/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST API and the progress WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(parent context.Context, cfg *config.Config) error {
	log.Printf("→ Starting vlrstats API v%s", serviceVersion)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewDatabase(cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()
	log.Printf("✓ Connected to database")

	redisCache, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connecting to Redis: %w", err)
	}
	defer redisCache.Close()
	log.Printf("✓ Connected to Redis")

	restServer := rest.NewServer(cfg.RESTPort, db)
	go func() {
		log.Printf("→ REST API listening on :%s", cfg.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("⚠️  REST server error: %v", err)
		}
	}()

	wsServer := websocket.NewServer(redisCache.Client())
	go func() {
		if err := wsServer.Start(ctx, cfg.WSPort); err != nil {
			log.Printf("⚠️  WebSocket server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("→ Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  REST shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  WebSocket shutdown error: %v", err)
	}

	log.Printf("✓ Stopped")

	return nil
}
