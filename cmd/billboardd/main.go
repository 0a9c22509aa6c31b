package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"billboard-hub-backend/config"
	"billboard-hub-backend/internal/api"
	"billboard-hub-backend/internal/app"
	"billboard-hub-backend/internal/catalog"
	"billboard-hub-backend/internal/logger"
	"billboard-hub-backend/internal/notification"
	"billboard-hub-backend/internal/session"
	"billboard-hub-backend/internal/store"
)

func main() {
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("failed to read .env")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load configuration")
	}
	logger.Init(cfg.Log)
	log.Info().Str("path", configPath).Str("storage", cfg.Storage.Driver).Msg("configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	blobs, closeStore, err := openStore(ctx, &cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer closeStore()

	var (
		notifier       app.Notifier
		subs           *notification.SubscriptionStore
		webpushOptions *webpush.Options
	)
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		subs = notification.NewSubscriptionStore(blobs, store.KeyPushSubscriptions)
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, subs, webpushOptions)
		pool.Start(ctx)
		notifier = pool
		log.Info().Int("workers", cfg.WorkerPool.Size).Msg("push notifications enabled")
	} else {
		log.Info().Msg("VAPID keys not configured; push notifications disabled")
	}

	state := app.New(
		catalog.New(ctx, blobs, cfg.Storage.CatalogKey),
		session.NewManager(ctx, blobs, cfg.Storage.UserKey),
		cfg.Map,
		notifier,
	)

	router := api.NewRouter(api.NewHandler(state, subs, webpushOptions), cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server ListenAndServe")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	log.Info().Msg("shutdown signal received, stopping services")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server Shutdown")
	}

	log.Info().Msg("server gracefully stopped")
}
