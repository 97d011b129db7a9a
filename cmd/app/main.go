package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/InstaSync_Go/internal/auth"
	"github.com/osse101/InstaSync_Go/internal/bootstrap"
	"github.com/osse101/InstaSync_Go/internal/concurrency"
	"github.com/osse101/InstaSync_Go/internal/config"
	"github.com/osse101/InstaSync_Go/internal/instagram"
	"github.com/osse101/InstaSync_Go/internal/media"
	"github.com/osse101/InstaSync_Go/internal/postcache"
	"github.com/osse101/InstaSync_Go/internal/scheduler"
	"github.com/osse101/InstaSync_Go/internal/server"
	"github.com/osse101/InstaSync_Go/internal/session"
	"github.com/osse101/InstaSync_Go/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	if err := run(cfg); err != nil {
		slog.Error("InstaSync stopped with error", "error", err)
		logFile.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := bootstrap.InitializeStorage(ctx, cfg)
	if err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client := instagram.NewClient(instagram.Config{
		AppID:       cfg.InstagramAppID,
		AppSecret:   cfg.InstagramAppSecret,
		RedirectURI: cfg.InstagramRedirectURI,
		AuthURL:     cfg.InstagramAuthURL,
		APIURL:      cfg.InstagramAPIURL,
		GraphURL:    cfg.InstagramGraphURL,
		Timeout:     cfg.HTTPTimeout,
	})

	locks := concurrency.NewLockManager()
	authService := auth.NewService(client, session.NewStore(session.DefaultSize, session.DefaultTTL), storage.State, locks)

	posts, err := postcache.New(client, cfg.PostCacheSize)
	if err != nil {
		storage.Close()
		return err
	}

	thumbs, err := bootstrap.InitializeThumbnails(ctx, cfg, httpClient)
	if err != nil {
		storage.Close()
		return err
	}
	resolver := media.NewResolver(authService, posts, thumbs)
	syncer := media.NewSynchronizer(client, storage.Media, posts, storage.State, locks)

	pool := worker.NewPool(cfg.WorkerCount, cfg.WorkerQueueSize, cfg.JobTimeout)
	pool.Start()

	sched := scheduler.New(pool)
	refreshJob := worker.NewTokenRefreshJob(authService)
	sched.Schedule(cfg.TokenRefreshInterval, refreshJob)
	for _, feed := range cfg.Feeds {
		if !feed.Enabled() {
			slog.Info("Feed synchronization disabled", "feed", feed.ID)
			continue
		}
		if err := sched.ScheduleCron(cfg.SyncSchedule, worker.NewFeedSyncJob(syncer, feed)); err != nil {
			pool.Stop()
			storage.Close()
			return err
		}
		slog.Info("Feed synchronization scheduled", "feed", feed.ID, "fetch_count", feed.FetchCount, "schedule", cfg.SyncSchedule)
	}
	sched.Start()

	// Catch up on a refresh deadline that passed while the process was down
	pool.TryEnqueue(refreshJob)

	srv := server.NewServer(cfg.Port, server.Dependencies{
		DBPool:         storage.ReadinessPool(),
		Auth:           authService,
		Resolver:       resolver,
		Feeds:          cfg,
		Syncer:         syncer,
		Queue:          pool,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:    srv,
		Scheduler: sched,
		Pool:      pool,
		Storage:   storage,
	})

	return err
}
