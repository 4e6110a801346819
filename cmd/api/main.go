package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nexview/nexview-backend/config"
	"github.com/nexview/nexview-backend/internal/auth"
	"github.com/nexview/nexview-backend/internal/bootstrap"
	"github.com/nexview/nexview-backend/internal/streaks"
	"github.com/nexview/nexview-backend/internal/videos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.PoolDSN()})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	sqlDB, err := bootstrap.OpenSQL(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("postgres (sql): %v", err)
	}
	defer sqlDB.Close()

	cache := bootstrap.OpenRedis(ctx, &cfg.Redis)
	if cache != nil {
		defer cache.Close()
	}

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	var provider videos.Provider
	if cfg.YouTube.APIKey != "" {
		yt, err := videos.NewYouTubeClient(ctx, &cfg.YouTube)
		if err != nil {
			log.Fatalf("youtube: %v", err)
		}
		provider = yt
		if cache != nil {
			provider = videos.NewCachedProvider(yt, cache)
		}
	} else {
		log.Println("YOUTUBE_API_KEY not set, catalog endpoints disabled")
	}

	scheduler := streaks.NewScheduler(streaks.NewRepo(pool))
	scheduler.Start()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "nexview-backend",
		Version:     cfg.App.Version,
		DB:          pool,
		SQLDB:       sqlDB,
		Cache:       cache,
		Auth:        authClient,
		Videos:      provider,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	scheduler.Stop()
}
