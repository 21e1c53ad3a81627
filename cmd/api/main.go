package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"minutes/api/internal/app"
	"minutes/api/internal/cache"
	"minutes/api/internal/config"
	"minutes/api/internal/export"
	"minutes/api/internal/history"
	"minutes/api/internal/search"
	"minutes/api/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var dataStore store.Store
	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		db, err := store.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database connection failed: %v", err)
		}
		defer db.Close()

		pgStore, err := store.NewPostgresStore(ctx, db)
		if err != nil {
			log.Fatalf("database setup failed: %v", err)
		}
		dataStore = pgStore
		log.Printf("Using PostgreSQL document storage")
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.DataFile), 0o755); err != nil {
			log.Fatalf("failed to create data dir: %v", err)
		}
		dataStore = store.NewFileStore(cfg.DataFile)
		log.Printf("Using file storage at %s", cfg.DataFile)
	}

	var meiliClient *search.Meili
	if strings.TrimSpace(cfg.MeiliURL) != "" {
		meiliClient = search.NewMeili(cfg.MeiliURL, cfg.MeiliMasterKey)
		defer meiliClient.Close()
	}
	searchService := search.NewService(meiliClient, search.NewMemory(dataStore))

	var historyService *history.Service
	if strings.TrimSpace(cfg.HistoryDir) != "" {
		var err error
		historyService, err = history.New(cfg.HistoryDir)
		if err != nil {
			log.Fatalf("history setup failed: %v", err)
		}
		log.Printf("Recording dataset history in %s", cfg.HistoryDir)
	}

	var summaryCache *cache.SummaryCache
	if strings.TrimSpace(cfg.RedisURL) != "" {
		var err error
		summaryCache, err = cache.NewSummaryCache(cfg.RedisURL, cfg.SummaryTTL)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		defer summaryCache.Close()
		log.Printf("Using Redis summary cache")
	}

	service := app.New(cfg, dataStore, searchService, historyService, summaryCache)
	if err := service.Bootstrap(ctx); err != nil {
		log.Printf("WARNING: bootstrap error (will retry on next restart): %v", err)
	}

	httpServer := app.NewHTTPServer(service, export.NewService(), cfg.CORSOrigin)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Minutes API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
