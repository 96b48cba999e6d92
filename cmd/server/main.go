package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmfalke/tunecast/internal/config"
	"github.com/dmfalke/tunecast/internal/constants"
	"github.com/dmfalke/tunecast/internal/discovery"
	"github.com/dmfalke/tunecast/internal/domain"
	"github.com/dmfalke/tunecast/internal/handlers"
	"github.com/dmfalke/tunecast/internal/library"
	"github.com/dmfalke/tunecast/internal/logger"
	"github.com/dmfalke/tunecast/internal/search"
	"github.com/dmfalke/tunecast/internal/store"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.CoversDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			appLogger.Error("Failed to create directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Search Index
	index, err := search.Open(cfg.IndexPath)
	if err != nil {
		appLogger.Error("Failed to open search index", "error", err)
		os.Exit(1)
	}
	defer index.Close()

	// Initialize Library Worker
	scanner := library.NewScanner(cfg.MusicDir, cfg.CoversDir, index, appLogger)
	scanWorker := library.NewWorker(scanner, constants.DefaultScanInterval, appLogger)
	scanWorker.Start()
	defer scanWorker.Stop()

	// Initialize Discovery
	local := discovery.LocalIdentity{DeviceID: cfg.DeviceID}
	if local.DeviceID == "" {
		hostname, _ := os.Hostname()
		local.DeviceID = domain.DeriveID(hostname)
	}
	if ip, err := discovery.LocalIP(); err == nil {
		local.IP = ip
	} else {
		appLogger.Warn("Failed to resolve local IP", "error", err)
	}

	registry := discovery.NewRegistry()
	browser := discovery.NewBrowser(local, appLogger)
	if err := browser.Start(); err != nil {
		appLogger.Error("Failed to start discovery", "error", err)
		os.Exit(1)
	}
	defer browser.Stop()
	go func() {
		for device := range browser.Devices() {
			registry.Upsert(device)
		}
	}()

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Routes
	h := handlers.NewHandler(
		index,
		registry,
		store.NewTracklistRepo(db),
		store.NewPlaylistRepo(db),
		cfg.CoversDir,
		appLogger,
	)
	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
