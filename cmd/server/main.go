package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Interreferences/NoWayDpl-back/internal/app"
	"github.com/Interreferences/NoWayDpl-back/internal/auth"
	"github.com/Interreferences/NoWayDpl-back/internal/config"
	"github.com/Interreferences/NoWayDpl-back/internal/constants"
	httpapp "github.com/Interreferences/NoWayDpl-back/internal/http"
	"github.com/Interreferences/NoWayDpl-back/internal/logger"
	"github.com/Interreferences/NoWayDpl-back/internal/storage"
	"github.com/Interreferences/NoWayDpl-back/internal/store"
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

	// Initialize DB
	db, err := store.NewDB(cfg.DBDriver, cfg.DSN())
	if err != nil {
		appLogger.Error("Failed to init DB", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize upload storage
	disk, err := storage.NewDisk(cfg.StaticDir)
	if err != nil {
		appLogger.Error("Failed to init storage", "dir", cfg.StaticDir, "error", err)
		os.Exit(1)
	}

	// Initialize Services
	catalog := app.NewCatalog(db, disk, auth.NewHasher(cfg.BcryptCost), appLogger)
	if err := catalog.Bootstrap(context.Background()); err != nil {
		appLogger.Error("Failed to seed reference data", "error", err)
		os.Exit(1)
	}

	// Routes
	h := httpapp.NewHandler(catalog, appLogger, cfg.MaxUploadBytes())
	r := httpapp.NewRouter(h, httpapp.RouterConfig{
		StaticDir:     cfg.StaticDir,
		AuthRateLimit: cfg.AuthRateLimit,
		AuthRateBurst: cfg.AuthRateBurst,
	})

	// Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: constants.ReadHeaderTimeout,
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr, "driver", db.Driver())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", "error", err)
		return
	}

	appLogger.Info("Server exiting")
}
