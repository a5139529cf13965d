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

	"github.com/traymate/mealmenu/internal/api"
	"github.com/traymate/mealmenu/internal/config"
	"github.com/traymate/mealmenu/internal/logger"
	"github.com/traymate/mealmenu/internal/repository"
	"github.com/traymate/mealmenu/internal/service"
	"gorm.io/gorm"
)

func main() {
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// CONFIG_PATH points at the YAML file in deployed environments
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	mealRepo := repository.NewMealRepository(db)
	mealService := service.NewMealService(mealRepo)

	router := api.SetupRouter(&cfg.Server, mealService, mealRepo, appLogger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port":   cfg.Server.Port,
			"mode":   cfg.Server.Mode,
			"driver": cfg.Database.Driver,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := shutdown(shutdownCtx, srv, db); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}

// shutdown stops accepting requests, waits for in-flight ones, then closes
// the database pool. The pool is closed even if draining times out.
func shutdown(ctx context.Context, srv *http.Server, db *gorm.DB) error {
	srvErr := srv.Shutdown(ctx)
	if srvErr != nil {
		srvErr = fmt.Errorf("failed to drain server: %w", srvErr)
	}

	dbErr := repository.CloseDB(db)
	if dbErr != nil {
		dbErr = fmt.Errorf("failed to close database: %w", dbErr)
	}

	return errors.Join(srvErr, dbErr)
}
