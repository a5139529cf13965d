// Command dbcheck verifies that the configured database accepts
// connections by running SELECT 1.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/traymate/mealmenu/internal/config"
	"github.com/traymate/mealmenu/internal/logger"
	"github.com/traymate/mealmenu/internal/repository"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		ServiceName: "mealmenu-dbcheck",
	})
	logger.SetDefaultLogger(appLogger)

	configPath := flag.String("config", "", "Path to config file")
	timeout := flag.Duration("timeout", 10*time.Second, "Connection timeout")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}
	cfg.Database.AutoMigrate = false

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Error("Connection failed")
		os.Exit(1)
	}
	defer repository.CloseDB(db)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	one, err := repository.SelectOne(ctx, db)
	if err != nil {
		appLogger.WithError(err).Error("Connection failed")
		os.Exit(1)
	}

	appLogger.WithField("result", one).Info("Connected")
}
