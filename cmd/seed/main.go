package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/traymate/mealmenu/internal/config"
	"github.com/traymate/mealmenu/internal/logger"
	"github.com/traymate/mealmenu/internal/repository"
	"github.com/traymate/mealmenu/internal/seed"
	"github.com/traymate/mealmenu/internal/service"
	"github.com/traymate/mealmenu/internal/storage"
)

func main() {
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "mealmenu-seed",
	})
	logger.SetDefaultLogger(appLogger)

	source := flag.String("source", "", "Seed document: file path, s3://bucket/key or http(s):// URL")
	replace := flag.Bool("replace", false, "Delete rows missing from the document instead of upserting")
	migrate := flag.Bool("migrate", false, "Create or update the meals table before seeding")
	configPath := flag.String("config", "", "Path to config file")
	flag.Parse()

	if *source == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}
	if *migrate {
		cfg.Database.AutoMigrate = true
	}

	src, err := seed.Resolve(*source, seed.Options{
		Timeout:    cfg.Seed.Timeout,
		RetryCount: cfg.Seed.RetryCount,
		Storage: storage.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
		},
	})
	if err != nil {
		appLogger.WithError(err).Fatal("Invalid seed source")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}
	defer repository.CloseDB(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seedService := service.NewSeedService(repository.NewMealRepository(db), appLogger)

	result, err := seedService.Run(ctx, src, *replace)
	if err != nil {
		appLogger.WithError(err).Error("Seed failed")
		os.Exit(1)
	}

	appLogger.WithFields(logger.Fields{
		"source":  result.Source,
		"loaded":  result.Loaded,
		"deleted": result.Deleted,
		"total":   result.Total,
	}).Info("Done")
}
