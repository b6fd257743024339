// Package main provides the historical results CSV importer.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/yourusername/oddscout/internal/config"
	"github.com/yourusername/oddscout/internal/database"
	"github.com/yourusername/oddscout/internal/ingest"
	"github.com/yourusername/oddscout/internal/logger"
	"github.com/yourusername/oddscout/internal/models"
	"github.com/yourusername/oddscout/internal/repository"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "path to configuration file")
		sport      = flag.String("sport", "soccer", "sport the results belong to")
		league     = flag.String("league", "", "league key, e.g. soccer_epl")
		file       = flag.String("file", "", "path to the results CSV file")
	)
	flag.Parse()

	if *file == "" || *league == "" {
		log.Fatal("Both -file and -league are required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatal("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	ctx := context.Background()
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create repositories")
	}

	importer := ingest.NewImporter(repos.HistoricalResult, appLog)
	summary, err := importer.ImportFile(ctx, *file, models.Sport(*sport), *league)
	if err != nil {
		appLog.WithError(err).Fatal("Import failed")
	}

	appLog.WithField("imported", summary.Imported).WithField("skipped", summary.Skipped).Info("Import finished")
}
