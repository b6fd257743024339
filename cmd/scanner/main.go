// Package main provides the entry point for the Oddscout value scanner.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/oddscout/internal/config"
	"github.com/yourusername/oddscout/internal/database"
	"github.com/yourusername/oddscout/internal/export"
	"github.com/yourusername/oddscout/internal/health"
	"github.com/yourusername/oddscout/internal/logger"
	"github.com/yourusername/oddscout/internal/metrics"
	"github.com/yourusername/oddscout/internal/modeling"
	"github.com/yourusername/oddscout/internal/provider"
	"github.com/yourusername/oddscout/internal/repository"
	"github.com/yourusername/oddscout/internal/scanner"
	"github.com/yourusername/oddscout/internal/scheduler"
)

var version = "dev"

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:     "oddscout",
		Short:   "Oddscout scans bookmaker odds for positive expected value bets",
		Version: version,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.yaml", "path to configuration file")

	var noExport bool
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a single scan and print the recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd.Context(), noExport)
		},
	}
	scanCmd.Flags().BoolVar(&noExport, "no-export", false, "skip writing the CSV export")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run scans on a schedule with health and metrics endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(scanCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds the wired components shared by the scan and serve commands
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	db       *database.DB
	engine   *scanner.Engine
	location *time.Location
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return nil, fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     version,
	}).Info("Oddscout starting")

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	metrics.InitRegistry()

	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	artifacts, err := modeling.NewDiskArtifactStore(cfg.General.CacheDir)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create artifact store: %w", err)
	}

	selector := modeling.NewSelector(artifacts, repos.HistoricalResult, &cfg.Modeling, appLog)
	manager := provider.NewManager(appLog, provider.NewTheOddsAPI(&cfg.Provider, appLog))
	store := scanner.NewRepositoryStore(repos)
	engine := scanner.NewEngine(cfg, manager, selector, store, location, appLog)

	return &app{
		cfg:      cfg,
		log:      appLog,
		db:       db,
		engine:   engine,
		location: location,
	}, nil
}

func runScan(ctx context.Context, noExport bool) error {
	a, err := setup(ctx)
	if err != nil {
		log.Printf("Startup failed: %v", err)
		return err
	}
	defer a.db.Close()

	recs, err := a.engine.Scan(ctx)
	if err != nil {
		return err
	}

	export.RenderTable(os.Stdout, recs)

	if !noExport && len(recs) > 0 {
		filename := fmt.Sprintf("recommendations_%s.csv", time.Now().In(a.location).Format("20060102_150405"))
		path, err := export.WriteCSV(recs, a.cfg.General.ResultsDir, filename)
		if err != nil {
			a.log.WithError(err).Error("Failed to write CSV export")
		} else {
			a.log.WithField("path", path).Info("Wrote CSV export")
		}
	}

	return nil
}

// scanJob adapts the engine to the scheduler, recording completion on the
// ops server
type scanJob struct {
	engine *scanner.Engine
	ops    *health.Server
}

func (j *scanJob) Scan(ctx context.Context) error {
	if _, err := j.engine.Scan(ctx); err != nil {
		return err
	}
	j.ops.RecordScan(time.Now())
	return nil
}

func runServe(ctx context.Context) error {
	a, err := setup(ctx)
	if err != nil {
		log.Printf("Startup failed: %v", err)
		return err
	}
	defer a.db.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var metricsHandler = metrics.Handler()
	if !a.cfg.Metrics.Enabled {
		metricsHandler = nil
	}
	ops := health.NewServer(health.Config{
		ServiceName: a.cfg.App.Name,
		Version:     version,
		Addr:        fmt.Sprintf(":%d", a.cfg.Metrics.Port),
		MetricsPath: a.cfg.Metrics.Path,
		Metrics:     metricsHandler,
		Logger:      a.log,
		DB:          a.db,
	})
	if err := ops.Start(ctx); err != nil {
		return err
	}

	sched := scheduler.NewScheduler(&scanJob{engine: a.engine, ops: ops}, a.location, a.log)
	if err := sched.ScheduleScan(a.cfg.Schedule.ScanCron); err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	ops.SetReady(true)

	a.log.WithField("next_run", sched.NextRun()).Info("Scheduler running")

	<-ctx.Done()
	a.log.Info("Shutting down")
	ops.SetReady(false)

	return sched.Stop()
}
