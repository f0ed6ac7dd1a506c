package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"flowgate-hq/bpmnlint/pkg/cli"
	"flowgate-hq/bpmnlint/pkg/config"
	"flowgate-hq/bpmnlint/pkg/history"
	"flowgate-hq/bpmnlint/pkg/history/retention"
	"flowgate-hq/bpmnlint/pkg/history/storage"
	"flowgate-hq/bpmnlint/pkg/registry"
	"flowgate-hq/bpmnlint/pkg/server"
	"flowgate-hq/bpmnlint/pkg/source"
	"flowgate-hq/bpmnlint/pkg/telemetry/health"
	"flowgate-hq/bpmnlint/pkg/telemetry/logging"
	"flowgate-hq/bpmnlint/pkg/telemetry/metrics"
	"flowgate-hq/bpmnlint/pkg/telemetry/tracing"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP validation service",
	Long: `Start the bpmnlint validation service with the specified configuration.

The service validates diagrams posted to /v1/validate, serves the
tracked diagram registry on /v1/diagrams, and records every run in the
validation history. With a re-lint schedule configured it periodically
re-validates diagrams from the configured file or git source.

Examples:
  # Start with default config
  bpmnlint serve

  # Start with custom config
  bpmnlint serve --config /etc/bpmnlint/config.yaml

  # Override listen address
  bpmnlint serve --listen 0.0.0.0:8080

  # Validate config without starting
  bpmnlint serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without starting the service")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(logging.Config{
		Level:  cfg.Telemetry.Logging.Level,
		Format: cfg.Telemetry.Logging.Format,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if serveFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("bpmnlint v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	collector := metrics.NewCollector(cfg.Telemetry.Metrics.Enabled, nil)

	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
	if err != nil {
		return cli.NewConfigError("telemetry.tracing", err.Error())
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", "error", err)
		}
	}()

	checker := health.New(0)

	// History storage and async recorder
	var recorder *history.Recorder
	var pruner *retention.Pruner
	if cfg.History.Enabled {
		var histStorage history.Storage
		switch cfg.History.Backend {
		case "sqlite", "":
			sqliteCfg := &storage.SQLiteConfig{
				Path:         cfg.History.SQLite.Path,
				MaxOpenConns: cfg.History.SQLite.MaxOpenConns,
				MaxIdleConns: cfg.History.SQLite.MaxIdleConns,
				WALMode:      cfg.History.SQLite.WALMode,
				BusyTimeout:  cfg.History.SQLite.BusyTimeout,
			}
			histStorage, err = storage.NewSQLiteStorage(sqliteCfg)
			if err != nil {
				return fmt.Errorf("failed to create history storage: %w", err)
			}
		case "memory":
			histStorage = storage.NewMemoryStorage()
		default:
			return cli.NewConfigError("history.backend",
				fmt.Sprintf("unsupported backend %q", cfg.History.Backend))
		}
		defer histStorage.Close()

		checker.Register("history", func(ctx context.Context) error {
			return histStorage.Ping(ctx)
		})

		recorder = history.NewRecorder(histStorage, &history.RecorderConfig{Enabled: true})
		defer recorder.Close()

		if cfg.History.RetentionDays > 0 {
			pruner = retention.NewPruner(histStorage, &retention.Config{
				RetentionDays: cfg.History.RetentionDays,
				PruneSchedule: retention.DefaultConfig().PruneSchedule,
			})
			if err := pruner.Start(context.Background()); err != nil {
				logger.Warn("failed to start retention scheduler", "error", err)
			} else {
				defer pruner.Stop()
			}
		}

		fmt.Println("✓ History storage initialized")
	}

	// Tracked diagram registry
	var regBackend registry.Backend
	if cfg.Registry.Enabled {
		regBackend, err = registry.New(&cfg.Registry)
		if err != nil {
			return fmt.Errorf("failed to create diagram registry: %w", err)
		}
		defer regBackend.Close()

		checker.Register("registry", func(ctx context.Context) error {
			return regBackend.Ping(ctx)
		})

		fmt.Println("✓ Diagram registry initialized")
	}

	// Diagram source for scheduled re-lint
	var diagramSource source.Source
	if cfg.Server.RelintSchedule != "" {
		diagramSource, err = source.New(&cfg.Source)
		if err != nil {
			return fmt.Errorf("failed to create diagram source: %w", err)
		}
		defer diagramSource.Close()
	}

	srv, err := server.New(cfg, server.Deps{
		Logger:    logger,
		Collector: collector,
		Tracer:    tracer,
		Checker:   checker,
		Recorder:  recorder,
		Registry:  regBackend,
		Source:    diagramSource,
	})
	if err != nil {
		return cli.NewCommandError("serve", err)
	}

	fmt.Printf("✓ Server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/healthz\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	ctx := cli.SetupSignalHandler()
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("serve", err)
	}

	fmt.Println("✓ Server stopped")
	return nil
}
