// Package main is the entry point for the easel CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/flemzord/easel/internal/autosave"
	"github.com/flemzord/easel/internal/config"
	"github.com/flemzord/easel/internal/gateway"
	"github.com/flemzord/easel/internal/security"
	sqlitestore "github.com/flemzord/easel/internal/store/sqlite"
	"github.com/flemzord/easel/internal/trace"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "easel",
		Short:         "A canvas tool server for LLM agents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(versionCmd(), serveCmd(), initCmd(), configCmd(), serviceCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("easel %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the easel gateway",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			stdio, _ := cmd.Flags().GetBool("stdio")

			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))

			if stdio {
				// MCP clients launch the binary directly, usually without
				// a config file. Fall back to defaults when none is found.
				return serveStdio(cfgPath, logger)
			}

			if cfgPath == "" {
				resolved, err := resolveConfigPath()
				if err != nil {
					return err
				}
				cfgPath = resolved
			}

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			return serveHTTP(cmd.Context(), cfg, logger)
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	cmd.Flags().Bool("stdio", false, "Serve tools over MCP stdio instead of HTTP")
	return cmd
}

func serveHTTP(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	presets, err := config.PresetLibrary(cfg)
	if err != nil {
		return err
	}

	var audit *security.AuditLogger
	if cfg.Audit.Path != "" {
		f, err := os.OpenFile(cfg.Audit.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening audit log: %w", err)
		}
		defer f.Close()
		audit = security.NewAuditLogger(security.AuditLoggerConfig{Writer: f})
	}

	var store *sqlitestore.Store
	if cfg.Snapshots.Path != "" {
		store, err = sqlitestore.Open(cfg.Snapshots.Path)
		if err != nil {
			return fmt.Errorf("opening snapshot store: %w", err)
		}
		defer store.Close()
	}

	provider := trace.NewNoop()
	if cfg.Tracing.Enabled {
		provider, err = trace.New(ctx, cfg.Tracing.Endpoint, version)
		if err != nil {
			return fmt.Errorf("initializing tracing: %w", err)
		}
	}

	gw, err := gateway.New(gateway.Config{
		Server:  cfg.Server,
		Canvas:  cfg.Canvas,
		Presets: presets,
		Logger:  logger,
		Audit:   audit,
		Store:   store,
		Tracer:  provider.Tracer(),
	})
	if err != nil {
		return err
	}
	if err := gw.Start(); err != nil {
		return err
	}

	var sched *autosave.Scheduler
	if cfg.Autosave.Schedule != "" && store != nil {
		sched = autosave.NewScheduler(logger)
		if err := sched.RegisterJob(&autosave.SnapshotJob{
			Sessions:     gw.Sessions(),
			Store:        store,
			Logger:       logger,
			ScheduleExpr: cfg.Autosave.Schedule,
		}); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
	}

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if sched != nil {
		if err := sched.Stop(shutdownCtx); err != nil {
			logger.Error("autosave shutdown failed", "error", err)
		}
	}
	if err := gw.Stop(shutdownCtx); err != nil {
		return err
	}
	return provider.Shutdown(shutdownCtx)
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			presets, err := config.PresetLibrary(cfg)
			if err != nil {
				return err
			}
			fmt.Printf("Configuration OK (%d presets)\n", len(presets.Names()))
			return nil
		},
	})
	return cmd
}

// resolveConfigPath searches for a config file in standard locations.
// Search order: $XDG_CONFIG_HOME/easel/easel.yaml → ./easel.yaml
func resolveConfigPath() (string, error) {
	var candidates []string

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "easel", "easel.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "easel", "easel.yaml"))
	}

	candidates = append(candidates, "easel.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no configuration file found (searched: %v)", candidates)
}
