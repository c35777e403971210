package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/flemzord/easel/internal/config"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a configuration file interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "easel.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			force, _ := cmd.Flags().GetBool("force")

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg, err := runInitForm()
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return err
			}

			fmt.Printf("Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}

func runInitForm() (*config.Config, error) {
	var (
		listen       = ":8080"
		token        string
		canvasSize   = "800x600"
		auditPath    string
		snapshotPath string
		autosaveOn   bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Listen address").
				Description("Address the HTTP gateway binds to").
				Value(&listen),
			huh.NewInput().
				Title("Auth token").
				Description("Bearer token required on API requests, empty disables auth").
				EchoMode(huh.EchoModePassword).
				Value(&token),
			huh.NewSelect[string]().
				Title("Default canvas size").
				Options(huh.NewOptions("800x600", "1280x720", "1920x1080")...).
				Value(&canvasSize),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Audit log path").
				Description("JSONL file for the audit trail, empty disables it").
				Value(&auditPath),
			huh.NewInput().
				Title("Snapshot database path").
				Description("SQLite file for document snapshots, empty disables persistence").
				Value(&snapshotPath),
			huh.NewConfirm().
				Title("Autosave open sessions every minute?").
				Value(&autosaveOn),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	width, height, err := parseCanvasSize(canvasSize)
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Version: "1",
		Server: config.ServerConfig{
			Listen:    listen,
			AuthToken: token,
		},
		Canvas: config.CanvasConfig{
			DefaultWidth:  width,
			DefaultHeight: height,
		},
		Audit:     config.AuditConfig{Path: auditPath},
		Snapshots: config.SnapshotConfig{Path: snapshotPath},
	}
	if autosaveOn && snapshotPath != "" {
		cfg.Autosave.Schedule = "@every 1m"
	}
	return cfg, nil
}

func parseCanvasSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid canvas size %q", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid canvas width %q", w)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid canvas height %q", h)
	}
	return width, height, nil
}
