package config

import (
	"errors"
	"fmt"

	"github.com/flemzord/easel/internal/style"
)

// Validate checks the structural validity of a Config. Every problem is
// reported; the returned error joins all of them.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	if cfg.Server.Listen == "" {
		errs = append(errs, errors.New("config: server.listen is required"))
	}
	if cfg.Server.MaxSessions < 0 {
		errs = append(errs, fmt.Errorf("config: server.max_sessions must not be negative, got %d", cfg.Server.MaxSessions))
	}

	if cfg.Canvas.DefaultWidth <= 0 {
		errs = append(errs, fmt.Errorf("config: canvas.default_width must be positive, got %d", cfg.Canvas.DefaultWidth))
	}
	if cfg.Canvas.DefaultHeight <= 0 {
		errs = append(errs, fmt.Errorf("config: canvas.default_height must be positive, got %d", cfg.Canvas.DefaultHeight))
	}

	if cfg.Autosave.Schedule != "" && cfg.Snapshots.Path == "" {
		errs = append(errs, errors.New("config: autosave.schedule requires snapshots.path"))
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, errors.New("config: tracing.enabled requires tracing.endpoint"))
	}

	errs = append(errs, validatePresets(cfg.Presets)...)

	return errors.Join(errs...)
}

// validatePresets decodes every deployment preset so a typo fails at load
// time rather than on first use.
func validatePresets(presets map[string]map[string]any) []error {
	var errs []error
	for name, raw := range presets {
		if name == "" {
			errs = append(errs, errors.New("config: presets: empty preset name"))
			continue
		}
		if _, err := style.Decode(raw); err != nil {
			errs = append(errs, fmt.Errorf("config: presets.%s: %w", name, err))
		}
	}
	return errs
}
