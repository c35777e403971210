package config

import (
	"fmt"

	"github.com/flemzord/easel/internal/style"
)

// PresetLibrary builds the style preset library from the configured
// deployment extras layered over the built-ins.
func PresetLibrary(cfg *Config) (*style.Library, error) {
	extra := make(map[string]style.Properties, len(cfg.Presets))
	for name, raw := range cfg.Presets {
		props, err := style.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("config: presets.%s: %w", name, err)
		}
		extra[name] = props
	}
	return style.NewLibrary(extra)
}
