package style

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Preset library errors.
var (
	ErrPresetNotFound  = errors.New("preset not found")
	ErrPresetCollision = errors.New("preset name collides with built-in preset")
)

// Library is an immutable catalogue of named style presets. The built-in
// presets are compiled in; deployments may extend the catalogue through
// configuration at construction time, never at runtime.
type Library struct {
	presets map[string]Properties
}

// NewLibrary builds a preset library from the built-in catalogue plus the
// given deployment-time extras. Extras may not shadow built-in names.
func NewLibrary(extra map[string]Properties) (*Library, error) {
	presets := make(map[string]Properties, len(builtinPresets)+len(extra))
	maps.Copy(presets, builtinPresets)

	for name, props := range extra {
		if name == "" {
			return nil, errors.New("preset name must not be empty")
		}
		if _, exists := builtinPresets[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrPresetCollision, name)
		}
		presets[name] = props.Clone()
	}

	return &Library{presets: presets}, nil
}

// Resolve returns the property tree registered under name. A miss yields
// ErrPresetNotFound with every valid name so the caller can self-correct.
func (l *Library) Resolve(name string) (Properties, error) {
	props, ok := l.presets[name]
	if !ok {
		return Properties{}, fmt.Errorf("%w: %q (valid presets: %v)", ErrPresetNotFound, name, l.Names())
	}
	return props.Clone(), nil
}

// Names returns every preset name, sorted.
func (l *Library) Names() []string {
	return slices.Sorted(maps.Keys(l.presets))
}

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }

// builtinPresets is the compiled-in preset catalogue. Changing it is a
// deployment, not a runtime operation.
var builtinPresets = map[string]Properties{
	"heading1": {
		FontFamily: str("Inter"),
		FontSize:   num(64),
		FontWeight: str("bold"),
		Fill:       str("#111827"),
		LineHeight: num(1.1),
	},
	"heading2": {
		FontFamily: str("Inter"),
		FontSize:   num(44),
		FontWeight: str("bold"),
		Fill:       str("#1f2937"),
		LineHeight: num(1.15),
	},
	"subtitle": {
		FontFamily:    str("Inter"),
		FontSize:      num(28),
		FontWeight:    str("medium"),
		Fill:          str("#4b5563"),
		LetterSpacing: num(0.4),
		LineHeight:    num(1.3),
	},
	"body": {
		FontFamily: str("Inter"),
		FontSize:   num(18),
		FontWeight: str("normal"),
		Fill:       str("#374151"),
		LineHeight: num(1.5),
	},
	"caption": {
		FontFamily:    str("Inter"),
		FontSize:      num(13),
		FontWeight:    str("normal"),
		Fill:          str("#6b7280"),
		LetterSpacing: num(0.2),
		LineHeight:    num(1.4),
	},
	"quote": {
		FontFamily: str("Georgia"),
		FontSize:   num(24),
		FontWeight: str("normal"),
		Fill:       str("#334155"),
		LineHeight: num(1.6),
	},
	"hero": {
		FontFamily: str("Inter"),
		FontSize:   num(96),
		FontWeight: str("bold"),
		LineHeight: num(1.05),
		Fill:       str("#ffffff"),
		Gradient: &Gradient{
			Type:  GradientLinear,
			Angle: 45,
			Stops: []Stop{
				{Color: "#f59e0b", Position: 0},
				{Color: "#ef4444", Position: 1},
			},
		},
		Shadow: &Shadow{Color: "rgba(0,0,0,0.35)", OffsetX: 0, OffsetY: 4, Blur: 12},
	},
	"badge": {
		FontFamily:    str("Inter"),
		FontSize:      num(14),
		FontWeight:    str("bold"),
		Fill:          str("#ffffff"),
		LetterSpacing: num(1.2),
		Outline:       &Outline{Color: "#111827", Width: 1},
	},
}
