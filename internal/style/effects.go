package style

import (
	"errors"
	"fmt"
)

// GradientType selects the gradient geometry.
type GradientType string

// Supported gradient geometries.
const (
	GradientLinear GradientType = "linear"
	GradientRadial GradientType = "radial"
)

// Effect validation errors.
var (
	ErrInvalidGradient = errors.New("invalid gradient descriptor")
	ErrInvalidShadow   = errors.New("invalid shadow descriptor")
	ErrInvalidOutline  = errors.New("invalid outline descriptor")
)

// Stop is a single color stop of a gradient. Position is in [0, 1].
type Stop struct {
	Color    string  `json:"color"`
	Position float64 `json:"position"`
}

// Gradient describes a multi-stop color gradient. Angle is in degrees
// and only meaningful for linear gradients.
type Gradient struct {
	Type  GradientType `json:"type"`
	Stops []Stop       `json:"stops"`
	Angle float64      `json:"angle,omitempty"`
}

// Validate checks the gradient descriptor for structural soundness.
func (g *Gradient) Validate() error {
	switch g.Type {
	case GradientLinear, GradientRadial:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidGradient, g.Type)
	}
	if len(g.Stops) < 2 {
		return fmt.Errorf("%w: needs at least 2 stops, got %d", ErrInvalidGradient, len(g.Stops))
	}
	for i, s := range g.Stops {
		if s.Color == "" {
			return fmt.Errorf("%w: stop %d has empty color", ErrInvalidGradient, i)
		}
		if s.Position < 0 || s.Position > 1 {
			return fmt.Errorf("%w: stop %d position %v outside [0,1]", ErrInvalidGradient, i, s.Position)
		}
	}
	return nil
}

// Shadow describes a drop shadow.
type Shadow struct {
	Color   string  `json:"color"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
	Blur    float64 `json:"blur,omitempty"`
}

// Validate checks the shadow descriptor.
func (s *Shadow) Validate() error {
	if s.Color == "" {
		return fmt.Errorf("%w: empty color", ErrInvalidShadow)
	}
	if s.Blur < 0 {
		return fmt.Errorf("%w: negative blur %v", ErrInvalidShadow, s.Blur)
	}
	return nil
}

// Outline describes a stroke drawn around glyph edges.
type Outline struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

// Validate checks the outline descriptor.
func (o *Outline) Validate() error {
	if o.Color == "" {
		return fmt.Errorf("%w: empty color", ErrInvalidOutline)
	}
	if o.Width <= 0 {
		return fmt.Errorf("%w: width %v must be positive", ErrInvalidOutline, o.Width)
	}
	return nil
}
