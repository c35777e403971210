// Package style models the style property tree applied to canvas objects:
// a closed set of flat properties plus tagged effect descriptors (gradient,
// shadow, outline), and a named preset library that resolves to concrete
// property trees. Unknown property keys are rejected at decode time rather
// than carried along as opaque data.
package style

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// Property decode errors.
var (
	ErrUnknownKey   = errors.New("unknown style property")
	ErrInvalidValue = errors.New("invalid style property value")
)

// Properties is the style property tree of a single object. Nil fields are
// "not set"; merging overwrites only the fields present in the source.
// Effect descriptors are replaced wholesale on merge, never partially.
type Properties struct {
	FontFamily    *string  `json:"fontFamily,omitempty"`
	FontSize      *float64 `json:"fontSize,omitempty"`
	FontWeight    *string  `json:"fontWeight,omitempty"`
	Align         *string  `json:"align,omitempty"`
	LetterSpacing *float64 `json:"letterSpacing,omitempty"`
	LineHeight    *float64 `json:"lineHeight,omitempty"`

	Fill    *string  `json:"fill,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`

	Gradient *Gradient `json:"textGradient,omitempty"`
	Shadow   *Shadow   `json:"textShadow,omitempty"`
	Outline  *Outline  `json:"textOutline,omitempty"`
}

// propertyKeys is the authoritative list of accepted top-level keys.
var propertyKeys = []string{
	"align",
	"fill",
	"fontFamily",
	"fontSize",
	"fontWeight",
	"letterSpacing",
	"lineHeight",
	"opacity",
	"textGradient",
	"textOutline",
	"textShadow",
}

// textOnlyKeys are properties that only make sense on text objects.
var textOnlyKeys = map[string]bool{
	"align":         true,
	"fontFamily":    true,
	"fontSize":      true,
	"fontWeight":    true,
	"letterSpacing": true,
	"lineHeight":    true,
	"textGradient":  true,
	"textOutline":   true,
	"textShadow":    true,
}

// KnownKeys returns the accepted top-level property keys, sorted.
func KnownKeys() []string {
	return slices.Clone(propertyKeys)
}

// Decode parses a raw property map into a Properties tree. Unknown top-level
// keys are rejected with ErrUnknownKey naming every offender; values with the
// wrong shape are rejected with ErrInvalidValue. Nothing is silently dropped.
func Decode(raw map[string]any) (Properties, error) {
	var p Properties
	var unknown []string

	for key, value := range raw {
		var err error
		switch key {
		case "fontFamily":
			p.FontFamily, err = decodeString(key, value)
		case "fontSize":
			p.FontSize, err = decodePositiveNumber(key, value)
		case "fontWeight":
			p.FontWeight, err = decodeString(key, value)
		case "align":
			p.Align, err = decodeAlign(value)
		case "letterSpacing":
			p.LetterSpacing, err = decodeNumber(key, value)
		case "lineHeight":
			p.LineHeight, err = decodePositiveNumber(key, value)
		case "fill":
			p.Fill, err = decodeString(key, value)
		case "opacity":
			p.Opacity, err = decodeUnitNumber(key, value)
		case "textGradient":
			p.Gradient, err = decodeEffect[Gradient](key, value)
		case "textShadow":
			p.Shadow, err = decodeEffect[Shadow](key, value)
		case "textOutline":
			p.Outline, err = decodeEffect[Outline](key, value)
		default:
			unknown = append(unknown, key)
			continue
		}
		if err != nil {
			return Properties{}, err
		}
	}

	if len(unknown) > 0 {
		slices.Sort(unknown)
		return Properties{}, fmt.Errorf("%w: %v (known keys: %v)", ErrUnknownKey, unknown, propertyKeys)
	}
	return p, nil
}

// SetKeys returns the names of the properties present in the tree, sorted.
func (p Properties) SetKeys() []string {
	var keys []string
	add := func(key string, set bool) {
		if set {
			keys = append(keys, key)
		}
	}
	add("fontFamily", p.FontFamily != nil)
	add("fontSize", p.FontSize != nil)
	add("fontWeight", p.FontWeight != nil)
	add("align", p.Align != nil)
	add("letterSpacing", p.LetterSpacing != nil)
	add("lineHeight", p.LineHeight != nil)
	add("fill", p.Fill != nil)
	add("opacity", p.Opacity != nil)
	add("textGradient", p.Gradient != nil)
	add("textShadow", p.Shadow != nil)
	add("textOutline", p.Outline != nil)
	slices.Sort(keys)
	return keys
}

// TextOnlyKeys returns the subset of set properties that are valid only on
// text objects, sorted. Empty for trees that apply to any object kind.
func (p Properties) TextOnlyKeys() []string {
	var keys []string
	for _, key := range p.SetKeys() {
		if textOnlyKeys[key] {
			keys = append(keys, key)
		}
	}
	return keys
}

// Merge overlays src onto p: every property set in src overwrites the
// corresponding property in p. Effect descriptors replace the prior
// descriptor entirely so an effect is never left half-applied.
func (p *Properties) Merge(src Properties) {
	if src.FontFamily != nil {
		p.FontFamily = src.FontFamily
	}
	if src.FontSize != nil {
		p.FontSize = src.FontSize
	}
	if src.FontWeight != nil {
		p.FontWeight = src.FontWeight
	}
	if src.Align != nil {
		p.Align = src.Align
	}
	if src.LetterSpacing != nil {
		p.LetterSpacing = src.LetterSpacing
	}
	if src.LineHeight != nil {
		p.LineHeight = src.LineHeight
	}
	if src.Fill != nil {
		p.Fill = src.Fill
	}
	if src.Opacity != nil {
		p.Opacity = src.Opacity
	}
	if src.Gradient != nil {
		g := *src.Gradient
		g.Stops = slices.Clone(src.Gradient.Stops)
		p.Gradient = &g
	}
	if src.Shadow != nil {
		s := *src.Shadow
		p.Shadow = &s
	}
	if src.Outline != nil {
		o := *src.Outline
		p.Outline = &o
	}
}

// Clone returns a deep copy of the property tree.
func (p Properties) Clone() Properties {
	var out Properties
	out.Merge(p)
	return out
}

func decodeString(key string, value any) (*string, error) {
	s, ok := value.(string)
	if !ok || s == "" {
		return nil, fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidValue, key)
	}
	return &s, nil
}

func decodeNumber(key string, value any) (*float64, error) {
	f, ok := toFloat(value)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidValue, key)
	}
	return &f, nil
}

func decodePositiveNumber(key string, value any) (*float64, error) {
	f, ok := toFloat(value)
	if !ok || f <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive number", ErrInvalidValue, key)
	}
	return &f, nil
}

func decodeUnitNumber(key string, value any) (*float64, error) {
	f, ok := toFloat(value)
	if !ok || f < 0 || f > 1 {
		return nil, fmt.Errorf("%w: %s must be a number in [0,1]", ErrInvalidValue, key)
	}
	return &f, nil
}

func decodeAlign(value any) (*string, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%w: align must be a string", ErrInvalidValue)
	}
	switch s {
	case "left", "center", "right", "justify":
		return &s, nil
	default:
		return nil, fmt.Errorf("%w: align must be one of left, center, right, justify; got %q", ErrInvalidValue, s)
	}
}

// validatable is satisfied by every effect descriptor.
type validatable interface {
	Validate() error
}

// decodeEffect round-trips a raw nested value through JSON into the concrete
// descriptor type, rejecting unknown nested fields, then validates it.
func decodeEffect[T any, PT interface {
	*T
	validatable
}](key string, value any) (PT, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	out := PT(new(T))
	if err := dec.Decode(out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
	}
	return out, nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
