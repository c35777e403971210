// Package scene holds the in-memory design document: a fixed-size canvas,
// its background, and the ordered set of objects painted on it. The Document
// is the single mutable resource of the tool layer; every mutation goes
// through a Document method and leaves the z-order a dense permutation.
package scene

import (
	"errors"

	"github.com/flemzord/easel/internal/style"
)

// Document-level errors.
var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrTypeMismatch      = errors.New("style properties not valid for object kind")
	ErrInvalidBackground = errors.New("invalid canvas background")
	ErrInvalidCanvasSize = errors.New("canvas dimensions must be positive")
	ErrInvalidOrder      = errors.New("unknown order action")
)

// Kind discriminates the scene object variants.
type Kind string

// Scene object kinds.
const (
	KindText  Kind = "text"
	KindImage Kind = "image"
	KindShape Kind = "shape"
)

// Anchor names the point of an object's bounding box that its stored
// position refers to.
type Anchor string

// Origin anchors. AnchorTopLeft is the default.
const (
	AnchorTopLeft      Anchor = "top-left"
	AnchorTopCenter    Anchor = "top-center"
	AnchorTopRight     Anchor = "top-right"
	AnchorCenterLeft   Anchor = "center-left"
	AnchorCenter       Anchor = "center"
	AnchorCenterRight  Anchor = "center-right"
	AnchorBottomLeft   Anchor = "bottom-left"
	AnchorBottomCenter Anchor = "bottom-center"
	AnchorBottomRight  Anchor = "bottom-right"
)

// ValidAnchor reports whether a is a known anchor name.
func ValidAnchor(a Anchor) bool {
	switch a {
	case AnchorTopLeft, AnchorTopCenter, AnchorTopRight,
		AnchorCenterLeft, AnchorCenter, AnchorCenterRight,
		AnchorBottomLeft, AnchorBottomCenter, AnchorBottomRight:
		return true
	default:
		return false
	}
}

// ShapeKind names the geometry of a shape object.
type ShapeKind string

// Supported shape geometries.
const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeEllipse   ShapeKind = "ellipse"
	ShapeLine      ShapeKind = "line"
	ShapePolygon   ShapeKind = "polygon"
)

// OrderAction adjusts an object's position in the paint order.
type OrderAction string

// Order actions accepted by Document.Reorder.
const (
	OrderBringForward OrderAction = "bring-forward"
	OrderSendBackward OrderAction = "send-backward"
	OrderBringToFront OrderAction = "bring-to-front"
	OrderSendToBack   OrderAction = "send-to-back"
)

// BackgroundMode selects which background variant is active.
type BackgroundMode string

// Background modes. Exactly one is active at a time.
const (
	BackgroundSolid    BackgroundMode = "solid"
	BackgroundGradient BackgroundMode = "gradient"
	BackgroundImage    BackgroundMode = "image"
)

// ImageFill describes an image background.
type ImageFill struct {
	URL     string  `json:"url"`
	Repeat  string  `json:"repeat,omitempty"` // no-repeat, repeat, repeat-x, repeat-y
	Opacity float64 `json:"opacity,omitempty"`
}

// Background is the canvas background union. Exactly one of Color, Gradient,
// or Image is set, matching Mode.
type Background struct {
	Mode     BackgroundMode  `json:"mode"`
	Color    string          `json:"color,omitempty"`
	Gradient *style.Gradient `json:"gradient,omitempty"`
	Image    *ImageFill      `json:"image,omitempty"`
}

// Validate checks that exactly the variant named by Mode is populated.
func (b Background) Validate() error {
	switch b.Mode {
	case BackgroundSolid:
		if b.Color == "" || b.Gradient != nil || b.Image != nil {
			return errors.Join(ErrInvalidBackground, errors.New("solid mode requires color only"))
		}
	case BackgroundGradient:
		if b.Gradient == nil || b.Color != "" || b.Image != nil {
			return errors.Join(ErrInvalidBackground, errors.New("gradient mode requires gradient only"))
		}
		if err := b.Gradient.Validate(); err != nil {
			return errors.Join(ErrInvalidBackground, err)
		}
	case BackgroundImage:
		if b.Image == nil || b.Color != "" || b.Gradient != nil {
			return errors.Join(ErrInvalidBackground, errors.New("image mode requires image only"))
		}
		if b.Image.URL == "" {
			return errors.Join(ErrInvalidBackground, errors.New("image background requires a url"))
		}
		if b.Image.Opacity < 0 || b.Image.Opacity > 1 {
			return errors.Join(ErrInvalidBackground, errors.New("image opacity outside [0,1]"))
		}
	default:
		return errors.Join(ErrInvalidBackground, errors.New("unknown background mode"))
	}
	return nil
}

// Object is a single entity on the canvas. The ID is assigned at creation
// and never reused; Z is maintained by the Document as a dense index.
type Object struct {
	ID     string  `json:"id"`
	Kind   Kind    `json:"kind"`
	Name   string  `json:"name,omitempty"`
	Z      int     `json:"z"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Anchor Anchor  `json:"anchor"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	ScaleX float64 `json:"scaleX"`
	ScaleY float64 `json:"scaleY"`

	Style style.Properties `json:"style"`

	// Text variant.
	Text string `json:"text,omitempty"`

	// Image variant.
	SourceURL string `json:"sourceUrl,omitempty"`

	// Shape variant.
	Shape ShapeKind `json:"shape,omitempty"`
}

// EffectiveWidth returns the scaled bounding width.
func (o *Object) EffectiveWidth() float64 { return o.Width * o.ScaleX }

// EffectiveHeight returns the scaled bounding height.
func (o *Object) EffectiveHeight() float64 { return o.Height * o.ScaleY }

// Cue returns the one salient visual attribute used in state summaries.
func (o *Object) Cue() string {
	switch o.Kind {
	case KindText:
		return o.Text
	case KindImage:
		return o.SourceURL
	case KindShape:
		cue := string(o.Shape)
		if o.Style.Fill != nil {
			cue += " " + *o.Style.Fill
		}
		return cue
	default:
		return ""
	}
}

func (o *Object) clone() *Object {
	cp := *o
	cp.Style = o.Style.Clone()
	return &cp
}
