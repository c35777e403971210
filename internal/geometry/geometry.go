// Package geometry converts semantic placement requests ("center this",
// "align right", "move by dx,dy") into absolute coordinates honoring an
// object's origin anchor and scale. Every function is a pure computation
// over its inputs: identical inputs always produce identical outputs.
package geometry

import (
	"errors"
	"fmt"

	"github.com/flemzord/easel/internal/scene"
)

// ErrUnknownPlacement is returned for placement names outside the catalogue.
var ErrUnknownPlacement = errors.New("unknown placement")

// Placement is a semantic position request relative to the canvas.
type Placement string

// Supported placements.
const (
	PlaceCenter           Placement = "center"
	PlaceCenterHorizontal Placement = "center-horizontal"
	PlaceCenterVertical   Placement = "center-vertical"
	PlaceLeft             Placement = "left"
	PlaceRight            Placement = "right"
	PlaceTop              Placement = "top"
	PlaceBottom           Placement = "bottom"
)

// Box is the geometric view of one object: unscaled bounds, scale factors,
// origin anchor, and current stored position.
type Box struct {
	Width  float64
	Height float64
	ScaleX float64
	ScaleY float64
	Anchor scene.Anchor
	X      float64
	Y      float64
}

// FromSizeInfo adapts an accessor size query into a Box.
func FromSizeInfo(info scene.SizeInfo) Box {
	return Box{
		Width:  info.Width,
		Height: info.Height,
		ScaleX: info.ScaleX,
		ScaleY: info.ScaleY,
		Anchor: info.Anchor,
		X:      info.X,
		Y:      info.Y,
	}
}

// EffectiveSize returns the scaled bounding dimensions.
func (b Box) EffectiveSize() (w, h float64) {
	return b.Width * b.ScaleX, b.Height * b.ScaleY
}

// AnchorOffset returns the vector from a box's top-left corner to its
// anchor point, for the given effective dimensions.
func AnchorOffset(a scene.Anchor, effW, effH float64) (dx, dy float64) {
	switch a {
	case scene.AnchorTopCenter:
		return effW / 2, 0
	case scene.AnchorTopRight:
		return effW, 0
	case scene.AnchorCenterLeft:
		return 0, effH / 2
	case scene.AnchorCenter:
		return effW / 2, effH / 2
	case scene.AnchorCenterRight:
		return effW, effH / 2
	case scene.AnchorBottomLeft:
		return 0, effH
	case scene.AnchorBottomCenter:
		return effW / 2, effH
	case scene.AnchorBottomRight:
		return effW, effH
	default: // top-left
		return 0, 0
	}
}

// Place computes the stored position that realizes the requested placement
// on a canvasW×canvasH canvas. Axes not constrained by the placement keep
// their current coordinate. No bounds clamping is applied: placements may
// legally produce off-canvas positions for oversized objects.
func Place(box Box, canvasW, canvasH float64, placement Placement) (x, y float64, err error) {
	effW, effH := box.EffectiveSize()
	offX, offY := AnchorOffset(box.Anchor, effW, effH)

	// Current position expressed as a top-left-equivalent coordinate.
	topX, topY := box.X-offX, box.Y-offY

	switch placement {
	case PlaceCenter:
		topX = (canvasW - effW) / 2
		topY = (canvasH - effH) / 2
	case PlaceCenterHorizontal:
		topX = (canvasW - effW) / 2
	case PlaceCenterVertical:
		topY = (canvasH - effH) / 2
	case PlaceLeft:
		topX = 0
	case PlaceRight:
		topX = canvasW - effW
	case PlaceTop:
		topY = 0
	case PlaceBottom:
		topY = canvasH - effH
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownPlacement, placement)
	}

	return topX + offX, topY + offY, nil
}

// MoveBy computes the stored position after a relative move. Deltas apply
// directly regardless of anchor, and no clamping occurs.
func MoveBy(box Box, dx, dy float64) (x, y float64) {
	return box.X + dx, box.Y + dy
}
