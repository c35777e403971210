package geometry

import (
	"errors"
	"testing"

	"github.com/flemzord/easel/internal/scene"
)

func TestPlace_CenterTopLeftAnchor(t *testing.T) {
	t.Parallel()

	box := Box{Width: 200, Height: 50, ScaleX: 1, ScaleY: 1, Anchor: scene.AnchorTopLeft}
	x, y, err := Place(box, 800, 600, PlaceCenter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x != 300 || y != 275 {
		t.Fatalf("center = (%v, %v), want (300, 275)", x, y)
	}
}

func TestPlace_CenterCenterAnchor(t *testing.T) {
	t.Parallel()

	box := Box{Width: 200, Height: 50, ScaleX: 1, ScaleY: 1, Anchor: scene.AnchorCenter}
	x, y, err := Place(box, 800, 600, PlaceCenter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x != 400 || y != 300 {
		t.Fatalf("center = (%v, %v), want (400, 300)", x, y)
	}
}

func TestPlace_ScaleAffectsEffectiveSize(t *testing.T) {
	t.Parallel()

	box := Box{Width: 100, Height: 100, ScaleX: 2, ScaleY: 0.5, Anchor: scene.AnchorTopLeft}
	x, y, err := Place(box, 800, 600, PlaceCenter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Effective size is 200×50.
	if x != 300 || y != 275 {
		t.Fatalf("center = (%v, %v), want (300, 275)", x, y)
	}
}

func TestPlace_EdgesConstrainOneAxis(t *testing.T) {
	t.Parallel()

	box := Box{Width: 200, Height: 50, ScaleX: 1, ScaleY: 1, Anchor: scene.AnchorTopLeft, X: 10, Y: 20}

	cases := []struct {
		placement Placement
		wantX     float64
		wantY     float64
	}{
		{PlaceLeft, 0, 20},
		{PlaceRight, 600, 20},
		{PlaceTop, 10, 0},
		{PlaceBottom, 10, 550},
		{PlaceCenterHorizontal, 300, 20},
		{PlaceCenterVertical, 10, 275},
	}
	for _, tc := range cases {
		x, y, err := Place(box, 800, 600, tc.placement)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.placement, err)
		}
		if x != tc.wantX || y != tc.wantY {
			t.Fatalf("%s = (%v, %v), want (%v, %v)", tc.placement, x, y, tc.wantX, tc.wantY)
		}
	}
}

func TestPlace_OversizedObjectGoesOffCanvas(t *testing.T) {
	t.Parallel()

	// Objects larger than the canvas center to negative coordinates; that
	// is deliberate, not an error.
	box := Box{Width: 1000, Height: 50, ScaleX: 1, ScaleY: 1, Anchor: scene.AnchorTopLeft}
	x, _, err := Place(box, 800, 600, PlaceCenter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x != -100 {
		t.Fatalf("x = %v, want -100", x)
	}
}

func TestPlace_UnknownPlacement(t *testing.T) {
	t.Parallel()

	if _, _, err := Place(Box{ScaleX: 1, ScaleY: 1}, 800, 600, "somewhere"); !errors.Is(err, ErrUnknownPlacement) {
		t.Fatalf("expected ErrUnknownPlacement, got %v", err)
	}
}

func TestPlace_Deterministic(t *testing.T) {
	t.Parallel()

	box := Box{Width: 333, Height: 77, ScaleX: 1.5, ScaleY: 1.5, Anchor: scene.AnchorBottomRight, X: 5, Y: 9}
	x1, y1, err := Place(box, 1024, 768, PlaceCenter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	x2, y2, err := Place(box, 1024, 768, PlaceCenter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if x1 != x2 || y1 != y2 {
		t.Fatalf("identical inputs produced (%v,%v) then (%v,%v)", x1, y1, x2, y2)
	}
}

func TestMoveBy_NoClamping(t *testing.T) {
	t.Parallel()

	box := Box{X: 10, Y: 10, ScaleX: 1, ScaleY: 1}
	x, y := MoveBy(box, -500, 1200)
	if x != -490 || y != 1210 {
		t.Fatalf("MoveBy = (%v, %v), want (-490, 1210)", x, y)
	}
}

func TestAnchorOffset_AllAnchors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		anchor scene.Anchor
		dx, dy float64
	}{
		{scene.AnchorTopLeft, 0, 0},
		{scene.AnchorTopCenter, 100, 0},
		{scene.AnchorTopRight, 200, 0},
		{scene.AnchorCenterLeft, 0, 25},
		{scene.AnchorCenter, 100, 25},
		{scene.AnchorCenterRight, 200, 25},
		{scene.AnchorBottomLeft, 0, 50},
		{scene.AnchorBottomCenter, 100, 50},
		{scene.AnchorBottomRight, 200, 50},
	}
	for _, tc := range cases {
		dx, dy := AnchorOffset(tc.anchor, 200, 50)
		if dx != tc.dx || dy != tc.dy {
			t.Fatalf("%s offset = (%v, %v), want (%v, %v)", tc.anchor, dx, dy, tc.dx, tc.dy)
		}
	}
}
