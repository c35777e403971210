package scene

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/flemzord/easel/internal/style"
)

// Document is one canvas plus its objects. It is not safe for concurrent
// use; the owning session serialises access (single-writer semantics).
type Document struct {
	width      int
	height     int
	background Background
	objects    []*Object // paint order, index == Z
	byID       map[string]*Object
}

// NewDocument creates an empty document with the given canvas dimensions
// and a plain white background.
func NewDocument(width, height int) (*Document, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvasSize, width, height)
	}
	return &Document{
		width:      width,
		height:     height,
		background: Background{Mode: BackgroundSolid, Color: "#ffffff"},
		byID:       make(map[string]*Object),
	}, nil
}

// Width returns the immutable canvas width.
func (d *Document) Width() int { return d.width }

// Height returns the immutable canvas height.
func (d *Document) Height() int { return d.height }

// Background returns the active background descriptor.
func (d *Document) Background() Background { return d.background }

// Len returns the number of objects on the canvas.
func (d *Document) Len() int { return len(d.objects) }

// Get returns the object with the given id, or ErrObjectNotFound.
func (d *Document) Get(id string) (*Object, error) {
	o, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	return o, nil
}

// Add places a new object at the top of the paint order, assigning it a
// fresh id. Zero scale factors default to 1 and a missing anchor defaults
// to top-left. The caller keeps no alias: the stored object is a copy.
func (d *Document) Add(o Object) (*Object, error) {
	switch o.Kind {
	case KindText:
		if o.Text == "" {
			return nil, fmt.Errorf("text object requires text content")
		}
	case KindImage:
		if o.SourceURL == "" {
			return nil, fmt.Errorf("image object requires a source url")
		}
	case KindShape:
		switch o.Shape {
		case ShapeRectangle, ShapeEllipse, ShapeLine, ShapePolygon:
		default:
			return nil, fmt.Errorf("unknown shape kind %q", o.Shape)
		}
	default:
		return nil, fmt.Errorf("unknown object kind %q", o.Kind)
	}
	if o.Width < 0 || o.Height < 0 {
		return nil, fmt.Errorf("bounding dimensions must not be negative")
	}
	if o.Anchor == "" {
		o.Anchor = AnchorTopLeft
	} else if !ValidAnchor(o.Anchor) {
		return nil, fmt.Errorf("unknown anchor %q", o.Anchor)
	}
	if o.ScaleX == 0 {
		o.ScaleX = 1
	}
	if o.ScaleY == 0 {
		o.ScaleY = 1
	}

	o.ID = uuid.NewString()
	o.Z = len(d.objects)
	stored := o.clone()
	d.objects = append(d.objects, stored)
	d.byID[stored.ID] = stored
	return stored, nil
}

// SetText replaces the text content of a text object. Style and position
// are untouched.
func (d *Document) SetText(id, text string) error {
	o, err := d.Get(id)
	if err != nil {
		return err
	}
	if o.Kind != KindText {
		return fmt.Errorf("%w: %s is a %s object", ErrTypeMismatch, id, o.Kind)
	}
	if text == "" {
		return fmt.Errorf("text content must not be empty")
	}
	o.Text = text
	return nil
}

// Move sets an object's absolute position. No bounds clamping: objects may
// sit partially or fully off-canvas.
func (d *Document) Move(id string, x, y float64) error {
	o, err := d.Get(id)
	if err != nil {
		return err
	}
	o.X, o.Y = x, y
	return nil
}

// Resize sets an object's bounding dimensions.
func (d *Document) Resize(id string, width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("dimensions must be positive, got %vx%v", width, height)
	}
	o, err := d.Get(id)
	if err != nil {
		return err
	}
	o.Width, o.Height = width, height
	return nil
}

// ApplyStyle merges a property tree into an object's style. Text-only
// properties on a non-text object are rejected with ErrTypeMismatch and
// nothing is applied.
func (d *Document) ApplyStyle(id string, props style.Properties) error {
	o, err := d.Get(id)
	if err != nil {
		return err
	}
	if o.Kind != KindText {
		if textKeys := props.TextOnlyKeys(); len(textKeys) > 0 {
			return fmt.Errorf("%w: %s on %s object %s",
				ErrTypeMismatch, strings.Join(textKeys, ", "), o.Kind, id)
		}
	}
	o.Style.Merge(props)
	return nil
}

// Delete removes an object and compacts the z-order.
func (d *Document) Delete(id string) error {
	o, err := d.Get(id)
	if err != nil {
		return err
	}
	d.objects = append(d.objects[:o.Z], d.objects[o.Z+1:]...)
	delete(d.byID, id)
	d.renumber()
	return nil
}

// Reorder moves an object within the paint order and returns its new z
// index. The z indices stay a dense permutation of [0..N-1].
func (d *Document) Reorder(id string, action OrderAction) (int, error) {
	o, err := d.Get(id)
	if err != nil {
		return 0, err
	}

	from := o.Z
	to := from
	switch action {
	case OrderBringForward:
		if from < len(d.objects)-1 {
			to = from + 1
		}
	case OrderSendBackward:
		if from > 0 {
			to = from - 1
		}
	case OrderBringToFront:
		to = len(d.objects) - 1
	case OrderSendToBack:
		to = 0
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOrder, action)
	}

	if to != from {
		d.objects = append(d.objects[:from], d.objects[from+1:]...)
		rest := append([]*Object{o}, d.objects[to:]...)
		d.objects = append(d.objects[:to], rest...)
		d.renumber()
	}
	return o.Z, nil
}

// SetBackground replaces the canvas background wholesale.
func (d *Document) SetBackground(bg Background) error {
	if err := bg.Validate(); err != nil {
		return err
	}
	d.background = bg
	return nil
}

// Clear removes every object and returns how many were removed.
func (d *Document) Clear() int {
	n := len(d.objects)
	d.objects = nil
	d.byID = make(map[string]*Object)
	return n
}

// renumber restores Z = slice index after a structural mutation.
func (d *Document) renumber() {
	for i, o := range d.objects {
		o.Z = i
	}
}
