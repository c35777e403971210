package scene

// Read models returned by the accessor queries. These are value snapshots:
// mutating a returned struct never touches the document.

// ObjectSummary is the lightweight per-object entry of the canvas state.
type ObjectSummary struct {
	ID     string  `json:"id"`
	Kind   Kind    `json:"kind"`
	Name   string  `json:"name,omitempty"`
	Z      int     `json:"z"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Cue    string  `json:"cue,omitempty"`
}

// CanvasState is the full lightweight view of the document.
type CanvasState struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Background Background      `json:"background"`
	Objects    []ObjectSummary `json:"objects"`
}

// SizeInfo packages exactly the inputs the geometry resolver needs for
// one object.
type SizeInfo struct {
	ID              string  `json:"id"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	ScaleX          float64 `json:"scaleX"`
	ScaleY          float64 `json:"scaleY"`
	EffectiveWidth  float64 `json:"effectiveWidth"`
	EffectiveHeight float64 `json:"effectiveHeight"`
	Anchor          Anchor  `json:"anchor"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	CanvasWidth     int     `json:"canvasWidth"`
	CanvasHeight    int     `json:"canvasHeight"`
}

// TextInfo identifies one text object with its full content.
type TextInfo struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Text string `json:"text"`
}

// State returns the canvas state: every object in paint order plus the
// canvas background and dimensions. Never omits an object.
func (d *Document) State() CanvasState {
	objects := make([]ObjectSummary, 0, len(d.objects))
	for _, o := range d.objects {
		objects = append(objects, ObjectSummary{
			ID:     o.ID,
			Kind:   o.Kind,
			Name:   o.Name,
			Z:      o.Z,
			X:      o.X,
			Y:      o.Y,
			Width:  o.EffectiveWidth(),
			Height: o.EffectiveHeight(),
			Cue:    o.Cue(),
		})
	}
	return CanvasState{
		Width:      d.width,
		Height:     d.height,
		Background: d.background,
		Objects:    objects,
	}
}

// Details returns the full property tree of one object as a value copy.
func (d *Document) Details(id string) (Object, error) {
	o, err := d.Get(id)
	if err != nil {
		return Object{}, err
	}
	return *o.clone(), nil
}

// Size returns the geometry inputs for one object.
func (d *Document) Size(id string) (SizeInfo, error) {
	o, err := d.Get(id)
	if err != nil {
		return SizeInfo{}, err
	}
	return SizeInfo{
		ID:              o.ID,
		Width:           o.Width,
		Height:          o.Height,
		ScaleX:          o.ScaleX,
		ScaleY:          o.ScaleY,
		EffectiveWidth:  o.EffectiveWidth(),
		EffectiveHeight: o.EffectiveHeight(),
		Anchor:          o.Anchor,
		X:               o.X,
		Y:               o.Y,
		CanvasWidth:     d.width,
		CanvasHeight:    d.height,
	}, nil
}

// TextObjects returns id, name, and content for every text object in
// paint order.
func (d *Document) TextObjects() []TextInfo {
	var infos []TextInfo
	for _, o := range d.objects {
		if o.Kind != KindText {
			continue
		}
		infos = append(infos, TextInfo{ID: o.ID, Name: o.Name, Text: o.Text})
	}
	return infos
}
