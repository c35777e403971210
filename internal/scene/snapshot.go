package scene

import (
	"encoding/json"
	"fmt"
)

// snapshot is the JSON shape of a serialized document.
type snapshot struct {
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Background Background `json:"background"`
	Objects    []*Object  `json:"objects"`
}

// Snapshot serializes the whole document. Used by the snapshot store and
// for byte-for-byte atomicity checks in tests; the tool contract itself
// never exposes it.
func (d *Document) Snapshot() ([]byte, error) {
	return json.Marshal(snapshot{
		Width:      d.width,
		Height:     d.height,
		Background: d.background,
		Objects:    d.objects,
	})
}

// Restore rebuilds a document from Snapshot output.
func Restore(data []byte) (*Document, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("scene: decode snapshot: %w", err)
	}
	doc, err := NewDocument(snap.Width, snap.Height)
	if err != nil {
		return nil, fmt.Errorf("scene: restore snapshot: %w", err)
	}
	if err := snap.Background.Validate(); err != nil {
		return nil, fmt.Errorf("scene: restore snapshot: %w", err)
	}
	doc.background = snap.Background
	for i, o := range snap.Objects {
		if o.ID == "" {
			return nil, fmt.Errorf("scene: restore snapshot: object %d has no id", i)
		}
		if _, exists := doc.byID[o.ID]; exists {
			return nil, fmt.Errorf("scene: restore snapshot: duplicate object id %s", o.ID)
		}
		// Restored objects pass the same checks Add applies, so a stale or
		// hand-edited snapshot cannot smuggle in invalid geometry.
		if o.Anchor == "" {
			o.Anchor = AnchorTopLeft
		} else if !ValidAnchor(o.Anchor) {
			return nil, fmt.Errorf("scene: restore snapshot: object %s has unknown anchor %q", o.ID, o.Anchor)
		}
		if o.ScaleX == 0 {
			o.ScaleX = 1
		}
		if o.ScaleY == 0 {
			o.ScaleY = 1
		}
		doc.objects = append(doc.objects, o)
		doc.byID[o.ID] = o
	}
	doc.renumber()
	return doc, nil
}
