package tools

import (
	"context"

	"github.com/flemzord/easel/internal/tool"
)

// readTools is the accessor surface: pure reads that always observe the
// latest committed mutation and never change anything.
func (c *catalogue) readTools() []tool.Tool {
	return []tool.Tool{
		{
			Name:        "get_canvas_state",
			Description: "List every object on the canvas with its position, bounding box, and one salient visual cue, plus the canvas background and dimensions.",
			ReadOnly:    true,
			Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
				return asMap(c.doc.State()), nil
			},
		},
		{
			Name:        "get_object_details",
			Description: "Return the full property tree of one object.",
			ReadOnly:    true,
			Params:      tool.Schema{{Name: "id", Type: tool.TypeString, Required: true, Description: "Object id."}},
			Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
				obj, err := c.doc.Details(args.String("id"))
				if err != nil {
					return nil, err
				}
				return map[string]any{"object": asMap(obj)}, nil
			},
		},
		{
			Name:        "get_object_size",
			Description: "Return an object's bounding dimensions, scale factors, effective dimensions, origin anchor, absolute position, and the canvas dimensions.",
			ReadOnly:    true,
			Params:      tool.Schema{{Name: "id", Type: tool.TypeString, Required: true, Description: "Object id."}},
			Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
				info, err := c.doc.Size(args.String("id"))
				if err != nil {
					return nil, err
				}
				return asMap(info), nil
			},
		},
		{
			Name:        "get_text_objects",
			Description: "Return id, name, and full text content for every text object.",
			ReadOnly:    true,
			Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
				infos := c.doc.TextObjects()
				return map[string]any{
					"objects": asSlice(infos),
					"count":   len(infos),
				}, nil
			},
		},
		{
			Name:        "get_selected_object",
			Description: "Return the object(s) currently selected in the editing session.",
			ReadOnly:    true,
			Params: tool.Schema{{
				Name: "includeProperties", Type: tool.TypeBoolean,
				Description: "Include each object's full property tree instead of the summary.",
			}},
			Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
				ids := c.session.SelectedIDs()
				if len(ids) == 0 {
					return nil, tool.Errorf(tool.KindNoSelection, "no object is currently selected")
				}

				objects := make([]any, 0, len(ids))
				for _, id := range ids {
					if args.Bool("includeProperties") {
						obj, err := c.doc.Details(id)
						if err != nil {
							return nil, err
						}
						objects = append(objects, asMap(obj))
						continue
					}
					info, err := c.doc.Size(id)
					if err != nil {
						return nil, err
					}
					objects = append(objects, map[string]any{"id": id, "x": info.X, "y": info.Y,
						"width": info.EffectiveWidth, "height": info.EffectiveHeight})
				}
				return map[string]any{"objects": objects, "count": len(objects)}, nil
			},
		},
		{
			Name:        "list_available_presets",
			Description: "List the style preset names, or return one preset's full property tree.",
			ReadOnly:    true,
			Params: tool.Schema{{
				Name: "specificPreset", Type: tool.TypeString,
				Description: "Preset name to inspect in full.",
			}},
			Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
				if name := args.String("specificPreset"); name != "" {
					props, err := c.presets.Resolve(name)
					if err != nil {
						return nil, err
					}
					return map[string]any{"preset": name, "properties": asMap(props)}, nil
				}
				names := c.presets.Names()
				return map[string]any{"presets": names, "count": len(names)}, nil
			},
		},
	}
}
