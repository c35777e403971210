package tools

import (
	"context"

	"github.com/flemzord/easel/internal/geometry"
	"github.com/flemzord/easel/internal/scene"
	"github.com/flemzord/easel/internal/style"
	"github.com/flemzord/easel/internal/tool"
)

// mutationTools is the write surface. Every handler validates fully before
// touching the document, so a failed call leaves it byte-identical, and
// every success returns a minimal acknowledgment rather than document
// state.
func (c *catalogue) mutationTools() []tool.Tool {
	return []tool.Tool{
		c.addTextTool(),
		c.addImageTool(),
		c.addShapeTool(),
		c.updateTextContentTool(),
		c.moveObjectTool(),
		c.moveObjectByTool(),
		c.placeObjectTool(),
		c.resizeObjectTool(),
		c.deleteObjectTool(),
		c.changeObjectOrderTool(),
		c.setCanvasBackgroundTool(),
		c.clearCanvasTool(),
	}
}

func (c *catalogue) addTextTool() tool.Tool {
	return tool.Tool{
		Name:        "add_text",
		Description: "Create a new text object at an absolute position, on top of the paint order.",
		Params: tool.Schema{
			{Name: "text", Type: tool.TypeString, Required: true, Description: "Text content."},
			{Name: "x", Type: tool.TypeNumber, Required: true, Description: "Absolute x position."},
			{Name: "y", Type: tool.TypeNumber, Required: true, Description: "Absolute y position."},
			{Name: "fontSize", Type: tool.TypeNumber, Required: true, Description: "Font size in points."},
			{Name: "color", Type: tool.TypeString, Required: true, Description: "Fill color."},
			{Name: "additionalProperties", Type: tool.TypeObject, Description: "Extra style properties, same shape as apply_text_style."},
		},
		Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
			// Text objects always carry a minimal style: size plus fill.
			raw := make(map[string]any)
			for k, v := range args.Object("additionalProperties") {
				raw[k] = v
			}
			raw["fontSize"] = args.Float("fontSize")
			raw["fill"] = args.String("color")
			props, err := style.Decode(raw)
			if err != nil {
				return nil, err
			}

			obj, err := c.doc.Add(scene.Object{
				Kind:  scene.KindText,
				Text:  args.String("text"),
				X:     args.Float("x"),
				Y:     args.Float("y"),
				Style: props,
			})
			if err != nil {
				return nil, err
			}
			c.changed("add_text")
			return map[string]any{"objectId": obj.ID}, nil
		},
	}
}

func (c *catalogue) addImageTool() tool.Tool {
	return tool.Tool{
		Name:        "add_image",
		Description: "Create a new image object at an absolute position, on top of the paint order.",
		Params: tool.Schema{
			{Name: "url", Type: tool.TypeString, Required: true, Description: "Image source url."},
			{Name: "x", Type: tool.TypeNumber, Required: true, Description: "Absolute x position."},
			{Name: "y", Type: tool.TypeNumber, Required: true, Description: "Absolute y position."},
			{Name: "width", Type: tool.TypeNumber, Description: "Bounding width."},
			{Name: "height", Type: tool.TypeNumber, Description: "Bounding height."},
		},
		Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
			obj, err := c.doc.Add(scene.Object{
				Kind:      scene.KindImage,
				SourceURL: args.String("url"),
				X:         args.Float("x"),
				Y:         args.Float("y"),
				Width:     args.Float("width"),
				Height:    args.Float("height"),
			})
			if err != nil {
				return nil, err
			}
			c.changed("add_image")
			return map[string]any{"objectId": obj.ID}, nil
		},
	}
}

func (c *catalogue) addShapeTool() tool.Tool {
	return tool.Tool{
		Name:        "add_shape",
		Description: "Create a new shape object at an absolute position, on top of the paint order.",
		Params: tool.Schema{
			{Name: "shape", Type: tool.TypeString, Required: true,
				Enum:        []string{"rectangle", "ellipse", "line", "polygon"},
				Description: "Shape geometry."},
			{Name: "x", Type: tool.TypeNumber, Required: true, Description: "Absolute x position."},
			{Name: "y", Type: tool.TypeNumber, Required: true, Description: "Absolute y position."},
			{Name: "width", Type: tool.TypeNumber, Description: "Bounding width."},
			{Name: "height", Type: tool.TypeNumber, Description: "Bounding height."},
			{Name: "fill", Type: tool.TypeString, Description: "Fill color."},
		},
		Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
			var props style.Properties
			if args.Has("fill") {
				fill := args.String("fill")
				props.Fill = &fill
			}
			obj, err := c.doc.Add(scene.Object{
				Kind:   scene.KindShape,
				Shape:  scene.ShapeKind(args.String("shape")),
				X:      args.Float("x"),
				Y:      args.Float("y"),
				Width:  args.Float("width"),
				Height: args.Float("height"),
				Style:  props,
			})
			if err != nil {
				return nil, err
			}
			c.changed("add_shape")
			return map[string]any{"objectId": obj.ID}, nil
		},
	}
}

func (c *catalogue) updateTextContentTool() tool.Tool {
	return tool.Tool{
		Name:        "update_text_content",
		Description: "Replace the text content of a text object. Style and position are untouched.",
		Params: append(tool.Schema{
			{Name: "text", Type: tool.TypeString, Required: true, Description: "New text content."},
		}, referenceParams()...),
		Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
			id, err := c.target(args)
			if err != nil {
				return nil, err
			}
			if err := c.doc.SetText(id, args.String("text")); err != nil {
				return nil, err
			}
			c.changed("update_text_content")
			return map[string]any{"objectId": id}, nil
		},
	}
}

func (c *catalogue) moveObjectTool() tool.Tool {
	return tool.Tool{
		Name:        "move_object",
		Description: "Set an object's absolute position. No geometry inference and no bounds clamping.",
		Params: append(tool.Schema{
			{Name: "x", Type: tool.TypeNumber, Required: true, Description: "Absolute x position."},
			{Name: "y", Type: tool.TypeNumber, Required: true, Description: "Absolute y position."},
		}, referenceParams()...),
		Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
			id, err := c.target(args)
			if err != nil {
				return nil, err
			}
			if err := c.doc.Move(id, args.Float("x"), args.Float("y")); err != nil {
				return nil, err
			}
			c.changed("move_object")
			return map[string]any{"objectId": id}, nil
		},
	}
}

func (c *catalogue) moveObjectByTool() tool.Tool {
	return tool.Tool{
		Name:        "move_object_by",
		Description: "Move an object by a relative offset. No bounds clamping.",
		Params: append(tool.Schema{
			{Name: "dx", Type: tool.TypeNumber, Required: true, Description: "Horizontal offset."},
			{Name: "dy", Type: tool.TypeNumber, Required: true, Description: "Vertical offset."},
		}, referenceParams()...),
		Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
			id, err := c.target(args)
			if err != nil {
				return nil, err
			}
			info, err := c.doc.Size(id)
			if err != nil {
				return nil, err
			}
			x, y := geometry.MoveBy(geometry.FromSizeInfo(info), args.Float("dx"), args.Float("dy"))
			if err := c.doc.Move(id, x, y); err != nil {
				return nil, err
			}
			c.changed("move_object_by")
			return map[string]any{"objectId": id, "x": x, "y": y}, nil
		},
	}
}

func (c *catalogue) placeObjectTool() tool.Tool {
	return tool.Tool{
		Name:        "place_object",
		Description: "Position an object semantically on the canvas, honoring its anchor and scale.",
		Params: append(tool.Schema{
			{Name: "placement", Type: tool.TypeString, Required: true,
				Enum: []string{"center", "center-horizontal", "center-vertical",
					"left", "right", "top", "bottom"},
				Description: "Placement relative to the canvas."},
		}, referenceParams()...),
		Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
			id, err := c.target(args)
			if err != nil {
				return nil, err
			}
			info, err := c.doc.Size(id)
			if err != nil {
				return nil, err
			}
			x, y, err := geometry.Place(geometry.FromSizeInfo(info),
				float64(info.CanvasWidth), float64(info.CanvasHeight),
				geometry.Placement(args.String("placement")))
			if err != nil {
				return nil, err
			}
			if err := c.doc.Move(id, x, y); err != nil {
				return nil, err
			}
			c.changed("place_object")
			return map[string]any{"objectId": id, "x": x, "y": y}, nil
		},
	}
}

func (c *catalogue) resizeObjectTool() tool.Tool {
	return tool.Tool{
		Name:        "resize_object",
		Description: "Set an object's bounding dimensions.",
		Params: append(tool.Schema{
			{Name: "width", Type: tool.TypeNumber, Required: true, Description: "New bounding width."},
			{Name: "height", Type: tool.TypeNumber, Required: true, Description: "New bounding height."},
		}, referenceParams()...),
		Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
			id, err := c.target(args)
			if err != nil {
				return nil, err
			}
			if err := c.doc.Resize(id, args.Float("width"), args.Float("height")); err != nil {
				return nil, err
			}
			c.changed("resize_object")
			return map[string]any{"objectId": id}, nil
		},
	}
}

func (c *catalogue) deleteObjectTool() tool.Tool {
	return tool.Tool{
		Name:        "delete_object",
		Description: "Remove an object from the canvas and compact the paint order. Requires confirm: true.",
		Destructive: true,
		Params: append(tool.Schema{
			// Not Required: the gate answers an omitted confirm with
			// confirmation_required, not a schema error.
			{Name: tool.ConfirmParam, Type: tool.TypeBoolean,
				Description: "Must be true to delete."},
		}, referenceParams()...),
		Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
			id, err := c.target(args)
			if err != nil {
				return nil, err
			}
			if err := c.doc.Delete(id); err != nil {
				return nil, err
			}
			c.changed("delete_object")
			return map[string]any{"objectId": id}, nil
		},
	}
}

func (c *catalogue) changeObjectOrderTool() tool.Tool {
	return tool.Tool{
		Name:        "change_object_order",
		Description: "Move an object within the paint order.",
		Params: append(tool.Schema{
			{Name: "action", Type: tool.TypeString, Required: true,
				Enum: []string{"bring-forward", "send-backward", "bring-to-front", "send-to-back"},
				Description: "Order adjustment."},
		}, referenceParams()...),
		Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
			id, err := c.target(args)
			if err != nil {
				return nil, err
			}
			z, err := c.doc.Reorder(id, scene.OrderAction(args.String("action")))
			if err != nil {
				return nil, err
			}
			c.changed("change_object_order")
			return map[string]any{"objectId": id, "z": z}, nil
		},
	}
}

func (c *catalogue) setCanvasBackgroundTool() tool.Tool {
	return tool.Tool{
		Name:        "set_canvas_background",
		Description: "Replace the canvas background descriptor wholesale: solid color, gradient, or image.",
		Params: tool.Schema{
			{Name: "background", Type: tool.TypeObject, Required: true,
				Description: "Background descriptor with mode and exactly the matching variant."},
		},
		Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
			bg, err := decodeBackground(args.Object("background"))
			if err != nil {
				return nil, err
			}
			if err := c.doc.SetBackground(bg); err != nil {
				return nil, err
			}
			c.changed("set_canvas_background")
			return map[string]any{"mode": string(bg.Mode)}, nil
		},
	}
}

func (c *catalogue) clearCanvasTool() tool.Tool {
	return tool.Tool{
		Name:        "clear_canvas",
		Description: "Remove every object from the canvas. Requires confirm: true.",
		Destructive: true,
		Params: tool.Schema{
			{Name: tool.ConfirmParam, Type: tool.TypeBoolean,
				Description: "Must be true to clear."},
		},
		Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
			removed := c.doc.Clear()
			c.changed("clear_canvas")
			return map[string]any{"removed": removed}, nil
		},
	}
}
