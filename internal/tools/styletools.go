package tools

import (
	"context"

	"github.com/flemzord/easel/internal/style"
	"github.com/flemzord/easel/internal/tool"
)

// styleTools is the style engine surface.
func (c *catalogue) styleTools() []tool.Tool {
	return []tool.Tool{
		{
			Name:        "apply_text_style",
			Description: "Merge style properties into an object. Top-level keys merge shallowly; nested effect descriptors replace wholesale.",
			Params: append(tool.Schema{
				{Name: "properties", Type: tool.TypeObject, Required: true,
					Description: "Style properties to apply. Unknown keys are rejected."},
			}, referenceParams()...),
			Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
				props, err := style.Decode(args.Object("properties"))
				if err != nil {
					return nil, err
				}
				id, err := c.target(args)
				if err != nil {
					return nil, err
				}
				if err := c.doc.ApplyStyle(id, props); err != nil {
					return nil, err
				}
				c.changed("apply_text_style")
				return map[string]any{"objectId": id, "applied": props.SetKeys()}, nil
			},
		},
		{
			Name:        "apply_preset_style",
			Description: "Apply a named style preset to an object.",
			Params: append(tool.Schema{
				{Name: "presetName", Type: tool.TypeString, Required: true,
					Description: "Preset name; list_available_presets enumerates them."},
			}, referenceParams()...),
			Handler: func(ctx context.Context, args tool.Args) (map[string]any, error) {
				props, err := c.presets.Resolve(args.String("presetName"))
				if err != nil {
					return nil, err
				}
				id, err := c.target(args)
				if err != nil {
					return nil, err
				}
				if err := c.doc.ApplyStyle(id, props); err != nil {
					return nil, err
				}
				c.changed("apply_preset_style")
				return map[string]any{"objectId": id, "preset": args.String("presetName")}, nil
			},
		},
	}
}
