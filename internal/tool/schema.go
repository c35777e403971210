package tool

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// ParamType is the declared type of a tool parameter.
type ParamType string

// Parameter types understood by the validator.
const (
	TypeString  ParamType = "string"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeObject  ParamType = "object"
	TypeArray   ParamType = "array"
)

// Param declares one parameter of a tool: name, primitive type, whether it
// is required, and an optional enum of accepted string values. Object
// parameters are shape-checked here and decoded by their typed consumer
// (style decoder, background descriptor) which rejects unknown fields.
type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Description string
	Enum        []string
}

// Schema is a tool's ordered parameter list.
type Schema []Param

// Validate checks args against the schema. It returns a KindValidation
// error naming every offending field, or nil. Unknown parameters are
// rejected; nothing is coerced.
func (s Schema) Validate(args map[string]any) *Error {
	known := make(map[string]Param, len(s))
	for _, p := range s {
		known[p.Name] = p
	}

	var bad []string
	report := func(field, problem string) {
		bad = append(bad, fmt.Sprintf("%s (%s)", field, problem))
	}

	for name := range args {
		if _, ok := known[name]; !ok {
			report(name, "unknown parameter")
		}
	}

	for _, p := range s {
		value, present := args[p.Name]
		if !present {
			if p.Required {
				report(p.Name, "required")
			}
			continue
		}
		if value == nil {
			report(p.Name, "must not be null")
			continue
		}
		if problem := checkType(p, value); problem != "" {
			report(p.Name, problem)
		}
	}

	if len(bad) > 0 {
		slices.Sort(bad)
		return Errorf(KindValidation, "invalid parameters: %s", strings.Join(bad, "; ")).
			WithDetails(map[string]any{"fields": bad})
	}
	return nil
}

func checkType(p Param, value any) string {
	switch p.Type {
	case TypeString:
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		if len(p.Enum) > 0 && !slices.Contains(p.Enum, s) {
			return fmt.Sprintf("must be one of %s", strings.Join(p.Enum, ", "))
		}
	case TypeNumber:
		switch value.(type) {
		case float64, float32, int, int64, json.Number:
		default:
			return "must be a number"
		}
	case TypeBoolean:
		if _, ok := value.(bool); !ok {
			return "must be a boolean"
		}
	case TypeObject:
		if _, ok := value.(map[string]any); !ok {
			return "must be an object"
		}
	case TypeArray:
		if _, ok := value.([]any); !ok {
			return "must be an array"
		}
	default:
		return fmt.Sprintf("schema declares unknown type %q", p.Type)
	}
	return ""
}

// JSONSchema renders the parameter list as a JSON Schema document for the
// discovery surfaces (MCP listing, HTTP catalogue).
func (s Schema) JSONSchema() json.RawMessage {
	properties := make(map[string]any, len(s))
	var required []string
	for _, p := range s {
		prop := map[string]any{"type": string(p.Type)}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}

	doc := map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
	if len(required) > 0 {
		slices.Sort(required)
		doc["required"] = required
	}

	data, err := json.Marshal(doc)
	if err != nil {
		// Purely static input; cannot fail.
		return json.RawMessage(`{"type":"object"}`)
	}
	return data
}
