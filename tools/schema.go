package tools

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Shared argument declarations.

func sceneIDArg() mcp.ToolOption {
	return idArg("sceneId", "Scene ID")
}

func idArg(name, desc string) mcp.ToolOption {
	return mcp.WithString(name, mcp.Required(), mcp.MinLength(1), mcp.Description(desc))
}

func recordArg(name, desc string) mcp.ToolOption {
	return mcp.WithObject(name, mcp.Description(desc), mcp.AdditionalProperties(true))
}

func readOnly() mcp.ToolOption {
	return mcp.WithReadOnlyHintAnnotation(true)
}

// Nested property schemas for mcp.Properties and mcp.Items.

func numberProp(desc string) map[string]any {
	return map[string]any{"type": "number", "description": desc}
}

func numberRange(desc string, min, max float64) map[string]any {
	return map[string]any{"type": "number", "description": desc, "minimum": min, "maximum": max}
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func requiredString(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "minLength": 1}
}

func boolProp(desc string) map[string]any {
	return map[string]any{"type": "boolean", "description": desc}
}

func enumProp(desc string, values ...string) map[string]any {
	return map[string]any{"type": "string", "description": desc, "enum": values}
}

func anyProp(desc string) map[string]any {
	return map[string]any{"description": desc}
}

func recordProp(desc string) map[string]any {
	return map[string]any{"type": "object", "description": desc, "additionalProperties": true}
}

func objectProp(desc string, props map[string]any, required ...string) map[string]any {
	m := map[string]any{"type": "object", "description": desc, "properties": props}
	if len(required) > 0 {
		m["required"] = required
	}
	return m
}

func arrayOf(desc string, items map[string]any) map[string]any {
	return map[string]any{"type": "array", "description": desc, "items": items}
}

// vectorProps describes an {x, y, z} triple.
func vectorProps(what string) map[string]any {
	return map[string]any{
		"x": numberProp("X " + what),
		"y": numberProp("Y " + what),
		"z": numberProp("Z " + what),
	}
}

func vectorArg(name, what string) mcp.ToolOption {
	return mcp.WithObject(name, mcp.Description(what), mcp.Properties(vectorProps(what)))
}

// vector fills missing axes of an {x, y, z} argument with def.
func vector(v map[string]any, def float64) map[string]any {
	a := Args(v)
	return map[string]any{
		"x": a.Float("x", def),
		"y": a.Float("y", def),
		"z": a.Float("z", def),
	}
}

var easings = []string{"linear", "easeIn", "easeOut", "easeInOut"}

// anyArg declares an argument of any JSON type.
func anyArg(name, desc string, required bool) mcp.ToolOption {
	return func(t *mcp.Tool) {
		t.InputSchema.Properties[name] = map[string]any{"description": desc}
		if required {
			t.InputSchema.Required = append(t.InputSchema.Required, name)
		}
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
