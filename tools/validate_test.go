package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestValidate(t *testing.T) {
	schema := map[string]any{
		"type":     "object",
		"required": []any{"sceneId", "type"},
		"properties": map[string]any{
			"sceneId": map[string]any{"type": "string", "minLength": 1},
			"type":    map[string]any{"type": "string", "enum": []any{"cube", "sphere"}},
			"count":   map[string]any{"type": "integer", "minimum": 1, "maximum": 10},
			"tags":    map[string]any{"type": "array", "minItems": 1, "items": map[string]any{"type": "string"}},
			"position": map[string]any{
				"type":     "object",
				"required": []any{"x"},
				"properties": map[string]any{
					"x": map[string]any{"type": "number"},
				},
			},
		},
	}

	tests := []struct {
		name    string
		args    map[string]any
		wantErr string
	}{
		{"valid", map[string]any{"sceneId": "s", "type": "cube", "count": 3.0, "tags": []any{"a"}}, ""},
		{"go integers", map[string]any{"sceneId": "s", "type": "cube", "count": 3}, ""},
		{"unknown arguments pass", map[string]any{"sceneId": "s", "type": "cube", "extra": true}, ""},
		{"null optional is absent", map[string]any{"sceneId": "s", "type": "cube", "count": nil}, ""},
		{"missing required", map[string]any{"type": "cube"}, `missing properties: ["sceneId"]`},
		{"null counts as missing", map[string]any{"sceneId": nil, "type": "cube"}, `missing properties: ["sceneId"]`},
		{"empty string", map[string]any{"sceneId": "", "type": "cube"}, "/properties/sceneId"},
		{"enum", map[string]any{"sceneId": "s", "type": "cone"}, "/properties/type"},
		{"wrong type", map[string]any{"sceneId": 5.0, "type": "cube"}, "/properties/sceneId"},
		{"integer", map[string]any{"sceneId": "s", "type": "cube", "count": 1.5}, "/properties/count"},
		{"minimum", map[string]any{"sceneId": "s", "type": "cube", "count": 0.0}, "/properties/count"},
		{"maximum", map[string]any{"sceneId": "s", "type": "cube", "count": 11.0}, "/properties/count"},
		{"min items", map[string]any{"sceneId": "s", "type": "cube", "tags": []any{}}, "/properties/tags"},
		{"item type", map[string]any{"sceneId": "s", "type": "cube", "tags": []any{1.0}}, "/properties/tags/items"},
		{"nested required", map[string]any{"sceneId": "s", "type": "cube", "position": map[string]any{}}, `missing properties: ["x"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(schema, tt.args)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidArguments) {
				t.Fatalf("Expected ErrInvalidArguments, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestValidate_CatalogSchemas(t *testing.T) {
	reg := New(Deps{})

	schema, _ := reg.Schema("createJoint")
	err := Validate(schema, map[string]any{
		"sceneId":    "s",
		"jointType":  "hinge",
		"bodyAId":    "a",
		"parameters": map[string]any{},
	})
	if err == nil || !strings.Contains(err.Error(), `missing properties: ["bodyBId"]`) {
		t.Errorf("Expected bodyBId to be required, got %v", err)
	}

	schema, _ = reg.Schema("createLayeredMaterial")
	err = Validate(schema, map[string]any{"sceneId": "s", "name": "m", "layers": []any{}})
	if !errors.Is(err, ErrInvalidArguments) || !strings.Contains(err.Error(), "/properties/layers") {
		t.Errorf("Expected empty layers to be rejected, got %v", err)
	}
}

func TestNew_EveryToolHasValidator(t *testing.T) {
	reg := New(Deps{})
	for _, spec := range reg.Specs() {
		if _, ok := reg.validators[spec.Tool.Name]; !ok {
			t.Errorf("Tool %s has no compiled input schema", spec.Tool.Name)
		}
	}
}

func TestAdd_ShadowingSpecReplacesValidator(t *testing.T) {
	reg := NewEmpty(nil)
	reg.Add(stubSpec("dup", func(ctx context.Context, args Args) (string, error) { return "first", nil }))
	reg.Add(Spec{
		Tool:   mcp.NewTool("dup", mcp.WithString("name", mcp.Required())),
		Verb:   "doing thing",
		Handle: func(ctx context.Context, args Args) (string, error) { return "second", nil },
	})

	_, err := reg.Call(context.Background(), "dup", map[string]any{"id": "1"})
	if err == nil || !strings.Contains(err.Error(), `missing properties: ["name"]`) {
		t.Errorf("Expected the later schema to apply, got %v", err)
	}
}
