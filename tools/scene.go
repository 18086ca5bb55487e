package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cast"
	"github.com/wricardo/mcp-training/splinemcp/codegen"
	"github.com/wricardo/mcp-training/splinemcp/spline"
)

func (t *toolset) sceneTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("getScene",
				mcp.WithDescription("Get details of a Spline scene"),
				sceneIDArg(),
				readOnly(),
			),
			Verb: "retrieving scene",
			Handle: func(ctx context.Context, args Args) (string, error) {
				scene, err := t.Spline.GetScene(ctx, args.String("sceneId"))
				if err != nil {
					return "", err
				}
				return pretty(scene)
			},
		},
		{
			Tool: mcp.NewTool("getScenes",
				mcp.WithDescription("List available Spline scenes"),
				mcp.WithString("projectId", mcp.MinLength(1), mcp.Description("Project ID (optional)")),
				mcp.WithNumber("limit", mcp.Min(1), mcp.Max(100), mcp.DefaultNumber(10),
					mcp.Description("Maximum number of scenes to retrieve")),
				mcp.WithNumber("offset", mcp.Min(0), mcp.DefaultNumber(0), mcp.Description("Pagination offset")),
				readOnly(),
			),
			Verb: "retrieving scenes",
			Handle: func(ctx context.Context, args Args) (string, error) {
				scenes, err := t.Spline.ListScenes(ctx, spline.ListOptions{
					Limit:     args.Int("limit", 10),
					Offset:    args.Int("offset", 0),
					ProjectID: args.String("projectId"),
				})
				if err != nil {
					return "", err
				}
				return pretty(scenes)
			},
		},
		{
			Tool: mcp.NewTool("exportSceneCode",
				mcp.WithDescription("Generate runtime code that loads a scene"),
				sceneIDArg(),
				mcp.WithString("format", mcp.Enum(codegen.FormatVanilla, codegen.FormatReact, codegen.FormatNext),
					mcp.DefaultString(codegen.FormatVanilla), mcp.Description("Export format")),
				readOnly(),
			),
			Verb: "generating code",
			Handle: func(ctx context.Context, args Args) (string, error) {
				return codegen.RuntimeCode(args.String("sceneId"), args.StringOr("format", codegen.FormatVanilla))
			},
		},
		{
			Tool: mcp.NewTool("generateEmbedCode",
				mcp.WithDescription("Generate an iframe embed for a scene"),
				sceneIDArg(),
				mcp.WithString("width", mcp.DefaultString("100%"), mcp.Description("Iframe width")),
				mcp.WithString("height", mcp.DefaultString("100%"), mcp.Description("Iframe height")),
				mcp.WithString("frameBorder", mcp.DefaultString("0"), mcp.Description("Iframe border")),
				readOnly(),
			),
			Verb: "generating embed code",
			Handle: func(ctx context.Context, args Args) (string, error) {
				return codegen.EmbedCode(args.String("sceneId"), args.String("width"),
					args.String("height"), args.String("frameBorder")), nil
			},
		},
		{
			Tool: mcp.NewTool("getVariable",
				mcp.WithDescription("Get the value of a scene variable"),
				sceneIDArg(),
				idArg("variableName", "Variable name"),
				readOnly(),
			),
			Verb:   "retrieving variable",
			Handle: t.getVariable,
		},
		{
			Tool: mcp.NewTool("setVariable",
				mcp.WithDescription("Set the value of a scene variable"),
				sceneIDArg(),
				idArg("variableName", "Variable name"),
				anyArg("value", "Variable value", true),
				mcp.WithString("variableType", mcp.Required(), mcp.Enum("string", "number", "boolean"),
					mcp.Description("Variable type")),
			),
			Verb:   "setting variable",
			Handle: t.setVariable,
		},
		{
			Tool: mcp.NewTool("generateVariableCode",
				mcp.WithDescription("Generate runtime code that sets and watches a variable"),
				sceneIDArg(),
				idArg("variableName", "Variable name"),
				anyArg("value", "Variable value", true),
				readOnly(),
			),
			Verb: "generating code",
			Handle: func(ctx context.Context, args Args) (string, error) {
				return codegen.Variable(args.String("sceneId"), args.String("variableName"), args["value"])
			},
		},
	}
}

func (t *toolset) getVariable(ctx context.Context, args Args) (string, error) {
	name := args.String("variableName")
	resp, err := t.Spline.GetVariables(ctx, args.String("sceneId"))
	if err != nil {
		return "", err
	}

	// The listing is either a bare array or wrapped as {"variables": [...]}.
	list := resp
	if m, ok := resp.(map[string]any); ok {
		list = m["variables"]
	}
	for _, item := range cast.ToSlice(list) {
		v, ok := item.(map[string]any)
		if ok && cast.ToString(v["name"]) == name {
			return pretty(v)
		}
	}
	return "", failf("Variable \"%s\" not found", name)
}

func (t *toolset) setVariable(ctx context.Context, args Args) (string, error) {
	name := args.String("variableName")
	kind := args.String("variableType")

	var value any
	switch kind {
	case "number":
		f, err := cast.ToFloat64E(args["value"])
		if err != nil {
			return "", fmt.Errorf("value %v is not a number", args["value"])
		}
		value = f
	case "boolean":
		value = truthy(args["value"])
	default:
		value = cast.ToString(args["value"])
	}

	if _, err := t.Spline.SetVariable(ctx, args.String("sceneId"), name, value, kind); err != nil {
		return "", err
	}
	encoded, _ := json.Marshal(value)
	return fmt.Sprintf("Variable \"%s\" set to %s", name, encoded), nil
}

// truthy follows loose truthiness: empty strings, zero and "false" are false.
func truthy(v any) bool {
	if b, err := cast.ToBoolE(v); err == nil {
		return b
	}
	switch x := v.(type) {
	case string:
		return x != ""
	case nil:
		return false
	}
	return true
}
