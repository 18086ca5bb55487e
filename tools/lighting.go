package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/spline"
)

// vectorOr fills an optional {x, y, z} argument from defaults.
func vectorOr(v map[string]any, x, y, z float64) map[string]any {
	a := Args(v)
	return map[string]any{
		"x": a.Float("x", x),
		"y": a.Float("y", y),
		"z": a.Float("z", z),
	}
}

func (t *toolset) putSetting(ctx context.Context, sceneID, setting string, body map[string]any) error {
	_, err := t.Spline.Request(ctx, http.MethodPut, spline.Path("scenes", sceneID, "settings", setting), body)
	return err
}

func (t *toolset) lightingTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("addDirectionalLight",
				mcp.WithDescription("Add a directional light to a scene"),
				sceneIDArg(),
				mcp.WithString("name", mcp.DefaultString("Directional Light"), mcp.Description("Light name")),
				vectorArg("position", "Light position"),
				mcp.WithString("color", mcp.DefaultString("#ffffff"), mcp.Description("Light color (hex)")),
				mcp.WithNumber("intensity", mcp.Min(0), mcp.DefaultNumber(1), mcp.Description("Light intensity")),
				mcp.WithBoolean("castShadow", mcp.DefaultBool(true), mcp.Description("Whether to cast shadows")),
			),
			Verb: "creating directional light",
			Handle: func(ctx context.Context, args Args) (string, error) {
				name := args.StringOr("name", "Directional Light")
				light := map[string]any{
					"type":       "light",
					"lightType":  "directional",
					"name":       name,
					"position":   vectorOr(args.Map("position"), 0, 10, 0),
					"color":      args.StringOr("color", "#ffffff"),
					"intensity":  args.Float("intensity", 1),
					"castShadow": args.Bool("castShadow", true),
				}
				if _, err := t.Spline.CreateObject(ctx, args.String("sceneId"), light); err != nil {
					return "", err
				}
				return fmt.Sprintf("Directional light \"%s\" created successfully", name), nil
			},
		},
		{
			Tool: mcp.NewTool("addCamera",
				mcp.WithDescription("Add a camera to a scene"),
				sceneIDArg(),
				mcp.WithString("name", mcp.DefaultString("Camera"), mcp.Description("Camera name")),
				vectorArg("position", "Camera position"),
				vectorArg("target", "Camera target"),
				mcp.WithString("type", mcp.Enum("perspective", "orthographic"), mcp.DefaultString("perspective"), mcp.Description("Camera type")),
				mcp.WithNumber("fov", mcp.Min(1), mcp.Max(179), mcp.DefaultNumber(45), mcp.Description("Field of view (degrees)")),
			),
			Verb: "creating camera",
			Handle: func(ctx context.Context, args Args) (string, error) {
				name := args.StringOr("name", "Camera")
				camera := map[string]any{
					"type":       "camera",
					"cameraType": args.StringOr("type", "perspective"),
					"name":       name,
					"position":   vectorOr(args.Map("position"), 0, 0, 5),
					"target":     vectorOr(args.Map("target"), 0, 0, 0),
					"fov":        args.Float("fov", 45),
				}
				if _, err := t.Spline.CreateObject(ctx, args.String("sceneId"), camera); err != nil {
					return "", err
				}
				return fmt.Sprintf("Camera \"%s\" created successfully", name), nil
			},
		},
		{
			Tool: mcp.NewTool("configureFog",
				mcp.WithDescription("Configure scene fog"),
				sceneIDArg(),
				mcp.WithBoolean("enabled", mcp.DefaultBool(true), mcp.Description("Whether fog is enabled")),
				mcp.WithString("color", mcp.DefaultString("#cccccc"), mcp.Description("Fog color (hex)")),
				mcp.WithNumber("density", mcp.Min(0), mcp.Max(1), mcp.DefaultNumber(0.1), mcp.Description("Fog density")),
				mcp.WithNumber("near", mcp.Min(0), mcp.DefaultNumber(1), mcp.Description("Near distance")),
				mcp.WithNumber("far", mcp.Min(0), mcp.DefaultNumber(100), mcp.Description("Far distance")),
			),
			Verb: "configuring fog",
			Handle: func(ctx context.Context, args Args) (string, error) {
				enabled := args.Bool("enabled", true)
				fog := map[string]any{
					"enabled": enabled,
					"color":   args.StringOr("color", "#cccccc"),
					"density": args.Float("density", 0.1),
					"near":    args.Float("near", 1),
					"far":     args.Float("far", 100),
				}
				if err := t.putSetting(ctx, args.String("sceneId"), "fog", fog); err != nil {
					return "", err
				}
				state := "disabled"
				if enabled {
					state = "enabled"
				}
				return fmt.Sprintf("Fog %s successfully", state), nil
			},
		},
		{
			Tool: mcp.NewTool("configurePostProcessing",
				mcp.WithDescription("Configure bloom and depth of field"),
				sceneIDArg(),
				mcp.WithObject("bloom", mcp.Description("Bloom effect settings"), mcp.Properties(map[string]any{
					"enabled":   boolProp("Enable bloom effect"),
					"intensity": numberRange("Bloom intensity", 0, 1),
				})),
				mcp.WithObject("depthOfField", mcp.Description("Depth of field settings"), mcp.Properties(map[string]any{
					"enabled":       boolProp("Enable depth of field"),
					"focusDistance": numberProp("Focus distance"),
					"focalLength":   numberProp("Focal length"),
					"bokehScale":    numberProp("Bokeh scale"),
				})),
			),
			Verb: "configuring post-processing",
			Handle: func(ctx context.Context, args Args) (string, error) {
				settings := map[string]any{}
				if args.Has("bloom") {
					b := Args(args.Map("bloom"))
					settings["bloom"] = map[string]any{
						"enabled":   b.Bool("enabled", false),
						"intensity": b.Float("intensity", 0.5),
					}
				}
				if args.Has("depthOfField") {
					d := Args(args.Map("depthOfField"))
					settings["depthOfField"] = map[string]any{
						"enabled":       d.Bool("enabled", false),
						"focusDistance": d.Float("focusDistance", 10),
						"focalLength":   d.Float("focalLength", 50),
						"bokehScale":    d.Float("bokehScale", 2),
					}
				}
				if err := t.putSetting(ctx, args.String("sceneId"), "post-processing", settings); err != nil {
					return "", err
				}
				return "Post-processing effects configured successfully", nil
			},
		},
	}
}
