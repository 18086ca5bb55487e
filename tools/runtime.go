package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/codegen"
)

// runtimeTools generate @splinetool/runtime code locally.
func (t *toolset) runtimeTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("getRuntimeSetup",
				mcp.WithDescription("Get installation and setup code for @splinetool/runtime"),
				readOnly(),
			),
			Verb: "generating setup code",
			Handle: func(ctx context.Context, args Args) (string, error) {
				return codegen.RuntimeSetup(), nil
			},
		},
		{
			Tool: mcp.NewTool("generateComprehensiveExample",
				mcp.WithDescription("Generate an example covering the main runtime features"),
				sceneIDArg(),
				readOnly(),
			),
			Verb: "generating comprehensive example",
			Handle: func(ctx context.Context, args Args) (string, error) {
				return codegen.ComprehensiveExample(args.String("sceneId")), nil
			},
		},
		{
			Tool: mcp.NewTool("generateAnimationCode",
				mcp.WithDescription("Generate code that animates an object"),
				sceneIDArg(),
				idArg("objectId", "Object ID"),
				mcp.WithString("animationType", mcp.Required(), mcp.Enum("rotate", "move", "scale", "color"), mcp.Description("Animation type")),
				mcp.WithNumber("duration", mcp.Min(100), mcp.DefaultNumber(1000), mcp.Description("Animation duration (ms)")),
				mcp.WithString("easing", mcp.Enum(easings...), mcp.DefaultString("easeInOut"), mcp.Description("Animation easing function")),
				mcp.WithBoolean("loop", mcp.DefaultBool(false), mcp.Description("Whether to loop the animation")),
				recordArg("params", "Animation-specific parameters"),
				readOnly(),
			),
			Verb: "generating animation code",
			Handle: func(ctx context.Context, args Args) (string, error) {
				params := codegen.Params{
					"animationType": args.String("animationType"),
					"duration":      args.Int("duration", 1000),
					"easing":        args.StringOr("easing", "easeInOut"),
					"loop":          args.Bool("loop", false),
				}
				for k, v := range args.Map("params") {
					params[k] = v
				}
				return codegen.ObjectInteraction(args.String("sceneId"), args.String("objectId"), codegen.ActionAnimation, params)
			},
		},
		{
			Tool: mcp.NewTool("generateSceneInteractionCode",
				mcp.WithDescription("Generate scene-wide interaction code"),
				sceneIDArg(),
				mcp.WithString("interactionType", mcp.Required(), mcp.Enum(codegen.InteractionTypes...), mcp.Description("Type of interaction")),
				mcp.WithObject("options", mcp.Description("Interaction-specific options"), mcp.Properties(map[string]any{
					"objectName": stringProp("Object the interaction targets"),
					"code":       stringProp("Body of a custom interaction"),
				}), mcp.AdditionalProperties(true)),
				readOnly(),
			),
			Verb: "generating scene interaction code",
			Handle: func(ctx context.Context, args Args) (string, error) {
				opts := Args(args.Map("options"))
				return codegen.SceneInteraction(args.String("sceneId"), args.String("interactionType"),
					opts.String("objectName"), opts.String("code"))
			},
		},
		{
			Tool: mcp.NewTool("generateReactComponent",
				mcp.WithDescription("Generate a React component that hosts a scene"),
				sceneIDArg(),
				mcp.WithString("componentName", mcp.MinLength(1), mcp.DefaultString("SplineScene"), mcp.Description("React component name")),
				mcp.WithString("interactivity", mcp.Enum("none", "basic", "advanced"), mcp.DefaultString("basic"), mcp.Description("Level of interactivity")),
				mcp.WithBoolean("responsive", mcp.DefaultBool(true), mcp.Description("Whether to make the component responsive")),
				mcp.WithBoolean("typescript", mcp.DefaultBool(false), mcp.Description("Whether to generate TypeScript code")),
				readOnly(),
			),
			Verb: "generating React component",
			Handle: func(ctx context.Context, args Args) (string, error) {
				return codegen.ReactComponent(codegen.ReactOptions{
					SceneID:       args.String("sceneId"),
					ComponentName: args.StringOr("componentName", "SplineScene"),
					Interactivity: args.StringOr("interactivity", "basic"),
					Responsive:    args.Bool("responsive", true),
					TypeScript:    args.Bool("typescript", false),
				})
			},
		},
	}
}
