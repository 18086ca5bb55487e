package tools

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/spline"
)

func projectIDArg() mcp.ToolOption {
	return idArg("projectId", "Project ID")
}

func projectPath(args Args, rest ...string) string {
	return spline.Path(append([]string{"projects", args.String("projectId")}, rest...)...)
}

// copiedKinds orders the collections reported by copyBetweenScenes.
var copiedKinds = []struct{ field, label string }{
	{"copiedObjects", "objects"},
	{"copiedStates", "states"},
	{"copiedEvents", "events"},
	{"copiedMaterials", "materials"},
	{"copiedComponents", "components"},
}

func (t *toolset) projectTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("createScene",
				mcp.WithDescription("Create a scene inside a project"),
				projectIDArg(),
				idArg("name", "Scene name"),
				mcp.WithString("description", mcp.Description("Scene description")),
				mcp.WithString("template", mcp.Enum("empty", "product", "presentation", "interactive", "portfolio"), mcp.Description("Scene template")),
				mcp.WithString("sceneType", mcp.Enum("3d", "ui", "hana"), mcp.DefaultString("3d"), mcp.Description("Scene type")),
			),
			Verb: "creating scene",
			Handle: func(ctx context.Context, args Args) (string, error) {
				sceneType := args.StringOr("sceneType", "3d")
				body := args.Pick("name", "description", "template")
				body["sceneType"] = sceneType
				result, err := t.Spline.Request(ctx, http.MethodPost, projectPath(args, "scenes"), body)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Created new %s scene \"%s\" (ID: %s)", sceneType, args.String("name"), fieldOf(result, "sceneId")), nil
			},
		},
		{
			Tool: mcp.NewTool("listScenes",
				mcp.WithDescription("List the scenes of a project"),
				projectIDArg(),
				mcp.WithString("filter", mcp.Enum("all", "active", "archived"), mcp.DefaultString("all"), mcp.Description("Filter scenes by status")),
				mcp.WithNumber("page", mcp.Min(1), mcp.DefaultNumber(1), mcp.Description("Page number")),
				mcp.WithNumber("pageSize", mcp.Min(1), mcp.Max(100), mcp.DefaultNumber(20), mcp.Description("Scenes per page")),
				readOnly(),
			),
			Verb: "listing scenes",
			Handle: func(ctx context.Context, args Args) (string, error) {
				query := map[string]any{
					"filter":   args.StringOr("filter", "all"),
					"page":     args.Int("page", 1),
					"pageSize": args.Int("pageSize", 20),
				}
				result, err := t.Spline.Request(ctx, http.MethodGet, projectPath(args, "scenes"), query)
				if err != nil {
					return "", err
				}
				items := fieldValue(result, "items")
				if items == nil {
					items = []any{}
				}
				return withJSON(fmt.Sprintf("Found %s scenes in project %s", fieldOf(result, "total"), args.String("projectId")), items)
			},
		},
		{
			Tool: mcp.NewTool("linkScenes",
				mcp.WithDescription("Link two scenes by reference, embed or portal"),
				projectIDArg(),
				idArg("sourceSceneId", "Source scene ID"),
				idArg("targetSceneId", "Target scene ID"),
				mcp.WithString("linkType", mcp.Required(), mcp.Enum("reference", "embed", "portal"), mcp.Description("Type of scene link")),
				mcp.WithString("sourceObjectId", mcp.Description("Source object ID (for embedding or portal)")),
				mcp.WithString("linkName", mcp.Description("Link name")),
				vectorArg("position", "Position for embedded scene"),
				mcp.WithNumber("scale", mcp.Min(0), mcp.DefaultNumber(1), mcp.Description("Scale for embedded scene")),
			),
			Verb: "linking scenes",
			Handle: func(ctx context.Context, args Args) (string, error) {
				linkType := args.String("linkType")
				body := args.Pick("sourceSceneId", "targetSceneId", "linkType", "sourceObjectId", "linkName", "scale")
				if args.Has("position") {
					body["position"] = vector(args.Map("position"), 0)
				}
				result, err := t.Spline.Request(ctx, http.MethodPost, projectPath(args, "scenes", "links"), body)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Created %s link between scenes (Link ID: %s)", linkType, fieldOf(result, "linkId")), nil
			},
		},
		{
			Tool: mcp.NewTool("copyBetweenScenes",
				mcp.WithDescription("Copy objects, states, events, materials or components to another scene"),
				projectIDArg(),
				idArg("sourceSceneId", "Source scene ID"),
				idArg("targetSceneId", "Target scene ID"),
				mcp.WithArray("objectIds", mcp.WithStringItems(), mcp.Description("Object IDs to copy")),
				mcp.WithArray("stateIds", mcp.WithStringItems(), mcp.Description("State IDs to copy")),
				mcp.WithArray("eventIds", mcp.WithStringItems(), mcp.Description("Event IDs to copy")),
				mcp.WithArray("materialIds", mcp.WithStringItems(), mcp.Description("Material IDs to copy")),
				mcp.WithArray("componentIds", mcp.WithStringItems(), mcp.Description("Component IDs to copy")),
				mcp.WithBoolean("copyDependencies", mcp.DefaultBool(true), mcp.Description("Copy dependent objects automatically")),
				vectorArg("position", "Target position for copied objects"),
			),
			Verb: "copying between scenes",
			Handle: func(ctx context.Context, args Args) (string, error) {
				body := args.Pick("sourceSceneId", "targetSceneId", "objectIds", "stateIds", "eventIds", "materialIds", "componentIds")
				body["copyDependencies"] = args.Bool("copyDependencies", true)
				if args.Has("position") {
					body["position"] = vector(args.Map("position"), 0)
				}
				result, err := t.Spline.Request(ctx, http.MethodPost, projectPath(args, "scenes", "copy"), body)
				if err != nil {
					return "", err
				}

				var counts []string
				for _, k := range copiedKinds {
					if items, ok := fieldValue(result, k.field).([]any); ok && len(items) > 0 {
						counts = append(counts, fmt.Sprintf("%d %s", len(items), k.label))
					}
				}
				if len(counts) == 0 {
					return "Copied nothing between scenes", nil
				}
				return fmt.Sprintf("Copied %s between scenes", strings.Join(counts, ", ")), nil
			},
		},
		{
			Tool: mcp.NewTool("navigateBetweenScenes",
				mcp.WithDescription("Navigate from one scene to another with a transition"),
				projectIDArg(),
				idArg("currentSceneId", "Current scene ID"),
				idArg("targetSceneId", "Target scene ID"),
				mcp.WithString("transitionType", mcp.Enum("none", "fade", "slide", "zoom", "custom"), mcp.DefaultString("fade"), mcp.Description("Transition animation type")),
				mcp.WithNumber("transitionDuration", mcp.Min(0), mcp.DefaultNumber(0.5), mcp.Description("Transition duration in seconds")),
				mcp.WithBoolean("preserveCamera", mcp.DefaultBool(false), mcp.Description("Preserve camera position/rotation in target scene")),
				mcp.WithString("stateToTrigger", mcp.Description("State ID to trigger in target scene on load")),
			),
			Verb: "navigating between scenes",
			Handle: func(ctx context.Context, args Args) (string, error) {
				current, target := args.String("currentSceneId"), args.String("targetSceneId")
				transition := args.StringOr("transitionType", "fade")
				body := args.Pick("targetSceneId", "stateToTrigger")
				body["transitionType"] = transition
				body["transitionDuration"] = args.Float("transitionDuration", 0.5)
				body["preserveCamera"] = args.Bool("preserveCamera", false)
				if _, err := t.Spline.Request(ctx, http.MethodPost, projectPath(args, "scenes", current, "navigate"), body); err != nil {
					return "", err
				}
				return fmt.Sprintf("Navigated from scene %s to scene %s with %s transition", current, target, transition), nil
			},
		},
		{
			Tool: mcp.NewTool("createSceneGroup",
				mcp.WithDescription("Group scenes of a project"),
				projectIDArg(),
				idArg("name", "Scene group name"),
				mcp.WithArray("sceneIds", mcp.Required(), mcp.MinItems(1), mcp.WithStringItems(), mcp.Description("Scene IDs to include in group")),
				mcp.WithString("description", mcp.Description("Group description")),
			),
			Verb: "creating scene group",
			Handle: func(ctx context.Context, args Args) (string, error) {
				sceneIDs := args.Strings("sceneIds")
				body := args.Pick("name", "description")
				body["sceneIds"] = sceneIDs
				result, err := t.Spline.Request(ctx, http.MethodPost, projectPath(args, "scene-groups"), body)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Created scene group \"%s\" with %d scenes (Group ID: %s)", args.String("name"), len(sceneIDs), fieldOf(result, "groupId")), nil
			},
		},
	}
}
