package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/codegen"
)

var objectTypes = []string{"cube", "sphere", "cylinder", "cone", "torus", "plane", "text", "image", "group", "light"}

func (t *toolset) objectTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("getObjects",
				mcp.WithDescription("List the objects in a scene"),
				sceneIDArg(),
				readOnly(),
			),
			Verb: "retrieving objects",
			Handle: func(ctx context.Context, args Args) (string, error) {
				objects, err := t.Spline.GetObjects(ctx, args.String("sceneId"))
				if err != nil {
					return "", err
				}
				return pretty(objects)
			},
		},
		{
			Tool: mcp.NewTool("getObjectDetails",
				mcp.WithDescription("Get details of one object"),
				sceneIDArg(),
				idArg("objectId", "Object ID"),
				readOnly(),
			),
			Verb: "retrieving object details",
			Handle: func(ctx context.Context, args Args) (string, error) {
				object, err := t.Spline.GetObject(ctx, args.String("sceneId"), args.String("objectId"))
				if err != nil {
					return "", err
				}
				return pretty(object)
			},
		},
		{
			Tool: mcp.NewTool("createObject",
				mcp.WithDescription("Create a new object in a scene"),
				sceneIDArg(),
				mcp.WithString("type", mcp.Required(), mcp.Enum(objectTypes...), mcp.Description("Object type")),
				idArg("name", "Object name"),
				vectorArg("position", "position"),
				vectorArg("rotation", "rotation (degrees)"),
				vectorArg("scale", "scale"),
				mcp.WithString("color", mcp.Description("Object color (hex)")),
				recordArg("properties", "Additional properties"),
			),
			Verb: "creating object",
			Handle: func(ctx context.Context, args Args) (string, error) {
				object := args.Pick("type", "name", "color", "properties")
				object["position"] = vector(args.Map("position"), 0)
				object["rotation"] = vector(args.Map("rotation"), 0)
				object["scale"] = vector(args.Map("scale"), 1)

				result, err := t.Spline.CreateObject(ctx, args.String("sceneId"), object)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Object created successfully with ID: %s", idOf(result)), nil
			},
		},
		{
			Tool: mcp.NewTool("updateObject",
				mcp.WithDescription("Update an existing object. Only the given fields change."),
				sceneIDArg(),
				idArg("objectId", "Object ID"),
				vectorArg("position", "position"),
				vectorArg("rotation", "rotation (degrees)"),
				vectorArg("scale", "scale"),
				mcp.WithString("color", mcp.Description("Object color (hex)")),
				mcp.WithBoolean("visible", mcp.Description("Object visibility")),
				recordArg("properties", "Additional properties"),
			),
			Verb: "updating object",
			Handle: func(ctx context.Context, args Args) (string, error) {
				objectID := args.String("objectId")
				changes := args.Pick("position", "rotation", "scale", "color", "visible", "properties")
				if _, err := t.Spline.UpdateObject(ctx, args.String("sceneId"), objectID, changes); err != nil {
					return "", err
				}
				return fmt.Sprintf("Object %s updated successfully", objectID), nil
			},
		},
		{
			Tool: mcp.NewTool("deleteObject",
				mcp.WithDescription("Delete an object from a scene"),
				sceneIDArg(),
				idArg("objectId", "Object ID"),
			),
			Verb: "deleting object",
			Handle: func(ctx context.Context, args Args) (string, error) {
				objectID := args.String("objectId")
				if _, err := t.Spline.DeleteObject(ctx, args.String("sceneId"), objectID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Object %s deleted successfully", objectID), nil
			},
		},
		{
			Tool: mcp.NewTool("generateObjectCode",
				mcp.WithDescription("Generate runtime code that manipulates an object"),
				sceneIDArg(),
				idArg("objectId", "Object ID"),
				mcp.WithString("action", mcp.Required(),
					mcp.Enum(codegen.ActionMove, codegen.ActionRotate, codegen.ActionScale,
						codegen.ActionColor, codegen.ActionVisibility, codegen.ActionEmitEvent),
					mcp.Description("Action to perform")),
				recordArg("params", "Action parameters"),
				readOnly(),
			),
			Verb: "generating code",
			Handle: func(ctx context.Context, args Args) (string, error) {
				return codegen.ObjectInteraction(args.String("sceneId"), args.String("objectId"),
					args.String("action"), codegen.Params(args.Map("params")))
			},
		},
	}
}
