package tools

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/spline"
)

var (
	parametricTypes = []string{
		"cube", "sphere", "cylinder", "cone", "torus",
		"plane", "circle", "rectangle", "triangle", "polygon",
		"star", "ring", "rounded-rectangle", "ellipse",
	}
	pivotPositions = []string{
		"center", "top", "bottom", "left", "right",
		"front", "back", "topLeft", "topRight", "bottomLeft", "bottomRight",
		"custom",
	}
	textAlignments = []string{"left", "center", "right"}
)

// transform copies the optional position, rotation and scale arguments.
func transform(args Args, body map[string]any) {
	if args.Has("position") {
		body["position"] = vector(args.Map("position"), 0)
	}
	if args.Has("rotation") {
		body["rotation"] = vector(args.Map("rotation"), 0)
	}
	if args.Has("scale") {
		body["scale"] = vector(args.Map("scale"), 1)
	}
}

func (t *toolset) modelingTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("createParametricObject",
				mcp.WithDescription("Create a parametric 2D or 3D primitive"),
				sceneIDArg(),
				mcp.WithString("type", mcp.Required(), mcp.Enum(parametricTypes...), mcp.Description("Type of parametric object")),
				mcp.WithObject("parameters", mcp.Required(), mcp.AdditionalProperties(true), mcp.Description("Parametric properties specific to the object type")),
				vectorArg("position", "Position in 3D space"),
				vectorArg("rotation", "Rotation in degrees"),
				vectorArg("scale", "Scale factors"),
				mcp.WithString("material", mcp.Description("Material ID to apply")),
			),
			Verb: "creating parametric object",
			Handle: func(ctx context.Context, args Args) (string, error) {
				kind := args.String("type")
				body := args.Pick("type", "parameters", "material")
				transform(args, body)

				path := spline.Path("scenes", args.String("sceneId"), "objects", "parametric")
				result, err := t.Spline.Request(ctx, http.MethodPost, path, body)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Created parametric %s object (ID: %s)", kind, fieldOf(result, "objectId")), nil
			},
		},
		{
			Tool: mcp.NewTool("updateParametricObject",
				mcp.WithDescription("Change the parametric properties of an object"),
				sceneIDArg(),
				idArg("objectId", "Object ID"),
				mcp.WithObject("parameters", mcp.Required(), mcp.AdditionalProperties(true), mcp.Description("Updated parametric properties")),
			),
			Verb: "updating parametric object",
			Handle: func(ctx context.Context, args Args) (string, error) {
				objectID := args.String("objectId")
				if _, err := t.Spline.UpdateObject(ctx, args.String("sceneId"), objectID, args.Pick("parameters")); err != nil {
					return "", err
				}
				return fmt.Sprintf("Updated parametric object parameters for %s", objectID), nil
			},
		},
		{
			Tool: mcp.NewTool("updateObjectPivot",
				mcp.WithDescription("Move the pivot point of an object"),
				sceneIDArg(),
				idArg("objectId", "Object ID"),
				mcp.WithString("pivotPosition", mcp.Required(), mcp.Enum(pivotPositions...),
					mcp.Description("Predefined pivot position or 'custom' for manual coordinates")),
				strictVectorArg("customPosition", "Custom pivot position (when pivotPosition is 'custom')", false),
			),
			Verb: "updating object pivot",
			Handle: func(ctx context.Context, args Args) (string, error) {
				objectID := args.String("objectId")
				pivot := args.String("pivotPosition")

				var value any = pivot
				if pivot == "custom" {
					if !args.Has("customPosition") {
						return "", fmt.Errorf("custom position must be provided when pivot position is 'custom'")
					}
					value = args["customPosition"]
				}
				if _, err := t.Spline.UpdateObject(ctx, args.String("sceneId"), objectID, map[string]any{"pivotPosition": value}); err != nil {
					return "", err
				}
				return fmt.Sprintf("Updated pivot for object %s to %s", objectID, pivot), nil
			},
		},
		{
			Tool: mcp.NewTool("create3DText",
				mcp.WithDescription("Create a 3D extruded or flat text object"),
				sceneIDArg(),
				idArg("text", "Text content"),
				mcp.WithString("font", mcp.Description("Font name")),
				mcp.WithNumber("size", mcp.Min(0), mcp.DefaultNumber(1), mcp.Description("Text size")),
				mcp.WithNumber("depth", mcp.Min(0), mcp.DefaultNumber(0.2), mcp.Description("Extrusion depth for 3D")),
				vectorArg("position", "Position in 3D space"),
				mcp.WithString("alignment", mcp.Enum(textAlignments...), mcp.DefaultString("left"), mcp.Description("Text alignment")),
				mcp.WithString("material", mcp.Description("Material ID to apply")),
				mcp.WithBoolean("is3D", mcp.DefaultBool(true), mcp.Description("Create 3D extruded text or flat 2D text")),
			),
			Verb: "creating text object",
			Handle: func(ctx context.Context, args Args) (string, error) {
				is3D := args.Bool("is3D", true)
				body := args.Pick("text", "font", "material")
				body["size"] = args.Float("size", 1)
				body["depth"] = args.Float("depth", 0.2)
				body["alignment"] = args.StringOr("alignment", "left")
				body["is3D"] = is3D
				transform(args, body)

				path := spline.Path("scenes", args.String("sceneId"), "objects", "text")
				result, err := t.Spline.Request(ctx, http.MethodPost, path, body)
				if err != nil {
					return "", err
				}
				dim := "2D"
				if is3D {
					dim = "3D"
				}
				return fmt.Sprintf("Created %s text object (ID: %s)", dim, fieldOf(result, "objectId")), nil
			},
		},
		{
			Tool: mcp.NewTool("updateTextObject",
				mcp.WithDescription("Change the content or typography of a text object"),
				sceneIDArg(),
				idArg("objectId", "Text Object ID"),
				mcp.WithString("text", mcp.Description("Updated text content")),
				mcp.WithString("font", mcp.Description("Updated font")),
				mcp.WithNumber("size", mcp.Min(0), mcp.Description("Updated text size")),
				mcp.WithNumber("depth", mcp.Min(0), mcp.Description("Updated extrusion depth")),
				mcp.WithString("alignment", mcp.Enum(textAlignments...), mcp.Description("Updated text alignment")),
			),
			Verb: "updating text object",
			Handle: func(ctx context.Context, args Args) (string, error) {
				objectID := args.String("objectId")
				changes := args.Pick("text", "font", "size", "depth", "alignment")
				if _, err := t.Spline.UpdateObject(ctx, args.String("sceneId"), objectID, changes); err != nil {
					return "", err
				}
				return fmt.Sprintf("Updated text object %s", objectID), nil
			},
		},
		{
			Tool: mcp.NewTool("import3DModel",
				mcp.WithDescription("Import a 3D model file from a URL"),
				sceneIDArg(),
				idArg("modelUrl", "URL of the 3D model to import"),
				mcp.WithString("modelFormat", mcp.Required(), mcp.Enum("gltf", "glb", "obj", "fbx", "dae", "stl"), mcp.Description("Format of the 3D model")),
				vectorArg("position", "Position in 3D space"),
				mcp.WithNumber("scale", mcp.Min(0), mcp.DefaultNumber(1), mcp.Description("Uniform scale factor")),
				mcp.WithBoolean("applyMaterials", mcp.DefaultBool(true), mcp.Description("Apply materials from the model")),
				mcp.WithBoolean("optimizeMesh", mcp.DefaultBool(true), mcp.Description("Optimize the mesh for Spline")),
			),
			Verb: "importing 3D model",
			Handle: func(ctx context.Context, args Args) (string, error) {
				modelURL := args.String("modelUrl")
				if err := checkURL(modelURL); err != nil {
					return "", err
				}
				format := args.String("modelFormat")
				body := map[string]any{
					"modelUrl":       modelURL,
					"modelFormat":    format,
					"scale":          args.Float("scale", 1),
					"applyMaterials": args.Bool("applyMaterials", true),
					"optimizeMesh":   args.Bool("optimizeMesh", true),
				}
				if args.Has("position") {
					body["position"] = vector(args.Map("position"), 0)
				}
				path := spline.Path("scenes", args.String("sceneId"), "objects", "import")
				result, err := t.Spline.Request(ctx, http.MethodPost, path, body)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Imported 3D model (%s) as object (ID: %s)", strings.ToUpper(format), fieldOf(result, "objectId")), nil
			},
		},
		{
			Tool: mcp.NewTool("export3DModel",
				mcp.WithDescription("Export a scene or one object as a 3D model file"),
				sceneIDArg(),
				mcp.WithString("objectId", mcp.Description("Object ID to export (omit for entire scene)")),
				mcp.WithString("format", mcp.Enum("gltf", "glb", "obj", "fbx", "usdz"), mcp.DefaultString("glb"), mcp.Description("Export format")),
				mcp.WithBoolean("includeTextures", mcp.DefaultBool(true), mcp.Description("Include textures in export")),
				mcp.WithBoolean("includeAnimations", mcp.DefaultBool(true), mcp.Description("Include animations in export")),
				mcp.WithString("quality", mcp.Enum("low", "medium", "high"), mcp.DefaultString("medium"), mcp.Description("Export quality")),
			),
			Verb: "exporting 3D model",
			Handle: func(ctx context.Context, args Args) (string, error) {
				format := args.StringOr("format", "glb")
				body := args.Pick("objectId")
				body["format"] = format
				body["includeTextures"] = args.Bool("includeTextures", true)
				body["includeAnimations"] = args.Bool("includeAnimations", true)
				body["quality"] = args.StringOr("quality", "medium")

				result, err := t.Spline.Request(ctx, http.MethodPost, spline.Path("scenes", args.String("sceneId"), "export"), body)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Exported 3D model in %s format. Download URL: %s", strings.ToUpper(format), fieldOf(result, "downloadUrl")), nil
			},
		},
		{
			Tool: mcp.NewTool("edit3DMesh",
				mcp.WithDescription("Run a mesh operation on an object"),
				sceneIDArg(),
				idArg("objectId", "Object ID"),
				mcp.WithString("operation", mcp.Required(),
					mcp.Enum("subdivide", "decimate", "smoothNormals", "flipNormals", "triangulate", "unwrapUVs", "resetUVs"),
					mcp.Description("Mesh operation to perform")),
				recordArg("parameters", "Operation-specific parameters"),
			),
			Verb: "editing 3D mesh",
			Handle: func(ctx context.Context, args Args) (string, error) {
				objectID := args.String("objectId")
				operation := args.String("operation")
				path := spline.Path("scenes", args.String("sceneId"), "objects", objectID, "mesh")
				if _, err := t.Spline.Request(ctx, http.MethodPost, path, args.Pick("operation", "parameters")); err != nil {
					return "", err
				}
				return fmt.Sprintf("Applied %s operation to mesh %s", operation, objectID), nil
			},
		},
	}
}
