package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

var materialTypes = []string{"standard", "physical", "basic", "lambert", "phong", "toon", "matcap", "normal"}

var materialFields = []string{
	"color", "roughness", "metalness", "opacity", "transparent", "wireframe",
	"emissive", "emissiveIntensity", "side", "flatShading", "properties",
}

// materialPropertyArgs declares the optional surface properties shared by
// createMaterial and updateMaterial.
func materialPropertyArgs() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("color", mcp.Description("Base color (hex)")),
		mcp.WithNumber("roughness", mcp.Min(0), mcp.Max(1), mcp.Description("Surface roughness (0-1)")),
		mcp.WithNumber("metalness", mcp.Min(0), mcp.Max(1), mcp.Description("Metalness factor (0-1)")),
		mcp.WithNumber("opacity", mcp.Min(0), mcp.Max(1), mcp.Description("Opacity (0-1)")),
		mcp.WithBoolean("transparent", mcp.Description("Whether the material is transparent")),
		mcp.WithBoolean("wireframe", mcp.Description("Whether to render as wireframe")),
		mcp.WithString("emissive", mcp.Description("Emissive color (hex)")),
		mcp.WithNumber("emissiveIntensity", mcp.Min(0), mcp.Description("Intensity of emission")),
		mcp.WithString("side", mcp.Enum("front", "back", "double"), mcp.Description("Which side to render")),
		mcp.WithBoolean("flatShading", mcp.Description("Use flat shading")),
		recordArg("properties", "Additional properties"),
	}
}

func (t *toolset) materialTools() []Spec {
	createOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Create a new material in a scene"),
		sceneIDArg(),
		idArg("name", "Material name"),
		mcp.WithString("type", mcp.Required(), mcp.Enum(materialTypes...), mcp.Description("Material type")),
	}, materialPropertyArgs()...)

	updateOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Update an existing material. Only the given fields change."),
		sceneIDArg(),
		idArg("materialId", "Material ID"),
	}, materialPropertyArgs()...)

	return []Spec{
		{
			Tool: mcp.NewTool("getMaterials",
				mcp.WithDescription("List the materials in a scene"),
				sceneIDArg(),
				readOnly(),
			),
			Verb: "retrieving materials",
			Handle: func(ctx context.Context, args Args) (string, error) {
				materials, err := t.Spline.GetMaterials(ctx, args.String("sceneId"))
				if err != nil {
					return "", err
				}
				return pretty(materials)
			},
		},
		{
			Tool: mcp.NewTool("getMaterialDetails",
				mcp.WithDescription("Get details of one material"),
				sceneIDArg(),
				idArg("materialId", "Material ID"),
				readOnly(),
			),
			Verb: "retrieving material details",
			Handle: func(ctx context.Context, args Args) (string, error) {
				material, err := t.Spline.GetMaterial(ctx, args.String("sceneId"), args.String("materialId"))
				if err != nil {
					return "", err
				}
				return pretty(material)
			},
		},
		{
			Tool: mcp.NewTool("createMaterial", createOpts...),
			Verb: "creating material",
			Handle: func(ctx context.Context, args Args) (string, error) {
				material := args.Pick(append([]string{"name", "type"}, materialFields...)...)
				result, err := t.Spline.CreateMaterial(ctx, args.String("sceneId"), material)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Material created successfully with ID: %s", idOf(result)), nil
			},
		},
		{
			Tool: mcp.NewTool("updateMaterial", updateOpts...),
			Verb: "updating material",
			Handle: func(ctx context.Context, args Args) (string, error) {
				materialID := args.String("materialId")
				changes := args.Pick(materialFields...)
				if _, err := t.Spline.UpdateMaterial(ctx, args.String("sceneId"), materialID, changes); err != nil {
					return "", err
				}
				return fmt.Sprintf("Material %s updated successfully", materialID), nil
			},
		},
		{
			Tool: mcp.NewTool("applyMaterial",
				mcp.WithDescription("Apply a material to an object"),
				sceneIDArg(),
				idArg("objectId", "Object ID"),
				idArg("materialId", "Material ID"),
			),
			Verb: "applying material",
			Handle: func(ctx context.Context, args Args) (string, error) {
				objectID, materialID := args.String("objectId"), args.String("materialId")
				if _, err := t.Spline.ApplyMaterial(ctx, args.String("sceneId"), objectID, materialID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Material %s applied to object %s successfully", materialID, objectID), nil
			},
		},
	}
}
