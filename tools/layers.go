package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/spline"
)

var (
	layerTypes = []string{
		"color", "lighting", "image", "video", "depth", "normal",
		"gradient", "noise", "fresnel", "rainbow", "toon",
		"outline", "glass", "matcap", "displace", "pattern",
	}
	blendModes = []string{
		"normal", "multiply", "screen", "overlay", "darken",
		"lighten", "colorDodge", "colorBurn", "hardLight",
		"softLight", "difference", "exclusion", "hue",
		"saturation", "color", "luminosity",
	}
)

func tilingArg(desc string) mcp.ToolOption {
	return mcp.WithObject("tiling", mcp.Description(desc), mcp.Properties(map[string]any{
		"x": map[string]any{"type": "number", "minimum": 0, "description": "X tiling"},
		"y": map[string]any{"type": "number", "minimum": 0, "description": "Y tiling"},
	}))
}

// layerParams picks keys from args, falling back to defaults for absent ones.
func layerParams(a Args, keys []string, defaults map[string]any) map[string]any {
	return withDefaults(a.Pick(keys...), defaults)
}

// layerConfigurator builds a configure*Layer tool. label names the layer kind
// in messages.
func (t *toolset) layerConfigurator(name, label, desc string, opts []mcp.ToolOption, params func(Args) map[string]any) Spec {
	base := []mcp.ToolOption{
		mcp.WithDescription(desc),
		sceneIDArg(),
		idArg("materialId", "Material ID"),
		idArg("layerId", "Layer ID"),
	}
	return Spec{
		Tool: mcp.NewTool(name, append(base, opts...)...),
		Verb: "configuring " + label + " layer",
		Handle: func(ctx context.Context, args Args) (string, error) {
			layerID := args.String("layerId")
			path := spline.Path("scenes", args.String("sceneId"), "materials", args.String("materialId"), "layers", layerID)
			if _, err := t.Spline.Request(ctx, http.MethodPut, path, map[string]any{"params": params(args)}); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s layer %s configured successfully", upperFirst(label), layerID), nil
		},
	}
}

func (t *toolset) layerTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("createLayeredMaterial",
				mcp.WithDescription("Create a material built from a stack of layers"),
				sceneIDArg(),
				idArg("name", "Material name"),
				mcp.WithString("baseType", mcp.Enum("standard", "physical", "basic", "lambert", "phong"),
					mcp.DefaultString("physical"), mcp.Description("Base material type")),
				mcp.WithArray("layers", mcp.Required(), mcp.MinItems(1), mcp.Description("Material layers"),
					mcp.Items(objectProp("Layer", map[string]any{
						"type":      enumProp("Layer type", layerTypes...),
						"name":      stringProp("Layer name"),
						"params":    recordProp("Layer-specific parameters"),
						"blendMode": enumProp("Layer blend mode", blendModes...),
						"opacity":   numberRange("Layer opacity", 0, 1),
						"maskLayer": numberProp("Index of layer to use as mask"),
					}, "type", "name"))),
				mcp.WithObject("baseParams", mcp.Description("Base material parameters"), mcp.Properties(map[string]any{
					"roughness":   numberRange("Base roughness", 0, 1),
					"metalness":   numberRange("Base metalness", 0, 1),
					"opacity":     numberRange("Base opacity", 0, 1),
					"transparent": boolProp("Whether material is transparent"),
					"side":        enumProp("Which sides to render", "front", "back", "double"),
					"wireframe":   boolProp("Whether to render as wireframe"),
					"flatShading": boolProp("Whether to use flat shading"),
				})),
			),
			Verb: "creating layered material",
			Handle: func(ctx context.Context, args Args) (string, error) {
				material := map[string]any{
					"name": args.String("name"),
					"type": args.StringOr("baseType", "physical"),
				}
				for k, v := range args.Map("baseParams") {
					material[k] = v
				}

				var layers []map[string]any
				for _, raw := range args.Slice("layers") {
					layers = append(layers, normalizeLayer(Args(toMap(raw))))
				}
				material["layers"] = layers

				result, err := t.Spline.CreateMaterial(ctx, args.String("sceneId"), material)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Layered material \"%s\" created successfully with ID: %s", args.String("name"), idOf(result)), nil
			},
		},
		{
			Tool: mcp.NewTool("addMaterialLayer",
				mcp.WithDescription("Add a layer to a material"),
				sceneIDArg(),
				idArg("materialId", "Material ID"),
				mcp.WithString("layerType", mcp.Required(), mcp.Enum(layerTypes...), mcp.Description("Layer type")),
				idArg("name", "Layer name"),
				recordArg("params", "Layer-specific parameters"),
				mcp.WithString("blendMode", mcp.Enum(blendModes...), mcp.DefaultString("normal"), mcp.Description("Layer blend mode")),
				mcp.WithNumber("opacity", mcp.Min(0), mcp.Max(1), mcp.DefaultNumber(1), mcp.Description("Layer opacity")),
				mcp.WithNumber("maskLayer", mcp.Description("Index of layer to use as mask")),
				mcp.WithNumber("position", mcp.Description("Position in layer stack (0 = bottom)")),
			),
			Verb: "adding material layer",
			Handle: func(ctx context.Context, args Args) (string, error) {
				materialID := args.String("materialId")
				layer := normalizeLayer(Args{
					"type":      args["layerType"],
					"name":      args["name"],
					"params":    args["params"],
					"blendMode": args["blendMode"],
					"opacity":   args["opacity"],
					"maskLayer": args["maskLayer"],
				})
				if args.Has("position") {
					layer["position"] = args.Int("position", 0)
				}

				path := spline.Path("scenes", args.String("sceneId"), "materials", materialID, "layers")
				if _, err := t.Spline.Request(ctx, http.MethodPost, path, layer); err != nil {
					return "", err
				}
				return fmt.Sprintf("Layer \"%s\" added successfully to material %s", args.String("name"), materialID), nil
			},
		},
		t.layerConfigurator("configureColorLayer", "color", "Configure a color layer", []mcp.ToolOption{
			idArg("color", "Color value (hex, rgb, or rgba)"),
			mcp.WithNumber("intensity", mcp.Min(0), mcp.DefaultNumber(1), mcp.Description("Color intensity")),
		}, func(a Args) map[string]any {
			return layerParams(a, []string{"color", "intensity"}, map[string]any{"intensity": 1.0})
		}),
		t.layerConfigurator("configureImageLayer", "image", "Configure an image layer", []mcp.ToolOption{
			idArg("imageUrl", "URL to image"),
			tilingArg("Image tiling"),
			mcp.WithObject("offset", mcp.Description("Image offset"), mcp.Properties(map[string]any{
				"x": numberProp("X offset"),
				"y": numberProp("Y offset"),
			})),
			mcp.WithNumber("rotation", mcp.DefaultNumber(0), mcp.Description("Rotation in degrees")),
		}, func(a Args) map[string]any {
			return layerParams(a, []string{"imageUrl", "tiling", "offset", "rotation"}, map[string]any{"rotation": 0.0})
		}),
		t.layerConfigurator("configureGradientLayer", "gradient", "Configure a gradient layer", []mcp.ToolOption{
			mcp.WithString("gradientType", mcp.Required(), mcp.Enum("linear", "radial", "angular"), mcp.Description("Gradient type")),
			mcp.WithArray("colors", mcp.Required(), mcp.MinItems(2), mcp.Description("Gradient colors"),
				mcp.Items(objectProp("Color stop", map[string]any{
					"color":    stringProp("Color value (hex, rgb, or rgba)"),
					"position": numberRange("Position in gradient (0-1)", 0, 1),
				}, "color", "position"))),
			mcp.WithNumber("rotation", mcp.DefaultNumber(0), mcp.Description("Rotation in degrees")),
			mcp.WithNumber("scale", mcp.DefaultNumber(1), mcp.Description("Gradient scale")),
		}, func(a Args) map[string]any {
			return layerParams(a, []string{"gradientType", "colors", "rotation", "scale"},
				map[string]any{"rotation": 0.0, "scale": 1.0})
		}),
		t.layerConfigurator("configureNormalLayer", "normal", "Configure a normal map layer", []mcp.ToolOption{
			idArg("normalMapUrl", "URL to normal map image"),
			mcp.WithNumber("intensity", mcp.Min(0), mcp.DefaultNumber(1), mcp.Description("Normal map intensity")),
			tilingArg("Normal map tiling"),
		}, func(a Args) map[string]any {
			return layerParams(a, []string{"normalMapUrl", "intensity", "tiling"}, map[string]any{"intensity": 1.0})
		}),
		t.layerConfigurator("configureFresnelLayer", "fresnel", "Configure a fresnel layer", []mcp.ToolOption{
			idArg("color", "Fresnel color (hex, rgb, or rgba)"),
			mcp.WithNumber("power", mcp.Min(0), mcp.DefaultNumber(2), mcp.Description("Fresnel power")),
			mcp.WithNumber("bias", mcp.Min(0), mcp.Max(1), mcp.DefaultNumber(0), mcp.Description("Fresnel bias")),
			mcp.WithNumber("intensity", mcp.Min(0), mcp.DefaultNumber(1), mcp.Description("Fresnel intensity")),
		}, func(a Args) map[string]any {
			return layerParams(a, []string{"color", "power", "bias", "intensity"},
				map[string]any{"power": 2.0, "bias": 0.0, "intensity": 1.0})
		}),
		t.layerConfigurator("configureGlassLayer", "glass", "Configure a glass layer", []mcp.ToolOption{
			mcp.WithString("tint", mcp.Description("Glass tint color (hex, rgb, or rgba)")),
			mcp.WithNumber("ior", mcp.Min(1), mcp.DefaultNumber(1.5), mcp.Description("Index of refraction")),
			mcp.WithNumber("roughness", mcp.Min(0), mcp.Max(1), mcp.DefaultNumber(0), mcp.Description("Glass roughness")),
			mcp.WithNumber("thickness", mcp.Min(0), mcp.DefaultNumber(0.1), mcp.Description("Glass thickness")),
		}, func(a Args) map[string]any {
			return layerParams(a, []string{"tint", "ior", "roughness", "thickness"},
				map[string]any{"ior": 1.5, "roughness": 0.0, "thickness": 0.1})
		}),
		t.layerConfigurator("configureMatcapLayer", "matcap", "Configure a matcap layer", []mcp.ToolOption{
			idArg("matcapImageUrl", "URL to matcap image"),
			mcp.WithNumber("intensity", mcp.Min(0), mcp.DefaultNumber(1), mcp.Description("Matcap intensity")),
		}, func(a Args) map[string]any {
			return layerParams(a, []string{"matcapImageUrl", "intensity"}, map[string]any{"intensity": 1.0})
		}),
		{
			Tool: mcp.NewTool("listMaterialLayers",
				mcp.WithDescription("List the layers of a material"),
				sceneIDArg(),
				idArg("materialId", "Material ID"),
				readOnly(),
			),
			Verb: "listing material layers",
			Handle: func(ctx context.Context, args Args) (string, error) {
				path := spline.Path("scenes", args.String("sceneId"), "materials", args.String("materialId"), "layers")
				layers, err := t.Spline.Request(ctx, http.MethodGet, path, nil)
				if err != nil {
					return "", err
				}
				return pretty(layers)
			},
		},
		{
			Tool: mcp.NewTool("deleteMaterialLayer",
				mcp.WithDescription("Remove a layer from a material"),
				sceneIDArg(),
				idArg("materialId", "Material ID"),
				idArg("layerId", "Layer ID"),
			),
			Verb: "deleting material layer",
			Handle: func(ctx context.Context, args Args) (string, error) {
				layerID := args.String("layerId")
				path := spline.Path("scenes", args.String("sceneId"), "materials", args.String("materialId"), "layers", layerID)
				if _, err := t.Spline.Request(ctx, http.MethodDelete, path, nil); err != nil {
					return "", err
				}
				return fmt.Sprintf("Layer %s deleted successfully", layerID), nil
			},
		},
		{
			Tool: mcp.NewTool("reorderMaterialLayers",
				mcp.WithDescription("Change the stacking order of material layers"),
				sceneIDArg(),
				idArg("materialId", "Material ID"),
				mcp.WithArray("layerOrder", mcp.Required(), mcp.MinItems(1), mcp.WithStringItems(),
					mcp.Description("New layer order (array of layer IDs)")),
			),
			Verb: "reordering material layers",
			Handle: func(ctx context.Context, args Args) (string, error) {
				path := spline.Path("scenes", args.String("sceneId"), "materials", args.String("materialId"), "layers", "order")
				if _, err := t.Spline.Request(ctx, http.MethodPut, path, map[string]any{"layerOrder": args.Strings("layerOrder")}); err != nil {
					return "", err
				}
				return "Material layers reordered successfully", nil
			},
		},
	}
}

// normalizeLayer fills the blend mode and opacity defaults of one layer.
func normalizeLayer(l Args) map[string]any {
	layer := l.Pick("type", "name", "params", "maskLayer")
	layer["blendMode"] = l.StringOr("blendMode", "normal")
	opacity := l.Float("opacity", 1)
	if opacity == 0 {
		opacity = 1
	}
	layer["opacity"] = opacity
	return layer
}

func toMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}
