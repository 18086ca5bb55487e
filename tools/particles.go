package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/spline"
)

var particleDefaults = map[string]any{
	"burstCount":         0,
	"loop":               true,
	"particleShape":      "sphere",
	"particleSize":       0.1,
	"sizeVariation":      0,
	"opacity":            1,
	"lifetime":           1,
	"lifetimeVariation":  0,
	"speed":              1,
	"speedVariation":     0,
	"directionVariation": 0,
	"drag":               0,
	"turbulence":         0,
	"turbulenceScale":    1,
	"collisionEnabled":   false,
	"bounciness":         0.5,
}

var forceDefaults = map[string]any{
	"strength": 1,
	"falloff":  "quadratic",
	"scale":    1,
	"speed":    1,
	"octaves":  3,
}

// withDefaults copies m and fills the absent keys from defaults.
func withDefaults(m map[string]any, defaults map[string]any) map[string]any {
	out := make(map[string]any, len(m)+len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (t *toolset) particleTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("createParticleSystem",
				mcp.WithDescription("Create a particle emitter"),
				sceneIDArg(),
				mcp.WithString("emitterType", mcp.Required(), mcp.Enum("point", "box", "sphere", "circle", "mesh"), mcp.Description("Type of particle emitter")),
				vectorArg("position", "Position in 3D space"),
				vectorArg("rotation", "Rotation in degrees"),
				mcp.WithObject("parameters", mcp.Required(), mcp.Description("Particle system parameters"), mcp.Properties(map[string]any{
					"rate":               numberProp("Particles per second"),
					"burstCount":         numberProp("Number of particles to emit in a burst"),
					"burstInterval":      numberProp("Interval between bursts (seconds)"),
					"duration":           numberProp("Duration of emission (seconds, 0 for continuous)"),
					"loop":               boolProp("Whether the emission loops"),
					"size":               objectProp("Emitter size for box/sphere emitters", vectorProps("size"), "x", "y", "z"),
					"radius":             numberProp("Radius for circle/sphere emitters"),
					"sourceMeshId":       stringProp("Source mesh ID for mesh emitters"),
					"emitFromVolume":     boolProp("Emit from volume or surface"),
					"particleShape":      enumProp("Particle shape", "point", "sphere", "cube", "custom"),
					"customMeshId":       stringProp("Custom mesh ID for custom particle shape"),
					"particleSize":       numberProp("Particle size"),
					"sizeVariation":      numberRange("Random variation in particle size", 0, 1),
					"startSize":          numberProp("Initial particle size"),
					"endSize":            numberProp("Final particle size"),
					"material":           stringProp("Material ID to apply to particles"),
					"color":              stringProp("Particle color (hex/rgb)"),
					"startColor":         stringProp("Initial particle color (hex/rgb)"),
					"endColor":           stringProp("Final particle color (hex/rgb)"),
					"opacity":            numberRange("Particle opacity", 0, 1),
					"startOpacity":       numberRange("Initial particle opacity", 0, 1),
					"endOpacity":         numberRange("Final particle opacity", 0, 1),
					"lifetime":           numberProp("Particle lifetime in seconds"),
					"lifetimeVariation":  numberRange("Random variation in particle lifetime", 0, 1),
					"speed":              numberProp("Particle movement speed"),
					"speedVariation":     numberRange("Random variation in particle speed", 0, 1),
					"direction":          objectProp("Base emission direction", vectorProps("direction")),
					"directionVariation": numberRange("Random variation in emission direction", 0, 1),
					"gravity":            objectProp("Gravity force", vectorProps("gravity")),
					"drag":               numberProp("Air drag coefficient"),
					"turbulence":         numberProp("Turbulence strength"),
					"turbulenceScale":    numberProp("Turbulence scale"),
					"collisionEnabled":   boolProp("Enable collision detection"),
					"collideWith":        arrayOf("Object IDs to collide with", stringProp("Object ID")),
					"bounciness":         numberRange("Collision bounciness", 0, 1),
				})),
			),
			Verb: "creating particle system",
			Handle: func(ctx context.Context, args Args) (string, error) {
				emitter := args.String("emitterType")
				params := withDefaults(args.Map("parameters"), particleDefaults)
				if _, ok := params["rate"]; !ok {
					return "", fmt.Errorf("%w: parameters.rate is required", ErrInvalidArguments)
				}
				body := map[string]any{
					"emitterType": emitter,
					"parameters":  params,
				}
				if args.Has("position") {
					body["position"] = vector(args.Map("position"), 0)
				}
				if args.Has("rotation") {
					body["rotation"] = vector(args.Map("rotation"), 0)
				}

				path := spline.Path("scenes", args.String("sceneId"), "objects", "particles")
				result, err := t.Spline.Request(ctx, http.MethodPost, path, body)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Created %s particle system (ID: %s)", emitter, fieldOf(result, "objectId")), nil
			},
		},
		{
			Tool: mcp.NewTool("updateParticleSystem",
				mcp.WithDescription("Change the parameters of a particle system"),
				sceneIDArg(),
				idArg("particleSystemId", "Particle system ID"),
				mcp.WithObject("parameters", mcp.Required(), mcp.AdditionalProperties(true), mcp.Description("Updated particle system parameters")),
			),
			Verb: "updating particle system",
			Handle: func(ctx context.Context, args Args) (string, error) {
				id := args.String("particleSystemId")
				changes := map[string]any{"parameters": args.Map("parameters")}
				if _, err := t.Spline.UpdateObject(ctx, args.String("sceneId"), id, changes); err != nil {
					return "", err
				}
				return fmt.Sprintf("Updated particle system %s", id), nil
			},
		},
		{
			Tool: mcp.NewTool("controlParticleSystem",
				mcp.WithDescription("Play, pause, stop or burst a particle system"),
				sceneIDArg(),
				idArg("particleSystemId", "Particle system ID"),
				mcp.WithString("action", mcp.Required(), mcp.Enum("play", "pause", "stop", "burst"), mcp.Description("Control action")),
				mcp.WithNumber("burstCount", mcp.Min(1), mcp.Description("Number of particles to emit in burst mode")),
			),
			Verb: "controlling particle system",
			Handle: func(ctx context.Context, args Args) (string, error) {
				id := args.String("particleSystemId")
				action := args.String("action")
				body := map[string]any{"action": action}
				if args.Has("burstCount") {
					body["burstCount"] = args.Int("burstCount", 1)
				}
				path := spline.Path("scenes", args.String("sceneId"), "objects", id, "control")
				if _, err := t.Spline.Request(ctx, http.MethodPost, path, body); err != nil {
					return "", err
				}
				return fmt.Sprintf("Particle system %s %s command sent", id, action), nil
			},
		},
		{
			Tool: mcp.NewTool("createParticleForce",
				mcp.WithDescription("Add a force field acting on a particle system"),
				sceneIDArg(),
				idArg("particleSystemId", "Particle system ID"),
				mcp.WithString("forceType", mcp.Required(), mcp.Enum("wind", "vortex", "attractor", "repeller", "turbulence"), mcp.Description("Type of force field")),
				vectorArg("position", "Position in 3D space"),
				mcp.WithObject("parameters", mcp.Required(), mcp.Description("Force field parameters"), mcp.Properties(map[string]any{
					"strength":  numberProp("Force strength"),
					"radius":    numberProp("Force field radius (0 for infinite)"),
					"falloff":   enumProp("Force falloff with distance", "none", "linear", "quadratic", "cubic"),
					"direction": objectProp("Wind direction vector", vectorProps("direction"), "x", "y", "z"),
					"axis":      objectProp("Vortex rotation axis", vectorProps("axis"), "x", "y", "z"),
					"scale":     numberProp("Turbulence scale"),
					"speed":     numberProp("Turbulence animation speed"),
					"octaves":   numberRange("Turbulence detail octaves", 1, 8),
				})),
			),
			Verb: "creating particle force",
			Handle: func(ctx context.Context, args Args) (string, error) {
				id := args.String("particleSystemId")
				forceType := args.String("forceType")
				body := map[string]any{
					"forceType":  forceType,
					"parameters": withDefaults(args.Map("parameters"), forceDefaults),
				}
				if args.Has("position") {
					body["position"] = vector(args.Map("position"), 0)
				}
				path := spline.Path("scenes", args.String("sceneId"), "objects", id, "forces")
				result, err := t.Spline.Request(ctx, http.MethodPost, path, body)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Added %s force to particle system %s (Force ID: %s)", forceType, id, fieldOf(result, "forceId")), nil
			},
		},
	}
}
