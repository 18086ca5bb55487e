package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/spline"
)

var (
	bodyTypes      = []string{"dynamic", "static", "kinematic"}
	collisionShape = []string{"auto", "box", "sphere", "capsule", "cylinder", "convex", "mesh"}
)

// Vector is an {x, y, z} triple in schema-derived inputs.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// JointInput is the argument shape of createJoint.
type JointInput struct {
	SceneID    string          `json:"sceneId" jsonschema:"minLength=1" jsonschema_description:"Scene ID"`
	JointType  string          `json:"jointType" jsonschema:"enum=fixed,enum=hinge,enum=ball,enum=slider,enum=distance,enum=spring,enum=prismatic,enum=universal" jsonschema_description:"Joint type"`
	BodyAID    string          `json:"bodyAId" jsonschema:"minLength=1" jsonschema_description:"First body object ID"`
	BodyBID    string          `json:"bodyBId" jsonschema:"minLength=1" jsonschema_description:"Second body object ID"`
	Parameters JointParameters `json:"parameters" jsonschema_description:"Joint-specific parameters"`
}

type JointParameters struct {
	AnchorA          *Vector  `json:"anchorA,omitempty" jsonschema_description:"Connection point on first body (local space)"`
	AnchorB          *Vector  `json:"anchorB,omitempty" jsonschema_description:"Connection point on second body (local space)"`
	Axis             *Vector  `json:"axis,omitempty" jsonschema_description:"Joint axis direction"`
	LowerLimit       *float64 `json:"lowerLimit,omitempty" jsonschema_description:"Lower movement/rotation limit"`
	UpperLimit       *float64 `json:"upperLimit,omitempty" jsonschema_description:"Upper movement/rotation limit"`
	Stiffness        *float64 `json:"stiffness,omitempty" jsonschema:"minimum=0" jsonschema_description:"Spring stiffness"`
	Damping          *float64 `json:"damping,omitempty" jsonschema:"minimum=0" jsonschema_description:"Spring damping"`
	EquilibriumPoint *float64 `json:"equilibriumPoint,omitempty" jsonschema_description:"Spring equilibrium point"`
	Axis1            *Vector  `json:"axis1,omitempty" jsonschema_description:"First axis for universal joint"`
	Axis2            *Vector  `json:"axis2,omitempty" jsonschema_description:"Second axis for universal joint"`
	EnableMotor      bool     `json:"enableMotor,omitempty" jsonschema_description:"Enable motor"`
	MotorSpeed       *float64 `json:"motorSpeed,omitempty" jsonschema_description:"Motor speed"`
	MaxMotorForce    *float64 `json:"maxMotorForce,omitempty" jsonschema:"minimum=0" jsonschema_description:"Maximum motor force/torque"`
	CollideConnected bool     `json:"collideConnected,omitempty" jsonschema_description:"Whether the connected bodies can collide"`
}

// strictVectorArg declares a vector whose three axes must all be given.
func strictVectorArg(name, desc string, required bool) mcp.ToolOption {
	return func(t *mcp.Tool) {
		t.InputSchema.Properties[name] = objectProp(desc, vectorProps(name), "x", "y", "z")
		if required {
			t.InputSchema.Required = append(t.InputSchema.Required, name)
		}
	}
}

// physicsDefaults are applied to the optional parameters of addPhysicsBody.
var physicsDefaults = map[string]any{
	"friction":       0.5,
	"restitution":    0.2,
	"linearDamping":  0.01,
	"angularDamping": 0.01,
	"collisionGroup": 0,
	"isTrigger":      false,
	"fixedRotation":  false,
	"lockAxisX":      false,
	"lockAxisY":      false,
	"lockAxisZ":      false,
	"ccdEnabled":     false,
	"sleepThreshold": 0.005,
	"autoSleep":      true,
}

func (t *toolset) physicsPath(args Args, rest ...string) string {
	segments := append([]string{"scenes", args.String("sceneId"), "objects", args.String("objectId"), "physics"}, rest...)
	return spline.Path(segments...)
}

func (t *toolset) physicsTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("addPhysicsBody",
				mcp.WithDescription("Give an object a physics body"),
				sceneIDArg(),
				idArg("objectId", "Object ID"),
				mcp.WithString("bodyType", mcp.Required(), mcp.Enum(bodyTypes...), mcp.Description("Physics body type")),
				mcp.WithString("shape", mcp.Enum(collisionShape...), mcp.DefaultString("auto"), mcp.Description("Collision shape type")),
				mcp.WithNumber("mass", mcp.Min(0), mcp.DefaultNumber(1), mcp.Description("Mass in kg (0 for static bodies)")),
				mcp.WithObject("parameters", mcp.Description("Physics body parameters"), mcp.Properties(map[string]any{
					"friction":        numberRange("Friction coefficient", 0, 1),
					"restitution":     numberRange("Bounciness/restitution", 0, 1),
					"linearDamping":   numberRange("Linear damping", 0, 1),
					"angularDamping":  numberRange("Angular damping", 0, 1),
					"linearVelocity":  objectProp("Initial linear velocity", vectorProps("velocity")),
					"angularVelocity": objectProp("Initial angular velocity", vectorProps("angular velocity")),
					"collisionGroup":  numberRange("Collision group (0-31)", 0, 31),
					"collidesWith":    arrayOf("Collision groups to collide with (0-31)", numberRange("Collision group", 0, 31)),
					"isTrigger":       boolProp("Is this a trigger volume"),
					"fixedRotation":   boolProp("Lock rotation"),
					"lockAxisX":       boolProp("Lock movement along X axis"),
					"lockAxisY":       boolProp("Lock movement along Y axis"),
					"lockAxisZ":       boolProp("Lock movement along Z axis"),
					"ccdEnabled":      boolProp("Enable continuous collision detection"),
					"sleepThreshold":  numberProp("Sleep velocity threshold"),
					"autoSleep":       boolProp("Enable automatic sleeping"),
				})),
			),
			Verb: "adding physics body",
			Handle: func(ctx context.Context, args Args) (string, error) {
				bodyType := args.String("bodyType")
				body := map[string]any{
					"bodyType": bodyType,
					"shape":    args.StringOr("shape", "auto"),
					"mass":     args.Float("mass", 1),
				}
				if args.Has("parameters") {
					body["parameters"] = withDefaults(args.Map("parameters"), physicsDefaults)
				}
				if _, err := t.Spline.Request(ctx, http.MethodPost, t.physicsPath(args), body); err != nil {
					return "", err
				}
				return fmt.Sprintf("Added %s physics body to object %s", bodyType, args.String("objectId")), nil
			},
		},
		{
			Tool: mcp.NewTool("updatePhysicsBody",
				mcp.WithDescription("Change the physics body of an object"),
				sceneIDArg(),
				idArg("objectId", "Object ID"),
				mcp.WithString("bodyType", mcp.Enum(bodyTypes...), mcp.Description("Physics body type")),
				mcp.WithNumber("mass", mcp.Min(0), mcp.Description("Mass in kg")),
				recordArg("parameters", "Updated physics parameters"),
			),
			Verb: "updating physics body",
			Handle: func(ctx context.Context, args Args) (string, error) {
				objectID := args.String("objectId")
				changes := map[string]any{"physics": args.Pick("bodyType", "mass", "parameters")}
				if _, err := t.Spline.UpdateObject(ctx, args.String("sceneId"), objectID, changes); err != nil {
					return "", err
				}
				return fmt.Sprintf("Updated physics body for object %s", objectID), nil
			},
		},
		{
			Tool: mcp.NewTool("applyForce",
				mcp.WithDescription("Apply a force or impulse to a physics body"),
				sceneIDArg(),
				idArg("objectId", "Physics body object ID"),
				strictVectorArg("force", "Force vector to apply", true),
				strictVectorArg("position", "Position to apply force (if different from center of mass)", false),
				mcp.WithBoolean("impulse", mcp.DefaultBool(false), mcp.Description("Apply as impulse (instantaneous)")),
			),
			Verb: "applying force",
			Handle: func(ctx context.Context, args Args) (string, error) {
				impulse := args.Bool("impulse", false)
				body := args.Pick("force", "position")
				body["impulse"] = impulse
				if _, err := t.Spline.Request(ctx, http.MethodPost, t.physicsPath(args, "force"), body); err != nil {
					return "", err
				}
				kind := "force"
				if impulse {
					kind = "impulse"
				}
				return fmt.Sprintf("Applied %s to object %s", kind, args.String("objectId")), nil
			},
		},
		{
			Tool: mcp.NewTool("applyTorque",
				mcp.WithDescription("Apply a torque or angular impulse to a physics body"),
				sceneIDArg(),
				idArg("objectId", "Physics body object ID"),
				strictVectorArg("torque", "Torque vector to apply", true),
				mcp.WithBoolean("impulse", mcp.DefaultBool(false), mcp.Description("Apply as impulse (instantaneous)")),
			),
			Verb: "applying torque",
			Handle: func(ctx context.Context, args Args) (string, error) {
				impulse := args.Bool("impulse", false)
				body := map[string]any{"torque": args["torque"], "impulse": impulse}
				if _, err := t.Spline.Request(ctx, http.MethodPost, t.physicsPath(args, "torque"), body); err != nil {
					return "", err
				}
				kind := "torque"
				if impulse {
					kind = "impulse"
				}
				return fmt.Sprintf("Applied %s to object %s", kind, args.String("objectId")), nil
			},
		},
		{
			Tool: mcp.NewTool("createJoint",
				mcp.WithDescription("Connect two physics bodies with a joint"),
				mcp.WithInputSchema[JointInput](),
			),
			Verb: "creating joint",
			Handle: func(ctx context.Context, args Args) (string, error) {
				var in JointInput
				if err := args.Bind(&in); err != nil {
					return "", err
				}
				path := spline.Path("scenes", in.SceneID, "physics", "joints")
				result, err := t.Spline.Request(ctx, http.MethodPost, path, map[string]any{
					"jointType":  in.JointType,
					"bodyAId":    in.BodyAID,
					"bodyBId":    in.BodyBID,
					"parameters": in.Parameters,
				})
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Created %s joint between objects %s and %s (Joint ID: %s)",
					in.JointType, in.BodyAID, in.BodyBID, fieldOf(result, "jointId")), nil
			},
		},
		{
			Tool: mcp.NewTool("updatePhysicsWorld",
				mcp.WithDescription("Configure the physics simulation of a scene"),
				sceneIDArg(),
				vectorArg("gravity", "Gravity vector"),
				mcp.WithNumber("timeScale", mcp.Min(0), mcp.DefaultNumber(1), mcp.Description("Physics simulation time scale")),
				mcp.WithNumber("fixedTimeStep", mcp.Min(0), mcp.DefaultNumber(1.0/60), mcp.Description("Fixed time step for simulation")),
				mcp.WithNumber("maxSubSteps", mcp.Min(1), mcp.DefaultNumber(10), mcp.Description("Maximum physics sub-steps")),
				mcp.WithBoolean("enablePhysics", mcp.Description("Enable/disable physics simulation")),
			),
			Verb: "updating physics world",
			Handle: func(ctx context.Context, args Args) (string, error) {
				sceneID := args.String("sceneId")
				world := map[string]any{
					"timeScale":     args.Float("timeScale", 1),
					"fixedTimeStep": args.Float("fixedTimeStep", 1.0/60),
					"maxSubSteps":   args.Int("maxSubSteps", 10),
				}
				if args.Has("gravity") {
					world["gravity"] = vectorOr(args.Map("gravity"), 0, -9.81, 0)
				}
				if args.Has("enablePhysics") {
					world["enablePhysics"] = args.Bool("enablePhysics", true)
				}
				if _, err := t.Spline.Request(ctx, http.MethodPost, spline.Path("scenes", sceneID, "physics", "world"), world); err != nil {
					return "", err
				}
				return fmt.Sprintf("Updated physics world parameters for scene %s", sceneID), nil
			},
		},
	}
}
