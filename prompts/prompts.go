package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Spec is one prompt template: its declaration and a renderer producing the
// single user message.
type Spec struct {
	Prompt mcp.Prompt
	Render func(a *args) string
}

type vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v vector) String() string {
	b, _ := json.Marshal(v)
	return string(b)
}

func arg(name, desc string, required bool) mcp.PromptOption {
	opts := []mcp.ArgumentOption{mcp.ArgumentDescription(desc)}
	if required {
		opts = append(opts, mcp.RequiredArgument())
	}
	return mcp.WithArgument(name, opts...)
}

var sceneArg = arg("sceneId", "Scene ID", true)

// Catalog returns every prompt in registration order.
func Catalog() []Spec {
	return []Spec{
		createCube(),
		createBasicScene(),
		createApplyMaterial(),
		createRotationAnimation(),
		createColorChangeInteraction(),
		createAPIInteraction(),
		createInteractiveScene(),
		createAnimationSequence(),
		createReactIntegration(),
		setupDataVisualization(),
	}
}

// Get renders the named prompt directly.
func Get(ctx context.Context, name string, arguments map[string]string) (*mcp.GetPromptResult, error) {
	for _, spec := range Catalog() {
		if spec.Prompt.Name == name {
			return handler(spec)(ctx, mcp.GetPromptRequest{Params: mcp.GetPromptParams{Name: name, Arguments: arguments}})
		}
	}
	return nil, fmt.Errorf("prompt %s not found", name)
}

// Register adds the catalog to s.
func Register(s *server.MCPServer) {
	for _, spec := range Catalog() {
		s.AddPrompt(spec.Prompt, handler(spec))
	}
}

func handler(spec Spec) server.PromptHandlerFunc {
	return func(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		a := newArgs(req.Params.Arguments)
		text := spec.Render(a)
		if err := a.Err(); err != nil {
			return nil, err
		}
		return mcp.NewGetPromptResult(spec.Prompt.Description, []mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
		}), nil
	}
}

func createCube() Spec {
	return Spec{
		Prompt: mcp.NewPrompt("create-cube",
			mcp.WithPromptDescription("Create a cube with a name, size, color and position"),
			sceneArg,
			arg("name", "Cube name", false),
			arg("size", "Cube size", false),
			arg("color", "Cube color (hex)", false),
			arg("position", `Cube position as JSON, e.g. {"x":0,"y":1,"z":0}`, false),
		),
		Render: func(a *args) string {
			sceneID := a.required("sceneId")
			size := num(a.number("size", 1))
			var pos vector
			a.decode("position", &pos)

			return fmt.Sprintf(`Create a cube in scene %s with these properties:
- Name: %s
- Size: %s
- Color: %s
- Position: %s

Use the createObject tool to create a cube with these properties. Set the scale to %s for all three dimensions.`,
				sceneID, a.str("name", "New Cube"), size, a.str("color", "#ffffff"), pos, size)
		},
	}
}

type sceneObject struct {
	Type     string  `json:"type"`
	Name     string  `json:"name"`
	Position *vector `json:"position"`
	Color    string  `json:"color,omitempty"`
}

var basicShapes = []string{"cube", "sphere", "cylinder", "plane"}

func createBasicScene() Spec {
	return Spec{
		Prompt: mcp.NewPrompt("create-basic-scene",
			mcp.WithPromptDescription("Populate a scene with a list of basic objects"),
			sceneArg,
			arg("objects", `Objects to create as a JSON array of {"type","name","position":{"x","y","z"},"color"}`, true),
			arg("includeLight", "Whether to include a directional light (default true)", false),
		),
		Render: func(a *args) string {
			sceneID := a.required("sceneId")
			var objects []sceneObject
			if !a.decode("objects", &objects) {
				a.required("objects")
			}
			if a.Err() == nil && len(objects) == 0 {
				a.fail("objects must contain at least one object")
			}

			var list strings.Builder
			for i, obj := range objects {
				switch {
				case !slices.Contains(basicShapes, obj.Type):
					a.fail("objects[%d].type must be one of %s", i, strings.Join(basicShapes, ", "))
				case obj.Name == "":
					a.fail("objects[%d].name is required", i)
				case obj.Position == nil:
					a.fail("objects[%d].position is required", i)
				}
				if obj.Position == nil {
					obj.Position = &vector{}
				}
				color := obj.Color
				if color == "" {
					color = "#ffffff"
				}
				fmt.Fprintf(&list, "\nObject %d:\n- Type: %s\n- Name: %s\n- Position: %s\n- Color: %s\n",
					i+1, obj.Type, obj.Name, obj.Position, color)
			}

			light := ""
			if a.boolean("includeLight", true) {
				light = "Also create a directional light to illuminate the scene."
			}
			return fmt.Sprintf(`Create a basic scene in Spline with these objects in scene %s:
%s
%s

Use the createObject tool to create each object one by one with the specified properties.`,
				sceneID, list.String(), light)
		},
	}
}

func createApplyMaterial() Spec {
	return Spec{
		Prompt: mcp.NewPrompt("create-apply-material",
			mcp.WithPromptDescription("Create a material and apply it to an object"),
			sceneArg,
			arg("objectId", "Object ID", true),
			arg("materialType", "standard, physical, basic, lambert or phong (default physical)", false),
			arg("materialName", "Material name", false),
			arg("color", "Material color (hex)", false),
			arg("roughness", "Roughness (0-1)", false),
			arg("metalness", "Metalness (0-1)", false),
		),
		Render: func(a *args) string {
			sceneID := a.required("sceneId")
			objectID := a.required("objectId")
			kind := a.enum("materialType", "physical", "standard", "physical", "basic", "lambert", "phong")

			return fmt.Sprintf(`Create a new %s material in scene %s with these properties:
- Name: %s
- Color: %s
- Roughness: %s
- Metalness: %s

Then apply this material to the object with ID %s.

First, use the createMaterial tool to create the material with the specified properties, then use the applyMaterial tool to apply it to the object.`,
				kind, sceneID, a.str("materialName", "New Material"), a.str("color", "#ffffff"),
				num(a.between("roughness", 0.5, 0, 1)), num(a.between("metalness", 0, 0, 1)), objectID)
		},
	}
}

var triggerEvents = map[string]string{
	"click":      "mouseDown",
	"hover":      "mouseOver",
	"sceneStart": "sceneStart",
}

func createRotationAnimation() Spec {
	return Spec{
		Prompt: mcp.NewPrompt("create-rotation-animation",
			mcp.WithPromptDescription("Rotate an object when an event fires"),
			sceneArg,
			arg("objectId", "Object ID", true),
			arg("axis", "Rotation axis: x, y or z (default y)", false),
			arg("duration", "Animation duration in ms, at least 100 (default 2000)", false),
			arg("degrees", "Rotation degrees (default 360)", false),
			arg("easing", "linear, easeIn, easeOut or easeInOut (default easeInOut)", false),
			arg("triggerOn", "click, hover or sceneStart (default click)", false),
		),
		Render: func(a *args) string {
			sceneID := a.required("sceneId")
			objectID := a.required("objectId")
			axis := a.enum("axis", "y", "x", "y", "z")
			duration := a.duration("duration", 2000)
			degrees := num(a.number("degrees", 360))
			easing := a.enum("easing", "easeInOut", "linear", "easeIn", "easeOut", "easeInOut")
			trigger := a.enum("triggerOn", "click", "click", "hover", "sceneStart")

			return fmt.Sprintf(`Create a rotation animation for object %[1]s in scene %[2]s with these properties:
- Rotation Axis: %[3]s
- Duration: %[4]d ms
- Rotation: %[5]s degrees
- Easing: %[6]s
- Trigger: %[7]s

Follow these steps:
1. Create a new state that changes the %[3]s rotation of the object by %[5]s degrees
2. Set the transition duration to %[4]d ms and the easing to %[6]s
3. Create a new event of type %[8]s that triggers this state
4. If %[7]s is 'click' or 'hover', make the event specific to this object

Use the createState tool first, then the createEvent tool to set up the animation.`,
				objectID, sceneID, axis, duration, degrees, easing, trigger, triggerEvents[trigger])
		},
	}
}

func createColorChangeInteraction() Spec {
	return Spec{
		Prompt: mcp.NewPrompt("create-color-change-interaction",
			mcp.WithPromptDescription("Change an object's color on hover and click"),
			sceneArg,
			arg("objectId", "Object ID", true),
			arg("defaultColor", "Default color (hex)", false),
			arg("hoverColor", "Color on hover (hex)", false),
			arg("clickColor", "Color on click (hex)", false),
			arg("duration", "Transition duration in ms, at least 100 (default 500)", false),
		),
		Render: func(a *args) string {
			sceneID := a.required("sceneId")
			objectID := a.required("objectId")
			def := a.str("defaultColor", "#ffffff")
			hover := a.str("hoverColor", "#ff0000")
			click := a.str("clickColor", "#00ff00")
			duration := a.duration("duration", 500)

			return fmt.Sprintf(`Create an interactive color change effect for object %[1]s in scene %[2]s with these properties:
- Default Color: %[3]s
- Hover Color: %[4]s
- Click Color: %[5]s
- Transition Duration: %[6]d ms

Follow these steps:
1. Create three states:
   - A 'default' state with the object's color set to %[3]s
   - A 'hover' state with the object's color set to %[4]s
   - A 'click' state with the object's color set to %[5]s
   - Set the transition duration for all states to %[6]d ms

2. Create three events:
   - A 'mouseOver' event that triggers the 'hover' state
   - A 'mouseDown' event that triggers the 'click' state
   - A 'mouseOut' event that triggers the 'default' state
   - Make all events specific to this object

Use the createState tool multiple times to create each state, then use the createEvent tool multiple times to create each event.`,
				objectID, sceneID, def, hover, click, duration)
		},
	}
}

type responseMapping struct {
	Field          string `json:"field"`
	TargetObjectID string `json:"targetObjectId"`
	Property       string `json:"property"`
}

func createAPIInteraction() Spec {
	return Spec{
		Prompt: mcp.NewPrompt("create-api-interaction",
			mcp.WithPromptDescription("Drive object properties from an external API response"),
			sceneArg,
			arg("apiUrl", "API endpoint URL", true),
			arg("method", "GET or POST (default GET)", false),
			arg("triggerObjectId", "Object ID that triggers the API call", false),
			arg("responseMapping", `JSON array of {"field","targetObjectId","property"} mappings`, true),
		),
		Render: func(a *args) string {
			sceneID := a.required("sceneId")
			apiURL := a.url("apiUrl")
			method := a.enum("method", "GET", "GET", "POST")
			triggerID := a.str("triggerObjectId", "")

			var mappings []responseMapping
			if !a.decode("responseMapping", &mappings) {
				a.required("responseMapping")
			}
			if a.Err() == nil && len(mappings) == 0 {
				a.fail("responseMapping must contain at least one mapping")
			}

			var text strings.Builder
			for i, m := range mappings {
				fmt.Fprintf(&text, "\nMapping %d:\n- Response Field: %s\n- Target Object: %s\n- Property to Update: %s",
					i+1, m.Field, m.TargetObjectID, m.Property)
			}

			trigger := "The API should be called when the scene starts."
			step := "Configure the API to be called on scene start"
			if triggerID != "" {
				trigger = fmt.Sprintf("The API should be triggered when object %s is clicked.", triggerID)
				step = fmt.Sprintf("Create a mouseDown event for object %s that triggers the API call", triggerID)
			}

			return fmt.Sprintf(`Create an API interaction in scene %s with these properties:
- API URL: %s
- Method: %s
- %s
- Response mappings:%s

Follow these steps:
1. Use the configureApi tool to set up the API connection
2. Map the API response fields to variables that will affect the specified object properties
3. %s

The goal is to have the API response affect properties of objects in the scene based on the mappings.`,
				sceneID, apiURL, method, trigger, text.String(), step)
		},
	}
}

var interactivityFeatures = map[string]string{
	"basic": `
- Basic mouse interactions (click, hover)
- Simple property changes
- Accessing object properties`,
	"advanced": `
- Advanced mouse and keyboard interactions
- Custom animations and transitions
- Object manipulation (position, rotation, scale)
- Material modifications
- Camera controls
- Physics interactions (if applicable)`,
}

var formatDescriptions = map[string]string{
	"vanilla": "vanilla JavaScript using the @splinetool/runtime package",
	"react":   "React components using @splinetool/react-spline",
	"next":    "Next.js components using @splinetool/react-spline/next",
}

func createInteractiveScene() Spec {
	return Spec{
		Prompt: mcp.NewPrompt("create-interactive-scene",
			mcp.WithPromptDescription("Generate and explain interactive runtime code for a scene"),
			sceneArg,
			arg("interactivity", "basic or advanced (default basic)", false),
			arg("format", "vanilla, react or next (default vanilla)", false),
			arg("responsive", "Whether to make the scene responsive (default true)", false),
		),
		Render: func(a *args) string {
			sceneID := a.required("sceneId")
			level := a.enum("interactivity", "basic", "basic", "advanced")
			format := a.enum("format", "vanilla", "vanilla", "react", "next")
			sizing := "fixed-size"
			if a.boolean("responsive", true) {
				sizing = "responsive"
			}

			return fmt.Sprintf(`Create an interactive %s scene for Spline scene ID "%s" using %s.

I want the code to be %s and include:
%s

First, use the appropriate tool to generate the code (generateRuntimeCode, generateReactComponent, or generateSceneInteractionCode). Then explain the key parts of the code and how I can integrate it into my project.

Please provide detailed instructions on:
1. How to set up the project with necessary dependencies
2. How to integrate the code
3. How to customize the interactions further

I want to understand how to work with Spline's runtime API to create truly interactive 3D experiences.`,
				level, sceneID, formatDescriptions[format], sizing, interactivityFeatures[level])
		},
	}
}

var sequenceDescriptions = map[string]string{
	"parallel":      "all objects animate simultaneously",
	"sequential":    "objects animate one after another in sequence",
	"choreographed": "objects animate in a custom choreographed pattern with varying timings and effects",
}

func createAnimationSequence() Spec {
	return Spec{
		Prompt: mcp.NewPrompt("create-animation-sequence",
			mcp.WithPromptDescription("Animate several objects as a sequence"),
			sceneArg,
			arg("objectNames", "Comma-separated list of object names", true),
			arg("sequenceType", "parallel, sequential or choreographed (default sequential)", false),
			arg("duration", "Total animation duration in ms, at least 100 (default 2000)", false),
		),
		Render: func(a *args) string {
			sceneID := a.required("sceneId")
			a.required("objectNames")
			kind := a.enum("sequenceType", "sequential", "parallel", "sequential", "choreographed")
			duration := a.duration("duration", 2000)

			var objects strings.Builder
			for i, name := range strings.Split(a.str("objectNames", ""), ",") {
				fmt.Fprintf(&objects, "- Object %d: \"%s\"\n", i+1, strings.TrimSpace(name))
			}

			return fmt.Sprintf(`Create an animation sequence for Spline scene ID "%s" where %s.

Objects to animate:
%s
Total animation duration: %dms

Please help me create a complex animation sequence using the Spline runtime API. I want a solution that:
1. Uses the official @splinetool/runtime package
2. Creates smooth, professional animations
3. Includes proper easing functions
4. Is reusable and customizable

Use the generateComprehensiveExample tool or other appropriate tools to create this animation sequence, and then explain how it works and how I can modify it.`,
				sceneID, sequenceDescriptions[kind], objects.String(), duration)
		},
	}
}

// reactFeatures is ordered; the rendered list follows this order, not the
// order the caller gave.
var reactFeatures = []struct{ name, text string }{
	{"responsiveness", "Fully responsive design that works on all screen sizes"},
	{"interactivity", "Rich interactivity with mouse and keyboard controls"},
	{"loading", "Optimized loading with proper loading states and fallbacks"},
	{"controls", "Custom UI controls for manipulating the 3D scene"},
	{"api-integration", "Integration with external APIs for dynamic data"},
	{"performance", "Performance optimizations for smooth rendering"},
}

func createReactIntegration() Spec {
	return Spec{
		Prompt: mcp.NewPrompt("create-react-integration",
			mcp.WithPromptDescription("Build a full React, Next or Remix integration for a scene"),
			sceneArg,
			arg("framework", "react, next or remix (default react)", false),
			arg("features", "Comma-separated features: responsiveness, interactivity, loading, controls, api-integration, performance", true),
		),
		Render: func(a *args) string {
			sceneID := a.required("sceneId")
			framework := a.enum("framework", "react", "react", "next", "remix")
			features := a.list("features")
			if len(features) == 0 {
				a.required("features")
			}

			known := make([]string, len(reactFeatures))
			for i, f := range reactFeatures {
				known[i] = f.name
			}
			for _, f := range features {
				if !slices.Contains(known, f) {
					a.fail("features must be drawn from %s", strings.Join(known, ", "))
				}
			}

			var text strings.Builder
			for _, f := range reactFeatures {
				if slices.Contains(features, f.name) {
					fmt.Fprintf(&text, "- %s\n", f.text)
				}
			}

			return fmt.Sprintf(`Create a complete %[1]s integration for Spline scene ID "%[2]s" with these features:

%[3]s

I want to go beyond basic embedding and create a truly interactive and professional integration. Please:

1. Generate the complete component code using generateReactComponent
2. Show me how to properly structure and optimize the component
3. Explain how to integrate it with %[4]s routing and data fetching
4. Provide tips for improving performance and user experience

I'm looking for a solution that feels seamless with my %[4]s application and leverages the full power of Spline's runtime.`,
				strings.ToUpper(framework[:1])+framework[1:], sceneID, text.String(), framework)
		},
	}
}

var dataSets = map[string]struct {
	fields []string
	desc   string
}{
	"weather": {[]string{"temperature", "humidity", "pressure", "windSpeed"}, "real-time weather data visualization"},
	"stocks":  {[]string{"price", "change", "volume", "volatility"}, "stock market data visualization"},
	"social":  {[]string{"likes", "shares", "comments", "reach"}, "social media metrics visualization"},
	"sports":  {[]string{"score", "timeRemaining", "possession", "playerStats"}, "live sports data visualization"},
	"iot":     {[]string{"sensorValue", "batteryLevel", "status", "timestamp"}, "IoT sensor data visualization"},
	"custom":  {[]string{"value1", "value2", "value3", "value4"}, "custom data visualization"},
}

func setupDataVisualization() Spec {
	return Spec{
		Prompt: mcp.NewPrompt("setup-data-visualization",
			mcp.WithPromptDescription("Set up a webhook-driven live data visualization"),
			sceneArg,
			arg("dataType", "weather, stocks, social, sports, iot or custom", true),
			arg("visualizationStyle", "bars, colors, movement, size or particles (default bars)", false),
		),
		Render: func(a *args) string {
			sceneID := a.required("sceneId")
			a.required("dataType")
			kind := a.enum("dataType", "", "weather", "stocks", "social", "sports", "iot", "custom")
			style := a.enum("visualizationStyle", "bars", "bars", "colors", "movement", "size", "particles")
			data := dataSets[kind]

			return fmt.Sprintf(`I want to create a %s in my Spline scene (ID: %s) that updates in real-time through webhooks. The visualization should use %s to represent the data.

Please help me:
1. Create a webhook that captures these data fields: %s
2. Set up the appropriate 3D objects in my scene to visualize this data
3. Create the necessary variable mappings
4. Configure the Variable Change Events to update the visualization

After setting this up, I want to be able to send data to the webhook URL and see my visualization update in real-time.`,
				data.desc, sceneID, style, strings.Join(data.fields, ", "))
		},
	}
}
