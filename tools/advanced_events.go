package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/spline"
)

var comprehensiveEventTypes = []string{
	"mouseUp", "mouseDown", "mousePress", "mouseHover",
	"keyUp", "keyDown", "keyPress",
	"scroll", "lookAt", "follow",
	"gameControls",
	"distance", "collision", "triggerArea",
	"stateChange", "variableChange", "screenResize",
	"apiUpdated", "webhookCalled",
	"aiAssistantListener", "aiAssistantTrigger",
	"sceneStart", "sceneLoad", "sceneUnload",
}

func (t *toolset) advancedEventTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("createComprehensiveEvent",
				mcp.WithDescription("Create an event of any supported type with parameters and actions"),
				sceneIDArg(),
				idArg("name", "Event name"),
				mcp.WithString("type", mcp.Required(), mcp.Enum(comprehensiveEventTypes...), mcp.Description("Event type")),
				mcp.WithString("objectId", mcp.Description("Object ID (if object-specific event)")),
				recordArg("parameters", "Event specific parameters (e.g., key codes, trigger distances)"),
				mcp.WithArray("actions", mcp.Required(), mcp.MinItems(1),
					mcp.Description("Actions to perform when event is triggered"),
					mcp.Items(objectProp("Action", map[string]any{
						"type":   stringProp("Action type"),
						"target": stringProp("Target ID (object, state, etc.)"),
						"params": recordProp("Action parameters"),
					}, "type"))),
			),
			Verb: "creating event",
			Handle: func(ctx context.Context, args Args) (string, error) {
				event := args.Pick("name", "type", "objectId", "parameters", "actions")
				result, err := t.Spline.CreateEvent(ctx, args.String("sceneId"), event)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Event \"%s\" created successfully with ID: %s", args.String("name"), idOf(result)), nil
			},
		},
		{
			Tool: mcp.NewTool("configureEventParameters",
				mcp.WithDescription("Set the type-specific parameters of an event"),
				sceneIDArg(),
				idArg("eventId", "Event ID"),
				idArg("eventType", "Event type"),
				mcp.WithString("keyCode", mcp.Description("Key code for keyboard events")),
				mcp.WithNumber("distance", mcp.Description("Distance for spatial events")),
				mcp.WithString("targetObjectId", mcp.Description("Target object for lookAt/follow events")),
				mcp.WithString("variableName", mcp.Description("Variable name for variableChange events")),
				mcp.WithString("collisionGroup", mcp.Description("Collision group for physics events")),
				mcp.WithObject("triggerArea", mcp.Description("Trigger area dimensions"), mcp.Properties(map[string]any{
					"position": objectProp("Area center", vectorProps("position"), "x", "y", "z"),
					"size":     objectProp("Area size", vectorProps("size"), "x", "y", "z"),
				})),
				mcp.WithString("aiPrompt", mcp.Description("Prompt for AI assistant events")),
				recordArg("customParameters", "Any additional custom parameters"),
			),
			Verb: "configuring event parameters",
			Handle: func(ctx context.Context, args Args) (string, error) {
				eventID := args.String("eventId")
				path := spline.Path("scenes", args.String("sceneId"), "events", eventID, "parameters")
				if _, err := t.Spline.Request(ctx, http.MethodPut, path, eventParameters(args)); err != nil {
					return "", err
				}
				return fmt.Sprintf("Parameters for event %s configured successfully", eventID), nil
			},
		},
	}
}

// eventParameters selects the parameter set that applies to the event type.
func eventParameters(args Args) map[string]any {
	switch args.String("eventType") {
	case "keyUp", "keyDown", "keyPress":
		return map[string]any{"keyCode": args["keyCode"]}
	case "distance":
		return map[string]any{"distance": args["distance"], "targetObjectId": args["targetObjectId"]}
	case "lookAt", "follow":
		return map[string]any{"targetObjectId": args["targetObjectId"]}
	case "variableChange":
		return map[string]any{"variableName": args["variableName"]}
	case "collision":
		return map[string]any{"collisionGroup": args["collisionGroup"]}
	case "triggerArea":
		return map[string]any{"triggerArea": args["triggerArea"]}
	case "aiAssistantListener", "aiAssistantTrigger":
		return map[string]any{"aiPrompt": args["aiPrompt"]}
	}
	if m := args.Map("customParameters"); m != nil {
		return m
	}
	return map[string]any{}
}
