package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/codegen"
)

// StateInput is the argument shape of createState.
type StateInput struct {
	SceneID            string          `json:"sceneId" jsonschema:"minLength=1" jsonschema_description:"Scene ID"`
	Name               string          `json:"name" jsonschema:"minLength=1" jsonschema_description:"State name"`
	Properties         []StateProperty `json:"properties" jsonschema_description:"Properties to change in this state"`
	TransitionDuration *float64        `json:"transitionDuration,omitempty" jsonschema:"minimum=0" jsonschema_description:"Transition duration in ms"`
	TransitionEasing   string          `json:"transitionEasing,omitempty" jsonschema:"enum=linear,enum=easeIn,enum=easeOut,enum=easeInOut" jsonschema_description:"Transition easing function"`
}

type StateProperty struct {
	ObjectID string `json:"objectId" jsonschema:"minLength=1" jsonschema_description:"Object ID"`
	Property string `json:"property" jsonschema:"minLength=1" jsonschema_description:"Property to change"`
	Value    any    `json:"value" jsonschema_description:"Value to set"`
}

// EventInput is the argument shape of createEvent.
type EventInput struct {
	SceneID  string        `json:"sceneId" jsonschema:"minLength=1" jsonschema_description:"Scene ID"`
	Name     string        `json:"name" jsonschema:"minLength=1" jsonschema_description:"Event name"`
	Type     string        `json:"type" jsonschema:"enum=mouseDown,enum=mouseUp,enum=mouseOver,enum=mouseOut,enum=mouseMove,enum=touchStart,enum=touchEnd,enum=touchMove,enum=keyDown,enum=keyUp,enum=collision,enum=sceneStart,enum=custom" jsonschema_description:"Event type"`
	ObjectID string        `json:"objectId,omitempty" jsonschema_description:"Object ID (if object-specific event)"`
	Actions  []EventAction `json:"actions" jsonschema:"minItems=1" jsonschema_description:"Actions to perform when event is triggered"`
}

type EventAction struct {
	Type   string         `json:"type" jsonschema:"enum=triggerState,enum=setProperty,enum=playAnimation,enum=callFunction,enum=triggerEvent,enum=setVariable" jsonschema_description:"Action type"`
	Target string         `json:"target,omitempty" jsonschema_description:"Target ID (object, state, etc.)"`
	Params map[string]any `json:"params,omitempty" jsonschema_description:"Action parameters"`
}

var listenerEvents = []string{
	"mouseDown", "mouseUp", "mouseOver", "mouseOut", "mouseMove",
	"touchStart", "touchEnd", "touchMove", "keyDown", "keyUp", "collision", "sceneStart",
}

func (t *toolset) stateEventTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("getStates",
				mcp.WithDescription("List the states of a scene"),
				sceneIDArg(),
				readOnly(),
			),
			Verb: "retrieving states",
			Handle: func(ctx context.Context, args Args) (string, error) {
				states, err := t.Spline.GetStates(ctx, args.String("sceneId"))
				if err != nil {
					return "", err
				}
				return pretty(states)
			},
		},
		{
			Tool: mcp.NewTool("getStateDetails",
				mcp.WithDescription("Get details of one state"),
				sceneIDArg(),
				idArg("stateId", "State ID"),
				readOnly(),
			),
			Verb: "retrieving state details",
			Handle: func(ctx context.Context, args Args) (string, error) {
				state, err := t.Spline.GetState(ctx, args.String("sceneId"), args.String("stateId"))
				if err != nil {
					return "", err
				}
				return pretty(state)
			},
		},
		{
			Tool: mcp.NewTool("createState",
				mcp.WithDescription("Create a new state with object property overrides"),
				mcp.WithInputSchema[StateInput](),
			),
			Verb: "creating state",
			Handle: func(ctx context.Context, args Args) (string, error) {
				var in StateInput
				if err := args.Bind(&in); err != nil {
					return "", err
				}
				state := map[string]any{
					"name":       in.Name,
					"properties": in.Properties,
				}
				if in.TransitionDuration != nil {
					state["transitionDuration"] = *in.TransitionDuration
				}
				if in.TransitionEasing != "" {
					state["transitionEasing"] = in.TransitionEasing
				}

				result, err := t.Spline.CreateState(ctx, in.SceneID, state)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("State created successfully with ID: %s", idOf(result)), nil
			},
		},
		{
			Tool: mcp.NewTool("triggerState",
				mcp.WithDescription("Switch a scene to a state"),
				sceneIDArg(),
				idArg("stateId", "State ID"),
			),
			Verb: "triggering state",
			Handle: func(ctx context.Context, args Args) (string, error) {
				stateID := args.String("stateId")
				if _, err := t.Spline.TriggerState(ctx, args.String("sceneId"), stateID); err != nil {
					return "", err
				}
				return fmt.Sprintf("State %s triggered successfully", stateID), nil
			},
		},
		{
			Tool: mcp.NewTool("getEvents",
				mcp.WithDescription("List the events of a scene"),
				sceneIDArg(),
				readOnly(),
			),
			Verb: "retrieving events",
			Handle: func(ctx context.Context, args Args) (string, error) {
				events, err := t.Spline.GetEvents(ctx, args.String("sceneId"))
				if err != nil {
					return "", err
				}
				return pretty(events)
			},
		},
		{
			Tool: mcp.NewTool("getEventDetails",
				mcp.WithDescription("Get details of one event"),
				sceneIDArg(),
				idArg("eventId", "Event ID"),
				readOnly(),
			),
			Verb: "retrieving event details",
			Handle: func(ctx context.Context, args Args) (string, error) {
				event, err := t.Spline.GetEvent(ctx, args.String("sceneId"), args.String("eventId"))
				if err != nil {
					return "", err
				}
				return pretty(event)
			},
		},
		{
			Tool: mcp.NewTool("createEvent",
				mcp.WithDescription("Create an event that runs actions when triggered"),
				mcp.WithInputSchema[EventInput](),
			),
			Verb: "creating event",
			Handle: func(ctx context.Context, args Args) (string, error) {
				var in EventInput
				if err := args.Bind(&in); err != nil {
					return "", err
				}
				event := map[string]any{
					"name":    in.Name,
					"type":    in.Type,
					"actions": in.Actions,
				}
				if in.ObjectID != "" {
					event["objectId"] = in.ObjectID
				}

				result, err := t.Spline.CreateEvent(ctx, in.SceneID, event)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Event created successfully with ID: %s", idOf(result)), nil
			},
		},
		{
			Tool: mcp.NewTool("triggerEvent",
				mcp.WithDescription("Fire an event"),
				sceneIDArg(),
				idArg("eventId", "Event ID"),
				recordArg("eventData", "Event data"),
			),
			Verb: "triggering event",
			Handle: func(ctx context.Context, args Args) (string, error) {
				eventID := args.String("eventId")
				if _, err := t.Spline.TriggerEvent(ctx, args.String("sceneId"), eventID, args.Map("eventData")); err != nil {
					return "", err
				}
				return fmt.Sprintf("Event %s triggered successfully", eventID), nil
			},
		},
		{
			Tool: mcp.NewTool("generateEventListenerCode",
				mcp.WithDescription("Generate runtime code that listens for an event"),
				sceneIDArg(),
				mcp.WithString("eventName", mcp.Required(), mcp.Enum(listenerEvents...), mcp.Description("Event name")),
				readOnly(),
			),
			Verb: "generating code",
			Handle: func(ctx context.Context, args Args) (string, error) {
				return codegen.EventListener(args.String("sceneId"), args.String("eventName")), nil
			},
		},
	}
}
