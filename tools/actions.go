package tools

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/spline"
)

var actionTypes = []string{
	"transition", "sound", "video", "openLink", "resetScene",
	"switchCamera", "createObject", "destroyObject", "sceneTransition",
	"animation", "particlesControl", "variableControl", "conditional",
	"setVariable", "clearLocalStorage", "apiRequest",
}

// configureAction replaces the type and parameters of an existing action.
func (t *toolset) configureAction(ctx context.Context, args Args, kind string, params map[string]any) error {
	path := spline.Path("scenes", args.String("sceneId"), "actions", args.String("actionId"))
	_, err := t.Spline.Request(ctx, http.MethodPut, path, map[string]any{
		"type":       kind,
		"parameters": params,
	})
	return err
}

// actionConfigurator builds a configure*Action tool. label names the action
// kind in messages.
func (t *toolset) actionConfigurator(tool mcp.Tool, label, kind string, params func(Args) map[string]any) Spec {
	return Spec{
		Tool: tool,
		Verb: "configuring " + label + " action",
		Handle: func(ctx context.Context, args Args) (string, error) {
			if err := t.configureAction(ctx, args, kind, params(args)); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s action %s configured successfully", upperFirst(label), args.String("actionId")), nil
		},
	}
}

func (t *toolset) actionTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("createAction",
				mcp.WithDescription("Attach a new action to an event"),
				sceneIDArg(),
				idArg("eventId", "Event ID to attach this action to"),
				mcp.WithString("type", mcp.Required(), mcp.Enum(actionTypes...), mcp.Description("Action type")),
				idArg("name", "Action name"),
				mcp.WithString("target", mcp.Description("Target ID (object, state, camera, etc.)")),
				recordArg("parameters", "Action parameters"),
			),
			Verb: "creating action",
			Handle: func(ctx context.Context, args Args) (string, error) {
				path := spline.Path("scenes", args.String("sceneId"), "events", args.String("eventId"), "actions")
				result, err := t.Spline.Request(ctx, http.MethodPost, path, args.Pick("type", "name", "target", "parameters"))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Action \"%s\" created successfully with ID: %s", args.String("name"), idOf(result)), nil
			},
		},
		t.actionConfigurator(mcp.NewTool("configureTransitionAction",
			mcp.WithDescription("Configure an action that transitions to a state"),
			sceneIDArg(),
			idArg("actionId", "Action ID"),
			idArg("targetState", "Target state ID"),
			mcp.WithNumber("duration", mcp.Min(0), mcp.Description("Transition duration (ms)")),
			mcp.WithString("easing", mcp.Enum(easings...), mcp.Description("Transition easing")),
			mcp.WithNumber("delay", mcp.Min(0), mcp.Description("Delay before starting transition (ms)")),
		), "transition", "transition", func(a Args) map[string]any {
			return a.Pick("targetState", "duration", "easing", "delay")
		}),
		t.actionConfigurator(mcp.NewTool("configureSoundAction",
			mcp.WithDescription("Configure an action that plays a sound"),
			sceneIDArg(),
			idArg("actionId", "Action ID"),
			idArg("soundUrl", "URL to sound file"),
			mcp.WithNumber("volume", mcp.Min(0), mcp.Max(1), mcp.DefaultNumber(1), mcp.Description("Volume (0-1)")),
			mcp.WithBoolean("loop", mcp.DefaultBool(false), mcp.Description("Whether to loop the sound")),
			mcp.WithBoolean("spatial", mcp.DefaultBool(false), mcp.Description("Whether sound is spatial (3D)")),
			mcp.WithString("objectId", mcp.Description("Object ID for spatial sound source")),
		), "sound", "sound", func(a Args) map[string]any {
			p := map[string]any{
				"soundUrl": a.String("soundUrl"),
				"volume":   a.Float("volume", 1),
				"loop":     a.Bool("loop", false),
				"spatial":  a.Bool("spatial", false),
			}
			if a.Bool("spatial", false) && a.String("objectId") != "" {
				p["objectId"] = a.String("objectId")
			}
			return p
		}),
		t.actionConfigurator(mcp.NewTool("configureAnimationAction",
			mcp.WithDescription("Configure an action that animates an object"),
			sceneIDArg(),
			idArg("actionId", "Action ID"),
			idArg("objectId", "Object ID to animate"),
			mcp.WithString("animationType", mcp.Required(), mcp.Enum("rotate", "move", "scale", "fade"), mcp.Description("Animation type")),
			mcp.WithNumber("duration", mcp.Required(), mcp.Min(0), mcp.Description("Animation duration (ms)")),
			mcp.WithString("easing", mcp.Enum(easings...), mcp.Description("Animation easing")),
			mcp.WithObject("parameters", mcp.Required(), mcp.AdditionalProperties(true), mcp.Description("Animation-specific parameters")),
		), "animation", "animation", func(a Args) map[string]any {
			p := a.Pick("objectId", "animationType", "duration", "easing")
			for k, v := range a.Map("parameters") {
				p[k] = v
			}
			return p
		}),
		t.actionConfigurator(mcp.NewTool("configureVariableAction",
			mcp.WithDescription("Configure an action that changes a variable"),
			sceneIDArg(),
			idArg("actionId", "Action ID"),
			idArg("variableName", "Variable name"),
			mcp.WithString("operation", mcp.Required(),
				mcp.Enum("set", "increment", "decrement", "multiply", "divide", "toggle"),
				mcp.Description("Operation to perform")),
			anyArg("value", "Value to use in the operation", false),
		), "variable control", "variableControl", func(a Args) map[string]any {
			return map[string]any{
				"variableName": a.String("variableName"),
				"operation":    a.String("operation"),
				"value":        a["value"],
			}
		}),
		t.actionConfigurator(mcp.NewTool("configureConditionalAction",
			mcp.WithDescription("Configure an action that branches on a variable"),
			sceneIDArg(),
			idArg("actionId", "Action ID"),
			idArg("variableName", "Variable name to check"),
			mcp.WithString("condition", mcp.Required(),
				mcp.Enum("equals", "notEquals", "greaterThan", "lessThan", "contains"),
				mcp.Description("Condition to evaluate")),
			anyArg("value", "Value to compare against", false),
			mcp.WithArray("trueActionIds", mcp.Required(), mcp.WithStringItems(), mcp.Description("Actions to trigger if condition is true")),
			mcp.WithArray("falseActionIds", mcp.WithStringItems(), mcp.Description("Actions to trigger if condition is false")),
		), "conditional", "conditional", func(a Args) map[string]any {
			p := map[string]any{
				"variableName": a.String("variableName"),
				"condition":    a.String("condition"),
				"value":        a["value"],
				"trueActions":  a.Strings("trueActionIds"),
			}
			if a.Has("falseActionIds") {
				p["falseActions"] = a.Strings("falseActionIds")
			}
			return p
		}),
		t.actionConfigurator(mcp.NewTool("configureApiRequestAction",
			mcp.WithDescription("Configure an action that calls a configured API"),
			sceneIDArg(),
			idArg("actionId", "Action ID"),
			idArg("apiId", "API configuration ID"),
			mcp.WithArray("mappings", mcp.Description("Response mappings"), mcp.Items(objectProp("Mapping",
				map[string]any{
					"responseField": stringProp("Field from API response"),
					"variableName":  stringProp("Spline variable name"),
					"variableType":  enumProp("Variable type", "string", "number", "boolean"),
				}, "responseField", "variableName"))),
		), "API request", "apiRequest", func(a Args) map[string]any {
			return a.Pick("apiId", "mappings")
		}),
		t.actionConfigurator(mcp.NewTool("configureCameraAction",
			mcp.WithDescription("Configure an action that switches camera"),
			sceneIDArg(),
			idArg("actionId", "Action ID"),
			idArg("cameraId", "Camera ID to switch to"),
			mcp.WithNumber("duration", mcp.Min(0), mcp.Description("Transition duration (ms)")),
			mcp.WithString("easing", mcp.Enum(easings...), mcp.Description("Transition easing")),
		), "camera", "switchCamera", func(a Args) map[string]any {
			return a.Pick("cameraId", "duration", "easing")
		}),
		{
			Tool: mcp.NewTool("listActions",
				mcp.WithDescription("List the actions of an event"),
				sceneIDArg(),
				idArg("eventId", "Event ID"),
				readOnly(),
			),
			Verb: "listing actions",
			Handle: func(ctx context.Context, args Args) (string, error) {
				path := spline.Path("scenes", args.String("sceneId"), "events", args.String("eventId"), "actions")
				actions, err := t.Spline.Request(ctx, http.MethodGet, path, nil)
				if err != nil {
					return "", err
				}
				return pretty(actions)
			},
		},
		{
			Tool: mcp.NewTool("deleteAction",
				mcp.WithDescription("Delete an action from an event"),
				sceneIDArg(),
				idArg("eventId", "Event ID"),
				idArg("actionId", "Action ID"),
			),
			Verb: "deleting action",
			Handle: func(ctx context.Context, args Args) (string, error) {
				actionID := args.String("actionId")
				path := spline.Path("scenes", args.String("sceneId"), "events", args.String("eventId"), "actions", actionID)
				if _, err := t.Spline.Request(ctx, http.MethodDelete, path, nil); err != nil {
					return "", err
				}
				return fmt.Sprintf("Action %s deleted successfully", actionID), nil
			},
		},
	}
}
