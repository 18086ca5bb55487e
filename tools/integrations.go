package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/openai"
)

var (
	httpMethods  = []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS", "PATCH"}
	openAIModels = []string{"gpt-3.5-turbo", "gpt-4-turbo", "gpt-4o-mini", "gpt-4o"}
	services     = []string{"zapier", "ifttt", "n8n", "make", "custom"}
)

func variableMappingArg(desc string) mcp.ToolOption {
	return mcp.WithArray("variableMappings", mcp.Description(desc), mcp.Items(objectProp("Mapping",
		map[string]any{
			"responseField": stringProp("Field from API response"),
			"variableName":  stringProp("Spline variable name"),
			"variableType":  enumProp("Variable type", "string", "number", "boolean"),
		}, "responseField", "variableName")))
}

func (t *toolset) integrationTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("configureApi",
				mcp.WithDescription("Configure an API connection that feeds scene variables"),
				sceneIDArg(),
				idArg("name", "API name"),
				mcp.WithString("method", mcp.Required(), mcp.Enum(httpMethods...), mcp.Description("HTTP method")),
				idArg("url", "API endpoint URL"),
				recordArg("headers", "HTTP headers"),
				recordArg("body", "Request body (for POST, PUT, PATCH)"),
				recordArg("queryParams", "URL query parameters"),
				mcp.WithBoolean("requestOnStart", mcp.DefaultBool(false), mcp.Description("Send the request when the scene starts")),
				variableMappingArg("Mappings from API response to Spline variables"),
			),
			Verb: "configuring API",
			Handle: func(ctx context.Context, args Args) (string, error) {
				if err := checkURL(args.String("url")); err != nil {
					return "", err
				}
				config := args.Pick("name", "method", "url", "headers", "body", "queryParams", "variableMappings")
				config["requestOnStart"] = args.Bool("requestOnStart", false)

				result, err := t.Spline.ConfigureAPI(ctx, args.String("sceneId"), config)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("API connection configured successfully with ID: %s", idOf(result)), nil
			},
		},
		{
			Tool: mcp.NewTool("getApis",
				mcp.WithDescription("List the API connections of a scene"),
				sceneIDArg(),
				readOnly(),
			),
			Verb: "retrieving APIs",
			Handle: func(ctx context.Context, args Args) (string, error) {
				apis, err := t.Spline.GetAPIs(ctx, args.String("sceneId"))
				if err != nil {
					return "", err
				}
				return pretty(apis)
			},
		},
		{
			Tool: mcp.NewTool("deleteApi",
				mcp.WithDescription("Delete an API connection"),
				sceneIDArg(),
				idArg("apiId", "API connection ID"),
			),
			Verb: "deleting API connection",
			Handle: func(ctx context.Context, args Args) (string, error) {
				apiID := args.String("apiId")
				if _, err := t.Spline.DeleteAPI(ctx, args.String("sceneId"), apiID); err != nil {
					return "", err
				}
				return fmt.Sprintf("API connection %s deleted successfully", apiID), nil
			},
		},
		{
			Tool: mcp.NewTool("createWebhook",
				mcp.WithDescription("Create a webhook that writes incoming data into scene variables"),
				sceneIDArg(),
				idArg("name", "Webhook name"),
				mcp.WithArray("parameterMappings", mcp.Description("Parameter mappings"), mcp.Items(objectProp("Mapping",
					map[string]any{
						"paramName":    stringProp("Parameter name in webhook"),
						"variableName": stringProp("Spline variable name"),
						"variableType": enumProp("Variable type", "string", "number", "boolean"),
					}, "paramName", "variableName"))),
			),
			Verb: "creating webhook",
			Handle: func(ctx context.Context, args Args) (string, error) {
				result, err := t.Spline.CreateWebhook(ctx, args.String("sceneId"), args.Pick("name", "parameterMappings"))
				if err != nil {
					return "", err
				}
				hookURL := "unknown"
				if m, ok := result.(map[string]any); ok && m["url"] != nil {
					hookURL = fmt.Sprint(m["url"])
				}
				return fmt.Sprintf("Webhook created successfully with ID: %s and URL: %s", idOf(result), hookURL), nil
			},
		},
		{
			Tool: mcp.NewTool("getWebhooks",
				mcp.WithDescription("List the webhooks of a scene"),
				sceneIDArg(),
				readOnly(),
			),
			Verb: "retrieving webhooks",
			Handle: func(ctx context.Context, args Args) (string, error) {
				hooks, err := t.Spline.GetWebhooks(ctx, args.String("sceneId"))
				if err != nil {
					return "", err
				}
				return pretty(hooks)
			},
		},
		{
			Tool: mcp.NewTool("deleteWebhook",
				mcp.WithDescription("Delete a webhook"),
				sceneIDArg(),
				idArg("webhookId", "Webhook ID"),
			),
			Verb: "deleting webhook",
			Handle: func(ctx context.Context, args Args) (string, error) {
				webhookID := args.String("webhookId")
				if _, err := t.Spline.DeleteWebhook(ctx, args.String("sceneId"), webhookID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Webhook %s deleted successfully", webhookID), nil
			},
		},
		{
			Tool: mcp.NewTool("triggerWebhook",
				mcp.WithDescription("Send data through a scene webhook"),
				sceneIDArg(),
				idArg("webhookId", "Webhook ID"),
				mcp.WithObject("data", mcp.Required(), mcp.AdditionalProperties(true), mcp.Description("Data to send with the webhook")),
			),
			Verb: "triggering webhook",
			Handle: func(ctx context.Context, args Args) (string, error) {
				webhookID := args.String("webhookId")
				if _, err := t.Spline.TriggerWebhook(ctx, args.String("sceneId"), webhookID, args.Map("data")); err != nil {
					return "", err
				}
				return fmt.Sprintf("Webhook %s triggered successfully", webhookID), nil
			},
		},
		{
			Tool: mcp.NewTool("configureOpenAI",
				mcp.WithDescription("Configure an OpenAI integration for a scene"),
				sceneIDArg(),
				mcp.WithString("model", mcp.Required(), mcp.Enum(openAIModels...), mcp.Description("OpenAI model")),
				mcp.WithString("apiKey", mcp.Description("OpenAI API key (uses the configured key if not provided)")),
				idArg("prompt", "System prompt/behavior for the AI"),
				mcp.WithBoolean("requestOnStart", mcp.DefaultBool(false), mcp.Description("Send the request when the scene starts")),
				variableMappingArg("Mappings from OpenAI response to Spline variables"),
			),
			Verb: "configuring OpenAI",
			Handle: func(ctx context.Context, args Args) (string, error) {
				config := args.Pick("model", "prompt", "variableMappings")
				config["apiKey"] = args.StringOr("apiKey", t.openAIKey())
				config["requestOnStart"] = args.Bool("requestOnStart", false)

				result, err := t.Spline.ConfigureOpenAI(ctx, args.String("sceneId"), config)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("OpenAI integration configured successfully with ID: %s", idOf(result)), nil
			},
		},
		{
			Tool: mcp.NewTool("generateTextWithOpenAI",
				mcp.WithDescription("Generate text with the OpenAI chat completions API"),
				idArg("prompt", "Prompt for text generation"),
				mcp.WithString("model", mcp.Enum(openAIModels...), mcp.DefaultString(openai.DefaultModel), mcp.Description("OpenAI model")),
				mcp.WithNumber("maxTokens", mcp.Min(1), mcp.Max(4096), mcp.DefaultNumber(256), mcp.Description("Maximum tokens to generate")),
				mcp.WithNumber("temperature", mcp.Min(0), mcp.Max(2), mcp.DefaultNumber(0.7), mcp.Description("Sampling temperature")),
				readOnly(),
			),
			Verb: "generating text",
			Handle: func(ctx context.Context, args Args) (string, error) {
				if t.OpenAI == nil {
					return "", openai.ErrMissingAPIKey
				}
				return t.OpenAI.GenerateText(ctx, openai.CompletionRequest{
					Prompt:      args.String("prompt"),
					Model:       args.StringOr("model", openai.DefaultModel),
					MaxTokens:   args.Int("maxTokens", 256),
					Temperature: args.Float("temperature", 0.7),
				})
			},
		},
		{
			Tool: mcp.NewTool("sendWebhookData",
				mcp.WithDescription("POST JSON data to a webhook URL"),
				idArg("webhookUrl", "Webhook URL"),
				mcp.WithObject("data", mcp.Required(), mcp.AdditionalProperties(true), mcp.Description("Data to send to the webhook")),
			),
			Verb:   "sending data to webhook",
			Handle: t.sendWebhookData,
		},
		{
			Tool: mcp.NewTool("setupServiceWebhook",
				mcp.WithDescription("Generate instructions to connect an automation service to a scene webhook"),
				sceneIDArg(),
				mcp.WithString("service", mcp.Required(), mcp.Enum(services...), mcp.Description("Service to integrate with")),
				idArg("eventType", "Type of event to listen for"),
				mcp.WithArray("mappings", mcp.Required(), mcp.MinItems(1), mcp.Description("Data mappings"),
					mcp.Items(objectProp("Mapping", map[string]any{
						"serviceField":   requiredString("Field from the service"),
						"splineVariable": requiredString("Spline variable to update"),
					}, "serviceField", "splineVariable"))),
				readOnly(),
			),
			Verb:   "setting up webhook",
			Handle: t.setupServiceWebhook,
		},
	}
}

func (t *toolset) openAIKey() string {
	if t.OpenAI == nil {
		return ""
	}
	return t.OpenAI.APIKey()
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid url: %s", raw)
	}
	return nil
}

func (t *toolset) sendWebhookData(ctx context.Context, args Args) (string, error) {
	target := args.String("webhookUrl")
	if err := checkURL(target); err != nil {
		return "", err
	}

	data, err := pretty(args.Map("data"))
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewBufferString(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("webhook responded %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	return fmt.Sprintf("Data sent successfully to webhook: %s\n\nData:\n%s\n\nResponse (%s):\n%s",
		target, data, resp.Status, strings.TrimSpace(string(body))), nil
}

type serviceMapping struct {
	ServiceField   string `json:"serviceField"`
	SplineVariable string `json:"splineVariable"`
}

func (t *toolset) setupServiceWebhook(ctx context.Context, args Args) (string, error) {
	var in struct {
		SceneID   string           `json:"sceneId"`
		Service   string           `json:"service"`
		EventType string           `json:"eventType"`
		Mappings  []serviceMapping `json:"mappings"`
	}
	if err := args.Bind(&in); err != nil {
		return "", err
	}

	hookURL := fmt.Sprintf("https://hooks.spline.design/%s/%s", in.SceneID, uuid.NewString()[:8])
	return fmt.Sprintf("Webhook for %s integration created successfully!\n\n%s",
		in.Service, serviceInstructions(in.Service, in.EventType, hookURL, in.Mappings)), nil
}

func serviceInstructions(service, eventType, hookURL string, mappings []serviceMapping) string {
	lines := func(format string, sep string) string {
		parts := make([]string, len(mappings))
		for i, m := range mappings {
			parts[i] = fmt.Sprintf(format, m.ServiceField, m.SplineVariable)
		}
		return strings.Join(parts, sep)
	}
	jsonBody := func(value func(m serviceMapping) string) string {
		parts := make([]string, len(mappings))
		for i, m := range mappings {
			key, _ := json.Marshal(m.SplineVariable)
			val, _ := json.Marshal(value(m))
			parts[i] = fmt.Sprintf("  %s: %s", key, val)
		}
		return "```json\n{\n" + strings.Join(parts, ",\n") + "\n}\n```"
	}

	switch service {
	case "zapier":
		return fmt.Sprintf(`# Zapier Integration Instructions

1. **Create a new Zap** in Zapier
2. Choose a **Trigger** corresponding to your event type: "%s"
3. For the **Action**, select "Webhooks by Zapier" and choose "POST"
4. Enter this **Webhook URL**: %s
5. Configure the **Data** to be sent with these mappings:
%s
6. **Test** your Zap to verify it's working
7. **Turn on** your Zap
`, eventType, hookURL, lines(`   - Map Zapier field "%s" to payload key "%s"`, "\n"))
	case "ifttt":
		return fmt.Sprintf(`# IFTTT Integration Instructions

1. **Create a new Applet** in IFTTT
2. Choose a "This" trigger for your event type: "%s"
3. For "That", select the "Webhooks" service
4. Choose the "Make a web request" action
5. Enter this **URL**: %s
6. Set **Method** to POST
7. Set **Content Type** to application/json
8. Set **Body** to:
%s
9. **Create** the Applet
`, eventType, hookURL, jsonBody(func(m serviceMapping) string { return "{{" + m.ServiceField + "}}" }))
	case "n8n":
		return fmt.Sprintf(`# n8n Integration Instructions

1. **Add an HTTP Request node** to your workflow
2. Set **Method** to POST
3. Enter this **URL**: %s
4. Set **Content Type** to application/json
5. Configure **JSON Body** with these mappings:
%s
6. **Connect** this node to your trigger node
7. **Save** and **activate** your workflow
`, hookURL, jsonBody(func(m serviceMapping) string {
			return `={{$node["Previous Node"].data.` + m.ServiceField + "}}"
		}))
	case "make":
		return fmt.Sprintf(`# Make.com (Integromat) Integration Instructions

1. **Create a new scenario** in Make.com
2. Add a module for your event type: "%s"
3. Add an **HTTP** module
4. Set **URL** to: %s
5. Set **Method** to POST
6. In the **Body** section, map these fields:
%s
7. **Save** and **run** your scenario
`, eventType, hookURL, lines(`   - Map "%s" to "%s"`, "\n"))
	default:
		return fmt.Sprintf(`# Custom Webhook Integration Instructions

Your webhook has been created. Send POST requests to:

**Webhook URL**: %s

**Expected JSON payload format**:
%s

This will update the variables in your Spline scene in real-time.
`, hookURL, jsonBody(func(m serviceMapping) string { return "Value from " + m.ServiceField }))
	}
}
