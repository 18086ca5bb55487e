package spline

import (
	"context"
	"net/http"
)

// ListOptions pages the scene listing.
type ListOptions struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	ProjectID string `json:"projectId,omitempty"`
}

// Scenes

func (c *Client) GetScene(ctx context.Context, sceneID string) (any, error) {
	return c.Request(ctx, http.MethodGet, Path("scenes", sceneID), nil)
}

func (c *Client) ListScenes(ctx context.Context, opts ListOptions) (any, error) {
	query := map[string]any{
		"limit":  opts.Limit,
		"offset": opts.Offset,
	}
	if opts.ProjectID != "" {
		query["projectId"] = opts.ProjectID
	}
	return c.Request(ctx, http.MethodGet, "/scenes", query)
}

// Objects

func (c *Client) GetObjects(ctx context.Context, sceneID string) (any, error) {
	return c.Request(ctx, http.MethodGet, Path("scenes", sceneID, "objects"), nil)
}

func (c *Client) GetObject(ctx context.Context, sceneID, objectID string) (any, error) {
	return c.Request(ctx, http.MethodGet, Path("scenes", sceneID, "objects", objectID), nil)
}

func (c *Client) CreateObject(ctx context.Context, sceneID string, object map[string]any) (any, error) {
	return c.Request(ctx, http.MethodPost, Path("scenes", sceneID, "objects"), object)
}

func (c *Client) UpdateObject(ctx context.Context, sceneID, objectID string, changes map[string]any) (any, error) {
	return c.Request(ctx, http.MethodPut, Path("scenes", sceneID, "objects", objectID), changes)
}

func (c *Client) DeleteObject(ctx context.Context, sceneID, objectID string) (any, error) {
	return c.Request(ctx, http.MethodDelete, Path("scenes", sceneID, "objects", objectID), nil)
}

// Materials

func (c *Client) GetMaterials(ctx context.Context, sceneID string) (any, error) {
	return c.Request(ctx, http.MethodGet, Path("scenes", sceneID, "materials"), nil)
}

func (c *Client) GetMaterial(ctx context.Context, sceneID, materialID string) (any, error) {
	return c.Request(ctx, http.MethodGet, Path("scenes", sceneID, "materials", materialID), nil)
}

func (c *Client) CreateMaterial(ctx context.Context, sceneID string, material map[string]any) (any, error) {
	return c.Request(ctx, http.MethodPost, Path("scenes", sceneID, "materials"), material)
}

func (c *Client) UpdateMaterial(ctx context.Context, sceneID, materialID string, changes map[string]any) (any, error) {
	return c.Request(ctx, http.MethodPut, Path("scenes", sceneID, "materials", materialID), changes)
}

func (c *Client) ApplyMaterial(ctx context.Context, sceneID, objectID, materialID string) (any, error) {
	return c.Request(ctx, http.MethodPost, Path("scenes", sceneID, "objects", objectID, "material"),
		map[string]any{"materialId": materialID})
}

// States

func (c *Client) GetStates(ctx context.Context, sceneID string) (any, error) {
	return c.Request(ctx, http.MethodGet, Path("scenes", sceneID, "states"), nil)
}

func (c *Client) GetState(ctx context.Context, sceneID, stateID string) (any, error) {
	return c.Request(ctx, http.MethodGet, Path("scenes", sceneID, "states", stateID), nil)
}

func (c *Client) CreateState(ctx context.Context, sceneID string, state any) (any, error) {
	return c.Request(ctx, http.MethodPost, Path("scenes", sceneID, "states"), state)
}

func (c *Client) TriggerState(ctx context.Context, sceneID, stateID string) (any, error) {
	return c.Request(ctx, http.MethodPost, Path("scenes", sceneID, "states", stateID, "trigger"), nil)
}

// Events

func (c *Client) GetEvents(ctx context.Context, sceneID string) (any, error) {
	return c.Request(ctx, http.MethodGet, Path("scenes", sceneID, "events"), nil)
}

func (c *Client) GetEvent(ctx context.Context, sceneID, eventID string) (any, error) {
	return c.Request(ctx, http.MethodGet, Path("scenes", sceneID, "events", eventID), nil)
}

func (c *Client) CreateEvent(ctx context.Context, sceneID string, event any) (any, error) {
	return c.Request(ctx, http.MethodPost, Path("scenes", sceneID, "events"), event)
}

func (c *Client) TriggerEvent(ctx context.Context, sceneID, eventID string, data map[string]any) (any, error) {
	if data == nil {
		data = map[string]any{}
	}
	return c.Request(ctx, http.MethodPost, Path("scenes", sceneID, "events", eventID, "trigger"), data)
}

// Variables

func (c *Client) GetVariables(ctx context.Context, sceneID string) (any, error) {
	return c.Request(ctx, http.MethodGet, Path("scenes", sceneID, "variables"), nil)
}

func (c *Client) SetVariable(ctx context.Context, sceneID, name string, value any, valueType string) (any, error) {
	return c.Request(ctx, http.MethodPut, Path("scenes", sceneID, "variables", name), map[string]any{
		"value": value,
		"type":  valueType,
	})
}

// API connections, webhooks and OpenAI

func (c *Client) ConfigureAPI(ctx context.Context, sceneID string, config map[string]any) (any, error) {
	return c.Request(ctx, http.MethodPost, Path("scenes", sceneID, "apis"), config)
}

func (c *Client) GetAPIs(ctx context.Context, sceneID string) (any, error) {
	return c.Request(ctx, http.MethodGet, Path("scenes", sceneID, "apis"), nil)
}

func (c *Client) DeleteAPI(ctx context.Context, sceneID, apiID string) (any, error) {
	return c.Request(ctx, http.MethodDelete, Path("scenes", sceneID, "apis", apiID), nil)
}

func (c *Client) CreateWebhook(ctx context.Context, sceneID string, config map[string]any) (any, error) {
	return c.Request(ctx, http.MethodPost, Path("scenes", sceneID, "webhooks"), config)
}

func (c *Client) GetWebhooks(ctx context.Context, sceneID string) (any, error) {
	return c.Request(ctx, http.MethodGet, Path("scenes", sceneID, "webhooks"), nil)
}

func (c *Client) DeleteWebhook(ctx context.Context, sceneID, webhookID string) (any, error) {
	return c.Request(ctx, http.MethodDelete, Path("scenes", sceneID, "webhooks", webhookID), nil)
}

func (c *Client) TriggerWebhook(ctx context.Context, sceneID, webhookID string, data map[string]any) (any, error) {
	if data == nil {
		data = map[string]any{}
	}
	return c.Request(ctx, http.MethodPost, Path("scenes", sceneID, "webhooks", webhookID, "trigger"), data)
}

func (c *Client) ConfigureOpenAI(ctx context.Context, sceneID string, config map[string]any) (any, error) {
	return c.Request(ctx, http.MethodPost, Path("scenes", sceneID, "openai"), config)
}
