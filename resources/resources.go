package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/splinemcp/spline"
	"github.com/yosida95/uritemplate/v3"
)

const markdown = "text/markdown"

// URI templates of the readable resources.
var (
	SceneTemplate     = uritemplate.MustNew("spline://scene/{sceneId}")
	ObjectsTemplate   = uritemplate.MustNew("spline://scene/{sceneId}/objects")
	ObjectTemplate    = uritemplate.MustNew("spline://scene/{sceneId}/object/{objectId}")
	MaterialsTemplate = uritemplate.MustNew("spline://scene/{sceneId}/materials")
	MaterialTemplate  = uritemplate.MustNew("spline://scene/{sceneId}/material/{materialId}")
	StatesTemplate    = uritemplate.MustNew("spline://scene/{sceneId}/states")
	StateTemplate     = uritemplate.MustNew("spline://scene/{sceneId}/state/{stateId}")
	EventsTemplate    = uritemplate.MustNew("spline://scene/{sceneId}/events")
	EventTemplate     = uritemplate.MustNew("spline://scene/{sceneId}/event/{eventId}")
)

const (
	ScenesURI      = "spline://scenes"
	WebhookDocsURI = "spline://webhook-docs"
)

// Catalog serves scene data from the Spline API as markdown documents.
// Upstream failures are rendered into the document text; reads never fail
// at the protocol level.
type Catalog struct {
	client *spline.Client
}

func NewCatalog(client *spline.Client) *Catalog {
	return &Catalog{client: client}
}

// renderFunc fetches and renders one resource from its URI variables.
type renderFunc func(ctx context.Context, vars uritemplate.Values) (string, error)

type entry struct {
	tmpl   *uritemplate.Template
	name   string
	desc   string
	failed string
	render renderFunc
}

func (c *Catalog) entries() []entry {
	return []entry{
		{SceneTemplate, "scene", "Details and statistics of one scene", "Error retrieving scene information", c.scene},
		{ObjectsTemplate, "scene-objects", "Objects in a scene", "Error retrieving objects", c.objects},
		{ObjectTemplate, "scene-object", "Details of one object", "Error retrieving object information", c.object},
		{MaterialsTemplate, "scene-materials", "Materials in a scene", "Error retrieving materials", c.materials},
		{MaterialTemplate, "scene-material", "Details of one material", "Error retrieving material information", c.material},
		{StatesTemplate, "scene-states", "States in a scene", "Error retrieving states", c.states},
		{StateTemplate, "scene-state", "Details of one state", "Error retrieving state information", c.state},
		{EventsTemplate, "scene-events", "Events in a scene", "Error retrieving events", c.events},
		{EventTemplate, "scene-event", "Details of one event", "Error retrieving event information", c.event},
	}
}

// Templates returns the parameterised resources.
func (c *Catalog) Templates() []server.ServerResourceTemplate {
	var out []server.ServerResourceTemplate
	for _, e := range c.entries() {
		out = append(out, server.ServerResourceTemplate{
			Template: mcp.NewResourceTemplate(e.tmpl.Raw(), e.name,
				mcp.WithTemplateDescription(e.desc),
				mcp.WithTemplateMIMEType(markdown),
			),
			Handler: server.ResourceTemplateHandlerFunc(c.handler(e.tmpl, e.failed, e.render)),
		})
	}
	return out
}

// Resources returns the fixed-URI resources.
func (c *Catalog) Resources() []server.ServerResource {
	return []server.ServerResource{
		{
			Resource: mcp.NewResource(ScenesURI, "scenes",
				mcp.WithResourceDescription("Available Spline scenes"),
				mcp.WithMIMEType(markdown),
			),
			Handler: c.handler(nil, "Error retrieving scenes", c.scenes),
		},
		{
			Resource: mcp.NewResource(WebhookDocsURI, "webhook-docs",
				mcp.WithResourceDescription("How Spline webhooks work"),
				mcp.WithMIMEType(markdown),
			),
			Handler: func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
				return contents(req.Params.URI, webhookDocs), nil
			},
		},
	}
}

// Register adds every resource and template to s.
func (c *Catalog) Register(s *server.MCPServer) {
	s.AddResources(c.Resources()...)
	s.AddResourceTemplates(c.Templates()...)
}

// Read resolves uri against the catalog without a server, for tests and
// the catalog command.
func (c *Catalog) Read(ctx context.Context, uri string) ([]mcp.ResourceContents, error) {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	for _, r := range c.Resources() {
		if r.Resource.URI == uri {
			return r.Handler(ctx, req)
		}
	}
	for _, e := range c.entries() {
		if e.tmpl.Match(uri) != nil {
			return c.handler(e.tmpl, e.failed, e.render)(ctx, req)
		}
	}
	return nil, fmt.Errorf("resource %s not found", uri)
}

func (c *Catalog) handler(tmpl *uritemplate.Template, failed string, render renderFunc) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		vars := uritemplate.Values{}
		if tmpl != nil {
			vars = tmpl.Match(req.Params.URI)
		}
		text, err := render(ctx, vars)
		if err != nil {
			text = fmt.Sprintf("%s: %s", failed, err.Error())
		}
		return contents(req.Params.URI, text), nil
	}
}

func contents(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: uri, MIMEType: markdown, Text: text},
	}
}

// link expands a detail template for a list entry.
func link(tmpl *uritemplate.Template, kv ...string) string {
	vars := uritemplate.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		vars.Set(kv[i], uritemplate.String(kv[i+1]))
	}
	s, err := tmpl.Expand(vars)
	if err != nil {
		return "N/A"
	}
	return s
}

func (c *Catalog) scene(ctx context.Context, vars uritemplate.Values) (string, error) {
	v, err := c.client.GetScene(ctx, vars.Get("sceneId").String())
	if err != nil {
		return "", err
	}
	s := asRecord(v)

	b := section("Spline Scene: " + s.str("name"))
	b.WriteString("## Scene Details\n\n")
	fmt.Fprintf(b, "- ID: %s\n", s.str("id"))
	fmt.Fprintf(b, "- Name: %s\n", s.str("name"))
	fmt.Fprintf(b, "- Description: %s\n", s.or("description", "N/A"))
	fmt.Fprintf(b, "- Created: %s\n", s.when("createdAt"))
	fmt.Fprintf(b, "- Last Updated: %s\n\n", s.when("updatedAt"))
	b.WriteString("## Scene Statistics\n\n")
	fmt.Fprintf(b, "- Objects: %s\n", s.or("objectCount", "N/A"))
	fmt.Fprintf(b, "- Materials: %s\n", s.or("materialCount", "N/A"))
	fmt.Fprintf(b, "- States: %s\n", s.or("stateCount", "N/A"))
	fmt.Fprintf(b, "- Events: %s\n\n", s.or("eventCount", "N/A"))
	fmt.Fprintf(b, "## Embed URL\n\n%s\n\n", s.or("embedUrl", "N/A"))
	fmt.Fprintf(b, "## Public URL\n\n%s", s.or("publicUrl", "N/A"))
	return b.String(), nil
}

func (c *Catalog) scenes(ctx context.Context, _ uritemplate.Values) (string, error) {
	v, err := c.client.ListScenes(ctx, spline.ListOptions{Limit: 20})
	if err != nil {
		return "", err
	}

	b := section("Available Spline Scenes")
	list := asList(v, "scenes")
	if len(list) == 0 {
		b.WriteString("No scenes available.")
		return b.String(), nil
	}
	for _, s := range list {
		fmt.Fprintf(b, "## %s\n\n", s.str("name"))
		fmt.Fprintf(b, "- ID: %s\n", s.str("id"))
		fmt.Fprintf(b, "- Description: %s\n", s.or("description", "N/A"))
		fmt.Fprintf(b, "- Resource URI: %s\n\n", link(SceneTemplate, "sceneId", s.str("id")))
	}
	return b.String(), nil
}

func (c *Catalog) objects(ctx context.Context, vars uritemplate.Values) (string, error) {
	sceneID := vars.Get("sceneId").String()
	v, err := c.client.GetObjects(ctx, sceneID)
	if err != nil {
		return "", err
	}

	b := section(fmt.Sprintf("Objects in Scene (ID: %s)", sceneID))
	list := asList(v, "objects")
	if len(list) == 0 {
		b.WriteString("No objects available in this scene.")
		return b.String(), nil
	}
	for _, o := range list {
		fmt.Fprintf(b, "## %s\n\n", o.str("name"))
		fmt.Fprintf(b, "- ID: %s\n", o.str("id"))
		fmt.Fprintf(b, "- Type: %s\n", o.or("type", "N/A"))
		fmt.Fprintf(b, "- Resource URI: %s\n\n", link(ObjectTemplate, "sceneId", sceneID, "objectId", o.str("id")))
	}
	return b.String(), nil
}

func (c *Catalog) object(ctx context.Context, vars uritemplate.Values) (string, error) {
	v, err := c.client.GetObject(ctx, vars.Get("sceneId").String(), vars.Get("objectId").String())
	if err != nil {
		return "", err
	}
	o := asRecord(v)

	b := section("Spline Object: " + o.str("name"))
	b.WriteString("## Object Details\n\n")
	fmt.Fprintf(b, "- ID: %s\n", o.str("id"))
	fmt.Fprintf(b, "- Name: %s\n", o.str("name"))
	fmt.Fprintf(b, "- Type: %s\n", o.or("type", "N/A"))
	fmt.Fprintf(b, "- Visible: %s\n\n", o.yesNo("visible"))

	b.WriteString("## Transform\n\n")
	writeAxes(b, "Position", o.sub("position"), "0", "")
	writeAxes(b, "Rotation", o.sub("rotation"), "0", "°")
	writeAxes(b, "Scale", o.sub("scale"), "1", "")

	b.WriteString("## Material\n\n")
	if m := o.sub("material"); m != nil {
		fmt.Fprintf(b, "- Material ID: %s\n- Material Name: %s", m.str("id"), m.or("name", "N/A"))
	} else {
		b.WriteString("No material assigned")
	}
	return b.String(), nil
}

func writeAxes(b *strings.Builder, title string, v record, def, unit string) {
	fmt.Fprintf(b, "### %s\n", title)
	for _, axis := range []string{"x", "y", "z"} {
		fmt.Fprintf(b, "- %s: %s%s\n", strings.ToUpper(axis), v.or(axis, def), unit)
	}
	b.WriteString("\n")
}

func (c *Catalog) materials(ctx context.Context, vars uritemplate.Values) (string, error) {
	sceneID := vars.Get("sceneId").String()
	v, err := c.client.GetMaterials(ctx, sceneID)
	if err != nil {
		return "", err
	}

	b := section(fmt.Sprintf("Materials in Scene (ID: %s)", sceneID))
	list := asList(v, "materials")
	if len(list) == 0 {
		b.WriteString("No materials available in this scene.")
		return b.String(), nil
	}
	for _, m := range list {
		fmt.Fprintf(b, "## %s\n\n", m.str("name"))
		fmt.Fprintf(b, "- ID: %s\n", m.str("id"))
		fmt.Fprintf(b, "- Type: %s\n", m.or("type", "N/A"))
		fmt.Fprintf(b, "- Color: %s\n", m.or("color", "N/A"))
		fmt.Fprintf(b, "- Resource URI: %s\n\n", link(MaterialTemplate, "sceneId", sceneID, "materialId", m.str("id")))
	}
	return b.String(), nil
}

func (c *Catalog) material(ctx context.Context, vars uritemplate.Values) (string, error) {
	v, err := c.client.GetMaterial(ctx, vars.Get("sceneId").String(), vars.Get("materialId").String())
	if err != nil {
		return "", err
	}
	m := asRecord(v)

	b := section("Spline Material: " + m.str("name"))
	b.WriteString("## Material Details\n\n")
	fmt.Fprintf(b, "- ID: %s\n", m.str("id"))
	fmt.Fprintf(b, "- Name: %s\n", m.str("name"))
	fmt.Fprintf(b, "- Type: %s\n", m.or("type", "N/A"))
	fmt.Fprintf(b, "- Color: %s\n\n", m.or("color", "N/A"))
	b.WriteString("## Properties\n\n")
	fmt.Fprintf(b, "- Roughness: %s\n", m.defined("roughness"))
	fmt.Fprintf(b, "- Metalness: %s\n", m.defined("metalness"))
	fmt.Fprintf(b, "- Opacity: %s\n", m.defined("opacity"))
	fmt.Fprintf(b, "- Transparent: %s\n", m.yesNo("transparent"))
	fmt.Fprintf(b, "- Wireframe: %s\n", m.yesNo("wireframe"))
	fmt.Fprintf(b, "- Emissive: %s\n", m.or("emissive", "N/A"))
	fmt.Fprintf(b, "- Emissive Intensity: %s\n", m.defined("emissiveIntensity"))
	fmt.Fprintf(b, "- Side: %s\n", m.or("side", "N/A"))
	fmt.Fprintf(b, "- Flat Shading: %s", m.yesNo("flatShading"))
	return b.String(), nil
}

func (c *Catalog) states(ctx context.Context, vars uritemplate.Values) (string, error) {
	sceneID := vars.Get("sceneId").String()
	v, err := c.client.GetStates(ctx, sceneID)
	if err != nil {
		return "", err
	}

	b := section(fmt.Sprintf("States in Scene (ID: %s)", sceneID))
	list := asList(v, "states")
	if len(list) == 0 {
		b.WriteString("No states available in this scene.")
		return b.String(), nil
	}
	for _, s := range list {
		fmt.Fprintf(b, "## %s\n\n", s.str("name"))
		fmt.Fprintf(b, "- ID: %s\n", s.str("id"))
		fmt.Fprintf(b, "- Transition Duration: %s ms\n", s.or("transitionDuration", "N/A"))
		fmt.Fprintf(b, "- Affected Properties: %d\n", s.count("properties"))
		fmt.Fprintf(b, "- Resource URI: %s\n\n", link(StateTemplate, "sceneId", sceneID, "stateId", s.str("id")))
	}
	return b.String(), nil
}

func (c *Catalog) state(ctx context.Context, vars uritemplate.Values) (string, error) {
	v, err := c.client.GetState(ctx, vars.Get("sceneId").String(), vars.Get("stateId").String())
	if err != nil {
		return "", err
	}
	s := asRecord(v)

	b := section("Spline State: " + s.str("name"))
	b.WriteString("## State Details\n\n")
	fmt.Fprintf(b, "- ID: %s\n", s.str("id"))
	fmt.Fprintf(b, "- Name: %s\n", s.str("name"))
	fmt.Fprintf(b, "- Transition Duration: %s ms\n", s.or("transitionDuration", "N/A"))
	fmt.Fprintf(b, "- Transition Easing: %s\n\n", s.or("transitionEasing", "N/A"))

	props := asList(s.raw("properties"))
	if len(props) == 0 {
		b.WriteString("No properties defined for this state.")
		return b.String(), nil
	}
	b.WriteString("## Properties Changed\n\n")
	for i, p := range props {
		fmt.Fprintf(b, "### Property %d\n", i+1)
		fmt.Fprintf(b, "- Object: %s\n", p.str("objectId"))
		fmt.Fprintf(b, "- Property: %s\n", p.str("property"))
		fmt.Fprintf(b, "- Value: %s\n\n", jsonText(p.raw("value"), false))
	}
	return b.String(), nil
}

func (c *Catalog) events(ctx context.Context, vars uritemplate.Values) (string, error) {
	sceneID := vars.Get("sceneId").String()
	v, err := c.client.GetEvents(ctx, sceneID)
	if err != nil {
		return "", err
	}

	b := section(fmt.Sprintf("Events in Scene (ID: %s)", sceneID))
	list := asList(v, "events")
	if len(list) == 0 {
		b.WriteString("No events available in this scene.")
		return b.String(), nil
	}
	for _, e := range list {
		object := "Scene-level event"
		if id := e.or("objectId", ""); id != "" {
			object = "ID: " + id
		}
		fmt.Fprintf(b, "## %s\n\n", e.str("name"))
		fmt.Fprintf(b, "- ID: %s\n", e.str("id"))
		fmt.Fprintf(b, "- Type: %s\n", e.or("type", "N/A"))
		fmt.Fprintf(b, "- Object: %s\n", object)
		fmt.Fprintf(b, "- Actions: %d\n", e.count("actions"))
		fmt.Fprintf(b, "- Resource URI: %s\n\n", link(EventTemplate, "sceneId", sceneID, "eventId", e.str("id")))
	}
	return b.String(), nil
}

func (c *Catalog) event(ctx context.Context, vars uritemplate.Values) (string, error) {
	v, err := c.client.GetEvent(ctx, vars.Get("sceneId").String(), vars.Get("eventId").String())
	if err != nil {
		return "", err
	}
	e := asRecord(v)

	b := section("Spline Event: " + e.str("name"))
	b.WriteString("## Event Details\n\n")
	fmt.Fprintf(b, "- ID: %s\n", e.str("id"))
	fmt.Fprintf(b, "- Name: %s\n", e.str("name"))
	fmt.Fprintf(b, "- Type: %s\n", e.or("type", "N/A"))
	fmt.Fprintf(b, "- Object: %s\n\n", e.or("objectId", "N/A"))

	actions := asList(e.raw("actions"))
	if len(actions) == 0 {
		b.WriteString("No actions defined for this event.")
		return b.String(), nil
	}
	b.WriteString("## Actions\n\n")
	for i, a := range actions {
		params := a.raw("params")
		if params == nil {
			params = map[string]any{}
		}
		fmt.Fprintf(b, "### Action %d\n", i+1)
		fmt.Fprintf(b, "- Type: %s\n", a.str("type"))
		fmt.Fprintf(b, "- Target: %s\n", a.or("target", "N/A"))
		fmt.Fprintf(b, "- Parameters: %s\n\n", jsonText(params, true))
	}
	return b.String(), nil
}
