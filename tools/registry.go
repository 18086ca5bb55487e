package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/mcp-training/splinemcp/openai"
	"github.com/wricardo/mcp-training/splinemcp/spline"
)

// HandlerFunc does the work of one tool. The returned text becomes the only
// content item of the result.
type HandlerFunc func(ctx context.Context, args Args) (string, error)

// Spec declares a tool: its MCP schema, the verb phrase used in error
// messages ("retrieving scene" gives "Error retrieving scene: ...") and the
// handler.
type Spec struct {
	Tool   mcp.Tool
	Verb   string
	Handle HandlerFunc
}

// Deps are the collaborators tool handlers call out to.
type Deps struct {
	Spline *spline.Client
	OpenAI *openai.Client
	// HTTP posts to arbitrary webhook URLs for sendWebhookData.
	HTTP   *http.Client
	Logger *log.Logger
}

// Registry is the catalog of tools served by the MCP server.
type Registry struct {
	specs      []Spec
	index      map[string]int
	schemas    map[string]map[string]any
	validators map[string]*jsonschema.Resolved
	logger     *log.Logger
}

// New builds the full Spline tool catalog.
func New(deps Deps) *Registry {
	if deps.HTTP == nil {
		deps.HTTP = &http.Client{Timeout: 30 * time.Second}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard, "", 0)
	}

	r := NewEmpty(deps.Logger)
	t := &toolset{Deps: deps}

	r.Add(t.sceneTools()...)
	r.Add(t.objectTools()...)
	r.Add(t.materialTools()...)
	r.Add(t.stateEventTools()...)
	r.Add(t.integrationTools()...)
	r.Add(t.actionTools()...)
	r.Add(t.advancedEventTools()...)
	r.Add(t.layerTools()...)
	r.Add(t.lightingTools()...)
	r.Add(t.physicsTools()...)
	r.Add(t.particleTools()...)
	r.Add(t.modelingTools()...)
	r.Add(t.snapshotTools()...)
	r.Add(t.projectTools()...)
	r.Add(t.runtimeTools()...)
	return r
}

// NewEmpty returns a registry with no tools.
func NewEmpty(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Registry{
		index:      make(map[string]int),
		schemas:    make(map[string]map[string]any),
		validators: make(map[string]*jsonschema.Resolved),
		logger:     logger,
	}
}

// Add appends specs to the catalog. A later spec with the same name shadows
// an earlier one; Specs still reports both so the catalog linter can flag it.
func (r *Registry) Add(specs ...Spec) {
	for _, s := range specs {
		name := s.Tool.Name
		r.index[name] = len(r.specs)
		r.specs = append(r.specs, s)
		delete(r.schemas, name)
		delete(r.validators, name)

		schema, err := InputSchema(s.Tool)
		if err != nil {
			r.logger.Printf("tool %s: unreadable input schema: %v", name, err)
			continue
		}
		r.schemas[name] = schema

		resolved, err := compileSchema(schema)
		if err != nil {
			r.logger.Printf("tool %s: invalid input schema: %v", name, err)
			continue
		}
		r.validators[name] = resolved
	}
}

// Specs returns every declared spec in registration order.
func (r *Registry) Specs() []Spec {
	out := make([]Spec, len(r.specs))
	copy(out, r.specs)
	return out
}

// Lookup finds a spec by tool name.
func (r *Registry) Lookup(name string) (Spec, bool) {
	i, ok := r.index[name]
	if !ok {
		return Spec{}, false
	}
	return r.specs[i], true
}

// Schema returns the decoded input schema of the tool served under name.
func (r *Registry) Schema(name string) (map[string]any, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// ServerTools adapts the catalog to mcp-go, wrapping each handler in the
// result envelope.
func (r *Registry) ServerTools() []server.ServerTool {
	out := make([]server.ServerTool, 0, len(r.index))
	for i, s := range r.specs {
		if r.index[s.Tool.Name] != i {
			continue
		}
		out = append(out, server.ServerTool{Tool: s.Tool, Handler: r.envelope(s)})
	}
	return out
}

// Register adds every tool to s. Validation is installed separately with
// server.WithToolHandlerMiddleware(r.ValidationMiddleware).
func (r *Registry) Register(s *server.MCPServer) {
	s.AddTools(r.ServerTools()...)
}

// Call runs a tool the same way the MCP server would: validation first,
// then the enveloped handler.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	spec, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("tool '%s' not found", name)
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return r.ValidationMiddleware(r.envelope(spec))(ctx, req)
}

// envelope turns handler errors and panics into isError results so nothing
// but argument validation failures reaches the JSON-RPC layer.
func (r *Registry) envelope(spec Spec) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
		defer func() {
			if p := recover(); p != nil {
				r.logger.Printf("tool %s panicked: %v", spec.Tool.Name, p)
				result, err = mcp.NewToolResultError(fmt.Sprintf("Error %s: %v", spec.Verb, p)), nil
			}
		}()

		text, herr := spec.Handle(ctx, Args(req.GetArguments()))
		if herr != nil {
			r.logger.Printf("tool %s failed: %v", spec.Tool.Name, herr)
			return mcp.NewToolResultError(errorText(spec.Verb, herr)), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// plainError is a handler failure reported verbatim, without the verb
// prefix.
type plainError struct {
	msg string
}

func (e *plainError) Error() string { return e.msg }

func failf(format string, args ...any) error {
	return &plainError{msg: fmt.Sprintf(format, args...)}
}

func errorText(verb string, err error) string {
	var pe *plainError
	if errors.As(err, &pe) {
		return pe.msg
	}
	return fmt.Sprintf("Error %s: %s", verb, err.Error())
}

// InputSchema decodes a tool's input schema into generic JSON values.
func InputSchema(tool mcp.Tool) (map[string]any, error) {
	raw := tool.RawInputSchema
	if raw == nil {
		var err error
		if raw, err = json.Marshal(tool.InputSchema); err != nil {
			return nil, err
		}
	}
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, err
	}
	return schema, nil
}

// toolset carries the dependencies shared by the tool builders.
type toolset struct {
	Deps
}

// pretty renders an upstream payload as 2-space indented JSON.
func pretty(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// idOf extracts the "id" field of a create response.
func idOf(v any) string {
	return fieldOf(v, "id")
}

// fieldOf returns a top-level field of an upstream object, or "unknown".
func fieldOf(v any, key string) string {
	if m, ok := v.(map[string]any); ok {
		if f, ok := m[key]; ok && f != nil {
			return fmt.Sprint(f)
		}
	}
	return "unknown"
}
