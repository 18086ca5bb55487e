package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var ErrInvalidArguments = errors.New("invalid arguments")

// ValidationMiddleware checks call arguments against the tool's input schema
// before the handler runs. A failure is returned as an error, which the MCP
// server reports as a JSON-RPC error.
func (r *Registry) ValidationMiddleware(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resolved, ok := r.validators[req.Params.Name]
		if !ok {
			return next(ctx, req)
		}

		args := req.GetArguments()
		if args == nil {
			if req.Params.Arguments != nil {
				return nil, fmt.Errorf("%w: arguments must be an object", ErrInvalidArguments)
			}
			args = map[string]any{}
		}

		if err := check(resolved, args); err != nil {
			return nil, err
		}
		return next(ctx, req)
	}
}

// Validate checks an argument object against a JSON schema.
func Validate(schema map[string]any, args map[string]any) error {
	resolved, err := compileSchema(schema)
	if err != nil {
		return err
	}
	return check(resolved, args)
}

// compileSchema resolves a decoded input schema. The $schema and $id
// keywords are dropped so generated and hand-built schemas resolve alike.
func compileSchema(schema map[string]any) (*jsonschema.Resolved, error) {
	trimmed := make(map[string]any, len(schema))
	for k, v := range schema {
		if k == "$schema" || k == "$id" {
			continue
		}
		trimmed[k] = v
	}

	raw, err := json.Marshal(trimmed)
	if err != nil {
		return nil, err
	}
	var s jsonschema.Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decoding input schema: %w", err)
	}
	return s.Resolve(&jsonschema.ResolveOptions{})
}

func check(resolved *jsonschema.Resolved, args map[string]any) error {
	instance, err := normalize(args)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	if err := resolved.Validate(instance); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArguments, err)
	}
	return nil
}

// normalize round-trips args through JSON so Go callers and decoded requests
// validate alike. Null members are dropped: a null argument counts as absent.
func normalize(args map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	dropNulls(out)
	return out, nil
}

func dropNulls(v any) {
	switch val := v.(type) {
	case map[string]any:
		for k, e := range val {
			if e == nil {
				delete(val, k)
				continue
			}
			dropNulls(e)
		}
	case []any:
		for _, e := range val {
			dropNulls(e)
		}
	}
}
