// Command catalog prints every tool, resource and prompt the MCP server
// registers. With -check it lints the catalog and exits 1 on any problem:
// duplicate names, required arguments missing from the schema properties,
// and enum defaults outside their enum.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/splinemcp/prompts"
	"github.com/wricardo/mcp-training/splinemcp/resources"
	"github.com/wricardo/mcp-training/splinemcp/spline"
	"github.com/wricardo/mcp-training/splinemcp/tools"
)

// catalog is everything the server would register.
type catalog struct {
	tools     *tools.Registry
	templates []server.ServerResourceTemplate
	resources []server.ServerResource
	prompts   []prompts.Spec
}

func load() catalog {
	client := spline.NewClient(spline.Config{})
	res := resources.NewCatalog(client)
	return catalog{
		tools:     tools.New(tools.Deps{Spline: client}),
		templates: res.Templates(),
		resources: res.Resources(),
		prompts:   prompts.Catalog(),
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "catalog",
		Usage: "print or lint the MCP catalog",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "check", Usage: "lint the catalog and exit 1 on problems"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c := load()
			if !cmd.Bool("check") {
				c.print(os.Stdout)
				return nil
			}

			problems := c.lint()
			for _, p := range problems {
				fmt.Fprintln(os.Stderr, p)
			}
			if len(problems) > 0 {
				return cli.Exit(fmt.Sprintf("%d catalog problems", len(problems)), 1)
			}
			fmt.Printf("Catalog OK: %d tools, %d resources, %d templates, %d prompts\n",
				len(c.tools.Specs()), len(c.resources), len(c.templates), len(c.prompts))
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func (c catalog) print(w io.Writer) {
	fmt.Fprintf(w, "=== Tools (%d) ===\n", len(c.tools.Specs()))
	for _, s := range c.tools.Specs() {
		fmt.Fprintf(w, "  %-32s %s\n", s.Tool.Name, s.Tool.Description)
	}

	fmt.Fprintf(w, "\n=== Resources (%d) ===\n", len(c.resources)+len(c.templates))
	for _, r := range c.resources {
		fmt.Fprintf(w, "  %-40s %s\n", r.Resource.URI, r.Resource.Description)
	}
	for _, t := range c.templates {
		fmt.Fprintf(w, "  %-40s %s\n", t.Template.URITemplate.Raw(), t.Template.Description)
	}

	fmt.Fprintf(w, "\n=== Prompts (%d) ===\n", len(c.prompts))
	for _, p := range c.prompts {
		var args []string
		for _, a := range p.Prompt.Arguments {
			if a.Required {
				args = append(args, a.Name+"*")
			} else {
				args = append(args, a.Name)
			}
		}
		fmt.Fprintf(w, "  %-32s %s\n", p.Prompt.Name, strings.Join(args, ", "))
	}
}

// lint returns one line per problem, sorted.
func (c catalog) lint() []string {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	seen := map[string]int{}
	for _, s := range c.tools.Specs() {
		name := s.Tool.Name
		seen[name]++
		if seen[name] == 2 {
			add("tool %s: duplicate name", name)
		}
		if strings.TrimSpace(s.Tool.Description) == "" {
			add("tool %s: missing description", name)
		}

		schema, err := tools.InputSchema(s.Tool)
		if err != nil {
			add("tool %s: unreadable input schema: %v", name, err)
			continue
		}
		for _, p := range checkSchema(schema) {
			add("tool %s: %s", name, p)
		}
	}

	uris := map[string]bool{}
	for _, r := range c.resources {
		if uris[r.Resource.URI] {
			add("resource %s: duplicate URI", r.Resource.URI)
		}
		uris[r.Resource.URI] = true
	}
	for _, t := range c.templates {
		raw := t.Template.URITemplate.Raw()
		if uris[raw] {
			add("resource template %s: duplicate URI", raw)
		}
		uris[raw] = true
	}

	names := map[string]bool{}
	for _, p := range c.prompts {
		if names[p.Prompt.Name] {
			add("prompt %s: duplicate name", p.Prompt.Name)
		}
		names[p.Prompt.Name] = true

		args := map[string]bool{}
		for _, a := range p.Prompt.Arguments {
			if args[a.Name] {
				add("prompt %s: duplicate argument %s", p.Prompt.Name, a.Name)
			}
			args[a.Name] = true
		}
	}

	sort.Strings(problems)
	return problems
}

// checkSchema verifies required names and enum defaults of an object schema,
// descending into nested object properties.
func checkSchema(schema map[string]any) []string {
	var problems []string
	props, _ := schema["properties"].(map[string]any)

	required, _ := schema["required"].([]any)
	for _, r := range required {
		name := fmt.Sprint(r)
		if _, ok := props[name]; !ok {
			problems = append(problems, fmt.Sprintf("required %s is not a property", name))
		}
	}

	for name, raw := range props {
		prop, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if def, ok := prop["default"]; ok {
			if enum, ok := prop["enum"].([]any); ok && !contains(enum, def) {
				problems = append(problems, fmt.Sprintf("%s: default %v is not in enum", name, def))
			}
		}
		if _, ok := prop["properties"]; ok {
			for _, p := range checkSchema(prop) {
				problems = append(problems, name+"."+p)
			}
		}
	}
	return problems
}

func contains(enum []any, v any) bool {
	for _, e := range enum {
		if fmt.Sprint(e) == fmt.Sprint(v) {
			return true
		}
	}
	return false
}
