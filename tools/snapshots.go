package tools

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/splinemcp/spline"
)

func snapshotPath(args Args, rest ...string) string {
	return spline.Path(append([]string{"scenes", args.String("sceneId"), "snapshots"}, rest...)...)
}

// withJSON appends a pretty-printed payload below a summary line.
func withJSON(summary string, v any) (string, error) {
	body, err := pretty(v)
	if err != nil {
		return "", err
	}
	return summary + "\n\n" + body, nil
}

func fieldValue(v any, key string) any {
	if m, ok := v.(map[string]any); ok {
		return m[key]
	}
	return nil
}

func (t *toolset) snapshotTools() []Spec {
	return []Spec{
		{
			Tool: mcp.NewTool("createSnapshot",
				mcp.WithDescription("Save a snapshot of the current scene"),
				sceneIDArg(),
				mcp.WithString("name", mcp.Description("Snapshot name")),
				mcp.WithString("description", mcp.Description("Snapshot description")),
				mcp.WithArray("tags", mcp.WithStringItems(), mcp.Description("Snapshot tags")),
			),
			Verb: "creating snapshot",
			Handle: func(ctx context.Context, args Args) (string, error) {
				result, err := t.Spline.Request(ctx, http.MethodPost, snapshotPath(args), args.Pick("name", "description", "tags"))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Created snapshot \"%s\" (ID: %s)", args.StringOr("name", "Unnamed"), fieldOf(result, "snapshotId")), nil
			},
		},
		{
			Tool: mcp.NewTool("listSnapshots",
				mcp.WithDescription("List the snapshots of a scene"),
				sceneIDArg(),
				mcp.WithNumber("page", mcp.Min(1), mcp.DefaultNumber(1), mcp.Description("Page number")),
				mcp.WithNumber("pageSize", mcp.Min(1), mcp.Max(100), mcp.DefaultNumber(20), mcp.Description("Snapshots per page")),
				mcp.WithArray("tags", mcp.WithStringItems(), mcp.Description("Filter by tags")),
				readOnly(),
			),
			Verb: "listing snapshots",
			Handle: func(ctx context.Context, args Args) (string, error) {
				query := map[string]any{
					"page":     args.Int("page", 1),
					"pageSize": args.Int("pageSize", 20),
				}
				if tags := args.Strings("tags"); len(tags) > 0 {
					query["tags"] = strings.Join(tags, ",")
				}
				result, err := t.Spline.Request(ctx, http.MethodGet, snapshotPath(args), query)
				if err != nil {
					return "", err
				}
				items := fieldValue(result, "items")
				if items == nil {
					items = []any{}
				}
				return withJSON(fmt.Sprintf("Found %s snapshots for scene %s", fieldOf(result, "total"), args.String("sceneId")), items)
			},
		},
		{
			Tool: mcp.NewTool("restoreSnapshot",
				mcp.WithDescription("Restore a scene to a snapshot"),
				sceneIDArg(),
				idArg("snapshotId", "Snapshot ID"),
				mcp.WithBoolean("createBackup", mcp.DefaultBool(true), mcp.Description("Create backup of current state before restoring")),
			),
			Verb: "restoring snapshot",
			Handle: func(ctx context.Context, args Args) (string, error) {
				id := args.String("snapshotId")
				backup := args.Bool("createBackup", true)
				if _, err := t.Spline.Request(ctx, http.MethodPost, snapshotPath(args, id, "restore"), map[string]any{"createBackup": backup}); err != nil {
					return "", err
				}
				msg := "Restored snapshot " + id
				if backup {
					msg += " with backup of current state"
				}
				return msg, nil
			},
		},
		{
			Tool: mcp.NewTool("compareSnapshots",
				mcp.WithDescription("Show the differences between two snapshots"),
				sceneIDArg(),
				idArg("snapshotAId", "First snapshot ID"),
				idArg("snapshotBId", "Second snapshot ID"),
				readOnly(),
			),
			Verb: "comparing snapshots",
			Handle: func(ctx context.Context, args Args) (string, error) {
				result, err := t.Spline.Request(ctx, http.MethodPost, snapshotPath(args, "compare"), args.Pick("snapshotAId", "snapshotBId"))
				if err != nil {
					return "", err
				}
				return withJSON("Snapshot comparison results:", fieldValue(result, "differences"))
			},
		},
		{
			Tool: mcp.NewTool("mergeSnapshot",
				mcp.WithDescription("Merge a snapshot into the current scene"),
				sceneIDArg(),
				idArg("snapshotId", "Snapshot ID to merge into current scene"),
				mcp.WithString("mergeStrategy", mcp.Enum("overwrite", "additive", "selective"), mcp.DefaultString("selective"), mcp.Description("Merge strategy")),
				mcp.WithArray("objectIdsToMerge", mcp.WithStringItems(), mcp.Description("Object IDs to merge (for selective strategy)")),
				mcp.WithArray("stateIdsToMerge", mcp.WithStringItems(), mcp.Description("State IDs to merge (for selective strategy)")),
				mcp.WithArray("eventIdsToMerge", mcp.WithStringItems(), mcp.Description("Event IDs to merge (for selective strategy)")),
				mcp.WithBoolean("createBackup", mcp.DefaultBool(true), mcp.Description("Create backup of current state before merging")),
			),
			Verb: "merging snapshot",
			Handle: func(ctx context.Context, args Args) (string, error) {
				id := args.String("snapshotId")
				strategy := args.StringOr("mergeStrategy", "selective")
				body := args.Pick("objectIdsToMerge", "stateIdsToMerge", "eventIdsToMerge")
				body["mergeStrategy"] = strategy
				body["createBackup"] = args.Bool("createBackup", true)
				if _, err := t.Spline.Request(ctx, http.MethodPost, snapshotPath(args, id, "merge"), body); err != nil {
					return "", err
				}
				return fmt.Sprintf("Merged snapshot %s using %s strategy", id, strategy), nil
			},
		},
		{
			Tool: mcp.NewTool("exportSnapshot",
				mcp.WithDescription("Export a snapshot for download"),
				sceneIDArg(),
				idArg("snapshotId", "Snapshot ID"),
				mcp.WithString("format", mcp.Enum("spline", "json"), mcp.DefaultString("spline"), mcp.Description("Export format")),
			),
			Verb: "exporting snapshot",
			Handle: func(ctx context.Context, args Args) (string, error) {
				id := args.String("snapshotId")
				format := args.StringOr("format", "spline")
				result, err := t.Spline.Request(ctx, http.MethodPost, snapshotPath(args, id, "export"), map[string]any{"format": format})
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("Exported snapshot %s in %s format. Download URL: %s", id, format, fieldOf(result, "downloadUrl")), nil
			},
		},
		{
			Tool: mcp.NewTool("deleteSnapshot",
				mcp.WithDescription("Delete a snapshot"),
				sceneIDArg(),
				idArg("snapshotId", "Snapshot ID"),
			),
			Verb: "deleting snapshot",
			Handle: func(ctx context.Context, args Args) (string, error) {
				id := args.String("snapshotId")
				if _, err := t.Spline.Request(ctx, http.MethodDelete, snapshotPath(args, id), nil); err != nil {
					return "", err
				}
				return "Deleted snapshot " + id, nil
			},
		},
	}
}
