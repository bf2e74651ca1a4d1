package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"guardian/internal/artifact"
)

// FileMapTool handles the guardian_get_file_map MCP tool.
type FileMapTool struct{}

// NewFileMapTool creates a FileMapTool.
func NewFileMapTool() *FileMapTool {
	return &FileMapTool{}
}

// Definition returns the MCP tool definition for guardian_get_file_map.
func (t *FileMapTool) Definition() mcp.Tool {
	return mcp.NewTool("guardian_get_file_map",
		mcp.WithDescription(
			"Read the project's file registry from its memory artifact. "+
				"Use this to know WHERE to create or modify files before touching the tree.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
	)
}

// Handle processes the guardian_get_file_map tool call.
func (t *FileMapTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("project_path", "")
	if root == "" {
		return mcp.NewToolResultError("'project_path' is required"), nil
	}

	mem := artifact.New(root)
	if !mem.Exists() {
		return mcp.NewToolResultError("no memory artifact found; run guardian_scan first"), nil
	}

	files := mem.Files()
	if len(files) == 0 {
		return mcp.NewToolResultText("No files recorded in the artifact."), nil
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var b strings.Builder
	fmt.Fprintf(&b, "File map (%d files):\n", len(files))
	for _, p := range paths {
		entry := files[p]
		if len(entry.Symbols) > 0 {
			fmt.Fprintf(&b, "  %s: %s | %s\n", p, entry.Purpose, strings.Join(entry.Symbols, ", "))
		} else {
			fmt.Fprintf(&b, "  %s: %s\n", p, entry.Purpose)
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
