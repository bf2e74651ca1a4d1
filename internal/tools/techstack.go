package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"guardian/internal/artifact"
)

// TechStackTool handles the guardian_get_tech_stack MCP tool.
type TechStackTool struct{}

// NewTechStackTool creates a TechStackTool.
func NewTechStackTool() *TechStackTool {
	return &TechStackTool{}
}

// Definition returns the MCP tool definition for guardian_get_tech_stack.
func (t *TechStackTool) Definition() mcp.Tool {
	return mcp.NewTool("guardian_get_tech_stack",
		mcp.WithDescription(
			"Read the project's tech stack from its memory artifact. "+
				"Use this to know which technologies to use and suggest.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
	)
}

// Handle processes the guardian_get_tech_stack tool call.
func (t *TechStackTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("project_path", "")
	if root == "" {
		return mcp.NewToolResultError("'project_path' is required"), nil
	}

	mem := artifact.New(root)
	if !mem.Exists() {
		return mcp.NewToolResultError("no memory artifact found; run guardian_scan first"), nil
	}

	stack := mem.TechStack()
	if len(stack) == 0 {
		return mcp.NewToolResultText("No tech stack recorded in the artifact."), nil
	}

	keys := make([]string, 0, len(stack))
	for k := range stack {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Tech stack:\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s\n", k, stack[k])
	}
	return mcp.NewToolResultText(b.String()), nil
}
