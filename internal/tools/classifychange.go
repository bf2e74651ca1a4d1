package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"guardian/internal/artifact"
	"guardian/internal/classify"
)

// ClassifyChangeTool handles the guardian_classify_change MCP tool.
type ClassifyChangeTool struct{}

// NewClassifyChangeTool creates a ClassifyChangeTool.
func NewClassifyChangeTool() *ClassifyChangeTool {
	return &ClassifyChangeTool{}
}

// Definition returns the MCP tool definition for guardian_classify_change.
func (t *ClassifyChangeTool) Definition() mcp.Tool {
	return mcp.NewTool("guardian_classify_change",
		mcp.WithDescription(
			"Classify a change request BEFORE making any code changes. "+
				"Returns the change class and the rules to follow while making that kind of change.",
		),
		mcp.WithString("request",
			mcp.Required(),
			mcp.Description("The user's change request, verbatim"),
		),
		mcp.WithString("files_to_modify",
			mcp.Description("Comma-separated list of files you plan to touch"),
		),
		mcp.WithString("project_path",
			mcp.Description("Project root; when given, planned files are checked against the memory artifact"),
		),
	)
}

// Handle processes the guardian_classify_change tool call.
func (t *ClassifyChangeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	request := req.GetString("request", "")
	if request == "" {
		return mcp.NewToolResultError("'request' is required"), nil
	}

	result := classify.Classify(request)

	var b strings.Builder
	fmt.Fprintf(&b, "Classification: %s (confidence %.2f)\n", result.Classification, result.Confidence)
	fmt.Fprintf(&b, "%s\n\nRules:\n", result.Description)
	for _, rule := range result.Rules {
		fmt.Fprintf(&b, "  - %s\n", rule)
	}

	root := req.GetString("project_path", "")
	planned := splitFiles(req.GetString("files_to_modify", ""))
	if root != "" && len(planned) > 0 {
		mem := artifact.New(root)
		if mem.Exists() {
			known := mem.Files()
			for _, f := range planned {
				if entry, ok := known[f]; ok {
					fmt.Fprintf(&b, "\nKnown file: %s (%s)", f, entry.Purpose)
				}
			}
		}
	}

	return mcp.NewToolResultText(b.String()), nil
}
