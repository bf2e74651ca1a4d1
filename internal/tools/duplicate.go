package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"guardian/internal/artifact"
)

// CheckDuplicateTool handles the guardian_check_duplicate MCP tool.
type CheckDuplicateTool struct{}

// NewCheckDuplicateTool creates a CheckDuplicateTool.
func NewCheckDuplicateTool() *CheckDuplicateTool {
	return &CheckDuplicateTool{}
}

// Definition returns the MCP tool definition for guardian_check_duplicate.
func (t *CheckDuplicateTool) Definition() mcp.Tool {
	return mcp.NewTool("guardian_check_duplicate",
		mcp.WithDescription(
			"Check whether a file with a similar purpose already exists. "+
				"Call this BEFORE creating any new file.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
		mcp.WithString("purpose",
			mcp.Required(),
			mcp.Description("Purpose of the file you are about to create (e.g. 'auth service')"),
		),
	)
}

// Handle processes the guardian_check_duplicate tool call.
func (t *CheckDuplicateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("project_path", "")
	purpose := req.GetString("purpose", "")
	if root == "" {
		return mcp.NewToolResultError("'project_path' is required"), nil
	}
	if purpose == "" {
		return mcp.NewToolResultError("'purpose' is required"), nil
	}

	mem := artifact.New(root)
	if !mem.Exists() {
		return mcp.NewToolResultError("no memory artifact found; run guardian_scan first"), nil
	}

	matches := findByPurpose(mem.Files(), purpose)
	if len(matches) == 0 {
		return mcp.NewToolResultText("No duplicate found. Safe to create a new file."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Duplicate purpose found (%d match(es)):\n", len(matches))
	for _, m := range matches {
		fmt.Fprintf(&b, "  %s: %s\n", m.path, m.purpose)
	}
	b.WriteString("Consider modifying an existing file instead of creating a new one.")
	return mcp.NewToolResultText(b.String()), nil
}

type purposeMatch struct {
	path    string
	purpose string
}

// findByPurpose matches case-insensitively in both directions: the query
// containing a recorded purpose counts the same as the reverse.
func findByPurpose(files map[string]artifact.FileEntry, purpose string) []purposeMatch {
	query := strings.ToLower(purpose)

	var matches []purposeMatch
	for path, entry := range files {
		recorded := strings.ToLower(entry.Purpose)
		if recorded == "" {
			continue
		}
		if strings.Contains(recorded, query) || strings.Contains(query, recorded) {
			matches = append(matches, purposeMatch{path: path, purpose: entry.Purpose})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].path < matches[j].path })
	return matches
}
