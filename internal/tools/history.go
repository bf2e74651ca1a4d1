package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"guardian/internal/history"
)

// HistoryTool handles the guardian_history MCP tool.
type HistoryTool struct {
	store *history.Store
}

// NewHistoryTool creates a HistoryTool. The history store may be nil.
func NewHistoryTool(store *history.Store) *HistoryTool {
	return &HistoryTool{store: store}
}

// Definition returns the MCP tool definition for guardian_history.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("guardian_history",
		mcp.WithDescription(
			"Show recent scans and logged changes from persistent history. "+
				"Use this to learn what happened to a project in earlier sessions.",
		),
		mcp.WithString("project",
			mcp.Description("Filter by project name (default: all projects)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum entries per section (default: 10)"),
		),
	)
}

// Handle processes the guardian_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.store == nil {
		return mcp.NewToolResultError("history store is not available"), nil
	}

	project := req.GetString("project", "")
	limit := intArg(req, "limit", 10)

	scans, err := t.store.RecentScans(project, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load scans: %v", err)), nil
	}
	changes, err := t.store.RecentChanges(project, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load changes: %v", err)), nil
	}

	if len(scans) == 0 && len(changes) == 0 {
		return mcp.NewToolResultText("No history recorded yet."), nil
	}

	var b strings.Builder
	if len(scans) > 0 {
		b.WriteString("Recent scans:\n")
		for _, s := range scans {
			fmt.Fprintf(&b, "  [%s] %s: %d files, %d connections (%s)\n",
				s.CreatedAt, s.Project, s.FileCount, s.Connections, s.Root)
		}
	}
	if len(changes) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Recent changes:\n")
		for _, c := range changes {
			fmt.Fprintf(&b, "  [%s] %s: %s", c.CreatedAt, c.Project, c.Description)
			if len(c.Files) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.Join(c.Files, ", "))
			}
			b.WriteString("\n")
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
