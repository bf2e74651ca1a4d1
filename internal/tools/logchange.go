package tools

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"guardian/internal/artifact"
	"guardian/internal/history"
)

// LogChangeTool handles the guardian_log_change MCP tool.
type LogChangeTool struct {
	store *history.Store
}

// NewLogChangeTool creates a LogChangeTool. The history store may be nil.
func NewLogChangeTool(store *history.Store) *LogChangeTool {
	return &LogChangeTool{store: store}
}

// Definition returns the MCP tool definition for guardian_log_change.
func (t *LogChangeTool) Definition() mcp.Tool {
	return mcp.NewTool("guardian_log_change",
		mcp.WithDescription(
			"Record a completed change in the memory artifact's CHANGES section. "+
				"Call this AFTER successfully completing a change.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
		mcp.WithString("description",
			mcp.Required(),
			mcp.Description("One-line description of what changed"),
		),
		mcp.WithString("files",
			mcp.Description("Comma-separated list of modified files"),
		),
	)
}

// Handle processes the guardian_log_change tool call.
func (t *LogChangeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("project_path", "")
	description := req.GetString("description", "")
	if root == "" {
		return mcp.NewToolResultError("'project_path' is required"), nil
	}
	if description == "" {
		return mcp.NewToolResultError("'description' is required"), nil
	}

	mem := artifact.New(root)
	if !mem.Exists() {
		return mcp.NewToolResultError("no memory artifact found; run guardian_scan first"), nil
	}

	files := splitFiles(req.GetString("files", ""))
	date := time.Now().Format("2006-01-02")
	if err := mem.AddChange(date, description, files); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to log change: %v", err)), nil
	}

	if t.store != nil {
		_, err := t.store.AddChange(history.AddChangeParams{
			Project:     filepath.Base(root),
			Description: description,
			Files:       files,
			Source:      "log_change",
		})
		if err != nil {
			log.Printf("WARNING: failed to record change in history: %v", err)
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf("Change logged: %s", description)), nil
}

// splitFiles parses a comma-separated file list, dropping empty entries.
func splitFiles(raw string) []string {
	if raw == "" {
		return nil
	}
	var files []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			files = append(files, f)
		}
	}
	return files
}
