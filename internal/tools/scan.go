package tools

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"guardian/internal/artifact"
	"guardian/internal/history"
	"guardian/internal/scan"
)

// ScanTool handles the guardian_scan MCP tool.
type ScanTool struct {
	store *history.Store
}

// NewScanTool creates a ScanTool. The history store may be nil, in
// which case scans are not recorded.
func NewScanTool(store *history.Store) *ScanTool {
	return &ScanTool{store: store}
}

// Definition returns the MCP tool definition for guardian_scan.
func (t *ScanTool) Definition() mcp.Tool {
	return mcp.NewTool("guardian_scan",
		mcp.WithDescription(
			"Scan a project directory and write its memory artifact (guardian.mdc). "+
				"Call this on first contact with a project, or after major changes, to refresh the snapshot.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
		mcp.WithString("output",
			mcp.Description("Artifact path relative to the project root (default: existing artifact location, or guardian.mdc)"),
		),
	)
}

// Handle processes the guardian_scan tool call.
func (t *ScanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("project_path", "")
	if root == "" {
		return mcp.NewToolResultError("'project_path' is required"), nil
	}

	scanner, err := scan.New(root)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	snap, rendered, err := scanner.ScanAndRender()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	out := req.GetString("output", "")
	if out == "" {
		out = artifact.New(root).WritePath()
	} else {
		out = artifact.WritePathFor(root, out)
	}
	if err := os.WriteFile(out, []byte(rendered), 0o644); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("write artifact: %v", err)), nil
	}

	if t.store != nil {
		_, err := t.store.AddScan(history.AddScanParams{
			Project:     snap.Identity.Name,
			Root:        scanner.Root(),
			FileCount:   len(snap.Files),
			Connections: len(snap.Connections),
			TechStack:   snap.TechStack,
		})
		if err != nil {
			log.Printf("WARNING: failed to record scan in history: %v", err)
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Scanned %q: %d files, %d connections.\nArtifact written to %s",
		snap.Identity.Name, len(snap.Files), len(snap.Connections), out,
	)), nil
}
