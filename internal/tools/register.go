package tools

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"guardian/internal/artifact"
	"guardian/internal/history"
	"guardian/internal/scan"
)

// RegisterFileTool handles the guardian_register_file MCP tool.
type RegisterFileTool struct {
	store *history.Store
}

// NewRegisterFileTool creates a RegisterFileTool. The history store may
// be nil.
func NewRegisterFileTool(store *history.Store) *RegisterFileTool {
	return &RegisterFileTool{store: store}
}

// Definition returns the MCP tool definition for guardian_register_file.
func (t *RegisterFileTool) Definition() mcp.Tool {
	return mcp.NewTool("guardian_register_file",
		mcp.WithDescription(
			"Register a newly created file in the memory artifact's FILES section. "+
				"Call this AFTER creating any new file. Symbols are extracted automatically.",
		),
		mcp.WithString("project_path",
			mcp.Required(),
			mcp.Description("Absolute path to the project root"),
		),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path of the new file, relative to the project root"),
		),
		mcp.WithString("purpose",
			mcp.Description("Short purpose of the file (default: derived from the file name)"),
		),
	)
}

// Handle processes the guardian_register_file tool call.
func (t *RegisterFileTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	root := req.GetString("project_path", "")
	rel := req.GetString("file_path", "")
	if root == "" {
		return mcp.NewToolResultError("'project_path' is required"), nil
	}
	if rel == "" {
		return mcp.NewToolResultError("'file_path' is required"), nil
	}

	mem := artifact.New(root)
	if !mem.Exists() {
		return mcp.NewToolResultError("no memory artifact found; run guardian_scan first"), nil
	}

	abs := filepath.Join(root, filepath.FromSlash(rel))
	content, err := os.ReadFile(abs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("file not found: %s", rel)), nil
	}

	var symbols []string
	if lang := scan.LanguageForExt(strings.ToLower(filepath.Ext(rel))); lang != "" {
		symbols = scan.ExtractSymbols(string(content), lang)
	}

	purpose := req.GetString("purpose", "")
	if purpose == "" {
		purpose = purposeFromName(rel)
	}

	if err := mem.AddFile(rel, purpose, symbols); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to register file: %v", err)), nil
	}

	date := time.Now().Format("2006-01-02")
	description := "Added " + rel
	if err := mem.AddChange(date, description, []string{rel}); err != nil {
		log.Printf("WARNING: failed to log change for %s: %v", rel, err)
	}
	if t.store != nil {
		_, err := t.store.AddChange(history.AddChangeParams{
			Project:     filepath.Base(root),
			Description: description,
			Files:       []string{rel},
			Source:      "register_file",
		})
		if err != nil {
			log.Printf("WARNING: failed to record change in history: %v", err)
		}
	}

	response := fmt.Sprintf("Registered %s (%s)", rel, purpose)
	if len(symbols) > 0 {
		response += "\nSymbols: " + strings.Join(symbols, ", ")
	}
	return mcp.NewToolResultText(response), nil
}

// purposeFromName derives a readable purpose from a file name stem.
func purposeFromName(rel string) string {
	stem := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")
	return stem
}
