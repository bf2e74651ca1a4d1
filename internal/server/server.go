// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations
// and injects them into the tools that depend on them. No business
// logic lives here, only wiring.
package server

import (
	"log"

	"github.com/mark3labs/mcp-go/server"

	"guardian/internal/history"
	"guardian/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all Guardian tools
// registered.
//
// The returned cleanup function closes the history database and must be
// called on shutdown (typically via defer). It is always non-nil and
// safe to call even if history init failed.
func New() (*server.MCPServer, func(), error) {
	s := server.NewMCPServer(
		"guardian",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// History is an independent subsystem: if it fails to open, scanning
	// and artifact tools keep working. We log a warning and pass a nil
	// store. Every tool that records history is nil-safe.
	cleanup := noop
	store, err := history.New(history.DefaultConfig())
	if err != nil {
		log.Printf("WARNING: history subsystem disabled: %v", err)
		store = nil
	} else {
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.Printf("WARNING: history store close: %v", err)
			}
		}
	}

	scanTool := tools.NewScanTool(store)
	s.AddTool(scanTool.Definition(), scanTool.Handle)

	techStackTool := tools.NewTechStackTool()
	s.AddTool(techStackTool.Definition(), techStackTool.Handle)

	fileMapTool := tools.NewFileMapTool()
	s.AddTool(fileMapTool.Definition(), fileMapTool.Handle)

	checkDuplicateTool := tools.NewCheckDuplicateTool()
	s.AddTool(checkDuplicateTool.Definition(), checkDuplicateTool.Handle)

	registerFileTool := tools.NewRegisterFileTool(store)
	s.AddTool(registerFileTool.Definition(), registerFileTool.Handle)

	logChangeTool := tools.NewLogChangeTool(store)
	s.AddTool(logChangeTool.Definition(), logChangeTool.Handle)

	classifyChangeTool := tools.NewClassifyChangeTool()
	s.AddTool(classifyChangeTool.Definition(), classifyChangeTool.Handle)

	historyTool := tools.NewHistoryTool(store)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	return s, cleanup, nil
}

// noop is the default cleanup when history is disabled.
func noop() {}

func serverInstructions() string {
	return `Guardian keeps a compact memory artifact (guardian.mdc) per project so you
don't re-discover the codebase every session.

Workflow:
1. guardian_scan on first contact with a project (or after major changes).
2. guardian_classify_change BEFORE making any code change. Follow its rules.
3. guardian_get_tech_stack / guardian_get_file_map to stay consistent with
   what the project already uses and where files live.
4. guardian_check_duplicate BEFORE creating a new file.
5. guardian_register_file AFTER creating a file, guardian_log_change AFTER
   completing a change.
6. guardian_history to see what earlier sessions scanned and changed.`
}
