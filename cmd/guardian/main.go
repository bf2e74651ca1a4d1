// Guardian: project memory for AI coding assistants.
//
// Guardian scans a project tree and writes a compact memory artifact
// (guardian.mdc) that assistants read instead of re-exploring the
// codebase every session. It also runs as an MCP server so assistants
// can query and update the artifact directly.
//
// Usage:
//
//	guardian scan <path>     # Scan a project and write its artifact
//	guardian serve           # Start MCP server (stdio transport)
//	guardian watch <path>    # Watch a project and keep its artifact fresh
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"guardian/internal/artifact"
	"guardian/internal/scan"
	guardianserver "guardian/internal/server"
	"guardian/internal/watch"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "scan":
		if err := runScan(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "watch":
		if err := runWatch(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("guardian v%s\n", guardianserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// runScan scans a project and writes its memory artifact.
func runScan(args []string) error {
	root := "."
	output := ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-o", "--output":
			i++
			if i >= len(args) {
				return fmt.Errorf("missing value for %s", args[i-1])
			}
			output = args[i]
		default:
			root = args[i]
		}
	}

	scanner, err := scan.New(root)
	if err != nil {
		return err
	}
	snap, rendered, err := scanner.ScanAndRender()
	if err != nil {
		return err
	}

	path := artifact.New(scanner.Root()).WritePath()
	if output != "" {
		path = artifact.WritePathFor(scanner.Root(), output)
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Scanned %s: %d files, %d connections\n",
		snap.Identity.Name, len(snap.Files), len(snap.Connections))
	fmt.Fprintf(os.Stderr, "Artifact written to %s\n", path)
	return nil
}

// runServe starts the MCP server on stdio.
func runServe() error {
	s, cleanup, err := guardianserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	return mcpserver.ServeStdio(s)
}

// runWatch polls a project tree and rewrites the artifact on change.
func runWatch(args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	scanner, err := scan.New(root)
	if err != nil {
		return err
	}

	rescan := func(changes []watch.Change) {
		for i, c := range changes {
			if i == 5 {
				fmt.Fprintf(os.Stderr, "  ... and %d more\n", len(changes)-5)
				break
			}
			fmt.Fprintf(os.Stderr, "  %s: %s\n", c.Action, c.Path)
		}

		snap, rendered, err := scanner.ScanAndRender()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Rescan failed: %v\n", err)
			return
		}
		path := artifact.New(scanner.Root()).WritePath()
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Write failed: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "Updated %s (%d files)\n", path, len(snap.Files))
	}

	w, err := watch.New(scanner.Root(), rescan)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", scanner.Root())
	if err := w.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Guardian v%s — project memory for AI coding assistants

Usage:
  guardian scan <path> [-o file]   Scan a project and write its memory artifact
  guardian serve                   Start the MCP server (stdio transport)
  guardian watch <path>            Watch a project and keep its artifact fresh
  guardian version                 Print the version

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "guardian": {
        "command": "guardian",
        "args": ["serve"]
      }
    }
  }
`, guardianserver.Version)
}
