// Stepwise: planning-session MCP server
//
// A stdio MCP server that gives AI coding tools a structured place to
// think: sequential planning steps with revisions and alternative
// branches, tracked for the lifetime of the session.
//
// Usage:
//
//	stepwise serve    # Start MCP server (stdio transport)
//	stepwise update   # Update to the latest version
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stepwiselabs/stepwise/internal/config"
	stepserver "github.com/stepwiselabs/stepwise/internal/server"
	"github.com/stepwiselabs/stepwise/internal/updater"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "update":
		runUpdate()
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("stepwise v%s\n", stepserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s := stepserver.New(config.Load())

	// Background version check — prints to stderr so it doesn't
	// interfere with MCP's stdio transport on stdout.
	go checkForUpdates()

	return server.ServeStdio(s)
}

// checkForUpdates runs a non-blocking version check and prints a notice
// to stderr if an update is available. This runs in a goroutine during
// "serve" and is best-effort — network failures are silently ignored.
func checkForUpdates() {
	result := updater.CheckVersion(stepserver.Version)
	if result.UpdateAvailable {
		fmt.Fprintf(os.Stderr,
			"\n  📦 Update available: v%s → v%s\n"+
				"     Run: stepwise update\n"+
				"     Release: %s\n\n",
			result.CurrentVersion, result.LatestVersion, result.ReleaseURL,
		)
	}
}

// runUpdate performs a self-update to the latest version.
func runUpdate() {
	fmt.Fprintf(os.Stderr, "🔍 Checking for updates...\n")

	result := updater.CheckVersion(stepserver.Version)
	if !result.UpdateAvailable {
		fmt.Fprintf(os.Stderr, "✅ Already at the latest version (v%s)\n", result.CurrentVersion)
		return
	}

	fmt.Fprintf(os.Stderr, "📦 New version available: v%s → v%s\n", result.CurrentVersion, result.LatestVersion)
	fmt.Fprintf(os.Stderr, "⬇️  Downloading...\n")

	if err := updater.SelfUpdate(stepserver.Version); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Update failed: %v\n", err)
		fmt.Fprintf(os.Stderr, "\n   You can download manually from:\n   %s\n", result.ReleaseURL)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "✅ Updated to v%s!\n", result.LatestVersion)
	fmt.Fprintf(os.Stderr, "   Restart stepwise to use the new version.\n")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Stepwise v%s — planning-session MCP server

Usage:
  stepwise serve    Start the MCP server (stdio transport)
  stepwise update   Update to the latest version

Environment:
  STEPWISE_DISABLE_STEP_LOGGING=true   Suppress step frames on stderr
  STEPWISE_NO_COLOR=true (or NO_COLOR) Disable colored frame labels

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "stepwise": {
        "command": "stepwise",
        "args": ["serve"]
      }
    }
  }

Learn more: https://github.com/stepwiselabs/stepwise
`, stepserver.Version)
}
