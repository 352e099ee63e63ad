// Package server wires the MCP components and creates the server
// instance.
//
// This is the composition root: it creates the session tracker and
// injects it into the tool and resource handlers. No recording logic
// lives here — only wiring.
package server

import (
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stepwiselabs/stepwise/internal/config"
	"github.com/stepwiselabs/stepwise/internal/planning"
	"github.com/stepwiselabs/stepwise/internal/prompts"
	"github.com/stepwiselabs/stepwise/internal/resources"
	"github.com/stepwiselabs/stepwise/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with the planning tool,
// the plan-start prompt, and the session resources registered. One
// tracker serves the whole process; its state lives until exit.
func New(settings config.Settings) *server.MCPServer {
	// Session identity is diagnostic only — it tags log lines and the
	// resource payloads so hosts can tell restarts apart.
	sessionID := uuid.NewString()

	tracker := planning.New(
		planning.WithOutput(os.Stderr),
		planning.WithStepLogging(!settings.DisableStepLogging),
		planning.WithColor(!settings.NoColor),
	)

	s := server.NewMCPServer(
		"stepwise",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	planTool := tools.NewPlanTool(tracker)
	s.AddTool(planTool.Definition(), planTool.Handle)

	planPrompt := prompts.NewPlanPrompt()
	s.AddPrompt(planPrompt.Definition(), planPrompt.Handle)

	resourceHandler := resources.NewHandler(sessionID, tracker)
	s.AddResource(resourceHandler.HistoryResource(), resourceHandler.HandleHistory)
	s.AddResource(resourceHandler.BranchesResource(), resourceHandler.HandleBranches)

	log.Printf("planning session %s ready", sessionID)

	return s
}

// serverInstructions returns the system instructions that tell the AI
// how to use the planning tool effectively.
func serverInstructions() string {
	return `You have access to Stepwise, a planning-session tracker.

## What plan_step does

Every call records ONE step of your planning process and returns the
running session state: your current step counters, the branch IDs seen
so far, and how many steps the session holds. Nothing is interpreted —
the step text is yours; the tracker only keeps the sequence straight.

## How to plan with it

1. Start at thoughtNumber=1 with an honest totalThoughts estimate.
   Estimates are expected to be wrong — raise totalThoughts whenever
   you discover more work (the tracker also bumps it automatically if
   your step number overtakes it).
2. Record one coherent planning step per call. Keep each thought
   focused: a decision, an observation, a constraint, a tradeoff.
3. When a later step changes your mind about an earlier one, record a
   revision: isRevision=true, revisesThought=<the step being revised>.
   Do not silently overwrite — revisions keep the reasoning auditable.
4. When two approaches compete, fork an alternative path:
   branchFromThought=<the step where they diverge> plus a short
   branchId (e.g. "retry-strategy"). Steps carrying the same branchId
   accumulate on that branch.
5. Set nextThoughtNeeded=false only when the plan is genuinely
   complete. If you finish early and discover a gap, keep going —
   the history is append-only and numbering is yours to manage.

## Session resources

- stepwise://session/history — every recorded step, in call order
- stepwise://session/branches — alternative paths grouped by branch ID

Read them to recover context instead of re-asking the user what has
been planned so far. The session lives for the server process only;
nothing persists across restarts.`
}
