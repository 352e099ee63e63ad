// Package tools implements the MCP tool handlers.
//
// Each tool receives its dependencies via its struct and exposes a
// Definition for registration plus a Handle compatible with mcp-go's
// CallToolRequest signature. The wire layer stays thin: validation,
// state, and formatting live in the planning package.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stepwiselabs/stepwise/internal/planning"
)

// PlanTool handles the plan_step MCP tool.
type PlanTool struct {
	tracker *planning.Tracker
}

// NewPlanTool creates a PlanTool recording into tracker.
func NewPlanTool(tracker *planning.Tracker) *PlanTool {
	return &PlanTool{tracker: tracker}
}

// Definition returns the MCP tool definition for registration.
func (t *PlanTool) Definition() mcp.Tool {
	return mcp.NewTool("plan_step",
		mcp.WithDescription(
			"Record one step of a sequential planning process. "+
				"Each call appends a step to the session history and returns the "+
				"current counters plus the known branch IDs. A step can revise an "+
				"earlier one (isRevision + revisesThought) or fork an alternative "+
				"path (branchFromThought + branchId). Adjust totalThoughts freely "+
				"as the estimate evolves; set nextThoughtNeeded to false only when "+
				"the plan is complete.",
		),
		mcp.WithString("thought",
			mcp.Required(),
			mcp.Description("The planning text for this step"),
		),
		mcp.WithBoolean("nextThoughtNeeded",
			mcp.Required(),
			mcp.Description("Whether another step is needed after this one"),
		),
		mcp.WithNumber("thoughtNumber",
			mcp.Required(),
			mcp.Description("Position of this step in the sequence, starting at 1"),
		),
		mcp.WithNumber("totalThoughts",
			mcp.Required(),
			mcp.Description("Current estimate of how many steps the plan needs"),
		),
		mcp.WithBoolean("isRevision",
			mcp.Description("Marks this step as reconsidering an earlier one"),
		),
		mcp.WithNumber("revisesThought",
			mcp.Description("Which earlier step number is being reconsidered"),
		),
		mcp.WithNumber("branchFromThought",
			mcp.Description("Step number this alternative path diverges from"),
		),
		mcp.WithString("branchId",
			mcp.Description("Identifier of the alternative path"),
		),
		mcp.WithBoolean("needsMoreThoughts",
			mcp.Description("Signals that the step estimate turned out too low"),
		),
	)
}

// failure is the envelope returned for any failed call.
type failure struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// Handle processes a plan_step call. Both outcomes come back as
// pretty-printed JSON in a single text content block; failures
// additionally carry the MCP error flag. The handler never returns a
// protocol-level error: a malformed request yields a failure envelope,
// and a residual panic is converted into one by the deferred recover.
func (t *PlanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (res *mcp.CallToolResult, _ error) {
	defer func() {
		if r := recover(); r != nil {
			res = errorResult(fmt.Sprintf("recording step: %v", r))
		}
	}()

	summary, err := t.tracker.Record(req.GetArguments())
	if err != nil {
		return errorResult(err.Error()), nil
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("encoding summary: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult wraps a message in the failure envelope with the error
// flag set.
func errorResult(msg string) *mcp.CallToolResult {
	data, err := json.MarshalIndent(failure{Error: msg, Status: "failed"}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(msg)
	}
	return mcp.NewToolResultError(string(data))
}
