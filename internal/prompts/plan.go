// Package prompts implements MCP prompt handlers.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// PlanPrompt handles the plan-start MCP prompt.
// It guides the AI to work a problem through an explicit step-by-step
// planning session using the plan_step tool.
type PlanPrompt struct{}

// NewPlanPrompt creates a PlanPrompt.
func NewPlanPrompt() *PlanPrompt {
	return &PlanPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *PlanPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("plan-start",
		mcp.WithPromptDescription(
			"Start a step-by-step planning session. The AI records each "+
				"planning step with the plan_step tool, revising earlier steps "+
				"and branching into alternatives as the design evolves.",
		),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("What to plan (a feature, a design, a migration...)"),
		),
	)
}

// Handle processes the plan-start prompt request.
func (p *PlanPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := "the problem at hand"
	if args := req.Params.Arguments; args != nil {
		if v, ok := args["topic"]; ok && v != "" {
			topic = v
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Plan step by step: %s", topic),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to work through %s with an explicit planning session.\n\n"+
						"Please:\n"+
						"1. Break the problem into steps and record each one with `plan_step`, "+
						"starting at thoughtNumber=1 with your best totalThoughts estimate\n"+
						"2. When a later insight changes an earlier step, record a revision "+
						"(isRevision=true, revisesThought=<step>)\n"+
						"3. When two approaches compete, fork an alternative "+
						"(branchFromThought=<step>, branchId=<short-name>) and explore it\n"+
						"4. Raise totalThoughts whenever the estimate proves too low\n"+
						"5. Set nextThoughtNeeded=false only once the plan is complete, "+
						"then summarize the final plan for me",
					topic,
				)),
			},
		},
	}, nil
}
