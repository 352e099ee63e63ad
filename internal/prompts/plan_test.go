package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestPlanPrompt_Definition(t *testing.T) {
	def := NewPlanPrompt().Definition()

	if def.Name != "plan-start" {
		t.Errorf("prompt name = %q, want %q", def.Name, "plan-start")
	}
	if def.Description == "" {
		t.Error("prompt description should not be empty")
	}
}

func TestPlanPrompt_HandleWithTopic(t *testing.T) {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = map[string]string{"topic": "a cache eviction redesign"}

	result, err := NewPlanPrompt().Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if !strings.Contains(result.Description, "a cache eviction redesign") {
		t.Errorf("description = %q, should mention the topic", result.Description)
	}

	if len(result.Messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(result.Messages))
	}
	text, ok := result.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want mcp.TextContent", result.Messages[0].Content)
	}
	if !strings.Contains(text.Text, "plan_step") {
		t.Error("prompt message should reference the plan_step tool")
	}
}

func TestPlanPrompt_HandleWithoutTopic(t *testing.T) {
	result, err := NewPlanPrompt().Handle(context.Background(), mcp.GetPromptRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if !strings.Contains(result.Description, "the problem at hand") {
		t.Errorf("description = %q, want the default topic", result.Description)
	}
}
