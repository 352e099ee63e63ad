package resources

import (
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stepwiselabs/stepwise/internal/planning"
)

func newTestHandler(t *testing.T) (*Handler, *planning.Tracker) {
	t.Helper()
	tracker := planning.New(planning.WithOutput(io.Discard), planning.WithColor(false))
	return NewHandler("test-session", tracker), tracker
}

func record(t *testing.T, tracker *planning.Tracker, args map[string]any) {
	t.Helper()
	if _, err := tracker.Record(args); err != nil {
		t.Fatalf("recording step: %v", err)
	}
}

func readResource(t *testing.T, uri string, handle func(context.Context, mcp.ReadResourceRequest) ([]mcp.ResourceContents, error)) string {
	t.Helper()
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri

	contents, err := handle(context.Background(), req)
	if err != nil {
		t.Fatalf("reading resource: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}

	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents type = %T, want mcp.TextResourceContents", contents[0])
	}
	if text.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q, want application/json", text.MIMEType)
	}
	if text.URI != uri {
		t.Errorf("URI = %q, want %q", text.URI, uri)
	}
	return text.Text
}

func TestHandleHistory_EmptySession(t *testing.T) {
	h, _ := newTestHandler(t)

	raw := readResource(t, "stepwise://session/history", h.HandleHistory)

	var payload struct {
		SessionID string          `json:"sessionId"`
		Steps     int             `json:"steps"`
		History   []planning.Step `json:"history"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if payload.SessionID != "test-session" {
		t.Errorf("sessionId = %q, want test-session", payload.SessionID)
	}
	if payload.Steps != 0 || len(payload.History) != 0 {
		t.Errorf("expected empty history, got %+v", payload)
	}
}

func TestHandleHistory_ReflectsRecordedSteps(t *testing.T) {
	h, tracker := newTestHandler(t)
	record(t, tracker, map[string]any{
		"thought":           "first step",
		"nextThoughtNeeded": true,
		"thoughtNumber":     1,
		"totalThoughts":     2,
	})

	raw := readResource(t, "stepwise://session/history", h.HandleHistory)

	var payload struct {
		Steps   int             `json:"steps"`
		History []planning.Step `json:"history"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if payload.Steps != 1 {
		t.Errorf("steps = %d, want 1", payload.Steps)
	}
	if payload.History[0].Reflection != "first step" {
		t.Errorf("reflection = %q, want %q", payload.History[0].Reflection, "first step")
	}
}

func TestHandleBranches_GroupsByID(t *testing.T) {
	h, tracker := newTestHandler(t)
	record(t, tracker, map[string]any{
		"thought":           "alternative path",
		"nextThoughtNeeded": true,
		"thoughtNumber":     2,
		"totalThoughts":     3,
		"branchFromThought": 1,
		"branchId":          "retry-strategy",
	})

	raw := readResource(t, "stepwise://session/branches", h.HandleBranches)

	var payload struct {
		Count    int                        `json:"count"`
		Branches map[string][]planning.Step `json:"branches"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decoding payload: %v", err)
	}
	if payload.Count != 1 {
		t.Errorf("count = %d, want 1", payload.Count)
	}
	if len(payload.Branches["retry-strategy"]) != 1 {
		t.Errorf("branch retry-strategy = %v, want one step", payload.Branches["retry-strategy"])
	}
}
