// Package resources implements MCP resource handlers exposing the live
// planning session.
//
// Resources provide read-only data the host can consume for context.
// They use URI-based addressing (stepwise://...) following MCP
// conventions. Reading a resource never mutates the session.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stepwiselabs/stepwise/internal/planning"
)

// Handler serves the session resources from the shared tracker.
type Handler struct {
	sessionID string
	tracker   *planning.Tracker
}

// NewHandler creates a resource Handler for the given session.
func NewHandler(sessionID string, tracker *planning.Tracker) *Handler {
	return &Handler{sessionID: sessionID, tracker: tracker}
}

// HistoryResource returns the MCP resource definition for the session
// history.
func (h *Handler) HistoryResource() mcp.Resource {
	return mcp.NewResource(
		"stepwise://session/history",
		"Planning Session History",
		mcp.WithResourceDescription("Every step recorded in this session, in call order"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleHistory returns the full session history as JSON.
func (h *Handler) HandleHistory(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	history := h.tracker.History()
	payload := struct {
		SessionID string          `json:"sessionId"`
		Steps     int             `json:"steps"`
		History   []planning.Step `json:"history"`
	}{h.sessionID, len(history), history}

	return jsonResource(req.Params.URI, payload)
}

// BranchesResource returns the MCP resource definition for the branch
// map.
func (h *Handler) BranchesResource() mcp.Resource {
	return mcp.NewResource(
		"stepwise://session/branches",
		"Planning Session Branches",
		mcp.WithResourceDescription("Alternative paths by branch ID, each with its accumulated steps"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleBranches returns the branch map as JSON.
func (h *Handler) HandleBranches(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	branches := h.tracker.Branches()
	payload := struct {
		SessionID string                     `json:"sessionId"`
		Count     int                        `json:"count"`
		Branches  map[string][]planning.Step `json:"branches"`
	}{h.sessionID, len(branches), branches}

	return jsonResource(req.Params.URI, payload)
}

// jsonResource marshals payload into a single JSON resource content.
func jsonResource(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
