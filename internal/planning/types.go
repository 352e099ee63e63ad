// Package planning implements the planning-session tracker behind the
// plan_step tool.
//
// The tracker owns two pieces of process-lifetime state: an append-only
// history of every recorded step, and a map of named branches, each
// accumulating the steps that carry its branch ID. A validation failure
// never touches either.
package planning

import "time"

// Step is one recorded unit of planning work.
//
// The revision and branch fields are advisory: the tracker records them
// verbatim and does not verify that the referenced step numbers exist
// in the history, nor that step numbers arrive contiguous or
// unrepeated. Callers are trusted.
type Step struct {
	Reflection     string    `json:"reflection"`
	StepNumber     int       `json:"stepNumber"`
	TotalSteps     int       `json:"totalSteps"`
	NextStepNeeded bool      `json:"nextStepNeeded"`
	IsRevision     bool      `json:"isRevision,omitempty"`
	RevisesStep    int       `json:"revisesStep,omitempty"`
	BranchFromStep int       `json:"branchFromStep,omitempty"`
	BranchID       string    `json:"branchId,omitempty"`
	NeedsMoreSteps bool      `json:"needsMoreSteps,omitempty"`
	RecordedAt     time.Time `json:"recordedAt"`
}

// Summary is the success payload returned after a step is recorded.
// TotalSteps reflects the post-adjustment value, HistoryLength the
// history after the append.
type Summary struct {
	StepNumber     int      `json:"stepNumber"`
	TotalSteps     int      `json:"totalSteps"`
	NextStepNeeded bool     `json:"nextStepNeeded"`
	Branches       []string `json:"branches"`
	HistoryLength  int      `json:"historyLength"`
}

// ValidationError reports a missing or mis-typed required field. Its
// message is returned to the caller verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
