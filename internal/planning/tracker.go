package planning

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// Wire argument keys, as advertised in the plan_step tool schema.
const (
	keyThought           = "thought"
	keyThoughtNumber     = "thoughtNumber"
	keyTotalThoughts     = "totalThoughts"
	keyNextThoughtNeeded = "nextThoughtNeeded"
	keyIsRevision        = "isRevision"
	keyRevisesThought    = "revisesThought"
	keyBranchFromThought = "branchFromThought"
	keyBranchID          = "branchId"
	keyNeedsMoreThoughts = "needsMoreThoughts"
)

// Tracker records planning steps for a single session. State lives for
// the process lifetime; there is no persistence and no teardown.
//
// Calls are serialized by the stdio dispatch loop, so the tracker does
// no locking of its own. If concurrent dispatch is ever introduced,
// the total-steps adjustment and the dual history/branch append must
// move under one mutual-exclusion region together.
type Tracker struct {
	history  []Step
	branches map[string][]Step

	out      io.Writer
	logSteps bool
	color    bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithOutput redirects the diagnostic step frames to w.
func WithOutput(w io.Writer) Option {
	return func(t *Tracker) { t.out = w }
}

// WithStepLogging toggles the diagnostic step frames entirely.
func WithStepLogging(enabled bool) Option {
	return func(t *Tracker) { t.logSteps = enabled }
}

// WithColor toggles colored labels in the step frames.
func WithColor(enabled bool) Option {
	return func(t *Tracker) { t.color = enabled }
}

// New creates an empty Tracker. By default step frames go to stderr,
// uncolored, so they never interfere with the stdio transport on
// stdout.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		branches: make(map[string][]Step),
		out:      os.Stderr,
		logSteps: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Record validates args as a planning step, appends it to the session
// history (and to its branch, when one is named), and returns the
// running session summary. On a validation failure the tracker is left
// untouched and the returned error carries the exact message to
// report.
//
// A panic anywhere during recording is converted into an ordinary
// error, so a malformed request can never take the process down.
func (t *Tracker) Record(args map[string]any) (summary Summary, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recording step: %v", r)
		}
	}()

	step, err := validate(args)
	if err != nil {
		return Summary{}, err
	}

	// Self-correct the caller's estimate so it never under-reports
	// progress actually reached.
	if step.StepNumber > step.TotalSteps {
		step.TotalSteps = step.StepNumber
	}

	t.history = append(t.history, step)

	// A step joins a branch only when both markers are set. The branch
	// list is created on first use.
	if step.BranchFromStep != 0 && step.BranchID != "" {
		t.branches[step.BranchID] = append(t.branches[step.BranchID], step)
	}

	t.emit(step)

	return Summary{
		StepNumber:     step.StepNumber,
		TotalSteps:     step.TotalSteps,
		NextStepNeeded: step.NextStepNeeded,
		Branches:       t.branchIDs(),
		HistoryLength:  len(t.history),
	}, nil
}

// validate checks the four required wire fields and extracts the
// advisory optionals without further checks. A numeric zero counts as
// missing, preserving the upstream truthiness boundary exactly.
func validate(args map[string]any) (Step, error) {
	reflection, ok := args[keyThought].(string)
	if !ok || reflection == "" {
		return Step{}, &ValidationError{Message: "Invalid codeReflection: must be a string"}
	}

	stepNumber, ok := asNumber(args[keyThoughtNumber])
	if !ok || stepNumber == 0 {
		return Step{}, &ValidationError{Message: "Invalid stepNumber: must be a number"}
	}

	totalSteps, ok := asNumber(args[keyTotalThoughts])
	if !ok || totalSteps == 0 {
		return Step{}, &ValidationError{Message: "Invalid totalSteps: must be a number"}
	}

	nextStepNeeded, ok := args[keyNextThoughtNeeded].(bool)
	if !ok {
		return Step{}, &ValidationError{Message: "Invalid nextStepNeeded: must be a boolean"}
	}

	step := Step{
		Reflection:     reflection,
		StepNumber:     int(stepNumber),
		TotalSteps:     int(totalSteps),
		NextStepNeeded: nextStepNeeded,
		RecordedAt:     timeNow().UTC(),
	}

	// Advisory fields: recorded when well-typed, silently zero-valued
	// otherwise.
	step.IsRevision, _ = args[keyIsRevision].(bool)
	if n, ok := asNumber(args[keyRevisesThought]); ok {
		step.RevisesStep = int(n)
	}
	if n, ok := asNumber(args[keyBranchFromThought]); ok {
		step.BranchFromStep = int(n)
	}
	step.BranchID, _ = args[keyBranchID].(string)
	step.NeedsMoreSteps, _ = args[keyNeedsMoreThoughts].(bool)

	return step, nil
}

// asNumber normalizes the numeric types a decoded JSON payload (or a
// test fixture) can carry.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// branchIDs returns the known branch identifiers, sorted for stable
// output.
func (t *Tracker) branchIDs() []string {
	ids := make([]string, 0, len(t.branches))
	for id := range t.branches {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// emit writes the framed diagnostic block for a recorded step. Writes
// are best-effort: a failing writer never affects the call outcome.
func (t *Tracker) emit(step Step) {
	if !t.logSteps || t.out == nil {
		return
	}
	_, _ = fmt.Fprintln(t.out, FormatStep(step, t.color))
}

// History returns a copy of the session history, in call order.
func (t *Tracker) History() []Step {
	out := make([]Step, len(t.history))
	copy(out, t.history)
	return out
}

// Branches returns a copy of the branch map.
func (t *Tracker) Branches() map[string][]Step {
	out := make(map[string][]Step, len(t.branches))
	for id, steps := range t.branches {
		s := make([]Step, len(steps))
		copy(s, steps)
		out[id] = s
	}
	return out
}
