package planning

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// Label styles for the step frames: plain steps blue, revisions
// yellow, alternatives green.
var (
	stepStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	revisionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	branchStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// FormatStep renders a step as a framed text block for the diagnostic
// stream:
//
//	┌──────────────────────────┐
//	│ Code Step 1/3            │
//	├──────────────────────────┤
//	│ Sketch the module layout │
//	└──────────────────────────┘
//
// The border spans max(header, reflection) plus two cells of padding
// on each side. Widths are computed on plain text before any styling,
// so colored labels do not skew the frame.
func FormatStep(step Step, color bool) string {
	label, suffix, style := stepLabel(step)

	header := fmt.Sprintf("%s %d/%d%s", label, step.StepNumber, step.TotalSteps, suffix)
	width := runeLen(header)
	if l := runeLen(step.Reflection); l > width {
		width = l
	}

	border := strings.Repeat("─", width+4)

	renderedHeader := header
	if color {
		renderedHeader = style.Render(label) + strings.TrimPrefix(header, label)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("┌" + border + "┐\n")
	b.WriteString("│ " + pad(renderedHeader, runeLen(header), width+2) + " │\n")
	b.WriteString("├" + border + "┤\n")
	b.WriteString("│ " + pad(step.Reflection, runeLen(step.Reflection), width+2) + " │\n")
	b.WriteString("└" + border + "┘")
	return b.String()
}

// stepLabel picks the frame label, its contextual suffix, and the
// style applied when color is enabled. A revision marker wins over a
// branch marker.
func stepLabel(step Step) (label, suffix string, style lipgloss.Style) {
	switch {
	case step.IsRevision:
		return "Revision", fmt.Sprintf(" (revising step %d)", step.RevisesStep), revisionStyle
	case step.BranchFromStep != 0:
		return "Alternative", fmt.Sprintf(" (from step %d, ID: %s)", step.BranchFromStep, step.BranchID), branchStyle
	default:
		return "Code Step", "", stepStyle
	}
}

// pad right-pads s with spaces up to width, where visible is the rune
// count of s without styling escapes.
func pad(s string, visible, width int) string {
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
