package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AlignFooter lays out a footer line of `width` columns with `left` pinned to
// the start and `right` pushed to the end. Tokens are measured with
// lipgloss.Width so styled text counts visible cells, not escape bytes. When
// the tokens do not fit, a single space separates them.
func AlignFooter(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
