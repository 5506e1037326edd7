package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/wattboard/internal/tui/theme"
)

// StatusKind selects the color of a flash message.
type StatusKind int

// Flash kinds.
const (
	StatusInfo StatusKind = iota
	StatusOK
	StatusError
)

// RenderStatusBar renders the bottom bar: key hints on the left and an
// optional flash message on the right.
func RenderStatusBar(width int, hints, flash string, kind StatusKind) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	flashColor := t.TextMuted
	switch kind {
	case StatusOK:
		flashColor = t.Good
	case StatusError:
		flashColor = t.Bad
	}
	flashStyle := lipgloss.NewStyle().Foreground(flashColor).Background(t.Surface).Bold(true)

	left := " " + hints
	right := ""
	if flash != "" {
		right = flash + " "
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return base.Render(left+strings.Repeat(" ", padding)) + flashStyle.Render(right)
}
