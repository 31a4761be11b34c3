package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// footerHint defines a key hint for the footer bar.
// These are intentionally shorter than the KeyMap help text.
type footerHint struct {
	key  string
	desc string
}

var globalFooterHints = []footerHint{
	{"⇥", "Focus"},
	{"c", "Copy"},
	{"t", "Theme"},
	{"?", "Help"},
	{"q", "Quit"},
}

var listboxFooterHints = []footerHint{
	{"↑↓", "Move"},
	{"g/G", "First/Last"},
}

// renderFooter renders the footer bar with pill-style key hints and the
// label of the focused listbox on the right.
func (m *App) renderFooter() string {
	hints := append([]footerHint(nil), listboxFooterHints...)
	hints = append(hints, globalFooterHints...)

	right := ""
	if lb := m.focused(); lb != nil {
		right = styleKeyDesc().Render("Focus: " + lb.Label())
	}
	rightWidth := lipgloss.Width(right)

	hints = trimHintsToFit(hints, m.width-rightWidth-4)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	left := strings.Join(parts, "  ")

	spacing := m.width - lipgloss.Width(left) - rightWidth
	if spacing < 2 {
		spacing = 2
	}
	return left + strings.Repeat(" ", spacing) + right
}

func keyPill(key, desc string) string {
	return styleKeyPill().Render(" "+key+" ") + " " + styleKeyDesc().Render(desc)
}

// trimHintsToFit drops listbox hints first, then globals from the end.
func trimHintsToFit(hints []footerHint, availableWidth int) []footerHint {
	globalCount := len(globalFooterHints)
	for len(hints) > 0 && renderHintsWidth(hints) > availableWidth {
		if len(hints) > globalCount {
			hints = hints[1:]
		} else {
			hints = hints[:len(hints)-1]
		}
	}
	return hints
}

func renderHintsWidth(hints []footerHint) int {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyPill(h.key, h.desc))
	}
	return lipgloss.Width(strings.Join(parts, "  "))
}
