package ui

import (
	"strings"

	"listbox/internal/ui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Element is the accessible description of a rendered listbox.
type Element struct {
	Role             string
	Label            string
	ActiveDescendant string
	Focused          bool
	Options          []OptionElement
}

// OptionElement is the accessible description of one option.
type OptionElement struct {
	Role     string
	ID       string
	Label    string
	Selected bool
}

// Attributes returns the ARIA attributes of the container.
func (e Element) Attributes() map[string]string {
	return map[string]string{
		"role":                  e.Role,
		"aria-label":            e.Label,
		"aria-activedescendant": e.ActiveDescendant,
		"tabindex":              "0",
	}
}

// Render describes the listbox. Selection is read from the registry for
// every option, after whatever reconciliation the caller has run.
func (l *Listbox) Render() Element {
	children := l.Children()
	el := Element{
		Role:             "listbox",
		Label:            l.label,
		ActiveDescendant: l.registry.Active(),
		Focused:          l.focused,
		Options:          make([]OptionElement, 0, len(children)),
	}
	for _, o := range children {
		el.Options = append(el.Options, o.Render())
	}
	return el
}

// View draws the listbox: its label, then a bordered box with one row per
// option and a marker on the selected one.
func (l *Listbox) View() string {
	el := l.Render()
	inner := l.width - 4 // border + padding
	if inner < 4 {
		inner = 4
	}

	var rows []string
	if len(el.Options) == 0 {
		rows = append(rows, styleListboxEmpty().Render(ansi.Truncate("(no options)", inner, "…")))
	}
	for _, opt := range el.Options {
		text := ansi.Truncate(opt.Label, inner-2, "…")
		if opt.Selected {
			rows = append(rows, styleListboxSelected().Width(inner).Render("▸ "+text))
			continue
		}
		rows = append(rows, styleListboxOption().Width(inner).Render("  "+text))
	}

	box := styleListboxBox(el.Focused).Width(l.width - 2).Render(strings.Join(rows, "\n"))
	title := styleListboxLabel(el.Focused).Render(ansi.Truncate(el.Label, l.width, "…"))
	return lipgloss.JoinVertical(lipgloss.Left, title, box)
}

func styleListboxLabel(focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true).Foreground(theme.Current().TextMuted())
	if focused {
		s = s.Foreground(theme.Current().Primary())
	}
	return s
}

func styleListboxBox(focused bool) lipgloss.Style {
	border := theme.Current().BorderDim()
	if focused {
		border = theme.Current().BorderFocused()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func styleListboxOption() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleListboxSelected() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary()).
		Background(theme.Current().BackgroundSecondary()).
		Bold(true)
}

func styleListboxEmpty() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted()).
		Italic(true)
}
