package ui

import (
	"strings"

	"listbox/internal/ui/theme"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

func baseStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleAppHeader() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().BackgroundSecondary()).
		Background(theme.Current().Primary()).
		Bold(true).
		Padding(0, 1)
}

func styleStatus(isErr bool) lipgloss.Style {
	if isErr {
		return lipgloss.NewStyle().Foreground(theme.Current().Error()).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(theme.Current().Success())
}

func styleSpinner() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent())
}

func styleDetailPane(focused bool) lipgloss.Style {
	border := theme.Current().BorderNormal()
	if focused {
		border = theme.Current().BorderFocused()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func styleDetailHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func styleDetailEmpty() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted()).Italic(true)
}

// Footer pills

func styleKeyPill() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.Current().Primary()).
		Foreground(theme.Current().BackgroundSecondary()).
		Bold(true)
}

func styleKeyDesc() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted())
}

// Help overlay

func styleHelpOverlay() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().Primary()).
		Padding(1, 2)
}

func styleHelpTitle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Accent()).Bold(true)
}

func styleHelpDivider() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Primary())
}

func styleHelpSectionHeader() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Secondary()).Bold(true)
}

func styleHelpKey() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Secondary()).Bold(true)
}

func styleHelpDesc() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text())
}

func styleHelpFooter() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted()).Italic(true)
}

func styleToast(isErr bool) lipgloss.Style {
	border := theme.Current().Success()
	if isErr {
		border = theme.Current().Error()
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(theme.Current().Text()).
		Padding(0, 1)
}

func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" || style == "dark" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
