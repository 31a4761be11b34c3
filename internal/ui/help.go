package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// helpSection represents a group of keybindings for display.
type helpSection struct {
	title string
	rows  [][]string // Each row: [keys, description]
}

// getHelpSections returns the help content organized into sections.
// Text comes from binding.Help() so the overlay cannot drift from the
// bindings actually in use.
func getHelpSections(nav ListboxKeyMap, keys KeyMap) []helpSection {
	return []helpSection{
		{
			title: "LISTBOX",
			rows: [][]string{
				{nav.Up.Help().Key, nav.Up.Help().Desc},
				{nav.Home.Help().Key, nav.Home.Help().Desc},
				{nav.End.Help().Key, nav.End.Help().Desc},
				{keys.Tab.Help().Key, keys.Tab.Help().Desc},
			},
		},
		{
			title: "DETAIL",
			rows: [][]string{
				{keys.PageUp.Help().Key, keys.PageUp.Help().Desc},
				{keys.PageDown.Help().Key, keys.PageDown.Help().Desc},
			},
		},
		{
			title: "ACTIONS",
			rows: [][]string{
				{keys.Copy.Help().Key, keys.Copy.Help().Desc},
				{keys.Theme.Help().Key, keys.Theme.Help().Desc},
				{keys.Help.Help().Key, keys.Help.Help().Desc},
				{keys.Quit.Help().Key, keys.Quit.Help().Desc},
			},
		},
	}
}

// renderHelpOverlay builds the help modal. The caller positions it.
func renderHelpOverlay(nav ListboxKeyMap, keys KeyMap) string {
	sections := getHelpSections(nav, keys)

	leftCol := renderHelpSectionTable(sections[0])
	rightCol := lipgloss.JoinVertical(lipgloss.Left,
		renderHelpSectionTable(sections[1]),
		"",
		renderHelpSectionTable(sections[2]),
	)
	columns := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "    ", rightCol)

	title := styleHelpTitle().Render("✦ LISTBOX HELP ✦")
	dividerWidth := lipgloss.Width(columns)
	if dividerWidth < 40 {
		dividerWidth = 40
	}
	divider := styleHelpDivider().Render(strings.Repeat("─", dividerWidth))
	footer := styleHelpFooter().Render("Press ? or Esc to close")

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		divider,
		"",
		columns,
		"",
		footer,
	)
	return styleHelpOverlay().Render(content)
}

// renderHelpSectionTable renders a single help section using lipgloss/table.
func renderHelpSectionTable(section helpSection) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return styleHelpKey().Width(12)
			}
			return styleHelpDesc()
		}).
		Rows(section.rows...)

	header := styleHelpSectionHeader().Render(section.title)
	underline := styleHelpDivider().Render(strings.Repeat("─", len(section.title)))

	// Hidden border adds an empty top row.
	tableStr := strings.TrimPrefix(t.String(), "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		underline,
		tableStr,
	)
}
