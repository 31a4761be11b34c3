package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m *App) View() string {
	if !m.ready {
		return "Initializing..."
	}

	gap := baseStyle().Render(strings.Repeat(" ", paneGap))
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.sources.View(), gap,
		m.items.View(), gap,
		m.renderDetailPane(),
	)

	frame := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusLine(),
		m.renderFooter(),
	)

	toast := m.renderToast()
	if !m.showHelp && toast == "" {
		return frame
	}

	canvas := NewCanvas(m.width, m.height)
	canvas.DrawStringAt(0, 0, frame)
	if toast != "" {
		canvas.bottomRightOverlay(toast, 2)
	}
	if m.showHelp {
		canvas.centerOverlay(renderHelpOverlay(m.sources.keys, m.keys), 1, 1)
	}
	return canvas.Render()
}

func (m *App) renderHeader() string {
	title := "LISTBOX"
	if m.version != "" {
		title = fmt.Sprintf("LISTBOX v%s", m.version)
	}
	header := styleAppHeader().Render(title)
	if m.loading {
		header += " " + styleSpinner().Render(m.spinner.View()) + " " + styleKeyDesc().Render("loading items")
	}
	return header
}

// renderStatusLine shows the last error, if any, cut to the window width.
func (m *App) renderStatusLine() string {
	if !m.statusErr || m.status == "" {
		return ""
	}
	return styleStatus(true).Render(ansi.Truncate("⚠ "+m.status, max(m.width, 1), "…"))
}

// renderToast shows confirmations; errors go to the status line instead.
func (m *App) renderToast() string {
	if m.statusErr || m.status == "" {
		return ""
	}
	return styleToast(false).Render(m.status)
}
