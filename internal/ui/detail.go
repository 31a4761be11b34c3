package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const paneGap = 2

// resizeDetail gives the detail pane whatever the two listboxes leave over.
func (m *App) resizeDetail() {
	w := m.width - m.sources.width - m.items.width - 2*paneGap - styleDetailPane(false).GetHorizontalFrameSize()
	h := m.height - 4 - styleDetailPane(false).GetVerticalFrameSize()
	if w < minDetailWidth {
		w = minDetailWidth
	}
	if h < minDetailHeight {
		h = minDetailHeight
	}
	if w != m.detail.Width {
		m.renderMarkdown = nil
	}
	m.detail.Width = w
	m.detail.Height = h
	m.refreshDetail()
}

// setDetail shows text as the description of the item named by key,
// a "source/item" pair. An empty key clears the pane.
func (m *App) setDetail(key, text string) {
	if key != m.detailFor {
		m.detail.GotoTop()
	}
	m.detailFor = key
	m.detailText = text
	m.refreshDetail()
}

func (m *App) refreshDetail() {
	if m.detailFor == "" {
		m.detail.SetContent("")
		return
	}
	if m.renderMarkdown == nil {
		m.renderMarkdown = buildMarkdownRenderer(m.outputFormat, m.detail.Width)
	}

	_, item, _ := strings.Cut(m.detailFor, "/")
	header := styleDetailHeader().Render(item)

	var body string
	if strings.TrimSpace(m.detailText) == "" {
		body = styleDetailEmpty().Render(wordwrap.String("No description.", m.detail.Width))
	} else {
		body = m.renderMarkdown(m.detailText)
	}
	m.detail.SetContent(lipgloss.JoinVertical(lipgloss.Left, header, "", body))
}

func (m *App) renderDetailPane() string {
	pane := styleDetailPane(false)
	return pane.
		Width(m.detail.Width + pane.GetHorizontalPadding()).
		Height(m.detail.Height).
		Render(m.detail.View())
}
