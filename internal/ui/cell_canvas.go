package ui

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/cellbuf"
)

// Canvas composes lipgloss-rendered blocks in a cell buffer, so an overlay
// can be drawn over the frame without breaking the ANSI state of the lines
// underneath.
type Canvas struct {
	screen *cellbuf.Screen
	writer *cellbuf.ScreenWriter
	width  int
	height int
}

func NewCanvas(width, height int) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	screen := cellbuf.NewScreen(io.Discard, width, height, &cellbuf.ScreenOptions{})
	return &Canvas{
		screen: screen,
		writer: cellbuf.NewScreenWriter(screen),
		width:  width,
		height: height,
	}
}

// DrawStringAt writes a block with its top-left corner at x,y.
func (c *Canvas) DrawStringAt(x, y int, content string) {
	if content == "" || c == nil || c.writer == nil {
		return
	}
	c.writer.PrintCropAt(x, y, normalizeForCellbuf(content), "")
}

// centerOverlay draws the block centered in the rows left between the
// margins, so the header and footer stay visible.
func (c *Canvas) centerOverlay(overlay string, topMargin, bottomMargin int) {
	lines := splitOverlayLines(overlay)
	if len(lines) == 0 || c == nil {
		return
	}
	topMargin = max(topMargin, 0)
	bottomMargin = max(bottomMargin, 0)

	h := len(lines)
	w := min(maxLineWidth(lines), c.width)

	usable := max(c.height-topMargin-bottomMargin, h)
	y := topMargin + (usable-h)/2
	y = min(y, c.height-bottomMargin-h)
	y = max(y, topMargin, 0)

	c.drawBlockAt(max((c.width-w)/2, 0), y, lines)
}

// bottomRightOverlay anchors the block to the bottom-right corner, padding
// cells in from both edges.
func (c *Canvas) bottomRightOverlay(overlay string, padding int) {
	lines := splitOverlayLines(overlay)
	if len(lines) == 0 || c == nil {
		return
	}
	padding = max(padding, 0)
	x := max(c.width-maxLineWidth(lines)-padding, 0)
	y := max(c.height-len(lines)-padding, 0)
	c.drawBlockAt(x, y, lines)
}

func (c *Canvas) drawBlockAt(x, y int, lines []string) {
	x = max(x, 0)
	y = max(y, 0)
	for i, line := range lines {
		row := y + i
		if row >= c.height {
			break
		}
		if line == "" {
			continue
		}
		c.writer.PrintCropAt(x, row, line, "")
	}
}

// Render returns the frame as newline-delimited text for Bubble Tea.
func (c *Canvas) Render() string {
	if c == nil || c.screen == nil {
		return ""
	}
	raw := cellbuf.Render(c.screen)
	_ = c.screen.Close()
	return strings.ReplaceAll(raw, "\r\n", "\n")
}

func normalizeForCellbuf(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.ReplaceAll(content, "\n", "\r\n")
}

func splitOverlayLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

func maxLineWidth(lines []string) int {
	widest := 0
	for _, line := range lines {
		widest = max(widest, lipgloss.Width(line))
	}
	return widest
}
