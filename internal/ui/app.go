package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"listbox/internal/catalog"
	"listbox/internal/config"
	"listbox/internal/debug"
	apperrors "listbox/internal/errors"
	"listbox/internal/ui/theme"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	minDetailWidth  = 20
	minDetailHeight = 3
	statusDuration  = 3 * time.Second
)

// ErrNoSources is returned by NewApp when the catalog has nothing to list.
var ErrNoSources = errors.New("catalog has no sources")

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Config configures the demo application.
type Config struct {
	Catalog      *catalog.Store
	ListboxWidth int
	OutputFormat string // detail markdown style: rich, light, plain
	Version      string
}

// App owns two listboxes. Choosing an entry in the first swaps the options
// of the second for the items the catalog holds under that entry.
type App struct {
	catalog *catalog.Store
	sources *Listbox
	items   *Listbox
	keys    KeyMap

	detail         viewport.Model
	detailFor      string
	detailText     string
	outputFormat   string
	renderMarkdown func(string) string

	spinner spinner.Model
	loading bool

	width    int
	height   int
	ready    bool
	showHelp bool
	version  string

	status    string
	statusErr bool
	statusSeq int

	log debug.Scope
}

// NewApp reads the sources from the catalog and builds both listboxes.
// Nothing is mounted until Init runs.
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	entries, err := cfg.Catalog.Sources(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoSources
	}

	width := cfg.ListboxWidth
	if width <= 0 {
		width = config.DefaultListboxWidth
	}

	s := spinner.New()
	s.Spinner = spinner.MiniDot

	m := &App{
		catalog:      cfg.Catalog,
		keys:         DefaultKeyMap(),
		detail:       viewport.New(minDetailWidth, minDetailHeight),
		outputFormat: cfg.OutputFormat,
		spinner:      s,
		version:      cfg.Version,
		log:          debug.Scope("app"),
	}
	m.sources = NewListbox("First", NewValue("")).
		WithWidth(width).
		WithOptions(optionsFromEntries(entries)...).
		WithOnMount(func(h FocusHandle) { h.SetFocus(true) })
	m.items = NewListbox("second", NewValue("")).WithWidth(width)
	m.log.Logf("loaded %d sources from %s", len(entries), cfg.Catalog.Path())
	return m, nil
}

func optionsFromEntries(entries []catalog.Entry) []*Option {
	out := make([]*Option, 0, len(entries))
	for _, e := range entries {
		out = append(out, NewOption(e.ID, e.Label))
	}
	return out
}

// Sources returns the first listbox.
func (m *App) Sources() *Listbox { return m.sources }

// Items returns the second listbox.
func (m *App) Items() *Listbox { return m.items }

// Init mounts both listboxes. The second mounts first so the change
// announced by the first has somewhere to land.
func (m *App) Init() tea.Cmd {
	return tea.Batch(m.items.Mount(), m.sources.Mount())
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeDetail()
		return m, nil

	case ListboxChangedMsg:
		switch msg.Listbox {
		case m.sources:
			m.log.Logf("source changed to %q", msg.Value)
			m.loading = true
			return m, tea.Batch(loadItemsCmd(m.catalog, msg.Value), m.spinner.Tick)
		case m.items:
			return m, loadDetailCmd(m.catalog, m.sources.Active(), msg.Value)
		}
		return m, nil

	case itemsLoadedMsg:
		if msg.source != m.sources.Active() {
			m.log.Logf("dropping items of stale source %q", msg.source)
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.log.Logf("load items of %q: %v", msg.source, msg.err)
			return m, m.setStatus(describeError(msg.err), true)
		}
		cmd := m.items.SetOptions(optionsFromEntries(msg.items)...)
		if cmd == nil && m.items.Active() != "" {
			// Same active id under a new source; the description may differ.
			cmd = loadDetailCmd(m.catalog, msg.source, m.items.Active())
		}
		if len(msg.items) == 0 {
			m.setDetail("", "")
		}
		return m, cmd

	case detailLoadedMsg:
		if msg.source != m.sources.Active() || msg.item != m.items.Active() {
			return m, nil
		}
		if msg.err != nil {
			m.log.Logf("describe %s/%s: %v", msg.source, msg.item, msg.err)
			m.setDetail(msg.source+"/"+msg.item, "")
			return m, nil
		}
		m.setDetail(msg.source+"/"+msg.item, msg.description)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusExpiredMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return tea.Quit
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
			m.showHelp = false
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return nil
	case key.Matches(msg, m.keys.Tab):
		m.toggleFocus()
		return nil
	case key.Matches(msg, m.keys.Copy):
		return m.copyActive()
	case key.Matches(msg, m.keys.Theme):
		return m.cycleTheme()
	case key.Matches(msg, m.keys.PageDown):
		_ = m.detail.PageDown()
		return nil
	case key.Matches(msg, m.keys.PageUp):
		_ = m.detail.PageUp()
		return nil
	}
	return tea.Batch(m.sources.Update(msg), m.items.Update(msg))
}

// focused returns the listbox receiving keys, nil before the first mount.
func (m *App) focused() *Listbox {
	switch {
	case m.sources.Focused():
		return m.sources
	case m.items.Focused():
		return m.items
	}
	return nil
}

func (m *App) toggleFocus() {
	if m.sources.Focused() {
		m.sources.Blur()
		m.items.Focus()
		return
	}
	m.items.Blur()
	m.sources.Focus()
}

func (m *App) copyActive() tea.Cmd {
	lb := m.focused()
	if lb == nil || lb.Active() == "" {
		return m.setStatus("Nothing to copy", true)
	}
	id := lb.Active()
	if err := writeClipboard(id); err != nil {
		m.log.Logf("copy %q: %v", id, err)
		return m.setStatus("Copy failed: "+err.Error(), true)
	}
	return m.setStatus(fmt.Sprintf("Copied '%s' to clipboard.", id), false)
}

func (m *App) cycleTheme() tea.Cmd {
	name := theme.CycleTheme()
	if name == "" {
		return nil
	}
	// Cached glamour output does not follow the palette.
	m.renderMarkdown = nil
	m.refreshDetail()
	if err := config.SaveTheme(name); err != nil {
		m.log.Logf("save theme %q: %v", name, err)
		return m.setStatus(fmt.Sprintf("Theme: %s (not saved)", name), true)
	}
	return m.setStatus("Theme: "+name, false)
}

func (m *App) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	return scheduleStatusExpiry(m.statusSeq, statusDuration)
}

// describeError turns catalog failures into status line text.
func describeError(err error) string {
	var appErr apperrors.Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		switch appErr.Code {
		case apperrors.CodeUnknownSource, apperrors.CodeNotFound:
			return appErr.Message
		}
		return "Catalog error: " + appErr.Message
	}
	return "Error: " + err.Error()
}
