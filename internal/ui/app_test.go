package ui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"listbox/internal/catalog"
	"listbox/internal/config"
	apperrors "listbox/internal/errors"
	"listbox/internal/ui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

var cmdSliceType = reflect.TypeOf([]tea.Cmd(nil))

// runCmd executes cmd, giving up on long ticks such as status expiry.
func runCmd(cmd tea.Cmd) (tea.Msg, bool) {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(250 * time.Millisecond):
		return nil, false
	}
}

// drain feeds cmd and everything it leads to back through the app, the way
// the program loop would, and returns the messages delivered.
func drain(t *testing.T, m *App, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	var delivered []tea.Msg
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("commands did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg, ok := runCmd(c)
		if !ok || msg == nil {
			continue
		}
		// Batch and sequence messages are both slices of commands.
		if v := reflect.ValueOf(msg); v.Kind() == reflect.Slice && v.Type().ConvertibleTo(cmdSliceType) {
			queue = append(queue, v.Convert(cmdSliceType).Interface().([]tea.Cmd)...)
			continue
		}
		delivered = append(delivered, msg)
		_, next := m.Update(msg)
		queue = append(queue, next)
	}
	return delivered
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	ctx := context.Background()
	store, err := catalog.Open(ctx, "")
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	m, err := NewApp(ctx, Config{Catalog: store, OutputFormat: "plain"})
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	drain(t, m, m.Init())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m
}

func press(t *testing.T, m *App, msg tea.KeyMsg) []tea.Msg {
	t.Helper()
	_, cmd := m.Update(msg)
	return drain(t, m, cmd)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func childIDs(l *Listbox) []string {
	var out []string
	for _, o := range l.Children() {
		out = append(out, o.ID)
	}
	return out
}

func itemChanges(m *App, msgs []tea.Msg) []string {
	var out []string
	for _, msg := range msgs {
		if c, ok := msg.(ListboxChangedMsg); ok && c.Listbox == m.items {
			out = append(out, c.Value)
		}
	}
	return out
}

func TestNewApp(t *testing.T) {
	t.Run("RequiresCatalog", func(t *testing.T) {
		if _, err := NewApp(context.Background(), Config{}); err == nil {
			t.Fatal("expected error without a catalog")
		}
	})

	t.Run("EmptyCatalog", func(t *testing.T) {
		ctx := context.Background()
		store, err := catalog.Open(ctx, "")
		if err != nil {
			t.Fatalf("open catalog: %v", err)
		}
		defer store.Close()
		if err := store.Seed(ctx, nil); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, err := NewApp(ctx, Config{Catalog: store}); !errors.Is(err, ErrNoSources) {
			t.Fatalf("expected ErrNoSources, got %v", err)
		}
	})

	t.Run("DefaultWidth", func(t *testing.T) {
		m := newTestApp(t)
		if m.sources.width != config.DefaultListboxWidth {
			t.Errorf("expected default width %d, got %d", config.DefaultListboxWidth, m.sources.width)
		}
	})
}

func TestAppStartup(t *testing.T) {
	m := newTestApp(t)

	if m.sources.Active() != "first" {
		t.Errorf("expected first source active, got %q", m.sources.Active())
	}
	if !m.sources.Focused() || m.items.Focused() {
		t.Error("expected the first listbox to take focus on mount")
	}
	if got := childIDs(m.items); !equalIDs(got, []string{"First", "Second", "Third"}) {
		t.Errorf("expected items of the first source, got %v", got)
	}
	if m.items.Active() != "First" {
		t.Errorf("expected First selected, got %q", m.items.Active())
	}
	if m.detailFor != "first/First" || !strings.Contains(m.detailText, "first") {
		t.Errorf("expected description of First, got %q %q", m.detailFor, m.detailText)
	}
	if m.loading {
		t.Error("expected loading to finish")
	}
}

func TestAppSwapsItems(t *testing.T) {
	m := newTestApp(t)
	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	press(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	if m.items.Active() != "Third" {
		t.Fatalf("expected Third, got %q", m.items.Active())
	}
	press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	msgs := press(t, m, tea.KeyMsg{Type: tea.KeyDown})

	if m.sources.Active() != "second" {
		t.Fatalf("expected second source, got %q", m.sources.Active())
	}
	if got := childIDs(m.items); !equalIDs(got, []string{"fourth", "fifth", "sixth"}) {
		t.Errorf("expected swapped items, got %v", got)
	}
	if got := itemChanges(m, msgs); !equalIDs(got, []string{"fourth"}) {
		t.Errorf("expected exactly one fresh selection of fourth, got %v", got)
	}
	if m.items.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", m.items.Cursor())
	}
	if m.detailFor != "second/fourth" {
		t.Errorf("expected detail of fourth, got %q", m.detailFor)
	}

	msgs = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got := itemChanges(m, msgs); !equalIDs(got, []string{"First"}) {
		t.Errorf("expected swap back to First, got %v", got)
	}
}

func TestAppFocus(t *testing.T) {
	m := newTestApp(t)

	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.sources.Focused() || !m.items.Focused() {
		t.Fatal("expected focus on the second listbox")
	}
	press(t, m, runeKey('j'))
	if m.items.Active() != "Second" || m.sources.Active() != "first" {
		t.Errorf("expected only the focused listbox to move, got %q/%q", m.sources.Active(), m.items.Active())
	}

	press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if !m.sources.Focused() || m.items.Focused() {
		t.Error("expected focus back on the first listbox")
	}
}

func TestAppUnknownSource(t *testing.T) {
	m := newTestApp(t)

	m.sources.Value().Set("missing")
	drain(t, m, m.sources.Reconcile())

	if !m.statusErr || !strings.Contains(m.status, `unknown source "missing"`) {
		t.Errorf("expected unknown source error in the status line, got %q", m.status)
	}
	if got := childIDs(m.items); !equalIDs(got, []string{"First", "Second", "Third"}) {
		t.Errorf("expected items untouched, got %v", got)
	}
	if m.loading {
		t.Error("expected loading cleared after the error")
	}
}

func TestAppDropsStaleLoads(t *testing.T) {
	m := newTestApp(t)

	m.Update(itemsLoadedMsg{source: "second", items: []catalog.Entry{{ID: "x", Label: "x"}}})
	if got := childIDs(m.items); !equalIDs(got, []string{"First", "Second", "Third"}) {
		t.Errorf("expected stale items ignored, got %v", got)
	}

	m.Update(detailLoadedMsg{source: "first", item: "Third", description: "stale"})
	if m.detailFor != "first/First" {
		t.Errorf("expected stale detail ignored, got %q", m.detailFor)
	}
}

func TestAppEmptySourceClearsItems(t *testing.T) {
	m := newTestApp(t)

	m.Update(itemsLoadedMsg{source: "first"})
	if len(m.items.Children()) != 0 || m.items.Active() != "" {
		t.Errorf("expected empty second listbox, got %v active=%q", childIDs(m.items), m.items.Active())
	}
	if m.detailFor != "" {
		t.Errorf("expected detail cleared, got %q", m.detailFor)
	}
}

func TestAppCopy(t *testing.T) {
	var copied []string
	original := writeClipboard
	writeClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	t.Cleanup(func() { writeClipboard = original })

	m := newTestApp(t)
	press(t, m, runeKey('c'))
	if !equalIDs(copied, []string{"first"}) {
		t.Errorf("expected first copied, got %v", copied)
	}
	if m.statusErr || !strings.Contains(m.status, "Copied 'first'") {
		t.Errorf("unexpected status %q", m.status)
	}

	writeClipboard = func(string) error { return errors.New("no clipboard") }
	press(t, m, runeKey('c'))
	if !m.statusErr || !strings.Contains(m.status, "no clipboard") {
		t.Errorf("expected copy failure reported, got %q", m.status)
	}
}

func TestAppStatusExpires(t *testing.T) {
	m := newTestApp(t)
	m.setStatus("first", false)
	seq := m.statusSeq
	m.setStatus("second", false)

	m.Update(statusExpiredMsg{seq: seq})
	if m.status != "second" {
		t.Errorf("expected older expiry ignored, got %q", m.status)
	}
	m.Update(statusExpiredMsg{seq: m.statusSeq})
	if m.status != "" {
		t.Errorf("expected status cleared, got %q", m.status)
	}
}

func TestAppThemeCycle(t *testing.T) {
	t.Cleanup(config.ResetForTesting(t))
	t.Chdir(t.TempDir())
	before := theme.CurrentName()
	t.Cleanup(func() { theme.SetTheme(before) })

	m := newTestApp(t)
	press(t, m, runeKey('t'))

	after := theme.CurrentName()
	if after == before {
		t.Fatalf("expected theme to change from %q", before)
	}
	if got := config.GetString(config.KeyTheme); got != after {
		t.Errorf("expected saved theme %q, got %q", after, got)
	}
	if m.status != "Theme: "+after {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestAppHelpAndQuit(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m := newTestApp(t)

	press(t, m, runeKey('?'))
	if !m.showHelp {
		t.Fatal("expected help overlay")
	}
	if view := ansi.Strip(m.View()); !strings.Contains(view, "LISTBOX HELP") {
		t.Errorf("expected help in view, got:\n%s", view)
	}

	press(t, m, runeKey('j'))
	if m.sources.Active() != "first" {
		t.Error("expected keys swallowed while help is open")
	}

	press(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.showHelp {
		t.Fatal("expected Esc to close help")
	}

	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestAppView(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	t.Run("BeforeSize", func(t *testing.T) {
		m := &App{}
		if m.View() != "Initializing..." {
			t.Error("expected placeholder before the first WindowSizeMsg")
		}
	})

	t.Run("Layout", func(t *testing.T) {
		m := newTestApp(t)
		m.version = "1.0"
		view := ansi.Strip(m.View())
		for _, want := range []string{"LISTBOX v1.0", "First list", "▸ First list", "▸ First", "Second list", "Third", "Focus: First"} {
			if !strings.Contains(view, want) {
				t.Errorf("expected %q in view:\n%s", want, view)
			}
		}
	})

	t.Run("ErrorInStatusLine", func(t *testing.T) {
		m := newTestApp(t)
		m.setStatus("boom", true)
		view := ansi.Strip(m.View())
		if !strings.Contains(view, "⚠ boom") {
			t.Errorf("expected error status line, got:\n%s", view)
		}
	})

	t.Run("ConfirmationAsToast", func(t *testing.T) {
		m := newTestApp(t)
		m.setStatus("Copied 'first' to clipboard.", false)
		view := ansi.Strip(m.View())
		if !strings.Contains(view, "Copied 'first' to clipboard.") {
			t.Errorf("expected toast in view:\n%s", view)
		}
		if strings.Contains(view, "⚠") {
			t.Error("expected no error marker for confirmations")
		}
	})
}

func TestDescribeError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"UnknownSource", apperrors.New(apperrors.CodeUnknownSource, `unknown source "x"`, nil), `unknown source "x"`},
		{"CatalogFailure", apperrors.New(apperrors.CodeCatalogFailed, "query catalog", errors.New("disk")), "Catalog error: query catalog"},
		{"Plain", errors.New("boom"), "Error: boom"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := describeError(tc.err); got != tc.want {
				t.Errorf("describeError = %q, want %q", got, tc.want)
			}
		})
	}
}
