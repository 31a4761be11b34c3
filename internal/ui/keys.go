package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Key is a logical key understood by a Listbox, independent of the
// physical binding that produced it.
type Key int

const (
	KeyNone Key = iota
	KeyArrowUp
	KeyArrowDown
	KeyHome
	KeyEnd
)

var keyNames = map[Key]string{
	KeyNone:      "",
	KeyArrowUp:   "ArrowUp",
	KeyArrowDown: "ArrowDown",
	KeyHome:      "Home",
	KeyEnd:       "End",
}

func (k Key) String() string {
	return keyNames[k]
}

// ParseKey maps a logical key name ("ArrowDown", "Home", ...) to a Key.
// Unknown names yield KeyNone.
func ParseKey(name string) Key {
	for k, n := range keyNames {
		if k != KeyNone && n == name {
			return k
		}
	}
	return KeyNone
}

// ListboxKeyMap binds terminal keys to listbox navigation.
type ListboxKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Home key.Binding
	End  key.Binding
}

// DefaultListboxKeyMap returns arrows plus vim-style alternatives.
func DefaultListboxKeyMap() ListboxKeyMap {
	return ListboxKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓  k/j", "Move up/down"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑/↓  k/j", "Move up/down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home  g", "First option"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End   G", "Last option"),
		),
	}
}

// Resolve turns a key press into a logical Key.
func (km ListboxKeyMap) Resolve(msg tea.KeyMsg) Key {
	switch {
	case key.Matches(msg, km.Up):
		return KeyArrowUp
	case key.Matches(msg, km.Down):
		return KeyArrowDown
	case key.Matches(msg, km.Home):
		return KeyHome
	case key.Matches(msg, km.End):
		return KeyEnd
	}
	return KeyNone
}

// KeyMap holds the demo application's own shortcuts.
type KeyMap struct {
	Tab      key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Copy     key.Binding
	Theme    key.Binding
	Help     key.Binding
	Escape   key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the demo application's bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("⇥ (Tab)", "Switch listbox"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("PgUp  ^B", "Scroll detail up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("PgDn  ^F", "Scroll detail down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy active id"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Next theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Close help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}
