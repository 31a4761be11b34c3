package ui

import (
	"listbox/internal/config"
	"listbox/internal/debug"

	tea "github.com/charmbracelet/bubbletea"
)

// ValueCell is the caller-owned controlled value of a Listbox.
type ValueCell interface {
	Get() string
	Set(string)
}

// Value is a plain ValueCell.
type Value struct {
	s string
}

// NewValue returns a cell holding initial.
func NewValue(initial string) *Value {
	return &Value{s: initial}
}

// Get returns the current value.
func (v *Value) Get() string { return v.s }

// Set replaces the current value.
func (v *Value) Set(s string) { v.s = s }

// FocusHandle lets a listbox owner move input focus.
type FocusHandle interface {
	SetFocus(focused bool)
}

// ListboxChangedMsg is sent once for every change of a listbox's active id.
type ListboxChangedMsg struct {
	Listbox *Listbox
	Label   string
	Value   string
}

// Listbox is a single-select list whose options mount and unmount over
// time. It keeps one option selected, follows the keyboard and reports
// every change of the active id exactly once, both to the OnChange callback
// and as a ListboxChangedMsg.
type Listbox struct {
	label    string
	value    ValueCell
	registry *Registry
	children []*Option

	// cursor indexes the registry's current options and is clamped on use.
	cursor int

	onChange func(string)
	onMount  func(FocusHandle)
	keys     ListboxKeyMap
	width    int

	mounted bool
	focused bool

	// changes collects notifications for the public call in progress.
	changes []string
	log     debug.Scope
}

// NewListbox creates an unmounted listbox. A nil value gets a fresh cell.
func NewListbox(label string, value ValueCell) *Listbox {
	if value == nil {
		value = NewValue("")
	}
	return &Listbox{
		label:    label,
		value:    value,
		registry: NewRegistry(),
		keys:     DefaultListboxKeyMap(),
		width:    config.DefaultListboxWidth,
		log:      debug.Scope("listbox[" + label + "]"),
	}
}

// WithOnChange sets the callback receiving each new active id.
func (l *Listbox) WithOnChange(fn func(string)) *Listbox {
	l.onChange = fn
	return l
}

// WithOnMount sets the callback invoked once per Mount.
func (l *Listbox) WithOnMount(fn func(FocusHandle)) *Listbox {
	l.onMount = fn
	return l
}

// WithKeyMap replaces the navigation bindings.
func (l *Listbox) WithKeyMap(km ListboxKeyMap) *Listbox {
	l.keys = km
	return l
}

// WithWidth sets the rendered width, borders included.
func (l *Listbox) WithWidth(w int) *Listbox {
	if w > 0 {
		l.width = w
	}
	return l
}

// WithOptions sets the children mounted by Mount.
func (l *Listbox) WithOptions(children ...*Option) *Listbox {
	l.children = append([]*Option(nil), children...)
	return l
}

// Label returns the accessible label.
func (l *Listbox) Label() string { return l.label }

// Value returns the controlled value cell.
func (l *Listbox) Value() ValueCell { return l.value }

// Registry exposes the shared option registry.
func (l *Listbox) Registry() *Registry { return l.registry }

// Active returns the active id.
func (l *Listbox) Active() string { return l.registry.Active() }

// Cursor returns the navigation index.
func (l *Listbox) Cursor() int { return l.cursor }

// Children returns the mounted options in navigation order.
func (l *Listbox) Children() []*Option {
	out := make([]*Option, 0, len(l.children))
	for _, o := range l.children {
		if o.Mounted() {
			out = append(out, o)
		}
	}
	return out
}

// Mounted reports whether Mount has run since the last Close.
func (l *Listbox) Mounted() bool { return l.mounted }

// SetFocus implements FocusHandle.
func (l *Listbox) SetFocus(focused bool) { l.focused = focused }

// Focus gives the listbox keyboard input.
func (l *Listbox) Focus() { l.focused = true }

// Blur takes keyboard input away.
func (l *Listbox) Blur() { l.focused = false }

// Focused reports whether key presses are handled.
func (l *Listbox) Focused() bool { return l.focused }

// Mount registers the children, reconciles, and then hands the listbox to
// the OnMount callback. Mounting twice without Close does nothing.
func (l *Listbox) Mount() tea.Cmd {
	if l.mounted {
		return nil
	}
	l.mounted = true
	l.log.Logf("mount with %d options", len(l.children))
	changes := l.capture(func() {
		pending := l.children
		l.children = nil
		l.mountChildren(pending)
		l.reconcile()
	})
	if l.onMount != nil {
		l.onMount(l)
	}
	return l.changeCmd(changes)
}

// Close unmounts every child. The children and the selection state are
// kept, so a later Mount registers the same options again.
func (l *Listbox) Close() {
	for _, o := range l.children {
		o.Unmount()
	}
	l.mounted = false
	l.focused = false
	l.log.Logf("closed")
}

// Reconcile brings the registry in line with the controlled value and the
// mounted options. It is idempotent: a second call without an intervening
// change notifies nothing.
func (l *Listbox) Reconcile() tea.Cmd {
	return l.changeCmd(l.capture(l.reconcile))
}

// SetOptions replaces the children, keyed by id. Options whose id is gone
// unmount; new ids mount at the end in the given order; surviving options
// keep their place and take the new label. Emptying the list clears the
// selection before the new options mount, so a wholly new set starts at
// its first option.
func (l *Listbox) SetOptions(children ...*Option) tea.Cmd {
	if !l.mounted {
		l.children = append([]*Option(nil), children...)
		return nil
	}
	return l.changeCmd(l.capture(func() {
		wanted := make(map[string]*Option, len(children))
		for _, c := range children {
			if c == nil {
				continue
			}
			if _, dup := wanted[c.ID]; !dup {
				wanted[c.ID] = c
			}
		}

		kept := l.children[:0:0]
		for _, o := range l.children {
			next, ok := wanted[o.ID]
			if !ok || !o.Mounted() {
				l.log.Logf("unmount %q", o.ID)
				o.Unmount()
				continue
			}
			if next != o {
				o.Label = next.Label
			}
			delete(wanted, o.ID)
			kept = append(kept, o)
		}
		l.children = kept

		if l.registry.Len() == 0 {
			l.updateSelection()
		}

		var fresh []*Option
		for _, c := range children {
			if c != nil && wanted[c.ID] == c {
				fresh = append(fresh, c)
				delete(wanted, c.ID)
			}
		}
		l.mountChildren(fresh)
		l.reconcile()
	}))
}

// HandleKey applies one logical key press. Navigation never wraps.
func (l *Listbox) HandleKey(k Key) tea.Cmd {
	return l.changeCmd(l.capture(func() {
		l.handleKey(k)
	}))
}

// Update routes key presses to HandleKey while the listbox has focus.
func (l *Listbox) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !l.focused {
		return nil
	}
	k := l.keys.Resolve(keyMsg)
	if k == KeyNone {
		return nil
	}
	return l.HandleKey(k)
}

func (l *Listbox) handleKey(k Key) {
	n := l.registry.Len()
	switch k {
	case KeyArrowDown:
		if l.cursor < n {
			l.cursor++
			if l.cursor >= n {
				l.cursor = lastIndex(n)
			}
			l.updateSelection()
		}
	case KeyArrowUp:
		if l.cursor > 0 {
			l.cursor--
			l.updateSelection()
		}
	case KeyHome:
		l.cursor = 0
		l.updateSelection()
	case KeyEnd:
		l.cursor = lastIndex(n)
		l.updateSelection()
	}
}

func (l *Listbox) reconcile() {
	value := l.value.Get()
	active := l.registry.Active()

	switch {
	case active == "" && value != "":
		// A value seeded before any option existed becomes the first activation.
		l.log.Logf("adopt value %q", value)
		l.registry.setPending(value)
		l.notify(value)
	case active != "" && value != "" && value != active:
		if i := l.registry.IndexOfID(value); i >= 0 {
			l.log.Logf("value changed to %q, moving cursor to %d", value, i)
			l.cursor = i
			l.updateSelection()
		} else {
			l.log.Logf("value changed to unmounted %q", value)
			l.registry.setPending(value)
			l.notify(value)
		}
	}

	if selected := l.registry.Selected(); selected.Valid() {
		if i := l.registry.IndexOf(selected); i >= 0 {
			l.cursor = i
		} else {
			l.log.Logf("selected option gone, repairing at cursor %d", l.cursor)
			l.updateSelection()
		}
	}

	if l.registry.Len() > 0 && l.value.Get() == "" {
		l.updateSelection()
	}
}

// updateSelection derives the selection from the cursor. It is the only
// place that reports a moved selection, and it does so only when the
// active id actually changes.
func (l *Listbox) updateSelection() {
	previous := l.registry.Active()
	n := l.registry.Len()
	l.cursor = clampCursor(l.cursor, n)

	switch {
	case n == 0 && l.registry.Selected().Valid():
		l.log.Logf("no options left, clearing %q", previous)
		l.registry.clear()
		l.value.Set("")
		l.cursor = 0
	case l.cursor < n:
		rec := l.registry.At(l.cursor)
		l.registry.selectRecord(rec)
		l.value.Set(rec.ID)
	}

	if active := l.registry.Active(); active != "" && active != previous {
		l.notify(active)
	}
}

func (l *Listbox) notify(id string) {
	l.log.Logf("change %q", id)
	if l.onChange != nil {
		l.onChange(id)
	}
	l.changes = append(l.changes, id)
}

// mountChildren appends and mounts nodes. If any mount panics, the nodes of
// this batch that did mount are unmounted again before the panic continues.
func (l *Listbox) mountChildren(nodes []*Option) {
	done := make([]*Option, 0, len(nodes))
	defer func() {
		if r := recover(); r != nil {
			for _, o := range done {
				o.Unmount()
			}
			panic(r)
		}
	}()
	for _, o := range nodes {
		o.Mount(l.registry)
		done = append(done, o)
	}
	l.children = append(l.children, done...)
}

func (l *Listbox) capture(fn func()) []string {
	outer := l.changes
	l.changes = nil
	fn()
	got := l.changes
	l.changes = outer
	return got
}

func (l *Listbox) changeCmd(changes []string) tea.Cmd {
	if len(changes) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(changes))
	for _, id := range changes {
		msg := ListboxChangedMsg{Listbox: l, Label: l.label, Value: id}
		cmds = append(cmds, func() tea.Msg { return msg })
	}
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

func lastIndex(n int) int {
	if n == 0 {
		return 0
	}
	return n - 1
}
