package ui

// Identity is an opaque handle assigned to an option when it mounts.
// Handles are never reused within a Registry, so a handle whose option has
// unmounted simply matches nothing. The zero Identity means "none".
type Identity uint64

// Valid reports whether the handle was issued by a Registry.
func (id Identity) Valid() bool {
	return id != 0
}

// OptionRecord is a mounted option as seen by its listbox.
type OptionRecord struct {
	ID       string
	Identity Identity
}

// Registry is the state one listbox shares with its mounted options:
// the options in mount order, the selected identity and the active id.
//
// Options add and remove themselves through Register/Unregister. Only the
// owning Listbox changes the selection.
type Registry struct {
	options  []OptionRecord
	selected Identity
	active   string
	last     Identity
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an option and returns its handle. An option whose id
// matches the pending active id becomes the selection.
func (r *Registry) Register(id string) Identity {
	r.last++
	identity := r.last
	r.options = append(r.options, OptionRecord{ID: id, Identity: identity})
	if r.active != "" && id == r.active {
		r.selected = identity
	}
	return identity
}

// Unregister removes the option with the given handle, keeping the order of
// the rest. The selection is left for the listbox to repair.
func (r *Registry) Unregister(identity Identity) {
	for i, rec := range r.options {
		if rec.Identity == identity {
			r.options = append(r.options[:i], r.options[i+1:]...)
			return
		}
	}
}

// IsSelected reports whether identity is the current selection.
func (r *Registry) IsSelected(identity Identity) bool {
	return identity.Valid() && r.selected == identity
}

// Len returns the number of mounted options.
func (r *Registry) Len() int {
	return len(r.options)
}

// At returns the option at navigation index i.
func (r *Registry) At(i int) OptionRecord {
	return r.options[i]
}

// Options returns a copy of the mounted options in navigation order.
func (r *Registry) Options() []OptionRecord {
	out := make([]OptionRecord, len(r.options))
	copy(out, r.options)
	return out
}

// Active returns the active id, which may name an option not mounted yet.
func (r *Registry) Active() string {
	return r.active
}

// Selected returns the selected handle, possibly stale.
func (r *Registry) Selected() Identity {
	return r.selected
}

// IndexOf returns the navigation index of identity, or -1.
func (r *Registry) IndexOf(identity Identity) int {
	if !identity.Valid() {
		return -1
	}
	for i, rec := range r.options {
		if rec.Identity == identity {
			return i
		}
	}
	return -1
}

// IndexOfID returns the index of the first option with the given id, or -1.
func (r *Registry) IndexOfID(id string) int {
	for i, rec := range r.options {
		if rec.ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) selectRecord(rec OptionRecord) {
	r.selected = rec.Identity
	r.active = rec.ID
}

// setPending makes id the active id and selects the first mounted option
// carrying it, if any.
func (r *Registry) setPending(id string) {
	r.active = id
	r.selected = 0
	if i := r.IndexOfID(id); i >= 0 {
		r.selected = r.options[i].Identity
	}
}

func (r *Registry) clear() {
	r.selected = 0
	r.active = ""
}
