package ui

// Option is one selectable entry of a Listbox.
//
// A mounted Option holds a handle into its listbox's Registry; Unmount gives
// the handle back exactly once no matter how often it is called.
type Option struct {
	ID    string
	Label string

	registry *Registry
	identity Identity
}

// NewOption creates an unmounted option.
func NewOption(id, label string) *Option {
	if label == "" {
		label = id
	}
	return &Option{ID: id, Label: label}
}

// Mount registers the option. Mounting a mounted option does nothing.
func (o *Option) Mount(r *Registry) {
	if o.registry != nil {
		return
	}
	o.registry = r
	o.identity = r.Register(o.ID)
}

// Unmount unregisters the option.
func (o *Option) Unmount() {
	if o.registry == nil {
		return
	}
	o.registry.Unregister(o.identity)
	o.registry = nil
	o.identity = 0
}

// Mounted reports whether the option is registered.
func (o *Option) Mounted() bool {
	return o.registry != nil
}

// Identity returns the handle issued at mount, zero when unmounted.
func (o *Option) Identity() Identity {
	return o.identity
}

// Selected asks the registry on every call; the selection moves without
// the option being told.
func (o *Option) Selected() bool {
	if o.registry == nil {
		return false
	}
	return o.registry.IsSelected(o.identity)
}

// Render describes the option for drawing.
func (o *Option) Render() OptionElement {
	return OptionElement{
		Role:     "option",
		ID:       o.ID,
		Label:    o.Label,
		Selected: o.Selected(),
	}
}
