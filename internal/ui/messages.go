package ui

import (
	"context"
	"time"

	"listbox/internal/catalog"

	tea "github.com/charmbracelet/bubbletea"
)

const catalogTimeout = 5 * time.Second

// itemsLoadedMsg carries the items of one source back from the catalog.
type itemsLoadedMsg struct {
	source string
	items  []catalog.Entry
	err    error
}

// detailLoadedMsg carries the description of one item.
type detailLoadedMsg struct {
	source      string
	item        string
	description string
	err         error
}

type statusExpiredMsg struct {
	seq int
}

func loadItemsCmd(store *catalog.Store, source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), catalogTimeout)
		defer cancel()
		items, err := store.Items(ctx, source)
		return itemsLoadedMsg{source: source, items: items, err: err}
	}
}

func loadDetailCmd(store *catalog.Store, source, item string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), catalogTimeout)
		defer cancel()
		desc, err := store.Describe(ctx, source, item)
		return detailLoadedMsg{source: source, item: item, description: desc, err: err}
	}
}

func scheduleStatusExpiry(seq int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}
