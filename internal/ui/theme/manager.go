package theme

import (
	"sort"
	"sync"
)

var globalManager = &manager{
	themes: make(map[string]Theme),
}

type manager struct {
	mu          sync.RWMutex
	themes      map[string]Theme
	currentName string
	current     Theme
}

// RegisterTheme adds a theme. The first registered theme becomes current.
func RegisterTheme(name string, t Theme) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.themes[name] = t
	if globalManager.current == nil {
		globalManager.currentName = name
		globalManager.current = t
	}
}

// SetTheme switches to a registered theme, reporting whether it exists.
func SetTheme(name string) bool {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	t, ok := globalManager.themes[name]
	if !ok {
		return false
	}
	globalManager.currentName = name
	globalManager.current = t
	return true
}

// Current returns the active theme.
func Current() Theme {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return globalManager.current
}

// CurrentName returns the name of the active theme.
func CurrentName() string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return globalManager.currentName
}

// Available lists registered theme names, sorted.
func Available() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return sortedNames(globalManager.themes)
}

// CycleTheme activates the next theme in sorted order and returns its name.
func CycleTheme() string {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	names := sortedNames(globalManager.themes)
	if len(names) == 0 {
		return ""
	}
	next := 0
	for i, name := range names {
		if name == globalManager.currentName {
			next = (i + 1) % len(names)
			break
		}
	}
	globalManager.currentName = names[next]
	globalManager.current = globalManager.themes[names[next]]
	return names[next]
}

func sortedNames(themes map[string]Theme) []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
