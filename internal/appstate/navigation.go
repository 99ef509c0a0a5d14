package appstate

import (
	"strings"
	"sync"
)

const (
	homePath              = "/"
	maximumHistoryEntries = 50
)

// NavigationSnapshot is the serializable view of Navigation.
type NavigationSnapshot struct {
	Current   string `json:"current"`
	CanGoBack bool   `json:"canGoBack"`
}

// Navigation tracks the page shown by the web interface and a bounded back history.
type Navigation struct {
	mutex   sync.Mutex
	current string
	history []string
	notify  func(source string)
}

func newNavigation(notify func(source string)) *Navigation {
	return &Navigation{current: homePath, history: []string{}, notify: notify}
}

// NavigateTo makes path the current page. Blank paths mean the home page. Navigating to the
// current page changes nothing and reports false.
func (navigation *Navigation) NavigateTo(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		path = homePath
	}

	navigation.mutex.Lock()
	if path == navigation.current {
		navigation.mutex.Unlock()
		return false
	}
	navigation.history = append(navigation.history, navigation.current)
	if overflow := len(navigation.history) - maximumHistoryEntries; overflow > 0 {
		navigation.history = append([]string{}, navigation.history[overflow:]...)
	}
	navigation.current = path
	navigation.mutex.Unlock()

	navigation.notify(SourceNavigation)
	return true
}

// Back returns to the previous page and reports false when the history is empty.
func (navigation *Navigation) Back() bool {
	navigation.mutex.Lock()
	lastIndex := len(navigation.history) - 1
	if lastIndex < 0 {
		navigation.mutex.Unlock()
		return false
	}
	navigation.current = navigation.history[lastIndex]
	navigation.history = navigation.history[:lastIndex]
	navigation.mutex.Unlock()

	navigation.notify(SourceNavigation)
	return true
}

// Current returns the current page.
func (navigation *Navigation) Current() string {
	navigation.mutex.Lock()
	defer navigation.mutex.Unlock()

	return navigation.current
}

// Snapshot returns the current page and whether Back would succeed.
func (navigation *Navigation) Snapshot() NavigationSnapshot {
	navigation.mutex.Lock()
	defer navigation.mutex.Unlock()

	return NavigationSnapshot{Current: navigation.current, CanGoBack: len(navigation.history) > 0}
}

// HistoryLength returns the number of pages Back can return to.
func (navigation *Navigation) HistoryLength() int {
	navigation.mutex.Lock()
	defer navigation.mutex.Unlock()

	return len(navigation.history)
}
