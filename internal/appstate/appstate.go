// Package appstate holds the application-wide state shown by the web interface and reports
// every change to its subscribers.
package appstate

import (
	"sync"

	"go.uber.org/zap"

	"github.com/acc-switch/accswitch/internal/settings"
)

// Change sources reported to subscribers.
const (
	SourceToasts     = "toasts"
	SourceNavigation = "navigation"
	SourceWindow     = "window"
	SourceDiscord    = "discord"
)

const (
	logMessageStateChanged = "application state changed"
	logFieldSource         = "source"
	logFieldSubscribers    = "subscribers"
)

// Change describes which part of the state changed.
type Change struct {
	Source string `json:"source"`
}

// Observer receives state changes.
type Observer func(change Change)

// Snapshot is the serializable view of the whole state.
type Snapshot struct {
	Toasts     []Toast            `json:"toasts"`
	Navigation NavigationSnapshot `json:"navigation"`
	Window     WindowSettings     `json:"window"`
	Discord    PresenceSnapshot   `json:"discord"`
}

// Config configures the application state.
type Config struct {
	UserDataDirectory string
	FileSystem        settings.FileSystem
	Logger            *zap.Logger
}

type subscription struct {
	identifier int
	observer   Observer
}

// AppState owns the toasts, navigation, window settings and Discord presence.
//
// Observers are called synchronously in registration order on the goroutine that made the
// change. The subscriber lock is not held while they run, so an observer may read the state or
// unsubscribe.
type AppState struct {
	toasts     *Toasts
	navigation *Navigation
	window     *WindowState
	discord    *DiscordPresence
	logger     *zap.Logger

	subscribersMutex sync.Mutex
	subscribers      []subscription
	nextIdentifier   int
}

// New constructs the state and loads WindowSettings.json. A malformed window settings file
// is logged and replaced by defaults.
func New(configuration Config) *AppState {
	logger := configuration.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	state := &AppState{logger: logger}
	state.toasts = newToasts(state.publish)
	state.navigation = newNavigation(state.publish)
	state.window = newWindowState(configuration.UserDataDirectory, configuration.FileSystem, logger, state.onWindowChanged)
	_ = state.window.store.Load()

	windowSettings := state.window.Settings()
	state.discord = newDiscordPresence(windowSettings.DiscordRpcEnabled, windowSettings.DiscordRpcShareTotalSwitches, state.publish)
	return state
}

// Toasts returns the toast list.
func (state *AppState) Toasts() *Toasts {
	return state.toasts
}

// Navigation returns the navigation history.
func (state *AppState) Navigation() *Navigation {
	return state.navigation
}

// Window returns the window settings.
func (state *AppState) Window() *WindowState {
	return state.window
}

// Discord returns the Discord presence.
func (state *AppState) Discord() *DiscordPresence {
	return state.discord
}

// Subscribe registers observer and returns a function that removes it. Calling the returned
// function more than once is harmless.
func (state *AppState) Subscribe(observer Observer) func() {
	state.subscribersMutex.Lock()
	defer state.subscribersMutex.Unlock()

	state.nextIdentifier++
	identifier := state.nextIdentifier
	state.subscribers = append(state.subscribers, subscription{identifier: identifier, observer: observer})

	return func() {
		state.subscribersMutex.Lock()
		defer state.subscribersMutex.Unlock()

		for index, existing := range state.subscribers {
			if existing.identifier == identifier {
				state.subscribers = append(state.subscribers[:index:index], state.subscribers[index+1:]...)
				return
			}
		}
	}
}

// Snapshot returns a copy of the whole state.
func (state *AppState) Snapshot() Snapshot {
	return Snapshot{
		Toasts:     state.toasts.List(),
		Navigation: state.navigation.Snapshot(),
		Window:     state.window.Settings(),
		Discord:    state.discord.Snapshot(),
	}
}

func (state *AppState) publish(source string) {
	state.subscribersMutex.Lock()
	observers := make([]Observer, 0, len(state.subscribers))
	for _, existing := range state.subscribers {
		observers = append(observers, existing.observer)
	}
	state.subscribersMutex.Unlock()

	state.logger.Debug(logMessageStateChanged, zap.String(logFieldSource, source), zap.Int(logFieldSubscribers, len(observers)))
	change := Change{Source: source}
	for _, observer := range observers {
		observer(change)
	}
}

func (state *AppState) onWindowChanged(source string) {
	state.publish(source)
	if state.discord == nil {
		return
	}
	windowSettings := state.window.Settings()
	state.discord.Configure(windowSettings.DiscordRpcEnabled, windowSettings.DiscordRpcShareTotalSwitches)
}
