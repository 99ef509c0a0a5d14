package appstate

import (
	"fmt"
	"sync"
)

const (
	presenceDetailsFormat = "Switching %s accounts"
	presenceStateFormat   = "Total switches: %d"
)

// PresenceSnapshot is the Discord Rich Presence text currently published.
type PresenceSnapshot struct {
	Enabled            bool   `json:"enabled"`
	ShareTotalSwitches bool   `json:"shareTotalSwitches"`
	Platform           string `json:"platform"`
	TotalSwitches      int    `json:"totalSwitches"`
	Details            string `json:"details"`
	State              string `json:"state"`
}

// DiscordPresence tracks the Rich Presence text derived from the current platform and switch count.
type DiscordPresence struct {
	mutex    sync.Mutex
	snapshot PresenceSnapshot
	notify   func(source string)
}

func newDiscordPresence(enabled bool, shareTotalSwitches bool, notify func(source string)) *DiscordPresence {
	snapshot := PresenceSnapshot{Enabled: enabled, ShareTotalSwitches: shareTotalSwitches}
	snapshot.Details, snapshot.State = presenceText(snapshot)
	return &DiscordPresence{snapshot: snapshot, notify: notify}
}

// Configure updates the enabled flags and recomputes the text.
func (presence *DiscordPresence) Configure(enabled bool, shareTotalSwitches bool) bool {
	return presence.apply(func(snapshot *PresenceSnapshot) {
		snapshot.Enabled = enabled
		snapshot.ShareTotalSwitches = shareTotalSwitches
	})
}

// Refresh sets the platform being used and the total switch count. It reports whether the
// published presence changed.
func (presence *DiscordPresence) Refresh(platformName string, totalSwitches int) bool {
	return presence.apply(func(snapshot *PresenceSnapshot) {
		snapshot.Platform = platformName
		snapshot.TotalSwitches = totalSwitches
	})
}

// Snapshot returns the current presence.
func (presence *DiscordPresence) Snapshot() PresenceSnapshot {
	presence.mutex.Lock()
	defer presence.mutex.Unlock()

	return presence.snapshot
}

func (presence *DiscordPresence) apply(mutate func(snapshot *PresenceSnapshot)) bool {
	presence.mutex.Lock()
	updated := presence.snapshot
	mutate(&updated)
	updated.Details, updated.State = presenceText(updated)
	changed := updated != presence.snapshot
	presence.snapshot = updated
	presence.mutex.Unlock()

	if changed {
		presence.notify(SourceDiscord)
	}
	return changed
}

func presenceText(snapshot PresenceSnapshot) (string, string) {
	if !snapshot.Enabled {
		return "", ""
	}
	details := ""
	if snapshot.Platform != "" {
		details = fmt.Sprintf(presenceDetailsFormat, snapshot.Platform)
	}
	state := ""
	if snapshot.ShareTotalSwitches {
		state = fmt.Sprintf(presenceStateFormat, snapshot.TotalSwitches)
	}
	return details, state
}
