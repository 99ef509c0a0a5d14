package platforms

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	errMessageLoadPlatform = "load platform"
	errMessageSavePlatform = "save platform"
)

// Registry owns one instance of every supported platform for the life of the process.
type Registry struct {
	BattleNet *BattleNet
	Steam     *Steam
	Discord   *Discord
	Epic      *Epic
	Origin    *Origin
	Riot      *Riot
	Ubisoft   *Ubisoft

	ordered []Switcher
}

// NewRegistry constructs every platform against the same user-data directory.
func NewRegistry(configuration Config) *Registry {
	registry := &Registry{
		BattleNet: NewBattleNet(configuration),
		Steam:     NewSteam(configuration),
		Discord:   NewDiscord(configuration),
		Epic:      NewEpic(configuration),
		Origin:    NewOrigin(configuration),
		Riot:      NewRiot(configuration),
		Ubisoft:   NewUbisoft(configuration),
	}
	registry.ordered = []Switcher{
		registry.BattleNet,
		registry.Discord,
		registry.Epic,
		registry.Origin,
		registry.Riot,
		registry.Steam,
		registry.Ubisoft,
	}
	return registry
}

// Names lists the platform names in display order.
func Names() []string {
	return []string{BattleNetName, DiscordName, EpicName, OriginName, RiotName, SteamName, UbisoftName}
}

// Names lists the registered platform names in display order.
func (registry *Registry) Names() []string {
	names := make([]string, 0, len(registry.ordered))
	for _, switcher := range registry.ordered {
		names = append(names, switcher.Name())
	}
	return names
}

// Lookup finds a platform by name, ignoring case.
func (registry *Registry) Lookup(name string) (Switcher, bool) {
	for _, switcher := range registry.ordered {
		if strings.EqualFold(switcher.Name(), name) {
			return switcher, true
		}
	}
	return nil, false
}

// All returns every platform in display order.
func (registry *Registry) All() []Switcher {
	return append([]Switcher(nil), registry.ordered...)
}

// LoadAll loads every platform concurrently. Malformed files fall back to defaults inside each
// platform; the first hard failure is returned.
func (registry *Registry) LoadAll(ctx context.Context) error {
	group, groupContext := errgroup.WithContext(ctx)
	for _, switcher := range registry.ordered {
		switcher := switcher
		group.Go(func() error {
			if err := groupContext.Err(); err != nil {
				return err
			}
			if err := switcher.Load(); err != nil {
				return fmt.Errorf("%s %s: %w", errMessageLoadPlatform, switcher.Name(), err)
			}
			return nil
		})
	}
	return group.Wait()
}

// SaveAll writes every platform's settings concurrently, keeping keys that only exist in the
// files. It returns the first failure.
func (registry *Registry) SaveAll(ctx context.Context) error {
	group, groupContext := errgroup.WithContext(ctx)
	for _, switcher := range registry.ordered {
		switcher := switcher
		group.Go(func() error {
			if err := groupContext.Err(); err != nil {
				return err
			}
			if err := switcher.SaveSettings(true); err != nil {
				return fmt.Errorf("%s %s: %w", errMessageSavePlatform, switcher.Name(), err)
			}
			return nil
		})
	}
	return group.Wait()
}
