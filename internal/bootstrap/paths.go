// Package bootstrap prepares the user-data directory before the platforms are loaded.
package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	applicationDirectoryName  = "AccSwitch"
	errMessageResolveUserData = "resolve user-data directory"
	errMessageResolveLegacy   = "resolve legacy directory"
)

// PathConfig overrides how the directories are located. Empty fields use the operating system.
type PathConfig struct {
	UserDataDirectory   string
	LegacyDirectory     string
	UserConfigDirectory func() (string, error)
	HomeDirectory       func() (string, error)
	Executable          func() (string, error)
}

// Paths are the directories the application works with.
type Paths struct {
	// UserData holds settings, LoginCache and the web root.
	UserData string
	// Legacy is the install directory older releases wrote their files to.
	Legacy string
}

// ResolvePaths picks the user-data directory from the configured value, then the user
// configuration directory, then the home directory. The legacy directory defaults to the
// directory holding the executable.
func ResolvePaths(configuration PathConfig) (Paths, error) {
	userConfigDirectory := configuration.UserConfigDirectory
	if userConfigDirectory == nil {
		userConfigDirectory = os.UserConfigDir
	}
	homeDirectory := configuration.HomeDirectory
	if homeDirectory == nil {
		homeDirectory = os.UserHomeDir
	}
	executable := configuration.Executable
	if executable == nil {
		executable = os.Executable
	}

	userData, err := resolveUserData(configuration.UserDataDirectory, userConfigDirectory, homeDirectory)
	if err != nil {
		return Paths{}, fmt.Errorf("%s: %w", errMessageResolveUserData, err)
	}

	legacy := strings.TrimSpace(configuration.LegacyDirectory)
	if legacy == "" {
		executablePath, executableErr := executable()
		if executableErr != nil {
			return Paths{}, fmt.Errorf("%s: %w", errMessageResolveLegacy, executableErr)
		}
		legacy = filepath.Dir(executablePath)
	}

	return Paths{UserData: filepath.Clean(userData), Legacy: filepath.Clean(legacy)}, nil
}

func resolveUserData(configured string, userConfigDirectory func() (string, error), homeDirectory func() (string, error)) (string, error) {
	if trimmed := strings.TrimSpace(configured); trimmed != "" {
		return trimmed, nil
	}
	configDirectory, configErr := userConfigDirectory()
	if configErr == nil && configDirectory != "" {
		return filepath.Join(configDirectory, applicationDirectoryName), nil
	}
	home, homeErr := homeDirectory()
	if homeErr == nil && home != "" {
		return filepath.Join(home, "."+strings.ToLower(applicationDirectoryName)), nil
	}
	return "", errors.Join(configErr, homeErr)
}
