package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	settingsFileSuffix         = "Settings.json"
	loginCacheDirectoryName    = "LoginCache"
	steamForgottenFileName     = "SteamForgotten.json"
	trayUsersFileName          = "Tray_Users.json"
	windowSettingsFileName     = "WindowSettings.json"
	migratedFilePermissions    = 0o644
	migratedDirectoryMode      = 0o755
	errMessageMigrateFile      = "migrate legacy file"
	errMessageRemoveLegacyFile = "remove legacy file"
	errMessageReplaceCache     = "replace login cache"
	errMessageCopyCache        = "copy login cache"
)

// MigrationReport lists what MigrateLegacyFiles moved.
type MigrationReport struct {
	MovedFiles       []string
	LoginCacheCopied bool
}

// LegacyFileNames returns the files older releases kept next to the executable.
func LegacyFileNames(platformNames []string) []string {
	fileNames := make([]string, 0, len(platformNames)+3)
	for _, platformName := range platformNames {
		fileNames = append(fileNames, platformName+settingsFileSuffix)
	}
	return append(fileNames, steamForgottenFileName, trayUsersFileName, windowSettingsFileName)
}

// MigrateLegacyFiles moves settings files from the legacy directory into the user-data
// directory, replacing any copy already there, and copies the legacy LoginCache tree over the
// user-data one. Failures on one file do not stop the others; they are returned joined.
func MigrateLegacyFiles(legacyDirectory string, userDataDirectory string, platformNames []string) (MigrationReport, error) {
	report := MigrationReport{MovedFiles: []string{}}
	if sameDirectory(legacyDirectory, userDataDirectory) {
		return report, nil
	}
	if err := os.MkdirAll(userDataDirectory, migratedDirectoryMode); err != nil {
		return report, fmt.Errorf("%s: %w", errMessageMigrateFile, err)
	}

	var failures []error
	for _, fileName := range LegacyFileNames(platformNames) {
		moved, err := moveFile(filepath.Join(legacyDirectory, fileName), filepath.Join(userDataDirectory, fileName))
		if err != nil {
			failures = append(failures, err)
			continue
		}
		if moved {
			report.MovedFiles = append(report.MovedFiles, fileName)
		}
	}

	copied, err := replaceLoginCache(filepath.Join(legacyDirectory, loginCacheDirectoryName), filepath.Join(userDataDirectory, loginCacheDirectoryName))
	if err != nil {
		failures = append(failures, err)
	}
	report.LoginCacheCopied = copied

	return report, errors.Join(failures...)
}

func moveFile(sourcePath string, destinationPath string) (bool, error) {
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%s %s: %w", errMessageMigrateFile, sourcePath, err)
	}
	if err := os.WriteFile(destinationPath, content, migratedFilePermissions); err != nil {
		return false, fmt.Errorf("%s %s: %w", errMessageMigrateFile, sourcePath, err)
	}
	if err := os.Remove(sourcePath); err != nil {
		return true, fmt.Errorf("%s %s: %w", errMessageRemoveLegacyFile, sourcePath, err)
	}
	return true, nil
}

func replaceLoginCache(sourceDirectory string, destinationDirectory string) (bool, error) {
	info, err := os.Stat(sourceDirectory)
	if err != nil || !info.IsDir() {
		return false, nil
	}
	if err := os.RemoveAll(destinationDirectory); err != nil {
		return false, fmt.Errorf("%s: %w", errMessageReplaceCache, err)
	}
	if err := os.CopyFS(destinationDirectory, os.DirFS(sourceDirectory)); err != nil {
		return false, fmt.Errorf("%s: %w", errMessageCopyCache, err)
	}
	return true, nil
}

func sameDirectory(first string, second string) bool {
	firstAbsolute, firstErr := filepath.Abs(first)
	secondAbsolute, secondErr := filepath.Abs(second)
	if firstErr != nil || secondErr != nil {
		return filepath.Clean(first) == filepath.Clean(second)
	}
	return firstAbsolute == secondAbsolute
}
