//go:build darwin

package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath returns the configuration path.
// Inside an .app bundle the executable directory isn't writable, so
// ~/Library/Application Support/icomerge/ is preferred.
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, "Library", "Application Support", "icomerge", fileName)
	}
	return configPathNextToExe()
}
