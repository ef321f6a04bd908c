//go:build !darwin

package config

// GetConfigPath returns the configuration path next to the executable.
func GetConfigPath() string {
	return configPathNextToExe()
}
