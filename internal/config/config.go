// Package config handles icomerge configuration loading, saving, and validation.
package config

// Config represents the configuration file.
type Config struct {
	Version    int  `yaml:"version"`
	BufferSize int  `yaml:"buffer_size"` // payload copy buffer, bytes
	Verify     bool `yaml:"verify"`      // re-read and check the output after writing
	Log        Log  `yaml:"log"`
}

// Log configuration.
type Log struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file,omitempty"` // empty = icomerge.log in the default log directory
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version:    1,
		BufferSize: 64 * 1024,
		Verify:     false,
		Log: Log{
			Enabled: false,
		},
	}
}
