package config

import "fmt"

const (
	minBufferSize = 512
	maxBufferSize = 64 << 20
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Version < 1 {
		return fmt.Errorf("invalid config version")
	}
	if c.BufferSize < minBufferSize || c.BufferSize > maxBufferSize {
		return fmt.Errorf("buffer_size must be between %d and %d", minBufferSize, maxBufferSize)
	}
	return nil
}
