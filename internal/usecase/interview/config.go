package interview

import "time"

// Config tunes the session runner timers. Zero values fall back to defaults.
type Config struct {
	SetupTimeout time.Duration // bound on both peers joining during setup
	ReadyTimeout time.Duration // bound on the client's ready-to-capture ack
}

// DefaultConfig returns the default runner configuration
func DefaultConfig() Config {
	return Config{
		SetupTimeout: 60 * time.Second,
		ReadyTimeout: 30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.SetupTimeout <= 0 {
		c.SetupTimeout = d.SetupTimeout
	}
	if c.ReadyTimeout <= 0 {
		c.ReadyTimeout = d.ReadyTimeout
	}
	return c
}
