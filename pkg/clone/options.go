package clone

import "time"

// Protocol timing.
const (
	// DefaultSettleDelay is the pause in front of an ACK exchange.
	DefaultSettleDelay = 200 * time.Millisecond
	// DefaultBreakDuration is the break held after every byte of a
	// non-final block.
	DefaultBreakDuration = time.Second
)

// Config holds the engine configuration.
type Config struct {
	SettleDelay   time.Duration
	BreakDuration time.Duration

	Prompter         Prompter
	ProgressCallback ProgressCallback
	StateCallback    StateCallback
}

func defaultConfig() Config {
	return Config{
		SettleDelay:   DefaultSettleDelay,
		BreakDuration: DefaultBreakDuration,
	}
}

// Option is a functional option for configuring the Engine.
type Option func(*Config)

// WithSettleDelay sets the pause in front of ACK exchanges.
func WithSettleDelay(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.SettleDelay = d
		}
	}
}

// WithBreakDuration sets the break held after each byte of a non-final block.
func WithBreakDuration(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.BreakDuration = d
		}
	}
}

// WithPrompter sets the operator prompt used before a transfer starts.
func WithPrompter(p Prompter) Option {
	return func(c *Config) {
		c.Prompter = p
	}
}

// WithProgressCallback sets a callback to track transfer progress.
func WithProgressCallback(cb ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = cb
	}
}

// WithStateCallback sets a callback for state transitions.
func WithStateCallback(cb StateCallback) Option {
	return func(c *Config) {
		c.StateCallback = cb
	}
}
