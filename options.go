package hookbatch

import (
	"errors"
	"log/slog"
)

// Config holds all configuration options
type Config struct {
	// Engine performs the patching. Defaults to NativeEngine().
	Engine Engine
	// Logger receives outcome records. Defaults to slog.Default().
	Logger Logger
	// Debug traces every engine request at debug level.
	Debug bool
}

// Option represents a functional option for configuration
type Option func(*Config) error

// WithEngine sets the patching engine
func WithEngine(e Engine) Option {
	return func(c *Config) error {
		if e == nil {
			return errors.New("engine must not be nil")
		}
		c.Engine = e
		return nil
	}
}

// WithLogger sets the outcome logger
func WithLogger(l Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return errors.New("logger must not be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithDebug enables or disables request tracing
func WithDebug(v bool) Option {
	return func(c *Config) error {
		c.Debug = v
		return nil
	}
}

func newConfig(opts []Option) (*Config, error) {
	c := &Config{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Engine == nil {
		e := NativeEngine()
		if e == nil {
			return nil, ErrNoEngine
		}
		c.Engine = e
	}
	return c, nil
}
