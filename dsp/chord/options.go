package chord

import "github.com/cwbudde/algo-loop/dsp/chroma"

// Config defines chord segmentation parameters.
type Config struct {
	// WindowDuration is the fixed analysis window length in seconds.
	// Windows are not beat-aligned; segmentation is tempo-independent.
	WindowDuration float64

	// Chroma options are forwarded to the per-window chromagram builder.
	Chroma []chroma.Option
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig uses one-second non-overlapping windows.
func DefaultConfig() Config {
	return Config{WindowDuration: 1}
}

// WithWindowDuration sets the analysis window length in seconds.
func WithWindowDuration(seconds float64) Option {
	return func(cfg *Config) {
		if seconds > 0 {
			cfg.WindowDuration = seconds
		}
	}
}

// WithChromaOptions forwards options to the chromagram builder.
func WithChromaOptions(opts ...chroma.Option) Option {
	return func(cfg *Config) {
		cfg.Chroma = opts
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
