package key

import "github.com/cwbudde/algo-loop/dsp/chroma"

// Config defines key estimation parameters.
type Config struct {
	// AnalysisDuration limits analysis to the leading seconds of audio.
	// Zero or negative analyzes the full input.
	AnalysisDuration float64

	// Chroma options are forwarded to the chromagram builder.
	Chroma []chroma.Option
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig analyzes the first four seconds.
func DefaultConfig() Config {
	return Config{AnalysisDuration: 4}
}

// WithAnalysisDuration sets how many leading seconds are analyzed.
// A non-positive value analyzes the full input.
func WithAnalysisDuration(seconds float64) Option {
	return func(cfg *Config) {
		cfg.AnalysisDuration = seconds
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
