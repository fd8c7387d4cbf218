package analysis

import (
	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-loop/dsp/chord"
	"github.com/cwbudde/algo-loop/dsp/key"
	"github.com/cwbudde/algo-loop/dsp/tempo"
)

// Config defines analyzer behavior.
type Config struct {
	// Workers is the number of worker goroutines.
	Workers int

	// Log receives dispatch and failure events. Defaults to a no-op logger.
	Log zerolog.Logger

	// Per-kind analysis options, forwarded unchanged.
	Tempo  []tempo.Option
	Key    []key.Option
	Chords []chord.Option
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig runs a single silent worker with per-kind defaults.
func DefaultConfig() Config {
	return Config{
		Workers: 1,
		Log:     zerolog.Nop(),
	}
}

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithLogger sets the analyzer's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(cfg *Config) {
		cfg.Log = log
	}
}

// WithTempoOptions forwards options to the tempo estimator.
func WithTempoOptions(opts ...tempo.Option) Option {
	return func(cfg *Config) {
		cfg.Tempo = opts
	}
}

// WithKeyOptions forwards options to the key estimator.
func WithKeyOptions(opts ...key.Option) Option {
	return func(cfg *Config) {
		cfg.Key = opts
	}
}

// WithChordOptions forwards options to the chord segmenter.
func WithChordOptions(opts ...chord.Option) Option {
	return func(cfg *Config) {
		cfg.Chords = opts
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
