package tempo

import "github.com/cwbudde/algo-loop/dsp/envelope"

// Config defines the tempo search parameters.
type Config struct {
	HopSize int
	MinBPM  float64
	MaxBPM  float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns sensible defaults for loop material.
func DefaultConfig() Config {
	return Config{
		HopSize: envelope.DefaultHopSize,
		MinBPM:  60,
		MaxBPM:  180,
	}
}

// WithHopSize sets the envelope hop size in samples.
func WithHopSize(hopSize int) Option {
	return func(cfg *Config) {
		if hopSize > 0 {
			cfg.HopSize = hopSize
		}
	}
}

// WithBPMRange sets the inclusive tempo search bounds.
func WithBPMRange(minBPM, maxBPM float64) Option {
	return func(cfg *Config) {
		if minBPM > 0 && maxBPM >= minBPM {
			cfg.MinBPM = minBPM
			cfg.MaxBPM = maxBPM
		}
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
