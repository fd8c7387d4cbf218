package chroma

// Config defines chromagram analysis parameters.
type Config struct {
	FrameSize int
	HopSize   int
	MinFreq   float64
	MaxFreq   float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns non-overlapping 2048-sample frames over the
// 80-2000 Hz band. Below 80 Hz the spectrum is dominated by rumble; above
// 2 kHz harmonics stop carrying useful chord information.
func DefaultConfig() Config {
	return Config{
		FrameSize: 2048,
		HopSize:   2048,
		MinFreq:   80,
		MaxFreq:   2000,
	}
}

// WithFrameSize sets the analysis frame size in samples. The hop size is
// kept equal to the frame size unless WithHopSize is applied afterwards.
func WithFrameSize(frameSize int) Option {
	return func(cfg *Config) {
		if frameSize > 0 {
			cfg.FrameSize = frameSize
			cfg.HopSize = frameSize
		}
	}
}

// WithHopSize sets the hop between analysis frames. A hop of half the
// frame size trades speed for quality.
func WithHopSize(hopSize int) Option {
	return func(cfg *Config) {
		if hopSize > 0 {
			cfg.HopSize = hopSize
		}
	}
}

// WithFrequencyBand sets the band of spectrum bins folded into the
// chromagram.
func WithFrequencyBand(minFreq, maxFreq float64) Option {
	return func(cfg *Config) {
		if minFreq > 0 && maxFreq > minFreq {
			cfg.MinFreq = minFreq
			cfg.MaxFreq = maxFreq
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
