package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-loop/dsp/chord"
	"github.com/cwbudde/algo-loop/dsp/chroma"
	"github.com/cwbudde/algo-loop/dsp/key"
	"github.com/cwbudde/algo-loop/dsp/tempo"
)

// FileConfig is the YAML-loadable analyzer configuration for CLI and
// daemon callers. Zero values leave the corresponding defaults untouched.
type FileConfig struct {
	Workers int `yaml:"workers"`

	MinBPM  float64 `yaml:"min_bpm"`
	MaxBPM  float64 `yaml:"max_bpm"`
	HopSize int     `yaml:"hop_size"`

	FrameSize int     `yaml:"frame_size"`
	MinFreq   float64 `yaml:"min_freq"`
	MaxFreq   float64 `yaml:"max_freq"`

	KeySeconds         float64 `yaml:"key_seconds"`
	ChordWindowSeconds float64 `yaml:"chord_window_seconds"`
}

// LoadConfig reads a FileConfig from a YAML file.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("analysis: failed to read config file: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("analysis: failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Options maps the file configuration onto analyzer options.
func (c *FileConfig) Options() []Option {
	var chromaOpts []chroma.Option
	if c.FrameSize > 0 {
		chromaOpts = append(chromaOpts, chroma.WithFrameSize(c.FrameSize))
	}
	if c.MinFreq > 0 && c.MaxFreq > c.MinFreq {
		chromaOpts = append(chromaOpts, chroma.WithFrequencyBand(c.MinFreq, c.MaxFreq))
	}

	var tempoOpts []tempo.Option
	if c.HopSize > 0 {
		tempoOpts = append(tempoOpts, tempo.WithHopSize(c.HopSize))
	}
	if c.MinBPM > 0 && c.MaxBPM >= c.MinBPM {
		tempoOpts = append(tempoOpts, tempo.WithBPMRange(c.MinBPM, c.MaxBPM))
	}

	var keyOpts []key.Option
	if c.KeySeconds > 0 {
		keyOpts = append(keyOpts, key.WithAnalysisDuration(c.KeySeconds))
	}
	if len(chromaOpts) > 0 {
		keyOpts = append(keyOpts, key.WithChromaOptions(chromaOpts...))
	}

	var chordOpts []chord.Option
	if c.ChordWindowSeconds > 0 {
		chordOpts = append(chordOpts, chord.WithWindowDuration(c.ChordWindowSeconds))
	}
	if len(chromaOpts) > 0 {
		chordOpts = append(chordOpts, chord.WithChromaOptions(chromaOpts...))
	}

	opts := []Option{
		WithTempoOptions(tempoOpts...),
		WithKeyOptions(keyOpts...),
		WithChordOptions(chordOpts...),
	}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	return opts
}
