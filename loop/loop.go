// Package loop maintains a composition of overdubbed audio layers.
//
// A Composition owns an ordered layer sequence, each layer with a volume
// gain and mute flag, and keeps a cached composite mix that is recomputed
// synchronously after every mutation. Every user-visible mutation is
// snapshotted first, giving bounded undo/redo. All methods are safe for
// concurrent use; mutations are serialized by an internal mutex.
package loop

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-loop/codec/wav"
	"github.com/cwbudde/algo-loop/dsp/audio"
	"github.com/cwbudde/algo-loop/dsp/core"
	"github.com/cwbudde/algo-loop/loop/history"
)

var (
	// ErrInvalidLayerIndex is returned for volume/mute operations that
	// reference a layer outside the current sequence.
	ErrInvalidLayerIndex = errors.New("loop: invalid layer index")

	// ErrBaseLayer is returned when removal would drop the last remaining
	// layer.
	ErrBaseLayer = errors.New("loop: cannot remove the base layer")

	// ErrSampleRateMismatch is returned when an added layer does not share
	// the composition's sample rate.
	ErrSampleRateMismatch = errors.New("loop: layer sample rate mismatch")
)

// Layer is one recorded or loaded take. The buffer is immutable and shared;
// volume and mute are per-layer mix state.
type Layer struct {
	buffer *audio.Buffer
	volume float64
	muted  bool
}

// Buffer returns the layer's audio.
func (l Layer) Buffer() *audio.Buffer { return l.buffer }

// Volume returns the layer's gain in [0, 1].
func (l Layer) Volume() float64 { return l.volume }

// Muted reports whether the layer is excluded from the mix.
func (l Layer) Muted() bool { return l.muted }

// Composition is an ordered set of layers plus their cached composite mix.
type Composition struct {
	mu        sync.Mutex
	layers    []Layer
	composite *audio.Buffer
	hist      *history.Manager[[]Layer]

	// remix scratch, reused across mutations. Safe because audio.New
	// copies the mix before the composite escapes.
	mix     [][]float64
	scratch []float64
}

// Option mutates composition construction parameters.
type Option func(*options)

type options struct {
	historyDepth int
}

// WithHistoryDepth sets the maximum undo/redo depth.
func WithHistoryDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.historyDepth = depth
		}
	}
}

// New creates a composition from its base layer at volume 1, unmuted.
func New(base *audio.Buffer, opts ...Option) (*Composition, error) {
	if base == nil {
		return nil, errors.New("loop: base layer must not be nil")
	}

	o := options{historyDepth: history.DefaultDepth}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	c := &Composition{
		layers: []Layer{{buffer: base, volume: 1}},
		hist:   history.NewManager[[]Layer](o.historyDepth),
	}
	c.remix()
	return c, nil
}

// AddLayer appends an overdub at volume 1, unmuted, and remixes.
func (c *Composition) AddLayer(buf *audio.Buffer) error {
	if buf == nil {
		return errors.New("loop: layer buffer must not be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if buf.SampleRate() != c.layers[0].buffer.SampleRate() {
		return fmt.Errorf("%w: layer %d Hz, composition %d Hz",
			ErrSampleRateMismatch, buf.SampleRate(), c.layers[0].buffer.SampleRate())
	}

	c.record()
	c.layers = append(c.layers, Layer{buffer: buf, volume: 1})
	c.remix()
	return nil
}

// SetVolume sets the gain of layer index, clamped to [0, 1], and remixes.
func (c *Composition) SetVolume(index int, volume float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.layers) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidLayerIndex, index, len(c.layers))
	}

	c.record()
	c.layers[index].volume = core.Clamp(volume, 0, 1)
	c.remix()
	return nil
}

// SetMuted sets the mute flag of layer index and remixes.
func (c *Composition) SetMuted(index int, muted bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.layers) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidLayerIndex, index, len(c.layers))
	}

	c.record()
	c.layers[index].muted = muted
	c.remix()
	return nil
}

// RemoveLastLayer drops the most recent layer and remixes. The base layer
// cannot be removed.
func (c *Composition) RemoveLastLayer() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.layers) <= 1 {
		return ErrBaseLayer
	}

	c.record()
	c.layers = c.layers[:len(c.layers)-1]
	c.remix()
	return nil
}

// Undo restores the most recent snapshot and remixes. It reports false,
// leaving the composition unchanged, when there is nothing to undo.
func (c *Composition) Undo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot, ok := c.hist.Undo(c.snapshot())
	if !ok {
		return false
	}

	c.layers = snapshot
	c.remix()
	return true
}

// Redo is the mirror of Undo.
func (c *Composition) Redo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot, ok := c.hist.Redo(c.snapshot())
	if !ok {
		return false
	}

	c.layers = snapshot
	c.remix()
	return true
}

// CanUndo reports whether an undo snapshot is available.
func (c *Composition) CanUndo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.CanUndo()
}

// CanRedo reports whether a redo snapshot is available.
func (c *Composition) CanRedo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hist.CanRedo()
}

// LayerCount returns the number of layers.
func (c *Composition) LayerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.layers)
}

// Layers returns a copy of the current layer sequence.
func (c *Composition) Layers() []Layer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Composite returns the cached mix of all unmuted layers. The buffer is
// immutable and remains valid after further edits.
func (c *Composition) Composite() *audio.Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.composite
}

// SampleRate returns the composition's sample rate in Hz.
func (c *Composition) SampleRate() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layers[0].buffer.SampleRate()
}

// Duration returns the composite length in seconds.
func (c *Composition) Duration() float64 {
	return c.Composite().Duration()
}

// Export encodes the composite as 16-bit PCM WAV bytes.
func (c *Composition) Export() ([]byte, error) {
	return wav.Encode(c.Composite())
}

// record pushes the current layer state onto the undo stack. Called with
// the lock held, before every mutation other than undo/redo.
func (c *Composition) record() {
	c.hist.Record(c.snapshot())
}

// snapshot value-copies the layer sequence. Buffers are reference-shared
// since they are immutable.
func (c *Composition) snapshot() []Layer {
	return append([]Layer(nil), c.layers...)
}

// remix recomputes the cached composite from the current layer state.
// Called with the lock held. Muted layers contribute nothing, including to
// the composite's dimensions. The mix is a plain sum of volume-scaled
// samples with no normalization or clipping; hot levels are the caller's
// concern.
func (c *Composition) remix() {
	sampleRate := c.layers[0].buffer.SampleRate()

	maxFrames, maxChannels := 0, 0
	for _, l := range c.layers {
		if l.muted {
			continue
		}
		if f := l.buffer.Frames(); f > maxFrames {
			maxFrames = f
		}
		if ch := l.buffer.Channels(); ch > maxChannels {
			maxChannels = ch
		}
	}

	if maxChannels == 0 {
		// Everything muted: an empty mono composite.
		c.composite, _ = audio.NewMono(sampleRate, nil)
		return
	}

	if len(c.mix) < maxChannels {
		c.mix = append(c.mix, make([][]float64, maxChannels-len(c.mix))...)
	}
	mix := c.mix[:maxChannels]
	for ch := range mix {
		mix[ch] = core.EnsureLen(mix[ch], maxFrames)
		core.Zero(mix[ch])
	}
	c.scratch = core.EnsureLen(c.scratch, maxFrames)

	for _, l := range c.layers {
		if l.muted {
			continue
		}
		for ch := 0; ch < maxChannels; ch++ {
			// Mono layers feed their single channel into every
			// composite channel.
			src := l.buffer.Channel(min(ch, l.buffer.Channels()-1))

			scaled := c.scratch[:len(src)]
			vecmath.ScaleBlock(scaled, src, l.volume)
			vecmath.AddBlockInPlace(mix[ch][:len(src)], scaled)
		}
	}

	composite, err := audio.New(sampleRate, mix)
	if err != nil {
		// Unreachable: dimensions and rate are derived from valid layers.
		panic(fmt.Sprintf("loop: remix produced invalid composite: %v", err))
	}
	c.composite = composite
}
