package audio

import (
	"errors"
	"testing"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(0, [][]float64{{1}}); err == nil {
		t.Error("expected error for zero sample rate")
	}
	if _, err := New(44100, nil); !errors.Is(err, ErrNoChannels) {
		t.Errorf("expected ErrNoChannels, got %v", err)
	}
	if _, err := New(44100, [][]float64{{1, 2}, {1}}); err == nil {
		t.Error("expected error for mismatched channel lengths")
	}
}

func TestNewCopiesInput(t *testing.T) {
	src := []float64{1, 2, 3}
	buf, err := NewMono(44100, src)
	if err != nil {
		t.Fatalf("NewMono: %v", err)
	}

	src[0] = 99
	if buf.Channel(0)[0] != 1 {
		t.Error("buffer should not alias caller storage")
	}
}

func TestAccessors(t *testing.T) {
	buf, err := New(8000, [][]float64{{1, 2, 3, 4}, {5, 6, 7, 8}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if buf.SampleRate() != 8000 {
		t.Errorf("SampleRate = %d, want 8000", buf.SampleRate())
	}
	if buf.Channels() != 2 {
		t.Errorf("Channels = %d, want 2", buf.Channels())
	}
	if buf.Frames() != 4 {
		t.Errorf("Frames = %d, want 4", buf.Frames())
	}
	if got := buf.Duration(); got != 0.0005 {
		t.Errorf("Duration = %g, want 0.0005", got)
	}
}

func TestMixdown(t *testing.T) {
	buf, err := New(44100, [][]float64{{1, 0, -1}, {0, 1, -1}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := buf.Mixdown()
	want := []float64{0.5, 0.5, -1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMixdownMonoIsCopy(t *testing.T) {
	buf, err := NewMono(44100, []float64{1, 2})
	if err != nil {
		t.Fatalf("NewMono: %v", err)
	}

	got := buf.Mixdown()
	got[0] = 99
	if buf.Channel(0)[0] != 1 {
		t.Error("Mixdown must not alias buffer storage")
	}
}
