package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(440, 44100, 0.8, 512)
	if len(s) != 512 {
		t.Fatalf("len = %d, want 512", len(s))
	}

	// Phase zero: the first sample is 0.
	if s[0] != 0 {
		t.Errorf("s[0] = %v, want 0", s[0])
	}

	for i, v := range s {
		if math.Abs(v) > 0.8 {
			t.Fatalf("s[%d] = %v exceeds amplitude", i, v)
		}
	}

	again := DeterministicSine(440, 44100, 0.8, 512)
	for i := range s {
		if s[i] != again[i] {
			t.Fatalf("sine not reproducible at index %d", i)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(7, 0.5, 256)
	b := DeterministicNoise(7, 0.5, 256)
	c := DeterministicNoise(8, 0.5, 256)

	identical := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at index %d", i)
		}
		if math.Abs(a[i]) > 0.5 {
			t.Fatalf("a[%d] = %v exceeds amplitude", i, a[i])
		}
		if a[i] != c[i] {
			identical = false
		}
	}
	if identical {
		t.Error("different seeds produced identical noise")
	}
}

func TestImpulse(t *testing.T) {
	imp := Impulse(8, 3)
	for i, v := range imp {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Errorf("imp[%d] = %v, want %v", i, v, want)
		}
	}

	for _, v := range Impulse(4, 10) {
		if v != 0 {
			t.Fatal("out-of-range impulse position should yield silence")
		}
	}
}

func TestConstants(t *testing.T) {
	for i, v := range DC(-0.25, 5) {
		if v != -0.25 {
			t.Errorf("DC[%d] = %v, want -0.25", i, v)
		}
	}
	for i, v := range Ones(5) {
		if v != 1 {
			t.Errorf("Ones[%d] = %v, want 1", i, v)
		}
	}
}
