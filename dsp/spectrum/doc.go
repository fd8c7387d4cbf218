// Package spectrum computes discrete Fourier magnitude spectra for
// fixed-size analysis frames.
//
// Frames are zero-padded to the next power of two and transformed with a
// cached radix-2 FFT plan. Only the non-negative-frequency half of the
// spectrum is reported, which is all downstream pitch-class analysis needs.
package spectrum
