// Package analysis routes tempo, key, and chord analyses to worker
// goroutines so interactive callers are not blocked, with a synchronous
// fallback carrying identical semantics.
//
// Requests carry an owned copy of the samples, never a reference into
// mutable composition state. Every dispatched request produces exactly one
// response; failures are delivered as an error response variant rather than
// a panic on the caller's goroutine.
package analysis

import (
	"fmt"

	"github.com/cwbudde/algo-loop/dsp/chord"
)

// Kind tags analysis requests and responses.
type Kind string

// Request and response kinds. KindError only appears in responses.
const (
	KindTempo  Kind = "tempo"
	KindKey    Kind = "key"
	KindChords Kind = "chords"
	KindError  Kind = "error"
)

// Request asks for one analysis of one PCM channel.
type Request struct {
	Kind       Kind
	Samples    []float64
	SampleRate float64
}

// Response carries the result of one Request. Exactly one of the result
// fields is meaningful, selected by Kind.
type Response struct {
	Kind Kind

	// BPM is set for KindTempo responses.
	BPM int
	// Key is set for KindKey responses, e.g. "A Minor".
	Key string
	// Chords is set for KindChords responses.
	Chords []chord.Event
	// Message is set for KindError responses.
	Message string
}

// Err returns the response's failure as an error, or nil for success
// responses.
func (r Response) Err() error {
	if r.Kind != KindError {
		return nil
	}
	return fmt.Errorf("analysis: %s", r.Message)
}

func errorResponse(format string, args ...any) Response {
	return Response{Kind: KindError, Message: fmt.Sprintf(format, args...)}
}
