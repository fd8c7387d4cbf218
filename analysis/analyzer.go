package analysis

import (
	"sync"

	"github.com/cwbudde/algo-loop/dsp/chord"
	"github.com/cwbudde/algo-loop/dsp/key"
	"github.com/cwbudde/algo-loop/dsp/tempo"
)

// Analyzer dispatches analysis requests to worker goroutines.
type Analyzer struct {
	cfg Config

	jobs      chan job
	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

type job struct {
	req Request
	out chan Response
}

// New creates an Analyzer and starts its workers.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		cfg:    ApplyOptions(opts...),
		jobs:   make(chan job),
		closed: make(chan struct{}),
	}

	for i := 0; i < a.cfg.Workers; i++ {
		a.wg.Add(1)
		go a.worker()
	}

	return a
}

// Dispatch hands a request to a worker and returns a channel that yields
// exactly one response. The request's samples are copied before dispatch,
// so the caller may keep mutating its composition. Responses to different
// in-flight requests arrive in no particular order. Once dispatched, a
// request runs to completion; there is no cancellation.
//
// When the workers are unavailable (the analyzer is closed), the analysis
// runs synchronously on the caller's goroutine with identical results.
func (a *Analyzer) Dispatch(req Request) <-chan Response {
	owned := req
	owned.Samples = append([]float64(nil), req.Samples...)

	out := make(chan Response, 1)

	a.cfg.Log.Debug().
		Str("kind", string(req.Kind)).
		Int("samples", len(owned.Samples)).
		Msg("analysis dispatched")

	select {
	case a.jobs <- job{req: owned, out: out}:
	case <-a.closed:
		a.cfg.Log.Warn().
			Str("kind", string(req.Kind)).
			Msg("workers unavailable, running analysis synchronously")
		out <- a.run(owned)
	}

	return out
}

// Analyze runs a request synchronously on the caller's goroutine. Output
// semantics are identical to Dispatch; only blocking behavior differs.
func (a *Analyzer) Analyze(req Request) Response {
	return a.run(req)
}

// Summary bundles the results of all three analysis kinds.
type Summary struct {
	BPM    int
	Key    string
	Chords []chord.Event
}

// AnalyzeAll dispatches every analysis kind for the same samples and
// collects the responses. The first failure is returned as an error.
func (a *Analyzer) AnalyzeAll(samples []float64, sampleRate float64) (Summary, error) {
	pending := []<-chan Response{
		a.Dispatch(Request{Kind: KindTempo, Samples: samples, SampleRate: sampleRate}),
		a.Dispatch(Request{Kind: KindKey, Samples: samples, SampleRate: sampleRate}),
		a.Dispatch(Request{Kind: KindChords, Samples: samples, SampleRate: sampleRate}),
	}

	var s Summary
	for _, ch := range pending {
		resp := <-ch
		if err := resp.Err(); err != nil {
			return Summary{}, err
		}
		switch resp.Kind {
		case KindTempo:
			s.BPM = resp.BPM
		case KindKey:
			s.Key = resp.Key
		case KindChords:
			s.Chords = resp.Chords
		}
	}
	return s, nil
}

// Close stops the workers. In-flight requests complete; subsequent
// Dispatch calls fall back to the synchronous path.
func (a *Analyzer) Close() {
	a.closeOnce.Do(func() { close(a.closed) })
	a.wg.Wait()
}

func (a *Analyzer) worker() {
	defer a.wg.Done()
	for {
		select {
		case j := <-a.jobs:
			j.out <- a.run(j.req)
		case <-a.closed:
			return
		}
	}
}

// run executes one analysis. Panics in the analysis code are converted to
// error responses so a worker can never crash the process.
func (a *Analyzer) run(req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			a.cfg.Log.Error().
				Str("kind", string(req.Kind)).
				Interface("panic", r).
				Msg("analysis panicked")
			resp = errorResponse("%s analysis panicked: %v", req.Kind, r)
		}
	}()

	if len(req.Samples) == 0 {
		return errorResponse("%s analysis requires samples", req.Kind)
	}
	if req.SampleRate <= 0 {
		return errorResponse("%s analysis requires a positive sample rate, got %g", req.Kind, req.SampleRate)
	}

	switch req.Kind {
	case KindTempo:
		return Response{
			Kind: KindTempo,
			BPM:  tempo.Estimate(req.Samples, req.SampleRate, a.cfg.Tempo...),
		}

	case KindKey:
		label, err := key.Estimate(req.Samples, req.SampleRate, a.cfg.Key...)
		if err != nil {
			return errorResponse("key analysis failed: %v", err)
		}
		return Response{Kind: KindKey, Key: label}

	case KindChords:
		events, err := chord.Segment(req.Samples, req.SampleRate, a.cfg.Chords...)
		if err != nil {
			return errorResponse("chord analysis failed: %v", err)
		}
		return Response{Kind: KindChords, Chords: events}

	default:
		return errorResponse("unknown analysis kind %q", req.Kind)
	}
}
