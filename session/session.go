// Package session coordinates fitting and mesh evaluation.
//
// It provides two entry points: Compare, which fans one SampleSet out to
// all six classifier variants in parallel with per-variant failure
// isolation, and Session, which owns the current dataset and classifier
// configuration and re-runs fit+evaluate on every parameter change with
// debouncing and a latest-request-wins guarantee.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/classifier"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/core/model"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/dataset"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/mesh"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/metrics"
	boundErrors "github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/errors"
	"github.com/dishant2009/Decision-Boundaries-Understanding-How-Different-Classifiers-See-Your-Data/pkg/log"
)

// Result is the outcome of one fit+evaluate cycle for one variant. Either
// Grid is set or Err is; a failure in one variant never aborts the others.
type Result struct {
	Kind           model.Kind
	Grid           *mesh.Grid
	SupportVectors []dataset.Sample // kernel SVMs only, for display
	TrainAccuracy  float64
	Err            error
}

// supportVectorReporter is implemented by the kernel SVM variants.
type supportVectorReporter interface {
	SupportVectors() []dataset.Sample
}

// FitEvaluate runs one full cycle: build a fresh classifier, train it on
// the sample set, and sample its probabilities over r. It is a pure
// function of its inputs, so it is safe to run concurrently and to cancel
// by simply dropping the result.
func FitEvaluate(ctx context.Context, factory classifier.Factory, set *dataset.SampleSet, r mesh.Range) Result {
	return fitEvaluatePhased(ctx, factory, set, r, nil)
}

// fitEvaluatePhased is FitEvaluate with a hook between the fit and
// evaluate phases, used by Session to expose its state machine.
func fitEvaluatePhased(ctx context.Context, factory classifier.Factory, set *dataset.SampleSet, r mesh.Range, onEvaluating func()) Result {
	clf := factory()
	res := Result{Kind: clf.Kind()}

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	if set == nil || set.Len() == 0 {
		res.Err = boundErrors.NewModelError(string(clf.Kind())+".Fit", "no dataset", boundErrors.ErrEmptyData)
		return res
	}

	X, y := set.Matrices()
	if err := clf.Fit(X, y); err != nil {
		res.Err = err
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	if pred, err := clf.Predict(X); err == nil {
		if acc, err := metrics.Accuracy(y, pred); err == nil {
			res.TrainAccuracy = acc
		}
	}
	if svr, ok := clf.(supportVectorReporter); ok {
		res.SupportVectors = svr.SupportVectors()
	}

	if onEvaluating != nil {
		onEvaluating()
	}
	grid, err := mesh.Evaluate(clf, r)
	if err != nil {
		res.Err = err
		return res
	}
	res.Grid = grid
	return res
}

// Compare fans set out to every factory in parallel and collects one
// Result per kind. Failures are captured in the result slot of the variant
// that produced them.
func Compare(ctx context.Context, set *dataset.SampleSet, r mesh.Range, factories map[model.Kind]classifier.Factory) map[model.Kind]Result {
	logger := log.GetLoggerWithName("session")
	start := time.Now()

	var mu sync.Mutex
	var wg sync.WaitGroup
	results := make(map[model.Kind]Result, len(factories))

	for kind, factory := range factories {
		wg.Add(1)
		go func(kind model.Kind, factory classifier.Factory) {
			defer wg.Done()
			res := FitEvaluate(ctx, factory, set, r)
			mu.Lock()
			results[kind] = res
			mu.Unlock()
		}(kind, factory)
	}
	wg.Wait()

	failures := 0
	for _, res := range results {
		if res.Err != nil {
			failures++
		}
	}
	logger.Info("Comparison completed",
		log.OperationKey, log.OperationEvaluate,
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.ClassifierKey, len(results),
		"failures", failures,
	)
	return results
}

// State is the session's position in its lifecycle.
type State string

const (
	StateIdle              State = "idle"
	StateParametersChanged State = "parameters_changed"
	StateFitting           State = "fitting"
	StateEvaluating        State = "evaluating"
	StateRendered          State = "rendered"
)

// Outcome is delivered on the session's result channel. Generation
// identifies the request that produced it; only the latest generation is
// ever delivered.
type Outcome struct {
	Generation uint64
	Result     Result
}

// Session owns the current dataset, the active classifier factory, and the
// evaluation range, and re-runs fit+evaluate when they change. A new
// request cancels any in-flight one; stale results are dropped rather than
// surfaced. On failure the last-known-good result is retained.
type Session struct {
	mu      sync.Mutex
	logger  log.Logger
	factory classifier.Factory
	kind    model.Kind
	set     *dataset.SampleSet
	rng     mesh.Range

	state      State
	generation uint64
	cancel     context.CancelFunc
	results    chan Outcome
	lastGood   *Result
}

// NewSession creates an idle session with the default evaluation range and
// the default linear classifier.
func NewSession() *Session {
	factories := classifier.DefaultFactories()
	return &Session{
		logger:  log.GetLoggerWithName("session"),
		factory: factories[model.KindLinear],
		kind:    model.KindLinear,
		rng:     mesh.DefaultRange(),
		state:   StateIdle,
		results: make(chan Outcome, 1),
	}
}

// Results returns the channel on which latest-generation outcomes are
// delivered. The channel holds at most one outcome; a newer result
// replaces an unconsumed older one.
func (s *Session) Results() <-chan Outcome { return s.results }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastGood returns the most recent successful result, if any.
func (s *Session) LastGood() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastGood
}

// UseDataset replaces the dataset. The previous set is discarded wholesale;
// per the container contract it was never mutated.
func (s *Session) UseDataset(set *dataset.SampleSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = set
	s.state = StateParametersChanged
}

// UseClassifier replaces the active classifier factory.
func (s *Session) UseClassifier(kind model.Kind, factory classifier.Factory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kind = kind
	s.factory = factory
	s.state = StateParametersChanged
}

// UseRange replaces the evaluation window.
func (s *Session) UseRange(r mesh.Range) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = r
	s.state = StateParametersChanged
}

// Submit starts a fit+evaluate cycle for the current configuration. Any
// in-flight cycle is cancelled first, so two rapid parameter changes never
// compound: only the newest request's result reaches the channel.
func (s *Session) Submit(ctx context.Context) uint64 {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.generation++
	gen := s.generation
	factory := s.factory
	set := s.set
	r := s.rng
	kind := s.kind
	s.state = StateFitting
	s.mu.Unlock()

	s.logger.Debug("Cycle submitted",
		log.GenerationKey, int64(gen),
		log.ClassifierKey, string(kind),
	)

	go s.run(runCtx, gen, factory, set, r)
	return gen
}

func (s *Session) run(ctx context.Context, gen uint64, factory classifier.Factory, set *dataset.SampleSet, r mesh.Range) {
	res := fitEvaluatePhased(ctx, factory, set, r, func() {
		s.mu.Lock()
		if gen == s.generation {
			s.state = StateEvaluating
		}
		s.mu.Unlock()
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// A newer request superseded this one; drop the stale result.
		return
	}
	if res.Err == nil {
		cp := res
		s.lastGood = &cp
		s.state = StateRendered
	} else {
		// Keep the last-known-good grid; the failure is reported, never
		// swallowed.
		s.state = StateParametersChanged
		s.logger.Error("Cycle failed",
			log.GenerationKey, int64(gen),
			log.ClassifierKey, string(res.Kind),
			"error", res.Err,
		)
	}

	// Latest wins on the channel too: displace any unconsumed outcome.
	select {
	case <-s.results:
	default:
	}
	s.results <- Outcome{Generation: gen, Result: res}
}

// Close cancels any in-flight cycle.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = StateIdle
}
