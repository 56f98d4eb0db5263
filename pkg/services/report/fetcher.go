package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cosmo-clinic/billing-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// FetchErrorMessage is shown for any failed report request.
const FetchErrorMessage = "Error fetching data."

type Status string

const (
	StatusIdle  Status = "idle"
	StatusData  Status = "data"
	StatusEmpty Status = "empty"
	StatusError Status = "error"
)

// Request identifies one report read.
type Request struct {
	Kind     domain.ReportKind
	Interval domain.Granularity
	Date     string
}

// State is the observable outcome of the latest committed fetch.
type State struct {
	Request
	Generation uint64
	Status     Status
	Message    string
	Result
}

// Observer receives one call per completed fetch, stale ones included.
type Observer interface {
	ObserveFetch(kind string, status string, elapsed time.Duration)
}

// Fetcher owns the loading state of one report screen. Every Fetch is issued
// a generation number and only the most recent one may commit, so an older
// response that arrives late never overwrites a newer one.
type Fetcher struct {
	source   Source
	registry Registry
	observer Observer

	mu         sync.Mutex
	generation uint64
	state      State
}

type FetcherOption func(*Fetcher)

func WithObserver(o Observer) FetcherOption {
	return func(f *Fetcher) {
		f.observer = o
	}
}

func NewFetcher(source Source, registry Registry, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		source:   source,
		registry: registry,
		state:    State{Status: StatusIdle},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns a copy of the last committed state.
func (f *Fetcher) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Fetch performs a single read and returns the state visible afterwards. When
// a newer Fetch was issued in the meantime its state is returned instead. The
// error is reserved for requests that cannot be issued at all; network and
// decode failures surface as StatusError.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (State, error) {
	endpoint, err := f.registry.Lookup(req.Kind)
	if err != nil {
		return f.State(), err
	}
	if !endpoint.Supports(req.Interval) {
		return f.State(), fmt.Errorf("%w: %s does not support %q", domain.ErrInvalidInterval, req.Kind, req.Interval)
	}

	generation := f.issue()
	logger := zerolog.Ctx(ctx).With().
		Str("report", string(req.Kind)).
		Str("interval", string(req.Interval)).
		Str("date", req.Date).
		Uint64("generation", generation).
		Logger()

	start := time.Now()
	result, err := endpoint.Load(ctx, f.source, req.Interval, req.Date)
	elapsed := time.Since(start)

	next := State{Request: req, Generation: generation}
	switch {
	case err != nil:
		logger.Error().Err(err).Msg("failed to fetch report")
		next.Status = StatusError
		next.Message = FetchErrorMessage
	case result.Len() == 0:
		next.Status = StatusEmpty
	default:
		next.Status = StatusData
		next.Result = result
	}

	if f.observer != nil {
		f.observer.ObserveFetch(string(req.Kind), string(next.Status), elapsed)
	}

	state, committed := f.commit(next)
	if !committed {
		logger.Debug().Uint64("latest", state.Generation).Msg("dropping stale report response")
	}
	return state, nil
}

func (f *Fetcher) issue() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	return f.generation
}

func (f *Fetcher) commit(next State) (State, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if next.Generation != f.generation {
		return f.state, false
	}
	f.state = next
	return f.state, true
}
