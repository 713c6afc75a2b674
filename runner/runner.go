// Package runner translates batches of Cypher queries and reports progress
// through handlers.
package runner

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rlch/graphil/translate"
)

// ErrNoTranslator is returned when a Runner has no translator.
var ErrNoTranslator = errors.New("runner: no translator")

// Translator translates one query. *translate.Translator implements it.
type Translator interface {
	Translate(query string) translate.Translation
}

var _ Translator = (*translate.Translator)(nil)

// Runner translates batches of queries concurrently.
type Runner struct {
	translator  Translator
	handler     Handler
	maxFailures int
	filter      *Filter
	jobs        int
	logger      *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithTranslator sets the translator.
func WithTranslator(t Translator) Option {
	return func(r *Runner) {
		r.translator = t
	}
}

// WithHandler sets the event handler.
func WithHandler(h Handler) Option {
	return func(r *Runner) {
		r.handler = h
	}
}

// WithMaxFailures stops the run after n untranslated queries. Zero disables it.
func WithMaxFailures(n int) Option {
	return func(r *Runner) {
		r.maxFailures = n
	}
}

// WithFilter sets the filter selecting which queries are translated. The
// others are reported as skipped.
func WithFilter(f *Filter) Option {
	return func(r *Runner) {
		r.filter = f
	}
}

// WithJobs sets how many queries are translated at once.
func WithJobs(n int) Option {
	return func(r *Runner) {
		r.jobs = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a Runner with the given options.
func New(opts ...Option) *Runner {
	r := &Runner{
		jobs:   1,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.jobs = max(r.jobs, 1)

	return r
}

// RunFile loads the queries in path and runs them.
func (r *Runner) RunFile(ctx context.Context, path string) (*Result, error) {
	queries, err := LoadQueries(path)
	if err != nil {
		return nil, err
	}

	return r.Run(ctx, path, queries)
}

// Run translates queries and returns the results. Each query is independent:
// a query that cannot be translated is reported, never returned as an error.
// Reaching the failure limit ends the run early without an error.
func (r *Runner) Run(ctx context.Context, source string, queries []string) (*Result, error) {
	if r.translator == nil {
		return nil, ErrNoTranslator
	}

	result := NewResult()

	handlers := []Handler{NewResultHandler()}
	if r.handler != nil {
		handlers = append(handlers, r.handler)
	}

	if r.maxFailures > 0 {
		handlers = append(handlers, NewStopOnFailHandler(r.maxFailures))
	}

	d := &dispatcher{handler: NewMultiHandler(handlers...), result: result}

	r.logger.Debug("Run",
		zap.String("source", source),
		zap.Int("queries", len(queries)),
		zap.Int("jobs", r.jobs),
		zap.Stringer("filter", r.filter),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)

	var stopped error

	for i, query := range queries {
		if gctx.Err() != nil {
			break
		}

		base := Event{Source: source, Index: i, Cypher: query}

		keep, err := r.filter.Match(NewQueryEnv(source, i, query))
		if err != nil {
			base.Action, base.Error = ActionError, err
		} else if !keep {
			base.Action = ActionSkip
		}

		if base.Action != "" {
			if stopped = d.emit(gctx, base); stopped != nil {
				break
			}

			continue
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			run := base
			run.Action = ActionRun

			if err := d.emit(gctx, run); err != nil {
				return err
			}

			return d.emit(gctx, r.translate(base))
		})
	}

	err := errors.Join(g.Wait(), stopped)

	result.Finish()

	r.logger.Debug("Finished",
		zap.String("source", source),
		zap.Int("total", result.Total),
		zap.Int("translated", result.Translated),
		zap.Duration("elapsed", result.Elapsed()),
	)

	switch {
	case errors.Is(err, ErrMaxFailures):
		return result, nil
	case err != nil:
		return result, err
	default:
		return result, ctx.Err()
	}
}

func (r *Runner) translate(base Event) Event {
	start := time.Now()
	tr := r.translator.Translate(base.Cypher)

	event := base
	event.Elapsed = time.Since(start)
	event.GQL = tr.GQL
	event.Category = tr.Category
	event.Error = tr.Err

	if tr.Translated() {
		event.Action = ActionPass
	} else {
		event.Action = ActionFail
	}

	return event
}

// dispatcher serialises handler calls.
type dispatcher struct {
	mu      sync.Mutex
	handler Handler
	result  *Result
}

func (d *dispatcher) emit(ctx context.Context, event Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	event.Time = time.Now()

	return d.handler.Event(ctx, event, d.result)
}
