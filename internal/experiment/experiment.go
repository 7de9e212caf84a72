// Package experiment runs many examples through an engine and records every run.
package experiment

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/born-reasoner/born/example"
	"github.com/born-reasoner/born/internal/store"
	"github.com/born-reasoner/born/network"
	"github.com/born-reasoner/born/ontology"
	"github.com/born-reasoner/born/problog"
	"github.com/born-reasoner/born/translate"
)

// Processor evaluates an engine input. *problog.Processor is one.
type Processor interface {
	Process(ctx context.Context, input io.Reader) (string, error)
}

// Recorder saves runs. *store.Store is one.
type Recorder interface {
	Save(ctx context.Context, r store.Run) error
}

var (
	_ Processor = (*problog.Processor)(nil)
	_ Recorder  = (*store.Store)(nil)
)

// Runner runs examples.
type Runner struct {
	Translator *translate.Translator
	Processor  Processor

	// Recorder is optional.
	Recorder Recorder

	// Decode reads ontologies. The zero value means ontology.DecodeYAML.
	Decode func(io.Reader) (*ontology.Ontology, error)

	// FilterEL drops the axioms outside EL before the translation.
	FilterEL bool

	// Concurrency is the number of examples processed at once. The zero value means runtime.NumCPU().
	Concurrency int

	Logger *zap.Logger
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

// Run runs examples concurrently and returns the runs in the order of examples.
// A failing example is recorded with its error and doesn't stop the others.
func (r *Runner) Run(ctx context.Context, examples []example.Example) ([]store.Run, error) {
	n := r.Concurrency
	if n <= 0 {
		n = runtime.NumCPU()
	}

	runs := make([]store.Run, len(examples))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(n)
	for i, ex := range examples {
		i, ex := i, ex
		g.Go(func() error {
			run, err := r.RunExample(ctx, ex)
			if err != nil {
				return err
			}
			runs[i] = run
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

// RunExample runs ex and records the run. Errors about ex itself end up in the run.
// The returned error is about cancellation or recording.
func (r *Runner) RunExample(ctx context.Context, ex example.Example) (store.Run, error) {
	logger := r.logger().With(zap.String("example", ex.Name))

	run := store.Run{
		ID:      ulid.Make(),
		Example: ex.Name,
		Query:   ex.Query,
		Started: time.Now(),
	}
	out, err := r.process(ctx, logger, ex)
	run.Duration = time.Since(run.Started)
	if err != nil {
		if ctx.Err() != nil {
			return store.Run{}, ctx.Err()
		}
		logger.Warn("run failed", zap.Error(err))
		run.Err = err.Error()
	}
	run.Output = out
	logger.Info("run finished", zap.Stringer("run", run.ID), zap.Duration("elapsed", run.Duration))

	if r.Recorder != nil {
		if err := r.Recorder.Save(ctx, run); err != nil {
			return store.Run{}, err
		}
	}
	return run, nil
}

func (r *Runner) process(ctx context.Context, logger *zap.Logger, ex example.Example) (string, error) {
	decode := r.Decode
	if decode == nil {
		decode = ontology.DecodeYAML
	}
	o, err := decode(strings.NewReader(ex.Ontology))
	if err != nil {
		return "", fmt.Errorf("%s: %w", ex.OntologyFile, err)
	}
	if r.FilterEL {
		o = ontology.Filter(o, ontology.IsEL)
	}

	tr := r.Translator
	if tr == nil {
		tr = &translate.Translator{Logger: logger}
	}
	clauses, err := tr.Translate(o)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ex.OntologyFile, err)
	}

	vars, err := network.Variables(strings.NewReader(ex.Network))
	if err != nil {
		return "", fmt.Errorf("%s: %w", ex.NetworkFile, err)
	}
	logger.Debug("prepared input",
		zap.Int("clauses", len(clauses)),
		zap.Int("variables", len(vars)),
	)

	var input bytes.Buffer
	if err := problog.Assemble(&input, clauses, ex.Network, ex.Query); err != nil {
		return "", err
	}
	return r.Processor.Process(ctx, &input)
}
