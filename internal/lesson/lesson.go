// Package lesson runs the fixed sequence of SQL demonstrations against the
// seeded school database.
package lesson

import (
	"context"
	"fmt"

	"github.com/nsqlite/schooldb/internal/log"
	"github.com/nsqlite/schooldb/internal/render"
	"github.com/nsqlite/schooldb/internal/store"
)

// Runner executes the lesson steps and hands every result to a renderer.
type Runner struct {
	store    *store.Store
	renderer render.Renderer
	logger   log.Logger
}

// NewRunner creates a Runner.
func NewRunner(st *store.Store, renderer render.Renderer, logger log.Logger) *Runner {
	return &Runner{
		store:    st,
		renderer: renderer,
		logger:   logger,
	}
}

// Run executes the queries, then the mutations, then the aggregates. It
// stops at the first failing step.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.RunReads(ctx, Queries()); err != nil {
		return err
	}
	if err := r.RunWrites(ctx, Mutations()); err != nil {
		return err
	}
	return r.RunReads(ctx, Aggregates())
}

// RunReads executes read steps and renders their rows.
func (r *Runner) RunReads(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		r.logger.DebugNs("lesson", "running step", log.KV{
			"step": step.Name,
			"kind": store.KindRead.Value,
		})

		res, err := r.store.Query(ctx, step.Query)
		if err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}
		if err := r.renderer.Rows(step.Banner, res, step.Layout); err != nil {
			return fmt.Errorf("failed to render step %q: %w", step.Name, err)
		}
	}
	return nil
}

// RunWrites executes write steps.
func (r *Runner) RunWrites(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		res, err := r.store.Exec(ctx, step.Query)
		if err != nil {
			return fmt.Errorf("step %q: %w", step.Name, err)
		}

		r.logger.DebugNs("lesson", "step executed", log.KV{
			"step":         step.Name,
			"kind":         store.KindWrite.Value,
			"rowsAffected": res.RowsAffected,
		})
		if err := r.renderer.Written(step.Name, res); err != nil {
			return fmt.Errorf("failed to render step %q: %w", step.Name, err)
		}
	}
	return nil
}
