package search

import (
	"context"

	"interestsearch/internal/domain"
	"interestsearch/internal/provider"
)

// Execute runs a ticket against the provider
func Execute(ctx context.Context, p provider.Provider, t Ticket) Result {
	page, err := p.Fetch(ctx, t.Request())
	return Result{Ticket: t, Page: page, Err: err}
}

// Runner drives a controller synchronously, one fetch at a time. It backs the
// headless query command.
type Runner struct {
	ctl      *Controller
	provider provider.Provider
}

// NewRunner creates a runner for ctl and p
func NewRunner(ctl *Controller, p provider.Provider) *Runner {
	return &Runner{ctl: ctl, provider: p}
}

// Run executes t, when non-nil, and returns the session error left behind
func (r *Runner) Run(ctx context.Context, t *Ticket) error {
	if t == nil {
		return r.ctl.LastError()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	r.ctl.Resolve(Execute(ctx, r.provider, *t))
	return r.ctl.LastError()
}

// Search loads up to pages pages of query and returns the derived view. A
// failure stops loading; the records merged so far are still returned.
func (r *Runner) Search(ctx context.Context, query string, pages int) ([]domain.Interest, error) {
	if err := r.Run(ctx, r.ctl.QueryChanged(query)); err != nil {
		return r.ctl.View(), err
	}
	for i := 1; i < pages; i++ {
		t := r.ctl.ScrollExhausted()
		if t == nil {
			break
		}
		if err := r.Run(ctx, t); err != nil {
			return r.ctl.View(), err
		}
	}
	return r.ctl.View(), nil
}
