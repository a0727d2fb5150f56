// Package provider fetches pages of interest records from the remote
// autocomplete service.
package provider

import (
	"context"
	"errors"
	"fmt"

	"interestsearch/internal/domain"
)

// ErrMalformedResponse is returned when the provider answers with a body that
// lacks the record list or the remaining-pages count
var ErrMalformedResponse = errors.New("malformed response")

// Request identifies one page of a query
type Request struct {
	Query  string
	Offset int
	Limit  int
}

// Provider is the remote search service
type Provider interface {
	Fetch(ctx context.Context, req Request) (*domain.Page, error)
}

// Func adapts a function to the Provider interface
type Func func(ctx context.Context, req Request) (*domain.Page, error)

// Fetch calls f
func (f Func) Fetch(ctx context.Context, req Request) (*domain.Page, error) {
	return f(ctx, req)
}

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}
