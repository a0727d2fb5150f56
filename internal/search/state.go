package search

import (
	"interestsearch/internal/domain"
	"interestsearch/internal/provider"
)

// PagesUnknown marks a session whose first page has not landed yet
const PagesUnknown = -1

// State is the mutable state of one search session
type State struct {
	Query      string
	Page       int // index of the last requested page; reverted when that request fails
	PagesLeft  int // as last reported by the provider, PagesUnknown before the first page
	Items      []domain.Interest
	Generation uint64
}

// Ticket describes a fetch the controller wants executed. The caller runs it
// against the provider and hands the outcome back through Controller.Resolve.
type Ticket struct {
	ID         uint64
	Generation uint64
	Query      string
	Page       int
	PrevPage   int
	Offset     int
	Limit      int
}

// Request converts the ticket to a provider request
func (t Ticket) Request() provider.Request {
	return provider.Request{
		Query:  t.Query,
		Offset: t.Offset,
		Limit:  t.Limit,
	}
}

// Result is the outcome of an executed ticket
type Result struct {
	Ticket Ticket
	Page   *domain.Page
	Err    error
}
