// Package search implements the paginated search session: it decides which
// page to request next, merges provider responses into the accumulated result
// set and rejects responses that belong to a superseded query.
//
// The controller is not safe for concurrent use. It is meant to be driven from
// a single event loop; fetches run elsewhere and report back via Resolve.
package search

import (
	"errors"

	"github.com/sirupsen/logrus"

	"interestsearch/internal/domain"
	"interestsearch/internal/eventbus"
	"interestsearch/internal/logging"
)

// DefaultPageSize is used when Options.PageSize is not positive
const DefaultPageSize = 12

var errEmptyResponse = errors.New("provider returned no page")

// Options configures a Controller
type Options struct {
	PageSize int
	Bus      eventbus.EventBus // optional
	Logger   logrus.FieldLogger
}

// Controller owns the session state
type Controller struct {
	pageSize int
	state    State

	// inflight is the authoritative outstanding fetch; nil when idle. A
	// query change replaces it, leaving the old fetch to be dropped on arrival.
	inflight     *Ticket
	lastErr      error
	nextTicketID uint64

	bus eventbus.EventBus
	log logrus.FieldLogger
}

// New creates a controller with an empty, unstarted session
func New(opts Options) *Controller {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Controller{
		pageSize: pageSize,
		state:    State{PagesLeft: PagesUnknown},
		bus:      opts.Bus,
		log:      log.WithField("component", "search"),
	}
}

// Start opens the initial session with the empty query
func (c *Controller) Start() *Ticket {
	return c.QueryChanged("")
}

// QueryChanged starts a new session for query and returns its page-0 ticket.
// Fetches still outstanding for earlier queries are not waited for.
func (c *Controller) QueryChanged(query string) *Ticket {
	c.state = State{
		Query:      query,
		Page:       0,
		PagesLeft:  PagesUnknown,
		Generation: c.state.Generation + 1,
	}
	c.lastErr = nil

	c.log.WithFields(logrus.Fields{
		"query":      query,
		"generation": c.state.Generation,
	}).Debug("query changed")
	c.publish(eventbus.QueryChangedEvent{
		Query:      query,
		Generation: c.state.Generation,
	})

	return c.LoadPage(query, 0)
}

// ScrollExhausted requests the next page of the current session. It is a
// no-op while a fetch is outstanding or when the provider reported no pages
// left. If the session has no page yet, page 0 is retried.
func (c *Controller) ScrollExhausted() *Ticket {
	if c.Busy() {
		return nil
	}
	switch {
	case c.state.PagesLeft == PagesUnknown:
		return c.LoadPage(c.state.Query, 0)
	case c.state.PagesLeft <= 0:
		return nil
	}
	return c.LoadPage(c.state.Query, c.state.Page+1)
}

// LoadPage marks the session busy and returns the ticket for page of query.
// It returns nil when query is not the current query, when the session
// already has a fetch outstanding, or when page > 0 and no further pages are
// known to exist.
func (c *Controller) LoadPage(query string, page int) *Ticket {
	log := c.log.WithFields(logrus.Fields{
		"query":      query,
		"page":       page,
		"generation": c.state.Generation,
	})

	if query != c.state.Query || page < 0 {
		log.Debug("ignoring load for inactive query")
		return nil
	}
	if c.inflight != nil && c.inflight.Generation == c.state.Generation {
		log.Debug("fetch already in progress")
		return nil
	}
	if page > 0 && c.state.PagesLeft <= 0 {
		log.Debug("no pages left")
		return nil
	}

	c.nextTicketID++
	t := Ticket{
		ID:         c.nextTicketID,
		Generation: c.state.Generation,
		Query:      query,
		Page:       page,
		PrevPage:   c.state.Page,
		Offset:     page * c.pageSize,
		Limit:      c.pageSize,
	}
	c.inflight = &t
	c.state.Page = page

	log.WithField("offset", t.Offset).Debug("requesting page")
	c.publish(eventbus.PageRequestedEvent{
		Query:      query,
		Page:       page,
		Offset:     t.Offset,
		Limit:      t.Limit,
		Generation: t.Generation,
	})

	return &t
}

// Resolve merges the outcome of an executed ticket. Responses for superseded
// sessions are dropped. Failures leave the items untouched and restore the
// page index.
func (c *Controller) Resolve(res Result) {
	t := res.Ticket
	authoritative := c.inflight != nil && c.inflight.ID == t.ID

	log := c.log.WithFields(logrus.Fields{
		"query":      t.Query,
		"page":       t.Page,
		"generation": t.Generation,
	})

	if t.Generation != c.state.Generation {
		log.WithField("current_generation", c.state.Generation).Debug("dropping stale response")
		c.publish(eventbus.ResponseDroppedEvent{
			Query:             t.Query,
			Page:              t.Page,
			Generation:        t.Generation,
			CurrentGeneration: c.state.Generation,
		})
		if authoritative {
			c.inflight = nil
		}
		return
	}

	if !authoritative {
		log.Warn("dropping response for a request that is no longer outstanding")
		return
	}
	c.inflight = nil

	err := res.Err
	if err == nil && res.Page == nil {
		err = errEmptyResponse
	}
	if err != nil {
		c.state.Page = t.PrevPage
		c.lastErr = err
		log.WithError(err).Error("error fetching interests")
		c.publish(eventbus.FetchFailedEvent{
			Query:      t.Query,
			Page:       t.Page,
			Generation: t.Generation,
			Err:        err,
		})
		return
	}

	c.lastErr = nil
	if t.Page == 0 {
		c.state.Items = append([]domain.Interest(nil), res.Page.Items...)
	} else {
		c.state.Items = append(c.state.Items, res.Page.Items...)
	}
	c.state.PagesLeft = res.Page.PagesLeft

	log.WithFields(logrus.Fields{
		"received":   len(res.Page.Items),
		"total":      len(c.state.Items),
		"pages_left": c.state.PagesLeft,
	}).Debug("page merged")
	c.publish(eventbus.PageMergedEvent{
		Query:      t.Query,
		Page:       t.Page,
		Received:   len(res.Page.Items),
		Total:      len(c.state.Items),
		PagesLeft:  c.state.PagesLeft,
		Generation: t.Generation,
	})
}

// View returns the derived ordered view of the current session
func (c *Controller) View() []domain.Interest {
	return View(c.state.Query, c.state.Items)
}

// Busy reports whether a fetch is outstanding
func (c *Controller) Busy() bool {
	return c.inflight != nil
}

// Exhausted reports whether the provider said no pages are left
func (c *Controller) Exhausted() bool {
	return c.state.PagesLeft != PagesUnknown && c.state.PagesLeft <= 0
}

// LastError returns the error of the last failed fetch of this session, nil
// after a successful one
func (c *Controller) LastError() error {
	return c.lastErr
}

// Query returns the active query
func (c *Controller) Query() string {
	return c.state.Query
}

// PageSize returns the configured page size
func (c *Controller) PageSize() int {
	return c.pageSize
}

// State returns a copy of the session state
func (c *Controller) State() State {
	s := c.state
	s.Items = append([]domain.Interest(nil), c.state.Items...)
	return s
}

// Progress summarises the session for status displays
func (c *Controller) Progress() domain.SearchProgress {
	return domain.SearchProgress{
		Query:     c.state.Query,
		Page:      c.state.Page,
		PagesLeft: c.state.PagesLeft,
		Count:     len(c.state.Items),
		Busy:      c.Busy(),
	}
}

func (c *Controller) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
