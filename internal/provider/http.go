package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"interestsearch/internal/domain"
	"interestsearch/internal/logging"
	"interestsearch/internal/version"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxErrorBody = 512

// Options configures an HTTPProvider
type Options struct {
	Endpoint  string
	AuthToken string // sent verbatim in the Authorization header; omitted when empty
	Timeout   time.Duration
	Client    *http.Client // overrides Timeout when set
	Logger    logrus.FieldLogger
}

// HTTPProvider queries the autocomplete endpoint over HTTP
type HTTPProvider struct {
	endpoint  *url.URL
	authToken string
	client    *http.Client
	log       logrus.FieldLogger
}

// autocompleteResponse mirrors the service payload. Pointers distinguish a
// missing field from an empty one.
type autocompleteResponse struct {
	Autocomplete *[]domain.Interest `json:"autocomplete"`
	PagesLeft    *int               `json:"pages_left"`
}

// NewHTTPProvider creates a provider for the given endpoint
func NewHTTPProvider(opts Options) (*HTTPProvider, error) {
	u, err := url.Parse(opts.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("endpoint must be an absolute URL: %q", opts.Endpoint)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	return &HTTPProvider{
		endpoint:  u,
		authToken: opts.AuthToken,
		client:    client,
		log:       log.WithField("component", "provider"),
	}, nil
}

// Fetch requests one page of records
func (p *HTTPProvider) Fetch(ctx context.Context, req Request) (*domain.Page, error) {
	requestID := uuid.NewString()
	us := p.buildURL(req)

	log := p.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"query":      req.Query,
		"offset":     req.Offset,
		"limit":      req.Limit,
	})
	log.Debug("fetching interests")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, us, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", version.UserAgent())
	httpReq.Header.Set("X-Request-Id", requestID)
	if p.authToken != "" {
		httpReq.Header.Set("Authorization", p.authToken)
	}

	start := time.Now()
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch interests: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("error closing body")
		}
	}()

	if resp.StatusCode/100 != 2 {
		buf, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if err != nil {
			log.WithError(err).Debug("error reading error body")
		}
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(buf))}
	}

	var body autocompleteResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if body.Autocomplete == nil {
		return nil, fmt.Errorf("%w: missing autocomplete", ErrMalformedResponse)
	}
	if body.PagesLeft == nil {
		return nil, fmt.Errorf("%w: missing pages_left", ErrMalformedResponse)
	}

	page := &domain.Page{
		Items:     *body.Autocomplete,
		PagesLeft: *body.PagesLeft,
	}
	log.WithFields(logrus.Fields{
		"received":   len(page.Items),
		"pages_left": page.PagesLeft,
		"elapsed":    time.Since(start),
	}).Debug("interests fetched")

	return page, nil
}

func (p *HTTPProvider) buildURL(req Request) string {
	u := *p.endpoint
	q := u.Query()
	q.Set("q", req.Query)
	q.Set("limit", strconv.Itoa(req.Limit))
	q.Set("from", strconv.Itoa(req.Offset))
	u.RawQuery = q.Encode()
	return u.String()
}
