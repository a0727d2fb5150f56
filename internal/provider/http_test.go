package provider

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interestsearch/internal/domain"
	"interestsearch/internal/logging"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc, token string) *HTTPProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewHTTPProvider(Options{
		Endpoint:  srv.URL + "/autocomplete/interests",
		AuthToken: token,
		Timeout:   2 * time.Second,
	})
	require.NoError(t, err)
	return p
}

func TestFetchSendsQueryAndHeaders(t *testing.T) {
	requests := make(chan *http.Request, 1)
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		requests <- r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"autocomplete": [
				{"id": 7, "name": "Tennis", "type": "sport", "match": 0.9, "color": "#ff0000", "avatar": "https://cdn/t.png", "existing": true},
				{"id": 8, "name": "Tea", "type": "food", "match": 0.5, "color": "#00ff00", "avatar": null, "existing": false}
			],
			"pages_left": 3
		}`))
	}, "Bearer abc")

	page, err := p.Fetch(context.Background(), Request{Query: "te a&b", Offset: 24, Limit: 12})
	require.NoError(t, err)

	got := <-requests
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/autocomplete/interests", got.URL.Path)
	assert.Equal(t, "te a&b", got.URL.Query().Get("q"))
	assert.Equal(t, "12", got.URL.Query().Get("limit"))
	assert.Equal(t, "24", got.URL.Query().Get("from"))
	assert.Equal(t, "Bearer abc", got.Header.Get("Authorization"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Contains(t, got.Header.Get("User-Agent"), "interestsearch/")
	assert.NotEmpty(t, got.Header.Get("X-Request-Id"))

	require.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.PagesLeft)
	assert.Equal(t, int64(7), page.Items[0].ID)
	assert.Equal(t, "Tennis", page.Items[0].Name)
	assert.Equal(t, "sport", page.Items[0].Type)
	assert.InDelta(t, 0.9, page.Items[0].Match, 1e-9)
	assert.Equal(t, "#ff0000", page.Items[0].Color)
	assert.True(t, page.Items[0].HasAvatar())
	assert.True(t, page.Items[0].Existing)
	assert.False(t, page.Items[1].HasAvatar())
}

func TestFetchOmitsEmptyAuthorization(t *testing.T) {
	headers := make(chan []string, 1)
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Values("Authorization")
		_, _ = w.Write([]byte(`{"autocomplete": [], "pages_left": 0}`))
	}, "")

	page, err := p.Fetch(context.Background(), Request{Limit: 12})
	require.NoError(t, err)
	assert.Empty(t, <-headers)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.PagesLeft)
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		malformed bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: ""},
		{name: "invalid json", status: http.StatusOK, body: `{"autocomplete": [`},
		{name: "missing pages_left", status: http.StatusOK, body: `{"autocomplete": []}`, malformed: true},
		{name: "missing autocomplete", status: http.StatusOK, body: `{"pages_left": 2}`, malformed: true},
		{name: "null autocomplete", status: http.StatusOK, body: `{"autocomplete": null, "pages_left": 2}`, malformed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}, "")

			page, err := p.Fetch(context.Background(), Request{Query: "x", Limit: 12})
			require.Error(t, err)
			assert.Nil(t, page)

			if tt.status != http.StatusOK {
				var se *StatusError
				require.True(t, errors.As(err, &se), "expected StatusError, got %v", err)
				assert.Equal(t, tt.status, se.Code)
				assert.Equal(t, tt.body, se.Body)
			}
			assert.Equal(t, tt.malformed, errors.Is(err, ErrMalformedResponse))
		})
	}
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	p, err := NewHTTPProvider(Options{Endpoint: endpoint, Timeout: time.Second})
	require.NoError(t, err)

	_, err = p.Fetch(context.Background(), Request{Limit: 12})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch interests")
}

func TestFetchHonoursContext(t *testing.T) {
	release := make(chan struct{})
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, "")
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Fetch(ctx, Request{Limit: 12})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestNewHTTPProviderRejectsRelativeEndpoint(t *testing.T) {
	_, err := NewHTTPProvider(Options{Endpoint: "/autocomplete"})
	require.Error(t, err)
}

func TestBuildURLKeepsExistingParams(t *testing.T) {
	p, err := NewHTTPProvider(Options{Endpoint: "https://example.com/search?lang=en"})
	require.NoError(t, err)

	us := p.buildURL(Request{Query: "go", Offset: 12, Limit: 12})
	assert.Equal(t, "https://example.com/search?from=12&lang=en&limit=12&q=go", us)
}

func TestFuncAdapter(t *testing.T) {
	var seen Request
	var p Provider = Func(func(ctx context.Context, req Request) (*domain.Page, error) {
		seen = req
		return &domain.Page{PagesLeft: 1}, nil
	})

	page, err := p.Fetch(context.Background(), Request{Query: "q", Offset: 0, Limit: 12})
	require.NoError(t, err)
	assert.Equal(t, "q", seen.Query)
	assert.Equal(t, 1, page.PagesLeft)
}

func TestFetchLogsTruncatedErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		defer conn.Close()
		_, _ = buf.WriteString("HTTP/1.1 502 Bad Gateway\r\nContent-Length: 100\r\n\r\npartial")
		_ = buf.Flush()
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	p, err := NewHTTPProvider(Options{
		Endpoint: srv.URL,
		Timeout:  2 * time.Second,
		Logger:   logging.New(&out, true),
	})
	require.NoError(t, err)

	_, err = p.Fetch(context.Background(), Request{Query: "x", Limit: 12})
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
	assert.Equal(t, "partial", statusErr.Body)
	assert.Contains(t, out.String(), "error reading error body")
}

func TestNilLoggerDiscards(t *testing.T) {
	p, err := NewHTTPProvider(Options{Endpoint: "http://localhost/autocomplete"})
	require.NoError(t, err)
	entry, ok := p.log.(*logrus.Entry)
	require.True(t, ok)
	assert.Equal(t, "provider", entry.Data["component"])
	assert.Equal(t, io.Discard, entry.Logger.Out)
}
