//go:build e2e && unix

package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Backend is a fake autocomplete endpoint serving generated interests
type Backend struct {
	mu       sync.Mutex
	total    int
	failNext int
	queries  []string
	srv      *httptest.Server
}

// NewBackend starts a backend with total records per query
func NewBackend(t *testing.T, total int) *Backend {
	t.Helper()
	b := &Backend{total: total}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

// URL returns the endpoint to pass to the app
func (b *Backend) URL() string {
	return b.srv.URL + "/autocomplete/interests"
}

// FailNext makes the next n requests fail with 503
func (b *Backend) FailNext(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failNext = n
}

// Queries returns the q parameter of every request so far
func (b *Backend) Queries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	q := r.URL.Query()
	b.queries = append(b.queries, q.Get("q"))
	if b.failNext > 0 {
		b.failNext--
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}

	from, _ := strconv.Atoi(q.Get("from"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	prefix := q.Get("q")
	if prefix == "" {
		prefix = "interest"
	}

	var items []string
	for i := from; i < from+limit && i < b.total; i++ {
		avatar := "null"
		if i%2 == 0 {
			avatar = fmt.Sprintf(`"https://cdn.example.com/%d.png"`, i)
		}
		items = append(items, fmt.Sprintf(
			`{"id": %d, "name": "%s-%03d", "type": "hobby", "match": 0.75, "color": "#4caf50", "avatar": %s, "existing": %t}`,
			i, prefix, i, avatar, i%3 == 0))
	}
	left := 0
	if end := from + limit; end < b.total {
		left = (b.total - end + limit - 1) / limit
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"autocomplete": [%s], "pages_left": %d}`, strings.Join(items, ","), left)
}
