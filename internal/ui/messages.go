package ui

import (
	"interestsearch/internal/search"
)

// pageLoadedMsg carries the outcome of a fetch back to the event loop
type pageLoadedMsg struct {
	result search.Result
}

// debounceMsg fires after the debounce delay; only the latest tag counts
type debounceMsg struct {
	tag   int
	query string
}

// pagerClosedMsg is sent when the pager returns control
type pagerClosedMsg struct {
	err error
}
