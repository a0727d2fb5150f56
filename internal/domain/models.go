package domain

import "strconv"

// Interest represents a single interest record returned by the search provider
type Interest struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Match    float64 `json:"match"`
	Color    string  `json:"color"`
	Avatar   string  `json:"avatar"` // empty when the record has no avatar
	Existing bool    `json:"existing"`
}

// Key returns the rendering key for the record. The id alone is not unique
// across pages fetched for different queries, so the name is part of it.
func (i Interest) Key() string {
	return strconv.FormatInt(i.ID, 10) + i.Name
}

// HasAvatar reports whether the record carries an avatar reference
func (i Interest) HasAvatar() bool {
	return i.Avatar != ""
}

// Page is one batch of records as reported by the provider
type Page struct {
	Items     []Interest
	PagesLeft int
}

// SearchProgress summarises the session for status displays
type SearchProgress struct {
	Query     string
	Page      int
	PagesLeft int
	Count     int
	Busy      bool
}
