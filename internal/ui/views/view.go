package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"interestsearch/internal/domain"
	"interestsearch/internal/search"
)

// ChromeLines is the number of lines the layout uses besides the list:
// title, load-more edge, input, status and key help.
const ChromeLines = 5

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width      int
	Height     int
	Items      []domain.Interest // derived view, in display order
	Cursor     int
	Offset     int
	ListHeight int
	Inverted   bool
	Query      string
	Input      string // rendered text input
	Spinner    string // rendered spinner frame
	Progress   domain.SearchProgress
	Failed     bool
	Exhausted  bool
	Help       string // rendered key help
}

// Renderer handles all view rendering
type Renderer struct {
	styles   *Styles
	interest *InterestRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(showMatch bool) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:   styles,
		interest: NewInterestRenderer(styles, showMatch),
	}
}

// Styles returns the renderer styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Details renders a record for the pager
func (r *Renderer) Details(item domain.Interest) string {
	return r.interest.RenderDetails(item)
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	var lines []string

	lines = append(lines, r.renderTitle(state))
	list := r.renderList(state)
	edge := r.renderEdge(state)

	if state.Inverted {
		lines = append(lines, edge)
		lines = append(lines, list...)
		lines = append(lines, state.Input)
	} else {
		lines = append(lines, state.Input)
		lines = append(lines, list...)
		lines = append(lines, edge)
	}

	lines = append(lines, r.StatusLine(state))
	lines = append(lines, r.styles.Help.Render(state.Help))

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("interestsearch")
	if state.Query == "" {
		return logo
	}

	right := r.styles.Dim.Render(fmt.Sprintf("[%s]", state.Query))
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 2 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

// renderList returns exactly ListHeight lines. In inverted mode the first
// record sits at the bottom, next to the input.
func (r *Renderer) renderList(state ViewState) []string {
	height := state.ListHeight
	if height < 1 {
		height = 1
	}

	var rows []string
	if len(state.Items) == 0 {
		switch {
		case state.Progress.Busy:
			rows = append(rows, r.styles.Dim.Render("Searching..."))
		case state.Failed:
			rows = append(rows, r.styles.StatusError.Render("Could not load interests"))
		default:
			rows = append(rows, r.styles.Dim.Render("No interests found"))
		}
	} else {
		start := state.Offset
		if start < 0 {
			start = 0
		}
		end := start + height
		if end > len(state.Items) {
			end = len(state.Items)
		}
		for i := start; i < end; i++ {
			rows = append(rows, r.interest.RenderInterest(state.Items[i], i == state.Cursor, state.Query))
		}
	}

	pad := make([]string, 0, height)
	for len(pad)+len(rows) < height {
		pad = append(pad, "")
	}

	if state.Inverted {
		reversed := make([]string, 0, height)
		reversed = append(reversed, pad...)
		for i := len(rows) - 1; i >= 0; i-- {
			reversed = append(reversed, rows[i])
		}
		return reversed
	}
	return append(rows, pad...)
}

// renderEdge renders the load-more edge of the list
func (r *Renderer) renderEdge(state ViewState) string {
	if state.Progress.Busy && len(state.Items) > 0 {
		return r.styles.StatusLoading.Render(state.Spinner + " loading more")
	}
	more := len(state.Items) - (state.Offset + state.ListHeight)
	if more > 0 {
		arrow := "↓"
		if state.Inverted {
			arrow = "↑"
		}
		return r.styles.Scroll.Render(fmt.Sprintf("%s %d more", arrow, more))
	}
	return ""
}

// StatusLine renders the session summary
func (r *Renderer) StatusLine(state ViewState) string {
	p := state.Progress
	left := "?"
	if p.PagesLeft != search.PagesUnknown {
		left = strconv.Itoa(p.PagesLeft)
	}
	status := r.styles.Status.Render(fmt.Sprintf("%d interests · page %d · %s pages left", p.Count, p.Page+1, left))

	switch {
	case p.Busy:
		status += " " + r.styles.StatusLoading.Render(state.Spinner)
	case state.Failed:
		status += " " + r.styles.StatusError.Render("load failed, scroll to retry")
	case state.Exhausted:
		status += " " + r.styles.StatusDone.Render("no more results")
	}
	return status
}
