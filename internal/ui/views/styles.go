package views

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	Highlight     lipgloss.Style
	Type          lipgloss.Style
	Match         lipgloss.Style
	Existing      lipgloss.Style
	Avatar        lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusDone    lipgloss.Style
	SelectionBg   lipgloss.Style
	DetailKey     lipgloss.Style
	DetailValue   lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:           lipgloss.NewStyle().Faint(true),
		Status:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:          lipgloss.NewStyle().Faint(true),
		Main:          lipgloss.NewStyle().Padding(0, 1),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Highlight:     lipgloss.NewStyle().Bold(true).Underline(true),
		Type:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Match:         lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Existing:      lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Avatar:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		DetailKey:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		DetailValue:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// RecordColor returns the terminal colour for a record colour string.
// Anything that is not a hex colour renders in the default colour.
func RecordColor(c string) lipgloss.TerminalColor {
	if hexColor.MatchString(c) {
		return lipgloss.Color(c)
	}
	return lipgloss.NoColor{}
}
