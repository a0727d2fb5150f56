package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"interestsearch/internal/domain"
	"interestsearch/internal/search"
)

const (
	avatarMarker   = "●"
	noAvatarMarker = "○"
)

// InterestRenderer handles rendering of a single interest row
type InterestRenderer struct {
	styles    *Styles
	showMatch bool
}

// NewInterestRenderer creates a new interest renderer
func NewInterestRenderer(styles *Styles, showMatch bool) *InterestRenderer {
	return &InterestRenderer{
		styles:    styles,
		showMatch: showMatch,
	}
}

// RenderInterest renders one row of the list
func (r *InterestRenderer) RenderInterest(item domain.Interest, isSelected bool, query string) string {
	bg := lipgloss.NewStyle()
	if isSelected {
		bg = r.styles.SelectionBg
	}

	cursor := "  "
	if isSelected {
		cursor = "> "
	}

	marker := r.styles.Dim.Render(noAvatarMarker)
	if item.HasAvatar() {
		marker = r.styles.Avatar.Render(avatarMarker)
	}

	nameStyle := lipgloss.NewStyle().Foreground(RecordColor(item.Color))
	if isSelected {
		nameStyle = nameStyle.Inherit(r.styles.SelectionBg)
	}
	name := r.renderName(item.Name, query, nameStyle)

	parts := []string{cursor, marker, " ", name}
	if item.Type != "" {
		parts = append(parts, " ", r.styles.Type.Render(item.Type))
	}
	if r.showMatch {
		parts = append(parts, " ", r.styles.Match.Render(fmt.Sprintf("%3.0f%%", item.Match*100)))
	}
	if item.Existing {
		parts = append(parts, " ", r.styles.Existing.Render("✓"))
	}

	return bg.Render(strings.Join(parts, ""))
}

// renderName emphasises the matched prefix of the name
func (r *InterestRenderer) renderName(name, query string, style lipgloss.Style) string {
	n := search.PrefixMatch(name, query)
	if n == 0 {
		return style.Render(name)
	}
	return style.Inherit(r.styles.Highlight).Render(name[:n]) + style.Render(name[n:])
}

// RenderDetails renders the full record for the pager
func (r *InterestRenderer) RenderDetails(item domain.Interest) string {
	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(RecordColor(item.Color))
	b.WriteString(title.Render(item.Name))
	b.WriteString("\n\n")

	avatar := item.Avatar
	if avatar == "" {
		avatar = "(none)"
	}
	rows := [][2]string{
		{"ID", fmt.Sprintf("%d", item.ID)},
		{"Name", item.Name},
		{"Type", item.Type},
		{"Match", fmt.Sprintf("%.2f", item.Match)},
		{"Colour", item.Color},
		{"Avatar", avatar},
		{"Existing", fmt.Sprintf("%t", item.Existing)},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			r.styles.DetailKey.Render(fmt.Sprintf("%-9s", row[0])),
			r.styles.DetailValue.Render(row[1])))
	}
	return b.String()
}
