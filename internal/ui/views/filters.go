package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FilterRow is one line of the filter panel
type FilterRow struct {
	Label   string
	Value   string
	Active  bool
	Warning bool // range bounds are out of order
}

// FilterRenderer handles rendering of the filter panel rows
type FilterRenderer struct {
	styles *Styles
}

// NewFilterRenderer creates a new filter renderer
func NewFilterRenderer(styles *Styles) *FilterRenderer {
	return &FilterRenderer{styles: styles}
}

// RenderFilterRow renders a label and its value, padded to width
func (f *FilterRenderer) RenderFilterRow(row FilterRow, isSelected bool, width int) string {
	bgColor := ""
	if isSelected {
		bgColor = "238"
	}
	base := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))

	marker := " "
	markerStyle := base
	switch {
	case row.Warning:
		marker = "!"
		markerStyle = f.styles.StatusWarning.Background(lipgloss.Color(bgColor))
	case row.Active:
		marker = "●"
		markerStyle = f.styles.Filter.Background(lipgloss.Color(bgColor))
	}

	value := row.Value
	valueStyle := base.Foreground(lipgloss.Color("241"))
	if row.Active {
		valueStyle = base.Foreground(lipgloss.Color("252"))
	}
	if value == "" {
		value = "any"
	}

	label := fmt.Sprintf("%-14s", Truncate(row.Label, 14))
	valueWidth := width - lipgloss.Width(label) - 3
	line := markerStyle.Render(marker) + base.Render(" ") +
		f.styles.Label.Background(lipgloss.Color(bgColor)).Render(label) + base.Render(" ") +
		valueStyle.Render(Truncate(value, valueWidth))

	if pad := width - lipgloss.Width(line); pad > 0 {
		line += base.Render(strings.Repeat(" ", pad))
	}
	return line
}
