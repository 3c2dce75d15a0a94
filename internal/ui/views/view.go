package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"carosearch/internal/domain"
)

// FilterPanelWidth is the width of the filter panel content
const FilterPanelWidth = 40

// ReservedRows is the number of window rows not available to the lists
const ReservedRows = 14

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Location       string
	ActiveCount    int
	OnDealerPage   bool
	Dealer         *domain.Dealer
	Filters        []FilterRow
	FilterCursor   int
	FilterOffset   int
	FiltersFocused bool
	Vehicles       []domain.Vehicle
	ResultCursor   int
	ResultOffset   int
	ViewportHeight int
	Pagination     *domain.Pagination
	SortMode       string
	Loading        bool
	Pending        bool // location write scheduled
	StatusMessage  string
	StatusIsError  bool
	Warnings       []string
	InputPrompt    string
	TextInput      string
	HelpModel      help.Model
	HelpKeys       help.KeyMap
}

// Renderer handles all view rendering
type Renderer struct {
	styles        *Styles
	vehicleRender *VehicleRenderer
	filterRender  *FilterRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:        styles,
		vehicleRender: NewVehicleRenderer(styles),
		filterRender:  NewFilterRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n\n")
	content.WriteString(r.styles.Location.Render("› " + state.Location))
	content.WriteString("\n")

	if state.InputPrompt != "" {
		content.WriteString(r.styles.Filter.Render(state.InputPrompt) + " " + state.TextInput)
		content.WriteString("\n")
	}

	if state.OnDealerPage {
		content.WriteString(r.renderDealerHeader(state.Dealer))
		content.WriteString(r.styles.FocusedPane.Render(r.renderVehicleList(state, state.Width-8)))
	} else {
		filterPane := r.styles.Pane
		resultPane := r.styles.FocusedPane
		if state.FiltersFocused {
			filterPane, resultPane = r.styles.FocusedPane, r.styles.Pane
		}
		resultWidth := state.Width - FilterPanelWidth - 12
		if resultWidth < 20 {
			resultWidth = 20
		}
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			filterPane.Render(r.renderFilterPanel(state)),
			" ",
			resultPane.Render(r.renderVehicleList(state, resultWidth)),
		))
	}
	content.WriteString("\n")

	for _, w := range state.Warnings {
		content.WriteString(r.styles.StatusWarning.Render("! " + w))
		content.WriteString("\n")
	}

	content.WriteString(r.renderStatusLine(state))

	helpText := r.styles.Help.Render("Press ? for help")
	if state.HelpKeys != nil {
		helpText = state.HelpModel.View(state.HelpKeys)
	}

	// Pad so the key help sits on the last line
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	content.WriteString("\n")
	content.WriteString(helpText)

	mainStyle := r.styles.Main.MaxHeight(state.Height)
	return mainStyle.Render(content.String())
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.MarginBottom(0).Render("carosearch")

	indicators := []string{}
	if state.Loading {
		spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		frame := int(time.Now().UnixMilli()/80) % len(spinner)
		indicators = append(indicators, fmt.Sprintf("%s Searching", spinner[frame]))
	}
	if state.Pending {
		indicators = append(indicators, "…")
	}
	indicators = append(indicators, "sort: "+state.SortMode)

	right := r.styles.Dim.Render(strings.Join(indicators, " | "))
	if state.ActiveCount > 0 {
		right += "  " + r.styles.Filter.Render(fmt.Sprintf("[%d active]", state.ActiveCount))
	}

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderFilterPanel(state ViewState) string {
	var lines []string
	height := state.ViewportHeight
	end := state.FilterOffset + height
	if end > len(state.Filters) {
		end = len(state.Filters)
	}
	if state.FilterOffset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.FilterOffset)))
	}
	for i := state.FilterOffset; i < end; i++ {
		selected := state.FiltersFocused && i == state.FilterCursor
		lines = append(lines, r.filterRender.RenderFilterRow(state.Filters[i], selected, FilterPanelWidth))
	}
	if end < len(state.Filters) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", len(state.Filters)-end)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderVehicleList(state ViewState, width int) string {
	if len(state.Vehicles) == 0 {
		if state.Loading {
			return r.styles.Dim.Width(width).Render("Searching...")
		}
		return r.styles.Dim.Width(width).Render("No vehicles match these filters.")
	}

	var lines []string
	end := state.ResultOffset + state.ViewportHeight
	if end > len(state.Vehicles) {
		end = len(state.Vehicles)
	}
	if state.ResultOffset > 0 {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", state.ResultOffset)))
	}
	for i := state.ResultOffset; i < end; i++ {
		selected := !state.FiltersFocused && i == state.ResultCursor
		lines = append(lines, r.vehicleRender.RenderVehicle(state.Vehicles[i], selected, width))
	}
	if end < len(state.Vehicles) {
		lines = append(lines, r.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", len(state.Vehicles)-end)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) renderDealerHeader(d *domain.Dealer) string {
	if d == nil {
		return r.styles.Dim.Render("Loading dealer...") + "\n"
	}
	name := d.BusinessName
	if d.Verified {
		name += " ✓"
	}
	parts := []string{}
	if d.City != "" {
		parts = append(parts, d.City)
	}
	if d.Phone != "" {
		parts = append(parts, d.Phone)
	}
	if d.ReviewsCount > 0 {
		parts = append(parts, fmt.Sprintf("★ %.1f (%d reviews)", d.Rating, d.ReviewsCount))
	}
	return r.styles.Highlight.Render(name) + "  " + r.styles.Dim.Render(strings.Join(parts, " · ")) + "\n"
}

func (r *Renderer) renderStatusLine(state ViewState) string {
	if state.StatusMessage != "" {
		if state.StatusIsError {
			return r.styles.Status.Render(r.styles.StatusError.Render(state.StatusMessage))
		}
		return r.styles.Status.Render(state.StatusMessage)
	}
	if p := state.Pagination; p != nil {
		return r.styles.Status.Render(fmt.Sprintf("%d vehicles · page %d of %d", p.Total, p.Page, max(p.Pages, 1)))
	}
	return r.styles.Status.Render(fmt.Sprintf("%d vehicles", len(state.Vehicles)))
}
