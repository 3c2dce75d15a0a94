package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"carosearch/internal/domain"
)

// VehicleRenderer handles rendering of result rows
type VehicleRenderer struct {
	styles *Styles
}

// NewVehicleRenderer creates a new vehicle renderer
func NewVehicleRenderer(styles *Styles) *VehicleRenderer {
	return &VehicleRenderer{styles: styles}
}

// RenderVehicle renders one result row, at most width cells wide
func (r *VehicleRenderer) RenderVehicle(v domain.Vehicle, isSelected bool, width int) string {
	bgColor := ""
	if isSelected {
		bgColor = "238"
	}
	base := lipgloss.NewStyle().Background(lipgloss.Color(bgColor))

	title := v.Title
	if title == "" {
		title = strings.TrimSpace(fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model))
	}

	price := r.styles.Price.Background(lipgloss.Color(bgColor)).Render(FormatPrice(v.Price))
	seller := lipgloss.NewStyle().
		Foreground(lipgloss.Color(GetSellerColor(string(v.SellerType)))).
		Background(lipgloss.Color(bgColor)).
		Render(string(v.SellerType))

	details := []string{}
	if v.Year > 0 {
		details = append(details, fmt.Sprint(v.Year))
	}
	if v.Mileage > 0 {
		details = append(details, FormatMileage(v.Mileage))
	}
	if v.FuelType != "" {
		details = append(details, string(v.FuelType))
	}
	if v.Transmission != "" {
		details = append(details, string(v.Transmission))
	}
	if v.Location != "" {
		details = append(details, v.Location)
	}
	detailText := base.Foreground(lipgloss.Color("241")).Render(strings.Join(details, " · "))

	fixed := lipgloss.Width(price) + lipgloss.Width(seller) + 4
	titleWidth := width - fixed - lipgloss.Width(detailText)
	if titleWidth < 12 {
		titleWidth = 12
	}

	line := strings.Join([]string{
		base.Bold(isSelected).Render(Truncate(title, titleWidth)),
		base.Render("  "),
		price,
		base.Render(" "),
		seller,
		base.Render(" "),
		detailText,
	}, "")
	if width > 0 && lipgloss.Width(line) > width {
		return lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}
