package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"carosearch/internal/domain"
	"carosearch/internal/ui/views"
)

// RenderVehicleDetail lays out a vehicle for the pager
func RenderVehicleDetail(v *domain.Vehicle) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	priceStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	var b strings.Builder
	title := v.Title
	if title == "" {
		title = strings.TrimSpace(fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model))
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(priceStyle.Render(views.FormatPrice(v.Price)))
	b.WriteString("\n\n")

	row := func(key, value string) {
		if value == "" || value == "0" {
			return
		}
		fmt.Fprintf(&b, "  %s %s\n", keyStyle.Render(fmt.Sprintf("%-16s", key)), value)
	}

	row("Type", string(v.VehicleType))
	row("Make", v.Make)
	row("Model", v.Model)
	row("Variant", v.Variant)
	row("Year", fmt.Sprint(v.Year))
	if v.Mileage > 0 {
		row("Mileage", views.FormatMileage(v.Mileage))
	}
	row("Fuel", string(v.FuelType))
	row("Transmission", string(v.Transmission))
	row("Body", string(v.BodyType))
	row("Colour", v.Color)
	if v.EngineSize > 0 {
		row("Engine", fmt.Sprintf("%.1f L", v.EngineSize))
	}
	row("Doors", fmt.Sprint(v.Doors))
	row("Condition", string(v.Condition))
	row("Import", string(v.ImportStatus))
	row("Owners", fmt.Sprint(v.OwnershipHistory))
	row("Location", v.Location)

	b.WriteString(sectionStyle.Render("Seller"))
	b.WriteString("\n")
	row("Name", v.SellerName())
	row("Type", string(v.SellerType))
	if d := v.Dealer(); d != nil {
		row("Phone", d.Phone)
		row("Email", d.Email)
		row("Address", d.Address)
	} else if v.PostedBy != nil {
		row("Email", v.PostedBy.Email)
	}

	if v.Description != "" {
		b.WriteString(sectionStyle.Render("Description"))
		b.WriteString("\n")
		b.WriteString(v.Description)
		b.WriteString("\n")
	}

	if len(v.Images) > 0 {
		b.WriteString(sectionStyle.Render("Images"))
		b.WriteString("\n")
		for _, img := range v.Images {
			fmt.Fprintf(&b, "  %s\n", img.URL)
		}
	}

	return b.String()
}
