package views

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders a price in rupees with thousands separators
func FormatPrice(price float64) string {
	if price <= 0 {
		return "Negotiable"
	}
	return printer.Sprintf("Rs %d", int64(math.Round(price)))
}

// FormatMileage renders a mileage in kilometres
func FormatMileage(km float64) string {
	return printer.Sprintf("%d km", int64(math.Round(km)))
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
