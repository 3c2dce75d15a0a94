package router

import (
	"strconv"
	"strings"
)

// Page routes
const (
	ListingPath = "/cars"
	vehicleBase = "/vehicle/"
	dealerBase  = "/dealer/"
)

// Page identifies the screen a location renders
type Page int

const (
	PageNotFound Page = iota
	PageListing
	PageVehicle
	PageDealer
)

func (p Page) String() string {
	switch p {
	case PageListing:
		return "listing"
	case PageVehicle:
		return "vehicle"
	case PageDealer:
		return "dealer"
	}
	return "not found"
}

// Route is a matched location
type Route struct {
	Page Page
	ID   int
}

// Match resolves a path to its page. "/" is the listing.
func Match(path string) Route {
	path = strings.TrimSuffix(path, "/")
	switch {
	case path == "" || path == ListingPath:
		return Route{Page: PageListing}
	case strings.HasPrefix(path, vehicleBase):
		if id, ok := parseID(strings.TrimPrefix(path, vehicleBase)); ok {
			return Route{Page: PageVehicle, ID: id}
		}
	case strings.HasPrefix(path, dealerBase):
		if id, ok := parseID(strings.TrimPrefix(path, dealerBase)); ok {
			return Route{Page: PageDealer, ID: id}
		}
	}
	return Route{Page: PageNotFound}
}

// VehiclePath is the detail page of a vehicle
func VehiclePath(id int) string {
	return vehicleBase + strconv.Itoa(id)
}

// DealerPath is the page of a dealer
func DealerPath(id int) string {
	return dealerBase + strconv.Itoa(id)
}

func parseID(s string) (int, bool) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
