package domain

import (
	"golang.org/x/text/cases"
)

// VehicleType is the top-level category of a listing
type VehicleType string

const (
	VehicleTypeCar          VehicleType = "Car"
	VehicleTypeVan          VehicleType = "Van"
	VehicleTypeMotorbike    VehicleType = "Motor Bike"
	VehicleTypeThreeWheeler VehicleType = "Three Wheeler"
	VehicleTypeTruck        VehicleType = "Truck"
	VehicleTypeFarm         VehicleType = "Farm"
	VehicleTypePlant        VehicleType = "Plant"
	VehicleTypeElectricBike VehicleType = "Electric Bike"
	VehicleTypeOther        VehicleType = "Other"

	// VehicleTypeAll is the "no preference" sentinel used by the type selector
	VehicleTypeAll VehicleType = "all"
)

// FuelType of a vehicle
type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

// TransmissionType of a vehicle
type TransmissionType string

const (
	TransmissionManual    TransmissionType = "Manual"
	TransmissionAutomatic TransmissionType = "Automatic"
)

// BodyType of a vehicle
type BodyType string

const (
	BodySedan       BodyType = "Sedan"
	BodyHatchback   BodyType = "Hatchback"
	BodySUV         BodyType = "SUV"
	BodyCoupe       BodyType = "Coupe"
	BodyConvertible BodyType = "Convertible"
	BodyWagon       BodyType = "Wagon"
	BodyVan         BodyType = "Van"
	BodyPickup      BodyType = "Pickup"
	BodyCrossover   BodyType = "Crossover"
	BodyMinivan     BodyType = "Minivan"
	BodyTruck       BodyType = "Truck"
	BodyOther       BodyType = "Other"
)

// SellerType tells dealers and private sellers apart
type SellerType string

const (
	SellerDealer  SellerType = "Dealer"
	SellerPrivate SellerType = "Private"
)

// ImportStatus of a vehicle
type ImportStatus string

const (
	ImportUsed          ImportStatus = "Used Import"
	ImportNew           ImportStatus = "New Import"
	ImportReconditioned ImportStatus = "Reconditioned"
)

// VehicleCondition of a vehicle
type VehicleCondition string

const (
	ConditionUsed VehicleCondition = "Used"
	ConditionNew  VehicleCondition = "New"
)

// Option lists in display order. VehicleTypeAll is deliberately not listed.
var (
	VehicleTypes = []VehicleType{
		VehicleTypeCar, VehicleTypeVan, VehicleTypeMotorbike, VehicleTypeThreeWheeler,
		VehicleTypeTruck, VehicleTypeFarm, VehicleTypePlant, VehicleTypeElectricBike, VehicleTypeOther,
	}
	FuelTypes         = []FuelType{FuelPetrol, FuelDiesel, FuelElectric, FuelHybrid}
	TransmissionTypes = []TransmissionType{TransmissionManual, TransmissionAutomatic}
	BodyTypes         = []BodyType{
		BodySedan, BodyHatchback, BodySUV, BodyCoupe, BodyConvertible, BodyWagon,
		BodyVan, BodyPickup, BodyCrossover, BodyMinivan, BodyTruck, BodyOther,
	}
	SellerTypes       = []SellerType{SellerDealer, SellerPrivate}
	ImportStatuses    = []ImportStatus{ImportUsed, ImportNew, ImportReconditioned}
	VehicleConditions = []VehicleCondition{ConditionUsed, ConditionNew}
)

// ParseLabel matches s against the given option labels ignoring case.
// The bool is false when no option matches.
func ParseLabel[T ~string](s string, options []T) (T, bool) {
	fold := cases.Fold()
	want := fold.String(s)
	for _, opt := range options {
		if fold.String(string(opt)) == want {
			return opt, true
		}
	}
	var zero T
	return zero, false
}

// ParseVehicleType also accepts the "all" sentinel
func ParseVehicleType(s string) (VehicleType, bool) {
	return ParseLabel(s, append([]VehicleType{VehicleTypeAll}, VehicleTypes...))
}

// VehicleImage is an uploaded listing image
type VehicleImage struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// Vehicle is a listing as returned by the marketplace API
type Vehicle struct {
	ID               int              `json:"id"`
	VehicleType      VehicleType      `json:"vehicle_type"`
	Title            string           `json:"title"`
	Make             string           `json:"make"`
	Model            string           `json:"model"`
	Variant          string           `json:"variant,omitempty"`
	Year             int              `json:"year"`
	Price            float64          `json:"price"`
	Mileage          float64          `json:"mileage"`
	FuelType         FuelType         `json:"fuel_type"`
	Transmission     TransmissionType `json:"transmission"`
	BodyType         BodyType         `json:"body_type"`
	Color            string           `json:"color,omitempty"`
	EngineSize       float64          `json:"engine_size,omitempty"`
	Doors            int              `json:"doors,omitempty"`
	Location         string           `json:"location"`
	SellerType       SellerType       `json:"seller_type"`
	ImportStatus     ImportStatus     `json:"import_status,omitempty"`
	Condition        VehicleCondition `json:"condition"`
	OwnershipHistory int              `json:"ownership_history"`
	Description      string           `json:"description"`
	PostedByID       int              `json:"posted_by_id"`
	Images           []VehicleImage   `json:"images,omitempty"`
	PostedBy         *PostedBy        `json:"posted_by,omitempty"`
}

// PostedBy is the user who created a listing
type PostedBy struct {
	ID            int     `json:"id"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	DealerProfile *Dealer `json:"dealer_profile,omitempty"`
}

// Dealer returns the dealer profile behind a dealer listing, or nil
func (v Vehicle) Dealer() *Dealer {
	if v.SellerType != SellerDealer || v.PostedBy == nil {
		return nil
	}
	return v.PostedBy.DealerProfile
}

// SellerName is the name shown on a listing
func (v Vehicle) SellerName() string {
	if d := v.Dealer(); d != nil {
		return d.BusinessName
	}
	if v.PostedBy != nil {
		return trimJoin(v.PostedBy.FirstName, v.PostedBy.LastName)
	}
	return ""
}

// Dealer is a dealer profile
type Dealer struct {
	ID            int     `json:"id"`
	UserID        int     `json:"user_id"`
	BusinessName  string  `json:"business_name"`
	ContactPerson string  `json:"contact_person,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Email         string  `json:"email,omitempty"`
	Website       string  `json:"website,omitempty"`
	Address       string  `json:"address,omitempty"`
	City          string  `json:"city,omitempty"`
	Province      string  `json:"province,omitempty"`
	Description   string  `json:"description,omitempty"`
	Rating        float64 `json:"rating,omitempty"`
	ReviewsCount  int     `json:"reviews_count,omitempty"`
	Verified      bool    `json:"verified,omitempty"`
}

// Pagination metadata returned alongside paged results
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// Listing is one page of search results
type Listing struct {
	Vehicles   []Vehicle
	Pagination *Pagination // nil when the API returned a bare array
}

// Facet is a distinct value with the number of listings carrying it
type Facet struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func trimJoin(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
