package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carosearch/internal/domain"
	"carosearch/internal/filters"
)

func TestSearchParamsDefaultIsEmpty(t *testing.T) {
	assert.Empty(t, ToSearchParams(filters.Default()))
}

func TestSearchParamsTakesFirstSetElement(t *testing.T) {
	s := filters.Default()
	require.NoError(t, s.Set(filters.FieldFuelType, filters.Set[domain.FuelType]{domain.FuelDiesel, domain.FuelPetrol}))

	assert.Equal(t, SearchParams{"fuel_type": "Diesel"}, ToSearchParams(s))
}

func TestSearchParamsMileageSendsUpperBoundOnly(t *testing.T) {
	s := filters.Default()
	require.NoError(t, s.Set(filters.FieldMileageRange, filters.FloatRange{Min: 20000, Max: 150000}))

	params := ToSearchParams(s)
	assert.Equal(t, SearchParams{"mileage_max": "150000"}, params)
	assert.NotContains(t, params, "mileage_min")
}

func TestSearchParamsVehicleType(t *testing.T) {
	s := filters.Default()
	require.NoError(t, s.Set(filters.FieldVehicleType, filters.Set[domain.VehicleType]{domain.VehicleTypeAll}))
	assert.Empty(t, ToSearchParams(s))

	require.NoError(t, s.Set(filters.FieldVehicleType, filters.Set[domain.VehicleType]{domain.VehicleTypeMotorbike, domain.VehicleTypeCar}))
	assert.Equal(t, SearchParams{"vehicle_type": "Motor Bike"}, ToSearchParams(s))
}

func TestSearchParamsFullState(t *testing.T) {
	s := filters.Default()
	require.NoError(t, s.Apply(filters.Patch{
		filters.FieldMake:             filters.Text(" Toyota "),
		filters.FieldModel:            filters.Text("Aqua"),
		filters.FieldLocation:         filters.Text("Galle"),
		filters.FieldYearRange:        filters.IntRange{Min: 2012, Max: 2024},
		filters.FieldPriceRange:       filters.FloatRange{Min: 0, Max: 45000.5},
		filters.FieldTransmission:     filters.Set[domain.TransmissionType]{domain.TransmissionAutomatic},
		filters.FieldBodyType:         filters.Set[domain.BodyType]{domain.BodyHatchback},
		filters.FieldCondition:        filters.Set[domain.VehicleCondition]{domain.ConditionUsed},
		filters.FieldSellerType:       filters.Set[domain.SellerType]{domain.SellerDealer},
		filters.FieldVariant:          filters.Text("S"),
		filters.FieldColor:            filters.Set[string]{"blue"},
		filters.FieldDoors:            filters.IntSet{5},
		filters.FieldEngineSize:       filters.FloatRange{Min: 1, Max: 1.5},
		filters.FieldImportStatus:     filters.Set[domain.ImportStatus]{domain.ImportUsed},
		filters.FieldOwnershipHistory: filters.IntRange{Min: 1, Max: 1},
	}))

	assert.Equal(t, SearchParams{
		"make":         "Toyota",
		"model":        "Aqua",
		"location":     "Galle",
		"year_min":     "2012",
		"year_max":     "2024",
		"price_min":    "0",
		"price_max":    "45000.5",
		"transmission": "Automatic",
		"body_type":    "Hatchback",
		"condition":    "Used",
		"seller_type":  "Dealer",
	}, ToSearchParams(s))
}

func TestSearchParamsWithPage(t *testing.T) {
	params := SearchParams{"make": "Nissan"}
	paged := params.WithPage(2, 20)

	assert.Equal(t, "limit=20&make=Nissan&page=2", paged.String())
	assert.Len(t, params, 1)
	assert.Equal(t, []string{"limit", "make", "page"}, paged.Keys())
}
