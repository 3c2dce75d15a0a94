package codec

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"carosearch/internal/domain"
	"carosearch/internal/filters"
)

// Listing search API parameter names
const (
	ParamVehicleType  = "vehicle_type"
	ParamMake         = "make"
	ParamModel        = "model"
	ParamYearMin      = "year_min"
	ParamYearMax      = "year_max"
	ParamPriceMin     = "price_min"
	ParamPriceMax     = "price_max"
	ParamMileageMax   = "mileage_max"
	ParamLocation     = "location"
	ParamFuelType     = "fuel_type"
	ParamTransmission = "transmission"
	ParamBodyType     = "body_type"
	ParamCondition    = "condition"
	ParamSellerType   = "seller_type"
	ParamPage         = "page"
	ParamLimit        = "limit"
)

// SearchParams is the single-valued parameter set of a listing search
type SearchParams map[string]string

// Values converts the parameters for attachment to a request URL
func (p SearchParams) Values() url.Values {
	out := make(url.Values, len(p))
	for k, v := range p {
		out.Set(k, v)
	}
	return out
}

// Keys returns the parameter names sorted
func (p SearchParams) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// String is the canonical encoded form, usable as a cache key
func (p SearchParams) String() string {
	return p.Values().Encode()
}

// WithPage returns a copy carrying page and limit
func (p SearchParams) WithPage(page, limit int) SearchParams {
	out := make(SearchParams, len(p)+2)
	for k, v := range p {
		out[k] = v
	}
	if page > 0 {
		out[ParamPage] = strconv.Itoa(page)
	}
	if limit > 0 {
		out[ParamLimit] = strconv.Itoa(limit)
	}
	return out
}

// ToSearchParams maps s onto the listing search API. The API takes a single
// value per field, so multi-select fields send their first element and the
// mileage range sends only its upper bound. Fields the API has no parameter
// for are never sent.
func ToSearchParams(s filters.State) SearchParams {
	params := SearchParams{}

	for _, f := range filters.Fields() {
		if !s.IsActive(f) {
			continue
		}
		switch f {
		case filters.FieldVehicleType:
			if len(s.VehicleType) > 0 && s.VehicleType[0] != domain.VehicleTypeAll {
				params[ParamVehicleType] = string(s.VehicleType[0])
			}
		case filters.FieldMake:
			params[ParamMake] = strings.TrimSpace(s.Make)
		case filters.FieldModel:
			params[ParamModel] = strings.TrimSpace(s.Model)
		case filters.FieldLocation:
			params[ParamLocation] = strings.TrimSpace(s.Location)
		case filters.FieldYearRange:
			params[ParamYearMin] = strconv.Itoa(s.YearRange.Min)
			params[ParamYearMax] = strconv.Itoa(s.YearRange.Max)
		case filters.FieldPriceRange:
			params[ParamPriceMin] = filters.FormatNumber(s.PriceRange.Min)
			params[ParamPriceMax] = filters.FormatNumber(s.PriceRange.Max)
		case filters.FieldMileageRange:
			params[ParamMileageMax] = filters.FormatNumber(s.MileageRange.Max)
		case filters.FieldFuelType:
			params[ParamFuelType] = string(s.FuelType[0])
		case filters.FieldTransmission:
			params[ParamTransmission] = string(s.Transmission[0])
		case filters.FieldBodyType:
			params[ParamBodyType] = string(s.BodyType[0])
		case filters.FieldCondition:
			params[ParamCondition] = string(s.Condition[0])
		case filters.FieldSellerType:
			params[ParamSellerType] = string(s.SellerType[0])
		case filters.FieldVariant, filters.FieldColor, filters.FieldEngineSize,
			filters.FieldDoors, filters.FieldImportStatus, filters.FieldOwnershipHistory:
			// no API parameter
		}
	}
	return params
}
