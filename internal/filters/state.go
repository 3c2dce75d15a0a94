package filters

import (
	"slices"
	"strings"

	"carosearch/internal/domain"
)

// Default bounds of the range fields
var (
	DefaultYearRange        = IntRange{Min: 2000, Max: 2024}
	DefaultPriceRange       = FloatRange{Min: 0, Max: 100000}
	DefaultMileageRange     = FloatRange{Min: 0, Max: 200000}
	DefaultEngineSize       = FloatRange{Min: 0, Max: 6}
	DefaultOwnershipHistory = IntRange{Min: 1, Max: 10}
)

// State holds every search criterion. The zero value is not the default
// state for range fields; use Default.
type State struct {
	VehicleType      Set[domain.VehicleType]
	Make             string
	Model            string
	Variant          string
	YearRange        IntRange
	PriceRange       FloatRange
	MileageRange     FloatRange
	FuelType         Set[domain.FuelType]
	Transmission     Set[domain.TransmissionType]
	BodyType         Set[domain.BodyType]
	Color            Set[string]
	EngineSize       FloatRange
	Doors            IntSet
	Location         string
	SellerType       Set[domain.SellerType]
	ImportStatus     Set[domain.ImportStatus]
	Condition        Set[domain.VehicleCondition]
	OwnershipHistory IntRange
}

// Default returns the state with every field at its default
func Default() State {
	return State{
		YearRange:        DefaultYearRange,
		PriceRange:       DefaultPriceRange,
		MileageRange:     DefaultMileageRange,
		EngineSize:       DefaultEngineSize,
		OwnershipHistory: DefaultOwnershipHistory,
	}
}

// DefaultValue returns the default value of a field
func DefaultValue(f Field) Value {
	return Default().Get(f)
}

// Clone returns a deep copy
func (s State) Clone() State {
	c := s
	c.VehicleType = slices.Clone(s.VehicleType)
	c.FuelType = slices.Clone(s.FuelType)
	c.Transmission = slices.Clone(s.Transmission)
	c.BodyType = slices.Clone(s.BodyType)
	c.Color = slices.Clone(s.Color)
	c.Doors = slices.Clone(s.Doors)
	c.SellerType = slices.Clone(s.SellerType)
	c.ImportStatus = slices.Clone(s.ImportStatus)
	c.Condition = slices.Clone(s.Condition)
	return c
}

// Get returns a copy of the field's current value, or nil for an unknown field
func (s State) Get(f Field) Value {
	switch f {
	case FieldVehicleType:
		return slices.Clone(s.VehicleType)
	case FieldMake:
		return Text(s.Make)
	case FieldModel:
		return Text(s.Model)
	case FieldVariant:
		return Text(s.Variant)
	case FieldYearRange:
		return s.YearRange
	case FieldPriceRange:
		return s.PriceRange
	case FieldMileageRange:
		return s.MileageRange
	case FieldFuelType:
		return slices.Clone(s.FuelType)
	case FieldTransmission:
		return slices.Clone(s.Transmission)
	case FieldBodyType:
		return slices.Clone(s.BodyType)
	case FieldColor:
		return slices.Clone(s.Color)
	case FieldEngineSize:
		return s.EngineSize
	case FieldDoors:
		return slices.Clone(s.Doors)
	case FieldLocation:
		return Text(s.Location)
	case FieldSellerType:
		return slices.Clone(s.SellerType)
	case FieldImportStatus:
		return slices.Clone(s.ImportStatus)
	case FieldCondition:
		return slices.Clone(s.Condition)
	case FieldOwnershipHistory:
		return s.OwnershipHistory
	}
	return nil
}

// Set replaces exactly one field. Range bounds are replaced together and
// never reordered. Sets keep the first occurrence of duplicate elements.
func (s *State) Set(f Field, v Value) error {
	if !f.Valid() {
		return &InvalidFieldError{Field: f, Value: v}
	}
	var ok bool
	switch f {
	case FieldVehicleType:
		s.VehicleType, ok = setValue(v, s.VehicleType)
	case FieldMake:
		s.Make, ok = textValue(v, s.Make)
	case FieldModel:
		s.Model, ok = textValue(v, s.Model)
	case FieldVariant:
		s.Variant, ok = textValue(v, s.Variant)
	case FieldYearRange:
		s.YearRange, ok = rangeValue(v, s.YearRange)
	case FieldPriceRange:
		s.PriceRange, ok = rangeValue(v, s.PriceRange)
	case FieldMileageRange:
		s.MileageRange, ok = rangeValue(v, s.MileageRange)
	case FieldFuelType:
		s.FuelType, ok = setValue(v, s.FuelType)
	case FieldTransmission:
		s.Transmission, ok = setValue(v, s.Transmission)
	case FieldBodyType:
		s.BodyType, ok = setValue(v, s.BodyType)
	case FieldColor:
		s.Color, ok = setValue(v, s.Color)
	case FieldEngineSize:
		s.EngineSize, ok = rangeValue(v, s.EngineSize)
	case FieldDoors:
		var doors IntSet
		if doors, ok = v.(IntSet); ok {
			s.Doors = dedupe(doors)
		}
	case FieldLocation:
		s.Location, ok = textValue(v, s.Location)
	case FieldSellerType:
		s.SellerType, ok = setValue(v, s.SellerType)
	case FieldImportStatus:
		s.ImportStatus, ok = setValue(v, s.ImportStatus)
	case FieldCondition:
		s.Condition, ok = setValue(v, s.Condition)
	case FieldOwnershipHistory:
		s.OwnershipHistory, ok = rangeValue(v, s.OwnershipHistory)
	}
	if !ok {
		return &InvalidFieldError{Field: f, Value: v}
	}
	return nil
}

// Apply sets every field of the patch. Nothing is changed when any entry is
// invalid.
func (s *State) Apply(p Patch) error {
	next := s.Clone()
	for _, f := range p.Fields() {
		if err := next.Set(f, p[f]); err != nil {
			return err
		}
	}
	*s = next
	return nil
}

// IsActive reports whether the field differs from its default
func (s State) IsActive(f Field) bool {
	return IsActive(f, s.Get(f))
}

// ActiveCount is the number of active fields; a range counts once
func (s State) ActiveCount() int {
	count := 0
	for _, f := range Fields() {
		if s.IsActive(f) {
			count++
		}
	}
	return count
}

// IsActive reports whether v differs from the default of f. Sets are active
// when non-empty, text when non-blank, ranges when either bound moved. A
// vehicle type holding only the "all" sentinel is inactive.
func IsActive(f Field, v Value) bool {
	if !Accepts(f, v) {
		return false
	}
	switch v := v.(type) {
	case Set[domain.VehicleType]:
		return slices.ContainsFunc(v, func(t domain.VehicleType) bool { return t != domain.VehicleTypeAll })
	case Text:
		return strings.TrimSpace(string(v)) != ""
	case IntRange, FloatRange:
		return v != DefaultValue(f)
	case IntSet:
		return len(v) > 0
	case interface{ Strings() []string }:
		return len(v.Strings()) > 0
	}
	return false
}

// Accepts reports whether v has the value type of field f
func Accepts(f Field, v Value) bool {
	probe := Default()
	return probe.Set(f, v) == nil
}

func textValue(v Value, current string) (string, bool) {
	t, ok := v.(Text)
	if !ok {
		return current, false
	}
	return string(t), true
}

func rangeValue[R IntRange | FloatRange](v Value, current R) (R, bool) {
	r, ok := v.(R)
	if !ok {
		return current, false
	}
	return r, true
}

func setValue[T ~string](v Value, current Set[T]) (Set[T], bool) {
	set, ok := v.(Set[T])
	if !ok {
		return current, false
	}
	return dedupe(set), true
}
