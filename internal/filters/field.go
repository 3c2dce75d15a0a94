package filters

import "fmt"

// Field identifies one search criterion of State. The set of fields is
// closed; every per-field behaviour is an exhaustive switch over it.
type Field int

const (
	FieldVehicleType Field = iota
	FieldMake
	FieldModel
	FieldVariant
	FieldYearRange
	FieldPriceRange
	FieldMileageRange
	FieldFuelType
	FieldTransmission
	FieldBodyType
	FieldColor
	FieldEngineSize
	FieldDoors
	FieldLocation
	FieldSellerType
	FieldImportStatus
	FieldCondition
	FieldOwnershipHistory

	fieldCount
)

// Kind is the value shape of a field
type Kind int

const (
	KindText Kind = iota
	KindIntRange
	KindFloatRange
	KindSet
	KindIntSet
)

// Fields lists every field in canonical order
func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for f := Field(0); f < fieldCount; f++ {
		out = append(out, f)
	}
	return out
}

// Valid reports whether f is a known field
func (f Field) Valid() bool {
	return f >= 0 && f < fieldCount
}

// Name is the field's name in the filter schema
func (f Field) Name() string {
	switch f {
	case FieldVehicleType:
		return "vehicle_type"
	case FieldMake:
		return "make"
	case FieldModel:
		return "model"
	case FieldVariant:
		return "variant"
	case FieldYearRange:
		return "yearRange"
	case FieldPriceRange:
		return "priceRange"
	case FieldMileageRange:
		return "mileageRange"
	case FieldFuelType:
		return "fuel_type"
	case FieldTransmission:
		return "transmission"
	case FieldBodyType:
		return "body_type"
	case FieldColor:
		return "color"
	case FieldEngineSize:
		return "engine_size"
	case FieldDoors:
		return "doors"
	case FieldLocation:
		return "location"
	case FieldSellerType:
		return "seller_type"
	case FieldImportStatus:
		return "import_status"
	case FieldCondition:
		return "condition"
	case FieldOwnershipHistory:
		return "ownership_history"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

func (f Field) String() string { return f.Name() }

// Key is the URL query key. Range fields use Key()+"_min" and Key()+"_max".
func (f Field) Key() string {
	switch f {
	case FieldYearRange:
		return "year"
	case FieldPriceRange:
		return "price"
	case FieldMileageRange:
		return "mileage"
	case FieldEngineSize:
		return "engine"
	case FieldOwnershipHistory:
		return "owners"
	}
	return f.Name()
}

// Label is the human readable field name
func (f Field) Label() string {
	switch f {
	case FieldVehicleType:
		return "Vehicle type"
	case FieldMake:
		return "Make"
	case FieldModel:
		return "Model"
	case FieldVariant:
		return "Variant"
	case FieldYearRange:
		return "Year"
	case FieldPriceRange:
		return "Price"
	case FieldMileageRange:
		return "Mileage"
	case FieldFuelType:
		return "Fuel"
	case FieldTransmission:
		return "Transmission"
	case FieldBodyType:
		return "Body"
	case FieldColor:
		return "Colour"
	case FieldEngineSize:
		return "Engine (L)"
	case FieldDoors:
		return "Doors"
	case FieldLocation:
		return "Location"
	case FieldSellerType:
		return "Seller"
	case FieldImportStatus:
		return "Import status"
	case FieldCondition:
		return "Condition"
	case FieldOwnershipHistory:
		return "Owners"
	}
	return f.Name()
}

// Kind returns the value shape of the field
func (f Field) Kind() Kind {
	switch f {
	case FieldMake, FieldModel, FieldVariant, FieldLocation:
		return KindText
	case FieldYearRange, FieldOwnershipHistory:
		return KindIntRange
	case FieldPriceRange, FieldMileageRange, FieldEngineSize:
		return KindFloatRange
	case FieldDoors:
		return KindIntSet
	case FieldVehicleType, FieldFuelType, FieldTransmission, FieldBodyType,
		FieldColor, FieldSellerType, FieldImportStatus, FieldCondition:
		return KindSet
	}
	return KindText
}

// FieldByName looks a field up by its schema name
func FieldByName(name string) (Field, bool) {
	for _, f := range Fields() {
		if f.Name() == name {
			return f, true
		}
	}
	return 0, false
}
