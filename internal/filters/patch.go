package filters

import (
	"slices"
	"strconv"
	"strings"

	"carosearch/internal/domain"
)

// Patch is a partial state: only the fields present are to be replaced
type Patch map[Field]Value

// Fields returns the patched fields in canonical order
func (p Patch) Fields() []Field {
	out := make([]Field, 0, len(p))
	for f := range p {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Has reports whether the patch carries f
func (p Patch) Has(f Field) bool {
	_, ok := p[f]
	return ok
}

// ParseList builds the value of a set field from its elements. Blank
// elements are dropped; enum labels match case-insensitively.
func ParseList(f Field, items []string) (Value, error) {
	clean := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			clean = append(clean, item)
		}
	}

	switch f {
	case FieldVehicleType:
		return parseLabels(clean, domain.ParseVehicleType)
	case FieldFuelType:
		return parseLabels(clean, labelParser(domain.FuelTypes))
	case FieldTransmission:
		return parseLabels(clean, labelParser(domain.TransmissionTypes))
	case FieldBodyType:
		return parseLabels(clean, labelParser(domain.BodyTypes))
	case FieldSellerType:
		return parseLabels(clean, labelParser(domain.SellerTypes))
	case FieldImportStatus:
		return parseLabels(clean, labelParser(domain.ImportStatuses))
	case FieldCondition:
		return parseLabels(clean, labelParser(domain.VehicleConditions))
	case FieldColor:
		return Set[string](dedupe(clean)), nil
	case FieldDoors:
		doors := make(IntSet, 0, len(clean))
		for _, item := range clean {
			n, err := strconv.Atoi(item)
			if err != nil {
				return nil, err
			}
			doors = append(doors, n)
		}
		return IntSet(dedupe(doors)), nil
	}
	return nil, &InvalidFieldError{Field: f}
}

func labelParser[T ~string](options []T) func(string) (T, bool) {
	return func(s string) (T, bool) { return domain.ParseLabel(s, options) }
}

func parseLabels[T ~string](items []string, parse func(string) (T, bool)) (Set[T], error) {
	out := make(Set[T], 0, len(items))
	for _, item := range items {
		v, ok := parse(item)
		if !ok {
			return nil, &unknownLabelError{label: item}
		}
		out = append(out, v)
	}
	return Set[T](dedupe(out)), nil
}

type unknownLabelError struct {
	label string
}

func (e *unknownLabelError) Error() string { return "unknown option " + strconv.Quote(e.label) }
