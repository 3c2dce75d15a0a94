package filters

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseInput turns editor text into a value for f. Blank input resets the
// field to its default. Ranges take "min-max" or "min,max"; either side may
// be left empty to keep that bound at its default. Sets take comma separated
// elements.
func ParseInput(f Field, text string) (Value, error) {
	if !f.Valid() {
		return nil, &InvalidFieldError{Field: f}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return DefaultValue(f), nil
	}

	switch f.Kind() {
	case KindText:
		return Text(text), nil
	case KindSet, KindIntSet:
		v, err := ParseList(f, strings.Split(text, ","))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", f.Label(), err)
		}
		return v, nil
	case KindIntRange, KindFloatRange:
		lo, hi, ok := splitRange(text)
		if !ok {
			return nil, fmt.Errorf("failed to parse %s: expected min-max", f.Label())
		}
		return parseRange(f, lo, hi)
	}
	return nil, &InvalidFieldError{Field: f}
}

// InputText renders the current value of f the way ParseInput reads it
func InputText(f Field, v Value) string {
	switch v := v.(type) {
	case Text:
		return string(v)
	case IntRange:
		return strconv.Itoa(v.Min) + "-" + strconv.Itoa(v.Max)
	case FloatRange:
		return FormatNumber(v.Min) + "-" + FormatNumber(v.Max)
	case IntSet:
		return strings.Join(v.Strings(), ",")
	case interface{ Strings() []string }:
		return strings.Join(v.Strings(), ",")
	}
	return ""
}

func splitRange(text string) (string, string, bool) {
	for _, sep := range []string{",", "-"} {
		if lo, hi, found := strings.Cut(text, sep); found {
			return strings.TrimSpace(lo), strings.TrimSpace(hi), true
		}
	}
	return "", "", false
}

// parseRange parses both bounds of a range field; a blank bound keeps its
// default. Bounds are never reordered.
func parseRange(f Field, lo, hi string) (Value, error) {
	switch def := DefaultValue(f).(type) {
	case IntRange:
		r := def
		var err error
		if lo != "" {
			if r.Min, err = strconv.Atoi(lo); err != nil {
				return nil, fmt.Errorf("failed to parse %s minimum: %w", f.Label(), err)
			}
		}
		if hi != "" {
			if r.Max, err = strconv.Atoi(hi); err != nil {
				return nil, fmt.Errorf("failed to parse %s maximum: %w", f.Label(), err)
			}
		}
		return r, nil
	case FloatRange:
		r := def
		var err error
		if lo != "" {
			if r.Min, err = strconv.ParseFloat(lo, 64); err != nil {
				return nil, fmt.Errorf("failed to parse %s minimum: %w", f.Label(), err)
			}
		}
		if hi != "" {
			if r.Max, err = strconv.ParseFloat(hi, 64); err != nil {
				return nil, fmt.Errorf("failed to parse %s maximum: %w", f.Label(), err)
			}
		}
		return r, nil
	}
	return nil, &InvalidFieldError{Field: f}
}
