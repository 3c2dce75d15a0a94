package filters

import (
	"slices"
	"strconv"
	"strings"
)

// Value is the sealed set of field value types
type Value interface {
	isFilterValue()
}

// Text is the value of a free-text field
type Text string

// IntRange is an inclusive integer range. Min > Max is stored as given.
type IntRange struct {
	Min, Max int
}

// FloatRange is an inclusive numeric range. Min > Max is stored as given.
type FloatRange struct {
	Min, Max float64
}

// IntSet is an insertion-ordered set of integers
type IntSet []int

// Set is an insertion-ordered set of labels
type Set[T ~string] []T

func (Text) isFilterValue()       {}
func (IntRange) isFilterValue()   {}
func (FloatRange) isFilterValue() {}
func (IntSet) isFilterValue()     {}
func (Set[T]) isFilterValue()     {}

// Ordered reports whether Min <= Max
func (r IntRange) Ordered() bool { return r.Min <= r.Max }

// Ordered reports whether Min <= Max
func (r FloatRange) Ordered() bool { return r.Min <= r.Max }

// Strings returns the elements as plain strings
func (s Set[T]) Strings() []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = string(v)
	}
	return out
}

// Strings returns the elements in canonical decimal form
func (s IntSet) Strings() []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = strconv.Itoa(v)
	}
	return out
}

// FormatNumber renders a float without trailing zeros ("2", "1.6")
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// dedupe keeps the first occurrence of each element. Empty input gives nil.
func dedupe[T comparable](in []T) []T {
	if len(in) == 0 {
		return nil
	}
	out := make([]T, 0, len(in))
	for _, v := range in {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// FormatValue renders a value for display
func FormatValue(v Value) string {
	switch v := v.(type) {
	case Text:
		return string(v)
	case IntRange:
		return strconv.Itoa(v.Min) + " - " + strconv.Itoa(v.Max)
	case FloatRange:
		return FormatNumber(v.Min) + " - " + FormatNumber(v.Max)
	case IntSet:
		return strings.Join(v.Strings(), ", ")
	case interface{ Strings() []string }:
		return strings.Join(v.Strings(), ", ")
	}
	return ""
}
