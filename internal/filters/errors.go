package filters

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidField matches every *InvalidFieldError
	ErrInvalidField = errors.New("invalid filter field")
	// ErrMalformedValue matches every *MalformedValueError
	ErrMalformedValue = errors.New("malformed filter value")
	// ErrOutOfOrderRange matches every *OutOfOrderRangeError
	ErrOutOfOrderRange = errors.New("range bounds out of order")
)

// InvalidFieldError reports a mutation of an unknown field, or a value whose
// type does not belong to the field. It is a programming error.
type InvalidFieldError struct {
	Field Field
	Value Value
}

func (e *InvalidFieldError) Error() string {
	if !e.Field.Valid() {
		return fmt.Sprintf("invalid filter field %d", int(e.Field))
	}
	return fmt.Sprintf("invalid value %T for filter field %s", e.Value, e.Field.Name())
}

func (e *InvalidFieldError) Is(target error) bool { return target == ErrInvalidField }

// MalformedValueError reports a query value that cannot be parsed into its
// field's type
type MalformedValueError struct {
	Key   string
	Value string
	Err   error
}

func (e *MalformedValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed filter value %q for %s: %v", e.Value, e.Key, e.Err)
	}
	return fmt.Sprintf("malformed filter value %q for %s", e.Value, e.Key)
}

func (e *MalformedValueError) Is(target error) bool { return target == ErrMalformedValue }

func (e *MalformedValueError) Unwrap() error { return e.Err }

// OutOfOrderRangeError reports a range whose low bound exceeds its high bound.
// The state keeps such ranges as given.
type OutOfOrderRangeError struct {
	Field Field
	Range Value
}

func (e *OutOfOrderRangeError) Error() string {
	return fmt.Sprintf("%s range %s has min above max", e.Field.Name(), FormatValue(e.Range))
}

func (e *OutOfOrderRangeError) Is(target error) bool { return target == ErrOutOfOrderRange }

// Validate lists the out-of-order ranges of s without changing it
func Validate(s State) []error {
	var errs []error
	for _, f := range Fields() {
		switch r := s.Get(f).(type) {
		case IntRange:
			if !r.Ordered() {
				errs = append(errs, &OutOfOrderRangeError{Field: f, Range: r})
			}
		case FloatRange:
			if !r.Ordered() {
				errs = append(errs, &OutOfOrderRangeError{Field: f, Range: r})
			}
		}
	}
	return errs
}
