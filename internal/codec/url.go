package codec

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"carosearch/internal/filters"
)

// ListSeparator joins the elements of a set field in a single query value
const ListSeparator = ","

// DecodeErrors collects the malformed values met while decoding a query.
// Decoding continues past each of them.
type DecodeErrors []*filters.MalformedValueError

func (e DecodeErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e DecodeErrors) Unwrap() []error {
	out := make([]error, len(e))
	for i, err := range e {
		out[i] = err
	}
	return out
}

// Keys returns the offending query keys in the order they were met
func (e DecodeErrors) Keys() []string {
	out := make([]string, len(e))
	for i, err := range e {
		out[i] = err.Key
	}
	return out
}

// FiltersToURLParams encodes the active fields of s. A default state gives
// an empty set of parameters.
func FiltersToURLParams(s filters.State) url.Values {
	params := url.Values{}
	for _, f := range filters.Fields() {
		v := s.Get(f)
		if !filters.IsActive(f, v) {
			continue
		}
		switch v := v.(type) {
		case filters.Text:
			params.Set(f.Key(), strings.TrimSpace(string(v)))
		case filters.IntRange:
			params.Set(f.Key()+"_min", strconv.Itoa(v.Min))
			params.Set(f.Key()+"_max", strconv.Itoa(v.Max))
		case filters.FloatRange:
			params.Set(f.Key()+"_min", filters.FormatNumber(v.Min))
			params.Set(f.Key()+"_max", filters.FormatNumber(v.Max))
		case filters.IntSet:
			params.Set(f.Key(), strings.Join(v.Strings(), ListSeparator))
		case interface{ Strings() []string }:
			params.Set(f.Key(), strings.Join(v.Strings(), ListSeparator))
		}
	}
	return params
}

// EncodeQuery returns the canonical query string of s, keys sorted
func EncodeQuery(s filters.State) string {
	return FiltersToURLParams(s).Encode()
}

// NormalizeQuery re-encodes a raw query string with sorted keys so it can be
// compared with EncodeQuery output. A query with pairs that cannot be
// unescaped is returned as is.
func NormalizeQuery(raw string) string {
	values, bad := splitQuery(strings.TrimPrefix(raw, "?"))
	if len(bad) > 0 {
		return raw
	}
	return values.Encode()
}

// URLParamsToFilters decodes the recognised keys of params into a partial
// state. Absent keys are absent from the patch. Malformed values drop only
// their own field and are returned together as DecodeErrors; the patch is
// valid either way. Unknown keys are ignored.
func URLParamsToFilters(params url.Values) (filters.Patch, error) {
	patch := filters.Patch{}
	var errs DecodeErrors

	for _, f := range filters.Fields() {
		var (
			v   filters.Value
			ok  bool
			bad []*filters.MalformedValueError
		)
		switch f.Kind() {
		case filters.KindText:
			v, ok = decodeText(params, f)
		case filters.KindIntRange, filters.KindFloatRange:
			v, ok, bad = decodeRange(params, f)
		case filters.KindSet, filters.KindIntSet:
			var err *filters.MalformedValueError
			v, ok, err = decodeList(params, f)
			if err != nil {
				bad = append(bad, err)
			}
		}
		errs = append(errs, bad...)
		if ok {
			patch[f] = v
		}
	}

	if len(errs) > 0 {
		return patch, errs
	}
	return patch, nil
}

// ParseQuery decodes a raw query string. A pair that cannot be unescaped is
// skipped like any other malformed value; when its key belongs to a field the
// field is dropped and reported in DecodeErrors. Every other pair is decoded.
func ParseQuery(raw string) (filters.Patch, error) {
	values, bad := splitQuery(strings.TrimPrefix(raw, "?"))
	patch, err := URLParamsToFilters(values)

	var errs DecodeErrors
	errors.As(err, &errs)
	for _, b := range bad {
		f, ok := fieldForKey(b.Key)
		if !ok {
			continue
		}
		delete(patch, f)
		errs = append(errs, b)
	}

	if len(errs) > 0 {
		return patch, errs
	}
	return patch, nil
}

var errSemicolon = errors.New("invalid semicolon separator in query")

// splitQuery parses a query the way url.ParseQuery does but keeps going past
// a bad pair, returning the pairs it could not unescape separately.
func splitQuery(query string) (url.Values, []*filters.MalformedValueError) {
	values := url.Values{}
	var bad []*filters.MalformedValueError
	for query != "" {
		var pair string
		pair, query, _ = strings.Cut(query, "&")
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		if strings.Contains(pair, ";") {
			bad = append(bad, malformed(rawKey, rawValue, errSemicolon))
			continue
		}
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			bad = append(bad, malformed(rawKey, rawValue, err))
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			bad = append(bad, malformed(key, rawValue, err))
			continue
		}
		values[key] = append(values[key], value)
	}
	return values, bad
}

// fieldForKey maps a query key, including the _min and _max keys of a
// range, to its field
func fieldForKey(key string) (filters.Field, bool) {
	for _, f := range filters.Fields() {
		switch f.Kind() {
		case filters.KindIntRange, filters.KindFloatRange:
			if key == f.Key()+"_min" || key == f.Key()+"_max" {
				return f, true
			}
		default:
			if key == f.Key() {
				return f, true
			}
		}
	}
	return 0, false
}

func lookup(params url.Values, key string) (string, bool) {
	vs, ok := params[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

func decodeText(params url.Values, f filters.Field) (filters.Value, bool) {
	raw, ok := lookup(params, f.Key())
	if !ok {
		return nil, false
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	return filters.Text(raw), true
}

// decodeRange produces both bounds when either key carries a value, taking
// the default for the missing one. A malformed bound drops the whole field.
func decodeRange(params url.Values, f filters.Field) (filters.Value, bool, []*filters.MalformedValueError) {
	minKey, maxKey := f.Key()+"_min", f.Key()+"_max"
	lo, _ := lookup(params, minKey)
	hi, _ := lookup(params, maxKey)
	lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
	if lo == "" && hi == "" {
		return nil, false, nil
	}

	var bad []*filters.MalformedValueError
	switch r := filters.DefaultValue(f).(type) {
	case filters.IntRange:
		if lo != "" {
			n, err := strconv.Atoi(lo)
			if err != nil {
				bad = append(bad, malformed(minKey, lo, err))
			}
			r.Min = n
		}
		if hi != "" {
			n, err := strconv.Atoi(hi)
			if err != nil {
				bad = append(bad, malformed(maxKey, hi, err))
			}
			r.Max = n
		}
		if len(bad) > 0 {
			return nil, false, bad
		}
		return r, true, nil
	case filters.FloatRange:
		if lo != "" {
			n, err := parseNumber(lo)
			if err != nil {
				bad = append(bad, malformed(minKey, lo, err))
			}
			r.Min = n
		}
		if hi != "" {
			n, err := parseNumber(hi)
			if err != nil {
				bad = append(bad, malformed(maxKey, hi, err))
			}
			r.Max = n
		}
		if len(bad) > 0 {
			return nil, false, bad
		}
		return r, true, nil
	}
	return nil, false, nil
}

var errNotFinite = errors.New("not a finite number")

func parseNumber(s string) (float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, errNotFinite
	}
	return n, nil
}

func decodeList(params url.Values, f filters.Field) (filters.Value, bool, *filters.MalformedValueError) {
	raw, ok := lookup(params, f.Key())
	if !ok {
		return nil, false, nil
	}
	v, err := filters.ParseList(f, strings.Split(raw, ListSeparator))
	if err != nil {
		return nil, false, malformed(f.Key(), raw, err)
	}
	return v, true, nil
}

func malformed(key, value string, err error) *filters.MalformedValueError {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	return &filters.MalformedValueError{Key: key, Value: value, Err: err}
}
