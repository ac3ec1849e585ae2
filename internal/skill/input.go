package skill

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Undefined is the text form of an absent input
const Undefined = "undefined"

// Null is an input that was explicitly given as JSON null. It is distinct
// from an absent input, which is a Go nil.
type Null struct{}

func (Null) String() string { return "null" }

func (Null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// FormatInput renders any input value as text:
//   - Go nil (untyped, or a nil pointer, map or slice) renders as "undefined"
//   - Null renders as "null"
//   - scalars (strings, bytes, bools, numbers, Stringers, errors) render as
//     their plain text, so 42 and float64(42) both render as "42"
//   - floats switch to exponent form outside [1e-6, 1e21), as in 1e+21
//   - maps, slices, arrays and structs render as compact JSON
//   - anything else falls back to fmt's %v
func FormatInput(input any) string {
	if input == nil {
		return Undefined
	}

	rv := reflect.ValueOf(input)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if rv.IsNil() {
			return Undefined
		}
	}

	switch v := input.(type) {
	case float64:
		return formatFloat(v, 64)
	case float32:
		return formatFloat(float64(v), 32)
	case string:
		return v
	case []byte:
		return string(v)
	case json.RawMessage:
		return string(v)
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Undefined
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if data, err := json.Marshal(rv.Interface()); err == nil {
			return string(data)
		}
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	}

	if s, err := cast.ToStringE(rv.Interface()); err == nil {
		return s
	}
	return fmt.Sprintf("%v", rv.Interface())
}

// formatFloat renders f in plain decimal when 1e-6 <= |f| < 1e21 and in
// exponent form otherwise
func formatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}

	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, bitSize)
	}

	s := strconv.FormatFloat(f, 'e', -1, bitSize)
	// 1e-07 -> 1e-7
	mantissa, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + sign + digits
}

// DecodeInput decodes a JSON document into a skill input. Numbers are kept
// as json.Number so large integers render without loss. Empty data is an
// absent input; a JSON null is Null.
func DecodeInput(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var input any
	if err := dec.Decode(&input); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	if input == nil {
		return Null{}, nil
	}
	return input, nil
}
