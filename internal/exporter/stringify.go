package exporter

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/zclconf/go-cty/cty"
)

// ErrUnrepresentable is returned by Stringify for values that have no text form.
var ErrUnrepresentable = errors.New("value has no text representation")

// Stringify renders v as text for the export document. Collections render as
// "[a, b]" and "{k: v}" with sorted keys; nil inside a collection is "null".
// A method that panics while rendering yields ErrUnrepresentable.
func Stringify(v any) (s string, err error) {
	if v == nil {
		return "null", nil
	}
	// Typed nil pointers must not reach String, Error or MarshalText.
	if rv := reflect.ValueOf(v); (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return "null", nil
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = "", fmt.Errorf("%w: %T panicked: %v", ErrUnrepresentable, v, r)
		}
	}()

	switch t := v.(type) {
	case cty.Value:
		return stringifyCty(t)
	case string:
		return t, nil
	case fmt.Stringer:
		return t.String(), nil
	case error:
		return t.Error(), nil
	case encoding.TextMarshaler:
		b, err := t.MarshalText()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnrepresentable, err)
		}
		return string(b), nil
	}

	// Built-in scalars, including json.Number and []byte.
	if s, err := cast.ToStringE(v); err == nil {
		return s, nil
	}

	// Named types and collections.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return "", fmt.Errorf("%w: %T", ErrUnrepresentable, v)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null", nil
		}
		return Stringify(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := Stringify(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case reflect.Map:
		entries := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, err := Stringify(iter.Key().Interface())
			if err != nil {
				return "", err
			}
			val, err := Stringify(iter.Value().Interface())
			if err != nil {
				return "", err
			}
			entries = append(entries, k+": "+val)
		}
		sort.Strings(entries)
		return "{" + strings.Join(entries, ", ") + "}", nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case reflect.String:
		return rv.String(), nil
	}
	return fmt.Sprintf("%v", v), nil
}

func stringifyCty(v cty.Value) (string, error) {
	if !v.IsKnown() {
		return "", fmt.Errorf("%w: unknown %s value", ErrUnrepresentable, v.Type().FriendlyName())
	}
	if v.IsNull() {
		return "null", nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	case ty == cty.Bool:
		return strconv.FormatBool(v.True()), nil
	case ty.IsListType(), ty.IsSetType(), ty.IsTupleType():
		var parts []string
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			s, err := stringifyCty(ev)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case ty.IsMapType(), ty.IsObjectType():
		var entries []string
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			s, err := stringifyCty(ev)
			if err != nil {
				return "", err
			}
			entries = append(entries, k.AsString()+": "+s)
		}
		sort.Strings(entries)
		return "{" + strings.Join(entries, ", ") + "}", nil
	}
	return "", fmt.Errorf("%w: cty %s", ErrUnrepresentable, ty.FriendlyName())
}

// jsonScalar returns v unchanged when encoding/json can represent it as a
// string, number, bool or null. cty primitives are unwrapped.
func jsonScalar(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case string, bool, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return t, true
	case float64:
		return t, !math.IsNaN(t) && !math.IsInf(t, 0)
	case float32:
		f := float64(t)
		return t, !math.IsNaN(f) && !math.IsInf(f, 0)
	case cty.Value:
		return ctyScalar(t)
	}
	return nil, false
}

func ctyScalar(v cty.Value) (any, bool) {
	if !v.IsKnown() {
		return nil, false
	}
	if v.IsNull() {
		return nil, true
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), true
	case cty.Bool:
		return v.True(), true
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInf() {
			return nil, false
		}
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i, true
			}
		}
		f, _ := bf.Float64()
		if math.IsInf(f, 0) {
			return nil, false
		}
		return f, true
	}
	return nil, false
}
