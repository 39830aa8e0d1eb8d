package answers

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ValueOf converts a native Go value, as produced by YAML or JSON decoding,
// into a cty.Value. nil becomes a null value.
func ValueOf(v any) (cty.Value, error) {
	switch x := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return x, nil
	case string:
		return cty.StringVal(x), nil
	case bool:
		return cty.BoolVal(x), nil
	case int:
		return cty.NumberIntVal(int64(x)), nil
	case int64:
		return cty.NumberIntVal(x), nil
	case float64:
		return cty.NumberFloatVal(x), nil
	case []string:
		if len(x) == 0 {
			return cty.ListValEmpty(cty.String), nil
		}
		vals := make([]cty.Value, 0, len(x))
		for _, s := range x {
			vals = append(vals, cty.StringVal(s))
		}
		return cty.ListVal(vals), nil
	case []any:
		if len(x) == 0 {
			return cty.EmptyTupleVal, nil
		}
		vals := make([]cty.Value, 0, len(x))
		for i, elem := range x {
			ev, err := ValueOf(elem)
			if err != nil {
				return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
			}
			vals = append(vals, ev)
		}
		return cty.TupleVal(vals), nil
	case map[string]any:
		if len(x) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(x))
		for k, elem := range x {
			ev, err := ValueOf(elem)
			if err != nil {
				return cty.NilVal, fmt.Errorf("attribute %q: %w", k, err)
			}
			attrs[k] = ev
		}
		return cty.ObjectVal(attrs), nil
	}

	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type: %w", err)
	}
	return gocty.ToCtyValue(v, ty)
}

// MustValue is ValueOf for literals in tests and fixtures.
func MustValue(v any) cty.Value {
	val, err := ValueOf(v)
	if err != nil {
		panic(err)
	}
	return val
}

// IsEmpty reports whether the value carries no answer: null, unknown, an
// empty string or an empty collection.
func IsEmpty(v cty.Value) bool {
	if v.Type() == cty.NilType || v.IsNull() || !v.IsKnown() {
		return true
	}
	ty := v.Type()
	switch {
	case ty == cty.String:
		return strings.TrimSpace(v.AsString()) == ""
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType() || ty.IsMapType():
		return v.LengthInt() == 0
	}
	return false
}

// Strings flattens a value into its string forms. Primitive values yield a
// single element; lists, sets and tuples yield one element per primitive
// they contain. Null and unknown values yield nothing.
func Strings(v cty.Value) []string {
	if IsEmpty(v) {
		return nil
	}
	ty := v.Type()
	if ty.IsPrimitiveType() {
		s, err := convert.Convert(v, cty.String)
		if err != nil || s.IsNull() {
			return nil
		}
		return []string{s.AsString()}
	}
	if ty.IsListType() || ty.IsSetType() || ty.IsTupleType() {
		var out []string
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			out = append(out, Strings(elem)...)
		}
		return out
	}
	return nil
}

// Int interprets a primitive value as a whole number. Strings are trimmed
// and parsed; anything that is not a whole number reports false.
func Int(v cty.Value) (int, bool) {
	if IsEmpty(v) || !v.Type().IsPrimitiveType() {
		return 0, false
	}
	if v.Type() == cty.String {
		v = cty.StringVal(strings.TrimSpace(v.AsString()))
	}
	n, err := convert.Convert(v, cty.Number)
	if err != nil || n.IsNull() {
		return 0, false
	}
	bf := n.AsBigFloat()
	if !bf.IsInt() {
		return 0, false
	}
	i, _ := bf.Int64()
	return int(i), true
}
