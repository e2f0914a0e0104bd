package tree

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
)

// Kind is the structural kind of a configuration value.
type Kind int

const (
	Null Kind = iota
	Scalar
	Mapping
	Sequence
)

// String returns the lower-case kind name used in log and error messages.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case Mapping:
		return "mapping"
	case Sequence:
		return "sequence"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindOf reports the kind of v. Only map[string]any and []any count as
// containers; run FromDecoded first when v comes straight from a decoder.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case map[string]any:
		return Mapping
	case []any:
		return Sequence
	default:
		return Scalar
	}
}

// FromDecoded returns v rebuilt from the four canonical kinds.
//
// Mappings with non-string keys are re-keyed with fmt.Sprint, typed maps and
// slices become map[string]any and []any, sized integers become int (float64
// when they do not fit) and values implementing encoding.TextMarshaler, such as
// time.Time and TOML local dates, become their text form.
func FromDecoded(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = FromDecoded(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = FromDecoded(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = FromDecoded(e)
		}
		return out
	case string, bool, int, float64:
		return t
	case int8:
		return int(t)
	case int16:
		return int(t)
	case int32:
		return int(t)
	case int64:
		return fromInt64(t)
	case uint8:
		return int(t)
	case uint16:
		return int(t)
	case uint32:
		return fromInt64(int64(t))
	case uint:
		return fromUint64(uint64(t))
	case uint64:
		return fromUint64(t)
	case float32:
		return float64(t)
	case encoding.TextMarshaler:
		text, err := t.MarshalText()
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(text)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = FromDecoded(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = FromDecoded(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

func fromInt64(n int64) any {
	if n < math.MinInt || n > math.MaxInt {
		return float64(n)
	}
	return int(n)
}

func fromUint64(n uint64) any {
	if n > math.MaxInt {
		return float64(n)
	}
	return int(n)
}

// Clone returns a deep copy of v. Mappings and sequences are copied
// recursively; scalars are returned as-is.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return CloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}

// CloneMap is Clone for a mapping. A nil mapping clones to nil.
func CloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, e := range m {
		out[k] = Clone(e)
	}
	return out
}

// Equal reports whether a and b are structurally equal: same kind, same keys,
// same elements in the same order, equal scalars. A nil mapping or sequence
// equals an empty one; untyped nil is Null and equals neither.
func Equal(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case Null:
		return true
	case Mapping:
		ma, mb := a.(map[string]any), b.(map[string]any)
		if len(ma) != len(mb) {
			return false
		}
		for k, va := range ma {
			vb, ok := mb[k]
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	case Sequence:
		sa, sb := a.([]any), b.([]any)
		if len(sa) != len(sb) {
			return false
		}
		for i := range sa {
			if !Equal(sa[i], sb[i]) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}
