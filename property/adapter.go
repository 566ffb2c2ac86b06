package property

import (
	"fmt"
	"math"
)

// FromAny converts a Go value into a typed Value.
//
// This exists as an adapter layer for GeoJSON input, whose property bags
// decode to map[string]any.
func FromAny(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Float(x), nil
	case float32:
		return Float(float64(x)), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return Int(int64(x)), nil
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			// Avoid silently truncating large values.
			return Value{}, fmt.Errorf("property uint64 out of range: %d", x)
		}
		return Int(int64(x)), nil
	case []Value:
		return Array(x), nil
	case []any:
		arr := make([]Value, len(x))
		for i := range x {
			vv, err := FromAny(x[i])
			if err != nil {
				return Value{}, err
			}
			arr[i] = vv
		}
		return Array(arr), nil
	case []string:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = String(x[i])
		}
		return Array(arr), nil
	case []int:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Int(int64(x[i]))
		}
		return Array(arr), nil
	case []float64:
		arr := make([]Value, len(x))
		for i := range x {
			arr[i] = Float(x[i])
		}
		return Array(arr), nil
	case map[string]Value:
		return Object(x), nil
	case map[string]any:
		obj := make(map[string]Value, len(x))
		for k, mv := range x {
			vv, err := FromAny(mv)
			if err != nil {
				return Value{}, err
			}
			obj[k] = vv
		}
		return Object(obj), nil
	default:
		return Value{}, fmt.Errorf("unsupported property value type %T", v)
	}
}

// DocumentFromAny converts a decoded map[string]any property bag to a typed Document.
func DocumentFromAny(m map[string]any) (Document, error) {
	d := make(Document, len(m))
	for k, v := range m {
		vv, err := FromAny(v)
		if err != nil {
			return nil, err
		}
		d[k] = vv
	}
	return d, nil
}

// ToAny converts a typed Value back into a plain Go value.
//
// Round-trips with FromAny for everything GeoJSON can express; integers come
// back as int64 rather than float64.
func ToAny(v Value) any {
	switch v.Kind {
	case KindNull:
		return nil
	case KindInt:
		return v.I64
	case KindFloat:
		return v.F64
	case KindString:
		return v.StringValue()
	case KindBool:
		return v.B
	case KindArray:
		arr := make([]any, len(v.A))
		for i := range v.A {
			arr[i] = ToAny(v.A[i])
		}
		return arr
	case KindObject:
		obj := make(map[string]any, len(v.O))
		for k, val := range v.O {
			obj[k] = ToAny(val)
		}
		return obj
	default:
		return nil
	}
}

// DocumentToAny converts a typed Document back to a plain map[string]any bag.
func DocumentToAny(d Document) map[string]any {
	if d == nil {
		return nil
	}
	m := make(map[string]any, len(d))
	for k, v := range d {
		m[k] = ToAny(v)
	}
	return m
}
