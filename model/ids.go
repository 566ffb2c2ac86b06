package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// IDKind identifies the concrete type stored in a FeatureID.
type IDKind uint8

const (
	// IDKindInvalid represents an unresolved or missing identifier.
	IDKindInvalid IDKind = iota
	// IDKindInt represents an integer identifier.
	IDKindInt
	// IDKindString represents a string identifier.
	IDKindString
)

// FeatureID is the stable identifier of a feature within a source.
//
// GeoJSON allows both numeric and string ids, and the two kinds never
// compare equal: integer 5 and string "5" are distinct keys. FeatureID is
// comparable and can be used directly as a map key.
type FeatureID struct {
	kind IDKind
	i    int64
	s    string
}

// IntID returns an integer FeatureID.
func IntID(v int64) FeatureID { return FeatureID{kind: IDKindInt, i: v} }

// StringID returns a string FeatureID.
func StringID(s string) FeatureID { return FeatureID{kind: IDKindString, s: s} }

// Kind returns the kind of the identifier.
func (id FeatureID) Kind() IDKind { return id.kind }

// Valid reports whether the identifier resolved to a concrete value.
func (id FeatureID) Valid() bool { return id.kind != IDKindInvalid }

// Int64 returns the integer value if Kind is IDKindInt.
func (id FeatureID) Int64() (int64, bool) {
	if id.kind != IDKindInt {
		return 0, false
	}
	return id.i, true
}

// StringValue returns the string value if Kind is IDKindString.
func (id FeatureID) StringValue() (string, bool) {
	if id.kind != IDKindString {
		return "", false
	}
	return id.s, true
}

// String returns a human-readable representation.
func (id FeatureID) String() string {
	switch id.kind {
	case IDKindInt:
		return strconv.FormatInt(id.i, 10)
	case IDKindString:
		return id.s
	default:
		return "<invalid>"
	}
}

// MarshalJSON implements json.Marshaler.
//
// Integer ids serialize as JSON numbers and string ids as JSON strings, so
// diffs round-trip through the GeoJSON wire shape unchanged.
func (id FeatureID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case IDKindInt:
		return json.Marshal(id.i)
	case IDKindString:
		return json.Marshal(id.s)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *FeatureID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = FeatureID{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = StringID(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	i := int64(f)
	if float64(i) != f {
		return fmt.Errorf("feature id must be an integer or string, got %v", f)
	}
	*id = IntID(i)
	return nil
}

// IDFromAny resolves a decoded JSON value into a FeatureID.
//
// Numbers must be integral; anything else yields the invalid id rather than
// an error, matching the silently-skipped semantics of diff application.
func IDFromAny(v any) FeatureID {
	switch x := v.(type) {
	case nil:
		return FeatureID{}
	case FeatureID:
		return x
	case string:
		return StringID(x)
	case int:
		return IntID(int64(x))
	case int32:
		return IntID(int64(x))
	case int64:
		return IntID(x)
	case uint32:
		return IntID(int64(x))
	case uint64:
		return IntID(int64(x))
	case float64:
		i := int64(x)
		if float64(i) != x {
			return FeatureID{}
		}
		return IntID(i)
	case float32:
		return IDFromAny(float64(x))
	default:
		return FeatureID{}
	}
}
