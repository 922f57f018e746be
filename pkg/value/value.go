// Package value provides the in-memory representation of the JSON-shaped
// data model TOON documents encode and decode: a tagged sum of seven kinds
// with an insertion-ordered Object.
package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Kind identifies which of the seven Value variants a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// String returns a human-readable form of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// Value represents a value in the JSON data model shared by TOON and JSON.
// It intentionally avoids interface{} for the primitive payloads so callers
// get a type-safe, allocation-light tree.
type Value struct {
	kind Kind

	// Object fields
	objEntries map[string]*Value
	objKeys    []string // preserves insertion order

	// Array elements
	arrElems []*Value

	// Primitive payloads
	str   string
	flt   float64
	i64   int64
	bool_ bool
}

// Kind returns the kind of the value. A nil receiver reports KindNull, so
// callers may treat "absent" and "explicit null" the same way.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// Null returns the sole inhabitant of the Null kind.
func Null() *Value { return &Value{kind: KindNull} }

// Bool returns a Bool value.
func Bool(b bool) *Value { return &Value{kind: KindBool, bool_: b} }

// Int returns a signed 64-bit Int value.
func Int(n int64) *Value { return &Value{kind: KindInt, i64: n} }

// Float returns a Float value. Non-finite inputs are not rejected here;
// normalization to Null happens at encode time.
func Float(f float64) *Value { return &Value{kind: KindFloat, flt: f} }

// String returns a String value.
func String(s string) *Value { return &Value{kind: KindString, str: s} }

// NewArray returns an empty Array value.
func NewArray() *Value {
	return &Value{kind: KindArray, arrElems: make([]*Value, 0)}
}

// ArrayOf returns an Array value containing elems in order.
func ArrayOf(elems ...*Value) *Value {
	v := &Value{kind: KindArray, arrElems: make([]*Value, len(elems))}
	copy(v.arrElems, elems)
	return v
}

// NewObject returns an empty Object value.
func NewObject() *Value {
	return &Value{
		kind:       KindObject,
		objEntries: make(map[string]*Value),
		objKeys:    make([]string, 0),
	}
}

// IsNull reports whether v is nil or an explicit Null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// BoolValue returns the boolean payload, or false if v is not a Bool.
func (v *Value) BoolValue() bool {
	if v == nil || v.kind != KindBool {
		return false
	}
	return v.bool_
}

// IntValue returns the int64 payload, or zero if v is not an Int.
func (v *Value) IntValue() int64 {
	if v == nil || v.kind != KindInt {
		return 0
	}
	return v.i64
}

// FloatValue returns the float64 payload, or zero if v is not a Float.
func (v *Value) FloatValue() float64 {
	if v == nil || v.kind != KindFloat {
		return 0
	}
	return v.flt
}

// StringValue returns the string payload, or "" if v is not a String.
func (v *Value) StringValue() string {
	if v == nil || v.kind != KindString {
		return ""
	}
	return v.str
}

// ObjectGet returns the value associated with key, or nil if v is not an
// Object or key is absent.
func (v *Value) ObjectGet(key string) *Value {
	if v == nil || v.kind != KindObject {
		return nil
	}
	return v.objEntries[key]
}

// ObjectSet associates key with child, preserving first-insertion order. A
// second Set of the same key replaces the value in place without moving it.
func (v *Value) ObjectSet(key string, child *Value) {
	if v == nil || v.kind != KindObject {
		return
	}
	if _, exists := v.objEntries[key]; !exists {
		v.objKeys = append(v.objKeys, key)
	}
	v.objEntries[key] = child
}

// ObjectDelete removes key if present, returning whether it was removed.
func (v *Value) ObjectDelete(key string) bool {
	if v == nil || v.kind != KindObject {
		return false
	}
	if _, exists := v.objEntries[key]; !exists {
		return false
	}
	delete(v.objEntries, key)
	for i, k := range v.objKeys {
		if k == key {
			v.objKeys = append(v.objKeys[:i], v.objKeys[i+1:]...)
			break
		}
	}
	return true
}

// ObjectKeys returns the object's keys in insertion order.
func (v *Value) ObjectKeys() []string {
	if v == nil || v.kind != KindObject {
		return nil
	}
	keys := make([]string, len(v.objKeys))
	copy(keys, v.objKeys)
	return keys
}

// ObjectLen returns the number of fields, or zero if v is not an Object.
func (v *Value) ObjectLen() int {
	if v == nil || v.kind != KindObject {
		return 0
	}
	return len(v.objKeys)
}

// ArrayLen returns the number of elements, or zero if v is not an Array.
func (v *Value) ArrayLen() int {
	if v == nil || v.kind != KindArray {
		return 0
	}
	return len(v.arrElems)
}

// ArrayGet returns the element at index, or nil if out of bounds.
func (v *Value) ArrayGet(index int) *Value {
	if v == nil || v.kind != KindArray {
		return nil
	}
	if index < 0 || index >= len(v.arrElems) {
		return nil
	}
	return v.arrElems[index]
}

// ArrayAppend appends child to the array.
func (v *Value) ArrayAppend(child *Value) {
	if v == nil || v.kind != KindArray {
		return
	}
	v.arrElems = append(v.arrElems, child)
}

// ArrayElements returns a shallow copy of the array's element slice.
func (v *Value) ArrayElements() []*Value {
	if v == nil || v.kind != KindArray {
		return nil
	}
	elements := make([]*Value, len(v.arrElems))
	copy(elements, v.arrElems)
	return elements
}

// IsPrimitive reports whether v is one of Null, Bool, Int, Float, or
// String — the kinds allowed as array/tabular cell values and inline
// scalars (the tabular eligibility check).
func (v *Value) IsPrimitive() bool {
	switch v.Kind() {
	case KindNull, KindBool, KindInt, KindFloat, KindString:
		return true
	default:
		return false
	}
}

// Equal reports deep structural equality: same kind, same payload, same
// object field order, same array order. Used by round-trip tests
// (decode(encode(v)) == v).
func Equal(a, b *Value) bool {
	ak, bk := a.Kind(), b.Kind()
	if ak != bk {
		return false
	}
	switch ak {
	case KindNull:
		return true
	case KindBool:
		return a.BoolValue() == b.BoolValue()
	case KindInt:
		return a.IntValue() == b.IntValue()
	case KindFloat:
		af, bf := a.FloatValue(), b.FloatValue()
		if math.IsNaN(af) && math.IsNaN(bf) {
			return true
		}
		return af == bf
	case KindString:
		return a.StringValue() == b.StringValue()
	case KindArray:
		ae, be := a.ArrayElements(), b.ArrayElements()
		if len(ae) != len(be) {
			return false
		}
		for i := range ae {
			if !Equal(ae[i], be[i]) {
				return false
			}
		}
		return true
	case KindObject:
		ak2, bk2 := a.ObjectKeys(), b.ObjectKeys()
		if len(ak2) != len(bk2) {
			return false
		}
		for i := range ak2 {
			if ak2[i] != bk2[i] {
				return false
			}
			if !Equal(a.ObjectGet(ak2[i]), b.ObjectGet(bk2[i])) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// MarshalJSON implements json.Marshaler, preserving object field order —
// encoding/json's map-based marshaling would sort keys alphabetically,
// which would violate the insertion-order invariant on object fields.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		if v.bool_ {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case KindInt:
		return json.Marshal(v.i64)
	case KindFloat:
		if math.IsNaN(v.flt) || math.IsInf(v.flt, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.flt)
	case KindString:
		return json.Marshal(v.str)
	case KindArray:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range v.arrElems {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := elem.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindObject:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, key := range v.objKeys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(key)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := v.objEntries[key].MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler, building a Value tree from
// arbitrary JSON. Object key order follows the order keys appear in the
// source document (via json.Decoder token streaming), not map iteration.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	parsed, err := decodeJSONValue(dec)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

func decodeJSONValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return Float(f), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '[':
			arr := NewArray()
			for dec.More() {
				elem, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr.ArrayAppend(elem)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("value: unexpected object key token %v", keyTok)
				}
				child, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				obj.ObjectSet(key, child)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		default:
			return nil, fmt.Errorf("value: unexpected delimiter %v", t)
		}
	default:
		return nil, fmt.Errorf("value: unexpected JSON token %T", tok)
	}
}
