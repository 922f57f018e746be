package value

import "testing"

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindNull, "Null"},
		{KindBool, "Bool"},
		{KindInt, "Int"},
		{KindFloat, "Float"},
		{KindString, "String"},
		{KindArray, "Array"},
		{KindObject, "Object"},
		{Kind(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestValueConstructors(t *testing.T) {
	if kind := Null().Kind(); kind != KindNull {
		t.Fatalf("Null kind = %v, want %v", kind, KindNull)
	}
	if kind := Bool(true).Kind(); kind != KindBool {
		t.Fatalf("Bool kind = %v, want %v", kind, KindBool)
	}
	if kind := Float(1.23).Kind(); kind != KindFloat {
		t.Fatalf("Float kind = %v, want %v", kind, KindFloat)
	}
	if kind := Int(42).Kind(); kind != KindInt {
		t.Fatalf("Int kind = %v, want %v", kind, KindInt)
	}
	if kind := String("foo").Kind(); kind != KindString {
		t.Fatalf("String kind = %v, want %v", kind, KindString)
	}
	if kind := NewArray().Kind(); kind != KindArray {
		t.Fatalf("NewArray kind = %v, want %v", kind, KindArray)
	}
	if kind := NewObject().Kind(); kind != KindObject {
		t.Fatalf("NewObject kind = %v, want %v", kind, KindObject)
	}
	if (*Value)(nil).Kind() != KindNull {
		t.Fatalf("nil Kind() should report KindNull")
	}
}

func TestObjectOperations(t *testing.T) {
	obj := NewObject()
	obj.ObjectSet("foo", String("bar"))
	obj.ObjectSet("baz", Int(7))
	obj.ObjectSet("foo", String("updated"))

	if got := obj.ObjectGet("foo"); got == nil || got.Kind() != KindString || got.StringValue() != "updated" {
		t.Fatalf("ObjectGet foo = %#v, want updated KindString", got)
	}
	if obj.ObjectGet("missing") != nil {
		t.Fatalf("ObjectGet missing should be nil")
	}
	keys := obj.ObjectKeys()
	wantOrder := []string{"foo", "baz"}
	if len(keys) != len(wantOrder) {
		t.Fatalf("ObjectKeys length = %d, want %d", len(keys), len(wantOrder))
	}
	for i, key := range wantOrder {
		if keys[i] != key {
			t.Fatalf("ObjectKeys[%d] = %s, want %s", i, keys[i], key)
		}
	}
	if !obj.ObjectDelete("foo") {
		t.Fatalf("ObjectDelete foo = false, want true")
	}
	if obj.ObjectGet("foo") != nil {
		t.Fatalf("foo should be removed")
	}
	if obj.ObjectDelete("does-not-exist") {
		t.Fatalf("delete missing key should be false")
	}
}

func TestArrayOperations(t *testing.T) {
	arr := NewArray()
	arr.ArrayAppend(Int(1))
	arr.ArrayAppend(Int(2))
	arr.ArrayAppend(Int(3))

	if got := arr.ArrayLen(); got != 3 {
		t.Fatalf("ArrayLen = %d, want 3", got)
	}
	if elem := arr.ArrayGet(1); elem == nil || elem.Kind() != KindInt || elem.IntValue() != 2 {
		t.Fatalf("ArrayGet[1] = %#v, want Int(2)", elem)
	}
	if arr.ArrayGet(10) != nil {
		t.Fatalf("ArrayGet out of bounds should be nil")
	}

	elements := arr.ArrayElements()
	if len(elements) != arr.ArrayLen() {
		t.Fatalf("ArrayElements length = %d, want %d", len(elements), arr.ArrayLen())
	}
	elements[0] = Int(99)
	if arr.ArrayGet(0).IntValue() != 1 {
		t.Fatalf("ArrayElements should return a copy, mutation leaked into array")
	}
}

func TestEqual(t *testing.T) {
	a := NewObject()
	a.ObjectSet("a", Int(1))
	a.ObjectSet("b", ArrayOf(String("x"), Bool(true), Null()))

	b := NewObject()
	b.ObjectSet("a", Int(1))
	b.ObjectSet("b", ArrayOf(String("x"), Bool(true), Null()))

	if !Equal(a, b) {
		t.Fatalf("expected a and b to be equal")
	}

	c := NewObject()
	c.ObjectSet("b", ArrayOf(String("x"), Bool(true), Null()))
	c.ObjectSet("a", Int(1))
	if Equal(a, c) {
		t.Fatalf("expected field order to matter for Equal")
	}

	if !Equal(Float(1), Float(1.0)) {
		t.Fatalf("expected equal floats to compare equal")
	}
	if Equal(Int(1), Float(1)) {
		t.Fatalf("Int and Float of the same magnitude must not compare equal")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	obj := NewObject()
	obj.ObjectSet("z", Int(1))
	obj.ObjectSet("a", String("hello"))
	obj.ObjectSet("nested", ArrayOf(Int(1), Float(2.5), Bool(false), Null()))

	data, err := obj.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var got Value
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}

	if !Equal(obj, &got) {
		t.Fatalf("round trip mismatch: %s", data)
	}

	wantKeys := []string{"z", "a", "nested"}
	for i, k := range got.ObjectKeys() {
		if k != wantKeys[i] {
			t.Fatalf("key order not preserved: got %v, want %v", got.ObjectKeys(), wantKeys)
		}
	}
}

func TestIsPrimitive(t *testing.T) {
	primitives := []*Value{Null(), Bool(true), Int(1), Float(1), String("s")}
	for _, p := range primitives {
		if !p.IsPrimitive() {
			t.Fatalf("%v should be primitive", p.Kind())
		}
	}
	nonPrimitives := []*Value{NewArray(), NewObject()}
	for _, p := range nonPrimitives {
		if p.IsPrimitive() {
			t.Fatalf("%v should not be primitive", p.Kind())
		}
	}
}
