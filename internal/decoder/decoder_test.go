package decoder

import (
	"testing"

	"github.com/go-toon/toon/pkg/toonopts"
	"github.com/go-toon/toon/pkg/value"
)

func decode(t *testing.T, doc string, opts toonopts.Options) *value.Value {
	t.Helper()
	v, err := New([]byte(doc), opts).Decode()
	if err != nil {
		t.Fatalf("unexpected decode error for %q: %v", doc, err)
	}
	return v
}

func TestDecodeInlinePrimitiveArray(t *testing.T) {
	v := decode(t, "items[3]: 1,2,3\n", toonopts.Default())
	items := v.ObjectGet("items")
	if items.ArrayLen() != 3 {
		t.Fatalf("got len %d", items.ArrayLen())
	}
	for i, want := range []int64{1, 2, 3} {
		if items.ArrayGet(i).IntValue() != want {
			t.Fatalf("element %d = %v, want %d", i, items.ArrayGet(i), want)
		}
	}
}

func TestDecodeTabularArray(t *testing.T) {
	v := decode(t, "users[2]{id,name}:\n  1,Alice\n  2,Bob\n", toonopts.Default())
	users := v.ObjectGet("users")
	if users.ArrayLen() != 2 {
		t.Fatalf("got len %d", users.ArrayLen())
	}
	row0 := users.ArrayGet(0)
	if row0.ObjectGet("id").IntValue() != 1 || row0.ObjectGet("name").StringValue() != "Alice" {
		t.Fatalf("row0 = %+v", row0)
	}
	row1 := users.ArrayGet(1)
	if row1.ObjectGet("id").IntValue() != 2 || row1.ObjectGet("name").StringValue() != "Bob" {
		t.Fatalf("row1 = %+v", row1)
	}
}

func TestDecodeInlineCountMismatchStrict(t *testing.T) {
	_, err := New([]byte("items[3]: 1,2\n"), toonopts.Default()).Decode()
	if err == nil {
		t.Fatalf("expected a count mismatch error")
	}
}

func TestDecodeInlineCountMismatchNonStrict(t *testing.T) {
	opts := toonopts.New(toonopts.WithStrict(false))
	v := decode(t, "items[3]: 1,2\n", opts)
	items := v.ObjectGet("items")
	if items.ArrayLen() != 2 {
		t.Fatalf("non-strict decode should keep the actual count, got %d", items.ArrayLen())
	}
}

func TestDecodeExpandPaths(t *testing.T) {
	opts := toonopts.New(toonopts.WithExpandPaths(toonopts.ExpandPathsSafe))
	v := decode(t, "server.port: 8080\nserver.host: localhost\n", opts)
	server := v.ObjectGet("server")
	if server.Kind() != value.KindObject {
		t.Fatalf("expected server to be an object, got %v", server.Kind())
	}
	if server.ObjectGet("port").IntValue() != 8080 {
		t.Fatalf("port = %v", server.ObjectGet("port"))
	}
	if server.ObjectGet("host").StringValue() != "localhost" {
		t.Fatalf("host = %v", server.ObjectGet("host"))
	}
}

func TestDecodeQuotedKeyNotExpanded(t *testing.T) {
	opts := toonopts.New(toonopts.WithExpandPaths(toonopts.ExpandPathsSafe))
	v := decode(t, `"server.port": 8080`+"\n", opts)
	if v.ObjectGet("server") != nil {
		t.Fatalf("quoted key must not be expanded")
	}
	if v.ObjectGet("server.port").IntValue() != 8080 {
		t.Fatalf("expected literal key server.port, got %+v", v)
	}
}

func TestDecodeDelimiterOverride(t *testing.T) {
	opts := toonopts.New(toonopts.WithDelimiter('|'))
	v := decode(t, "[2|]: Hello, World|Coordinates: 1,2\n", opts)
	if v.ArrayLen() != 2 {
		t.Fatalf("got len %d", v.ArrayLen())
	}
	if v.ArrayGet(0).StringValue() != "Hello, World" {
		t.Fatalf("element 0 = %+v", v.ArrayGet(0))
	}
	if v.ArrayGet(1).StringValue() != "Coordinates: 1,2" {
		t.Fatalf("element 1 = %+v", v.ArrayGet(1))
	}
}

func TestDecodeLeadingZeroIsString(t *testing.T) {
	v := decode(t, "0123\n", toonopts.Default())
	if v.Kind() != value.KindString || v.StringValue() != "0123" {
		t.Fatalf("got %+v", v)
	}
}

func TestDecodeNestedObject(t *testing.T) {
	v := decode(t, "a:\n  b: 1\n  c: 2\n", toonopts.Default())
	a := v.ObjectGet("a")
	if a.ObjectGet("b").IntValue() != 1 || a.ObjectGet("c").IntValue() != 2 {
		t.Fatalf("got %+v", a)
	}
}

func TestDecodeExpandedListOfPrimitives(t *testing.T) {
	v := decode(t, "tags[2]:\n  - red\n  - blue\n", toonopts.Default())
	tags := v.ObjectGet("tags")
	if tags.ArrayLen() != 2 || tags.ArrayGet(0).StringValue() != "red" || tags.ArrayGet(1).StringValue() != "blue" {
		t.Fatalf("got %+v", tags)
	}
}

func TestDecodeExpandedListOfObjects(t *testing.T) {
	v := decode(t, "items[2]:\n  - id: 1\n    name: a\n  - id: 2\n    name: b\n", toonopts.Default())
	items := v.ObjectGet("items")
	if items.ArrayLen() != 2 {
		t.Fatalf("got len %d", items.ArrayLen())
	}
	first := items.ArrayGet(0)
	if first.ObjectGet("id").IntValue() != 1 || first.ObjectGet("name").StringValue() != "a" {
		t.Fatalf("first item = %+v", first)
	}
}

func TestDecodeBlankLineInsideArrayStrictFails(t *testing.T) {
	_, err := New([]byte("tags[2]:\n  - red\n\n  - blue\n"), toonopts.Default()).Decode()
	if err == nil {
		t.Fatalf("expected a blank-line-inside-array error")
	}
}

func TestDecodeMissingColonStrictFails(t *testing.T) {
	_, err := New([]byte("a: 1\nno colon here\n"), toonopts.Default()).Decode()
	if err == nil {
		t.Fatalf("expected a missing colon error")
	}
}

func TestDecodeBoolAndNullLiterals(t *testing.T) {
	v := decode(t, "a: true\nb: false\nc: null\n", toonopts.Default())
	if !v.ObjectGet("a").BoolValue() {
		t.Fatalf("a should be true")
	}
	if v.ObjectGet("b").BoolValue() {
		t.Fatalf("b should be false")
	}
	if !v.ObjectGet("c").IsNull() {
		t.Fatalf("c should be null")
	}
}

func TestDecodeEmptyObjectField(t *testing.T) {
	v := decode(t, "a:\nb: 1\n", toonopts.Default())
	if v.ObjectGet("a").Kind() != value.KindObject || v.ObjectGet("a").ObjectLen() != 0 {
		t.Fatalf("a should be an empty object, got %+v", v.ObjectGet("a"))
	}
	if v.ObjectGet("b").IntValue() != 1 {
		t.Fatalf("b = %+v", v.ObjectGet("b"))
	}
}

func TestDecodeQuotedStringWithEscapes(t *testing.T) {
	v := decode(t, `s: "line\nbreak"`+"\n", toonopts.Default())
	if v.ObjectGet("s").StringValue() != "line\nbreak" {
		t.Fatalf("got %q", v.ObjectGet("s").StringValue())
	}
}
