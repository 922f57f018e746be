package encoder

import (
	"math"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/go-toon/toon/pkg/toonopts"
	"github.com/go-toon/toon/pkg/value"
)

func encode(t *testing.T, v *value.Value, opts toonopts.Options) string {
	t.Helper()
	out, err := New(opts).Encode(v)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	return string(out)
}

func TestEncodeInlinePrimitiveArray(t *testing.T) {
	root := value.NewObject()
	root.ObjectSet("items", value.ArrayOf(value.Int(1), value.Int(2), value.Int(3)))
	got := encode(t, root, toonopts.Default())
	if got != "items[3]: 1,2,3\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeTabularArray(t *testing.T) {
	row := func(id int64, name string) *value.Value {
		o := value.NewObject()
		o.ObjectSet("id", value.Int(id))
		o.ObjectSet("name", value.String(name))
		return o
	}
	root := value.NewObject()
	root.ObjectSet("users", value.ArrayOf(row(1, "Alice"), row(2, "Bob")))
	got := encode(t, root, toonopts.Default())
	want := "users[2]{id,name}:\n  1,Alice\n  2,Bob\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeEmptyArray(t *testing.T) {
	root := value.NewObject()
	root.ObjectSet("items", value.NewArray())
	got := encode(t, root, toonopts.Default())
	if got != "items[0]:\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeEmptyObject(t *testing.T) {
	root := value.NewObject()
	root.ObjectSet("meta", value.NewObject())
	got := encode(t, root, toonopts.Default())
	if got != "meta:\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeKeyFoldingSingleChild(t *testing.T) {
	leaf := value.NewObject()
	leaf.ObjectSet("c", value.Int(1))
	mid := value.NewObject()
	mid.ObjectSet("b", leaf)
	root := value.NewObject()
	root.ObjectSet("a", mid)

	opts := toonopts.New(toonopts.WithKeyFolding(toonopts.KeyFoldingSafe))
	got := encode(t, root, opts)
	if got != "a.b.c: 1\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeKeyFoldingFlattenDepth(t *testing.T) {
	leaf := value.NewObject()
	leaf.ObjectSet("c", value.Int(1))
	mid := value.NewObject()
	mid.ObjectSet("b", leaf)
	root := value.NewObject()
	root.ObjectSet("a", mid)

	opts := toonopts.New(toonopts.WithKeyFolding(toonopts.KeyFoldingSafe), toonopts.WithFlattenDepth(2))
	got := encode(t, root, opts)
	if got != "a.b:\n  c: 1\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeKeyFoldingStopsAtMultiChild(t *testing.T) {
	inner := value.NewObject()
	inner.ObjectSet("b1", value.Int(1))
	inner.ObjectSet("b2", value.Int(2))
	root := value.NewObject()
	root.ObjectSet("a", inner)

	opts := toonopts.New(toonopts.WithKeyFolding(toonopts.KeyFoldingSafe))
	got := encode(t, root, opts)
	want := "a:\n  b1: 1\n  b2: 2\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEncodeDelimiterOverride(t *testing.T) {
	root := value.ArrayOf(value.String("Hello, World"), value.String("Coordinates: 1,2"))
	opts := toonopts.New(toonopts.WithDelimiter('|'))
	got := encode(t, root, opts)
	if got != "[2|]: Hello, World|\"Coordinates: 1,2\"\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeNonFiniteFloatNormalisesToNull(t *testing.T) {
	root := value.NewObject()
	root.ObjectSet("f", value.Float(math.Inf(1)))
	got := encode(t, root, toonopts.Default())
	if got != "f: null\n" {
		t.Fatalf("got %q", got)
	}
}

func TestEncodeExpandedListOfObjects(t *testing.T) {
	item := func(tags *value.Value, id int64) *value.Value {
		o := value.NewObject()
		o.ObjectSet("tags", tags)
		o.ObjectSet("id", value.Int(id))
		return o
	}
	root := value.NewObject()
	root.ObjectSet("items", value.ArrayOf(
		item(value.ArrayOf(value.String("a"), value.String("b")), 1),
		item(value.ArrayOf(value.String("c")), 2),
	))
	got := encode(t, root, toonopts.Default())
	snaps.MatchSnapshot(t, "expanded_list_with_array_valued_first_field", got)
}

func TestEncodeStringQuoting(t *testing.T) {
	root := value.NewObject()
	root.ObjectSet("a", value.String("true"))
	root.ObjectSet("b", value.String("hello world"))
	root.ObjectSet("c", value.String("has: colon"))
	got := encode(t, root, toonopts.Default())
	snaps.MatchSnapshot(t, "quoted_strings", got)
}
