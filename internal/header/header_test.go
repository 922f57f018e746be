package header

import (
	"reflect"
	"testing"
)

func TestParseInlineHeader(t *testing.T) {
	h, ok := Parse("items[3]: 1,2,3", ',')
	if !ok {
		t.Fatalf("expected header to parse")
	}
	want := Header{Key: "items", HasKey: true, Count: 3, Delimiter: ',', Rest: " 1,2,3"}
	if !reflect.DeepEqual(h, want) {
		t.Fatalf("got %+v, want %+v", h, want)
	}
}

func TestParseBareHeader(t *testing.T) {
	h, ok := Parse("[0]:", ',')
	if !ok {
		t.Fatalf("expected header to parse")
	}
	if h.HasKey || h.Count != 0 || h.Rest != "" {
		t.Fatalf("got %+v", h)
	}
}

func TestParseTabularHeader(t *testing.T) {
	h, ok := Parse("users[2]{id,name}:", ',')
	if !ok {
		t.Fatalf("expected header to parse")
	}
	if !h.HasFields || !reflect.DeepEqual(h.Fields, []string{"id", "name"}) {
		t.Fatalf("got fields %+v", h.Fields)
	}
	if h.Count != 2 || h.Key != "users" {
		t.Fatalf("got %+v", h)
	}
}

func TestParseHeaderWithDelimiterOverride(t *testing.T) {
	h, ok := Parse("[2|]: Hello, World|Coordinates: 1,2", ',')
	if !ok {
		t.Fatalf("expected header to parse")
	}
	if !h.HasDelim || h.Delimiter != '|' {
		t.Fatalf("expected pipe delimiter override, got %+v", h)
	}
	if h.Rest != " Hello, World|Coordinates: 1,2" {
		t.Fatalf("unexpected rest: %q", h.Rest)
	}
}

func TestParseRejectsNonHeaderLines(t *testing.T) {
	cases := []string{
		"key: value",
		"",
		"just text",
		"key[: broken",
		`key[3`, // missing closing bracket
	}
	for _, c := range cases {
		if _, ok := Parse(c, ','); ok {
			t.Errorf("Parse(%q) unexpectedly succeeded", c)
		}
	}
}

func TestParseQuotedKey(t *testing.T) {
	h, ok := Parse(`"weird key"[1]: x`, ',')
	if !ok {
		t.Fatalf("expected header to parse")
	}
	if h.Key != "weird key" {
		t.Fatalf("got key %q", h.Key)
	}
}

func TestParseFieldsWithCustomDelimiter(t *testing.T) {
	h, ok := Parse("rows[2|]{a|b}:", ',')
	if !ok {
		t.Fatalf("expected header to parse")
	}
	if !reflect.DeepEqual(h.Fields, []string{"a", "b"}) {
		t.Fatalf("got fields %+v", h.Fields)
	}
}
