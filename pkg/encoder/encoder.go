// Package encoder implements the Value-kind-dispatched emitter (component
// E): primitive canonicalisation, array shape selection, key folding, and
// the indentation writer.
package encoder

import (
	"fmt"
	"strings"

	"github.com/go-toon/toon/pkg/toonopts"
	"github.com/go-toon/toon/pkg/value"
)

// Encoder renders a Value tree to its canonical TOON form under opts.
type Encoder struct {
	opts toonopts.Options
}

// New builds an Encoder under opts.
func New(opts toonopts.Options) *Encoder {
	return &Encoder{opts: opts}
}

// Encode renders v as a complete TOON document.
func (e *Encoder) Encode(v *value.Value) ([]byte, error) {
	var b strings.Builder
	switch v.Kind() {
	case value.KindArray:
		if err := e.writeArrayField(&b, "", v, 0); err != nil {
			return nil, err
		}
	case value.KindObject:
		if err := e.writeObjectFields(&b, v, 0); err != nil {
			return nil, err
		}
	default:
		b.WriteString(e.encodePrimitive(v))
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func (e *Encoder) writeObjectFields(b *strings.Builder, obj *value.Value, depth int) error {
	return e.writeFields(b, obj, obj.ObjectKeys(), depth)
}

func (e *Encoder) writeFields(b *strings.Builder, obj *value.Value, keys []string, depth int) error {
	for _, k := range keys {
		v := obj.ObjectGet(k)
		if e.canStartFold(keys, k, v) {
			prefix, leaf := e.foldChain(k, v)
			if err := e.writeField(b, prefix, leaf, depth); err != nil {
				return err
			}
			continue
		}
		if err := e.writeField(b, k, v, depth); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeRemainingFields(b *strings.Builder, obj *value.Value, keys []string, depth int) error {
	return e.writeFields(b, obj, keys, depth+1)
}

// canStartFold decides whether field (k, v) is eligible to begin a folded
// dotted chain: safe mode, v a non-empty Object, k a foldable segment, and
// no sibling key already shadows k with a "k." prefix.
func (e *Encoder) canStartFold(siblingKeys []string, k string, v *value.Value) bool {
	if e.opts.KeyFolding != toonopts.KeyFoldingSafe {
		return false
	}
	if v.Kind() != value.KindObject || v.ObjectLen() == 0 {
		return false
	}
	if !toonopts.IsFoldableSegment(k) {
		return false
	}
	for _, other := range siblingKeys {
		if other != k && strings.HasPrefix(other, k+".") {
			return false
		}
	}
	return true
}

// foldChain extends key/v into the longest single-child dotted chain
// flatten_depth allows, returning the joined key and the terminal value to
// encode beneath it. Folding is restricted to single-child object chains:
// a multi-child object encountered mid-chain ends the fold and is emitted
// as a normal nested object under the accumulated prefix.
func (e *Encoder) foldChain(key string, v *value.Value) (string, *value.Value) {
	segments := []string{key}
	cur := v
	for cur.Kind() == value.KindObject && cur.ObjectLen() == 1 {
		childKey := cur.ObjectKeys()[0]
		if !toonopts.IsFoldableSegment(childKey) {
			break
		}
		if e.opts.FlattenDepth != toonopts.Unbounded && len(segments)+1 > e.opts.FlattenDepth {
			break
		}
		segments = append(segments, childKey)
		cur = cur.ObjectGet(childKey)
	}
	return strings.Join(segments, "."), cur
}

// writeField writes one object field, including its leading indent.
func (e *Encoder) writeField(b *strings.Builder, key string, v *value.Value, depth int) error {
	b.WriteString(strings.Repeat(" ", depth*e.opts.IndentSize))
	return e.writeFirstField(b, key, v, depth)
}

// writeFirstField writes key/v without a leading indent, so that it can
// also serve as the content following a list item's "- " prefix.
func (e *Encoder) writeFirstField(b *strings.Builder, key string, v *value.Value, depth int) error {
	keyEnc := e.encodeKey(key)
	switch v.Kind() {
	case value.KindObject:
		b.WriteString(keyEnc)
		b.WriteString(":\n")
		if v.ObjectLen() == 0 {
			return nil
		}
		return e.writeObjectFields(b, v, depth+1)
	case value.KindArray:
		return e.writeArrayHeaderAndBody(b, keyEnc, v, depth)
	default:
		b.WriteString(keyEnc)
		b.WriteString(": ")
		b.WriteString(e.encodePrimitive(v))
		b.WriteString("\n")
		return nil
	}
}

// writeArrayField writes an array-valued field, including its leading
// indent.
func (e *Encoder) writeArrayField(b *strings.Builder, keyEnc string, arr *value.Value, depth int) error {
	b.WriteString(strings.Repeat(" ", depth*e.opts.IndentSize))
	return e.writeArrayHeaderAndBody(b, keyEnc, arr, depth)
}

// writeArrayHeaderAndBody writes an array's header line — without any
// indent of its own, since the header may instead follow a list item's
// "- " prefix — plus its body at depth+1.
func (e *Encoder) writeArrayHeaderAndBody(b *strings.Builder, keyEnc string, arr *value.Value, depth int) error {
	n := arr.ArrayLen()
	if n == 0 {
		b.WriteString(keyEnc)
		b.WriteString("[0]:\n")
		return nil
	}

	delimSuffix := ""
	if e.opts.Delimiter != ',' {
		delimSuffix = string(e.opts.Delimiter)
	}

	if fields, ok := tabularEligible(arr); ok {
		b.WriteString(keyEnc)
		fmt.Fprintf(b, "[%d%s]{", n, delimSuffix)
		for i, f := range fields {
			if i > 0 {
				b.WriteRune(e.opts.Delimiter)
			}
			b.WriteString(e.encodeKey(f))
		}
		b.WriteString("}:\n")
		rowIndent := strings.Repeat(" ", (depth+1)*e.opts.IndentSize)
		for i := 0; i < n; i++ {
			row := arr.ArrayGet(i)
			b.WriteString(rowIndent)
			for j, f := range fields {
				if j > 0 {
					b.WriteRune(e.opts.Delimiter)
				}
				b.WriteString(e.encodePrimitive(row.ObjectGet(f)))
			}
			b.WriteString("\n")
		}
		return nil
	}

	if allPrimitive(arr) {
		b.WriteString(keyEnc)
		fmt.Fprintf(b, "[%d%s]: ", n, delimSuffix)
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteRune(e.opts.Delimiter)
			}
			b.WriteString(e.encodePrimitive(arr.ArrayGet(i)))
		}
		b.WriteString("\n")
		return nil
	}

	b.WriteString(keyEnc)
	fmt.Fprintf(b, "[%d%s]:\n", n, delimSuffix)
	itemIndent := strings.Repeat(" ", (depth+1)*e.opts.IndentSize)
	for i := 0; i < n; i++ {
		if err := e.writeListItem(b, itemIndent, arr.ArrayGet(i), depth+1); err != nil {
			return err
		}
	}
	return nil
}

// writeListItem writes one "- " item of an expanded list, dispatching on
// the item's kind. An Object item whose first field is itself an array
// gets the header-on-hyphen-line layout; the same layout is used for all
// three array shapes there, for consistency, even though only the
// tabular case is unambiguous without it.
func (e *Encoder) writeListItem(b *strings.Builder, itemIndent string, v *value.Value, depth int) error {
	switch v.Kind() {
	case value.KindObject:
		if v.ObjectLen() == 0 {
			b.WriteString(itemIndent)
			b.WriteString("-\n")
			return nil
		}
		keys := v.ObjectKeys()
		firstKey := keys[0]
		firstVal := v.ObjectGet(firstKey)
		b.WriteString(itemIndent)
		b.WriteString("- ")
		if firstVal.Kind() == value.KindArray {
			if err := e.writeArrayHeaderAndBody(b, e.encodeKey(firstKey), firstVal, depth); err != nil {
				return err
			}
		} else if err := e.writeFirstField(b, firstKey, firstVal, depth); err != nil {
			return err
		}
		return e.writeRemainingFields(b, v, keys[1:], depth)
	case value.KindArray:
		b.WriteString(itemIndent)
		b.WriteString("- ")
		return e.writeArrayHeaderAndBody(b, "", v, depth)
	default:
		b.WriteString(itemIndent)
		b.WriteString("- ")
		b.WriteString(e.encodePrimitive(v))
		b.WriteString("\n")
		return nil
	}
}

func (e *Encoder) encodeKey(key string) string {
	if toonopts.IsIdentifier(key) {
		return key
	}
	return `"` + toonopts.Escape(key) + `"`
}

func (e *Encoder) encodePrimitive(v *value.Value) string {
	switch v.Kind() {
	case value.KindNull:
		return "null"
	case value.KindBool:
		if v.BoolValue() {
			return "true"
		}
		return "false"
	case value.KindInt:
		return toonopts.FormatInt(v.IntValue())
	case value.KindFloat:
		f := v.FloatValue()
		if !toonopts.IsFinite(f) {
			return "null"
		}
		return toonopts.FormatFloat(f)
	case value.KindString:
		s := v.StringValue()
		if !toonopts.NeedsQuoting(s, e.opts.Delimiter, e.opts.Delimiter) {
			return s
		}
		return `"` + toonopts.Escape(s) + `"`
	default:
		return "null"
	}
}

// tabularEligible reports whether arr qualifies for the tabular shape:
// non-empty, every element an Object, every element sharing the same
// key-set and insertion order, and every field value a primitive.
func tabularEligible(arr *value.Value) ([]string, bool) {
	n := arr.ArrayLen()
	if n == 0 {
		return nil, false
	}
	fields := arr.ArrayGet(0).ObjectKeys()
	if fields == nil {
		return nil, false
	}
	for i := 0; i < n; i++ {
		elem := arr.ArrayGet(i)
		if elem.Kind() != value.KindObject {
			return nil, false
		}
		keys := elem.ObjectKeys()
		if len(keys) != len(fields) {
			return nil, false
		}
		for j, k := range keys {
			if k != fields[j] {
				return nil, false
			}
			if !elem.ObjectGet(k).IsPrimitive() {
				return nil, false
			}
		}
	}
	return fields, true
}

func allPrimitive(arr *value.Value) bool {
	n := arr.ArrayLen()
	for i := 0; i < n; i++ {
		if !arr.ArrayGet(i).IsPrimitive() {
			return false
		}
	}
	return true
}
