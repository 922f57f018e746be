// Package decoder implements the recursive-descent parser that turns a
// line-framed TOON document into a Value tree.
package decoder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-toon/toon/internal/frame"
	"github.com/go-toon/toon/internal/header"
	"github.com/go-toon/toon/pkg/toonopts"
	"github.com/go-toon/toon/pkg/value"
)

// Decoder walks a framed document once, top-down, producing a single
// Value tree. It holds no state beyond its line cursor, its options, and
// the source text kept for error context, and makes no provision for
// concurrent use of one instance.
type Decoder struct {
	f    *frame.Framer
	opts toonopts.Options
	src  string
}

// New builds a Decoder over data under opts.
func New(data []byte, opts toonopts.Options) *Decoder {
	return &Decoder{f: frame.New(data, opts), opts: opts, src: string(data)}
}

// Decode parses the whole document and returns its Value tree, or the
// first *Error encountered.
func (d *Decoder) Decode() (*value.Value, error) {
	d.f.SkipBlank()
	if err := d.frameErr(); err != nil {
		return nil, err
	}

	first, ok := d.f.Peek()
	if !ok {
		return value.Null(), nil
	}

	// Case 1 & 2: the root line is a header, pure or with inline values.
	if h, ok := header.Parse(first.Content, d.opts.Delimiter); ok {
		d.f.Advance()
		arr, err := d.decodeArrayFromHeader(h, first.Depth, first.Line)
		if err != nil {
			return nil, err
		}
		if h.HasKey {
			obj := value.NewObject()
			key, err := d.decodeHeaderKey(h, first.Line)
			if err != nil {
				return nil, err
			}
			obj.ObjectSet(key, arr)
			return obj, nil
		}
		return arr, nil
	}

	// Case 3: the line carries an unquoted split colon — object form.
	if _, _, found := splitColon(first.Content); found {
		return d.parseObjectAt(0)
	}

	// Case 4: a lone primitive line.
	if d.opts.Strict && d.f.NonBlankCount() > 1 {
		return nil, d.err(first.Line, "Missing colon after key.")
	}
	d.f.Advance()
	return d.decodePrimitiveToken(first.Content, first.Line)
}

func (d *Decoder) frameErr() error {
	if le, ok := d.f.Err().(frame.LineError); ok {
		return d.err(le.Line(), le.Error())
	}
	return d.f.Err()
}

func (d *Decoder) err(line int, msg string) error {
	return NewError(line, msg, d.src)
}

func (d *Decoder) decodeHeaderKey(h header.Header, line int) (string, error) {
	if !h.HasQuotedKey {
		return h.Key, nil
	}
	s, err := toonopts.Unescape(h.Key, d.opts.Strict)
	if err != nil {
		return "", d.err(line, err.Error())
	}
	return s, nil
}

// parseObjectAt parses an object whose fields sit at exactly depth,
// terminating when a line shallower than depth is reached or input ends.
func (d *Decoder) parseObjectAt(depth int) (*value.Value, error) {
	obj := value.NewObject()
	if err := d.parseObjectFieldsInto(obj, depth); err != nil {
		return nil, err
	}
	return obj, nil
}

// parseObjectFieldsInto reads fields at depth into obj, merging them in.
// Splitting object construction from field-reading lets the expanded-list
// "hyphen-plus-header" form build one field from the header on the hyphen
// line, then keep reading sibling fields into the same object.
func (d *Decoder) parseObjectFieldsInto(obj *value.Value, depth int) error {
	for {
		if err := d.frameErr(); err != nil {
			return err
		}
		d.f.SkipBlank()
		fr, ok := d.f.Peek()
		if !ok || fr.Depth < depth {
			return nil
		}
		if fr.Depth > depth {
			if d.opts.Strict {
				return d.err(fr.Line, "Unexpected indentation")
			}
			return nil
		}
		d.f.Advance()

		if h, ok := header.Parse(fr.Content, d.opts.Delimiter); ok && h.HasKey {
			arr, err := d.decodeArrayFromHeader(h, fr.Depth, fr.Line)
			if err != nil {
				return err
			}
			key, err := d.decodeHeaderKey(h, fr.Line)
			if err != nil {
				return err
			}
			if err := d.setWithPath(obj, key, h.HasQuotedKey, arr, fr.Line); err != nil {
				return err
			}
			continue
		}

		keyText, valText, found := splitColon(fr.Content)
		if !found {
			if d.opts.Strict {
				return d.err(fr.Line, "Missing colon after key.")
			}
			continue
		}
		key, quoted, err := d.decodeKey(keyText, fr.Line)
		if err != nil {
			return err
		}
		valText = strings.TrimPrefix(valText, " ")

		var fieldVal *value.Value
		if valText == "" {
			if peek, ok := d.f.Peek(); ok && !peek.Blank && peek.Depth > depth {
				fieldVal, err = d.parseObjectAt(depth + 1)
			} else {
				fieldVal = value.NewObject()
			}
		} else {
			fieldVal, err = d.decodePrimitiveToken(valText, fr.Line)
		}
		if err != nil {
			return err
		}
		if err := d.setWithPath(obj, key, quoted, fieldVal, fr.Line); err != nil {
			return err
		}
	}
}

func (d *Decoder) decodeKey(raw string, line int) (string, bool, error) {
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		s, err := toonopts.Unescape(raw[1:len(raw)-1], d.opts.Strict)
		if err != nil {
			return "", false, d.err(line, err.Error())
		}
		return s, true, nil
	}
	return raw, false, nil
}

// splitColon returns the text before/after the first unescaped, unquoted
// ':' in s, shared by the root discriminator and the object-field parser.
func splitColon(s string) (key, val string, found bool) {
	inQuotes := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuotes && r == '\\' && i+1 < len(runes):
			i++
		case r == '"':
			inQuotes = !inQuotes
		case r == ':' && !inQuotes:
			return string(runes[:i]), string(runes[i+1:]), true
		}
	}
	return "", "", false
}

// decodeArrayFromHeader dispatches to one of the three array shapes once a
// header has been recognized. headerDepth is the depth of the header line
// itself; the body (if any) is expected at headerDepth+1.
func (d *Decoder) decodeArrayFromHeader(h header.Header, headerDepth, headerLine int) (*value.Value, error) {
	switch {
	case h.HasFields:
		return d.decodeTabular(h, headerDepth+1, headerLine)
	case h.Rest != "":
		return d.decodeInline(h, headerLine)
	case h.Count == 0:
		return value.NewArray(), nil
	default:
		return d.decodeExpandedList(h, headerDepth+1, headerLine)
	}
}

func (d *Decoder) decodeInline(h header.Header, headerLine int) (*value.Value, error) {
	text := strings.TrimPrefix(h.Rest, " ")
	var tokens []string
	if text != "" {
		var ok bool
		tokens, ok = header.SplitValues(text, h.Delimiter)
		if !ok {
			return nil, d.err(headerLine, "Unterminated string")
		}
	}
	if d.opts.Strict && len(tokens) != h.Count {
		return nil, d.err(headerLine, fmt.Sprintf("Inline array count mismatch. Header declared %d, found %d.", h.Count, len(tokens)))
	}
	arr := value.NewArray()
	for _, tok := range tokens {
		v, err := d.decodePrimitiveToken(tok, headerLine)
		if err != nil {
			return nil, err
		}
		arr.ArrayAppend(v)
	}
	return arr, nil
}

// skipArrayBlank consumes a run of blank lines inside an array body and
// reports whether the array continues past them. A blank run followed by
// a line shallower than bodyDepth just pads the array closed; one followed
// by another line at bodyDepth is a strict-mode "Blank line inside array"
// violation.
func (d *Decoder) skipArrayBlank(bodyDepth int) (more bool, err error) {
	blanks := 0
	for {
		fr, ok := d.f.Peek()
		if !ok || !fr.Blank {
			break
		}
		d.f.Advance()
		blanks++
	}
	if blanks == 0 {
		return true, nil
	}
	fr, ok := d.f.Peek()
	if !ok || fr.Depth < bodyDepth {
		return false, nil
	}
	if fr.Depth == bodyDepth && d.opts.Strict {
		return false, d.err(fr.Line, "Blank line inside array")
	}
	return true, nil
}

func (d *Decoder) decodeTabular(h header.Header, bodyDepth, headerLine int) (*value.Value, error) {
	arr := value.NewArray()
	count := 0
	for {
		more, err := d.skipArrayBlank(bodyDepth)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		fr, ok := d.f.Peek()
		if !ok || fr.Depth < bodyDepth {
			break
		}
		if fr.Depth > bodyDepth {
			if d.opts.Strict {
				return nil, d.err(fr.Line, "Unexpected indentation")
			}
			break
		}
		d.f.Advance()

		tokens, ok := header.SplitValues(fr.Content, h.Delimiter)
		if !ok {
			return nil, d.err(fr.Line, "Unterminated string")
		}
		if d.opts.Strict && len(tokens) != len(h.Fields) {
			return nil, d.err(fr.Line, "Tabular row width mismatch")
		}
		n := len(tokens)
		if n > len(h.Fields) {
			n = len(h.Fields)
		}
		row := value.NewObject()
		for i := 0; i < n; i++ {
			v, err := d.decodePrimitiveToken(tokens[i], fr.Line)
			if err != nil {
				return nil, err
			}
			if err := d.setWithPath(row, h.Fields[i], false, v, fr.Line); err != nil {
				return nil, err
			}
		}
		for i := n; i < len(h.Fields); i++ {
			if err := d.setWithPath(row, h.Fields[i], false, value.Null(), fr.Line); err != nil {
				return nil, err
			}
		}
		arr.ArrayAppend(row)
		count++
	}
	if d.opts.Strict && count != h.Count {
		return nil, d.err(headerLine, fmt.Sprintf("Tabular array count mismatch. Header declared %d, found %d.", h.Count, count))
	}
	return arr, nil
}

// decodeExpandedList parses the fallback array form: one "- " item per
// line at bodyDepth, dispatched per the expanded-list rules.
func (d *Decoder) decodeExpandedList(h header.Header, bodyDepth, headerLine int) (*value.Value, error) {
	arr := value.NewArray()
	count := 0
	for {
		more, err := d.skipArrayBlank(bodyDepth)
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		fr, ok := d.f.Peek()
		if !ok || fr.Depth < bodyDepth {
			break
		}
		if fr.Depth > bodyDepth {
			if d.opts.Strict {
				return nil, d.err(fr.Line, "Unexpected indentation")
			}
			break
		}
		if !strings.HasPrefix(fr.Content, "- ") && fr.Content != "-" {
			if d.opts.Strict {
				return nil, d.err(fr.Line, "Array item must start with '- '")
			}
			break
		}
		d.f.Advance()

		item, err := d.decodeListItem(fr.Content, bodyDepth, fr.Line)
		if err != nil {
			return nil, err
		}
		arr.ArrayAppend(item)
		count++
	}
	if d.opts.Strict && count != h.Count {
		return nil, d.err(headerLine, fmt.Sprintf("List array count mismatch. Header declared %d, found %d.", h.Count, count))
	}
	return arr, nil
}

// decodeListItem interprets the remainder of one "- " item line at
// itemDepth, following the try-in-order rules.
func (d *Decoder) decodeListItem(line string, itemDepth, lineNo int) (*value.Value, error) {
	rem := strings.TrimPrefix(line, "- ")
	rem = strings.TrimPrefix(rem, "-")

	if rem == "" {
		if peek, ok := d.f.Peek(); ok && !peek.Blank && peek.Depth > itemDepth {
			return d.parseObjectAt(itemDepth + 1)
		}
		return value.NewObject(), nil
	}

	if h, ok := header.Parse(rem, d.opts.Delimiter); ok {
		if !h.HasKey {
			// nested header / header-with-values: the item *is* the array.
			return d.decodeArrayFromHeader(h, itemDepth, lineNo)
		}
		// hyphen-plus-header: object whose first field is the array, with
		// any sibling fields following at itemDepth+1.
		arr, err := d.decodeArrayFromHeader(h, itemDepth, lineNo)
		if err != nil {
			return nil, err
		}
		obj := value.NewObject()
		key, err := d.decodeHeaderKey(h, lineNo)
		if err != nil {
			return nil, err
		}
		if err := d.setWithPath(obj, key, h.HasQuotedKey, arr, lineNo); err != nil {
			return nil, err
		}
		if err := d.parseObjectFieldsInto(obj, itemDepth+1); err != nil {
			return nil, err
		}
		return obj, nil
	}

	if keyText, valText, found := splitColon(rem); found {
		obj := value.NewObject()
		key, quoted, err := d.decodeKey(keyText, lineNo)
		if err != nil {
			return nil, err
		}
		valText = strings.TrimPrefix(valText, " ")
		var fieldVal *value.Value
		if valText == "" {
			if peek, ok := d.f.Peek(); ok && !peek.Blank && peek.Depth > itemDepth {
				fieldVal, err = d.parseObjectAt(itemDepth + 1)
			} else {
				fieldVal = value.NewObject()
			}
		} else {
			fieldVal, err = d.decodePrimitiveToken(valText, lineNo)
		}
		if err != nil {
			return nil, err
		}
		if err := d.setWithPath(obj, key, quoted, fieldVal, lineNo); err != nil {
			return nil, err
		}
		if err := d.parseObjectFieldsInto(obj, itemDepth+1); err != nil {
			return nil, err
		}
		return obj, nil
	}

	return d.decodePrimitiveToken(rem, lineNo)
}

// decodePrimitiveToken classifies a single bare or quoted token, following
// the number-classification precedence and the true/false/null literals.
func (d *Decoder) decodePrimitiveToken(tok string, line int) (*value.Value, error) {
	if len(tok) >= 2 && strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) {
		s, err := toonopts.Unescape(tok[1:len(tok)-1], d.opts.Strict)
		if err != nil {
			return nil, d.err(line, err.Error())
		}
		return value.String(s), nil
	}
	switch tok {
	case "null":
		return value.Null(), nil
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	}
	switch toonopts.ClassifyNumber(tok) {
	case toonopts.NumberKindInt:
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return value.String(tok), nil
		}
		return value.Int(n), nil
	case toonopts.NumberKindFloat:
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return value.String(tok), nil
		}
		return value.Float(f), nil
	default:
		return value.String(tok), nil
	}
}

// setWithPath assigns val at key within obj, expanding a dotted key into
// nested objects when expand_paths=safe and the key was not quoted.
// Quoted keys and plain (non-dotted) keys are assigned directly, with
// object-vs-object collisions deep-merged.
func (d *Decoder) setWithPath(obj *value.Value, key string, quoted bool, val *value.Value, line int) error {
	if quoted || d.opts.ExpandPaths == toonopts.ExpandPathsOff || !strings.Contains(key, ".") {
		return d.assignDirect(obj, key, val, line)
	}
	return d.assignPath(obj, strings.Split(key, "."), val, line)
}

func (d *Decoder) assignDirect(obj *value.Value, key string, val *value.Value, line int) error {
	existing := obj.ObjectGet(key)
	if existing == nil {
		obj.ObjectSet(key, val)
		return nil
	}
	eObj := existing.Kind() == value.KindObject
	vObj := val.Kind() == value.KindObject
	switch {
	case eObj && vObj:
		obj.ObjectSet(key, deepMerge(existing, val))
	case eObj != vObj:
		if d.opts.Strict {
			return d.err(line, fmt.Sprintf("Expansion conflict at path '%s' (object vs primitive)", key))
		}
		obj.ObjectSet(key, val)
	default:
		obj.ObjectSet(key, val)
	}
	return nil
}

func (d *Decoder) assignPath(obj *value.Value, segments []string, val *value.Value, line int) error {
	if len(segments) == 1 {
		return d.assignDirect(obj, segments[0], val, line)
	}
	head, rest := segments[0], segments[1:]
	existing := obj.ObjectGet(head)
	if existing == nil || existing.Kind() != value.KindObject {
		if existing != nil && d.opts.Strict {
			return d.err(line, fmt.Sprintf("Expansion conflict at path '%s' (object vs primitive)", strings.Join(segments, ".")))
		}
		child := value.NewObject()
		if err := d.assignPath(child, rest, val, line); err != nil {
			return err
		}
		obj.ObjectSet(head, child)
		return nil
	}
	return d.assignPath(existing, rest, val, line)
}

// deepMerge combines two objects: shared keys whose values are both
// objects recurse, everything else takes b's value.
func deepMerge(a, b *value.Value) *value.Value {
	out := value.NewObject()
	for _, k := range a.ObjectKeys() {
		out.ObjectSet(k, a.ObjectGet(k))
	}
	for _, k := range b.ObjectKeys() {
		bv := b.ObjectGet(k)
		av := out.ObjectGet(k)
		if av != nil && av.Kind() == value.KindObject && bv.Kind() == value.KindObject {
			out.ObjectSet(k, deepMerge(av, bv))
		} else {
			out.ObjectSet(k, bv)
		}
	}
	return out
}
