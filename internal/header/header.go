// Package header recognizes and decomposes TOON array headers (component
// B): lines of the form key?[count][delim?]{fields?}:.
package header

import (
	"strconv"
	"strings"
)

// Header is the decomposed form of a recognized header line.
type Header struct {
	Key          string
	HasKey       bool
	HasQuotedKey bool // true if Key came from a quoted source token (suppresses dotted-path expansion)
	Count        int
	Delimiter    rune // active delimiter for this array's body
	HasDelim     bool // true if the header carried an explicit delimiter override
	Fields       []string
	HasFields    bool
	// Rest is whatever followed the header's terminating ':' on the same
	// line (used by the inline-values form).
	Rest string
}

// Parse attempts to read line as a header. docDelim is the document
// delimiter used as the active delimiter when the header has no override.
// Parse reports ok=false (with a zero Header) when line is not a header at
// all, in which case the caller falls back to object-line or primitive
// interpretation (the decoder's root-form dispatch).
func Parse(line string, docDelim rune) (Header, bool) {
	rest := line
	h := Header{Delimiter: docDelim}

	bracketStart := strings.IndexByte(rest, '[')
	if bracketStart < 0 {
		return Header{}, false
	}

	keyPart := rest[:bracketStart]
	if keyPart != "" {
		key, ok := parseHeaderKey(keyPart)
		if !ok {
			return Header{}, false
		}
		h.Key = key
		h.HasKey = true
		h.HasQuotedKey = strings.HasPrefix(keyPart, `"`)
	}

	rest = rest[bracketStart+1:]
	bracketEnd := strings.IndexByte(rest, ']')
	if bracketEnd < 0 {
		return Header{}, false
	}
	countAndDelim := rest[:bracketEnd]
	rest = rest[bracketEnd+1:]

	count, delim, hasDelim, ok := parseCountDelim(countAndDelim)
	if !ok {
		return Header{}, false
	}
	h.Count = count
	if hasDelim {
		h.Delimiter = delim
		h.HasDelim = true
	}

	if strings.HasPrefix(rest, "{") {
		fieldsEnd := strings.IndexByte(rest, '}')
		if fieldsEnd < 0 {
			return Header{}, false
		}
		fieldsText := rest[1:fieldsEnd]
		fields, ok := splitFields(fieldsText, h.Delimiter)
		if !ok {
			return Header{}, false
		}
		h.Fields = fields
		h.HasFields = true
		rest = rest[fieldsEnd+1:]
	}

	if !strings.HasPrefix(rest, ":") {
		return Header{}, false
	}
	h.Rest = strings.TrimPrefix(rest, ":")
	return h, true
}

// parseHeaderKey decodes the key portion before '[': a bare identifier, or
// a quoted string (possibly containing escapes, which the caller/decoder
// unescapes via toonopts.Unescape once the split-colon scanner hands the
// key off — here we only check shape).
func parseHeaderKey(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		return s[1 : len(s)-1], true
	}
	for _, r := range s {
		if r == ' ' || r == ':' {
			return "", false
		}
	}
	return s, true
}

func parseCountDelim(s string) (count int, delim rune, hasDelim bool, ok bool) {
	if s == "" {
		return 0, 0, false, false
	}
	digits := s
	last := rune(s[len(s)-1])
	if last == '\t' || last == '|' {
		digits = s[:len(s)-1]
		delim = last
		hasDelim = true
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, 0, false, false
	}
	return n, delim, hasDelim, true
}

// SplitValues splits s on delim honoring a quoted-string state: the same
// scanner used internally for header field lists, exported so the decoder
// can reuse it for inline array bodies and tabular rows.
func SplitValues(s string, delim rune) ([]string, bool) {
	return splitRespectingQuotes(s, delim)
}

func splitFields(s string, delim rune) ([]string, bool) {
	if s == "" {
		return nil, true
	}
	parts, ok := splitRespectingQuotes(s, delim)
	if !ok {
		return nil, false
	}
	fields := make([]string, len(parts))
	for i, p := range parts {
		if strings.HasPrefix(p, `"`) && strings.HasSuffix(p, `"`) && len(p) >= 2 {
			fields[i] = p[1 : len(p)-1]
		} else {
			fields[i] = p
		}
	}
	return fields, true
}

// splitRespectingQuotes splits s on delim, honoring a quoted-string state
// so that a delimiter inside a quoted field name does not split it. This
// is the same scanning discipline as the decoder's split-colon scanner,
// specialized to an arbitrary delimiter rune instead of ':'.
func splitRespectingQuotes(s string, delim rune) ([]string, bool) {
	var parts []string
	var cur strings.Builder
	inQuotes := false
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuotes && r == '\\' && i+1 < len(runes):
			cur.WriteRune(r)
			i++
			cur.WriteRune(runes[i])
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == delim && !inQuotes:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	if inQuotes {
		return nil, false
	}
	parts = append(parts, cur.String())
	return parts, true
}
