package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"

	"github.com/go-toon/toon/pkg/toonopts"
	"github.com/go-toon/toon/pkg/value"
)

// format identifies the structured sibling format a command converts
// to/from TOON. json is the default; yaml is an ambient convenience bridge,
// not a core codec guarantee.
type format string

const (
	formatJSON format = "json"
	formatYAML format = "yaml"
)

func parseFormat(s string) (format, error) {
	switch strings.ToLower(s) {
	case "", "json":
		return formatJSON, nil
	case "yaml", "yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("unknown --format %q (want json or yaml)", s)
	}
}

// decodeStructured parses data in the given sibling format into a Value
// tree. JSON decoding goes through value.Value's own order-preserving
// json.Unmarshal, so object field order survives exactly. YAML decoding
// walks the goccy/go-yaml AST directly for the same reason: yaml.Unmarshal
// into a map would lose key order before it ever reached Value.
func decodeStructured(data []byte, f format) (*value.Value, error) {
	switch f {
	case formatYAML:
		return decodeYAML(data)
	default:
		v := &value.Value{}
		if err := json.Unmarshal(data, v); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
		return v, nil
	}
}

// encodeStructured renders a Value tree in the given sibling format. YAML
// output is rendered from a plain Go value via yaml.Marshal, which sorts
// map keys; callers that need guaranteed field order should ask for JSON
// (or TOON itself) instead.
func encodeStructured(v *value.Value, f format) ([]byte, error) {
	switch f {
	case formatYAML:
		out, err := yaml.Marshal(toGeneric(v))
		if err != nil {
			return nil, fmt.Errorf("rendering yaml: %w", err)
		}
		return out, nil
	default:
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("rendering json: %w", err)
		}
		return append(out, '\n'), nil
	}
}

func decodeYAML(data []byte) (*value.Value, error) {
	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return value.Null(), nil
	}
	return yamlNodeToValue(file.Docs[0].Body)
}

// yamlNodeToValue converts one goccy/go-yaml AST node into a Value,
// preserving mapping key order the way the TOON decoder preserves object
// field order.
func yamlNodeToValue(n ast.Node) (*value.Value, error) {
	switch node := n.(type) {
	case *ast.MappingNode:
		obj := value.NewObject()
		for _, mv := range node.Values {
			key := strings.Trim(mv.Key.String(), `"'`)
			child, err := yamlNodeToValue(mv.Value)
			if err != nil {
				return nil, err
			}
			obj.ObjectSet(key, child)
		}
		return obj, nil
	case *ast.MappingValueNode:
		obj := value.NewObject()
		key := strings.Trim(node.Key.String(), `"'`)
		child, err := yamlNodeToValue(node.Value)
		if err != nil {
			return nil, err
		}
		obj.ObjectSet(key, child)
		return obj, nil
	case *ast.SequenceNode:
		elems := make([]*value.Value, 0, len(node.Values))
		for _, item := range node.Values {
			child, err := yamlNodeToValue(item)
			if err != nil {
				return nil, err
			}
			elems = append(elems, child)
		}
		return value.ArrayOf(elems...), nil
	case *ast.NullNode:
		return value.Null(), nil
	default:
		return yamlScalarToValue(n)
	}
}

// yamlScalarToValue classifies a YAML scalar leaf's textual form the same
// way the TOON decoder classifies an unquoted primitive token, so "true",
// "42", and "3.5" round-trip to the same Value kinds from either format.
func yamlScalarToValue(n ast.Node) (*value.Value, error) {
	text := strings.Trim(n.String(), `"'`)
	switch toonopts.ClassifyNumber(text) {
	case toonopts.NumberKindInt:
		iv, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return value.Int(iv), nil
		}
	case toonopts.NumberKindFloat:
		fv, err := strconv.ParseFloat(text, 64)
		if err == nil {
			return value.Float(fv), nil
		}
	}
	switch text {
	case "true":
		return value.Bool(true), nil
	case "false":
		return value.Bool(false), nil
	case "null", "~", "":
		return value.Null(), nil
	default:
		return value.String(text), nil
	}
}

// toGeneric flattens a Value tree into plain Go values (map[string]any /
// []any / primitives) for handoff to yaml.Marshal, which only knows how to
// walk native Go data structures.
func toGeneric(v *value.Value) any {
	if v == nil {
		return nil
	}
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBool:
		return v.BoolValue()
	case value.KindInt:
		return v.IntValue()
	case value.KindFloat:
		return v.FloatValue()
	case value.KindString:
		return v.StringValue()
	case value.KindArray:
		elems := v.ArrayElements()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = toGeneric(e)
		}
		return out
	case value.KindObject:
		out := make(map[string]any, v.ObjectLen())
		for _, k := range v.ObjectKeys() {
			out[k] = toGeneric(v.ObjectGet(k))
		}
		return out
	default:
		return nil
	}
}
