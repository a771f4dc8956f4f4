package template

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Context maps variable names to the string values substituted during a render.
// A Context is supplied per render call and never retained by the engine.
type Context map[string]string

// DecodeContext decodes a flat JSON object into a Context.
//
// String values are used as-is, numbers keep their literal text and booleans
// become "true" or "false". A null, array or object value, a non-object
// document or trailing data rejects the whole document with a
// *ContextDecodeError; no partial Context is returned.
func DecodeContext(data []byte) (Context, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, &ContextDecodeError{Err: err}
	}
	if raw == nil {
		return nil, &ContextDecodeError{Err: errors.New("context must be a JSON object, got null")}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ContextDecodeError{Err: errors.New("unexpected data after JSON object")}
	}

	return flatten(raw)
}

// DecodeContextYAML decodes a flat YAML mapping into a Context.
// Scalar values keep their literal text; the same rules as DecodeContext
// apply, and a stream with more than one document is rejected.
func DecodeContextYAML(data []byte) (Context, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, &ContextDecodeError{Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &ContextDecodeError{Err: errors.New("context must be a YAML mapping, got empty document")}
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, &ContextDecodeError{Err: errors.New("unexpected data after YAML document")}
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &ContextDecodeError{Err: fmt.Errorf("context must be a YAML mapping, got %s", yamlKind(root))}
	}

	ctx := make(Context, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, &ContextDecodeError{Err: fmt.Errorf("key at line %d must be a scalar", key.Line)}
		}
		if val.Kind != yaml.ScalarNode {
			return nil, &ContextDecodeError{Err: fmt.Errorf("value for %q must be a scalar, got %s", key.Value, yamlKind(val))}
		}
		if val.Tag == "!!null" {
			return nil, &ContextDecodeError{Err: fmt.Errorf("value for %q is null", key.Value)}
		}
		ctx[key.Value] = val.Value
	}
	return ctx, nil
}

// DecodeContextTOML decodes a TOML document of top-level key/value pairs into a Context.
// Tables and arrays are rejected; the same rules as DecodeContext apply.
func DecodeContextTOML(data []byte) (Context, error) {
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, &ContextDecodeError{Err: err}
	}
	return flatten(raw)
}

// DecodeContextFile reads a context document from path and decodes it
// according to the file extension: .json, .yaml, .yml or .toml.
func DecodeContextFile(path string) (Context, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read context file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return DecodeContext(data)
	case ".yaml", ".yml":
		return DecodeContextYAML(data)
	case ".toml":
		return DecodeContextTOML(data)
	default:
		return nil, &ContextDecodeError{Err: fmt.Errorf("unsupported context file extension %q", ext)}
	}
}

// flatten converts decoded scalar values to strings, rejecting anything nested.
func flatten(raw map[string]any) (Context, error) {
	ctx := make(Context, len(raw))
	for key, v := range raw {
		s, err := scalarString(key, v)
		if err != nil {
			return nil, &ContextDecodeError{Err: err}
		}
		ctx[key] = s
	}
	return ctx, nil
}

// scalarString renders a decoded scalar as the string a template sees.
func scalarString(key string, v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case json.Number:
		return val.String(), nil
	case bool:
		return strconv.FormatBool(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case nil:
		return "", fmt.Errorf("value for %q is null", key)
	case map[string]any:
		return "", fmt.Errorf("value for %q must be a string, number or boolean, got object", key)
	case []any, []map[string]any:
		return "", fmt.Errorf("value for %q must be a string, number or boolean, got array", key)
	case fmt.Stringer:
		// toml.LocalDate, toml.LocalTime and toml.LocalDateTime
		return val.String(), nil
	default:
		return "", fmt.Errorf("value for %q has unsupported type %T", key, v)
	}
}

func yamlKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	case yaml.ScalarNode:
		return "scalar"
	default:
		return "document"
	}
}
