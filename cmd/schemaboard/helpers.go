// Input and output helpers shared by the schemaboard commands.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

func encodeIndent(v any) ([]byte, error) {
	return jsonld.EncodeIndent(v)
}

// readDocument loads a JSON-LD document from path, or stdin when path is
// "-". Files ending in .yaml or .yml are parsed as YAML.
func readDocument(path string, stdin io.Reader) (any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		// Re-encode so numbers and maps take the same shape as decoded JSON.
		if data, err = jsonld.Encode(doc); err != nil {
			return nil, fmt.Errorf("converting %s: %w", path, err)
		}
	}
	doc, err := jsonld.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// parseAssignments turns key=value arguments into an edit buffer. Values
// starting with [ or { are parsed as JSON; anything else is kept as text.
func parseAssignments(args []string) (types.EditBuffer, error) {
	buf := make(types.EditBuffer, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (expected key=value)", arg)
		}
		if strings.HasPrefix(value, "[") || strings.HasPrefix(value, "{") {
			parsed, err := jsonld.Decode([]byte(value))
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", key, err)
			}
			buf[key] = parsed
			continue
		}
		buf[key] = value
	}
	return buf, nil
}

// yamlFriendly converts json.Number leaves to int64 or float64 so YAML
// output shows numbers unquoted.
func yamlFriendly(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = yamlFriendly(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = yamlFriendly(e)
		}
		return out
	case types.FieldSet:
		out := make(types.FieldSet, len(x))
		for k, d := range x {
			d.Value = yamlFriendly(d.Value)
			out[k] = d
		}
		return out
	}
	return v
}
