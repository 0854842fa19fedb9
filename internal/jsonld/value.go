package jsonld

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Object returns v as a JSON object when it is one.
func Object(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok && m != nil
}

// Array returns v as a JSON array when it is one.
func Array(v any) ([]any, bool) {
	switch a := v.(type) {
	case []any:
		return a, true
	case []string:
		out := make([]any, len(a))
		for i, s := range a {
			out[i] = s
		}
		return out, true
	}
	return nil, false
}

// IsScalar reports whether v is a JSON leaf value other than null.
func IsScalar(v any) bool {
	switch v.(type) {
	case string, json.Number, bool,
		float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// Present reports whether a leaf carries a usable value. Null and empty
// strings are absent; numeric zero and false are present.
func Present(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	}
	return IsScalar(v)
}

// String renders a scalar leaf as text. Non-scalars render as "".
func String(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case nil:
		return ""
	}
	if IsScalar(v) {
		return fmt.Sprint(v)
	}
	return ""
}

// Clone returns a deep copy of a decoded JSON value. Objects and arrays are
// copied; scalars are shared.
func Clone(v any) any {
	switch x := v.(type) {
	case map[string]any:
		if x == nil {
			return x
		}
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = Clone(e)
		}
		return out
	case []any:
		if x == nil {
			return x
		}
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Clone(e)
		}
		return out
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	}
	return v
}

// Types returns the declared @type of an entity. A string @type yields one
// element; an array yields its string members in order.
func Types(entity any) []string {
	obj, ok := Object(entity)
	if !ok {
		return nil
	}
	switch t := obj["@type"].(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		var out []string
		for _, e := range t {
			if s, ok := e.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// HasType reports whether entity declares typ among its @type values.
func HasType(entity any, typ string) bool {
	for _, t := range Types(entity) {
		if t == typ {
			return true
		}
	}
	return false
}

// Graph returns the @graph array of a document, if it has one.
func Graph(doc any) ([]any, bool) {
	obj, ok := Object(doc)
	if !ok {
		return nil, false
	}
	return Array(obj["@graph"])
}

// GraphEntities returns the @graph members declaring typ, in document order.
func GraphEntities(doc any, typ string) []map[string]any {
	graph, ok := Graph(doc)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, e := range graph {
		if obj, ok := Object(e); ok && HasType(obj, typ) {
			out = append(out, obj)
		}
	}
	return out
}

// SplitList splits a comma-joined edit value back into a sequence. Empty
// members are dropped.
func SplitList(s string, sep string) []any {
	parts := strings.Split(s, sep)
	out := make([]any, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// JoinList joins the scalar members of a sequence with sep. Object members
// contribute their "name" when they have one.
func JoinList(a []any, sep string) string {
	parts := make([]string, 0, len(a))
	for _, e := range a {
		if obj, ok := Object(e); ok {
			if n := String(obj["name"]); n != "" {
				parts = append(parts, n)
			}
			continue
		}
		if s := String(e); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}
