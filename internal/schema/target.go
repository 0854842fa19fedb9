package schema

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
)

// target is a document resolved to the entity a handler works on. When the
// entity came from @graph, graphIndex is its position there; otherwise -1.
type target struct {
	doc        any
	entity     any
	graphIndex int
}

// resolveTarget locates the entity of schemaType inside doc: the document
// itself when it declares the type, else the first @graph member that does,
// else the document unchanged.
func resolveTarget(doc any, schemaType string) target {
	if schemaType != "" && jsonld.HasType(doc, schemaType) {
		return target{doc: doc, entity: doc, graphIndex: -1}
	}
	if graph, ok := jsonld.Graph(doc); ok && schemaType != "" {
		for i, e := range graph {
			if jsonld.HasType(e, schemaType) {
				if _, ok := jsonld.Object(e); ok {
					return target{doc: doc, entity: e, graphIndex: i}
				}
			}
		}
	}
	return target{doc: doc, entity: doc, graphIndex: -1}
}

// siblings returns the other @graph entities declaring typ. Non-indexed
// siblings yield at most the first match.
func (tg target) siblings(typ string, indexed bool) []any {
	graph, ok := jsonld.Graph(tg.doc)
	if !ok {
		return nil
	}
	var out []any
	for i, e := range graph {
		if i == tg.graphIndex {
			continue
		}
		if _, ok := jsonld.Object(e); !ok || !jsonld.HasType(e, typ) {
			continue
		}
		out = append(out, e)
		if !indexed {
			break
		}
	}
	return out
}

// coerceNumber keeps numeric leaves numeric when an edit arrives as text.
func coerceNumber(edit, current any) any {
	s, ok := edit.(string)
	if !ok {
		return edit
	}
	trimmed := strings.TrimSpace(s)
	switch current.(type) {
	case json.Number:
		if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return json.Number(trimmed)
		}
	case float64:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
	case int:
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n
		}
	}
	return edit
}
