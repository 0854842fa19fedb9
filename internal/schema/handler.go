package schema

import (
	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

// Handler extracts editable fields for one content type and patches edits
// back into a document.
type Handler interface {
	// SchemaType returns the @type this handler serves, or "" for the
	// fallback handler.
	SchemaType() string

	// ExtractFields reads doc and returns one descriptor per present
	// property the handler understands. doc is never modified. Guarded
	// fields already present in prior are skipped; prior may be nil.
	ExtractFields(doc any, prior types.FieldSet) types.FieldSet

	// ApplyEdits returns a copy of doc with buf applied. Keys the handler
	// does not know are written to a matching top-level property of the
	// entity when one exists.
	ApplyEdits(doc any, buf types.EditBuffer) any
}

// tableHandler interprets a declarative table.
type tableHandler struct {
	t *table
}

var _ Handler = (*tableHandler)(nil)

func newTableHandler(t *table) *tableHandler {
	return &tableHandler{t: t}
}

func (h *tableHandler) SchemaType() string { return h.t.schemaType }

func (h *tableHandler) ExtractFields(doc any, prior types.FieldSet) types.FieldSet {
	return h.t.extract(resolveTarget(doc, h.t.schemaType), prior)
}

func (h *tableHandler) ApplyEdits(doc any, buf types.EditBuffer) any {
	out := jsonld.Clone(doc)
	if len(buf) == 0 {
		return out
	}
	tg := resolveTarget(out, h.t.schemaType)
	claimed := make(map[string]bool, len(buf))
	h.t.apply(tg, buf, claimed)
	commonTable.without(h.t).apply(tg, buf, claimed)
	applyLiteral(tg.entity, buf, claimed)
	return out
}

// applyLiteral writes unclaimed keys to same-named top-level properties that
// already exist on the entity. Unknown keys with no such property are
// dropped.
func applyLiteral(entity any, buf types.EditBuffer, claimed map[string]bool) {
	obj, ok := jsonld.Object(entity)
	if !ok {
		return
	}
	for name, edit := range buf {
		if claimed[name] {
			continue
		}
		current, exists := obj[name]
		if !exists {
			continue
		}
		claimed[name] = true
		obj[name] = encodeEdit(literalKind(current), edit, current)
	}
}

func literalKind(current any) valueKind {
	if _, ok := jsonld.Array(current); ok {
		return kindList
	}
	return kindPlain
}
