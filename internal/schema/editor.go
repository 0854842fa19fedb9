package schema

import "github.com/mesh-intelligence/schemaboard/pkg/types"

// Editor is the entry point collaborators use: it derives the field set for
// an edit session and merges a saved edit buffer back into the document.
type Editor struct {
	registry *Registry
}

// NewEditor returns an Editor dispatching through registry. A nil registry
// uses DefaultRegistry.
func NewEditor(registry *Registry) *Editor {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Editor{registry: registry}
}

// Registry returns the registry the editor dispatches through.
func (e *Editor) Registry() *Registry { return e.registry }

// Patch is the result of a save: the patched document, the field set
// carrying the edited values, and the version increment the store applies.
type Patch struct {
	Document         any
	Fields           types.FieldSet
	Changed          []string
	VersionIncrement int64
}

// GetFieldSet derives the editable field set for doc. Fields extracted by the
// type handler come first; descriptors in prior replace them key by key; the
// additive pass then fills generic keys neither produced. Every entry is
// normalized. doc is not modified.
func (e *Editor) GetFieldSet(doc any, prior types.FieldSet) types.FieldSet {
	schemaType := e.registry.PrimaryType(doc)
	h := e.registry.Select(schemaType)

	fields := h.ExtractFields(doc, prior)
	for name, d := range prior {
		fields[name] = d
	}
	for name, d := range Augment(doc, schemaType, fields) {
		fields[name] = d
	}
	return NormalizeSet(fields)
}

// ApplyPatch merges buf into a copy of doc and into a copy of fs. Keys of
// buf missing from fs are added as normalized bare values. Neither doc nor
// fs is modified.
func (e *Editor) ApplyPatch(doc any, fs types.FieldSet, buf types.EditBuffer) Patch {
	h := e.registry.Resolve(doc)
	changed := ChangedFields(buf, fs)

	fields := fs.Clone()
	if fields == nil {
		fields = types.FieldSet{}
	}
	for name, v := range buf {
		d, ok := fields[name]
		if !ok {
			fields[name] = Normalize(name, v)
			continue
		}
		d.Value = v
		fields[name] = d
	}

	return Patch{
		Document:         h.ApplyEdits(doc, buf),
		Fields:           NormalizeSet(fields),
		Changed:          changed,
		VersionIncrement: 1,
	}
}

// InitialBuffer returns the edit buffer an edit session starts from.
func (e *Editor) InitialBuffer(fs types.FieldSet) types.EditBuffer {
	return fs.Values()
}
