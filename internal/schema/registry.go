package schema

import "github.com/mesh-intelligence/schemaboard/internal/jsonld"

// Registry dispatches documents to handlers by @type. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	handlers map[string]Handler
	fallback Handler
}

// NewRegistry builds a registry from handlers keyed by their SchemaType.
// fallback serves every unrecognized type; when nil the built-in
// name/description/url handler is used.
func NewRegistry(fallback Handler, handlers ...Handler) *Registry {
	if fallback == nil {
		fallback = DefaultHandler()
	}
	m := make(map[string]Handler, len(handlers))
	for _, h := range handlers {
		if h == nil || h.SchemaType() == "" {
			continue
		}
		m[h.SchemaType()] = h
	}
	return &Registry{handlers: m, fallback: fallback}
}

// DefaultRegistry returns a registry with the six built-in content types.
func DefaultRegistry() *Registry {
	handlers := make([]Handler, 0, len(builtinTables))
	for _, t := range builtinTables {
		handlers = append(handlers, newTableHandler(t))
	}
	return NewRegistry(nil, handlers...)
}

var builtinTables = []*table{
	faqPageTable,
	eventTable,
	organizationTable,
	productTable,
	articleTable,
	serviceTable,
}

// builtinTable returns the table for schemaType, or defaultTable.
func builtinTable(schemaType string) *table {
	for _, t := range builtinTables {
		if t.schemaType == schemaType {
			return t
		}
	}
	return defaultTable
}

// DefaultHandler returns the handler used for unrecognized types.
func DefaultHandler() Handler {
	return newTableHandler(defaultTable)
}

// Select returns the handler for schemaType, or the fallback handler. It
// never returns nil.
func (r *Registry) Select(schemaType string) Handler {
	if h, ok := r.handlers[schemaType]; ok {
		return h
	}
	return r.fallback
}

// Known reports whether schemaType has a dedicated handler.
func (r *Registry) Known(schemaType string) bool {
	_, ok := r.handlers[schemaType]
	return ok
}

// SchemaTypes returns the recognized type keys.
func (r *Registry) SchemaTypes() []string {
	out := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		out = append(out, k)
	}
	return out
}

// PrimaryType returns the content type that drives handler selection for
// doc: the first recognized @type of the document itself, else of the first
// @graph member with a recognized type, else the document's first declared
// type (possibly "").
func (r *Registry) PrimaryType(doc any) string {
	for _, t := range jsonld.Types(doc) {
		if r.Known(t) {
			return t
		}
	}
	if graph, ok := jsonld.Graph(doc); ok {
		for _, e := range graph {
			for _, t := range jsonld.Types(e) {
				if r.Known(t) {
					return t
				}
			}
		}
	}
	if ts := jsonld.Types(doc); len(ts) > 0 {
		return ts[0]
	}
	return ""
}

// Resolve selects the handler for doc.
func (r *Registry) Resolve(doc any) Handler {
	return r.Select(r.PrimaryType(doc))
}
