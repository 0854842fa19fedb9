package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

// ListSeparator joins sequence values into one editable string and splits
// them back on save.
const ListSeparator = ", "

// schemaOrgPrefix is stripped from enumeration values such as availability.
const schemaOrgPrefix = "https://schema.org/"

// valueKind selects how a leaf is read into a field value and written back.
type valueKind int

const (
	// kindPlain reads a present scalar and writes the edit as-is.
	kindPlain valueKind = iota
	// kindList reads a scalar or a sequence joined with ListSeparator and
	// splits the edit back when the stored value is a sequence.
	kindList
	// kindEnum strips the schema.org prefix on read and restores it on write.
	kindEnum
	// kindHours reads an {opens, closes} object as "opens - closes".
	kindHours
)

// rule maps one field to one or more alternative JSON paths. On read the
// first present path wins; on write the same path is targeted so a value
// keeps the shape it was read from.
type rule struct {
	name        string
	paths       []jsonld.Path
	fieldType   types.FieldType
	description string
	options     []string
	kind        valueKind

	// describe overrides description for indexed rules that mention data
	// from the element.
	describe func(elem any, i int) string

	// guarded rules are skipped when a prior field set already holds the key.
	guarded bool
}

// group expands a repeated structure into indexed fields. Rule names and
// descriptions carry a %d that is replaced by the element index (names) or
// the 1-based position (descriptions).
type group struct {
	paths []jsonld.Path
	rules []rule
}

// sibling harvests fields from other entities in the same @graph.
type sibling struct {
	graphType string
	indexed   bool
	rules     []rule
}

// table is the declarative description of one content type.
type table struct {
	schemaType string
	fields     []rule
	groups     []group
	siblings   []sibling
}

// without returns t minus the top-level rules whose paths owner already reads
// under another name. A nil owner returns t unchanged.
func (t *table) without(owner *table) *table {
	if owner == nil {
		return t
	}
	out := &table{schemaType: t.schemaType}
	for _, r := range t.fields {
		if !owner.readsElsewhere(r) {
			out.fields = append(out.fields, r)
		}
	}
	return out
}

func (t *table) readsElsewhere(r rule) bool {
	for _, own := range t.fields {
		if own.name == r.name {
			continue
		}
		for _, a := range own.paths {
			for _, b := range r.paths {
				if slices.Equal(a, b) {
					return true
				}
			}
		}
	}
	return false
}

func p(keys ...string) jsonld.Path { return jsonld.Path(keys) }

func paths(ps ...jsonld.Path) []jsonld.Path { return ps }

func indexedName(tmpl string, i int) string {
	if strings.Contains(tmpl, "%d") {
		return fmt.Sprintf(tmpl, i)
	}
	return tmpl
}

func indexedDescription(r rule, elem any, i int) string {
	if r.describe != nil {
		return r.describe(elem, i)
	}
	if i >= 0 && strings.Contains(r.description, "%d") {
		return fmt.Sprintf(r.description, i+1)
	}
	return r.description
}

// read resolves the rule against from. It returns the field value and the
// index of the path it came from.
func (r rule) read(from any) (any, int, bool) {
	for idx, path := range r.paths {
		leaf, ok := jsonld.Lookup(from, path)
		if !ok {
			continue
		}
		if v, ok := decodeLeaf(r.kind, leaf); ok {
			return v, idx, true
		}
	}
	return nil, -1, false
}

func decodeLeaf(kind valueKind, leaf any) (any, bool) {
	switch kind {
	case kindList:
		if arr, ok := jsonld.Array(leaf); ok {
			s := jsonld.JoinList(arr, ListSeparator)
			return s, s != ""
		}
		if jsonld.Present(leaf) {
			return leaf, true
		}
	case kindEnum:
		s, ok := leaf.(string)
		if !ok || s == "" {
			return nil, false
		}
		return strings.Replace(s, schemaOrgPrefix, "", 1), true
	case kindHours:
		opens := jsonld.String(mustLookup(leaf, "opens"))
		closes := jsonld.String(mustLookup(leaf, "closes"))
		if opens == "" || closes == "" {
			return nil, false
		}
		return opens + " - " + closes, true
	default:
		if jsonld.Present(leaf) {
			return leaf, true
		}
	}
	return nil, false
}

func mustLookup(v any, key string) any {
	leaf, _ := jsonld.Lookup(v, p(key))
	return leaf
}

// encodeEdit converts an edit value into the JSON-LD value stored at the
// target. current is the value presently stored there, possibly nil.
func encodeEdit(kind valueKind, edit, current any) any {
	switch kind {
	case kindList:
		if arr, ok := jsonld.Array(edit); ok {
			return arr
		}
		if _, wasList := jsonld.Array(current); wasList {
			return jsonld.SplitList(jsonld.String(edit), ListSeparator)
		}
		return edit
	case kindEnum:
		s := jsonld.String(edit)
		if s == "" || strings.Contains(s, "schema.org") {
			return s
		}
		return schemaOrgPrefix + s
	case kindHours:
		opens, closes, _ := strings.Cut(jsonld.String(edit), " - ")
		out := map[string]any{}
		if obj, ok := jsonld.Object(current); ok {
			out = obj
		}
		out["opens"] = strings.TrimSpace(opens)
		out["closes"] = strings.TrimSpace(closes)
		return out
	default:
		return coerceNumber(edit, current)
	}
}

// write applies edit to from. slot replaces from itself for rules whose path
// is empty (array elements that are bare strings).
func (r rule) write(from any, edit any, slot func(any)) bool {
	target := 0
	var current any
	if v, idx, ok := r.read(from); ok {
		if cmp.Equal(normalizeValue(v), normalizeValue(edit)) {
			return true
		}
		target = idx
	}
	if len(r.paths) == 0 {
		return false
	}
	path := r.paths[target]
	current, _ = jsonld.Lookup(from, path)
	value := encodeEdit(r.kind, edit, current)
	if len(path) == 0 {
		if slot == nil {
			return false
		}
		slot(value)
		return true
	}
	return jsonld.Set(from, path, value)
}

func (r rule) descriptor(value any, elem any, i int) types.FieldDescriptor {
	d := types.FieldDescriptor{
		Value:       value,
		FieldType:   r.fieldType,
		Editable:    true,
		Description: indexedDescription(r, elem, i),
	}
	if len(r.options) > 0 {
		d.Options = append([]string(nil), r.options...)
	}
	return d
}

// extract walks the table over a resolved target and returns one descriptor
// per present property.
func (t *table) extract(tg target, prior types.FieldSet) types.FieldSet {
	fields := types.FieldSet{}
	emit := func(r rule, name string, from any, i int) {
		if r.guarded && prior != nil {
			if _, covered := prior[name]; covered {
				return
			}
		}
		v, _, ok := r.read(from)
		if !ok {
			return
		}
		fields[name] = r.descriptor(v, from, i)
	}

	for _, r := range t.fields {
		emit(r, r.name, tg.entity, -1)
	}
	for _, g := range t.groups {
		arr, ok := g.array(tg.entity)
		if !ok {
			continue
		}
		for i, elem := range arr {
			for _, r := range g.rules {
				emit(r, indexedName(r.name, i), elem, i)
			}
		}
	}
	for _, s := range t.siblings {
		for i, ent := range tg.siblings(s.graphType, s.indexed) {
			for _, r := range s.rules {
				emit(r, indexedName(r.name, i), ent, i)
			}
		}
	}
	return fields
}

func (g group) array(entity any) ([]any, bool) {
	for _, path := range g.paths {
		leaf, ok := jsonld.Lookup(entity, path)
		if !ok {
			continue
		}
		if arr, ok := leaf.([]any); ok {
			return arr, true
		}
	}
	return nil, false
}

// apply patches buf into the target in place and returns the keys it
// claimed. tg must point into a private copy of the document.
func (t *table) apply(tg target, buf types.EditBuffer, claimed map[string]bool) {
	use := func(r rule, name string, from any, slot func(any)) {
		if claimed[name] {
			return
		}
		edit, ok := buf[name]
		if !ok {
			return
		}
		claimed[name] = true
		r.write(from, edit, slot)
	}

	for _, r := range t.fields {
		use(r, r.name, tg.entity, nil)
	}
	for _, g := range t.groups {
		arr, ok := g.array(tg.entity)
		if !ok {
			continue
		}
		for i := range arr {
			slot := func(v any) { arr[i] = v }
			for _, r := range g.rules {
				use(r, indexedName(r.name, i), arr[i], slot)
			}
		}
	}
	for _, s := range t.siblings {
		for i, ent := range tg.siblings(s.graphType, s.indexed) {
			for _, r := range s.rules {
				use(r, indexedName(r.name, i), ent, nil)
			}
		}
	}
}

// normalizeValue folds typed sequences into []any so comparisons do not
// depend on the slice element type.
func normalizeValue(v any) any {
	if arr, ok := jsonld.Array(v); ok {
		return arr
	}
	return v
}
