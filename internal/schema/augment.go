package schema

import "github.com/mesh-intelligence/schemaboard/pkg/types"

// Augment returns the generic fields (offersDescription, brandName, url)
// present on the entity that doc resolves to for schemaType and absent from
// existing. It never overrides a key existing already holds, and skips a
// generic property the type's own table reads under a different key.
func Augment(doc any, schemaType string, existing types.FieldSet) types.FieldSet {
	found := commonTable.without(builtinTable(schemaType)).extract(resolveTarget(doc, schemaType), nil)
	out := types.FieldSet{}
	for name, d := range found {
		if _, ok := existing[name]; ok {
			continue
		}
		out[name] = d
	}
	return out
}
