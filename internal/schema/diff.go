package schema

import (
	"slices"

	"github.com/google/go-cmp/cmp"

	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

// HasPendingChanges reports whether buf holds a value that differs from the
// matching descriptor in fs, or whether the feedback text changed. Sequences
// compare element by element in order; scalars compare by value and type.
func HasPendingChanges(buf types.EditBuffer, fs types.FieldSet, currentFeedback, originalFeedback string) bool {
	if currentFeedback != originalFeedback {
		return true
	}
	return len(ChangedFields(buf, fs)) > 0
}

// ChangedFields returns the buffer keys whose values differ from fs, sorted.
func ChangedFields(buf types.EditBuffer, fs types.FieldSet) []string {
	var changed []string
	for name, v := range buf {
		var original any
		if d, ok := fs[name]; ok {
			original = d.Value
		}
		if !cmp.Equal(normalizeValue(v), normalizeValue(original)) {
			changed = append(changed, name)
		}
	}
	slices.Sort(changed)
	return changed
}
