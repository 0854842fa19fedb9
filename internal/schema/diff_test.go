package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

func TestHasPendingChanges(t *testing.T) {
	fs := types.FieldSet{
		"name":       {Value: "Acme", FieldType: types.FieldText},
		"areaServed": {Value: []any{"US", "CA"}, FieldType: types.FieldText},
	}

	tests := []struct {
		name     string
		buf      types.EditBuffer
		feedback string
		want     bool
	}{
		{"empty buffer", types.EditBuffer{}, "", false},
		{"initial buffer", fs.Values(), "", false},
		{"scalar changed", types.EditBuffer{"name": "Acme Corp"}, "", true},
		{"same sequence other slice type", types.EditBuffer{"areaServed": []string{"US", "CA"}}, "", false},
		{"sequence reordered", types.EditBuffer{"areaServed": []any{"CA", "US"}}, "", true},
		{"new key", types.EditBuffer{"slogan": "Hi"}, "", true},
		{"feedback only", types.EditBuffer{}, "looks good", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasPendingChanges(tt.buf, fs, tt.feedback, ""))
		})
	}
}

func TestChangedFields_Sorted(t *testing.T) {
	fs := types.FieldSet{"a": {Value: "1"}, "b": {Value: "2"}, "c": {Value: "3"}}
	got := ChangedFields(types.EditBuffer{"c": "x", "a": "y", "b": "2"}, fs)
	assert.Equal(t, []string{"a", "c"}, got)
}

func TestHasPendingChanges_AfterGetFieldSet(t *testing.T) {
	ed := NewEditor(nil)
	doc := mustDecode(t, organizationGraphDoc)
	fs := ed.GetFieldSet(doc, nil)
	buf := ed.InitialBuffer(fs)

	assert.False(t, HasPendingChanges(types.EditBuffer{}, fs, "", ""))
	assert.False(t, HasPendingChanges(buf, fs, "", ""))

	buf["person_0_name"] = "Robert"
	assert.True(t, HasPendingChanges(buf, fs, "", ""))
}
