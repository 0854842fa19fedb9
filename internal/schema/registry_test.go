package schema

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

func TestRegistry_SelectIsTotal(t *testing.T) {
	r := DefaultRegistry()

	for _, typ := range []string{"", "Recipe", "faqpage", "FAQPage", "Event", "Organization", "Product", "Article", "Service", " Event"} {
		h := r.Select(typ)
		require.NotNil(t, h, "type %q", typ)
	}
	assert.Equal(t, "FAQPage", r.Select("FAQPage").SchemaType())
	assert.Equal(t, "", r.Select("faqpage").SchemaType(), "lookup is case sensitive")
}

func TestRegistry_SchemaTypes(t *testing.T) {
	got := DefaultRegistry().SchemaTypes()
	slices.Sort(got)
	assert.Equal(t, []string{"Article", "Event", "FAQPage", "Organization", "Product", "Service"}, got)
}

func TestRegistry_PrimaryType(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"single object", `{"@type":"Event"}`, "Event"},
		{"type array", `{"@type":["Thing","Product"]}`, "Product"},
		{"graph first recognized", organizationGraphDoc, "Organization"},
		{"graph article", articleGraphDoc, "Article"},
		{"unrecognized", `{"@type":"Recipe"}`, "Recipe"},
		{"graph unrecognized", `{"@graph":[{"@type":"WebPage"}]}`, ""},
		{"no type", `{"name":"x"}`, ""},
		{"not an object", `["Event"]`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.PrimaryType(mustDecode(t, tt.src)))
		})
	}
}

type stubHandler struct{ typ string }

func (s stubHandler) SchemaType() string { return s.typ }
func (s stubHandler) ExtractFields(any, types.FieldSet) types.FieldSet {
	return types.FieldSet{"stub": {Value: s.typ, FieldType: types.FieldText}}
}
func (s stubHandler) ApplyEdits(doc any, _ types.EditBuffer) any { return doc }

func TestNewRegistry_Injected(t *testing.T) {
	r := NewRegistry(stubHandler{}, stubHandler{typ: "Recipe"}, nil)

	assert.True(t, r.Known("Recipe"))
	assert.False(t, r.Known("Event"))
	fields := r.Resolve(mustDecode(t, recipeDoc)).ExtractFields(nil, nil)
	assert.Equal(t, "Recipe", fields["stub"].Value)
	assert.Equal(t, "", r.Select("Event").ExtractFields(nil, nil)["stub"].Value)
}
