package schema

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

func TestEditor_GetFieldSetAugments(t *testing.T) {
	ed := NewEditor(nil)

	fs := ed.GetFieldSet(mustDecode(t, organizationGraphDoc), nil)

	require.Contains(t, fs, "brandName")
	assert.Equal(t, "AcmeOne", fs["brandName"].Value)
	assert.Equal(t, "Organization website", fs["url"].Description, "type-specific descriptor wins over the generic one")
}

func TestEditor_GetFieldSetPriorWins(t *testing.T) {
	ed := NewEditor(nil)
	prior := types.FieldSet{
		"name":   {Value: "Acme (edited)", FieldType: types.FieldText, Description: "Company"},
		"custom": {Value: "kept"},
	}

	fs := ed.GetFieldSet(mustDecode(t, serviceDoc), prior)

	assert.Equal(t, "Acme (edited)", fs["name"].Value)
	assert.Equal(t, "Company", fs["name"].Description)
	assert.Equal(t, "kept", fs["custom"].Value)
	assert.Equal(t, types.FieldText, fs["custom"].FieldType)
	assert.True(t, fs["custom"].Editable)
	assert.Contains(t, fs, "providerName")
}

func TestEditor_ApplyPatch(t *testing.T) {
	ed := NewEditor(nil)
	doc := mustDecode(t, eventDoc)
	fs := ed.GetFieldSet(doc, nil)
	docBefore := jsonld.Clone(doc)
	fsBefore := fs.Clone()

	buf := ed.InitialBuffer(fs)
	buf["name"] = "Data Summit 2026"
	buf["speaker_0_company"] = "Globex"
	buf["notes"] = "internal"

	patch := ed.ApplyPatch(doc, fs, buf)

	assert.Equal(t, int64(1), patch.VersionIncrement)
	assert.Equal(t, []string{"name", "notes", "speaker_0_company"}, patch.Changed)
	assert.Equal(t, "Data Summit 2026", patch.Fields["name"].Value)
	assert.Equal(t, "Event name", patch.Fields["name"].Description)
	assert.Equal(t, "Notes", patch.Fields["notes"].Description)

	obj := patch.Document.(map[string]any)
	assert.Equal(t, "Data Summit 2026", obj["name"])
	company, _ := jsonld.Lookup(obj["performer"].([]any)[0], jsonld.Path{"worksFor", "name"})
	assert.Equal(t, "Globex", company)
	assert.NotContains(t, obj, "notes")

	assert.Empty(t, cmp.Diff(docBefore, doc), "document input unchanged")
	assert.Equal(t, fsBefore, fs, "field set input unchanged")
}

func TestEditor_ApplyPatchNilFieldSet(t *testing.T) {
	ed := NewEditor(nil)
	patch := ed.ApplyPatch(mustDecode(t, recipeDoc), nil, types.EditBuffer{"name": "Stew"})

	assert.Equal(t, "Stew", patch.Document.(map[string]any)["name"])
	assert.Equal(t, "Stew", patch.Fields["name"].Value)
}

func TestEditor_ApplyPatchEventOfferDescription(t *testing.T) {
	ed := NewEditor(nil)
	doc := mustDecode(t, `{"@type":"Event","offers":{"description":"Old"}}`)
	fs := ed.GetFieldSet(doc, nil)
	require.Contains(t, fs, "offerDescription")
	assert.NotContains(t, fs, "offersDescription", "the event table already reads offers.description")

	buf := ed.InitialBuffer(fs)
	buf["offerDescription"] = "New"
	patch := ed.ApplyPatch(doc, fs, buf)

	assert.Equal(t, []string{"offerDescription"}, patch.Changed)
	got, ok := jsonld.Lookup(patch.Document, jsonld.Path{"offers", "description"})
	require.True(t, ok)
	assert.Equal(t, "New", got)
}

func TestEditor_ApplyPatchStaleGenericKey(t *testing.T) {
	ed := NewEditor(nil)
	doc := mustDecode(t, eventDoc)
	prior := types.FieldSet{"offersDescription": {Value: "Free entry", FieldType: types.FieldTextarea}}
	fs := ed.GetFieldSet(doc, prior)

	buf := ed.InitialBuffer(fs)
	buf["offerDescription"] = "Tickets at the door"
	patch := ed.ApplyPatch(doc, fs, buf)

	got, _ := jsonld.Lookup(patch.Document, jsonld.Path{"offers", "description"})
	assert.Equal(t, "Tickets at the door", got, "an unchanged generic key does not overwrite the edit")
}

func TestEditor_ApplyPatchEdits(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		edits types.EditBuffer
		want  map[string]any
	}{
		{
			name:  "faq",
			src:   faqDoc,
			edits: types.EditBuffer{"question_0": "What is BI?", "answer_2": "Yes", "publisherName": "Acme Inc"},
			want: map[string]any{
				"mainEntity.0.name":                "What is BI?",
				"mainEntity.2.acceptedAnswer.text": "Yes",
				"mainEntity.1.name":                "Q2",
				"publisher.name":                   "Acme Inc",
			},
		},
		{
			name:  "event",
			src:   eventDoc,
			edits: types.EditBuffer{"offerDescription": "Paid entry", "locationCity": "Munich", "agenda_1": "Workshop"},
			want: map[string]any{
				"offers.description":               "Paid entry",
				"location.address.addressLocality": "Munich",
				"agenda.1.name":                    "Workshop",
				"name":                             "Data Summit",
			},
		},
		{
			name:  "article",
			src:   articleGraphDoc,
			edits: types.EditBuffer{"headline": "Why BI matters", "authorName": "Ann Lee", "person_0_email": "c@x.test"},
			want: map[string]any{
				"@graph.0.headline":      "Why BI matters",
				"@graph.0.author.name":   "Ann Lee",
				"@graph.1.email":         "c@x.test",
				"@graph.0.datePublished": "2026-01-10",
			},
		},
	}
	ed := NewEditor(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDecode(t, tt.src)
			fs := ed.GetFieldSet(doc, nil)
			buf := ed.InitialBuffer(fs)
			for k, v := range tt.edits {
				require.Contains(t, fs, k)
				buf[k] = v
			}

			patch := ed.ApplyPatch(doc, fs, buf)

			assert.Len(t, patch.Changed, len(tt.edits))
			for dotted, want := range tt.want {
				assert.Equal(t, want, lookupDotted(t, patch.Document, dotted), dotted)
			}
		})
	}
}

// lookupDotted resolves a dotted path where numeric segments index arrays.
func lookupDotted(t *testing.T, doc any, dotted string) any {
	t.Helper()
	cur := doc
	for _, seg := range strings.Split(dotted, ".") {
		if i, err := strconv.Atoi(seg); err == nil {
			arr, ok := cur.([]any)
			require.True(t, ok, "segment %s of %s", seg, dotted)
			require.Less(t, i, len(arr))
			cur = arr[i]
			continue
		}
		obj, ok := cur.(map[string]any)
		require.True(t, ok, "segment %s of %s", seg, dotted)
		cur = obj[seg]
	}
	return cur
}
