package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/internal/sqlite"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

const serviceDoc = `{
  "@context": "https://schema.org",
  "@type": "Service",
  "name": "Managed BI",
  "description": "Managed cloud dashboards as a service",
  "provider": {"@type": "Organization", "name": "Acme"},
  "areaServed": ["US", "UK"],
  "url": "https://x.test/services/bi"
}`

func newService(t *testing.T) *Service {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { _ = b.Detach() })
	svc, err := New(b, nil, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func decode(t *testing.T, s string) any {
	t.Helper()
	doc, err := jsonld.Decode([]byte(s))
	require.NoError(t, err)
	return doc
}

func importService(t *testing.T, svc *Service) *types.SchemaRecord {
	t.Helper()
	rec, err := svc.Import(ImportRequest{
		ClientID: "client-1",
		PageURL:  "https://x.test/services/bi",
		Document: decode(t, serviceDoc),
		Actor:    "crawler",
	})
	require.NoError(t, err)
	return rec
}

func TestImport(t *testing.T) {
	svc := newService(t)
	rec := importService(t, svc)

	assert.NotEmpty(t, rec.SchemaID)
	assert.Equal(t, "Service", rec.SchemaType)
	assert.Equal(t, types.StatusPending, rec.Status)
	assert.Equal(t, types.AIStatusPendingReview, rec.AIStatus)
	assert.Equal(t, int64(1), rec.Version)
	assert.Equal(t, "Managed BI", rec.Fields["name"].Value)
	assert.Equal(t, "Acme", rec.Fields["providerName"].Value)
}

func TestImport_Validation(t *testing.T) {
	svc := newService(t)
	tests := []struct {
		name    string
		req     ImportRequest
		wantErr error
	}{
		{"missing client", ImportRequest{PageURL: "https://x.test", Document: map[string]any{}}, types.ErrInvalidData},
		{"bad url", ImportRequest{ClientID: "c", PageURL: "not a url", Document: map[string]any{}}, types.ErrInvalidData},
		{"missing document", ImportRequest{ClientID: "c", PageURL: "https://x.test"}, types.ErrInvalidData},
		{"array document", ImportRequest{ClientID: "c", PageURL: "https://x.test", Document: []any{}}, types.ErrInvalidDocument},
		{"unknown field type", ImportRequest{
			ClientID: "c", PageURL: "https://x.test", Document: map[string]any{"@type": "Thing"},
			Fields: types.FieldSet{"brandColor": {Value: "#f00", FieldType: "color"}},
		}, types.ErrInvalidFieldType},
		{"select without options", ImportRequest{
			ClientID: "c", PageURL: "https://x.test", Document: map[string]any{"@type": "Thing"},
			Fields: types.FieldSet{"tier": {Value: "gold", FieldType: types.FieldSelect}},
		}, types.ErrMissingOptions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Import(tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestImport_SuppliedFields(t *testing.T) {
	svc := newService(t)
	rec, err := svc.Import(ImportRequest{
		ClientID: "client-1",
		PageURL:  "https://x.test/services/bi",
		Document: decode(t, serviceDoc),
		Fields: types.FieldSet{
			"name": {Value: "Managed BI", FieldType: types.FieldText, Description: "Service title"},
			"tier": {Value: "gold", FieldType: types.FieldSelect, Options: []string{"gold", "silver"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Service title", rec.Fields["name"].Description)
	assert.Equal(t, []string{"gold", "silver"}, rec.Fields["tier"].Options)
	assert.NoError(t, rec.Fields.Validate())
}

func TestOpen(t *testing.T) {
	svc := newService(t)
	rec := importService(t, svc)

	sess, err := svc.Open(rec.SchemaID)
	require.NoError(t, err)
	assert.Equal(t, rec.SchemaID, sess.Record.SchemaID)
	assert.Equal(t, "Managed BI", sess.Buffer["name"])
	assert.Equal(t, len(sess.Fields), len(sess.Buffer))

	_, err = svc.Open("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSave(t *testing.T) {
	svc := newService(t)
	rec := importService(t, svc)
	sess, err := svc.Open(rec.SchemaID)
	require.NoError(t, err)

	buf := sess.Buffer
	buf["name"] = "Managed Analytics"
	buf["providerName"] = "Acme Ltd"
	res, err := svc.Save(rec.SchemaID, SaveRequest{
		Buffer:      buf,
		Approval:    types.Approval{Status: types.StatusApproved, Feedback: "looks right", Actor: "client-user"},
		BaseVersion: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "providerName"}, res.Changed)
	assert.Equal(t, int64(2), res.Record.Version)

	stored, err := svc.Get(rec.SchemaID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, stored.Status)
	assert.Equal(t, "looks right", stored.Feedback)
	assert.Equal(t, "client-user", stored.UpdatedBy)
	assert.Equal(t, "Managed Analytics", stored.Fields["name"].Value)
	name, _ := jsonld.Lookup(stored.Document, jsonld.Path{"name"})
	assert.Equal(t, "Managed Analytics", name)
	provider, _ := jsonld.Lookup(stored.Document, jsonld.Path{"provider", "name"})
	assert.Equal(t, "Acme Ltd", provider)

	history, err := svc.History(rec.SchemaID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, int64(1), history[0].Version)
	assert.Equal(t, int64(2), history[1].Version)
	assert.Equal(t, "client-user", history[1].ChangedBy)
}

func TestSave_Errors(t *testing.T) {
	svc := newService(t)
	rec := importService(t, svc)

	_, err := svc.Save(rec.SchemaID, SaveRequest{Approval: types.Approval{Status: "done"}})
	assert.ErrorIs(t, err, types.ErrInvalidStatus)

	_, err = svc.Save(rec.SchemaID, SaveRequest{BaseVersion: 7})
	assert.ErrorIs(t, err, types.ErrVersionConflict)

	_, err = svc.Save("missing", SaveRequest{})
	assert.ErrorIs(t, err, types.ErrNotFound)

	stored, err := svc.Get(rec.SchemaID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version)
}

func TestSave_EmptyStatusKeepsCurrent(t *testing.T) {
	svc := newService(t)
	rec := importService(t, svc)

	res, err := svc.Save(rec.SchemaID, SaveRequest{Buffer: types.EditBuffer{"name": "Other"}})
	require.NoError(t, err)
	assert.Equal(t, types.StatusPending, res.Record.Status)
	assert.Equal(t, []string{"name"}, res.Changed)
}

func TestSetStatus(t *testing.T) {
	svc := newService(t)
	rec := importService(t, svc)

	got, err := svc.SetStatus(rec.SchemaID, types.Approval{Status: types.StatusRejected, Feedback: "wrong address"})
	require.NoError(t, err)
	assert.Equal(t, types.StatusRejected, got.Status)
	assert.Equal(t, "wrong address", got.Feedback)
	assert.Equal(t, int64(2), got.Version)
}

func TestAnalyze(t *testing.T) {
	svc := newService(t)
	rec := importService(t, svc)

	a, err := svc.Analyze(rec.SchemaID, "Acme runs managed cloud dashboards as a service", "reviewer-1")
	require.NoError(t, err)
	assert.NotEmpty(t, a.Summary)

	entries, err := svc.Reviews(rec.SchemaID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.ReviewActionAnalyze, entries[0].Action)
	assert.Equal(t, a.QualityScore, entries[0].QualityScore)
	assert.Equal(t, "reviewer-1", entries[0].ReviewerID)

	stored, err := svc.Get(rec.SchemaID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version)
}

func TestAIReview(t *testing.T) {
	tests := []struct {
		name       string
		approve    bool
		wantAI     string
		wantStatus types.Status
	}{
		{"approve", true, types.AIStatusApproved, types.StatusPending},
		{"reject", false, types.AIStatusRejected, types.StatusNeedsRevision},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(t)
			rec := importService(t, svc)

			got, err := svc.AIReview(rec.SchemaID, "reviewer-1", tt.approve, "checked")
			require.NoError(t, err)
			assert.Equal(t, tt.wantAI, got.AIStatus)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, "checked", got.ReviewerNotes)
			assert.Equal(t, int64(2), got.Version)

			entries, err := svc.Reviews(rec.SchemaID)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantAI, entries[0].Action)
		})
	}
}

func TestAICorrect(t *testing.T) {
	svc := newService(t)
	rec := importService(t, svc)

	corrected := decode(t, `{"@context": "https://schema.org", "@type": "Organization", "name": "Acme", "telephone": "+1-555"}`)
	got, err := svc.AICorrect(rec.SchemaID, "reviewer-1", corrected, "was an organization page")
	require.NoError(t, err)
	assert.Equal(t, types.AIStatusCorrected, got.AIStatus)
	assert.Equal(t, "Organization", got.SchemaType)
	assert.Equal(t, int64(2), got.Version)
	_, hadProvider := got.Fields["providerName"]
	assert.False(t, hadProvider)

	_, err = svc.AICorrect(rec.SchemaID, "reviewer-1", "not a document", "")
	assert.ErrorIs(t, err, types.ErrInvalidDocument)
}

func TestList(t *testing.T) {
	svc := newService(t)
	importService(t, svc)
	_, err := svc.Import(ImportRequest{
		ClientID: "client-2",
		PageURL:  "https://y.test/",
		Document: decode(t, `{"@type": "Organization", "name": "Other"}`),
	})
	require.NoError(t, err)

	all, err := svc.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	one, err := svc.List(map[string]any{"client_id": "client-2"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "Organization", one[0].SchemaType)

	_, err = svc.List(map[string]any{"status": 3})
	assert.ErrorIs(t, err, types.ErrInvalidFilter)
}

func TestHistory_UnknownSchema(t *testing.T) {
	svc := newService(t)
	_, err := svc.History("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestAddComment(t *testing.T) {
	svc := newService(t)
	rec := importService(t, svc)

	c, err := svc.AddComment(rec.SchemaID, "client-user", "  Please add our Berlin office  ")
	require.NoError(t, err)
	assert.NotEmpty(t, c.CommentID)
	assert.Equal(t, "Please add our Berlin office", c.Text)
	_, err = svc.AddComment(rec.SchemaID, "editor", "Done")
	require.NoError(t, err)

	thread, err := svc.Comments(rec.SchemaID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "client-user", thread[0].User)
	assert.Equal(t, "Done", thread[1].Text)

	got, err := svc.Get(rec.SchemaID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version, "comments do not create a version")

	_, err = svc.AddComment(rec.SchemaID, "client-user", " ")
	assert.ErrorIs(t, err, types.ErrInvalidData)
	_, err = svc.AddComment("missing", "client-user", "hello")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = svc.Comments("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
}
