// Package workflow joins the schema store with the field editor and the AI
// reviewer. It owns the record lifecycle: import, edit sessions, saves with
// version increments, client approval and reviewer actions.
package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/internal/review"
	"github.com/mesh-intelligence/schemaboard/internal/schema"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

// Service runs workflow operations against an attached Store.
type Service struct {
	schemas  types.Table
	history  types.Table
	reviews  types.Table
	comments types.Table
	editor   *schema.Editor
	logger   *zap.Logger
	validate *validator.Validate
}

// New binds the service to the standard tables of store. A nil editor uses
// the default registry; a nil logger discards output.
func New(store types.Store, editor *schema.Editor, logger *zap.Logger) (*Service, error) {
	if editor == nil {
		editor = schema.NewEditor(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{editor: editor, logger: logger, validate: validator.New()}
	for name, dst := range map[string]*types.Table{
		types.TableSchemas:  &s.schemas,
		types.TableHistory:  &s.history,
		types.TableReviews:  &s.reviews,
		types.TableComments: &s.comments,
	} {
		tbl, err := store.GetTable(name)
		if err != nil {
			return nil, fmt.Errorf("getting table %s: %w", name, err)
		}
		*dst = tbl
	}
	return s, nil
}

// Editor returns the field editor the service derives field sets with.
func (s *Service) Editor() *schema.Editor { return s.editor }

// Session is an open edit session: the stored record, its field set and the
// buffer the editor starts from.
type Session struct {
	Record *types.SchemaRecord `json:"record"`
	Fields types.FieldSet      `json:"editable_fields"`
	Buffer types.EditBuffer    `json:"buffer"`
}

// Get returns the stored record.
func (s *Service) Get(id string) (*types.SchemaRecord, error) {
	got, err := s.schemas.Get(id)
	if err != nil {
		return nil, err
	}
	rec, ok := got.(*types.SchemaRecord)
	if !ok {
		return nil, fmt.Errorf("schema %s: %w", id, types.ErrInvalidData)
	}
	return rec, nil
}

// Open loads a record and derives its field set. Stored descriptors take
// precedence over freshly extracted ones.
func (s *Service) Open(id string) (Session, error) {
	rec, err := s.Get(id)
	if err != nil {
		return Session{}, err
	}
	fields := s.editor.GetFieldSet(rec.Document, rec.Fields)
	return Session{
		Record: rec,
		Fields: fields,
		Buffer: s.editor.InitialBuffer(fields),
	}, nil
}

// ImportRequest describes a document attached to a crawled page. Fields
// optionally carries descriptors that replace the extracted ones key by key.
type ImportRequest struct {
	ClientID string         `json:"client_id" validate:"required"`
	PageURL  string         `json:"page_url" validate:"required,url"`
	Document any            `json:"schema_data" validate:"required"`
	Fields   types.FieldSet `json:"editable_fields,omitempty"`
	Actor    string         `json:"actor"`
}

// Import stores a new record with its derived field set. The record starts
// pending client approval and pending AI review. Supplied descriptors must
// carry a known field type, and select fields their options.
func (s *Service) Import(req ImportRequest) (*types.SchemaRecord, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidData, describe(err))
	}
	if _, ok := jsonld.Object(req.Document); !ok {
		return nil, types.ErrInvalidDocument
	}
	if err := req.Fields.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidData, err)
	}
	fields := s.editor.GetFieldSet(req.Document, req.Fields)
	if err := fields.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrInvalidData, err)
	}
	rec := &types.SchemaRecord{
		ClientID:   req.ClientID,
		PageURL:    req.PageURL,
		SchemaType: s.editor.Registry().PrimaryType(req.Document),
		Document:   req.Document,
		Fields:     fields,
		Status:     types.StatusPending,
		AIStatus:   types.AIStatusPendingReview,
		UpdatedBy:  req.Actor,
	}
	if _, err := s.schemas.Set("", rec); err != nil {
		return nil, fmt.Errorf("importing schema: %w", err)
	}
	s.logger.Info("schema imported",
		zap.String("schema_id", rec.SchemaID),
		zap.String("client_id", rec.ClientID),
		zap.String("schema_type", rec.SchemaType),
		zap.Int("fields", len(rec.Fields)))
	return rec, nil
}

// SaveRequest carries an edit buffer and the approval attached to it.
// BaseVersion, when non-zero, must match the stored version.
type SaveRequest struct {
	Buffer      types.EditBuffer `json:"buffer"`
	Approval    types.Approval   `json:"approval"`
	BaseVersion int64            `json:"base_version,omitempty"`
}

// SaveResult is the stored record after a save and the names of the fields
// whose values changed.
type SaveResult struct {
	Record  *types.SchemaRecord `json:"record"`
	Changed []string            `json:"changed"`
}

// Save applies the buffer to the stored document, records the approval and
// writes the next version. An empty approval status keeps the current one.
func (s *Service) Save(id string, req SaveRequest) (SaveResult, error) {
	sess, err := s.Open(id)
	if err != nil {
		return SaveResult{}, err
	}
	rec := sess.Record
	if req.BaseVersion != 0 && req.BaseVersion != rec.Version {
		return SaveResult{}, fmt.Errorf("%w: schema %s is at version %d, edit based on %d",
			types.ErrVersionConflict, id, rec.Version, req.BaseVersion)
	}
	approval := req.Approval
	if approval.Status == "" {
		approval.Status = rec.Status
	}
	if err := approval.Validate(); err != nil {
		return SaveResult{}, fmt.Errorf("%w: %q", err, approval.Status)
	}

	patch := s.editor.ApplyPatch(rec.Document, sess.Fields, req.Buffer)
	if err := patch.Fields.Validate(); err != nil {
		return SaveResult{}, fmt.Errorf("%w: %w", types.ErrInvalidData, err)
	}
	rec.Document = patch.Document
	rec.Fields = patch.Fields
	rec.Status = approval.Status
	rec.Feedback = approval.Feedback
	rec.UpdatedBy = approval.Actor
	rec.Version += patch.VersionIncrement

	if _, err := s.schemas.Set(id, rec); err != nil {
		return SaveResult{}, fmt.Errorf("saving schema %s: %w", id, err)
	}
	s.logger.Info("schema saved",
		zap.String("schema_id", id),
		zap.Int64("version", rec.Version),
		zap.String("status", string(rec.Status)),
		zap.Strings("changed", patch.Changed))
	return SaveResult{Record: rec, Changed: patch.Changed}, nil
}

// SetStatus records a client decision without editing the document.
func (s *Service) SetStatus(id string, approval types.Approval) (*types.SchemaRecord, error) {
	res, err := s.Save(id, SaveRequest{Approval: approval})
	if err != nil {
		return nil, err
	}
	return res.Record, nil
}

// Analyze scores the stored document against the page text and logs the
// result. The record itself is not modified.
func (s *Service) Analyze(id, pageContent, reviewer string) (review.Analysis, error) {
	rec, err := s.Get(id)
	if err != nil {
		return review.Analysis{}, err
	}
	analysis := review.Analyze(rec.Document, pageContent, rec.PageURL)
	entry := &types.ReviewEntry{
		SchemaID:     id,
		Action:       types.ReviewActionAnalyze,
		ReviewerID:   reviewer,
		Notes:        analysis.Summary,
		QualityScore: analysis.QualityScore,
	}
	if _, err := s.reviews.Set("", entry); err != nil {
		return review.Analysis{}, fmt.Errorf("logging analysis: %w", err)
	}
	s.logger.Info("schema analyzed",
		zap.String("schema_id", id),
		zap.Int("quality_score", analysis.QualityScore),
		zap.String("suggested_status", analysis.SuggestedStatus))
	return analysis, nil
}

// AIReview records the reviewer's decision. Approval sends the record back
// to the client as pending; rejection marks it as needing revision.
func (s *Service) AIReview(id, reviewer string, approve bool, notes string) (*types.SchemaRecord, error) {
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	rec.AIStatus = types.AIStatusRejected
	rec.Status = types.StatusNeedsRevision
	if approve {
		rec.AIStatus = types.AIStatusApproved
		rec.Status = types.StatusPending
	}
	rec.ReviewerNotes = notes
	rec.UpdatedBy = reviewer
	rec.Version++
	if _, err := s.schemas.Set(id, rec); err != nil {
		return nil, fmt.Errorf("updating AI status of %s: %w", id, err)
	}
	if err := s.logReview(id, rec.AIStatus, reviewer, notes); err != nil {
		return nil, err
	}
	s.logger.Info("schema reviewed",
		zap.String("schema_id", id),
		zap.String("ai_status", rec.AIStatus),
		zap.String("reviewer", reviewer))
	return rec, nil
}

// AICorrect replaces the document with the reviewer's corrected version and
// re-derives the field set from it.
func (s *Service) AICorrect(id, reviewer string, doc any, notes string) (*types.SchemaRecord, error) {
	if _, ok := jsonld.Object(doc); !ok {
		return nil, types.ErrInvalidDocument
	}
	rec, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	rec.Document = doc
	rec.SchemaType = s.editor.Registry().PrimaryType(doc)
	rec.Fields = s.editor.GetFieldSet(doc, nil)
	rec.AIStatus = types.AIStatusCorrected
	rec.ReviewerNotes = notes
	rec.UpdatedBy = reviewer
	rec.Version++
	if _, err := s.schemas.Set(id, rec); err != nil {
		return nil, fmt.Errorf("correcting schema %s: %w", id, err)
	}
	if err := s.logReview(id, types.ReviewActionCorrect, reviewer, notes); err != nil {
		return nil, err
	}
	s.logger.Info("schema corrected",
		zap.String("schema_id", id),
		zap.Int64("version", rec.Version),
		zap.String("reviewer", reviewer))
	return rec, nil
}

func (s *Service) logReview(id, action, reviewer, notes string) error {
	entry := &types.ReviewEntry{SchemaID: id, Action: action, ReviewerID: reviewer, Notes: notes}
	if _, err := s.reviews.Set("", entry); err != nil {
		return fmt.Errorf("logging review of %s: %w", id, err)
	}
	return nil
}

// List returns the records matching filter. Keys follow the schemas table
// filters: client_id, page_url, schema_type, status, ai_status, limit and
// offset.
func (s *Service) List(filter map[string]any) ([]*types.SchemaRecord, error) {
	rows, err := s.schemas.Fetch(filter)
	if err != nil {
		return nil, err
	}
	return collect[*types.SchemaRecord](rows), nil
}

// History returns the snapshots of a record, oldest first.
func (s *Service) History(id string) ([]*types.HistoryEntry, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	rows, err := s.history.Fetch(map[string]any{"schema_id": id})
	if err != nil {
		return nil, err
	}
	return collect[*types.HistoryEntry](rows), nil
}

// Reviews returns the reviewer log of a record.
func (s *Service) Reviews(id string) ([]*types.ReviewEntry, error) {
	rows, err := s.reviews.Fetch(map[string]any{"schema_id": id})
	if err != nil {
		return nil, err
	}
	return collect[*types.ReviewEntry](rows), nil
}

// AddComment appends a message to the discussion thread of a record. The
// record and its version are left unchanged.
func (s *Service) AddComment(id, user, text string) (*types.CommentEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", types.ErrInvalidData)
	}
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	c := &types.CommentEntry{SchemaID: id, Text: text, User: user}
	if _, err := s.comments.Set("", c); err != nil {
		return nil, fmt.Errorf("commenting on %s: %w", id, err)
	}
	s.logger.Info("comment added",
		zap.String("schema_id", id),
		zap.String("comment_id", c.CommentID),
		zap.String("user", user))
	return c, nil
}

// Comments returns the discussion thread of a record, oldest first.
func (s *Service) Comments(id string) ([]*types.CommentEntry, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}
	rows, err := s.comments.Fetch(map[string]any{"schema_id": id})
	if err != nil {
		return nil, err
	}
	return collect[*types.CommentEntry](rows), nil
}

func collect[T any](rows []any) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if v, ok := r.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
