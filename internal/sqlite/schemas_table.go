package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

const selectSchemas = `SELECT schema_id, client_id, page_url, schema_type, schema_data, editable_fields,
    status, feedback, ai_status, ai_reviewer_notes, version, updated_by, created_at, updated_at
    FROM schemas`

var _ types.Table = (*schemasTable)(nil)

// schemasTable stores SchemaRecords. Updates are optimistically versioned:
// the caller passes the record with Version set to the stored version plus
// one. Every successful Set appends a history snapshot.
type schemasTable struct {
	backend *Backend
}

func (st *schemasTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	st.backend.mu.RLock()
	defer st.backend.mu.RUnlock()
	if err := st.backend.checkAttached(); err != nil {
		return nil, err
	}

	rec, err := scanSchema(st.backend.db.QueryRow(selectSchemas+" WHERE schema_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting schema %s: %w", id, err)
	}
	return rec, nil
}

// Set creates the record when id (or rec.SchemaID) is empty or unknown, at
// version 1. Otherwise rec.Version must be exactly one above the stored
// version or ErrVersionConflict is returned and nothing is written. rec is
// updated with the stored id, version and timestamps only after the write
// commits.
func (st *schemasTable) Set(id string, data any) (string, error) {
	rec, ok := data.(*types.SchemaRecord)
	if !ok || rec == nil {
		return "", types.ErrInvalidData
	}
	if rec.ClientID == "" {
		return "", fmt.Errorf("%w: client_id is required", types.ErrInvalidData)
	}
	if _, ok := jsonld.Object(rec.Document); !ok {
		return "", types.ErrInvalidDocument
	}
	status := rec.Status
	if status == "" {
		status = types.StatusPending
	}
	if !types.ValidStatus(status) {
		return "", types.ErrInvalidStatus
	}

	st.backend.mu.Lock()
	defer st.backend.mu.Unlock()
	if err := st.backend.checkAttached(); err != nil {
		return "", err
	}
	db := st.backend.db

	if id == "" {
		id = rec.SchemaID
	}
	now := time.Now().UTC()
	version, created := rec.Version, now

	var storedVersion int64
	var storedCreated string
	err := sql.ErrNoRows
	if id != "" {
		err = db.QueryRow("SELECT version, created_at FROM schemas WHERE schema_id = ?", id).
			Scan(&storedVersion, &storedCreated)
	}
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if id == "" {
			if id, err = newID(); err != nil {
				return "", err
			}
		}
		version = 1
	case err != nil:
		return "", fmt.Errorf("checking schema %s: %w", id, err)
	default:
		if rec.Version != storedVersion+1 {
			return "", fmt.Errorf("%w: schema %s is at version %d, got %d",
				types.ErrVersionConflict, id, storedVersion, rec.Version)
		}
		if created, err = parseTime(storedCreated); err != nil {
			return "", err
		}
	}

	doc, err := encodeColumn(rec.Document)
	if err != nil {
		return "", err
	}
	fields, err := encodeFields(rec.Fields)
	if err != nil {
		return "", err
	}
	histID, err := newID()
	if err != nil {
		return "", err
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO schemas (schema_id, client_id, page_url, schema_type, schema_data,
        editable_fields, status, feedback, ai_status, ai_reviewer_notes, version, updated_by,
        created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(schema_id) DO UPDATE SET
            client_id = excluded.client_id,
            page_url = excluded.page_url,
            schema_type = excluded.schema_type,
            schema_data = excluded.schema_data,
            editable_fields = excluded.editable_fields,
            status = excluded.status,
            feedback = excluded.feedback,
            ai_status = excluded.ai_status,
            ai_reviewer_notes = excluded.ai_reviewer_notes,
            version = excluded.version,
            updated_by = excluded.updated_by,
            updated_at = excluded.updated_at`,
		id, rec.ClientID, rec.PageURL, rec.SchemaType, doc, fields,
		string(status), nullString(rec.Feedback), nullString(rec.AIStatus),
		nullString(rec.ReviewerNotes), version, nullString(rec.UpdatedBy),
		formatTime(created), formatTime(now))
	if err != nil {
		return "", fmt.Errorf("upserting schema: %w", err)
	}

	_, err = tx.Exec(`INSERT INTO history (history_id, schema_id, version, schema_data,
        editable_fields, status, feedback, changed_by, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		histID, id, version, doc, fields, string(status),
		nullString(rec.Feedback), nullString(rec.UpdatedBy), formatTime(now))
	if err != nil {
		return "", fmt.Errorf("recording history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing schema: %w", err)
	}
	rec.SchemaID = id
	rec.Status = status
	rec.Version = version
	rec.CreatedAt = created
	rec.UpdatedAt = now

	if err := st.backend.persist(schemasJSONL, st.backend.persistSchemas); err != nil {
		return "", err
	}
	if err := st.backend.persist(historyJSONL, st.backend.persistHistory); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes the record together with its history, review log and
// comment thread.
func (st *schemasTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	st.backend.mu.Lock()
	defer st.backend.mu.Unlock()
	if err := st.backend.checkAttached(); err != nil {
		return err
	}
	db := st.backend.db

	var one int
	err := db.QueryRow("SELECT 1 FROM schemas WHERE schema_id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return types.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("checking schema %s: %w", id, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()
	for _, stmt := range []string{
		"DELETE FROM history WHERE schema_id = ?",
		"DELETE FROM reviews WHERE schema_id = ?",
		"DELETE FROM comments WHERE schema_id = ?",
		"DELETE FROM schemas WHERE schema_id = ?",
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			return fmt.Errorf("deleting schema %s: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}

	b := st.backend
	if err := b.persist(schemasJSONL, b.persistSchemas); err != nil {
		return err
	}
	if err := b.persist(historyJSONL, b.persistHistory); err != nil {
		return err
	}
	if err := b.persist(reviewsJSONL, b.persistReviews); err != nil {
		return err
	}
	return b.persist(commentsJSONL, b.persistComments)
}

// Fetch filters on client_id, page_url, schema_type, status and ai_status,
// all exact matches, plus limit and offset. Results are ordered by
// creation time.
func (st *schemasTable) Fetch(filter map[string]any) ([]any, error) {
	var q query
	for _, key := range []string{"client_id", "page_url", "schema_type", "status", "ai_status"} {
		if err := q.equals(filter, key, key); err != nil {
			return nil, err
		}
	}
	if err := q.paging(filter); err != nil {
		return nil, err
	}

	st.backend.mu.RLock()
	defer st.backend.mu.RUnlock()
	if err := st.backend.checkAttached(); err != nil {
		return nil, err
	}

	recs, err := st.backend.querySchemas(q.build(selectSchemas, "created_at ASC, schema_id ASC"), q.args...)
	if err != nil {
		return nil, err
	}
	return toAny(recs), nil
}

func (b *Backend) querySchemas(stmt string, args ...any) ([]*types.SchemaRecord, error) {
	rows, err := b.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("querying schemas: %w", err)
	}
	return collectRows(rows, scanSchema)
}

func (b *Backend) persistSchemas() error {
	recs, err := b.querySchemas(selectSchemas + " ORDER BY created_at ASC, schema_id ASC")
	if err != nil {
		return err
	}
	lines, err := marshalRecords(recs)
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.config.DataDir, schemasJSONL), lines)
}

func scanSchema(row scanner) (*types.SchemaRecord, error) {
	var rec types.SchemaRecord
	var doc, status, createdAt, updatedAt string
	var fields, feedback, aiStatus, notes, updatedBy sql.NullString
	if err := row.Scan(&rec.SchemaID, &rec.ClientID, &rec.PageURL, &rec.SchemaType, &doc, &fields,
		&status, &feedback, &aiStatus, &notes, &rec.Version, &updatedBy, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if rec.Document, err = jsonld.Decode([]byte(doc)); err != nil {
		return nil, err
	}
	if rec.Fields, err = decodeFields(fields); err != nil {
		return nil, err
	}
	rec.Status = types.Status(status)
	rec.Feedback = feedback.String
	rec.AIStatus = aiStatus.String
	rec.ReviewerNotes = notes.String
	rec.UpdatedBy = updatedBy.String
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}
