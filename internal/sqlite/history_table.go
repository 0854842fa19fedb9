package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

const selectHistory = `SELECT history_id, schema_id, version, schema_data, editable_fields,
    status, feedback, changed_by, created_at FROM history`

var _ types.Table = (*historyTable)(nil)

// historyTable exposes the snapshots written by schemasTable.Set. It is
// read-only.
type historyTable struct {
	backend *Backend
}

func (ht *historyTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	ht.backend.mu.RLock()
	defer ht.backend.mu.RUnlock()
	if err := ht.backend.checkAttached(); err != nil {
		return nil, err
	}

	e, err := scanHistory(ht.backend.db.QueryRow(selectHistory+" WHERE history_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting history %s: %w", id, err)
	}
	return e, nil
}

func (ht *historyTable) Set(string, any) (string, error) { return "", types.ErrReadOnlyTable }

func (ht *historyTable) Delete(string) error { return types.ErrReadOnlyTable }

// Fetch filters on schema_id and orders by schema then version.
func (ht *historyTable) Fetch(filter map[string]any) ([]any, error) {
	var q query
	if err := q.equals(filter, "schema_id", "schema_id"); err != nil {
		return nil, err
	}
	if err := q.paging(filter); err != nil {
		return nil, err
	}

	ht.backend.mu.RLock()
	defer ht.backend.mu.RUnlock()
	if err := ht.backend.checkAttached(); err != nil {
		return nil, err
	}

	entries, err := ht.backend.queryHistory(q.build(selectHistory, "schema_id ASC, version ASC"), q.args...)
	if err != nil {
		return nil, err
	}
	return toAny(entries), nil
}

func (b *Backend) queryHistory(stmt string, args ...any) ([]*types.HistoryEntry, error) {
	rows, err := b.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	return collectRows(rows, scanHistory)
}

func (b *Backend) persistHistory() error {
	entries, err := b.queryHistory(selectHistory + " ORDER BY created_at ASC, version ASC")
	if err != nil {
		return err
	}
	lines, err := marshalRecords(entries)
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.config.DataDir, historyJSONL), lines)
}

func scanHistory(row scanner) (*types.HistoryEntry, error) {
	var e types.HistoryEntry
	var doc, status, createdAt string
	var fields, feedback, changedBy sql.NullString
	if err := row.Scan(&e.HistoryID, &e.SchemaID, &e.Version, &doc, &fields,
		&status, &feedback, &changedBy, &createdAt); err != nil {
		return nil, err
	}
	var err error
	if e.Document, err = jsonld.Decode([]byte(doc)); err != nil {
		return nil, err
	}
	if e.Fields, err = decodeFields(fields); err != nil {
		return nil, err
	}
	e.Status = types.Status(status)
	e.Feedback = feedback.String
	e.ChangedBy = changedBy.String
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &e, nil
}
