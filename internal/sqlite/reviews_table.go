package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

const selectReviews = `SELECT review_id, schema_id, action, reviewer_id, notes, quality_score, created_at
    FROM reviews`

var _ types.Table = (*reviewsTable)(nil)

// reviewsTable is the audit log of reviewer actions. Entries must reference
// an existing schema.
type reviewsTable struct {
	backend *Backend
}

func (rt *reviewsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	rt.backend.mu.RLock()
	defer rt.backend.mu.RUnlock()
	if err := rt.backend.checkAttached(); err != nil {
		return nil, err
	}

	e, err := scanReview(rt.backend.db.QueryRow(selectReviews+" WHERE review_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting review %s: %w", id, err)
	}
	return e, nil
}

func (rt *reviewsTable) Set(id string, data any) (string, error) {
	e, ok := data.(*types.ReviewEntry)
	if !ok || e == nil || e.SchemaID == "" || e.Action == "" {
		return "", types.ErrInvalidData
	}

	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if err := rt.backend.checkAttached(); err != nil {
		return "", err
	}
	db := rt.backend.db

	var one int
	err := db.QueryRow("SELECT 1 FROM schemas WHERE schema_id = ?", e.SchemaID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("schema %s: %w", e.SchemaID, types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("checking schema %s: %w", e.SchemaID, err)
	}

	if id == "" {
		id = e.ReviewID
	}
	if id == "" {
		if id, err = newID(); err != nil {
			return "", err
		}
	}
	e.ReviewID = id
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err = db.Exec(`INSERT INTO reviews (review_id, schema_id, action, reviewer_id, notes, quality_score, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(review_id) DO UPDATE SET
            action = excluded.action,
            reviewer_id = excluded.reviewer_id,
            notes = excluded.notes,
            quality_score = excluded.quality_score`,
		id, e.SchemaID, e.Action, nullString(e.ReviewerID), nullString(e.Notes), e.QualityScore,
		formatTime(e.CreatedAt))
	if err != nil {
		return "", fmt.Errorf("upserting review: %w", err)
	}

	if err := rt.backend.persist(reviewsJSONL, rt.backend.persistReviews); err != nil {
		return "", err
	}
	return id, nil
}

func (rt *reviewsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	rt.backend.mu.Lock()
	defer rt.backend.mu.Unlock()
	if err := rt.backend.checkAttached(); err != nil {
		return err
	}

	res, err := rt.backend.db.Exec("DELETE FROM reviews WHERE review_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting review %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return rt.backend.persist(reviewsJSONL, rt.backend.persistReviews)
}

// Fetch filters on schema_id and action, ordered by creation time.
func (rt *reviewsTable) Fetch(filter map[string]any) ([]any, error) {
	var q query
	for _, key := range []string{"schema_id", "action"} {
		if err := q.equals(filter, key, key); err != nil {
			return nil, err
		}
	}
	if err := q.paging(filter); err != nil {
		return nil, err
	}

	rt.backend.mu.RLock()
	defer rt.backend.mu.RUnlock()
	if err := rt.backend.checkAttached(); err != nil {
		return nil, err
	}

	entries, err := rt.backend.queryReviews(q.build(selectReviews, "created_at ASC, review_id ASC"), q.args...)
	if err != nil {
		return nil, err
	}
	return toAny(entries), nil
}

func (b *Backend) queryReviews(stmt string, args ...any) ([]*types.ReviewEntry, error) {
	rows, err := b.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("querying reviews: %w", err)
	}
	return collectRows(rows, scanReview)
}

func (b *Backend) persistReviews() error {
	entries, err := b.queryReviews(selectReviews + " ORDER BY created_at ASC, review_id ASC")
	if err != nil {
		return err
	}
	lines, err := marshalRecords(entries)
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.config.DataDir, reviewsJSONL), lines)
}

func scanReview(row scanner) (*types.ReviewEntry, error) {
	var e types.ReviewEntry
	var createdAt string
	var reviewer, notes sql.NullString
	var score sql.NullInt64
	if err := row.Scan(&e.ReviewID, &e.SchemaID, &e.Action, &reviewer, &notes, &score, &createdAt); err != nil {
		return nil, err
	}
	e.ReviewerID = reviewer.String
	e.Notes = notes.String
	e.QualityScore = int(score.Int64)
	var err error
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &e, nil
}
