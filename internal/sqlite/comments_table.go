package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

const selectComments = `SELECT comment_id, schema_id, text, user, created_at FROM comments`

var _ types.Table = (*commentsTable)(nil)

// commentsTable holds the discussion thread of each schema. Comments must
// reference an existing schema and carry non-blank text.
type commentsTable struct {
	backend *Backend
}

func (ct *commentsTable) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()
	if err := ct.backend.checkAttached(); err != nil {
		return nil, err
	}

	c, err := scanComment(ct.backend.db.QueryRow(selectComments+" WHERE comment_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting comment %s: %w", id, err)
	}
	return c, nil
}

func (ct *commentsTable) Set(id string, data any) (string, error) {
	c, ok := data.(*types.CommentEntry)
	if !ok || c == nil || c.SchemaID == "" {
		return "", types.ErrInvalidData
	}
	if strings.TrimSpace(c.Text) == "" {
		return "", fmt.Errorf("%w: comment text is required", types.ErrInvalidData)
	}

	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()
	if err := ct.backend.checkAttached(); err != nil {
		return "", err
	}
	db := ct.backend.db

	var one int
	err := db.QueryRow("SELECT 1 FROM schemas WHERE schema_id = ?", c.SchemaID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("schema %s: %w", c.SchemaID, types.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("checking schema %s: %w", c.SchemaID, err)
	}

	if id == "" {
		id = c.CommentID
	}
	if id == "" {
		if id, err = newID(); err != nil {
			return "", err
		}
	}
	created := c.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err = db.Exec(`INSERT INTO comments (comment_id, schema_id, text, user, created_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(comment_id) DO UPDATE SET
            text = excluded.text,
            user = excluded.user`,
		id, c.SchemaID, c.Text, nullString(c.User), formatTime(created))
	if err != nil {
		return "", fmt.Errorf("upserting comment: %w", err)
	}
	c.CommentID = id
	c.CreatedAt = created

	if err := ct.backend.persist(commentsJSONL, ct.backend.persistComments); err != nil {
		return "", err
	}
	return id, nil
}

func (ct *commentsTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	ct.backend.mu.Lock()
	defer ct.backend.mu.Unlock()
	if err := ct.backend.checkAttached(); err != nil {
		return err
	}

	res, err := ct.backend.db.Exec("DELETE FROM comments WHERE comment_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comment %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return types.ErrNotFound
	}
	return ct.backend.persist(commentsJSONL, ct.backend.persistComments)
}

// Fetch filters on schema_id and user, oldest first.
func (ct *commentsTable) Fetch(filter map[string]any) ([]any, error) {
	var q query
	for _, key := range []string{"schema_id", "user"} {
		if err := q.equals(filter, key, key); err != nil {
			return nil, err
		}
	}
	if err := q.paging(filter); err != nil {
		return nil, err
	}

	ct.backend.mu.RLock()
	defer ct.backend.mu.RUnlock()
	if err := ct.backend.checkAttached(); err != nil {
		return nil, err
	}

	comments, err := ct.backend.queryComments(q.build(selectComments, "created_at ASC, comment_id ASC"), q.args...)
	if err != nil {
		return nil, err
	}
	return toAny(comments), nil
}

func (b *Backend) queryComments(stmt string, args ...any) ([]*types.CommentEntry, error) {
	rows, err := b.db.Query(stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	return collectRows(rows, scanComment)
}

func (b *Backend) persistComments() error {
	comments, err := b.queryComments(selectComments + " ORDER BY created_at ASC, comment_id ASC")
	if err != nil {
		return err
	}
	lines, err := marshalRecords(comments)
	if err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.config.DataDir, commentsJSONL), lines)
}

func scanComment(row scanner) (*types.CommentEntry, error) {
	var c types.CommentEntry
	var user sql.NullString
	var createdAt string
	if err := row.Scan(&c.CommentID, &c.SchemaID, &c.Text, &user, &createdAt); err != nil {
		return nil, err
	}
	c.User = user.String
	var err error
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &c, nil
}
