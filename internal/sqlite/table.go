package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

// timeLayout is fixed width so timestamp columns sort lexically in time
// order, including writes made within the same second.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// query accumulates WHERE conditions and paging for a Fetch.
type query struct {
	conditions []string
	args       []any
	limit      int
	offset     int
}

// equals adds "column = ?" when filter holds key. The value must be a
// string (or a string-kinded enum); anything else is ErrInvalidFilter.
func (q *query) equals(filter map[string]any, key, column string) error {
	v, ok := filter[key]
	if !ok {
		return nil
	}
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case types.Status:
		s = string(x)
	default:
		return fmt.Errorf("%w: %s", types.ErrInvalidFilter, key)
	}
	q.conditions = append(q.conditions, column+" = ?")
	q.args = append(q.args, s)
	return nil
}

func (q *query) paging(filter map[string]any) error {
	for key, dst := range map[string]*int{"limit": &q.limit, "offset": &q.offset} {
		v, ok := filter[key]
		if !ok {
			continue
		}
		n, ok := toInt(v)
		if !ok || n < 0 {
			return fmt.Errorf("%w: %s", types.ErrInvalidFilter, key)
		}
		*dst = n
	}
	return nil
}

func (q *query) build(base, order string) string {
	var b strings.Builder
	b.WriteString(base)
	if len(q.conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.conditions, " AND "))
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(order)
	if q.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.limit)
		if q.offset > 0 {
			fmt.Fprintf(&b, " OFFSET %d", q.offset)
		}
	} else if q.offset > 0 {
		fmt.Fprintf(&b, " LIMIT -1 OFFSET %d", q.offset)
	}
	return b.String()
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), n == float64(int(n))
	}
	return 0, false
}

// encodeColumn serializes a JSON value for a TEXT column.
func encodeColumn(v any) (string, error) {
	data, err := jsonld.Encode(v)
	if err != nil {
		return "", fmt.Errorf("encoding column: %w", err)
	}
	return string(data), nil
}

func encodeFields(fs types.FieldSet) (sql.NullString, error) {
	if fs == nil {
		return sql.NullString{}, nil
	}
	s, err := encodeColumn(fs)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: s, Valid: true}, nil
}

func decodeFields(col sql.NullString) (types.FieldSet, error) {
	if !col.Valid || col.String == "" || col.String == "null" {
		return nil, nil
	}
	var fs types.FieldSet
	if err := jsonld.DecodeInto([]byte(col.String), &fs); err != nil {
		return nil, fmt.Errorf("parsing editable_fields: %w", err)
	}
	return fs, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func collectRows[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}

func toAny[T any](values []T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
