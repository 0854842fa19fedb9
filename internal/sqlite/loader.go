package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
)

// jsonlTableMapping maps JSONL files to SQLite tables and the JSON keys
// loaded into each column. Keys and columns share names.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{schemasJSONL, "schemas", []string{
		"schema_id", "client_id", "page_url", "schema_type", "schema_data", "editable_fields",
		"status", "feedback", "ai_status", "ai_reviewer_notes", "version", "updated_by",
		"created_at", "updated_at",
	}},
	{historyJSONL, "history", []string{
		"history_id", "schema_id", "version", "schema_data", "editable_fields",
		"status", "feedback", "changed_by", "created_at",
	}},
	{reviewsJSONL, "reviews", []string{
		"review_id", "schema_id", "action", "reviewer_id", "notes", "quality_score", "created_at",
	}},
	{commentsJSONL, "comments", []string{
		"comment_id", "schema_id", "text", "user", "created_at",
	}},
}

// loadAllJSONL loads every JSONL file into its table in one transaction.
// Malformed lines and rows violating constraints are skipped; unknown keys
// are ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, m := range jsonlTableMapping {
		records, err := readJSONL(filepath.Join(dataDir, m.file))
		if err != nil {
			return err
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, m.table, m.columns, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", m.file, m.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

func insertRecords(tx *sql.Tx, table string, columns []string, records [][]byte) error {
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		decoded, err := jsonld.Decode(rec)
		if err != nil {
			continue
		}
		obj, ok := jsonld.Object(decoded)
		if !ok {
			continue
		}
		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = columnValue(obj[col])
			if ts, ok := args[i].(string); ok && strings.HasSuffix(col, "_at") {
				if t, err := parseTime(ts); err == nil {
					args[i] = formatTime(t)
				}
			}
		}
		// Rows that violate constraints are skipped.
		_, _ = stmt.Exec(args...)
	}
	return nil
}

// columnValue converts a decoded JSON value into a SQLite argument. Objects
// and arrays are stored as JSON text.
func columnValue(v any) any {
	switch x := v.(type) {
	case map[string]any, []any:
		data, err := jsonld.Encode(x)
		if err != nil {
			return nil
		}
		return string(data)
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	}
	return v
}
