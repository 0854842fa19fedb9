package sqlite

import (
	"database/sql"
	"fmt"
)

const (
	createSchemas = `CREATE TABLE schemas (
    schema_id TEXT PRIMARY KEY,
    client_id TEXT NOT NULL,
    page_url TEXT NOT NULL,
    schema_type TEXT NOT NULL,
    schema_data TEXT NOT NULL,
    editable_fields TEXT,
    status TEXT NOT NULL,
    feedback TEXT,
    ai_status TEXT,
    ai_reviewer_notes TEXT,
    version INTEGER NOT NULL,
    updated_by TEXT,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createHistory = `CREATE TABLE history (
    history_id TEXT PRIMARY KEY,
    schema_id TEXT NOT NULL,
    version INTEGER NOT NULL,
    schema_data TEXT NOT NULL,
    editable_fields TEXT,
    status TEXT NOT NULL,
    feedback TEXT,
    changed_by TEXT,
    created_at TEXT NOT NULL
);`

	createReviews = `CREATE TABLE reviews (
    review_id TEXT PRIMARY KEY,
    schema_id TEXT NOT NULL,
    action TEXT NOT NULL,
    reviewer_id TEXT,
    notes TEXT,
    quality_score INTEGER,
    created_at TEXT NOT NULL
);`

	createComments = `CREATE TABLE comments (
    comment_id TEXT PRIMARY KEY,
    schema_id TEXT NOT NULL,
    text TEXT NOT NULL,
    user TEXT,
    created_at TEXT NOT NULL
);`
)

const (
	idxSchemasClient   = `CREATE INDEX idx_schemas_client ON schemas(client_id);`
	idxSchemasStatus   = `CREATE INDEX idx_schemas_status ON schemas(status);`
	idxSchemasAIStatus = `CREATE INDEX idx_schemas_ai_status ON schemas(ai_status);`
	idxSchemasPage     = `CREATE INDEX idx_schemas_page ON schemas(page_url);`
	idxHistoryVersion  = `CREATE UNIQUE INDEX idx_history_version ON history(schema_id, version);`
	idxReviewsSchema   = `CREATE INDEX idx_reviews_schema ON reviews(schema_id);`
	idxCommentsSchema  = `CREATE INDEX idx_comments_schema ON comments(schema_id);`
)

var schemaDDL = []string{createSchemas, createHistory, createReviews, createComments}

var indexDDL = []string{
	idxSchemasClient,
	idxSchemasStatus,
	idxSchemasAIStatus,
	idxSchemasPage,
	idxHistoryVersion,
	idxReviewsSchema,
	idxCommentsSchema,
}

func createSchema(db *sql.DB) error {
	for _, stmt := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
