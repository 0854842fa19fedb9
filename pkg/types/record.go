package types

import (
	"errors"
	"time"
)

// Status is the client-facing approval state of a schema.
type Status string

// Approval states.
const (
	StatusPending       Status = "pending"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
	StatusNeedsRevision Status = "needs_revision"
)

// ValidStatus reports whether s is a recognized approval state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusNeedsRevision:
		return true
	}
	return false
}

// AI reviewer states, tracked separately from Status.
const (
	AIStatusPendingReview = "pending_ai_review"
	AIStatusApproved      = "ai_approved"
	AIStatusRejected      = "ai_rejected"
	AIStatusCorrected     = "corrected"
)

// Review log actions.
const (
	ReviewActionAnalyze = "analyze"
	ReviewActionApprove = AIStatusApproved
	ReviewActionReject  = AIStatusRejected
	ReviewActionCorrect = AIStatusCorrected
)

// Approval carries the metadata attached to a save. The core passes it through
// without interpreting Status.
type Approval struct {
	Status   Status `json:"status" validate:"required,status"`
	Feedback string `json:"feedback"`
	Actor    string `json:"actor"`
}

// ErrInvalidStatus is returned when an approval status is not recognized.
var ErrInvalidStatus = errors.New("invalid approval status")

// Validate checks the status against the approval enum.
func (a Approval) Validate() error {
	if err := validate.Struct(a); err != nil {
		return ErrInvalidStatus
	}
	return nil
}

// SchemaRecord is one JSON-LD document attached to a crawled page, together
// with its editable field set and approval metadata.
type SchemaRecord struct {
	SchemaID      string    `json:"schema_id"`
	ClientID      string    `json:"client_id"`
	PageURL       string    `json:"page_url"`
	SchemaType    string    `json:"schema_type"`
	Document      any       `json:"schema_data"`
	Fields        FieldSet  `json:"editable_fields,omitempty"`
	Status        Status    `json:"status"`
	Feedback      string    `json:"feedback,omitempty"`
	AIStatus      string    `json:"ai_status,omitempty"`
	ReviewerNotes string    `json:"ai_reviewer_notes,omitempty"`
	Version       int64     `json:"version"`
	UpdatedBy     string    `json:"updated_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HistoryEntry is an immutable snapshot written on every schema mutation.
type HistoryEntry struct {
	HistoryID string    `json:"history_id"`
	SchemaID  string    `json:"schema_id"`
	Version   int64     `json:"version"`
	Document  any       `json:"schema_data"`
	Fields    FieldSet  `json:"editable_fields,omitempty"`
	Status    Status    `json:"status"`
	Feedback  string    `json:"feedback,omitempty"`
	ChangedBy string    `json:"changed_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewEntry is an audit log row for an AI reviewer action.
type ReviewEntry struct {
	ReviewID     string    `json:"review_id"`
	SchemaID     string    `json:"schema_id"`
	Action       string    `json:"action"`
	ReviewerID   string    `json:"reviewer_id,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	QualityScore int       `json:"quality_score,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CommentEntry is one message in the discussion thread of a record.
type CommentEntry struct {
	CommentID string    `json:"comment_id"`
	SchemaID  string    `json:"schema_id"`
	Text      string    `json:"text"`
	User      string    `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
