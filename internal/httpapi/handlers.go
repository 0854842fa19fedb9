package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/internal/workflow"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

var listFilters = []string{"client_id", "page_url", "schema_type", "status", "ai_status"}

func (rt *Router) listSchemas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := map[string]any{}
	for _, key := range listFilters {
		if v := q.Get(key); v != "" {
			filter[key] = v
		}
	}
	for _, key := range []string{"limit", "offset"} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			rt.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s: %q", key, v))
			return
		}
		filter[key] = n
	}
	recs, err := rt.svc.List(filter)
	if err != nil {
		rt.respondFailure(w, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, map[string]any{"schemas": recs, "count": len(recs)})
}

func (rt *Router) importSchema(w http.ResponseWriter, r *http.Request) {
	var req workflow.ImportRequest
	if !rt.decodeBody(w, r, &req) {
		return
	}
	rec, err := rt.svc.Import(req)
	if err != nil {
		rt.respondFailure(w, err)
		return
	}
	rt.respondJSON(w, http.StatusCreated, rec)
}

func (rt *Router) getSchema(w http.ResponseWriter, r *http.Request) {
	rec, err := rt.svc.Get(chi.URLParam(r, "schemaID"))
	if err != nil {
		rt.respondFailure(w, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, rec)
}

func (rt *Router) getFields(w http.ResponseWriter, r *http.Request) {
	sess, err := rt.svc.Open(chi.URLParam(r, "schemaID"))
	if err != nil {
		rt.respondFailure(w, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, sess)
}

func (rt *Router) saveSchema(w http.ResponseWriter, r *http.Request) {
	var req workflow.SaveRequest
	if !rt.decodeBody(w, r, &req) {
		return
	}
	res, err := rt.svc.Save(chi.URLParam(r, "schemaID"), req)
	if err != nil {
		rt.respondFailure(w, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, res)
}

func (rt *Router) getHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := rt.svc.History(chi.URLParam(r, "schemaID"))
	if err != nil {
		rt.respondFailure(w, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, map[string]any{"history": entries})
}

func (rt *Router) getReviews(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "schemaID")
	if _, err := rt.svc.Get(id); err != nil {
		rt.respondFailure(w, err)
		return
	}
	entries, err := rt.svc.Reviews(id)
	if err != nil {
		rt.respondFailure(w, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, map[string]any{"reviews": entries})
}

// CommentRequest is the body of POST /comments.
type CommentRequest struct {
	Text string `json:"text"`
	User string `json:"user"`
}

func (rt *Router) addComment(w http.ResponseWriter, r *http.Request) {
	var req CommentRequest
	if !rt.decodeBody(w, r, &req) {
		return
	}
	c, err := rt.svc.AddComment(chi.URLParam(r, "schemaID"), req.User, req.Text)
	if err != nil {
		rt.respondFailure(w, err)
		return
	}
	rt.respondJSON(w, http.StatusCreated, c)
}

func (rt *Router) getComments(w http.ResponseWriter, r *http.Request) {
	entries, err := rt.svc.Comments(chi.URLParam(r, "schemaID"))
	if err != nil {
		rt.respondFailure(w, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, map[string]any{"comments": entries})
}

// AnalyzeRequest is the body of POST /review/analyze.
type AnalyzeRequest struct {
	PageContent string `json:"page_content"`
	ReviewerID  string `json:"reviewer_id"`
}

func (rt *Router) analyzeSchema(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !rt.decodeBody(w, r, &req) {
		return
	}
	analysis, err := rt.svc.Analyze(chi.URLParam(r, "schemaID"), req.PageContent, req.ReviewerID)
	if err != nil {
		rt.respondFailure(w, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, analysis)
}

// ReviewRequest is the body of POST /review/approve. Status is ai_approved
// or ai_rejected; empty means ai_approved.
type ReviewRequest struct {
	Status     string `json:"status"`
	ReviewerID string `json:"reviewer_id"`
	Notes      string `json:"notes"`
}

func (rt *Router) reviewSchema(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if !rt.decodeBody(w, r, &req) {
		return
	}
	var approve bool
	switch req.Status {
	case "", types.AIStatusApproved:
		approve = true
	case types.AIStatusRejected:
	default:
		rt.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid review status %q", req.Status))
		return
	}
	rec, err := rt.svc.AIReview(chi.URLParam(r, "schemaID"), req.ReviewerID, approve, req.Notes)
	if err != nil {
		rt.respondFailure(w, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, rec)
}

// CorrectRequest is the body of POST /review/correct.
type CorrectRequest struct {
	Document   any    `json:"schema_data"`
	ReviewerID string `json:"reviewer_id"`
	Notes      string `json:"reviewer_notes"`
}

func (rt *Router) correctSchema(w http.ResponseWriter, r *http.Request) {
	var req CorrectRequest
	if !rt.decodeBody(w, r, &req) {
		return
	}
	rec, err := rt.svc.AICorrect(chi.URLParam(r, "schemaID"), req.ReviewerID, req.Document, req.Notes)
	if err != nil {
		rt.respondFailure(w, err)
		return
	}
	rt.respondJSON(w, http.StatusOK, rec)
}

func (rt *Router) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, rt.maxBody))
	if err != nil {
		rt.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	if err := jsonld.DecodeInto(data, v); err != nil {
		rt.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// statusOf maps store and workflow errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidDocument),
		errors.Is(err, types.ErrInvalidStatus),
		errors.Is(err, types.ErrInvalidFilter):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrStoreDetached):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (rt *Router) respondFailure(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		rt.logger.Error("request failed", zap.Error(err))
		rt.respondError(w, status, "internal error")
		return
	}
	rt.respondError(w, status, err.Error())
}

func (rt *Router) respondJSON(w http.ResponseWriter, status int, data any) {
	body, err := jsonld.Encode(data)
	if err != nil {
		rt.logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		rt.logger.Debug("failed to write response", zap.Error(err))
	}
}

func (rt *Router) respondError(w http.ResponseWriter, status int, message string) {
	rt.respondJSON(w, status, map[string]any{
		"error":   true,
		"message": message,
		"code":    status,
	})
}
