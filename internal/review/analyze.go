// Package review scores a JSON-LD document for the AI reviewer quality gate.
// The analysis is rule based: structural checks, relevance to the page text,
// business vocabulary, Person completeness, type/URL fit and required
// properties each deduct from a starting score of 100.
package review

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mesh-intelligence/schemaboard/internal/jsonld"
	"github.com/mesh-intelligence/schemaboard/pkg/types"
)

// Suggested statuses. ai_approved doubles as the reviewer approval status.
const (
	SuggestAIApproved      = types.AIStatusApproved
	SuggestMinorCorrection = "needs_minor_correction"
	SuggestMajorCorrection = "needs_major_correction"
)

const (
	approvedThreshold     = 85
	acceptableThreshold   = 70
	relevanceThreshold    = 0.3
	tooManyWarnings       = 3
	minRelevantWordLength = 4
)

// Deductions from the starting score of 100.
const (
	deductMissingContext     = 10
	deductMissingTypeOrGraph = 20
	deductLowRelevance       = 15
	deductNoBusinessContent  = 5
	deductPersonName         = 5
	deductPersonJobTitle     = 2
	deductPersonContact      = 3
	deductTypeMismatch       = 10
	deductMissingName        = 10
	deductMissingDescription = 5
	deductMissingProvider    = 5
)

// businessKeywords mark business-focused content; at least one should
// appear somewhere in the serialized document.
var businessKeywords = []string{
	"service", "product", "solution", "consulting", "business intelligence",
	"infrastructure", "cloud", "managed", "support", "implementation",
}

var wordPattern = regexp.MustCompile(`\w+`)

// Analysis is the result of scoring one document.
type Analysis struct {
	QualityScore    int       `json:"quality_score"`
	Issues          []string  `json:"issues"`
	Warnings        []string  `json:"warnings"`
	Recommendations []string  `json:"recommendations"`
	Summary         string    `json:"analysis_summary"`
	SuggestedStatus string    `json:"suggested_status"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
}

type scorer struct {
	score    int
	issues   []string
	warnings []string
}

func (s *scorer) issue(points int, msg string) {
	s.issues = append(s.issues, msg)
	s.score -= points
}

func (s *scorer) warn(points int, msg string) {
	s.warnings = append(s.warnings, msg)
	s.score -= points
}

// Analyze scores doc against the text of the page it is attached to.
// pageURL drives the type/URL fit checks. doc is not modified.
func Analyze(doc any, pageContent, pageURL string) Analysis {
	s := &scorer{score: 100, issues: []string{}, warnings: []string{}}
	obj, _ := jsonld.Object(doc)

	if !set(obj, "@context") {
		s.issue(deductMissingContext, "Missing @context property")
	}
	if !set(obj, "@type") && !set(obj, "@graph") {
		s.issue(deductMissingTypeOrGraph, "Missing @type or @graph structure")
	}

	schemaText := serialize(doc)

	if relevance(schemaText, pageContent) < relevanceThreshold {
		s.issue(deductLowRelevance, "Schema content may not be relevant to page content")
	}

	if !containsAny(schemaText, businessKeywords) {
		s.warn(deductNoBusinessContent, "Schema may lack business-focused content")
	}

	for i, person := range jsonld.GraphEntities(doc, "Person") {
		n := i + 1
		if !jsonld.Present(person["name"]) {
			s.issue(deductPersonName, fmt.Sprintf("Person entity %d missing name", n))
		}
		if !jsonld.Present(person["jobTitle"]) {
			s.warn(deductPersonJobTitle, fmt.Sprintf("Person entity %d missing job title", n))
		}
		if !jsonld.Present(person["email"]) && !jsonld.Present(person["telephone"]) {
			s.warn(deductPersonContact, fmt.Sprintf("Person entity %d missing contact information", n))
		}
	}

	primary := mainType(doc)
	switch {
	case primary == "Organization" && strings.Contains(pageURL, "/services/"):
		s.warn(deductTypeMismatch, "Organization schema on services page - consider Service schema")
	case primary == "Service" && strings.Contains(pageURL, "/about"):
		s.warn(deductTypeMismatch, "Service schema on about page - consider Organization schema")
	}

	switch primary {
	case "Organization":
		org := entityOf(doc, "Organization")
		if !present(org, "name") {
			s.issue(deductMissingName, "Organization missing name property")
		}
		if !present(org, "description") {
			s.warn(deductMissingDescription, "Organization missing description")
		}
	case "Service":
		svc := entityOf(doc, "Service")
		if !present(svc, "name") {
			s.issue(deductMissingName, "Service missing name property")
		}
		if !present(svc, "description") {
			s.warn(deductMissingDescription, "Service missing description")
		}
		if !set(svc, "provider") {
			s.warn(deductMissingProvider, "Service missing provider information")
		}
	}

	score := max(s.score, 0)
	return Analysis{
		QualityScore:    score,
		Issues:          s.issues,
		Warnings:        s.warnings,
		Recommendations: recommend(s, schemaText, doc),
		Summary: fmt.Sprintf("Schema scored %d/100. %d critical issues, %d warnings found.",
			score, len(s.issues), len(s.warnings)),
		SuggestedStatus: suggest(s.score),
		AnalyzedAt:      time.Now().UTC(),
	}
}

func recommend(s *scorer, schemaText string, doc any) []string {
	var out []string
	if len(s.issues) > 0 {
		out = append(out, "Fix critical schema structure issues before approval")
	}
	if len(s.warnings) > tooManyWarnings {
		out = append(out, "Consider enhancing schema with more business-relevant content")
	}
	switch {
	case s.score < acceptableThreshold:
		out = append(out, "Schema needs significant improvements before customer review")
	case s.score < approvedThreshold:
		out = append(out, "Schema is acceptable but could be enhanced")
	default:
		out = append(out, "Schema quality is good - ready for customer review")
	}
	if !strings.Contains(schemaText, "business") && !strings.Contains(schemaText, "service") {
		out = append(out, "Consider adding more company-specific branding and terminology")
	}
	if graph, ok := jsonld.Graph(doc); ok && len(graph) == 1 {
		out = append(out, "Consider adding related entities (Person, Service) for richer markup")
	}
	return out
}

func suggest(score int) string {
	switch {
	case score >= approvedThreshold:
		return SuggestAIApproved
	case score >= acceptableThreshold:
		return SuggestMinorCorrection
	default:
		return SuggestMajorCorrection
	}
}

// serialize renders doc as lower-cased JSON text for keyword matching.
func serialize(doc any) string {
	data, err := jsonld.Encode(doc)
	if err != nil {
		return ""
	}
	return strings.ToLower(string(data))
}

// relevance is the share of words in the serialized document that are
// longer than three characters and appear verbatim in the page text.
func relevance(schemaText, pageContent string) float64 {
	content := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(pageContent)) {
		content[w] = true
	}
	words := wordPattern.FindAllString(schemaText, -1)
	relevant := 0
	for _, w := range words {
		if len(w) >= minRelevantWordLength && content[w] {
			relevant++
		}
	}
	return float64(relevant) / float64(max(len(words), 1))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// mainType is the document's first declared type, or that of the first
// @graph member.
func mainType(doc any) string {
	if ts := jsonld.Types(doc); len(ts) > 0 {
		return ts[0]
	}
	if graph, ok := jsonld.Graph(doc); ok && len(graph) > 0 {
		if ts := jsonld.Types(graph[0]); len(ts) > 0 {
			return ts[0]
		}
	}
	return ""
}

// entityOf returns the first @graph member of typ, or the document itself
// when it has no @graph.
func entityOf(doc any, typ string) map[string]any {
	if _, ok := jsonld.Graph(doc); ok {
		if es := jsonld.GraphEntities(doc, typ); len(es) > 0 {
			return es[0]
		}
		return nil
	}
	obj, _ := jsonld.Object(doc)
	return obj
}

func present(entity map[string]any, key string) bool {
	return entity != nil && jsonld.Present(entity[key])
}

// set reports whether key holds anything other than null or "". Objects and
// arrays count as set.
func set(entity map[string]any, key string) bool {
	v, ok := entity[key]
	return ok && v != nil && v != ""
}
