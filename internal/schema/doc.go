// Package schema maps JSON-LD documents to flat editable field sets and back.
//
// Each supported content type (FAQPage, Event, Organization, Product, Article,
// Service) is a declarative table of rules. One interpreter reads a table to
// extract fields from a document and to patch edited values back into a copy
// of it. A Registry picks the table for a document's @type and falls back to a
// name/description/url table for anything it does not recognize.
//
// Nothing in this package returns an error: missing or malformed structure
// yields fewer fields, never a failure.
package schema
