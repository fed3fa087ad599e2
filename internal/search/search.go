// Package search implements the catalog's search/filter engine: pure
// functions over an in-memory document list. Inputs are never mutated; every
// call returns a fresh slice, so the same loaded catalog can back repeated
// interactive queries.
package search

import (
	"strings"

	"bravemath-backend/internal/catalog"
)

// Filters are the discrete filter selections. Empty fields do not narrow.
type Filters struct {
	Level    string
	Subject  string
	Category string
}

// Filter returns the documents matching query and filters. The query is a
// case-insensitive substring test against title, description, tags, subject,
// author and category; a document matches if any field contains the term,
// and an empty or whitespace query matches everything. Discrete filters
// compose by AND: level and category by exact equality, subject against the
// subject field or the tag set (the admin tool folds subject into tags).
func Filter(docs []catalog.Document, query string, f Filters) []catalog.Document {
	term := strings.ToLower(strings.TrimSpace(query))

	out := make([]catalog.Document, 0, len(docs))
	for _, doc := range docs {
		if term != "" && !matchesTerm(doc, term) {
			continue
		}
		if f.Level != "" && doc.Level != f.Level {
			continue
		}
		if f.Category != "" && doc.Category != f.Category {
			continue
		}
		if f.Subject != "" && !matchesSubject(doc, f.Subject) {
			continue
		}
		out = append(out, doc)
	}
	return out
}

func matchesTerm(doc catalog.Document, term string) bool {
	if strings.Contains(strings.ToLower(doc.Title), term) ||
		strings.Contains(strings.ToLower(doc.Description), term) ||
		strings.Contains(strings.ToLower(doc.Subject), term) ||
		strings.Contains(strings.ToLower(doc.Author), term) ||
		strings.Contains(strings.ToLower(doc.Category), term) {
		return true
	}
	for _, tag := range doc.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func matchesSubject(doc catalog.Document, subject string) bool {
	if doc.Subject == subject {
		return true
	}
	for _, tag := range doc.Tags {
		if tag == subject {
			return true
		}
	}
	return false
}
