package search

import (
	"context"

	"bravemath-backend/internal/catalog"
)

// Query is one catalog read: free text, discrete filters, sort and paging.
type Query struct {
	Text    string
	Filters Filters
	Sort    string
	Limit   int
	Offset  int
}

// Result is a page of matching documents plus the pre-paging match count.
type Result struct {
	Documents []catalog.Document
	Total     int
}

// FilterOptions lists every value the catalog can currently be narrowed by.
type FilterOptions struct {
	Levels     []string
	Categories []string
	Subjects   []string
	Tags       []string
}

// Service answers catalog reads. Every call loads the catalog through the
// repo, so edits land without a restart.
type Service struct {
	Repo catalog.Repo
}

// NewService constructs a Service.
func NewService(repo catalog.Repo) *Service {
	return &Service{Repo: repo}
}

// Search filters, sorts and pages the catalog.
func (s *Service) Search(ctx context.Context, q Query) (Result, error) {
	cat, err := s.Repo.Load(ctx)
	if err != nil {
		return Result{}, err
	}

	matched := Filter(cat.Documents, q.Text, q.Filters)
	matched = Sort(matched, q.Sort)

	total := len(matched)
	if q.Offset > total {
		q.Offset = total
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}

	return Result{Documents: matched, Total: total}, nil
}

// Get returns a single document by id.
func (s *Service) Get(ctx context.Context, id string) (catalog.Document, error) {
	cat, err := s.Repo.Load(ctx)
	if err != nil {
		return catalog.Document{}, err
	}
	for _, doc := range cat.Documents {
		if doc.ID == id {
			return doc, nil
		}
	}
	return catalog.Document{}, catalog.ErrNotFound
}

// Suggestions returns ranked autocomplete candidates for a partial query.
func (s *Service) Suggestions(ctx context.Context, query string, limit int) ([]Suggestion, error) {
	cat, err := s.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	return SuggestScored(cat.Documents, query, limit, DefaultWeights), nil
}

// Filters reports the filterable values present in the catalog. Levels and
// categories are the fixed taxonomy; subjects and tags are projected from
// the documents themselves.
func (s *Service) Filters(ctx context.Context) (FilterOptions, error) {
	cat, err := s.Repo.Load(ctx)
	if err != nil {
		return FilterOptions{}, err
	}
	return FilterOptions{
		Levels:     catalog.Levels(),
		Categories: catalog.Categories(),
		Subjects:   DistinctSubjects(cat.Documents),
		Tags:       DistinctTags(cat.Documents),
	}, nil
}
