package search

import "bravemath-backend/internal/catalog"

// ListResponse is the outward-facing shape of a search result page.
type ListResponse struct {
	Documents []catalog.Document `json:"documents"`
	Total     int                `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// SuggestionsResponse wraps ranked autocomplete candidates.
type SuggestionsResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// FilterOptionsResponse lists the values documents can be filtered by.
type FilterOptionsResponse struct {
	Levels     []string `json:"levels"`
	Categories []string `json:"categories"`
	Subjects   []string `json:"subjects"`
	Tags       []string `json:"tags"`
}
