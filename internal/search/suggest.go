package search

import (
	"sort"
	"strings"

	"bravemath-backend/internal/catalog"
)

// Weights control how suggestion candidates are scored. Title matches
// dominate, then tags, then the weaker subject/author fields.
type Weights struct {
	TitleExact    int
	TitlePrefix   int
	TitleContains int
	TagExact      int
	TagContains   int
	FieldContains int
}

// DefaultWeights is the scoring used by the public suggestions endpoint.
var DefaultWeights = Weights{
	TitleExact:    100,
	TitlePrefix:   80,
	TitleContains: 50,
	TagExact:      40,
	TagContains:   30,
	FieldContains: 20,
}

// Suggestion is a ranked autocomplete candidate.
type Suggestion struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// Suggest returns up to limit suggestion strings for a partial query, best
// first. It is SuggestScored with the scores stripped.
func Suggest(docs []catalog.Document, query string, limit int) []string {
	scored := SuggestScored(docs, query, limit, DefaultWeights)
	out := make([]string, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.Text)
	}
	return out
}

// SuggestScored collects suggestion candidates from titles, tags, subjects
// and authors, scores each surface string by its strongest match against the
// query, and returns the top limit candidates ordered by descending score.
// Candidates tied on score keep catalog encounter order. An empty query
// yields no suggestions.
func SuggestScored(docs []catalog.Document, query string, limit int, w Weights) []Suggestion {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" || limit <= 0 {
		return nil
	}

	// Dedupe on the lowercased surface string, keeping the highest score and
	// the first encounter's casing and position.
	type candidate struct {
		text  string
		score int
		order int
	}
	seen := make(map[string]*candidate)
	order := 0

	add := func(text string, score int) {
		if score <= 0 {
			return
		}
		key := strings.ToLower(text)
		if c, ok := seen[key]; ok {
			if score > c.score {
				c.score = score
			}
			return
		}
		seen[key] = &candidate{text: text, score: score, order: order}
		order++
	}

	for _, doc := range docs {
		add(doc.Title, scoreTitle(doc.Title, term, w))
		for _, tag := range doc.Tags {
			add(tag, scoreContains(tag, term, w.TagExact, w.TagContains))
		}
		add(doc.Subject, scoreField(doc.Subject, term, w.FieldContains))
		add(doc.Author, scoreField(doc.Author, term, w.FieldContains))
	}

	ranked := make([]Suggestion, 0, len(seen))
	byOrder := make([]*candidate, 0, len(seen))
	for _, c := range seen {
		byOrder = append(byOrder, c)
	}
	sort.Slice(byOrder, func(i, j int) bool { return byOrder[i].order < byOrder[j].order })
	sort.SliceStable(byOrder, func(i, j int) bool { return byOrder[i].score > byOrder[j].score })

	for _, c := range byOrder {
		ranked = append(ranked, Suggestion{Text: c.text, Score: c.score})
		if len(ranked) == limit {
			break
		}
	}
	return ranked
}

func scoreTitle(title, term string, w Weights) int {
	lower := strings.ToLower(title)
	switch {
	case lower == term:
		return w.TitleExact
	case strings.HasPrefix(lower, term):
		return w.TitlePrefix
	case strings.Contains(lower, term):
		return w.TitleContains
	}
	return 0
}

func scoreContains(text, term string, exact, contains int) int {
	lower := strings.ToLower(text)
	switch {
	case lower == term:
		return exact
	case strings.Contains(lower, term):
		return contains
	}
	return 0
}

func scoreField(text, term string, contains int) int {
	if text == "" {
		return 0
	}
	if strings.Contains(strings.ToLower(text), term) {
		return contains
	}
	return 0
}
