package search

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"bravemath-backend/internal/catalog"
)

// Sort keys accepted by Sort. Anything else leaves the order untouched.
const (
	SortDateDesc  = "date-desc"
	SortDateAsc   = "date-asc"
	SortTitleAsc  = "title-asc"
	SortTitleDesc = "title-desc"
	SortPagesAsc  = "pages-asc"
	SortPagesDesc = "pages-desc"
)

// uploadDate layout, day first without zero padding ("5/3/2024").
const dateLayout = "2/1/2006"

// Sort returns a sorted copy of docs. The input slice is never reordered.
// Title comparisons use a Vietnamese collator so diacritics collate
// naturally; unparsable or empty dates sort as the oldest possible date and
// missing page counts as zero. Equal keys keep their relative input order.
func Sort(docs []catalog.Document, key string) []catalog.Document {
	out := make([]catalog.Document, len(docs))
	copy(out, docs)

	var less func(i, j int) bool
	switch key {
	case SortDateDesc:
		less = func(i, j int) bool { return parseUploadDate(out[i].UploadDate).After(parseUploadDate(out[j].UploadDate)) }
	case SortDateAsc:
		less = func(i, j int) bool { return parseUploadDate(out[i].UploadDate).Before(parseUploadDate(out[j].UploadDate)) }
	case SortTitleAsc, SortTitleDesc:
		// Collators are not safe for concurrent use, so build one per call.
		col := collate.New(language.Vietnamese)
		if key == SortTitleAsc {
			less = func(i, j int) bool { return col.CompareString(out[i].Title, out[j].Title) < 0 }
		} else {
			less = func(i, j int) bool { return col.CompareString(out[i].Title, out[j].Title) > 0 }
		}
	case SortPagesAsc:
		less = func(i, j int) bool { return out[i].Pages < out[j].Pages }
	case SortPagesDesc:
		less = func(i, j int) bool { return out[i].Pages > out[j].Pages }
	default:
		return out
	}

	sort.SliceStable(out, less)
	return out
}

func parseUploadDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DistinctTags returns the deduplicated union of all document tags, in
// Vietnamese collation order.
func DistinctTags(docs []catalog.Document) []string {
	return distinct(docs, func(d catalog.Document) []string { return d.Tags })
}

// DistinctSubjects returns the distinct non-empty subject values, in
// Vietnamese collation order.
func DistinctSubjects(docs []catalog.Document) []string {
	return distinct(docs, func(d catalog.Document) []string {
		if d.Subject == "" {
			return nil
		}
		return []string{d.Subject}
	})
}

func distinct(docs []catalog.Document, values func(catalog.Document) []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, doc := range docs {
		for _, v := range values(doc) {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	collate.New(language.Vietnamese).SortStrings(out)
	return out
}
