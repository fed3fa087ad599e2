package search

import (
	"testing"

	"bravemath-backend/internal/catalog"
)

func TestSortByDate(t *testing.T) {
	docs := []catalog.Document{
		{ID: "mid", UploadDate: "20/11/2022"},
		{ID: "new", UploadDate: "1/6/2024"},
		{ID: "old", UploadDate: "5/3/2021"},
	}

	got := Sort(docs, SortDateDesc)
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("date-desc: expected %v, got %v", want, ids(got))
		}
	}

	got = Sort(docs, SortDateAsc)
	for i, id := range []string{"old", "mid", "new"} {
		if got[i].ID != id {
			t.Fatalf("date-asc: got %v", ids(got))
		}
	}
}

func TestSortUnparsableDateSortsOldest(t *testing.T) {
	docs := []catalog.Document{
		{ID: "dated", UploadDate: "1/1/2023"},
		{ID: "blank", UploadDate: ""},
		{ID: "junk", UploadDate: "not-a-date"},
	}

	got := Sort(docs, SortDateDesc)
	if got[0].ID != "dated" {
		t.Fatalf("dated document should lead date-desc, got %v", ids(got))
	}
	// Both unparsable entries collapse to the zero date and keep input order.
	if got[1].ID != "blank" || got[2].ID != "junk" {
		t.Fatalf("unparsable dates should keep input order, got %v", ids(got))
	}
}

func TestSortByTitleUsesVietnameseCollation(t *testing.T) {
	docs := []catalog.Document{
		{ID: "c", Title: "Đại số tuyến tính"},
		{ID: "a", Title: "Bài tập hình học"},
		{ID: "b", Title: "Giải tích 1"},
	}

	got := Sort(docs, SortTitleAsc)
	// Đ collates after D and before G in Vietnamese.
	for i, id := range []string{"a", "c", "b"} {
		if got[i].ID != id {
			t.Fatalf("title-asc: got %v", ids(got))
		}
	}

	rev := Sort(docs, SortTitleDesc)
	for i, id := range []string{"b", "c", "a"} {
		if rev[i].ID != id {
			t.Fatalf("title-desc: got %v", ids(rev))
		}
	}
}

func TestSortTitleAscIsIdempotent(t *testing.T) {
	docs := sampleDocs()

	once := Sort(docs, SortTitleAsc)
	twice := Sort(once, SortTitleAsc)
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("re-sorting changed order: %v vs %v", ids(once), ids(twice))
		}
	}
}

func TestSortByPages(t *testing.T) {
	docs := []catalog.Document{
		{ID: "thick", Pages: 120},
		{ID: "none"},
		{ID: "thin", Pages: 8},
	}

	got := Sort(docs, SortPagesAsc)
	for i, id := range []string{"none", "thin", "thick"} {
		if got[i].ID != id {
			t.Fatalf("pages-asc: got %v", ids(got))
		}
	}

	got = Sort(docs, SortPagesDesc)
	if got[0].ID != "thick" {
		t.Fatalf("pages-desc: got %v", ids(got))
	}
}

func TestSortUnknownKeyAndNoMutation(t *testing.T) {
	docs := sampleDocs()
	before := ids(docs)

	got := Sort(docs, "size-desc")
	for i := range before {
		if got[i].ID != before[i] {
			t.Fatalf("unknown key should keep order, got %v", ids(got))
		}
	}

	Sort(docs, SortTitleAsc)
	after := ids(docs)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input slice was reordered: %v vs %v", before, after)
		}
	}
}

func TestDistinctProjections(t *testing.T) {
	docs := []catalog.Document{
		{Subject: "toan", Tags: []string{"thpt", "toan"}},
		{Subject: "vat-ly", Tags: []string{"thpt", "vat-ly"}},
		{Subject: "toan", Tags: []string{"daihoc", "toan"}},
		{Subject: ""},
	}

	tags := DistinctTags(docs)
	wantTags := []string{"daihoc", "thpt", "toan", "vat-ly"}
	if len(tags) != len(wantTags) {
		t.Fatalf("expected tags %v, got %v", wantTags, tags)
	}
	for i := range wantTags {
		if tags[i] != wantTags[i] {
			t.Fatalf("expected tags %v, got %v", wantTags, tags)
		}
	}

	subjects := DistinctSubjects(docs)
	wantSubjects := []string{"toan", "vat-ly"}
	if len(subjects) != len(wantSubjects) {
		t.Fatalf("expected subjects %v, got %v", wantSubjects, subjects)
	}
	for i := range wantSubjects {
		if subjects[i] != wantSubjects[i] {
			t.Fatalf("expected subjects %v, got %v", wantSubjects, subjects)
		}
	}
}
