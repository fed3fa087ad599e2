package catalog

import (
	"context"
	"testing"

	"bravemath-backend/internal/shared/storage/object/local"
)

func TestObjectRepoRoundTrip(t *testing.T) {
	store := local.New(t.TempDir())
	repo := NewObjectRepo(store, "documents.json")
	ctx := context.Background()

	cat := Catalog{
		Documents: []Document{
			{
				ID:         "doc-001",
				Title:      "Đề thi Toán 2023",
				Subject:    "toan",
				Level:      LevelTHPT,
				Category:   CategoryDeThi,
				DriveID:    "1AbCdEfGhIjKlMnOpQrStUvWxYz01234",
				Tags:       []string{"toan", "de-thi"},
				Pages:      12,
				UploadDate: "15/8/2026",
			},
		},
		Metadata: Metadata{TotalDocuments: 1, LastUpdated: "2026-08-15T00:00:00Z"},
	}

	if err := repo.Save(ctx, cat); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(loaded.Documents))
	}
	if loaded.Documents[0].Title != "Đề thi Toán 2023" {
		t.Fatalf("title mangled: %q", loaded.Documents[0].Title)
	}
	if loaded.Metadata.TotalDocuments != 1 {
		t.Fatalf("metadata lost: %+v", loaded.Metadata)
	}
}

func TestObjectRepoMissingFileYieldsEmptyCatalog(t *testing.T) {
	store := local.New(t.TempDir())
	repo := NewObjectRepo(store, "documents.json")

	cat, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cat.Documents == nil || len(cat.Documents) != 0 {
		t.Fatalf("expected empty document list, got %#v", cat.Documents)
	}
}
