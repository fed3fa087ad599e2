// Package refresh re-derives stored file metadata from Drive. It backs the
// offline refresh command: fileSize is rewritten for every record, pages only
// when page counting is switched on, since that needs the whole file.
package refresh

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ledongthuc/pdf"

	"bravemath-backend/internal/catalog"
	"bravemath-backend/internal/drive"
	"bravemath-backend/internal/shared/util"
)

// Result summarizes one refresh pass.
type Result struct {
	Total   int
	Updated int
	Skipped int
}

// Refresher walks the catalog and rewrites derived metadata.
type Refresher struct {
	Repo       catalog.Repo
	Drive      *drive.Client
	Log        *log.Logger
	CountPages bool
	Now        func() time.Time
}

// New constructs a Refresher using the real clock.
func New(repo catalog.Repo, client *drive.Client, logger *log.Logger) *Refresher {
	return &Refresher{Repo: repo, Drive: client, Log: logger, Now: time.Now}
}

// Run refreshes every record and saves the catalog once at the end. A record
// whose lookup fails keeps its stored values and is counted as skipped; only
// a load or save failure aborts the pass.
func (r *Refresher) Run(ctx context.Context) (Result, error) {
	cat, err := r.Repo.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load catalog: %w", err)
	}

	res := Result{Total: len(cat.Documents)}
	for i := range cat.Documents {
		doc := &cat.Documents[i]
		if err := r.refreshOne(ctx, doc); err != nil {
			r.Log.Warn("skipping document", "id", doc.ID, "err", err)
			res.Skipped++
			continue
		}
		r.Log.Info("refreshed", "id", doc.ID, "fileSize", doc.FileSize, "pages", doc.Pages)
		res.Updated++
	}

	cat.Metadata.TotalDocuments = len(cat.Documents)
	cat.Metadata.LastUpdated = r.Now().UTC().Format(time.RFC3339)

	if err := r.Repo.Save(ctx, cat); err != nil {
		return Result{}, fmt.Errorf("save catalog: %w", err)
	}
	return res, nil
}

func (r *Refresher) refreshOne(ctx context.Context, doc *catalog.Document) error {
	size, err := r.Drive.ContentLength(ctx, doc.DriveID)
	if err != nil {
		return fmt.Errorf("content length: %w", err)
	}
	doc.FileSize = util.FormatFileSize(size)

	if !r.CountPages {
		return nil
	}
	pages, err := r.countPages(ctx, doc.DriveID)
	if err != nil {
		return fmt.Errorf("count pages: %w", err)
	}
	doc.Pages = pages
	return nil
}

// countPages downloads the file and reads the PDF page count.
func (r *Refresher) countPages(ctx context.Context, id string) (int, error) {
	resp, err := r.Drive.Fetch(ctx, id)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return 0, err
	}
	return reader.NumPage(), nil
}
