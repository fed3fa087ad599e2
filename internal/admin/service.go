// Package admin appends new records to the document catalog. It backs both
// the interactive CLI and the local admin web form.
package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bravemath-backend/internal/catalog"
	"bravemath-backend/internal/drive"
	"bravemath-backend/internal/shared/util"
)

const defaultAuthor = "Bùi Quang Chiến"

// uploadDate layout, matching the vi-VN dates already in the catalog.
const dateLayout = "2/1/2006"

// Input is one document to append. Tags are the user-supplied tags; the
// level, category and subject are folded into the tag set automatically.
type Input struct {
	DriveID     string
	Title       string
	Description string
	Level       string
	Category    string
	Subject     string
	Author      string
	Tags        []string
	Pages       int
}

// Result is the appended record plus non-fatal warnings worth surfacing.
type Result struct {
	Document catalog.Document
	Warnings []string
}

// Service appends documents to the catalog.
type Service struct {
	Repo  catalog.Repo
	Drive *drive.Client
	Now   func() time.Time
}

// NewService constructs a Service using the real clock.
func NewService(repo catalog.Repo, client *drive.Client) *Service {
	return &Service{Repo: repo, Drive: client, Now: time.Now}
}

// Append validates the input, derives the generated fields and writes the
// grown catalog back through the repo. A Drive ID already present in the
// catalog is an error; a duplicate title only produces a warning.
func (s *Service) Append(ctx context.Context, in Input) (Result, error) {
	in.DriveID = strings.TrimSpace(in.DriveID)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Subject = strings.ToLower(strings.TrimSpace(in.Subject))
	in.Author = strings.TrimSpace(in.Author)

	if in.DriveID == "" || in.Title == "" || in.Description == "" || in.Pages <= 0 {
		return Result{}, fmt.Errorf("%w: driveId, title, description and pages are required", ErrInvalidInput)
	}
	if !drive.ValidID(in.DriveID) {
		return Result{}, fmt.Errorf("%w: drive id must be 28-44 characters of [A-Za-z0-9_-]", ErrInvalidInput)
	}
	if !catalog.ValidLevel(in.Level) {
		return Result{}, fmt.Errorf("%w: unknown level %q", ErrInvalidInput, in.Level)
	}
	if !catalog.ValidCategory(in.Category) {
		return Result{}, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, in.Category)
	}
	if in.Subject == "" {
		return Result{}, fmt.Errorf("%w: subject is required", ErrInvalidInput)
	}
	if in.Author == "" {
		in.Author = defaultAuthor
	}

	cat, err := s.Repo.Load(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load catalog: %w", err)
	}

	var warnings []string
	for _, doc := range cat.Documents {
		if doc.DriveID == in.DriveID {
			return Result{}, fmt.Errorf("%w: drive id already used by %q (%s)", ErrDuplicateDriveID, doc.Title, doc.ID)
		}
		if strings.EqualFold(strings.TrimSpace(doc.Title), in.Title) {
			warnings = append(warnings, fmt.Sprintf("a document with a similar title already exists: %q (%s)", doc.Title, doc.ID))
		}
	}

	fileSize := "N/A"
	if size, err := s.Drive.ContentLength(ctx, in.DriveID); err == nil {
		fileSize = util.FormatFileSize(size)
	} else {
		warnings = append(warnings, fmt.Sprintf("could not fetch file size from Drive: %v", err))
	}

	now := s.Now()
	doc := catalog.Document{
		ID:          nextID(cat.Documents),
		Title:       in.Title,
		Subject:     in.Subject,
		Level:       in.Level,
		Category:    in.Category,
		Slug:        util.Slugify(in.Title),
		DriveID:     in.DriveID,
		Description: in.Description,
		Tags:        buildTags(in),
		FileSize:    fileSize,
		Pages:       in.Pages,
		UploadDate:  now.Format(dateLayout),
		Author:      in.Author,
		Thumbnail:   s.Drive.ThumbnailURL(in.DriveID),
	}

	cat.Documents = append(cat.Documents, doc)
	cat.Metadata.TotalDocuments = len(cat.Documents)
	cat.Metadata.LastUpdated = now.UTC().Format(time.RFC3339)

	if err := s.Repo.Save(ctx, cat); err != nil {
		return Result{}, fmt.Errorf("save catalog: %w", err)
	}

	return Result{Document: doc, Warnings: warnings}, nil
}

// buildTags slugifies the user tags and appends the level, category and
// subject, deduped in encounter order.
func buildTags(in Input) []string {
	seen := make(map[string]struct{})
	out := []string{}
	add := func(raw string) {
		tag := util.Slugify(raw)
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}

	for _, tag := range in.Tags {
		add(tag)
	}
	add(in.Level)
	add(in.Category)
	add(in.Subject)
	return out
}

// nextID returns doc-NNN one past the highest numeric suffix in use.
func nextID(docs []catalog.Document) string {
	max := 0
	for _, doc := range docs {
		n, err := strconv.Atoi(strings.TrimPrefix(doc.ID, "doc-"))
		if err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("doc-%03d", max+1)
}
