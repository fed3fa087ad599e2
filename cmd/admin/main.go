// Admin tool for the document catalog. By default it walks through an
// interactive form and appends one record; with --serve it runs the local
// web form instead.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"bravemath-backend/internal/admin"
	"bravemath-backend/internal/bootstrap"
	"bravemath-backend/internal/drive"
	"bravemath-backend/internal/shared/config"
	"bravemath-backend/internal/shared/server"
)

func main() {
	serve := flag.Bool("serve", false, "run the admin web form instead of the interactive prompt")
	port := flag.String("port", "3000", "port for --serve")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	cfg := config.Load()
	app, err := bootstrap.BuildDeps(cfg)
	if err != nil {
		logger.Fatal("bootstrap failed", "err", err)
	}

	if *serve {
		runServer(logger, app, *port)
		return
	}

	in, err := promptForDocument()
	if err != nil {
		logger.Fatal("aborted", "err", err)
	}

	res, err := app.AdminService.Append(context.Background(), in)
	if err != nil {
		logger.Fatal("append failed", "err", err)
	}

	for _, w := range res.Warnings {
		logger.Warn(w)
	}
	doc := res.Document
	logger.Info("document added",
		"id", doc.ID,
		"title", doc.Title,
		"driveId", doc.DriveID,
		"fileSize", doc.FileSize,
		"pages", doc.Pages,
		"tags", strings.Join(doc.Tags, ", "),
	)
	logger.Info("next: commit and push the updated catalog file")
}

func runServer(logger *log.Logger, app *bootstrap.App, port string) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	admin.NewHandler(app.AdminService).RegisterRoutes(r)

	addr := server.Addr(port)
	logger.Info("admin server listening", "url", "http://localhost"+addr)
	if err := r.Run(addr); err != nil {
		logger.Fatal("server error", "err", err)
	}
}

func promptForDocument() (admin.Input, error) {
	var (
		in       admin.Input
		pagesRaw string
		tagsRaw  string
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Drive ID").
				Description("Copy it from the share URL: https://drive.google.com/file/d/{id}/view").
				Value(&in.DriveID).
				Validate(func(s string) error {
					if !drive.ValidID(strings.TrimSpace(s)) {
						return errors.New("drive id must be 28-44 characters of letters, digits, - or _")
					}
					return nil
				}),
			huh.NewInput().
				Title("Title").
				Value(&in.Title).
				Validate(notEmpty("title")),
			huh.NewInput().
				Title("Description").
				Value(&in.Description).
				Validate(notEmpty("description")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Level").
				Options(
					huh.NewOption("THPT", "thpt"),
					huh.NewOption("Đại học", "daihoc"),
				).
				Value(&in.Level),
			huh.NewSelect[string]().
				Title("Category").
				Options(
					huh.NewOption("Lý thuyết", "ly-thuyet"),
					huh.NewOption("Đề thi", "de-thi"),
					huh.NewOption("Bài tập", "bai-tap"),
					huh.NewOption("Giải chi tiết", "giai-chi-tiet"),
				).
				Value(&in.Category),
			huh.NewInput().
				Title("Subject").
				Placeholder("toan").
				Value(&in.Subject),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Pages").
				Description("Open the PDF and count; Drive does not report this").
				Value(&pagesRaw).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n <= 0 {
						return errors.New("pages must be a positive number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Author").
				Placeholder("leave empty for the default author").
				Value(&in.Author),
			huh.NewInput().
				Title("Tags").
				Description("Comma separated").
				Value(&tagsRaw),
		),
	)

	if err := form.Run(); err != nil {
		return admin.Input{}, err
	}

	in.Pages, _ = strconv.Atoi(strings.TrimSpace(pagesRaw))
	if in.Subject == "" {
		in.Subject = "toan"
	}
	for _, tag := range strings.Split(tagsRaw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			in.Tags = append(in.Tags, tag)
		}
	}
	return in, nil
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}
