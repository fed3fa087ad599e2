// Refresh re-derives stored file metadata for every catalog record.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/charmbracelet/log"

	"bravemath-backend/internal/bootstrap"
	"bravemath-backend/internal/refresh"
	"bravemath-backend/internal/shared/config"
)

func main() {
	pages := flag.Bool("pages", false, "also download each file and recount PDF pages")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	cfg := config.Load()
	app, err := bootstrap.BuildDeps(cfg)
	if err != nil {
		logger.Fatal("bootstrap failed", "err", err)
	}

	r := refresh.New(app.CatalogRepo, app.Drive, logger)
	r.CountPages = *pages

	res, err := r.Run(context.Background())
	if err != nil {
		logger.Fatal("refresh failed", "err", err)
	}

	logger.Info("refresh complete", "total", res.Total, "updated", res.Updated, "skipped", res.Skipped)
}
