// Package bootstrap builds the application's dependency graph from config.
// The API server and both CLIs share the same wiring.
package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bravemath-backend/internal/admin"
	"bravemath-backend/internal/catalog"
	"bravemath-backend/internal/drive"
	"bravemath-backend/internal/proxy"
	"bravemath-backend/internal/search"
	"bravemath-backend/internal/shared/config"
	"bravemath-backend/internal/shared/server"
	"bravemath-backend/internal/shared/server/middleware"
	"bravemath-backend/internal/shared/storage/object"
	localstore "bravemath-backend/internal/shared/storage/object/local"
	s3store "bravemath-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config        config.Config
	Router        *gin.Engine
	Store         object.ObjectStore
	CatalogRepo   catalog.Repo
	Drive         *drive.Client
	Limiter       *middleware.RateLimiter
	SearchService *search.Service
	AdminService  *admin.Service
	SearchHandler *search.Handler
	ProxyHandler  *proxy.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	app, err := BuildDeps(cfg)
	if err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:  app.Config,
		Search:  app.SearchHandler,
		Proxy:   app.ProxyHandler,
		Limiter: app.Limiter,
	})

	return app, nil
}

// BuildDeps prepares shared dependencies without wiring routes. The admin
// and refresh commands use this to reach the catalog and Drive without an
// HTTP surface.
func BuildDeps(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	store, err := buildStore(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	repo := catalog.NewObjectRepo(store, cfg.CatalogKey)
	client := drive.NewClient(cfg.DriveBaseURL)

	searchSvc := search.NewService(repo)
	adminSvc := admin.NewService(repo, client)

	return &App{
		Config:        cfg,
		Store:         store,
		CatalogRepo:   repo,
		Drive:         client,
		Limiter:       middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow, time.Now),
		SearchService: searchSvc,
		AdminService:  adminSvc,
		SearchHandler: search.NewHandler(searchSvc),
		ProxyHandler:  proxy.NewHandler(client, config.Version),
	}, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}
