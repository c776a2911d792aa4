// Package kernel assembles the storefront's HTTP handler: global
// middleware, infrastructure endpoints and the application routes.
package kernel

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/graph"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/shashiranjanraj/storefront/pkg/graphql"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"github.com/shashiranjanraj/storefront/pkg/pwa"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/response"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/ws"
)

// Options tweaks kernel construction. The zero value is the production
// setup.
type Options struct {
	// Ping backs /api/health. Defaults to pinging db.
	Ping func(ctx context.Context) error
	// Catalog replaces the database-backed catalog service.
	Catalog controllers.CatalogProvider
	// RateLimit is requests per minute per client; 0 reads RATE_LIMIT_PER_MINUTE.
	RateLimit int
}

type HTTPKernel struct {
	router *router.Router
	live   *ws.Hub
}

// NewHTTPKernel wires repositories, services and controllers over db.
// db may be nil when the kernel is only built to list routes.
func NewHTTPKernel(db *gorm.DB, opts Options) (*HTTPKernel, error) {
	orm.CacheStore = cache.Store{}

	catalogSvc := opts.Catalog
	if catalogSvc == nil {
		catalogSvc = services.NewCatalogService(repositories.NewProductRepository(db), config.CatalogCacheTTL())
	}

	ping := opts.Ping
	if ping == nil {
		ping = pingDB(db)
	}

	assets, err := pwa.Build(pwa.Options{
		AppName:  config.AppName(),
		Version:  config.PWACacheVersion(),
		Precache: []string{pwa.ManifestPath, pwa.IconPath, pwa.RegisterPath},
	})
	if err != nil {
		return nil, fmt.Errorf("kernel: pwa assets: %w", err)
	}

	live := ws.NewHub(&ws.Notice{Type: "pwa.version", Data: map[string]string{
		"version":   assets.Version(),
		"cacheName": assets.CacheName(),
	}})
	assets.OnInstalled = func(_ context.Context, state pwa.State, clientVersion string) {
		live.Publish(ws.Notice{Type: "pwa.installed", Data: map[string]string{
			"state":   string(state),
			"version": clientVersion,
		}})
	}

	schema, err := graph.NewSchema(catalogSvc)
	if err != nil {
		return nil, fmt.Errorf("kernel: graphql schema: %w", err)
	}

	limit := opts.RateLimit
	if limit <= 0 {
		limit = config.Int("RATE_LIMIT_PER_MINUTE", 200)
	}

	r := router.New()

	// outermost first: metrics see total latency, recovery guards the rest,
	// the request id exists before anything logs
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(limit, time.Minute))

	r.Handle("/metrics", metrics.Handler())
	if config.StorageDefault() == "local" {
		r.Handle("/storage/*", http.StripPrefix("/storage/", http.FileServer(http.Dir(config.StorageLocalRoot()))))
	}
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })

	routes.RegisterPWA(r, assets)
	routes.RegisterAPI(r, routes.Handlers{
		Products: controllers.NewProductController(catalogSvc),
		Cart:     controllers.NewCartController(catalogSvc),
		Auth:     controllers.NewAuthController(services.NewAuthService(repositories.NewUserRepository(db))),
		Health:   controllers.NewHealthController(ping),
		PWA:      assets,
		GraphQL:  graphql.Handler(schema),
		Live:     live,
	})

	return &HTTPKernel{router: r, live: live}, nil
}

func pingDB(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if db == nil {
			return fmt.Errorf("kernel: no database")
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

func (k *HTTPKernel) Handler() http.Handler {
	return k.router.Handler()
}

// Close disconnects live clients.
func (k *HTTPKernel) Close() {
	k.live.Close()
}

// Routes lists the named routes, for `storefront route:list`.
func (k *HTTPKernel) Routes() []router.RouteInfo {
	return k.router.Routes()
}
