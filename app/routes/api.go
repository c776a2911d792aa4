package routes

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/pwa"
	"github.com/shashiranjanraj/storefront/pkg/rbac"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/ws"
)

// Handlers carries every controller the routes dispatch to.
type Handlers struct {
	Products *controllers.ProductController
	Cart     *controllers.CartController
	Auth     *controllers.AuthController
	Health   *controllers.HealthController
	PWA      *pwa.Assets
	GraphQL  http.HandlerFunc
	Live     *ws.Hub
}

// RegisterAPI mounts the JSON API under /api and the GraphQL endpoint.
func RegisterAPI(r *router.Router, h Handlers) {
	api := r.Group("/api")
	api.Get("/health", "health", h.Health.Show)

	api.Get("/products", "products.index", h.Products.Index)
	api.Get("/products/variants", "products.variants", h.Products.Variants)
	api.Get("/cart", "cart.show", h.Cart.Show)

	api.Post("/auth/login", "auth.login", h.Auth.Login)

	protected := api.Group("", middleware.AuthMiddleware)
	protected.Get("/me", "auth.me", h.Auth.Me)

	admin := protected.Group("/admin", rbac.HasRole(models.RoleAdmin))
	admin.Get("/users", "admin.users.index", h.Auth.Users)

	r.Post(pwa.EventsPath, "pwa.events", h.PWA.HandleEvent)
	r.Get(pwa.VersionPath, "pwa.version", h.PWA.HandleVersion)
	api.Get("/live", "live", h.Live.ServeHTTP)

	r.Get("/graphql", "graphql.query", h.GraphQL)
	r.Post("/graphql", "graphql.execute", h.GraphQL)
}

// RegisterPWA serves the worker, registration script, manifest and icon at
// the paths the browser expects.
func RegisterPWA(r *router.Router, assets *pwa.Assets) {
	r.Get(pwa.WorkerPath, "pwa.worker", assets.ServeWorker)
	r.Get(pwa.RegisterPath, "pwa.register", assets.ServeRegister)
	r.Get(pwa.ManifestPath, "pwa.manifest", assets.ServeManifest)
	r.Get(pwa.IconPath, "pwa.icon", assets.ServeIcon)
}
