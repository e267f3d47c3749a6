package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vuhoangtran/shopcart-backend/api/controllers"
	"github.com/vuhoangtran/shopcart-backend/api/middleware"
	cartsvc "github.com/vuhoangtran/shopcart-backend/internal/cart"
	"github.com/vuhoangtran/shopcart-backend/internal/catalog"
	"github.com/vuhoangtran/shopcart-backend/pkg/config"
	"github.com/vuhoangtran/shopcart-backend/pkg/db"
	"github.com/vuhoangtran/shopcart-backend/pkg/logger"
	pkgredis "github.com/vuhoangtran/shopcart-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	DB         *db.Client
	Redis      *pkgredis.Client
	CatalogSvc catalog.Service
	CartSvc    cartsvc.Service
}

// New assembles the full HTTP surface: health probes outside the session
// scope, the storefront API inside it.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))

	r.Get("/health/live", controllers.HealthLive(deps.Config))
	r.Get("/health/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB, deps.Redis))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartSession(deps.Logger, deps.Config.Cart.SessionCookieTTL))

		r.Get("/catalog/products", controllers.CatalogProducts(deps.CatalogSvc, deps.Logger))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.CartSvc, deps.Logger))
			r.Delete("/", controllers.CartClear(deps.CartSvc, deps.Logger))
			r.Post("/items", controllers.CartAddItem(deps.CartSvc, deps.Logger))
			r.Patch("/items/{productId}", controllers.CartSetQuantity(deps.CartSvc, deps.Logger))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.CartSvc, deps.Logger))
		})

		r.Post("/checkout", controllers.Checkout(deps.CartSvc, deps.Logger))
	})

	return r
}
