package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/izishop-backend/api/controllers"
	cartcontrollers "github.com/angelmondragon/izishop-backend/api/controllers/cart"
	catalogcontrollers "github.com/angelmondragon/izishop-backend/api/controllers/catalog"
	"github.com/angelmondragon/izishop-backend/api/middleware"
	"github.com/angelmondragon/izishop-backend/internal/cart"
	"github.com/angelmondragon/izishop-backend/internal/catalog"
	"github.com/angelmondragon/izishop-backend/pkg/config"
	"github.com/angelmondragon/izishop-backend/pkg/logger"
	"github.com/angelmondragon/izishop-backend/pkg/metrics"
	"github.com/angelmondragon/izishop-backend/pkg/redis"
)

// NewRouter wires the storefront API. redisClient is optional; without it add-to-cart is not
// deduplicated and cart mutations are not rate limited. metricsHandler serves /metrics when set.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	catalogStore *catalog.Catalog,
	cartService cart.Service,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	metricsHandler http.Handler,
	readiness ...controllers.Dependency,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	var (
		idempotencyStore redis.IdempotencyStore
		rateLimitStore   middleware.RateLimitStore
	)
	if redisClient != nil {
		idempotencyStore = redisClient
		rateLimitStore = redisClient
	}
	cartPolicy := middleware.NewRateLimitPolicy("cart", cfg.RateLimit.CartWindow, cfg.RateLimit.CartLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness...))
	})
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/home", catalogcontrollers.Home(catalogStore, logg))
		r.Get("/categories", catalogcontrollers.CategoryList(catalogStore, logg))
		r.Get("/categories/{categoryId}", catalogcontrollers.CategoryPage(catalogStore, logg))
		r.Get("/products", catalogcontrollers.ProductList(catalogStore, logg))
		r.Get("/products/{productId}", catalogcontrollers.ProductDetail(catalogStore, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Session(middleware.SessionOptions{
				CookieName: cfg.Cart.SessionCookie,
				Secure:     cfg.App.IsProd(),
			}, logg))
			r.Use(middleware.RateLimit(cartPolicy, rateLimitStore, logg))

			r.Get("/", cartcontrollers.CartFetch(cartService, logg))
			r.Delete("/", cartcontrollers.CartClear(cartService, logg))
			r.Post("/toggle", cartcontrollers.CartToggle(cartService, logg))
			r.With(middleware.Idempotency(idempotencyStore, logg)).Post("/items", cartcontrollers.CartAddItem(cartService, logg))
			r.Patch("/items/{productId}", cartcontrollers.CartSetQuantity(cartService, logg))
			r.Delete("/items/{productId}", cartcontrollers.CartRemoveItem(cartService, logg))
		})
	})

	return r
}
