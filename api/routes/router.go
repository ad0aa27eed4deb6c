package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tiendaqr/backend/api/controllers"
	"github.com/tiendaqr/backend/api/middleware"
	"github.com/tiendaqr/backend/internal/auth"
	"github.com/tiendaqr/backend/internal/cart"
	"github.com/tiendaqr/backend/internal/catalog"
	checkoutsvc "github.com/tiendaqr/backend/internal/checkout"
	"github.com/tiendaqr/backend/internal/orders"
	"github.com/tiendaqr/backend/internal/users"
	"github.com/tiendaqr/backend/pkg/auth/session"
	"github.com/tiendaqr/backend/pkg/config"
	"github.com/tiendaqr/backend/pkg/db"
	"github.com/tiendaqr/backend/pkg/logger"
	"github.com/tiendaqr/backend/pkg/metrics"
	"github.com/tiendaqr/backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Metrics  *metrics.HTTPMetrics

	Auth     auth.Service
	Catalog  catalog.Service
	Cart     cart.Service
	Checkout checkoutsvc.Service
	Orders   orders.Service
	Users    users.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, deps.Redis, logg)).Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, logg))
		r.Post("/reset-password", controllers.AuthResetPassword(deps.Auth, logg))
	})

	if !cfg.App.IsProd() {
		r.Route("/api/admin/v1/auth", func(r chi.Router) {
			r.Post("/register", controllers.AdminAuthRegister(deps.Auth, logg))
		})
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.Catalog, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.Catalog, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireDeviceID(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.Cart, logg))
			})

			r.Get("/checkout/quote", controllers.CheckoutQuote(deps.Checkout, logg))
			r.Post("/checkout", controllers.CheckoutSubmit(deps.Checkout, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole("admin", logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminOrderList(deps.Orders, logg))
			r.Get("/stats", controllers.AdminOrderStats(deps.Orders, logg))
			r.Get("/export/csv", controllers.AdminOrderExportCSV(deps.Orders, logg))
			r.Get("/export/pdf", controllers.AdminOrderExportPDF(deps.Orders, logg))
			r.Get("/{orderId}", controllers.AdminOrderDetail(deps.Orders, logg))
			r.Patch("/{orderId}/status", controllers.AdminOrderUpdateStatus(deps.Orders, logg))
			r.Delete("/{orderId}", controllers.AdminOrderDelete(deps.Orders, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", controllers.AdminUserList(deps.Users, logg))
			r.Patch("/{userId}/role", controllers.AdminUserChangeRole(deps.Users, logg))
			r.Post("/{userId}/deactivate", controllers.AdminUserDeactivate(deps.Users, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminProductCreate(deps.Catalog, logg))
			r.Patch("/{productId}", controllers.AdminProductUpdate(deps.Catalog, logg))
			r.Delete("/{productId}", controllers.AdminProductDelete(deps.Catalog, logg))
		})
	})

	return r
}
