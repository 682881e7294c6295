package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/alzia/storefront/docs"
	"github.com/alzia/storefront/internal/api/handler"
	"github.com/alzia/storefront/internal/api/middleware"
	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/infrastructure/http/handlers"
)

const (
	metricsSubsystem = "alzia"
	tryOnBodyLimit   = "25M"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Account    *handler.AccountHandler
	Catalog    *handler.CatalogHandler
	Order      *handler.OrderHandler
	Admin      *handler.AdminHandler
	TryOn      *handler.TryOnHandler
	ImageToken *handler.ImageTokenHandler
	Health     *handlers.HealthHandler
	Readiness  *handlers.HealthDependenciesHandler
}

// Options carries the cross-cutting pieces of the router.
type Options struct {
	Sessions       middleware.SessionResolver
	CookieName     string
	Limiter        middleware.Limiter
	TryOnPerMinute int
	Logger         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(h Handlers, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Access gate: runs before routing for /account, /admin and /wholesale ---
	e.Pre(middleware.Gate(opts.Sessions, opts.CookieName, opts.Logger))

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Logger))
	e.Use(echoprometheus.NewMiddleware(metricsSubsystem))

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", h.Health.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", h.Readiness.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth ---
	e.POST("/auth/register", h.Auth.Register)
	e.POST("/auth/login", h.Auth.Login)
	e.GET("/auth/login", h.Auth.LoginPrompt)
	e.POST("/auth/logout", h.Auth.Logout)
	e.GET(domain.UnauthorizedPath, h.Auth.Unauthorized)

	// --- Gated areas (identity already resolved by the gate) ---
	account := e.Group("/account")
	account.GET("", h.Account.Summary)
	account.GET("/orders", h.Account.Orders)
	account.GET("/orders/:orderNumber", h.Account.Order)
	account.GET("/tryon/history", h.Account.TryOnHistory)

	wholesale := e.Group("/wholesale", middleware.RBAC(domain.RoleAdmin, domain.RoleWholesaler))
	wholesale.GET("", h.Catalog.WholesaleSummary)
	wholesale.GET("/products", h.Catalog.WholesaleProducts)

	admin := e.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.GET("", h.Admin.Dashboard)
	admin.GET("/orders", h.Admin.ListOrders)
	admin.GET("/orders/:id", h.Admin.GetOrder)
	admin.PATCH("/orders/:id/status", h.Admin.UpdateOrderStatus)
	admin.GET("/customers", h.Admin.ListCustomers)
	admin.POST("/customers/:id/credits", h.Admin.GrantCredits)
	admin.GET("/products", h.Admin.ListProducts)
	admin.POST("/products", h.Admin.CreateProduct)
	admin.PATCH("/products/:id", h.Admin.UpdateProduct)
	admin.DELETE("/products/:id", h.Admin.DeleteProduct)

	// --- Public API ---
	e.GET("/api/products", h.Catalog.List)
	e.GET("/api/products/:slug", h.Catalog.Get)
	e.GET("/api/tryon-image", h.ImageToken.Redeem)

	// --- Session API ---
	session := middleware.Session(opts.Sessions, opts.CookieName)
	api := e.Group("/api", session)
	api.GET("/profile", h.Account.Profile)
	api.PATCH("/profile", h.Account.UpdateProfile)

	api.GET("/addresses", h.Account.ListAddresses)
	api.POST("/addresses", h.Account.AddAddress)
	api.PATCH("/addresses/:id", h.Account.UpdateAddress)
	api.DELETE("/addresses/:id", h.Account.DeleteAddress)
	api.POST("/addresses/:id/default", h.Account.SetDefaultAddress)

	api.GET("/orders", h.Order.ListOwn)
	api.POST("/orders", h.Order.Checkout)

	api.POST("/tryon", h.TryOn.Generate,
		echomiddleware.BodyLimit(tryOnBodyLimit),
		middleware.RateLimit(opts.Limiter, "tryon", opts.TryOnPerMinute, opts.Logger),
	)
	api.GET("/tryon/credits", h.TryOn.Credits)
	api.GET("/tryon/history", h.TryOn.History)
	api.POST("/tryon-image", h.ImageToken.Issue)

	return e
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
