package server

import (
	"context"
	"net/http"
	"time"

	"fashion-cart/internal/config"
	"fashion-cart/internal/handler"
	"fashion-cart/internal/metrics"
	authmw "fashion-cart/internal/middleware"
	"fashion-cart/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const bodyLimit = "10M"

type Services struct {
	Tokens   *service.TokenManager
	Auth     service.AuthService
	Product  service.ProductService
	Cart     service.CartService
	Address  service.AddressService
	Coupon   service.CouponService
	Order    service.OrderService
	Paypal   service.PaypalService
	Review   service.ReviewService
	Settings service.SettingsService
}

type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	log     zerolog.Logger
	metrics *metrics.Metrics
	tokens  *service.TokenManager

	authHandler     *handler.AuthHandler
	productHandler  *handler.ProductHandler
	cartHandler     *handler.CartHandler
	addressHandler  *handler.AddressHandler
	couponHandler   *handler.CouponHandler
	orderHandler    *handler.OrderHandler
	paypalHandler   *handler.PaypalHandler
	reviewHandler   *handler.ReviewHandler
	settingsHandler *handler.SettingsHandler
}

func NewServer(cfg *config.Config, log zerolog.Logger, m *metrics.Metrics, services Services) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(log)

	s := &Server{
		echo:    e,
		cfg:     cfg,
		log:     log,
		metrics: m,
		tokens:  services.Tokens,

		authHandler:     handler.NewAuthHandler(services.Auth, services.Tokens, cfg.JWT.CookieSecure),
		productHandler:  handler.NewProductHandler(services.Product),
		cartHandler:     handler.NewCartHandler(services.Cart),
		addressHandler:  handler.NewAddressHandler(services.Address),
		couponHandler:   handler.NewCouponHandler(services.Coupon),
		orderHandler:    handler.NewOrderHandler(services.Order),
		paypalHandler:   handler.NewPaypalHandler(services.Paypal),
		reviewHandler:   handler.NewReviewHandler(services.Review),
		settingsHandler: handler.NewSettingsHandler(services.Settings),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	e := s.echo

	e.Use(middleware.RequestID())
	if s.metrics != nil {
		// outside the logger so the status it sees is the one written by
		// the error handler.
		e.Use(s.metrics.Middleware())
	}
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := s.log.Info()
			if v.Error != nil {
				event = s.log.Warn().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "Cache-Control", "Expires", "Pragma"},
		AllowCredentials: true,
	}))
	e.Use(middleware.BodyLimit(bodyLimit))
}

func (s *Server) authLimiter() echo.MiddlewareFunc {
	burst := int(s.cfg.HTTP.RateLimit) * 2
	if burst < 1 {
		burst = 1
	}
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(s.cfg.HTTP.RateLimit),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests, please try again later")
		},
	})
}

func (s *Server) setupRoutes() {
	if s.metrics != nil {
		s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
	}

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	authenticated := authmw.Authenticate(s.tokens)
	admin := authmw.RequireSuperAdmin()

	// -------- auth --------
	auth := api.Group("/auth", s.authLimiter())
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/refresh-token", s.authHandler.RefreshToken)
	auth.POST("/logout", s.authHandler.Logout)
	auth.GET("/me", s.authHandler.Me, authenticated)

	// -------- products --------
	products := api.Group("/products")
	products.GET("", s.productHandler.Search)
	products.GET("/fetch-client-products", s.productHandler.Search)
	products.GET("/fetch-admin-products", s.productHandler.ListForAdmin, authenticated, admin)
	products.POST("", s.productHandler.Create, authenticated, admin)
	products.POST("/create-new-product", s.productHandler.CreateWithImages, authenticated, admin)
	products.GET("/:id", s.productHandler.Get)
	products.PUT("/:id", s.productHandler.Update, authenticated, admin)
	products.DELETE("/:id", s.productHandler.Delete, authenticated, admin)

	// -------- cart --------
	cart := api.Group("/cart", authenticated)
	cart.POST("/add-to-cart", s.cartHandler.Add)
	cart.GET("/fetch-cart", s.cartHandler.Fetch)
	cart.PUT("/update/:id", s.cartHandler.UpdateQuantity)
	cart.DELETE("/remove/:id", s.cartHandler.Remove)
	cart.POST("/clear-cart", s.cartHandler.Clear)
	cart.POST("/merge", s.cartHandler.Merge)

	// -------- address --------
	address := api.Group("/address", authenticated)
	address.POST("/add-address", s.addressHandler.Create)
	address.GET("/get-address", s.addressHandler.List)
	address.PUT("/update-address/:id", s.addressHandler.Update)
	address.DELETE("/delete-address/:id", s.addressHandler.Delete)

	// -------- coupon --------
	coupon := api.Group("/coupon", authenticated)
	coupon.POST("/validate", s.couponHandler.Validate)
	coupon.POST("/create-coupon", s.couponHandler.Create, admin)
	coupon.GET("/fetch-all-coupons", s.couponHandler.List, admin)
	coupon.DELETE("/:id", s.couponHandler.Delete, admin)

	// -------- order --------
	order := api.Group("/order", authenticated)
	order.POST("/create-paypal-order", s.paypalHandler.CreateOrder)
	order.POST("/capture-paypal-order", s.paypalHandler.CaptureOrder)
	order.POST("/create-final-order", s.orderHandler.CreateFinal)
	order.POST("/create-cod-order", s.orderHandler.CreateCOD)
	order.GET("/get-single-order/:orderId", s.orderHandler.Get)
	order.GET("/get-order-by-user-id", s.orderHandler.ListForUser)
	order.GET("/get-all-orders-for-admin", s.orderHandler.ListAll, admin)
	order.PUT("/:orderId/status", s.orderHandler.UpdateStatus, admin)
	order.PUT("/:orderId/payment-status", s.orderHandler.UpdatePaymentStatus, admin)
	order.GET("/:orderId/invoice", s.orderHandler.Invoice)

	// -------- paypal webhooks --------
	api.POST("/paypal/webhook", s.paypalHandler.PayPalWebhook)

	// -------- reviews --------
	reviews := api.Group("/reviews")
	reviews.GET("/product/:productId", s.reviewHandler.ListByProduct)
	reviews.POST("", s.reviewHandler.Create, authenticated)
	reviews.PUT("/:reviewId", s.reviewHandler.Update, authenticated)
	reviews.DELETE("/:reviewId", s.reviewHandler.Delete, authenticated)

	// -------- settings --------
	settings := api.Group("/settings", authenticated)
	settings.GET("/get-banners", s.settingsHandler.Banners)
	settings.GET("/fetch-feature-products", s.settingsHandler.FeaturedProducts)
	settings.POST("/banners", s.settingsHandler.AddBanners, admin)
	settings.DELETE("/banners/:id", s.settingsHandler.DeleteBanner, admin)
	settings.POST("/update-feature-products", s.settingsHandler.UpdateFeaturedProducts, admin)
}

// ServeHTTP lets tests drive the router without a listener.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
