package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	"github.com/aaravmahajanofficial/storefront/internal/metrics"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
	"github.com/aaravmahajanofficial/storefront/pkg/stripe"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	defer cancelStartup()

	// Tracing setup
	shutdownTracer, err := telemetry.InitTracer(startupCtx, cfg.OTel)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Database setup
	repos, err := repository.New(startupCtx, cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := repos.Close(ctx); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	defer productCache.Close()

	rateLimitRepo := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)

	// Gateway and email
	gateway := stripe.NewStripeClient(cfg.Payment.APIKey)

	var notifier service.NotificationService
	if cfg.SendGrid.APIKey != "" {
		notifier = service.NewNotificationService(sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName))
	} else {
		slog.Warn("SendGrid API key not set, payment receipts are disabled")
	}

	productService := service.NewProductService(repos.Product, productCache)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(repos.Cart, repos.Product)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentService := service.NewPaymentService(repos.Order, gateway, notifier, cfg.Payment)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	adminService := service.NewAdminService(repos.Product, repos.Order)
	adminHandler := handlers.NewAdminHandler(adminService)

	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))
	paymentLimiter := middleware.NewRateLimiter(rateLimitRepo, "payments")

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{Mongo: repos.Client, Gateway: gateway})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	authenticated := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(h)
	}
	adminOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(middleware.RequireAdmin(h))
	}
	limited := func(h http.HandlerFunc) http.HandlerFunc {
		return authMiddleware.Authenticate(paymentLimiter.Limit(h))
	}

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/products", productHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("GET /api/v1/cart", authenticated(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", authenticated(cartHandler.AddItem()))
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", authenticated(cartHandler.UpdateItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", authenticated(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", authenticated(cartHandler.ClearCart()))
	routerMux.HandleFunc("POST /api/v1/orders", authenticated(orderHandler.CreateOrder()))
	routerMux.HandleFunc("GET /api/v1/orders/mine", authenticated(orderHandler.ListMyOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", authenticated(orderHandler.GetOrder()))
	routerMux.HandleFunc("DELETE /api/v1/orders/{id}", authenticated(orderHandler.DeleteOrder()))
	routerMux.HandleFunc("POST /api/v1/payments/intents", limited(paymentHandler.CreatePaymentIntent()))
	routerMux.HandleFunc("POST /api/v1/payments/verify", limited(paymentHandler.VerifyPayment()))
	routerMux.HandleFunc("GET /api/v1/payments/key", paymentHandler.PublicKey())
	routerMux.HandleFunc("POST /api/v1/payments/webhook", paymentHandler.HandleWebhook())
	routerMux.HandleFunc("GET /api/v1/admin/dashboard", adminOnly(adminHandler.Dashboard()))
	routerMux.HandleFunc("GET /api/v1/admin/orders", adminOnly(orderHandler.ListAllOrders()))
	routerMux.HandleFunc("PUT /api/v1/admin/orders/{id}/deliver", adminOnly(orderHandler.MarkDelivered()))
	routerMux.HandleFunc("DELETE /api/v1/admin/orders/{id}", adminOnly(orderHandler.DeleteOrder()))
	routerMux.HandleFunc("POST /api/v1/admin/products", adminOnly(productHandler.CreateProduct()))
	routerMux.HandleFunc("PUT /api/v1/admin/products/{id}", adminOnly(productHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/admin/products/{id}", adminOnly(productHandler.DeleteProduct()))
	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining. metrics.Middleware reads r.Pattern, so it must wrap the mux directly
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)
	handler = otelhttp.NewHandler(handler, "storefront")

	// Setup http server
	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.String("error", err.Error()))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown encountered an issue", slog.String("error", err.Error()))
	}
}
