package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/quickkart/storefront/internal/bus"
	"github.com/quickkart/storefront/internal/cart"
	"github.com/quickkart/storefront/internal/catalog"
	"github.com/quickkart/storefront/internal/checkout"
	"github.com/quickkart/storefront/internal/domain"
	"github.com/quickkart/storefront/internal/httpapi"
	"github.com/quickkart/storefront/internal/inventory"
	"github.com/quickkart/storefront/internal/kvstore"
	"github.com/quickkart/storefront/internal/location"
	"github.com/quickkart/storefront/internal/orders"
	"github.com/quickkart/storefront/internal/pricing"
	"github.com/quickkart/storefront/internal/search"
	"github.com/quickkart/storefront/internal/telemetry"
	"github.com/quickkart/storefront/internal/wishlist"
)

// topicForKey maps store keys to the change topics republished when another
// process writes the shared store.
var topicForKey = map[string]string{
	cart.Key:            domain.TopicCartUpdated,
	wishlist.Key:        domain.TopicWishlistUpdated,
	orders.KeyAll:       domain.TopicOrdersUpdated,
	orders.KeyLatest:    domain.TopicOrdersUpdated,
	location.KeyCity:    domain.TopicLocationUpdated,
	search.KeyRecent:    domain.TopicSearchSubmitted,
	search.KeyLastScope: domain.TopicSearchSubmitted,
}

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	shutdownTracer, err := telemetry.InitTracerProvider(ctx, "storefront", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize tracer", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracer(ctx) }()

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider("storefront", "0.1.0")
	if err != nil {
		logger.Error("failed to initialize meter", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownMeter(ctx) }()

	if err := runtime.Start(); err != nil {
		logger.Error("failed to start runtime metrics", "error", err)
		os.Exit(1)
	}

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		logger.Error("failed to create metrics", "error", err)
		os.Exit(1)
	}

	b := bus.New(logger)
	defer func() { _ = b.Close() }()

	var store kvstore.Store = kvstore.NewMemoryStore()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rs := kvstore.NewRedisStore(addr)
		if err := rs.Ping(ctx); err != nil {
			logger.Error("failed to connect to redis", "error", err, "addr", addr)
			os.Exit(1)
		}
		defer func() { _ = rs.Close() }()

		// writes from other storefront processes surface as local topics
		rs.Watch(func(key string) {
			if topic, ok := topicForKey[key]; ok {
				if err := b.Publish(topic); err != nil {
					logger.Warn("failed to republish store change", "error", err, "key", key)
				}
			}
		})
		store = rs
		logger.Info("using redis store", "addr", addr)
	}

	// session state is always process-local, even with a shared store
	session := kvstore.NewMemoryStore()

	cat := catalog.NewDemo()
	resolver := pricing.NewResolver(cat)
	stock := inventory.NewLookup(cat)
	cartMgr := cart.NewManager(store, b, logger)
	wishlistMgr := wishlist.NewManager(store, b, logger)
	ledger := orders.NewLedger(store, session, b, logger)
	locationMgr := location.NewManager(store, b, logger)
	searchMgr := search.NewManager(store, b, logger)

	cfg := checkout.DefaultConfig()
	if v := os.Getenv("ORDER_PROCESSING_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			logger.Error("invalid ORDER_PROCESSING_DELAY", "error", err, "value", v)
			os.Exit(1)
		}
		cfg.ProcessingDelay = d
	}
	checkoutSvc := checkout.NewService(cartMgr, ledger, stock, cat, cfg, logger)

	geocoderURL := os.Getenv("GEOCODER_URL")
	if geocoderURL == "" {
		geocoderURL = "https://nominatim.openstreetmap.org"
	}
	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	geocoder := location.NewGeocoder(geocoderURL, httpClient)

	// keep the cart gauge in sync with whatever mutated the cart
	go func() {
		updates, err := b.Subscribe(ctx, domain.TopicCartUpdated)
		if err != nil {
			logger.Error("failed to subscribe to cart updates", "error", err)
			return
		}
		for range updates {
			if n, err := cartMgr.Count(ctx); err == nil {
				metrics.RecordCartCount(ctx, n)
			}
		}
	}()

	handler := httpapi.NewHandler(cat, resolver, stock, cartMgr, wishlistMgr, ledger,
		checkoutSvc, locationMgr, geocoder, searchMgr, metrics, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", telemetry.WithHTTPRoute(handler.HandleListProducts))
	mux.HandleFunc("GET /products/{id}", telemetry.WithHTTPRoute(handler.HandleGetProduct))
	mux.HandleFunc("GET /products/{id}/pricing", telemetry.WithHTTPRoute(handler.HandleGetPricing))
	mux.HandleFunc("GET /products/{id}/stock", telemetry.WithHTTPRoute(handler.HandleGetStock))
	mux.HandleFunc("GET /offers", telemetry.WithHTTPRoute(handler.HandleListOffers))
	mux.HandleFunc("GET /cart", telemetry.WithHTTPRoute(handler.HandleGetCart))
	mux.HandleFunc("POST /cart/items", telemetry.WithHTTPRoute(handler.HandleAddCartItem))
	mux.HandleFunc("PUT /cart", telemetry.WithHTTPRoute(handler.HandleReplaceCart))
	mux.HandleFunc("DELETE /cart", telemetry.WithHTTPRoute(handler.HandleClearCart))
	mux.HandleFunc("GET /cart/count", telemetry.WithHTTPRoute(handler.HandleCartCount))
	mux.HandleFunc("GET /wishlist", telemetry.WithHTTPRoute(handler.HandleGetWishlist))
	mux.HandleFunc("POST /wishlist/{productId}/toggle", telemetry.WithHTTPRoute(handler.HandleToggleWishlist))
	mux.HandleFunc("DELETE /wishlist", telemetry.WithHTTPRoute(handler.HandleClearWishlist))
	mux.HandleFunc("GET /orders", telemetry.WithHTTPRoute(handler.HandleListOrders))
	mux.HandleFunc("GET /orders/latest", telemetry.WithHTTPRoute(handler.HandleLatestOrder))
	mux.HandleFunc("GET /orders/{id}", telemetry.WithHTTPRoute(handler.HandleGetOrder))
	mux.HandleFunc("GET /orders/{id}/tracking", telemetry.WithHTTPRoute(handler.HandleGetTracking))
	mux.HandleFunc("POST /checkout", telemetry.WithHTTPRoute(handler.HandleCheckout))
	mux.HandleFunc("GET /location", telemetry.WithHTTPRoute(handler.HandleGetLocation))
	mux.HandleFunc("PUT /location", telemetry.WithHTTPRoute(handler.HandleSetLocation))
	mux.HandleFunc("POST /location/detect", telemetry.WithHTTPRoute(handler.HandleDetectLocation))
	mux.HandleFunc("GET /search/recent", telemetry.WithHTTPRoute(handler.HandleRecentSearches))
	mux.HandleFunc("POST /search", telemetry.WithHTTPRoute(handler.HandleSearch))
	mux.Handle("GET /metrics", metricsHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr: ":" + port,
		Handler: otelhttp.NewHandler(mux, "storefront",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if r.Pattern != "" {
					return r.Pattern
				}
				return r.Method + " " + r.URL.Path
			}),
		),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("starting storefront service", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}
