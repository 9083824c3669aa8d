package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/quickkart/storefront/internal/cart"
	"github.com/quickkart/storefront/internal/catalog"
	"github.com/quickkart/storefront/internal/checkout"
	"github.com/quickkart/storefront/internal/domain"
	"github.com/quickkart/storefront/internal/inventory"
	"github.com/quickkart/storefront/internal/location"
	"github.com/quickkart/storefront/internal/orders"
	"github.com/quickkart/storefront/internal/pricing"
	"github.com/quickkart/storefront/internal/search"
	"github.com/quickkart/storefront/internal/telemetry"
	"github.com/quickkart/storefront/internal/wishlist"
)

// Handler exposes the storefront state over HTTP. Mutating endpoints go
// through the managers, which persist and publish change notifications.
type Handler struct {
	catalog  *catalog.Catalog
	pricing  *pricing.Resolver
	stock    *inventory.Lookup
	cart     *cart.Manager
	wishlist *wishlist.Manager
	ledger   *orders.Ledger
	checkout *checkout.Service
	location *location.Manager
	geocoder *location.Geocoder
	search   *search.Manager
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

func NewHandler(
	cat *catalog.Catalog,
	resolver *pricing.Resolver,
	stock *inventory.Lookup,
	cartMgr *cart.Manager,
	wishlistMgr *wishlist.Manager,
	ledger *orders.Ledger,
	checkoutSvc *checkout.Service,
	locationMgr *location.Manager,
	geocoder *location.Geocoder,
	searchMgr *search.Manager,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		catalog:  cat,
		pricing:  resolver,
		stock:    stock,
		cart:     cartMgr,
		wishlist: wishlistMgr,
		ledger:   ledger,
		checkout: checkoutSvc,
		location: locationMgr,
		geocoder: geocoder,
		search:   searchMgr,
		metrics:  metrics,
		logger:   logger,
	}
}

// --- catalog ---

func (h *Handler) HandleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	scope := r.URL.Query().Get("scope")

	products := h.catalog.Search(q, scope)
	if products == nil {
		products = []domain.Product{}
	}

	h.writeJSON(w, http.StatusOK, products)
}

func (h *Handler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	p := h.catalog.ProductByID(r.PathValue("id"))
	if p == nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

func (h *Handler) HandleGetPricing(w http.ResponseWriter, r *http.Request) {
	quote := h.pricing.Resolve(r.PathValue("id"), time.Now())
	if quote == nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}
	h.writeJSON(w, http.StatusOK, quote)
}

func (h *Handler) HandleGetStock(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		city = h.location.City(r.Context())
	}

	id := r.PathValue("id")
	if h.catalog.ProductByID(id) == nil && h.catalog.ProductBySKU(id) == nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"city":  city,
		"stock": h.stock.GetStock(id, city),
	})
}

func (h *Handler) HandleListOffers(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	active := []domain.Offer{}
	for _, o := range h.catalog.Offers() {
		if !now.Before(o.ValidFrom) && !now.After(o.ValidTo) {
			active = append(active, o)
		}
	}
	h.writeJSON(w, http.StatusOK, active)
}

// --- cart ---

func (h *Handler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.cart.Read(r.Context())
	if err != nil {
		h.logger.Error("failed to read cart", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

type addCartItemRequest struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku,omitempty"`
	Quantity  int    `json:"quantity"`
}

func (h *Handler) HandleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	p := h.catalog.ProductBySKU(req.SKU)
	if p == nil {
		p = h.catalog.ProductByID(req.ProductID)
	}
	if p == nil {
		h.writeError(w, http.StatusNotFound, "product not found")
		return
	}
	sku := req.SKU
	if sku == "" {
		sku = p.SKU
	}

	// the snapshot captures the offer-adjusted price at add time
	unitPrice := p.Price
	if quote := h.pricing.Resolve(p.ID, time.Now()); quote != nil {
		unitPrice = quote.EffectivePrice
	}

	c, err := h.cart.AddItem(r.Context(), p.ID, sku, req.Quantity, unitPrice)
	if err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to add cart item", "error", err, "product_id", p.ID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.metrics.CartItemsAdded(r.Context(), req.Quantity)
	h.recordCartCount(r.Context())
	h.logger.Info("cart item added", "product_id", p.ID, "sku", sku, "quantity", req.Quantity)
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) HandleReplaceCart(w http.ResponseWriter, r *http.Request) {
	var c domain.Cart
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	for _, it := range c.Items {
		if it.Quantity <= 0 {
			h.writeError(w, http.StatusBadRequest, "quantity must be positive")
			return
		}
	}

	if err := h.cart.Write(r.Context(), &c); err != nil {
		h.logger.Error("failed to write cart", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.recordCartCount(r.Context())
	h.writeJSON(w, http.StatusOK, &c)
}

func (h *Handler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		h.logger.Error("failed to clear cart", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.recordCartCount(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleCartCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.cart.Count(r.Context())
	if err != nil {
		h.logger.Error("failed to count cart", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

// --- wishlist ---

func (h *Handler) HandleGetWishlist(w http.ResponseWriter, r *http.Request) {
	ids, err := h.wishlist.IDs(r.Context())
	if err != nil {
		h.logger.Error("failed to read wishlist", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"items": ids})
}

func (h *Handler) HandleToggleWishlist(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productId")
	if productID == "" {
		h.writeError(w, http.StatusBadRequest, "missing product id")
		return
	}

	in, err := h.wishlist.Toggle(r.Context(), productID)
	if err != nil {
		h.logger.Error("failed to toggle wishlist", "error", err, "product_id", productID)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.metrics.WishlistToggled(r.Context())
	h.logger.Info("wishlist toggled", "product_id", productID, "in_wishlist", in)
	h.writeJSON(w, http.StatusOK, map[string]bool{"in_wishlist": in})
}

func (h *Handler) HandleClearWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.wishlist.Clear(r.Context()); err != nil {
		h.logger.Error("failed to clear wishlist", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- orders ---

func (h *Handler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	all, err := h.ledger.All(r.Context())
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.writeJSON(w, http.StatusOK, all)
}

func (h *Handler) HandleLatestOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.ledger.Latest(r.Context())
	if err != nil {
		h.logger.Error("failed to read latest order", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		h.writeError(w, http.StatusNotFound, "no order placed yet")
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.findOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("failed to get order", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}
	h.writeJSON(w, http.StatusOK, order)
}

func (h *Handler) HandleGetTracking(w http.ResponseWriter, r *http.Request) {
	order, err := h.findOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("failed to get order for tracking", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if order == nil {
		h.writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"order_id": order.ID,
		"stages":   orders.Stages(order, time.Now()),
	})
}

// findOrder checks the ledger first and falls back to the latest-order
// pointer, which may not have hit the ledger in another process yet.
func (h *Handler) findOrder(ctx context.Context, id string) (*domain.SavedOrder, error) {
	order, err := h.ledger.ByID(ctx, id)
	if err != nil || order != nil {
		return order, err
	}
	latest, err := h.ledger.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if latest != nil && latest.ID == id {
		return latest, nil
	}
	return nil, nil
}

// --- checkout ---

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkout.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.City == "" {
		req.City = h.location.City(r.Context())
	}

	order, err := h.checkout.PlaceOrder(r.Context(), req)
	if err != nil {
		var verr *checkout.ValidationError
		var serr *checkout.StockError
		switch {
		case errors.As(err, &serr):
			h.metrics.CheckoutRejected(r.Context(), "stock")
			h.writeError(w, http.StatusConflict, serr.Error())
		case errors.As(err, &verr):
			h.metrics.CheckoutRejected(r.Context(), "validation")
			h.writeError(w, http.StatusUnprocessableEntity, verr.Error())
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			// client went away mid-processing; nothing was committed
			h.logger.Warn("checkout abandoned", "error", err)
		default:
			h.logger.Error("failed to place order", "error", err)
			h.writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.metrics.OrderPlaced(r.Context(), string(order.PaymentMethod))
	h.recordCartCount(r.Context())
	h.logger.Info("order placed", "order_id", order.ID, "total", order.Amounts.Total)
	h.writeJSON(w, http.StatusCreated, order)
}

// --- location ---

func (h *Handler) HandleGetLocation(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"city": h.location.City(r.Context())})
}

type setLocationRequest struct {
	City string `json:"city"`
}

func (h *Handler) HandleSetLocation(w http.ResponseWriter, r *http.Request) {
	var req setLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.location.SetCity(r.Context(), req.City); err != nil {
		if errors.Is(err, location.ErrEmptyCity) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to set city", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"city": req.City})
}

type detectLocationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (h *Handler) HandleDetectLocation(w http.ResponseWriter, r *http.Request) {
	var req detectLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	city, err := h.geocoder.ReverseGeocode(r.Context(), req.Lat, req.Lon)
	if err != nil {
		h.logger.Warn("reverse geocode failed", "error", err)
		h.writeError(w, http.StatusBadGateway, "couldn't detect city, try again")
		return
	}

	if err := h.location.SetCity(r.Context(), city); err != nil {
		h.logger.Error("failed to set detected city", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"city": city})
}

// --- search ---

func (h *Handler) HandleRecentSearches(w http.ResponseWriter, r *http.Request) {
	terms, err := h.search.Recent(r.Context())
	if err != nil {
		h.logger.Error("failed to read recent searches", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"recent":     terms,
		"last_scope": h.search.LastScope(r.Context()),
	})
}

type searchRequest struct {
	Term  string `json:"term"`
	Scope string `json:"scope,omitempty"`
}

func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.search.Remember(r.Context(), req.Term, req.Scope); err != nil {
		h.logger.Error("failed to remember search", "error", err)
		h.writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	products := h.catalog.Search(req.Term, req.Scope)
	if products == nil {
		products = []domain.Product{}
	}
	h.writeJSON(w, http.StatusOK, products)
}

// --- helpers ---

func (h *Handler) recordCartCount(ctx context.Context) {
	n, err := h.cart.Count(ctx)
	if err != nil {
		return
	}
	h.metrics.RecordCartCount(ctx, n)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
