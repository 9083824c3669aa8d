package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/quickkart/storefront/internal/cart"
	"github.com/quickkart/storefront/internal/catalog"
	"github.com/quickkart/storefront/internal/domain"
	"github.com/quickkart/storefront/internal/inventory"
	"github.com/quickkart/storefront/internal/orders"
)

// ValidationError carries a user-facing message; the flow returns to editing
// with nothing committed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StockError is a validation failure caused by insufficient stock for a cart
// line in the delivery city at placement time.
type StockError struct {
	ProductName string
	City        string
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s in %s", e.ProductName, e.City)
}

type Config struct {
	FreeShippingMin int64 // subtotal at or above which shipping is free
	ShippingFee     int64
	CODFee          int64
	CODMax          int64 // COD unavailable above this order total
	// ProcessingDelay simulates payment processing before the order is
	// committed. An abandoned request commits nothing.
	ProcessingDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		FreeShippingMin: 999,
		ShippingFee:     49,
		CODFee:          30,
		CODMax:          10000,
		ProcessingDelay: 5 * time.Second,
	}
}

type Request struct {
	City          string               `json:"city"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	Address       domain.Address       `json:"address"`
	UPIID         string               `json:"upi_id,omitempty"`
	Card          *CardDetails         `json:"card,omitempty"`
}

type CardDetails struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVV    string `json:"cvv"`
}

// Service drives the order-placement flow: re-validate stock and fields,
// compute amounts from price snapshots, then commit (latest pointer, ledger
// append, cart clear) as a unit after the processing delay.
type Service struct {
	cart    *cart.Manager
	ledger  *orders.Ledger
	stock   *inventory.Lookup
	catalog *catalog.Catalog
	cfg     Config
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(
	cartMgr *cart.Manager,
	ledger *orders.Ledger,
	stock *inventory.Lookup,
	cat *catalog.Catalog,
	cfg Config,
	logger *slog.Logger,
) *Service {
	return &Service{
		cart:    cartMgr,
		ledger:  ledger,
		stock:   stock,
		catalog: cat,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

type quote struct {
	lines    []domain.OrderLine
	subtotal int64
	shipping int64
	codFee   int64
	total    int64
}

// PlaceOrder runs the Validating and Placing states. Any validation failure
// returns an error and leaves the cart untouched.
func (s *Service) PlaceOrder(ctx context.Context, req Request) (*domain.SavedOrder, error) {
	q, err := s.buildQuote(ctx, req.PaymentMethod, req.City)
	if err != nil {
		return nil, err
	}

	if err := s.validateFields(req, q.total); err != nil {
		return nil, err
	}

	// Simulated payment processing. Must complete before anything commits;
	// a cancelled context leaves cart and ledger exactly as they were.
	if s.cfg.ProcessingDelay > 0 {
		timer := time.NewTimer(s.cfg.ProcessingDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	order := domain.SavedOrder{
		ID:            "ORD-" + uuid.New().String(),
		Date:          s.now().UTC(),
		City:          req.City,
		PaymentMethod: req.PaymentMethod,
		Address:       req.Address,
		Items:         q.lines,
		Amounts: domain.Amounts{
			Subtotal: q.subtotal,
			Shipping: q.shipping,
			CODFee:   q.codFee,
			Total:    q.total,
		},
		Status: domain.OrderStatusConfirmed,
	}

	if err := s.ledger.SetLatest(ctx, order); err != nil {
		return nil, fmt.Errorf("save latest order: %w", err)
	}
	if err := s.ledger.Append(ctx, order); err != nil {
		return nil, fmt.Errorf("append order: %w", err)
	}
	if err := s.cart.Clear(ctx); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	s.logger.Info("order placed",
		"order_id", order.ID,
		"city", order.City,
		"payment_method", order.PaymentMethod,
		"total", order.Amounts.Total,
	)
	return &order, nil
}

// buildQuote walks the cart, re-checks stock in the delivery city and totals
// the lines using their price snapshots.
func (s *Service) buildQuote(ctx context.Context, method domain.PaymentMethod, city string) (*quote, error) {
	c, err := s.cart.Read(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil || len(c.Items) == 0 {
		return nil, &ValidationError{Message: "cart is empty"}
	}

	q := &quote{}
	for _, it := range c.Items {
		p := s.catalog.ProductBySKU(it.SKU)
		if p == nil {
			p = s.catalog.ProductByID(it.ProductID)
		}
		if p == nil {
			return nil, &ValidationError{Message: "some products are no longer available"}
		}

		key := it.SKU
		if key == "" {
			key = it.ProductID
		}
		if s.stock.GetStock(key, city) < it.Quantity {
			return nil, &StockError{ProductName: p.Name, City: city}
		}

		price := it.PriceSnapshot
		if price == 0 {
			price = p.Price
		}
		q.lines = append(q.lines, domain.OrderLine{
			ProductID: it.ProductID,
			SKU:       it.SKU,
			Quantity:  it.Quantity,
			Price:     price,
		})
		q.subtotal += int64(it.Quantity) * price
	}

	if q.subtotal < s.cfg.FreeShippingMin {
		q.shipping = s.cfg.ShippingFee
	}
	if method == domain.PaymentCOD {
		q.codFee = s.cfg.CODFee
	}
	q.total = q.subtotal + q.shipping + q.codFee
	return q, nil
}

func (s *Service) validateFields(req Request, total int64) error {
	if !validAddress(req.Address) {
		return &ValidationError{Message: "please fill a valid shipping address (name, 10-digit phone, address, 6-digit pincode)"}
	}

	switch req.PaymentMethod {
	case domain.PaymentUPI:
		if !validUPI(req.UPIID) {
			return &ValidationError{Message: "enter a valid UPI ID (e.g., ravi@okicici)"}
		}
	case domain.PaymentCard:
		if !validCard(req.Card) {
			return &ValidationError{Message: "please enter valid card details"}
		}
	case domain.PaymentCOD:
		if total > s.cfg.CODMax {
			return &ValidationError{Message: fmt.Sprintf("cash on delivery is not available for orders above ₹%d", s.cfg.CODMax)}
		}
	default:
		return &ValidationError{Message: "unknown payment method"}
	}
	return nil
}
