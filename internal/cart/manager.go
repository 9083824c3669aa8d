package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quickkart/storefront/internal/bus"
	"github.com/quickkart/storefront/internal/domain"
	"github.com/quickkart/storefront/internal/kvstore"
)

// Key is the store key holding the JSON-encoded cart.
const Key = "cart"

// The storefront serves a single demo shopper.
const defaultOwnerID = "u1"

var ErrInvalidQuantity = errors.New("quantity must be positive")

// Manager owns the cart entity. Every mutation persists immediately and
// publishes a cart.updated notification.
type Manager struct {
	store  kvstore.Store
	bus    *bus.Bus
	logger *slog.Logger
}

func NewManager(store kvstore.Store, b *bus.Bus, logger *slog.Logger) *Manager {
	return &Manager{store: store, bus: b, logger: logger}
}

// Read decodes the persisted cart. Absent or corrupt content reads as nil;
// only a store failure is an error.
func (m *Manager) Read(ctx context.Context) (*domain.Cart, error) {
	raw, ok, err := m.store.Get(ctx, Key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var c domain.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		m.logger.Warn("discarding corrupt cart", "error", err)
		return nil, nil
	}
	return &c, nil
}

// AddItem merges into an existing line with the same SKU, keeping that
// line's original price snapshot, or appends a new line with the given
// snapshot. The cart is created lazily on first add.
func (m *Manager) AddItem(ctx context.Context, productID, sku string, quantity int, unitPrice int64) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	c, err := m.Read(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &domain.Cart{
			ID:     uuid.New().String(),
			UserID: defaultOwnerID,
			Items:  []domain.CartItem{},
			Status: domain.CartStatusActive,
		}
	}

	merged := false
	for i := range c.Items {
		if sameLine(c.Items[i], productID, sku) {
			c.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, domain.CartItem{
			ProductID:     productID,
			SKU:           sku,
			Quantity:      quantity,
			PriceSnapshot: unitPrice,
		})
	}

	if err := m.Write(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Lines are keyed by SKU; legacy lines without a SKU fall back to the
// product id.
func sameLine(it domain.CartItem, productID, sku string) bool {
	if sku != "" && it.SKU != "" {
		return it.SKU == sku
	}
	return it.ProductID == productID
}

// Write replaces the persisted cart wholesale and publishes the change.
func (m *Manager) Write(ctx context.Context, c *domain.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, Key, string(data)); err != nil {
		return err
	}
	m.publish()
	return nil
}

// Clear removes the persisted cart and publishes the change.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Remove(ctx, Key); err != nil {
		return err
	}
	m.publish()
	return nil
}

// Count sums quantities across all lines, 0 when the cart is absent.
func (m *Manager) Count(ctx context.Context) (int, error) {
	c, err := m.Read(ctx)
	if err != nil {
		return 0, err
	}
	return c.Count(), nil
}

func (m *Manager) publish() {
	if err := m.bus.Publish(domain.TopicCartUpdated); err != nil {
		m.logger.Error("failed to publish cart change", "error", err)
	}
}
