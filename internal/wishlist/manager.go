package wishlist

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/quickkart/storefront/internal/bus"
	"github.com/quickkart/storefront/internal/domain"
	"github.com/quickkart/storefront/internal/kvstore"
)

// Key is the store key holding {"items":[productId,...]}.
const Key = "wishlist"

type payload struct {
	Items []string `json:"items"`
}

// Manager owns the wishlist: a set of product ids, insertion order kept for
// display. Mutations publish wishlist.updated.
type Manager struct {
	store  kvstore.Store
	bus    *bus.Bus
	logger *slog.Logger
}

func NewManager(store kvstore.Store, b *bus.Bus, logger *slog.Logger) *Manager {
	return &Manager{store: store, bus: b, logger: logger}
}

// IDs returns the wishlisted product ids, empty when absent or corrupt.
func (m *Manager) IDs(ctx context.Context) ([]string, error) {
	raw, ok, err := m.store.Get(ctx, Key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{}, nil
	}

	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		m.logger.Warn("discarding corrupt wishlist", "error", err)
		return []string{}, nil
	}
	if p.Items == nil {
		return []string{}, nil
	}
	return p.Items, nil
}

func (m *Manager) Contains(ctx context.Context, productID string) (bool, error) {
	ids, err := m.IDs(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(ids, productID), nil
}

// Toggle flips membership and returns the new state: true when the product
// was just added, false when it was just removed.
func (m *Manager) Toggle(ctx context.Context, productID string) (bool, error) {
	ids, err := m.IDs(ctx)
	if err != nil {
		return false, err
	}

	if i := slices.Index(ids, productID); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
		return false, m.write(ctx, ids)
	}
	ids = append(ids, productID)
	return true, m.write(ctx, ids)
}

func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Remove(ctx, Key); err != nil {
		return err
	}
	m.publish()
	return nil
}

func (m *Manager) Count(ctx context.Context) (int, error) {
	ids, err := m.IDs(ctx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (m *Manager) write(ctx context.Context, ids []string) error {
	data, err := json.Marshal(payload{Items: ids})
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, Key, string(data)); err != nil {
		return err
	}
	m.publish()
	return nil
}

func (m *Manager) publish() {
	if err := m.bus.Publish(domain.TopicWishlistUpdated); err != nil {
		m.logger.Error("failed to publish wishlist change", "error", err)
	}
}
