package location

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/quickkart/storefront/internal/bus"
	"github.com/quickkart/storefront/internal/domain"
	"github.com/quickkart/storefront/internal/kvstore"
)

// KeyCity is the store key holding the selected delivery city.
const KeyCity = "city"

const defaultCity = "Delhi"

var ErrEmptyCity = errors.New("city must not be empty")

// Manager owns the delivery-city preference. Inventory and checkout are
// scoped by it.
type Manager struct {
	store  kvstore.Store
	bus    *bus.Bus
	logger *slog.Logger
}

func NewManager(store kvstore.Store, b *bus.Bus, logger *slog.Logger) *Manager {
	return &Manager{store: store, bus: b, logger: logger}
}

// City returns the selected city, falling back to the default when nothing
// was stored.
func (m *Manager) City(ctx context.Context) string {
	v, ok, err := m.store.Get(ctx, KeyCity)
	if err != nil {
		m.logger.Warn("failed to read city", "error", err)
		return defaultCity
	}
	if !ok || strings.TrimSpace(v) == "" {
		return defaultCity
	}
	return v
}

func (m *Manager) SetCity(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return ErrEmptyCity
	}
	if err := m.store.Set(ctx, KeyCity, city); err != nil {
		return err
	}
	if err := m.bus.Publish(domain.TopicLocationUpdated); err != nil {
		m.logger.Error("failed to publish location change", "error", err)
	}
	return nil
}
