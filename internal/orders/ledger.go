package orders

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/quickkart/storefront/internal/bus"
	"github.com/quickkart/storefront/internal/domain"
	"github.com/quickkart/storefront/internal/kvstore"
)

const (
	// KeyAll holds the JSON-encoded ledger, newest first.
	KeyAll = "orders:all"
	// KeyLatest points at the most recently placed order. It is written to
	// the persistent store and mirrored to a session-scoped store.
	KeyLatest = "order:latest"
)

// Ledger is the append-only list of placed orders. Entries are only ever
// prepended; existing entries are never deleted or reordered.
type Ledger struct {
	store   kvstore.Store
	session kvstore.Store
	bus     *bus.Bus
	logger  *slog.Logger
}

func NewLedger(store, session kvstore.Store, b *bus.Bus, logger *slog.Logger) *Ledger {
	return &Ledger{store: store, session: session, bus: b, logger: logger}
}

// All returns every placed order, newest first. Absent or corrupt content
// reads as an empty ledger.
func (l *Ledger) All(ctx context.Context) ([]domain.SavedOrder, error) {
	raw, ok, err := l.store.Get(ctx, KeyAll)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.SavedOrder{}, nil
	}

	var all []domain.SavedOrder
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		l.logger.Warn("discarding corrupt order ledger", "error", err)
		return []domain.SavedOrder{}, nil
	}
	return all, nil
}

// Append prepends the order, defaulting its status to confirmed when unset,
// persists the ledger and publishes orders.updated.
func (l *Ledger) Append(ctx context.Context, order domain.SavedOrder) error {
	if order.Status == "" {
		order.Status = domain.OrderStatusConfirmed
	}

	all, err := l.All(ctx)
	if err != nil {
		return err
	}
	all = append([]domain.SavedOrder{order}, all...)

	data, err := json.Marshal(all)
	if err != nil {
		return err
	}
	if err := l.store.Set(ctx, KeyAll, string(data)); err != nil {
		return err
	}

	if err := l.bus.Publish(domain.TopicOrdersUpdated); err != nil {
		l.logger.Error("failed to publish orders change", "error", err)
	}
	return nil
}

func (l *Ledger) ByID(ctx context.Context, id string) (*domain.SavedOrder, error) {
	all, err := l.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, nil
}

// SetLatest records the latest-order pointer in both stores.
func (l *Ledger) SetLatest(ctx context.Context, order domain.SavedOrder) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	if err := l.store.Set(ctx, KeyLatest, string(data)); err != nil {
		return err
	}
	if err := l.session.Set(ctx, KeyLatest, string(data)); err != nil {
		l.logger.Warn("failed to mirror latest order to session store", "error", err)
	}
	return nil
}

// Latest reads the latest-order pointer, preferring the session mirror.
func (l *Ledger) Latest(ctx context.Context) (*domain.SavedOrder, error) {
	for _, s := range []kvstore.Store{l.session, l.store} {
		raw, ok, err := s.Get(ctx, KeyLatest)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var order domain.SavedOrder
		if err := json.Unmarshal([]byte(raw), &order); err != nil {
			l.logger.Warn("discarding corrupt latest-order pointer", "error", err)
			continue
		}
		return &order, nil
	}
	return nil, nil
}
