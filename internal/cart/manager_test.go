package cart

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/quickkart/storefront/internal/bus"
	"github.com/quickkart/storefront/internal/domain"
	"github.com/quickkart/storefront/internal/kvstore"
)

func newTestManager(t *testing.T) (*Manager, *kvstore.MemoryStore, *bus.Bus) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kvstore.NewMemoryStore()
	b := bus.New(logger)
	t.Cleanup(func() { _ = b.Close() })
	return NewManager(store, b, logger), store, b
}

func TestManager_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates cart lazily on first add", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		c, err := m.AddItem(ctx, "p_kurta", "sku_kurta", 1, 2499)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if c.ID == "" || c.Status != domain.CartStatusActive {
			t.Errorf("unexpected cart: %+v", c)
		}
		if len(c.Items) != 1 || c.Items[0].Quantity != 1 {
			t.Errorf("unexpected items: %+v", c.Items)
		}
	})

	t.Run("same SKU merges and keeps the first snapshot", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		if _, err := m.AddItem(ctx, "p_kurta", "sku_kurta", 2, 2499); err != nil {
			t.Fatalf("first add: %v", err)
		}
		// price changed in the catalog between adds; the snapshot must not move
		c, err := m.AddItem(ctx, "p_kurta", "sku_kurta", 3, 1999)
		if err != nil {
			t.Fatalf("second add: %v", err)
		}

		if len(c.Items) != 1 {
			t.Fatalf("expected one line, got %d", len(c.Items))
		}
		if c.Items[0].Quantity != 5 {
			t.Errorf("expected quantity 5, got %d", c.Items[0].Quantity)
		}
		if c.Items[0].PriceSnapshot != 2499 {
			t.Errorf("expected original snapshot 2499, got %d", c.Items[0].PriceSnapshot)
		}
	})

	t.Run("distinct SKUs get distinct lines", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		_, _ = m.AddItem(ctx, "p_kurta", "sku_kurta", 2, 2499)
		c, err := m.AddItem(ctx, "p_iphone15", "sku_iphone15", 3, 79999)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if len(c.Items) != 2 {
			t.Errorf("expected two lines, got %d", len(c.Items))
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		m, _, _ := newTestManager(t)

		if _, err := m.AddItem(ctx, "p_kurta", "sku_kurta", 0, 2499); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("publishes cart.updated", func(t *testing.T) {
		m, _, b := newTestManager(t)

		subCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		ch, err := b.Subscribe(subCtx, domain.TopicCartUpdated)
		if err != nil {
			t.Fatalf("subscribe: %v", err)
		}

		if _, err := m.AddItem(ctx, "p_kurta", "sku_kurta", 1, 2499); err != nil {
			t.Fatalf("add: %v", err)
		}

		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatal("no cart.updated notification")
		}
	})
}

func TestManager_Count(t *testing.T) {
	ctx := context.Background()

	t.Run("absent cart counts zero", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		n, err := m.Count(ctx)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 0 {
			t.Errorf("expected 0, got %d", n)
		}
	})

	t.Run("sums quantities across lines", func(t *testing.T) {
		m, _, _ := newTestManager(t)
		_, _ = m.AddItem(ctx, "p_a", "sku_a", 2, 100)
		_, _ = m.AddItem(ctx, "p_b", "sku_b", 3, 200)

		n, err := m.Count(ctx)
		if err != nil {
			t.Fatalf("count: %v", err)
		}
		if n != 5 {
			t.Errorf("expected 5, got %d", n)
		}
	})
}

func TestManager_ReadCorrupt(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newTestManager(t)

	_ = store.Set(ctx, Key, "{not json")

	c, err := m.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if c != nil {
		t.Errorf("expected corrupt cart to read as absent, got %+v", c)
	}
}

func TestManager_Clear(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newTestManager(t)

	_, _ = m.AddItem(ctx, "p_a", "sku_a", 1, 100)
	if err := m.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}

	c, _ := m.Read(ctx)
	if c != nil {
		t.Errorf("expected empty cart after clear, got %+v", c)
	}
}
