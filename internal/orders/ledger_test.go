package orders

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/quickkart/storefront/internal/bus"
	"github.com/quickkart/storefront/internal/domain"
	"github.com/quickkart/storefront/internal/kvstore"
)

func newTestLedger(t *testing.T) (*Ledger, *kvstore.MemoryStore, *kvstore.MemoryStore) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := kvstore.NewMemoryStore()
	session := kvstore.NewMemoryStore()
	b := bus.New(logger)
	t.Cleanup(func() { _ = b.Close() })
	return NewLedger(store, session, b, logger), store, session
}

func order(id string) domain.SavedOrder {
	return domain.SavedOrder{
		ID:            id,
		Date:          time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
		City:          "Delhi",
		PaymentMethod: domain.PaymentUPI,
		Amounts:       domain.Amounts{Subtotal: 100, Shipping: 49, Total: 149},
	}
}

func TestLedger_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		l, _, _ := newTestLedger(t)

		if err := l.Append(ctx, order("A")); err != nil {
			t.Fatalf("append A: %v", err)
		}
		if err := l.Append(ctx, order("B")); err != nil {
			t.Fatalf("append B: %v", err)
		}

		all, err := l.All(ctx)
		if err != nil {
			t.Fatalf("all: %v", err)
		}
		if len(all) != 2 || all[0].ID != "B" || all[1].ID != "A" {
			t.Errorf("expected [B A], got %+v", all)
		}
	})

	t.Run("defaults status to confirmed", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		_ = l.Append(ctx, order("A"))

		got, err := l.ByID(ctx, "A")
		if err != nil {
			t.Fatalf("byid: %v", err)
		}
		if got == nil || got.Status != domain.OrderStatusConfirmed {
			t.Errorf("expected confirmed, got %+v", got)
		}
	})

	t.Run("explicit status kept", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		o := order("A")
		o.Status = domain.OrderStatusPending
		_ = l.Append(ctx, o)

		got, _ := l.ByID(ctx, "A")
		if got.Status != domain.OrderStatusPending {
			t.Errorf("expected pending, got %s", got.Status)
		}
	})
}

func TestLedger_ByID(t *testing.T) {
	ctx := context.Background()
	l, _, _ := newTestLedger(t)
	_ = l.Append(ctx, order("A"))

	got, err := l.ByID(ctx, "missing")
	if err != nil {
		t.Fatalf("byid: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown id, got %+v", got)
	}
}

func TestLedger_CorruptReadsEmpty(t *testing.T) {
	ctx := context.Background()
	l, store, _ := newTestLedger(t)

	_ = store.Set(ctx, KeyAll, "not json")

	all, err := l.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty ledger, got %+v", all)
	}
}

func TestLedger_Latest(t *testing.T) {
	ctx := context.Background()

	t.Run("session mirror preferred", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		_ = l.SetLatest(ctx, order("A"))

		got, err := l.Latest(ctx)
		if err != nil {
			t.Fatalf("latest: %v", err)
		}
		if got == nil || got.ID != "A" {
			t.Errorf("expected A, got %+v", got)
		}
	})

	t.Run("falls back to persistent store", func(t *testing.T) {
		l, _, session := newTestLedger(t)
		_ = l.SetLatest(ctx, order("A"))
		_ = session.Remove(ctx, KeyLatest)

		got, err := l.Latest(ctx)
		if err != nil {
			t.Fatalf("latest: %v", err)
		}
		if got == nil || got.ID != "A" {
			t.Errorf("expected A from persistent store, got %+v", got)
		}
	})

	t.Run("nil when never set", func(t *testing.T) {
		l, _, _ := newTestLedger(t)
		got, err := l.Latest(ctx)
		if err != nil {
			t.Fatalf("latest: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}

func TestStageIndex(t *testing.T) {
	placed := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"just placed", 30 * time.Second, 0},
		{"confirmed", 10 * time.Minute, 1},
		{"shipped", 2 * time.Hour, 2},
		{"out for delivery", 36 * time.Hour, 3},
		{"delivered", 72 * time.Hour, 4},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StageIndex(placed, placed.Add(tc.elapsed)); got != tc.want {
				t.Errorf("expected stage %d, got %d", tc.want, got)
			}
		})
	}
}

func TestStages_Cancelled(t *testing.T) {
	o := order("A")
	o.Status = domain.OrderStatusCancelled

	stages := Stages(&o, o.Date.Add(72*time.Hour))
	for _, s := range stages[1:] {
		if s.Reached {
			t.Errorf("cancelled order should not reach %s", s.Key)
		}
	}
}
