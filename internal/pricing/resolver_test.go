package pricing

import (
	"testing"
	"time"

	"github.com/quickkart/storefront/internal/catalog"
	"github.com/quickkart/storefront/internal/domain"
)

var now = time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

func testCatalog(offers []domain.Offer) *catalog.Catalog {
	return catalog.New(
		[]domain.Product{
			{ID: "p1", SKU: "sku1", SubcategoryID: "s1", Name: "Widget", Price: 1000},
		},
		[]domain.Category{{ID: "c1", Name: "Gadgets"}},
		[]domain.SubCategory{{ID: "s1", CategoryID: "c1", Name: "Widgets"}},
		offers,
		nil,
	)
}

func activeWindow() (time.Time, time.Time) {
	return now.AddDate(0, -1, 0), now.AddDate(0, 1, 0)
}

func TestResolver_Resolve(t *testing.T) {
	t.Run("best discount wins", func(t *testing.T) {
		from, to := activeWindow()
		r := NewResolver(testCatalog([]domain.Offer{
			{ID: "o1", Name: "10% off", DiscountPercent: 10, CategoryID: "c1", ValidFrom: from, ValidTo: to},
			{ID: "o2", Name: "20% off", DiscountPercent: 20, ProductID: "p1", ValidFrom: from, ValidTo: to},
		}))

		q := r.Resolve("p1", now)
		if q == nil {
			t.Fatal("expected quote")
		}
		if q.DiscountPercent != 20 || q.EffectivePrice != 800 {
			t.Errorf("expected 20%% -> 800, got %d%% -> %d", q.DiscountPercent, q.EffectivePrice)
		}
		if q.OfferName != "20% off" {
			t.Errorf("unexpected offer name %q", q.OfferName)
		}
	})

	t.Run("expired offer never selected", func(t *testing.T) {
		from, to := activeWindow()
		r := NewResolver(testCatalog([]domain.Offer{
			{ID: "o1", Name: "10% off", DiscountPercent: 10, CategoryID: "c1", ValidFrom: from, ValidTo: to},
			{ID: "o2", Name: "90% off", DiscountPercent: 90, ProductID: "p1",
				ValidFrom: now.AddDate(-1, 0, 0), ValidTo: now.AddDate(0, -2, 0)},
		}))

		q := r.Resolve("p1", now)
		if q.DiscountPercent != 10 || q.EffectivePrice != 900 {
			t.Errorf("expected 10%% -> 900, got %d%% -> %d", q.DiscountPercent, q.EffectivePrice)
		}
	})

	t.Run("validity window inclusive", func(t *testing.T) {
		r := NewResolver(testCatalog([]domain.Offer{
			{ID: "o1", Name: "10% off", DiscountPercent: 10, ProductID: "p1", ValidFrom: now, ValidTo: now},
		}))

		q := r.Resolve("p1", now)
		if q.DiscountPercent != 10 {
			t.Errorf("offer valid exactly now should apply, got %d%%", q.DiscountPercent)
		}
	})

	t.Run("zero-percent offer is a perk, not a discount", func(t *testing.T) {
		from, to := activeWindow()
		r := NewResolver(testCatalog([]domain.Offer{
			{ID: "o1", Name: "Free shipping", DiscountPercent: 0, ValidFrom: from, ValidTo: to},
		}))

		q := r.Resolve("p1", now)
		if q.EffectivePrice != 1000 || q.DiscountPercent != 0 {
			t.Errorf("perk must not change price, got %d%% -> %d", q.DiscountPercent, q.EffectivePrice)
		}
		if len(q.Perks) != 1 || q.Perks[0].Name != "Free shipping" {
			t.Errorf("expected the perk listed, got %+v", q.Perks)
		}
	})

	t.Run("subcategory id in category slot still matches", func(t *testing.T) {
		from, to := activeWindow()
		r := NewResolver(testCatalog([]domain.Offer{
			{ID: "o1", Name: "15% off", DiscountPercent: 15, CategoryID: "s1", ValidFrom: from, ValidTo: to},
		}))

		q := r.Resolve("p1", now)
		if q.DiscountPercent != 15 || q.EffectivePrice != 850 {
			t.Errorf("expected subcategory-scoped match, got %d%% -> %d", q.DiscountPercent, q.EffectivePrice)
		}
	})

	t.Run("offer scoped to another product does not apply", func(t *testing.T) {
		from, to := activeWindow()
		r := NewResolver(testCatalog([]domain.Offer{
			{ID: "o1", Name: "30% off", DiscountPercent: 30, ProductID: "p_other", ValidFrom: from, ValidTo: to},
		}))

		q := r.Resolve("p1", now)
		if q.DiscountPercent != 0 || q.EffectivePrice != 1000 {
			t.Errorf("expected base price, got %d%% -> %d", q.DiscountPercent, q.EffectivePrice)
		}
	})

	t.Run("tie keeps the first offer found", func(t *testing.T) {
		from, to := activeWindow()
		r := NewResolver(testCatalog([]domain.Offer{
			{ID: "o1", Name: "first", DiscountPercent: 10, ProductID: "p1", ValidFrom: from, ValidTo: to},
			{ID: "o2", Name: "second", DiscountPercent: 10, CategoryID: "c1", ValidFrom: from, ValidTo: to},
		}))

		q := r.Resolve("p1", now)
		if q.OfferName != "first" {
			t.Errorf("expected first offer on tie, got %q", q.OfferName)
		}
	})

	t.Run("rounding to nearest rupee", func(t *testing.T) {
		from, to := activeWindow()
		c := catalog.New(
			[]domain.Product{{ID: "p2", SubcategoryID: "s1", Name: "Odd", Price: 999}},
			[]domain.Category{{ID: "c1"}},
			[]domain.SubCategory{{ID: "s1", CategoryID: "c1"}},
			[]domain.Offer{{ID: "o1", Name: "15% off", DiscountPercent: 15, ProductID: "p2", ValidFrom: from, ValidTo: to}},
			nil,
		)
		q := NewResolver(c).Resolve("p2", now)
		// 999 * 0.85 = 849.15 -> 849
		if q.EffectivePrice != 849 {
			t.Errorf("expected 849, got %d", q.EffectivePrice)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		r := NewResolver(testCatalog(nil))
		if q := r.Resolve("missing", now); q != nil {
			t.Errorf("expected nil quote, got %+v", q)
		}
	})
}
