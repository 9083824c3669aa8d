package inventory

import (
	"testing"

	"github.com/quickkart/storefront/internal/catalog"
)

func TestLookup_GetStock(t *testing.T) {
	l := NewLookup(catalog.NewDemo())

	t.Run("by product id", func(t *testing.T) {
		if got := l.GetStock("p_dell_xps", "Delhi"); got != 5 {
			t.Errorf("expected 5, got %d", got)
		}
	})

	t.Run("by sku", func(t *testing.T) {
		if got := l.GetStock("sku_iphone15", "Delhi"); got != 20 {
			t.Errorf("expected 20, got %d", got)
		}
	})

	t.Run("city scoped", func(t *testing.T) {
		if got := l.GetStock("p_iphone15", "Mumbai"); got != 8 {
			t.Errorf("expected 8, got %d", got)
		}
	})

	t.Run("no record means zero", func(t *testing.T) {
		if got := l.GetStock("p_dell_xps", "Chennai"); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
		if got := l.GetStock("p_unknown", "Delhi"); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})
}
