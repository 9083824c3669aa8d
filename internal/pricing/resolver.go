package pricing

import (
	"math"
	"time"

	"github.com/quickkart/storefront/internal/catalog"
	"github.com/quickkart/storefront/internal/domain"
)

// Quote is the resolved price for a product: the best applicable discount
// applied to the base price, plus any non-price perks (zero-percent offers
// such as free shipping).
type Quote struct {
	BasePrice       int64          `json:"base_price"`
	DiscountPercent int            `json:"discount_percent"`
	EffectivePrice  int64          `json:"effective_price"`
	OfferName       string         `json:"offer_name,omitempty"`
	Perks           []domain.Offer `json:"perks"`
}

// Resolver answers render-time and checkout-time pricing queries. It is a
// pure read path over the offer catalog.
type Resolver struct {
	catalog *catalog.Catalog
}

func NewResolver(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// Resolve returns the quote for a product at the given instant, or nil when
// the product is unknown. Ties between equal discounts keep the offer found
// first.
func (r *Resolver) Resolve(productID string, now time.Time) *Quote {
	p := r.catalog.ProductByID(productID)
	if p == nil {
		return nil
	}
	category, subcategory := r.catalog.Classify(p)

	var best *domain.Offer
	perks := []domain.Offer{}
	for _, o := range r.catalog.Offers() {
		if !offerActive(o, now) || !applies(o, p, category, subcategory) {
			continue
		}
		if o.DiscountPercent == 0 {
			perks = append(perks, o)
			continue
		}
		if best == nil || o.DiscountPercent > best.DiscountPercent {
			cp := o
			best = &cp
		}
	}

	q := &Quote{
		BasePrice:      p.Price,
		EffectivePrice: p.Price,
		Perks:          perks,
	}
	if best != nil {
		q.DiscountPercent = best.DiscountPercent
		q.OfferName = best.Name
		q.EffectivePrice = discounted(p.Price, best.DiscountPercent)
	}
	return q
}

// Validity window is inclusive of both bounds.
func offerActive(o domain.Offer, now time.Time) bool {
	return !now.Before(o.ValidFrom) && !now.After(o.ValidTo)
}

func applies(o domain.Offer, p *domain.Product, category *domain.Category, subcategory *domain.SubCategory) bool {
	if o.ProductID != "" {
		return o.ProductID == p.ID
	}
	if o.CategoryID != "" {
		if category != nil && o.CategoryID == category.ID {
			return true
		}
		// Some offer rows carry a subcategory id in the category slot;
		// matched here so those offers still apply.
		return subcategory != nil && o.CategoryID == subcategory.ID
	}
	return true
}

func discounted(base int64, percent int) int64 {
	return int64(math.Round(float64(base) * (1 - float64(percent)/100)))
}
