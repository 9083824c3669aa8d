package catalog

import (
	"strings"

	"github.com/quickkart/storefront/internal/domain"
)

// Catalog is the read-only reference dataset: products, categories,
// subcategories, offers and inventory records. Lookups return nil for a
// miss, never an error.
type Catalog struct {
	products      []domain.Product
	categories    []domain.Category
	subcategories []domain.SubCategory
	offers        []domain.Offer
	inventory     []domain.InventoryRecord
}

func New(
	products []domain.Product,
	categories []domain.Category,
	subcategories []domain.SubCategory,
	offers []domain.Offer,
	inventory []domain.InventoryRecord,
) *Catalog {
	return &Catalog{
		products:      products,
		categories:    categories,
		subcategories: subcategories,
		offers:        offers,
		inventory:     inventory,
	}
}

func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) ProductByID(id string) *domain.Product {
	for _, p := range c.products {
		if p.ID == id {
			cp := p
			return &cp
		}
	}
	return nil
}

func (c *Catalog) ProductBySKU(sku string) *domain.Product {
	if sku == "" {
		return nil
	}
	for _, p := range c.products {
		if p.SKU == sku {
			cp := p
			return &cp
		}
	}
	return nil
}

func (c *Catalog) SubcategoryByID(id string) *domain.SubCategory {
	for _, s := range c.subcategories {
		if s.ID == id {
			cp := s
			return &cp
		}
	}
	return nil
}

func (c *Catalog) CategoryByID(id string) *domain.Category {
	for _, cat := range c.categories {
		if cat.ID == id {
			cp := cat
			return &cp
		}
	}
	return nil
}

// Classify resolves a product's subcategory and category; either may be nil
// when the reference data is incomplete.
func (c *Catalog) Classify(p *domain.Product) (*domain.Category, *domain.SubCategory) {
	sub := c.SubcategoryByID(p.SubcategoryID)
	if sub == nil {
		return nil, nil
	}
	return c.CategoryByID(sub.CategoryID), sub
}

func (c *Catalog) Offers() []domain.Offer {
	out := make([]domain.Offer, len(c.offers))
	copy(out, c.offers)
	return out
}

// Stock returns the stock count for a product id or SKU in a city, 0 when
// no record matches.
func (c *Catalog) Stock(productOrSKU, city string) int {
	for _, rec := range c.inventory {
		if rec.City != city {
			continue
		}
		if rec.ProductID == productOrSKU || (rec.SKU != "" && rec.SKU == productOrSKU) {
			return rec.Stock
		}
	}
	return 0
}

// Search filters products by a case-insensitive name/description match and
// an optional category scope ("all" or empty means no scope).
func (c *Catalog) Search(query, categoryScope string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	var out []domain.Product
	for _, p := range c.products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		if !c.inScope(p, categoryScope) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *Catalog) inScope(p domain.Product, categoryScope string) bool {
	if categoryScope == "" || categoryScope == "all" {
		return true
	}
	sub := c.SubcategoryByID(p.SubcategoryID)
	return sub != nil && sub.CategoryID == categoryScope
}
