package inventory

import "github.com/quickkart/storefront/internal/catalog"

// Lookup answers city-scoped stock queries against the catalog's inventory
// records. It is a pure read path; checkout re-queries it at placement time
// rather than trusting what was true at add-to-cart time.
type Lookup struct {
	catalog *catalog.Catalog
}

func NewLookup(c *catalog.Catalog) *Lookup {
	return &Lookup{catalog: c}
}

// GetStock returns the stock for a product id or SKU in the given city,
// 0 when no record matches.
func (l *Lookup) GetStock(productOrSKU, city string) int {
	return l.catalog.Stock(productOrSKU, city)
}
