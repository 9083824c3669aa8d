package domain

type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusCompleted CartStatus = "completed"
)

// CartItem is one line per distinct SKU. PriceSnapshot is the unit price
// captured when the line was first added and stands even if the catalog
// price or offers change later.
type CartItem struct {
	ProductID     string `json:"product_id"`
	SKU           string `json:"sku,omitempty"`
	Quantity      int    `json:"quantity"`
	PriceSnapshot int64  `json:"price_snapshot"`
}

type Cart struct {
	ID     string     `json:"id"`
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
	Status CartStatus `json:"status"`
}

// Count sums quantities across all lines.
func (c *Cart) Count() int {
	if c == nil {
		return 0
	}
	var n int
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
