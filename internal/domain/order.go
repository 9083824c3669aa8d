package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentUPI  PaymentMethod = "upi"
	PaymentCard PaymentMethod = "card"
	PaymentCOD  PaymentMethod = "cod"
)

type Address struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Line1   string `json:"line1"`
	Pincode string `json:"pincode"`
}

type OrderLine struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku,omitempty"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// Amounts invariant: Total = Subtotal + Shipping + CODFee.
type Amounts struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	CODFee   int64 `json:"cod_fee"`
	Total    int64 `json:"total"`
}

// SavedOrder is an entry in the append-only order ledger. Once placed it is
// never mutated except for status transitions.
type SavedOrder struct {
	ID            string        `json:"id"`
	Date          time.Time     `json:"date"`
	City          string        `json:"city"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Address       Address       `json:"address"`
	Items         []OrderLine   `json:"items"`
	Amounts       Amounts       `json:"amounts"`
	Status        OrderStatus   `json:"status,omitempty"`
}
