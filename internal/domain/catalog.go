package domain

import "time"

// Catalog entities are immutable reference data supplied by the catalog
// provider. Prices are integer rupees.

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SubCategory struct {
	ID         string `json:"id"`
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

type Product struct {
	ID            string  `json:"id"`
	SKU           string  `json:"sku"`
	SubcategoryID string  `json:"subcategory_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         int64   `json:"price"`
	Image         string  `json:"image,omitempty"`
	Rating        float64 `json:"rating"`
}

// Offer applies to a single product, a category, or globally when neither
// scope is set. A zero discount percent marks a non-price perk (for example
// free shipping) and never changes the effective price.
type Offer struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DiscountPercent int       `json:"discount_percent"`
	CategoryID      string    `json:"category_id,omitempty"`
	ProductID       string    `json:"product_id,omitempty"`
	ValidFrom       time.Time `json:"valid_from"`
	ValidTo         time.Time `json:"valid_to"`
	Description     string    `json:"description,omitempty"`
	Image           string    `json:"image,omitempty"`
}

type InventoryRecord struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	City      string `json:"city"`
	Stock     int    `json:"stock"`
}
