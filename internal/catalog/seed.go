package catalog

import (
	"time"

	"github.com/quickkart/storefront/internal/domain"
)

// NewDemo returns the catalog seeded with the demo storefront dataset.
func NewDemo() *Catalog {
	return New(demoProducts, demoCategories, demoSubcategories, demoOffers, demoInventory)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var demoCategories = []domain.Category{
	{ID: "c_elec", Name: "Electronics"},
	{ID: "c_fash", Name: "Fashion"},
	{ID: "c_home", Name: "Home"},
	{ID: "c_beauty", Name: "Beauty"},
	{ID: "c_grocery", Name: "Grocery"},
}

var demoSubcategories = []domain.SubCategory{
	{ID: "s_mobiles", CategoryID: "c_elec", Name: "Mobiles"},
	{ID: "s_laptops", CategoryID: "c_elec", Name: "Laptops"},
	{ID: "s_clothing", CategoryID: "c_fash", Name: "Clothing"},
}

var demoProducts = []domain.Product{
	{
		ID:            "p_georgette_saree",
		SKU:           "sku_georgette_saree",
		SubcategoryID: "s_clothing",
		Name:          "Georgette Saree",
		Description:   "Self Design Bollywood Georgette Saree",
		Price:         499,
		Rating:        4.3,
	},
	{
		ID:            "p_jwel_set",
		SKU:           "sku_jwel_set",
		SubcategoryID: "s_clothing",
		Name:          "Gold Jewel Set",
		Description:   "Alloy Gold-plated Gold Jewel Set",
		Price:         323,
		Rating:        4.3,
	},
	{
		ID:            "p_iphone15",
		SKU:           "sku_iphone15",
		SubcategoryID: "s_mobiles",
		Name:          "iPhone 15",
		Description:   "Latest iPhone 15 with A17 chip",
		Price:         79999,
		Rating:        4.7,
	},
	{
		ID:            "p_samsung_s23",
		SKU:           "sku_samsung_s23",
		SubcategoryID: "s_mobiles",
		Name:          "Samsung Galaxy S23",
		Description:   "Flagship Samsung device",
		Price:         59999,
		Rating:        4.5,
	},
	{
		ID:            "p_dell_xps",
		SKU:           "sku_dell_xps",
		SubcategoryID: "s_laptops",
		Name:          "Dell XPS 13",
		Description:   "Premium ultrabook",
		Price:         119999,
		Rating:        4.6,
	},
	{
		ID:            "p_kurta",
		SKU:           "sku_kurta",
		SubcategoryID: "s_clothing",
		Name:          "Men's Kurta Set",
		Description:   "Elegant cotton kurta set",
		Price:         2499,
		Rating:        4.3,
	},
}

var demoOffers = []domain.Offer{
	{
		ID:              "o1",
		Name:            "10% off on Electronics",
		DiscountPercent: 10,
		CategoryID:      "c_elec",
		ValidFrom:       date(2025, time.January, 1),
		ValidTo:         date(2026, time.December, 31),
		Description:     "Get 10% off on all electronics products",
	},
	{
		ID:              "o2",
		Name:            "5% off on Dell XPS",
		DiscountPercent: 5,
		ProductID:       "p_dell_xps",
		ValidFrom:       date(2025, time.January, 1),
		ValidTo:         date(2026, time.December, 31),
		Description:     "Special discount on Dell XPS 13",
	},
	{
		ID:              "o3",
		Name:            "15% off on Mobiles",
		DiscountPercent: 15,
		CategoryID:      "c_mobiles",
		ValidFrom:       date(2025, time.February, 1),
		ValidTo:         date(2026, time.December, 31),
		Description:     "Enjoy 15% discount on selected mobiles",
	},
	{
		ID:              "o4",
		Name:            "20% off on Shoes",
		DiscountPercent: 20,
		CategoryID:      "c_shoes",
		ValidFrom:       date(2025, time.March, 1),
		ValidTo:         date(2026, time.December, 31),
		Description:     "Step out in style with 20% off on shoes",
	},
	{
		ID:              "o5",
		Name:            "Buy 1 Get 1 Free - Accessories",
		DiscountPercent: 50,
		CategoryID:      "c_accessories",
		ValidFrom:       date(2025, time.January, 15),
		ValidTo:         date(2026, time.December, 31),
		Description:     "Get an extra accessory free on purchase",
	},
	{
		ID:              "o6",
		Name:            "Free Shipping on Orders Above ₹999",
		DiscountPercent: 0,
		ValidFrom:       date(2025, time.January, 1),
		ValidTo:         date(2026, time.December, 31),
		Description:     "Enjoy free shipping on all orders above ₹999",
	},
}

var demoInventory = []domain.InventoryRecord{
	{ID: "inv1", ProductID: "p_iphone15", SKU: "sku_iphone15", City: "Delhi", Stock: 20},
	{ID: "inv2", ProductID: "p_samsung_s23", SKU: "sku_samsung_s23", City: "Delhi", Stock: 15},
	{ID: "inv3", ProductID: "p_dell_xps", SKU: "sku_dell_xps", City: "Delhi", Stock: 5},
	{ID: "inv4", ProductID: "p_kurta", SKU: "sku_kurta", City: "Delhi", Stock: 50},
	{ID: "inv5", ProductID: "p_iphone15", SKU: "sku_iphone15", City: "Mumbai", Stock: 8},
	{ID: "inv6", ProductID: "p_kurta", SKU: "sku_kurta", City: "Mumbai", Stock: 12},
}
