package domain

// Change-notification topics. Notifications carry no payload contract;
// subscribers re-read the store, which is the single source of truth.
const (
	TopicCartUpdated     = "cart.updated"
	TopicWishlistUpdated = "wishlist.updated"
	TopicOrdersUpdated   = "orders.updated"
	TopicLocationUpdated = "location.updated"
	TopicSearchSubmitted = "search.submitted"
)
