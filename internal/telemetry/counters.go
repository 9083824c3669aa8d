package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the storefront's application metrics. A nil *Metrics is a
// valid no-op receiver so handlers don't have to nil-check.
type Metrics struct {
	cartItemsAdded   metric.Int64Counter
	ordersPlaced     metric.Int64Counter
	checkoutRejected metric.Int64Counter
	wishlistToggles  metric.Int64Counter
	cartItemsInCart  metric.Int64Gauge
}

func NewMetrics() (*Metrics, error) {
	meter := otel.Meter("storefront")
	m := &Metrics{}

	var err error
	if m.cartItemsAdded, err = meter.Int64Counter("storefront.cart.items_added",
		metric.WithDescription("Units added to the cart")); err != nil {
		return nil, err
	}
	if m.ordersPlaced, err = meter.Int64Counter("storefront.orders.placed",
		metric.WithDescription("Orders successfully placed")); err != nil {
		return nil, err
	}
	if m.checkoutRejected, err = meter.Int64Counter("storefront.checkout.rejected",
		metric.WithDescription("Checkout attempts rejected by validation")); err != nil {
		return nil, err
	}
	if m.wishlistToggles, err = meter.Int64Counter("storefront.wishlist.toggles",
		metric.WithDescription("Wishlist toggle operations")); err != nil {
		return nil, err
	}
	if m.cartItemsInCart, err = meter.Int64Gauge("storefront.cart.count",
		metric.WithDescription("Units currently in the cart")); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Metrics) CartItemsAdded(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.cartItemsAdded.Add(ctx, int64(n))
}

func (m *Metrics) OrderPlaced(ctx context.Context, method string) {
	if m == nil {
		return
	}
	m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("payment_method", method)))
}

func (m *Metrics) CheckoutRejected(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.checkoutRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *Metrics) WishlistToggled(ctx context.Context) {
	if m == nil {
		return
	}
	m.wishlistToggles.Add(ctx, 1)
}

func (m *Metrics) RecordCartCount(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.cartItemsInCart.Record(ctx, int64(n))
}
