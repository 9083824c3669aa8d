package orders

import (
	"time"

	"github.com/quickkart/storefront/internal/domain"
)

// Tracking stages are derived from time elapsed since placement; the stored
// status field only moves via explicit transitions.

type Stage struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Reached bool   `json:"reached"`
}

var stageDefs = []struct {
	key   string
	label string
}{
	{"placed", "Order placed"},
	{"confirmed", "Order confirmed"},
	{"shipped", "Shipped"},
	{"out", "Out for delivery"},
	{"delivered", "Delivered"},
}

// StageIndex maps elapsed time to the current tracking stage.
func StageIndex(placedAt, now time.Time) int {
	mins := now.Sub(placedAt).Minutes()
	switch {
	case mins < 1:
		return 0
	case mins < 30:
		return 1
	case mins < 24*60:
		return 2
	case mins < 48*60:
		return 3
	default:
		return 4
	}
}

// Stages returns the full stage list for an order with reached flags set. A
// cancelled order never progresses past placement.
func Stages(order *domain.SavedOrder, now time.Time) []Stage {
	idx := StageIndex(order.Date, now)
	if order.Status == domain.OrderStatusCancelled {
		idx = 0
	}

	out := make([]Stage, len(stageDefs))
	for i, def := range stageDefs {
		out[i] = Stage{Key: def.key, Label: def.label, Reached: i <= idx}
	}
	return out
}
