package ports

import (
	"context"

	"github.com/stroyservice/intake-system/internal/core/domain"
)

// Delivery is one outbound notification addressed to a single recipient.
type Delivery struct {
	ChatID int64
	Text   string
}

// DeliveryQueue accepts deliveries for asynchronous, best-effort dispatch.
type DeliveryQueue interface {
	Enqueue(d Delivery)
}

// Notifier fans a new-order notification out to privileged staff, once per
// distinct recipient. Delivery failures never propagate to the caller.
type Notifier interface {
	NotifyNewOrder(ctx context.Context, o domain.Order)
}
