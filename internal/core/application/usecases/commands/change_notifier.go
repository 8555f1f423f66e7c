package commands

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// ChangeNotifier announces committed changes: it publishes order events and
// refreshes the cached parent status. Both are best effort; failures are
// logged and never undo the committed change. A zero ChangeNotifier does
// nothing.
type ChangeNotifier struct {
	publisher ports.EventPublisher
	cache     ports.StatusCache
	logger    *slog.Logger
}

func NewChangeNotifier(publisher ports.EventPublisher, cache ports.StatusCache, logger *slog.Logger) ChangeNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return ChangeNotifier{
		publisher: publisher,
		cache:     cache,
		logger:    logger.With("component", "change_notifier"),
	}
}

// Notify publishes events and writes parent's status through to the cache.
// parent may be nil when the change did not touch any order status.
func (n ChangeNotifier) Notify(ctx context.Context, parent *order.ParentOrder, events ...ports.OrderEvent) {
	if n.publisher != nil && len(events) > 0 {
		if err := n.publisher.Publish(ctx, events...); err != nil {
			n.logger.WarnContext(ctx, "failed to publish order events",
				"parent_order_id", events[0].ParentOrderID.String(),
				"events", len(events),
				"error", err,
			)
		}
	}

	if n.cache != nil && parent != nil {
		if err := n.cache.SetParentStatus(ctx, parent.ID(), parent.Status().String()); err != nil {
			n.logger.WarnContext(ctx, "failed to cache parent status",
				"parent_order_id", parent.ID().String(),
				"error", err,
			)
		}
	}
}

// subOrderEvents describes a sub-order change and, when it moved the
// parent, the parent change as well.
func subOrderEvents(sub *order.SubOrder, parent *order.ParentOrder, parentChanged bool, now time.Time) []ports.OrderEvent {
	events := []ports.OrderEvent{{
		Type:          ports.EventSubOrderStatusChanged,
		ParentOrderID: sub.ParentOrderID(),
		SubOrderID:    sub.ID(),
		Status:        sub.Status().String(),
		OccurredAt:    now,
	}}

	if parentChanged {
		events = append(events, parentEvent(parent, ports.EventParentStatusChanged, now))
	}

	return events
}

func parentEvent(parent *order.ParentOrder, eventType ports.EventType, now time.Time) ports.OrderEvent {
	return ports.OrderEvent{
		Type:          eventType,
		ParentOrderID: parent.ID(),
		SubOrderID:    kernel.UUID{},
		Status:        parent.Status().String(),
		OccurredAt:    now,
	}
}
