package delivery

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an Assignment.
//
//	Assigned ──> InTransit ──> Delivered
//	   │  └─────────┬──────────────▲
//	   └────────────┴──> Cancelled
type Status int

const (
	Unknown Status = iota
	Assigned
	InTransit
	Delivered
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Assigned:  "assigned",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no transitions
	return map[Status][]Status{
		Assigned:  {InTransit, Delivered, Cancelled},
		InTransit: {Delivered, Cancelled},
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"delivery status is invalid",
		fmt.Errorf("%q is not a valid delivery status", s),
	)
}

func (s Status) Validate() error {
	if s < Assigned || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery status is invalid",
			fmt.Errorf("%d is not a valid delivery status", s),
		)
	}
	return nil
}

// IsActive reports whether the assignment still holds its sub-order.
func (s Status) IsActive() bool {
	return s == Assigned || s == InTransit
}

// TransitionTo checks the move from s to target. Rejected moves wrap
// order.ErrInvalidTransition.
func (s Status) TransitionTo(target Status) (Status, error) {
	for _, next := range getTransitions()[s] {
		if next == target {
			return target, nil
		}
	}
	return s, fmt.Errorf("%w: delivery %s -> %s", order.ErrInvalidTransition, s, target)
}
