package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel behind InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError is returned when the state machine does not allow
// moving from From to To. The rejected request never mutates state.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// Status is the lifecycle state of a SubOrder, and the derived state of a
// ParentOrder.
//
// Sub-order transitions:
//
//	Created ──> Assembling ──> Assembled ──> Dispatched ──> Delivered
//	   │            │             │  ▲            │
//	   │            │             │  └────────────┤ (courier gives up)
//	   └────────────┴─────────────┴───────────────┴──> Cancelled
//
// PartiallyCancelled only ever appears on a ParentOrder.
type Status int

const (
	Unknown Status = iota
	Created
	Assembling
	Assembled
	Dispatched
	Delivered
	Cancelled
	PartiallyCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "unknown",
		Created:            "created",
		Assembling:         "assembling",
		Assembled:          "assembled",
		Dispatched:         "dispatched",
		Delivered:          "delivered",
		Cancelled:          "cancelled",
		PartiallyCancelled: "partially_cancelled",
	}
}

// getSubOrderTransitions lists the allowed next statuses of a sub-order.
func getSubOrderTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal and parent-only statuses have no transitions
	return map[Status][]Status{
		Created:    {Assembling, Cancelled},
		Assembling: {Assembled, Cancelled},
		Assembled:  {Dispatched, Cancelled},
		Dispatched: {Delivered, Assembled, Cancelled},
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStatus accepts the snake_case names produced by String.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate accepts every status a ParentOrder may hold.
func (s Status) Validate() error {
	if s < Created || s > PartiallyCancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ValidateSubOrder accepts every status a SubOrder may hold.
func (s Status) ValidateSubOrder() error {
	if s < Created || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid sub-order status", s),
		)
	}
	return nil
}

// IsTerminal reports whether no further sub-order transition exists.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// rank is the position of s in the fulfillment pipeline. Cancelled statuses
// have no position.
func (s Status) rank() int {
	if s >= Created && s <= Delivered {
		return int(s)
	}
	return 0
}

// TransitionTo checks the move from s to target without performing it.
func (s Status) TransitionTo(target Status) (Status, error) {
	for _, next := range getSubOrderTransitions()[s] {
		if next == target {
			return target, nil
		}
	}
	return s, NewInvalidTransitionError(s, target)
}

// StartAssembly transitions Created -> Assembling.
func (s Status) StartAssembly() (Status, error) {
	return s.transition(Created, Assembling)
}

// CompleteAssembly transitions Assembling -> Assembled.
func (s Status) CompleteAssembly() (Status, error) {
	return s.transition(Assembling, Assembled)
}

// Dispatch transitions Assembled -> Dispatched.
func (s Status) Dispatch() (Status, error) {
	return s.transition(Assembled, Dispatched)
}

// Deliver transitions Dispatched -> Delivered.
func (s Status) Deliver() (Status, error) {
	return s.transition(Dispatched, Delivered)
}

// RevertDispatch transitions Dispatched -> Assembled.
func (s Status) RevertDispatch() (Status, error) {
	return s.transition(Dispatched, Assembled)
}

// Cancel transitions any non-terminal status to Cancelled.
func (s Status) Cancel() (Status, error) {
	return s.TransitionTo(Cancelled)
}

func (s Status) transition(from, to Status) (Status, error) {
	if s != from {
		return s, NewInvalidTransitionError(s, to)
	}
	return to, nil
}
