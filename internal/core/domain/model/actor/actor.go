// Package actor describes who performs an operation on a sub-order: the
// customer who checked out, the seller owning the warehouse, a warehouse
// worker assembling the parcel, or a courier delivering it.
package actor

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role is the capacity an actor acts in.
type Role int

const (
	UnknownRole Role = iota
	Customer
	Seller
	WarehouseWorker
	Courier
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:     "unknown",
		Customer:        "customer",
		Seller:          "seller",
		WarehouseWorker: "warehouse_worker",
		Courier:         "courier",
	}
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate rejects UnknownRole and out-of-range values.
func (r Role) Validate() error {
	if r <= UnknownRole || r > Courier {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// ParseRole accepts the snake_case names used by the transport layer.
func ParseRole(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for role, name := range getRoleStrings() {
		if role != UnknownRole && name == normalized {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%q is not a known role", s))
}

// Actor is an identified caller acting in one role.
type Actor struct {
	id            kernel.UUID
	role          Role
	isConstructed bool
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, isConstructed: true}, nil
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) String() string {
	return fmt.Sprintf("%s %s", a.role, a.id)
}

func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}
