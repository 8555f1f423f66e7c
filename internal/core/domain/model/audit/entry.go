// Package audit records who did what to which order or warehouse. Every
// mutating operation appends one Entry.
package audit

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

type Action string

const (
	ActionCheckout        Action = "checkout"
	ActionAdvanceSubOrder Action = "advance_sub_order"
	ActionClaimDelivery   Action = "claim_delivery"
	ActionUpdateDelivery  Action = "update_delivery_status"
	ActionCancelDelivery  Action = "cancel_delivery"

	ActionRegisterWarehouse Action = "register_warehouse"
	ActionPutStock          Action = "put_stock"
	ActionAddStaff          Action = "add_warehouse_staff"
)

var (
	ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")
	ErrActionIsRequired      = errs.NewValueIsRequiredError("action")
)

// Entry is one line of the action log.
type Entry struct {
	id            kernel.UUID
	actor         actor.Actor
	action        Action
	subjectID     kernel.UUID
	details       string
	createdAt     time.Time
	isConstructed bool
}

// NewEntry records that a did action to subjectID. details is free text.
func NewEntry(a actor.Actor, action Action, subjectID kernel.UUID, details string, now time.Time) (*Entry, error) {
	if err := errors.Join(a.Validate(), subjectID.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(action)) == "" {
		return nil, ErrActionIsRequired
	}

	return &Entry{
		id:            kernel.NewUUID(),
		actor:         a,
		action:        action,
		subjectID:     subjectID,
		details:       details,
		createdAt:     now.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreEntry rebuilds a persisted entry.
func RestoreEntry(
	id kernel.UUID,
	a actor.Actor,
	action Action,
	subjectID kernel.UUID,
	details string,
	createdAt time.Time,
) (*Entry, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	e, err := NewEntry(a, action, subjectID, details, createdAt)
	if err != nil {
		return nil, err
	}
	e.id = id
	return e, nil
}

func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

func (e *Entry) ID() kernel.UUID        { return e.id }
func (e *Entry) Actor() actor.Actor     { return e.actor }
func (e *Entry) Action() Action         { return e.action }
func (e *Entry) SubjectID() kernel.UUID { return e.subjectID }
func (e *Entry) Details() string        { return e.details }
func (e *Entry) CreatedAt() time.Time   { return e.createdAt }
