package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const MaxActionLogs = 1000

var ErrGetActionLogsQueryIsNotConstructed = errors.New(
	"GetActionLogsQuery must be created via NewGetActionLogsQuery constructor",
)

// GetActionLogsQuery reads the audit trail of one order, sub-order or
// warehouse, oldest entry first.
type GetActionLogsQuery struct {
	subjectID kernel.UUID
	limit     int

	guard guard.ConstructorGuard
}

func NewGetActionLogsQuery(subjectID kernel.UUID, limit int) (GetActionLogsQuery, error) {
	if err := subjectID.Validate(); err != nil {
		return GetActionLogsQuery{}, err
	}
	if limit < 1 || limit > MaxActionLogs {
		return GetActionLogsQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxActionLogs)
	}
	return GetActionLogsQuery{
		subjectID: subjectID,
		limit:     limit,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetActionLogsQuery) Validate() error {
	return q.guard.Validate(ErrGetActionLogsQueryIsNotConstructed)
}

func (q GetActionLogsQuery) SubjectID() kernel.UUID {
	return q.subjectID
}

func (q GetActionLogsQuery) Limit() int {
	return q.limit
}

type GetActionLogsQueryResponse struct {
	ID        kernel.UUID
	ActorID   kernel.UUID
	ActorRole string
	Action    string
	Details   string
	CreatedAt time.Time
}
