package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetActionLogsQueryHandler struct {
	db *gorm.DB
}

func NewGetActionLogsQueryHandler(db *gorm.DB) GetActionLogsQueryHandler {
	return GetActionLogsQueryHandler{db: db}
}

func (h GetActionLogsQueryHandler) Handle(
	ctx context.Context,
	query GetActionLogsQuery,
) ([]GetActionLogsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			actor_id,
			actor_role,
			action,
			details,
			created_at
		FROM action_logs
		WHERE subject_id = ?
		ORDER BY created_at, id
		LIMIT ?
	`, query.SubjectID().Bytes(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]GetActionLogsQueryResponse, 0)
	for rows.Next() {
		var (
			id, actorID uuid.UUID
			resp        GetActionLogsQueryResponse
		)

		if err = rows.Scan(
			&id,
			&actorID,
			&resp.ActorRole,
			&resp.Action,
			&resp.Details,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = toKernelUUID(id); err != nil {
			return nil, err
		}
		if resp.ActorID, err = toKernelUUID(actorID); err != nil {
			return nil, err
		}
		resp.CreatedAt = resp.CreatedAt.UTC()

		entries = append(entries, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
