package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/audit"
)

type ActionLogRepository interface {
	Add(ctx context.Context, entry *audit.Entry) error
}
