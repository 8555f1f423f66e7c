// Package redis caches derived parent order statuses.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
)

const (
	keyParentStatus = "order_status:%s"

	DefaultStatusTTL = 10 * time.Minute
)

// StatusCache implements ports.StatusCache. Values are the status names
// produced by order.Status.String.
type StatusCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewStatusCache uses DefaultStatusTTL when ttl is not positive.
func NewStatusCache(client goredis.Cmdable, ttl time.Duration) *StatusCache {
	if ttl <= 0 {
		ttl = DefaultStatusTTL
	}
	return &StatusCache{client: client, ttl: ttl}
}

// NewClient connects to addr and checks the connection.
func NewClient(ctx context.Context, addr string) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	return client, nil
}

func (c *StatusCache) GetParentStatus(ctx context.Context, parentOrderID kernel.UUID) (string, bool, error) {
	status, err := c.client.Get(ctx, parentStatusKey(parentOrderID)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return status, true, nil
}

func (c *StatusCache) SetParentStatus(ctx context.Context, parentOrderID kernel.UUID, status string) error {
	return c.client.Set(ctx, parentStatusKey(parentOrderID), status, c.ttl).Err()
}

func parentStatusKey(id kernel.UUID) string {
	return fmt.Sprintf(keyParentStatus, id.String())
}
