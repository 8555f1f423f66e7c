package redis_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type StatusCacheIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *goredis.Client
}

func (suite *StatusCacheIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	host, err := container.Host(ctx)
	suite.Require().NoError(err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	suite.Require().NoError(err)

	client, err := redis.NewClient(ctx, fmt.Sprintf("%s:%s", host, port.Port()))
	suite.Require().NoError(err)
	suite.client = client
}

func (suite *StatusCacheIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
}

func (suite *StatusCacheIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		_ = suite.client.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StatusCacheIntegrationTestSuite) TestMissThenHit() {
	ctx := context.Background()
	cache := redis.NewStatusCache(suite.client, time.Minute)
	parentID := kernel.NewUUID()

	_, ok, err := cache.GetParentStatus(ctx, parentID)
	suite.Require().NoError(err)
	suite.False(ok)

	suite.Require().NoError(cache.SetParentStatus(ctx, parentID, "assembling"))

	status, ok, err := cache.GetParentStatus(ctx, parentID)
	suite.Require().NoError(err)
	suite.True(ok)
	suite.Equal("assembling", status)
}

func (suite *StatusCacheIntegrationTestSuite) TestSetOverwritesAndExpires() {
	ctx := context.Background()
	cache := redis.NewStatusCache(suite.client, time.Minute)
	parentID := kernel.NewUUID()

	suite.Require().NoError(cache.SetParentStatus(ctx, parentID, "created"))
	suite.Require().NoError(cache.SetParentStatus(ctx, parentID, "cancelled"))

	status, _, err := cache.GetParentStatus(ctx, parentID)
	suite.Require().NoError(err)
	suite.Equal("cancelled", status)

	ttl, err := suite.client.TTL(ctx, "order_status:"+parentID.String()).Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, time.Duration(0))
	suite.LessOrEqual(ttl, time.Minute)
}

func (suite *StatusCacheIntegrationTestSuite) TestDefaultTTL() {
	ctx := context.Background()
	cache := redis.NewStatusCache(suite.client, 0)
	parentID := kernel.NewUUID()

	suite.Require().NoError(cache.SetParentStatus(ctx, parentID, "created"))

	ttl, err := suite.client.TTL(ctx, "order_status:"+parentID.String()).Result()
	suite.Require().NoError(err)
	suite.Greater(ttl, time.Minute)
	suite.LessOrEqual(ttl, redis.DefaultStatusTTL)
}

func TestStatusCacheIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StatusCacheIntegrationTestSuite))
}
