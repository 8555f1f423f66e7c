package http

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
)

type MockCheckoutHandler struct{ mock.Mock }

func (m *MockCheckoutHandler) Handle(ctx context.Context, cmd commands.CheckoutCommand) (kernel.UUID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockAdvanceSubOrderHandler struct{ mock.Mock }

func (m *MockAdvanceSubOrderHandler) Handle(ctx context.Context, cmd commands.AdvanceSubOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockClaimDeliveryHandler struct{ mock.Mock }

func (m *MockClaimDeliveryHandler) Handle(ctx context.Context, cmd commands.ClaimDeliveryCommand) (kernel.UUID, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(kernel.UUID), args.Error(1)
}

type MockUpdateDeliveryStatusHandler struct{ mock.Mock }

func (m *MockUpdateDeliveryStatusHandler) Handle(ctx context.Context, cmd commands.UpdateDeliveryStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockReconcileParentOrdersHandler struct{ mock.Mock }

func (m *MockReconcileParentOrdersHandler) Handle(
	ctx context.Context,
	cmd commands.ReconcileParentOrdersCommand,
) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockGetParentOrderHandler struct{ mock.Mock }

func (m *MockGetParentOrderHandler) Handle(
	ctx context.Context,
	q queries.GetParentOrderQuery,
) (queries.GetParentOrderQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetParentOrderQueryResponse), args.Error(1)
}

type MockGetParentOrderStatusHandler struct{ mock.Mock }

func (m *MockGetParentOrderStatusHandler) Handle(
	ctx context.Context,
	q queries.GetParentOrderStatusQuery,
) (queries.GetParentOrderStatusQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetParentOrderStatusQueryResponse), args.Error(1)
}

type MockGetAvailableSubOrdersHandler struct{ mock.Mock }

func (m *MockGetAvailableSubOrdersHandler) Handle(
	ctx context.Context,
	q queries.GetAvailableSubOrdersQuery,
) ([]queries.SubOrderView, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.SubOrderView), args.Error(1)
}

type MockGetCourierDeliveriesHandler struct{ mock.Mock }

func (m *MockGetCourierDeliveriesHandler) Handle(
	ctx context.Context,
	q queries.GetCourierDeliveriesQuery,
) ([]queries.GetCourierDeliveriesQueryResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetCourierDeliveriesQueryResponse), args.Error(1)
}

type MockGetActionLogsHandler struct{ mock.Mock }

func (m *MockGetActionLogsHandler) Handle(
	ctx context.Context,
	q queries.GetActionLogsQuery,
) ([]queries.GetActionLogsQueryResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetActionLogsQueryResponse), args.Error(1)
}
