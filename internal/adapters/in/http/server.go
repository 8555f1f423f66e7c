// Package http exposes the fulfillment use cases over a JSON REST API
// served by echo. The contract is described in openapi.json and served at
// /swagger/.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type (
	CheckoutHandler interface {
		Handle(ctx context.Context, cmd commands.CheckoutCommand) (kernel.UUID, error)
	}
	AdvanceSubOrderHandler interface {
		Handle(ctx context.Context, cmd commands.AdvanceSubOrderCommand) error
	}
	ClaimDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.ClaimDeliveryCommand) (kernel.UUID, error)
	}
	UpdateDeliveryStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateDeliveryStatusCommand) error
	}
	CancelDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.CancelDeliveryCommand) error
	}
	ReconcileParentOrdersHandler interface {
		Handle(ctx context.Context, cmd commands.ReconcileParentOrdersCommand) (int, error)
	}
	RegisterWarehouseHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterWarehouseCommand) (kernel.UUID, error)
	}
	PutStockHandler interface {
		Handle(ctx context.Context, cmd commands.PutStockCommand) error
	}
	AddWarehouseStaffHandler interface {
		Handle(ctx context.Context, cmd commands.AddWarehouseStaffCommand) error
	}

	GetParentOrderHandler interface {
		Handle(ctx context.Context, q queries.GetParentOrderQuery) (queries.GetParentOrderQueryResponse, error)
	}
	GetSubOrdersHandler interface {
		Handle(ctx context.Context, q queries.GetSubOrdersQuery) ([]queries.SubOrderView, error)
	}
	GetParentOrderStatusHandler interface {
		Handle(ctx context.Context, q queries.GetParentOrderStatusQuery) (queries.GetParentOrderStatusQueryResponse, error)
	}
	GetCustomerOrdersHandler interface {
		Handle(ctx context.Context, q queries.GetCustomerOrdersQuery) ([]queries.GetCustomerOrdersQueryResponse, error)
	}
	GetSellerSubOrdersHandler interface {
		Handle(ctx context.Context, q queries.GetSellerSubOrdersQuery) ([]queries.SubOrderView, error)
	}
	GetAvailableSubOrdersHandler interface {
		Handle(ctx context.Context, q queries.GetAvailableSubOrdersQuery) ([]queries.SubOrderView, error)
	}
	GetCourierDeliveriesHandler interface {
		Handle(ctx context.Context, q queries.GetCourierDeliveriesQuery) ([]queries.GetCourierDeliveriesQueryResponse, error)
	}
	GetActionLogsHandler interface {
		Handle(ctx context.Context, q queries.GetActionLogsQuery) ([]queries.GetActionLogsQueryResponse, error)
	}
)

// Handlers groups the use cases the server dispatches to. HealthCheck may
// be nil.
type Handlers struct {
	Checkout              CheckoutHandler
	AdvanceSubOrder       AdvanceSubOrderHandler
	ClaimDelivery         ClaimDeliveryHandler
	UpdateDeliveryStatus  UpdateDeliveryStatusHandler
	CancelDelivery        CancelDeliveryHandler
	ReconcileParentOrders ReconcileParentOrdersHandler
	RegisterWarehouse     RegisterWarehouseHandler
	PutStock              PutStockHandler
	AddWarehouseStaff     AddWarehouseStaffHandler

	GetParentOrder        GetParentOrderHandler
	GetSubOrders          GetSubOrdersHandler
	GetParentOrderStatus  GetParentOrderStatusHandler
	GetCustomerOrders     GetCustomerOrdersHandler
	GetSellerSubOrders    GetSellerSubOrdersHandler
	GetAvailableSubOrders GetAvailableSubOrdersHandler
	GetCourierDeliveries  GetCourierDeliveriesHandler
	GetActionLogs         GetActionLogsHandler

	HealthCheck func(ctx context.Context) error
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http"),
	}
}

// NewEcho builds an echo instance with the server's routes, panic recovery
// and request ids.
func NewEcho(s *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	s.Register(e)
	return e
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/api/v1")

	v1.POST("/orders/checkout", s.Checkout)
	v1.POST("/orders/reconcile", s.ReconcileParentOrders)
	v1.GET("/orders/:id", s.GetParentOrder)
	v1.GET("/orders/:id/sub-orders", s.GetSubOrders)
	v1.GET("/orders/:id/status", s.GetParentOrderStatus)
	v1.GET("/customers/:id/orders", s.GetCustomerOrders)
	v1.GET("/sellers/:id/sub-orders", s.GetSellerSubOrders)

	v1.GET("/sub-orders/available", s.GetAvailableSubOrders)
	v1.POST("/sub-orders/:id/advance", s.AdvanceSubOrder)
	v1.POST("/sub-orders/:id/claim", s.ClaimDelivery)
	v1.POST("/sub-orders/:id/delivery-status", s.UpdateDeliveryStatus)
	v1.POST("/sub-orders/:id/delivery-cancel", s.CancelDelivery)
	v1.GET("/couriers/:id/deliveries", s.GetCourierDeliveries)

	v1.POST("/warehouses", s.RegisterWarehouse)
	v1.PUT("/warehouses/:id/stock", s.PutStock)
	v1.POST("/warehouses/:id/staff", s.AddWarehouseStaff)

	v1.GET("/action-logs/:id", s.GetActionLogs)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	if s.h.HealthCheck != nil {
		if err := s.h.HealthCheck(c.Request().Context()); err != nil {
			s.logger.WarnContext(c.Request().Context(), "health check failed", "error", err)
			return c.String(http.StatusServiceUnavailable, "Unhealthy")
		}
	}
	return c.String(http.StatusOK, "Healthy")
}
