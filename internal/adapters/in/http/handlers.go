package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

const (
	defaultAvailableLimit  = 50
	defaultActionLogsLimit = 100
)

// Checkout handles POST /orders/checkout.
func (s *Server) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	customerID, err := fromUUID(req.CustomerID)
	if err != nil {
		return s.respondError(c, err)
	}

	lines := make([]order.CartLine, 0, len(req.Items))
	for _, item := range req.Items {
		line, err := toCartLine(item)
		if err != nil {
			return s.respondError(c, err)
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewCheckoutCommand(customerID, lines, req.DeliveryAddress)
	if err != nil {
		return s.respondError(c, err)
	}

	parentID, err := s.h.Checkout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedOrder{ParentOrderID: toUUID(parentID)})
}

func toCartLine(item CartItem) (order.CartLine, error) {
	productID, err := fromUUID(item.ProductID)
	if err != nil {
		return order.CartLine{}, err
	}
	sellerID, err := fromUUID(item.SellerID)
	if err != nil {
		return order.CartLine{}, err
	}
	price, err := kernel.MoneyFromString(item.UnitPrice)
	if err != nil {
		return order.CartLine{}, err
	}
	return order.NewCartLine(productID, sellerID, item.Quantity, price)
}

// ReconcileParentOrders handles POST /orders/reconcile.
func (s *Server) ReconcileParentOrders(c echo.Context) error {
	var req ReconcileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewReconcileParentOrdersCommand(req.BatchSize)
	if err != nil {
		return s.respondError(c, err)
	}

	changed, err := s.h.ReconcileParentOrders.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, ReconcileResult{Changed: changed})
}

func (s *Server) GetParentOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	q, err := queries.NewGetParentOrderQuery(id)
	if err != nil {
		return s.respondError(c, err)
	}
	resp, err := s.h.GetParentOrder.Handle(c.Request().Context(), q)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toParentOrder(resp))
}

func (s *Server) GetSubOrders(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	q, err := queries.NewGetSubOrdersQuery(id)
	if err != nil {
		return s.respondError(c, err)
	}
	views, err := s.h.GetSubOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toSubOrders(views))
}

// GetParentOrderStatus serves the cached aggregate status when available.
func (s *Server) GetParentOrderStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	q, err := queries.NewGetParentOrderStatusQuery(id)
	if err != nil {
		return s.respondError(c, err)
	}
	resp, err := s.h.GetParentOrderStatus.Handle(c.Request().Context(), q)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, OrderStatus{
		ParentOrderID: toUUID(resp.ParentOrderID),
		Status:        resp.Status,
		Cached:        resp.Cached,
	})
}

func (s *Server) GetCustomerOrders(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	q, err := queries.NewGetCustomerOrdersQuery(id)
	if err != nil {
		return s.respondError(c, err)
	}
	rows, err := s.h.GetCustomerOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return s.respondError(c, err)
	}

	summaries := make([]OrderSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, OrderSummary{
			ID:              toUUID(r.ID),
			TotalPrice:      r.TotalPrice.String(),
			DeliveryAddress: r.DeliveryAddress,
			Status:          r.Status,
			SubOrderCount:   r.SubOrderCount,
			CreatedAt:       r.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, summaries)
}

func (s *Server) GetSellerSubOrders(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	q, err := queries.NewGetSellerSubOrdersQuery(id, c.QueryParam("status"))
	if err != nil {
		return s.respondError(c, err)
	}
	views, err := s.h.GetSellerSubOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toSubOrders(views))
}

// GetAvailableSubOrders lists assembled sub-orders no courier holds.
func (s *Server) GetAvailableSubOrders(c echo.Context) error {
	limit, err := queryInt(c, "limit", defaultAvailableLimit)
	if err != nil {
		return s.respondError(c, err)
	}
	q, err := queries.NewGetAvailableSubOrdersQuery(limit)
	if err != nil {
		return s.respondError(c, err)
	}
	views, err := s.h.GetAvailableSubOrders.Handle(c.Request().Context(), q)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toSubOrders(views))
}

// AdvanceSubOrder handles POST /sub-orders/{id}/advance.
func (s *Server) AdvanceSubOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	var req AdvanceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	actorID, err := fromUUID(req.ActorID)
	if err != nil {
		return s.respondError(c, err)
	}
	role, err := actor.ParseRole(req.ActorRole)
	if err != nil {
		return s.respondError(c, err)
	}
	requestedBy, err := actor.NewActor(actorID, role)
	if err != nil {
		return s.respondError(c, err)
	}
	target, err := order.ParseStatus(req.TargetStatus)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewAdvanceSubOrderCommand(id, requestedBy, target)
	if err != nil {
		return s.respondError(c, err)
	}
	if err := s.h.AdvanceSubOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ClaimDelivery(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	var req ClaimRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	courierID, err := fromUUID(req.CourierID)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewClaimDeliveryCommand(id, courierID, req.EstimatedDelivery)
	if err != nil {
		return s.respondError(c, err)
	}
	assignmentID, err := s.h.ClaimDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, Claimed{AssignmentID: toUUID(assignmentID)})
}

func (s *Server) UpdateDeliveryStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	var req DeliveryStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	courierID, err := fromUUID(req.CourierID)
	if err != nil {
		return s.respondError(c, err)
	}
	status, err := delivery.ParseStatus(req.Status)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(id, courierID, status)
	if err != nil {
		return s.respondError(c, err)
	}
	if err := s.h.UpdateDeliveryStatus.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) CancelDelivery(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	var req CancelDeliveryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	courierID, err := fromUUID(req.CourierID)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewCancelDeliveryCommand(id, courierID, req.Reason)
	if err != nil {
		return s.respondError(c, err)
	}
	if err := s.h.CancelDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) GetCourierDeliveries(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	includeFinished, err := queryBool(c, "include_finished")
	if err != nil {
		return s.respondError(c, err)
	}
	q, err := queries.NewGetCourierDeliveriesQuery(id, includeFinished)
	if err != nil {
		return s.respondError(c, err)
	}
	rows, err := s.h.GetCourierDeliveries.Handle(c.Request().Context(), q)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, toDeliveries(rows))
}

// RegisterWarehouse handles POST /warehouses.
func (s *Server) RegisterWarehouse(c echo.Context) error {
	var req RegisterWarehouseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	sellerID, err := fromUUID(req.SellerID)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewRegisterWarehouseCommand(sellerID, req.Address, req.Priority)
	if err != nil {
		return s.respondError(c, err)
	}
	warehouseID, err := s.h.RegisterWarehouse.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedWarehouse{WarehouseID: toUUID(warehouseID)})
}

// PutStock handles PUT /warehouses/{id}/stock. The quantity overwrites the
// current level.
func (s *Server) PutStock(c echo.Context) error {
	warehouseID, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	var req PutStockRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	sellerID, err := fromUUID(req.SellerID)
	if err != nil {
		return s.respondError(c, err)
	}
	productID, err := fromUUID(req.ProductID)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewPutStockCommand(sellerID, warehouseID, productID, req.Quantity)
	if err != nil {
		return s.respondError(c, err)
	}
	if err := s.h.PutStock.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) AddWarehouseStaff(c echo.Context) error {
	warehouseID, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	var req AddStaffRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	sellerID, err := fromUUID(req.SellerID)
	if err != nil {
		return s.respondError(c, err)
	}
	workerID, err := fromUUID(req.WorkerID)
	if err != nil {
		return s.respondError(c, err)
	}

	cmd, err := commands.NewAddWarehouseStaffCommand(sellerID, warehouseID, workerID)
	if err != nil {
		return s.respondError(c, err)
	}
	if err := s.h.AddWarehouseStaff.Handle(c.Request().Context(), cmd); err != nil {
		return s.respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) GetActionLogs(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}
	limit, err := queryInt(c, "limit", defaultActionLogsLimit)
	if err != nil {
		return s.respondError(c, err)
	}
	q, err := queries.NewGetActionLogsQuery(id, limit)
	if err != nil {
		return s.respondError(c, err)
	}
	rows, err := s.h.GetActionLogs.Handle(c.Request().Context(), q)
	if err != nil {
		return s.respondError(c, err)
	}

	logs := make([]ActionLog, 0, len(rows))
	for _, r := range rows {
		logs = append(logs, ActionLog{
			ID:        toUUID(r.ID),
			ActorID:   toUUID(r.ActorID),
			ActorRole: r.ActorRole,
			Action:    r.Action,
			Details:   r.Details,
			CreatedAt: r.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, logs)
}
