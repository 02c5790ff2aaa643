package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/dto"
	"storefront/internal/service"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrder handles the manual order path: the client supplies guest
// details and item snapshots, the service computes the rest.
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.CreateOrder(ctx, req.GuestName, req.ContactInfo, req.Items, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CreateOrderResponse{
		Message: "Order placed successfully!",
		OrderID: order.ID,
	})
}
