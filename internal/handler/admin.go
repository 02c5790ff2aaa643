package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"storefront/internal/dto"
	"storefront/internal/service"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) Auth(c echo.Context) error {
	var req dto.AdminAuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.adminService.Authenticate(req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &dto.AdminAuthResponse{Authenticated: true})
}

func (h *AdminHandler) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AdminListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	orders, err := h.adminService.ListOrders(ctx, req.Password, req.Filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHandler) MarkPaid(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AdminOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.adminService.MarkPaid(ctx, req.Password, req.OrderID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &dto.MessageResponse{Message: "Order marked as paid."})
}

func (h *AdminHandler) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AdminOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.adminService.DeleteOrder(ctx, req.Password, req.OrderID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &dto.MessageResponse{Message: "Order deleted successfully."})
}
