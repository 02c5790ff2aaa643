package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"storefront/internal/apperr"
	"storefront/internal/dto"
	"storefront/internal/handler"
	"storefront/internal/repository"
	"storefront/internal/service"
)

type Server struct {
	echo            *echo.Echo
	orderHandler    *handler.OrderHandler
	checkoutHandler *handler.CheckoutHandler
	adminHandler    *handler.AdminHandler
	productHandler  *handler.ProductHandler
}

func NewServer(
	orderService service.OrderService,
	checkoutService service.CheckoutService,
	adminService service.AdminService,
	productRepo repository.ProductRepository,
	logger *logrus.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			}).Info("Request handled")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.HTTPErrorHandler = errorHandler(logger)

	s := &Server{
		echo:            e,
		orderHandler:    handler.NewOrderHandler(orderService),
		checkoutHandler: handler.NewCheckoutHandler(checkoutService),
		adminHandler:    handler.NewAdminHandler(adminService),
		productHandler:  handler.NewProductHandler(productRepo),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api.GET("/products", s.productHandler.ListProducts)
	api.POST("/order", s.orderHandler.PlaceOrder)
	api.POST("/checkout", s.checkoutHandler.CreateSession)

	// -------- provider webhooks --------
	api.POST("/webhooks/stripe", s.checkoutHandler.StripeWebhook)

	// -------- admin --------
	admin := api.Group("/admin")
	admin.POST("/auth", s.adminHandler.Auth)
	admin.POST("/orders", s.adminHandler.ListOrders)
	admin.POST("/mark-paid", s.adminHandler.MarkPaid)
	admin.POST("/delete-order", s.adminHandler.DeleteOrder)
}

// errorHandler maps the apperr taxonomy to status codes. Infrastructure
// detail never leaks to clients; it is logged and replaced with a generic
// message.
func errorHandler(logger *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := apperr.HTTPStatus(err)
		message := err.Error()

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			if m, isString := httpErr.Message.(string); isString {
				message = m
			}
		} else if status == http.StatusInternalServerError {
			logger.WithError(err).WithField("path", c.Request().URL.Path).
				Error("Request failed")
			message = "internal server error"
		}

		if writeErr := c.JSON(status, &dto.ErrorResponse{Error: message}); writeErr != nil {
			logger.WithError(writeErr).Error("Failed to write error response")
		}
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
