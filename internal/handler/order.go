package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/invoice"
	"fashion-cart/internal/middleware"
	"fashion-cart/internal/model"
	"fashion-cart/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateFinal records an order paid online; the body is the created order.
func (h *OrderHandler) CreateFinal(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.Checkout(ctx, middleware.UserID(c), &req)
	if err != nil {
		return err
	}

	if order.PaymentMethod == model.PaymentCashOnDelivery {
		return c.JSON(http.StatusCreated, dto.CODOrderResponse{
			Response: dto.OK("COD order created successfully"),
			Order:    order,
		})
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) CreateCOD(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.CreateCOD(ctx, middleware.UserID(c), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.CODOrderResponse{
		Response: dto.OK("COD order created successfully"),
		Order:    order,
	})
}

func (h *OrderHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	order, err := h.orderService.Get(ctx, middleware.UserID(c), c.Param("orderId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) ListForUser(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListForUser(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListAll(c echo.Context) error {
	ctx := c.Request().Context()

	orders, err := h.orderService.ListAll(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdateOrderStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if _, err := h.orderService.UpdateStatus(ctx, c.Param("orderId"), req.Status); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK("Order status updated successfully"))
}

func (h *OrderHandler) UpdatePaymentStatus(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.UpdatePaymentStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.UpdatePaymentStatus(ctx, c.Param("orderId"), req.PaymentStatus)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OrderResponse{
		Response: dto.OK("Payment status updated successfully"),
		Order:    order,
	})
}

// Invoice renders into memory first so a failure still produces a JSON error.
func (h *OrderHandler) Invoice(c echo.Context) error {
	ctx := c.Request().Context()
	orderID := c.Param("orderId")

	var buf bytes.Buffer
	err := h.orderService.Invoice(ctx, middleware.UserID(c), middleware.IsSuperAdmin(c), orderID, &buf)
	if err != nil {
		return err
	}

	filename := invoice.Filename(&model.Order{ID: orderID})
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
