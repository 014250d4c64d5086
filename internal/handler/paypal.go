package handler

import (
	"fmt"
	"io"
	"net/http"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/service"

	"github.com/labstack/echo/v4"
)

type PaypalHandler struct {
	paypalService service.PaypalService
}

func NewPaypalHandler(paypalService service.PaypalService) *PaypalHandler {
	return &PaypalHandler{
		paypalService: paypalService,
	}
}

// CreateOrder answers with PayPal's order document (id, status, links).
func (h *PaypalHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreatePaypalOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	order, err := h.paypalService.CreateOrder(ctx, &req)
	if err != nil {
		return err
	}

	return paypalJSON(c, order)
}

func (h *PaypalHandler) CaptureOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CapturePaypalOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	captured, err := h.paypalService.CaptureOrder(ctx, req.OrderID)
	if err != nil {
		return err
	}

	return paypalJSON(c, captured)
}

func (h *PaypalHandler) PayPalWebhook(c echo.Context) error {
	ctx := c.Request().Context()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return model.Invalid("Invalid webhook payload")
	}

	if err := h.paypalService.HandleWebhook(ctx, c.Request().Header, body); err != nil {
		return fmt.Errorf("handle webhook: %w", err)
	}

	return c.NoContent(http.StatusOK)
}

// paypalJSON relays PayPal's response body untouched.
func paypalJSON(c echo.Context, order *model.PaypalOrder) error {
	if len(order.Raw) == 0 {
		return c.JSON(http.StatusOK, order)
	}
	return c.JSONBlob(http.StatusOK, order.Raw)
}
