package handler

import (
	"net/http"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/middleware"
	"fashion-cart/internal/service"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddToCartRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	item, err := h.cartService.Add(ctx, middleware.UserID(c), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CartItemResponse{
		Response: dto.OK("Item added to cart"),
		Data:     item,
	})
}

func (h *CartHandler) Fetch(c echo.Context) error {
	ctx := c.Request().Context()

	lines, err := h.cartService.Lines(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CartResponse{
		Response: dto.OK(""),
		Data:     lines,
	})
}

func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	var req dto.UpdateCartItemRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.cartService.UpdateQuantity(ctx, userID, c.Param("id"), req.Quantity); err != nil {
		return err
	}

	return h.respondWithCart(c, userID, "Cart item updated")
}

func (h *CartHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	if err := h.cartService.Remove(ctx, userID, c.Param("id")); err != nil {
		return err
	}

	return h.respondWithCart(c, userID, "Item removed from cart")
}

func (h *CartHandler) Clear(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.cartService.Clear(ctx, middleware.UserID(c)); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK("Cart cleared successfully!"))
}

func (h *CartHandler) Merge(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.MergeCartRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	lines, err := h.cartService.Merge(ctx, middleware.UserID(c), req.Items)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CartResponse{
		Response: dto.OK("Cart merged"),
		Data:     lines,
	})
}

func (h *CartHandler) respondWithCart(c echo.Context, userID, message string) error {
	lines, err := h.cartService.Lines(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.CartResponse{
		Response: dto.OK(message),
		Data:     lines,
	})
}
