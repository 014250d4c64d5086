package handler

import (
	"net/http"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/service"

	"github.com/labstack/echo/v4"
)

type CouponHandler struct {
	couponService service.CouponService
}

func NewCouponHandler(couponService service.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

func (h *CouponHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var in dto.CouponInput
	if err := bind(c, &in); err != nil {
		return err
	}

	coupon, err := h.couponService.Create(ctx, &in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.CouponResponse{
		Response: dto.OK("Coupon created successfully!"),
		Coupon:   coupon,
	})
}

func (h *CouponHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	coupons, err := h.couponService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CouponListResponse{
		Response:   dto.OK(""),
		CouponList: coupons,
	})
}

func (h *CouponHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id := c.Param("id")
	if err := h.couponService.Delete(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.DeletedResponse{
		Response: dto.OK("Coupon deleted successfully!"),
		ID:       id,
	})
}

func (h *CouponHandler) Validate(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ValidateCouponRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	quote, err := h.couponService.Validate(ctx, req.Code, req.Subtotal)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ValidateCouponResponse{
		Response:    dto.OK("Coupon applied"),
		CouponQuote: quote,
	})
}
