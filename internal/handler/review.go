package handler

import (
	"net/http"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/middleware"
	"fashion-cart/internal/service"

	"github.com/labstack/echo/v4"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var in dto.ReviewInput
	if err := bind(c, &in); err != nil {
		return err
	}

	review, err := h.reviewService.Create(ctx, middleware.UserID(c), &in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ReviewResponse{
		Response: dto.OK("Review created successfully"),
		Review:   review,
	})
}

func (h *ReviewHandler) ListByProduct(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, err := h.reviewService.ListByProduct(ctx, c.Param("productId"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ReviewListResponse{
		Response: dto.OK(""),
		Reviews:  reviews,
	})
}

func (h *ReviewHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var in dto.ReviewInput
	if err := bind(c, &in); err != nil {
		return err
	}

	review, err := h.reviewService.Update(ctx, middleware.UserID(c), c.Param("reviewId"), &in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ReviewResponse{
		Response: dto.OK("Review updated successfully"),
		Review:   review,
	})
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.reviewService.Delete(ctx, middleware.UserID(c), c.Param("reviewId")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK("Review deleted successfully"))
}
