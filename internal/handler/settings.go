package handler

import (
	"net/http"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/service"

	"github.com/labstack/echo/v4"
)

type SettingsHandler struct {
	settingsService service.SettingsService
}

func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

func (h *SettingsHandler) AddBanners(c echo.Context) error {
	ctx := c.Request().Context()

	images, err := formImages(c)
	if err != nil {
		return err
	}

	banners, err := h.settingsService.AddBanners(ctx, images)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.BannerListResponse{
		Response: dto.OK(""),
		Banners:  banners,
	})
}

func (h *SettingsHandler) Banners(c echo.Context) error {
	ctx := c.Request().Context()

	banners, err := h.settingsService.Banners(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.BannerListResponse{
		Response: dto.OK(""),
		Banners:  banners,
	})
}

func (h *SettingsHandler) DeleteBanner(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.settingsService.DeleteBanner(ctx, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK("Banner deleted successfully"))
}

func (h *SettingsHandler) UpdateFeaturedProducts(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.FeatureProductsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.ProductIDs == nil {
		return model.Invalid("Invalid product Id's or too many requests")
	}

	if err := h.settingsService.SetFeaturedProducts(ctx, req.ProductIDs); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK("Featured products updated successfully !"))
}

func (h *SettingsHandler) FeaturedProducts(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.settingsService.FeaturedProducts(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.FeaturedProductsResponse{
		Response:         dto.OK(""),
		FeaturedProducts: products,
	})
}
