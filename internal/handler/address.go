package handler

import (
	"net/http"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/middleware"
	"fashion-cart/internal/service"

	"github.com/labstack/echo/v4"
)

type AddressHandler struct {
	addressService service.AddressService
}

func NewAddressHandler(addressService service.AddressService) *AddressHandler {
	return &AddressHandler{
		addressService: addressService,
	}
}

func (h *AddressHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var in dto.AddressInput
	if err := bind(c, &in); err != nil {
		return err
	}

	address, err := h.addressService.Create(ctx, middleware.UserID(c), &in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.AddressResponse{
		Response: dto.OK("Address created successfully"),
		Address:  address,
	})
}

func (h *AddressHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	addresses, err := h.addressService.List(ctx, middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.AddressListResponse{
		Response: dto.OK(""),
		Address:  addresses,
	})
}

func (h *AddressHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var in dto.AddressInput
	if err := bind(c, &in); err != nil {
		return err
	}

	address, err := h.addressService.Update(ctx, middleware.UserID(c), c.Param("id"), &in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.AddressResponse{
		Response: dto.OK("Address updated successfully"),
		Address:  address,
	})
}

func (h *AddressHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.addressService.Delete(ctx, middleware.UserID(c), c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.OK("Address deleted successfully"))
}
