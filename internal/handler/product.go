package handler

import (
	"net/http"
	"strconv"
	"strings"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	productService service.ProductService
}

func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// CreateWithImages accepts the admin multipart form: scalar fields, comma
// separated sizes and colors, and up to five "images" parts.
func (h *ProductHandler) CreateWithImages(c echo.Context) error {
	ctx := c.Request().Context()

	in, err := productForm(c)
	if err != nil {
		return err
	}
	images, err := formImages(c)
	if err != nil {
		return err
	}

	product, err := h.productService.Create(ctx, in, images)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ProductResponse{
		Response: dto.OK("Product created successfully"),
		Product:  product,
	})
}

func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var in dto.ProductInput
	if err := bind(c, &in); err != nil {
		return err
	}

	product, err := h.productService.Create(ctx, &in, nil)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.ProductResponse{
		Response: dto.OK("Product created successfully"),
		Product:  product,
	})
}

func (h *ProductHandler) ListForAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	products, err := h.productService.ListAll(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ProductListResponse{
		Response: dto.OK(""),
		Products: products,
	})
}

func (h *ProductHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	filter, err := productFilter(c)
	if err != nil {
		return err
	}

	page, err := h.productService.Search(ctx, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ProductPageResponse{
		Response:    dto.OK(""),
		ProductPage: page,
	})
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	product, err := h.productService.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ProductResponse{
		Response: dto.OK(""),
		Product:  product,
	})
}

func (h *ProductHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	var in dto.ProductUpdate
	if err := bind(c, &in); err != nil {
		return err
	}

	product, err := h.productService.Update(ctx, c.Param("id"), &in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.ProductResponse{
		Response: dto.OK("Product updated successfully"),
		Product:  product,
	})
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id := c.Param("id")
	if err := h.productService.Delete(ctx, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.DeletedResponse{
		Response: dto.OK("Product deleted successfully"),
		ID:       id,
	})
}

func productForm(c echo.Context) (*dto.ProductInput, error) {
	in := &dto.ProductInput{
		Name:        c.FormValue("name"),
		Brand:       c.FormValue("brand"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Gender:      c.FormValue("gender"),
		Sizes:       splitList(c.FormValue("sizes")),
		Colors:      splitList(c.FormValue("colors")),
	}

	if raw := strings.TrimSpace(c.FormValue("price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, model.Invalid("Price must be a number")
		}
		in.Price = price
	}
	if raw := strings.TrimSpace(c.FormValue("stock")); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return nil, model.Invalid("Stock must be a whole number")
		}
		in.Stock = stock
	}
	return in, nil
}

func productFilter(c echo.Context) (model.ProductFilter, error) {
	filter := model.ProductFilter{
		Categories: splitList(c.QueryParam("categories")),
		Brands:     splitList(c.QueryParam("brands")),
		Sizes:      splitList(c.QueryParam("sizes")),
		Colors:     splitList(c.QueryParam("colors")),
		SortBy:     c.QueryParam("sortBy"),
		SortOrder:  c.QueryParam("sortOrder"),
	}

	var err error
	if filter.MinPrice, err = queryDecimal(c, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = queryDecimal(c, "maxPrice"); err != nil {
		return filter, err
	}
	if filter.Page, err = queryInt(c, "page"); err != nil {
		return filter, err
	}
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return filter, err
	}
	return filter, nil
}

func queryDecimal(c echo.Context, name string) (*decimal.Decimal, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, model.Invalid("Invalid " + name)
	}
	return &d, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, model.Invalid("Invalid " + name)
	}
	return n, nil
}
