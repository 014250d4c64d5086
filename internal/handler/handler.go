package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"fashion-cart/internal/model"

	"github.com/labstack/echo/v4"
)

const imagesField = "images"

func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		return model.Invalid("Invalid request body")
	}
	return nil
}

// formImages returns the uploaded image parts, or nil for a request without
// any.
func formImages(c echo.Context) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, model.Invalid("Invalid multipart form")
	}
	return form.File[imagesField], nil
}

// splitList turns "a,b, c" into [a b c], dropping blanks.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
