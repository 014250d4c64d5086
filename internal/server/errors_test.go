package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"fashion-cart/internal/model"

	"github.com/labstack/echo/v4"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid input", model.Invalid("All fields are required"), http.StatusBadRequest, "All fields are required"},
		{"wrapped not found", fmt.Errorf("get: %w", model.NotFound("Order not found")), http.StatusNotFound, "Order not found"},
		{"bare sentinel", model.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"stock", model.NewError(model.ErrInsufficientStock, "Insufficient stock for tee"), http.StatusConflict, "Insufficient stock for tee"},
		{"coupon", model.NewError(model.ErrCouponUnavailable, "Invalid coupon code"), http.StatusBadRequest, "Invalid coupon code"},
		{"in use", model.NewError(model.ErrInUse, "Address is used by an order"), http.StatusConflict, "Address is used by an order"},
		{"not configured", fmt.Errorf("upload: %w", model.ErrNotConfigured), http.StatusServiceUnavailable, "integration not configured"},
		{"echo error", echo.NewHTTPError(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests, "slow down"},
		{"unknown", errors.New("db exploded"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := statusFor(tt.err)
			if status != tt.wantStatus || msg != tt.wantMsg {
				t.Fatalf("statusFor = %d %q, want %d %q", status, msg, tt.wantStatus, tt.wantMsg)
			}
		})
	}
}
