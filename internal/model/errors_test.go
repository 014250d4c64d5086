package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMatchesKind(t *testing.T) {
	err := fmt.Errorf("create review: %w", NotFound("Product not found"))

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	var modelErr *Error
	if !errors.As(err, &modelErr) || modelErr.Msg != "Product not found" {
		t.Fatalf("expected message to survive wrapping, got %v", err)
	}
}
