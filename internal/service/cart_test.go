package service

import (
	"context"
	"errors"
	"testing"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"
	"fashion-cart/internal/testutil"

	"github.com/rs/zerolog"
)

func TestCartAddMergesSameVariant(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db), zerolog.Nop())
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@example.com", model.RoleUser)
	product := testutil.CreateProduct(t, db, "tee", "299.00", 10)

	if _, err := svc.Add(ctx, user.ID, &dto.AddToCartRequest{ProductID: product.ID, Quantity: 1, Size: "M", Color: "red"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	item, err := svc.Add(ctx, user.ID, &dto.AddToCartRequest{ProductID: product.ID, Quantity: 2, Size: "M", Color: "red"})
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if item.Quantity != 3 {
		t.Fatalf("merged quantity = %d", item.Quantity)
	}
	if _, err := svc.Add(ctx, user.ID, &dto.AddToCartRequest{ProductID: product.ID, Quantity: 1, Size: "S", Color: "red"}); err != nil {
		t.Fatalf("add other size: %v", err)
	}

	lines, err := svc.Lines(ctx, user.ID)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if lines[0].Name != "tee" || lines[0].Image == "" {
		t.Fatalf("line not joined with product: %+v", lines[0])
	}
}

func TestCartValidationAndOwnership(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db), zerolog.Nop())
	ctx := context.Background()
	owner := testutil.CreateUser(t, db, "a@example.com", model.RoleUser)
	other := testutil.CreateUser(t, db, "b@example.com", model.RoleUser)
	product := testutil.CreateProduct(t, db, "tee", "299.00", 10)

	if _, err := svc.Add(ctx, owner.ID, &dto.AddToCartRequest{ProductID: product.ID}); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("zero quantity: %v", err)
	}
	if _, err := svc.Add(ctx, owner.ID, &dto.AddToCartRequest{ProductID: "missing", Quantity: 1}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("missing product: %v", err)
	}

	item, err := svc.Add(ctx, owner.ID, &dto.AddToCartRequest{ProductID: product.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.UpdateQuantity(ctx, other.ID, item.ID, 4); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("other user update: %v", err)
	}
	if err := svc.UpdateQuantity(ctx, owner.ID, item.ID, 0); !errors.Is(err, model.ErrInvalidInput) {
		t.Fatalf("zero update: %v", err)
	}
	if err := svc.UpdateQuantity(ctx, owner.ID, item.ID, 4); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := svc.Remove(ctx, other.ID, item.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("other user remove: %v", err)
	}
	if err := svc.Remove(ctx, owner.ID, item.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	lines, _ := svc.Lines(ctx, owner.ID)
	if len(lines) != 0 {
		t.Fatalf("lines after remove = %d", len(lines))
	}
}

func TestCartMergeSkipsUnknownProducts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db), zerolog.Nop())
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@example.com", model.RoleUser)
	product := testutil.CreateProduct(t, db, "tee", "299.00", 10)

	if _, err := svc.Add(ctx, user.ID, &dto.AddToCartRequest{ProductID: product.ID, Quantity: 1, Size: "M"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	lines, err := svc.Merge(ctx, user.ID, []dto.AddToCartRequest{
		{ProductID: product.ID, Quantity: 2, Size: "M"},
		{ProductID: "gone", Quantity: 1},
		{ProductID: product.ID, Quantity: 0},
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(lines) != 1 || lines[0].Quantity != 3 {
		t.Fatalf("merged lines = %+v", lines)
	}

	if err := svc.Clear(ctx, user.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := svc.Clear(ctx, user.ID); err != nil {
		t.Fatalf("clear empty cart: %v", err)
	}
}
