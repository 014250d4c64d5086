package repository

import (
	"context"
	"errors"
	"testing"

	"fashion-cart/internal/model"
	"fashion-cart/internal/testutil"
)

func TestReviewAverageAndUniqueness(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewReviewRepository(db)
	ctx := context.Background()
	a := testutil.CreateUser(t, db, "a@example.com", model.RoleUser)
	b := testutil.CreateUser(t, db, "b@example.com", model.RoleUser)
	product := testutil.CreateProduct(t, db, "tee", "199.00", 10)

	avg, err := repo.AverageRating(ctx, db, product.ID)
	if err != nil || avg != 0 {
		t.Fatalf("expected 0 average without reviews, got %v / %v", avg, err)
	}

	for _, r := range []*model.Review{
		{ID: "r1", UserID: a.ID, ProductID: product.ID, Rating: 5, Comment: "great"},
		{ID: "r2", UserID: b.ID, ProductID: product.ID, Rating: 2, Comment: "meh"},
	} {
		if err := repo.Create(ctx, db, r); err != nil {
			t.Fatalf("create review: %v", err)
		}
	}

	avg, err = repo.AverageRating(ctx, db, product.ID)
	if err != nil || avg != 3.5 {
		t.Fatalf("expected 3.5, got %v / %v", avg, err)
	}

	err = repo.Create(ctx, db, &model.Review{ID: "r3", UserID: a.ID, ProductID: product.ID, Rating: 1, Comment: "again"})
	if !errors.Is(err, model.ErrAlreadyExists) {
		t.Fatalf("expected duplicate review rejection, got %v", err)
	}
}
