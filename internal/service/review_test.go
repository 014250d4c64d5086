package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"
	"fashion-cart/internal/testutil"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB, cache *memCache) ReviewService {
	return NewReviewService(
		db,
		repository.NewReviewRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
		cache,
		zerolog.Nop(),
	)
}

func productRating(t *testing.T, db *gorm.DB, productID string) float64 {
	t.Helper()
	var p model.Product
	if err := db.First(&p, "id = ?", productID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	return p.Rating
}

func TestReviewLifecycleRecomputesRating(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newReviewService(db, newMemCache())
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice@example.com", model.RoleUser)
	bob := testutil.CreateUser(t, db, "bob@example.com", model.RoleUser)
	product := testutil.CreateProduct(t, db, "tee", "299.00", 5)

	first, err := svc.Create(ctx, alice.ID, &dto.ReviewInput{ProductID: product.ID, Rating: 5, Comment: "great"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.User == nil || first.User.Name != alice.Name || first.User.Email != "" {
		t.Fatalf("reviewer summary = %+v", first.User)
	}
	if _, err := svc.Create(ctx, bob.ID, &dto.ReviewInput{ProductID: product.ID, Rating: 2, Comment: "meh"}); err != nil {
		t.Fatalf("create second: %v", err)
	}
	if got := productRating(t, db, product.ID); got != 3.5 {
		t.Fatalf("rating = %v, want 3.5", got)
	}

	_, err = svc.Create(ctx, alice.ID, &dto.ReviewInput{ProductID: product.ID, Rating: 4, Comment: "again"})
	if !errors.Is(err, model.ErrInvalidInput) || err.Error() != "You have already reviewed this product" {
		t.Fatalf("duplicate review: %v", err)
	}

	updated, err := svc.Update(ctx, alice.ID, first.ID, &dto.ReviewInput{Rating: 3})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Rating != 3 || updated.Comment != "great" {
		t.Fatalf("update should keep the comment: %+v", updated)
	}
	if got := productRating(t, db, product.ID); got != 2.5 {
		t.Fatalf("rating after update = %v", got)
	}

	if _, err := svc.Update(ctx, bob.ID, first.ID, &dto.ReviewInput{Rating: 1}); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("foreign update: %v", err)
	}

	reviews, err := svc.ListByProduct(ctx, product.ID)
	if err != nil || len(reviews) != 2 {
		t.Fatalf("list = %d, %v", len(reviews), err)
	}

	if err := svc.Delete(ctx, alice.ID, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ := svc.ListByProduct(ctx, product.ID)
	if err := svc.Delete(ctx, bob.ID, list[0].ID); err != nil {
		t.Fatalf("delete last: %v", err)
	}
	if got := productRating(t, db, product.ID); got != 0 {
		t.Fatalf("rating with no reviews = %v", got)
	}
}

func TestReviewValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newReviewService(db, newMemCache())
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "a@example.com", model.RoleUser)
	product := testutil.CreateProduct(t, db, "tee", "299.00", 5)

	tests := []struct {
		name string
		in   dto.ReviewInput
		want error
	}{
		{"missing comment", dto.ReviewInput{ProductID: product.ID, Rating: 4}, model.ErrInvalidInput},
		{"rating too high", dto.ReviewInput{ProductID: product.ID, Rating: 6, Comment: "x"}, model.ErrInvalidInput},
		{"unknown product", dto.ReviewInput{ProductID: "nope", Rating: 4, Comment: "x"}, model.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, user.ID, &tt.in); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReviewWritesRefreshFeaturedProducts(t *testing.T) {
	db := testutil.NewDB(t)
	cache := newMemCache()
	svc := newReviewService(db, cache)
	settings := NewSettingsService(repository.NewBannerRepository(db), repository.NewProductRepository(db), &stubImageStore{}, cache, zerolog.Nop())
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice@example.com", model.RoleUser)
	product := testutil.CreateProduct(t, db, "tee", "299.00", 5)

	if err := settings.SetFeaturedProducts(ctx, []string{product.ID}); err != nil {
		t.Fatalf("set featured: %v", err)
	}
	featuredRating := func() float64 {
		t.Helper()
		featured, err := settings.FeaturedProducts(ctx)
		if err != nil || len(featured) != 1 {
			t.Fatalf("featured = %+v, %v", featured, err)
		}
		return featured[0].Rating
	}
	featuredRating()

	review, err := svc.Create(ctx, alice.ID, &dto.ReviewInput{ProductID: product.ID, Rating: 4, Comment: "nice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rating := featuredRating(); rating != 4 {
		t.Fatalf("after create = %v", rating)
	}

	if _, err := svc.Update(ctx, alice.ID, review.ID, &dto.ReviewInput{Rating: 2}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rating := featuredRating(); rating != 2 {
		t.Fatalf("after update = %v", rating)
	}

	if err := svc.Delete(ctx, alice.ID, review.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rating := featuredRating(); rating != 0 {
		t.Fatalf("after delete = %v", rating)
	}
}

type failingSummaries struct {
	repository.UserRepository
}

func (failingSummaries) Summaries(context.Context, []string) (map[string]model.UserSummary, error) {
	return nil, errors.New("connection reset")
}

func TestListByProductLogsReviewerLookupFailure(t *testing.T) {
	db := testutil.NewDB(t)
	var logs bytes.Buffer
	svc := NewReviewService(
		db,
		repository.NewReviewRepository(db),
		repository.NewProductRepository(db),
		failingSummaries{repository.NewUserRepository(db)},
		newMemCache(),
		zerolog.New(&logs),
	)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice@example.com", model.RoleUser)
	product := testutil.CreateProduct(t, db, "tee", "299.00", 5)

	if _, err := svc.Create(ctx, alice.ID, &dto.ReviewInput{ProductID: product.ID, Rating: 5, Comment: "great"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	reviews, err := svc.ListByProduct(ctx, product.ID)
	if err != nil || len(reviews) != 1 {
		t.Fatalf("list = %+v, %v", reviews, err)
	}
	if reviews[0].User != nil {
		t.Fatalf("unexpected reviewer %+v", reviews[0].User)
	}
	if !bytes.Contains(logs.Bytes(), []byte("could not load reviewers")) || !bytes.Contains(logs.Bytes(), []byte("connection reset")) {
		t.Fatalf("lookup failure not logged: %s", logs.String())
	}
}
