package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fashion-cart/internal/client"
	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ReviewService interface {
	Create(ctx context.Context, userID string, in *dto.ReviewInput) (*model.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*model.Review, error)
	// Update keeps the stored rating or comment when the input leaves it zero.
	Update(ctx context.Context, userID, reviewID string, in *dto.ReviewInput) (*model.Review, error)
	Delete(ctx context.Context, userID, reviewID string) error
}

type reviewServiceImpl struct {
	db          *gorm.DB
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	cache       client.Cache
	log         zerolog.Logger
}

func NewReviewService(
	db *gorm.DB,
	reviewRepo repository.ReviewRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	cache client.Cache,
	log zerolog.Logger,
) ReviewService {
	return &reviewServiceImpl{
		db:          db,
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		cache:       cache,
		log:         log,
	}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (s *reviewServiceImpl) Create(ctx context.Context, userID string, in *dto.ReviewInput) (*model.Review, error) {
	comment := strings.TrimSpace(in.Comment)
	if in.ProductID == "" || in.Rating == 0 || comment == "" {
		return nil, model.Invalid("Product ID, rating, and comment are required")
	}
	if !validRating(in.Rating) {
		return nil, model.Invalid("Rating must be between 1 and 5")
	}

	if _, err := s.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NotFound("Product not found")
		}
		return nil, err
	}

	exists, err := s.reviewRepo.Exists(ctx, userID, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("check existing review: %w", err)
	}
	alreadyReviewed := model.Invalid("You have already reviewed this product")
	if exists {
		return nil, alreadyReviewed
	}

	review := &model.Review{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   comment,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Create(ctx, tx, review); err != nil {
			if errors.Is(err, model.ErrAlreadyExists) {
				return alreadyReviewed
			}
			return fmt.Errorf("create review: %w", err)
		}
		return s.refreshRating(ctx, tx, in.ProductID)
	})
	if err != nil {
		return nil, err
	}
	invalidateFeatured(ctx, s.cache, s.log)

	s.attachUsers(ctx, review)
	return review, nil
}

func (s *reviewServiceImpl) ListByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	if productID == "" {
		return nil, model.Invalid("Product ID is required")
	}

	reviews, err := s.reviewRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.attachUsers(ctx, reviews...)
	return reviews, nil
}

func (s *reviewServiceImpl) Update(ctx context.Context, userID, reviewID string, in *dto.ReviewInput) (*model.Review, error) {
	review, err := s.ownedReview(ctx, userID, reviewID, "update")
	if err != nil {
		return nil, err
	}

	if in.Rating != 0 {
		if !validRating(in.Rating) {
			return nil, model.Invalid("Rating must be between 1 and 5")
		}
		review.Rating = in.Rating
	}
	if comment := strings.TrimSpace(in.Comment); comment != "" {
		review.Comment = comment
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Update(ctx, tx, review); err != nil {
			return fmt.Errorf("update review: %w", err)
		}
		return s.refreshRating(ctx, tx, review.ProductID)
	})
	if err != nil {
		return nil, err
	}
	invalidateFeatured(ctx, s.cache, s.log)

	s.attachUsers(ctx, review)
	return review, nil
}

func (s *reviewServiceImpl) Delete(ctx context.Context, userID, reviewID string) error {
	review, err := s.ownedReview(ctx, userID, reviewID, "delete")
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.reviewRepo.Delete(ctx, tx, review.ID); err != nil {
			return fmt.Errorf("delete review: %w", err)
		}
		return s.refreshRating(ctx, tx, review.ProductID)
	})
	if err != nil {
		return err
	}
	invalidateFeatured(ctx, s.cache, s.log)
	return nil
}

func (s *reviewServiceImpl) ownedReview(ctx context.Context, userID, reviewID, action string) (*model.Review, error) {
	review, err := s.reviewRepo.FindForUser(ctx, userID, reviewID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NotFound(fmt.Sprintf("Review not found or you don't have permission to %s it", action))
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewServiceImpl) refreshRating(ctx context.Context, tx *gorm.DB, productID string) error {
	avg, err := s.reviewRepo.AverageRating(ctx, tx, productID)
	if err != nil {
		return fmt.Errorf("average rating: %w", err)
	}
	if err := s.productRepo.UpdateRating(ctx, tx, productID, avg); err != nil {
		return fmt.Errorf("update product rating: %w", err)
	}
	return nil
}

// attachUsers fills in the reviewer's name. Emails stay private.
func (s *reviewServiceImpl) attachUsers(ctx context.Context, reviews ...*model.Review) {
	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.UserID)
	}

	summaries, err := s.userRepo.Summaries(ctx, ids)
	if err != nil {
		s.log.Warn().Err(err).Int("reviews", len(reviews)).Msg("could not load reviewers")
		return
	}
	for _, r := range reviews {
		if u, ok := summaries[r.UserID]; ok {
			r.User = &model.UserSummary{ID: u.ID, Name: u.Name}
		}
	}
}
