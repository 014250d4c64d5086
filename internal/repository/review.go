package repository

import (
	"context"
	"database/sql"

	"fashion-cart/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *model.Review) error
	Update(ctx context.Context, tx *gorm.DB, review *model.Review) error
	Delete(ctx context.Context, tx *gorm.DB, reviewID string) error
	FindForUser(ctx context.Context, userID, reviewID string) (*model.Review, error)
	Exists(ctx context.Context, userID, productID string) (bool, error)
	ListByProduct(ctx context.Context, productID string) ([]*model.Review, error)
	AverageRating(ctx context.Context, tx *gorm.DB, productID string) (float64, error)
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{
		db: db,
	}
}

func (r *reviewRepoImpl) Create(ctx context.Context, tx *gorm.DB, review *model.Review) error {
	return translate(tx.WithContext(ctx).Create(review).Error)
}

func (r *reviewRepoImpl) Update(ctx context.Context, tx *gorm.DB, review *model.Review) error {
	return tx.WithContext(ctx).Model(review).
		Select("rating", "comment", "updated_at").
		Updates(review).Error
}

func (r *reviewRepoImpl) Delete(ctx context.Context, tx *gorm.DB, reviewID string) error {
	return tx.WithContext(ctx).
		Where("id = ?", reviewID).
		Delete(&model.Review{}).Error
}

func (r *reviewRepoImpl) FindForUser(ctx context.Context, userID, reviewID string) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reviewID, userID).
		First(&review).Error
	if err != nil {
		return nil, translate(err)
	}

	return &review, nil
}

func (r *reviewRepoImpl) Exists(ctx context.Context, userID, productID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error

	return count > 0, err
}

func (r *reviewRepoImpl) ListByProduct(ctx context.Context, productID string) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// AverageRating is 0 when the product has no reviews.
func (r *reviewRepoImpl) AverageRating(ctx context.Context, tx *gorm.DB, productID string) (float64, error) {
	var avg sql.NullFloat64
	err := tx.WithContext(ctx).Model(&model.Review{}).
		Select("AVG(rating)").
		Where("product_id = ?", productID).
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}

	return avg.Float64, nil
}
