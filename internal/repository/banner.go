package repository

import (
	"context"

	"fashion-cart/internal/model"

	"gorm.io/gorm"
)

type BannerRepository interface {
	CreateMany(ctx context.Context, banners []*model.FeatureBanner) error
	List(ctx context.Context) ([]*model.FeatureBanner, error)
	FindByID(ctx context.Context, bannerID string) (*model.FeatureBanner, error)
	Delete(ctx context.Context, bannerID string) error
}

type bannerRepoImpl struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) BannerRepository {
	return &bannerRepoImpl{
		db: db,
	}
}

func (r *bannerRepoImpl) CreateMany(ctx context.Context, banners []*model.FeatureBanner) error {
	if len(banners) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&banners).Error
}

func (r *bannerRepoImpl) List(ctx context.Context) ([]*model.FeatureBanner, error) {
	var banners []*model.FeatureBanner
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}

	return banners, nil
}

func (r *bannerRepoImpl) FindByID(ctx context.Context, bannerID string) (*model.FeatureBanner, error) {
	var banner model.FeatureBanner
	err := r.db.WithContext(ctx).
		Where("id = ?", bannerID).
		First(&banner).Error
	if err != nil {
		return nil, translate(err)
	}

	return &banner, nil
}

func (r *bannerRepoImpl) Delete(ctx context.Context, bannerID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", bannerID).
		Delete(&model.FeatureBanner{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}

	return nil
}
