package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"fashion-cart/internal/client"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	cacheKeyBanners  = "settings:banners"
	cacheKeyFeatured = "settings:featured-products"

	maxFeaturedProducts = 8
)

type SettingsService interface {
	AddBanners(ctx context.Context, images []*multipart.FileHeader) ([]*model.FeatureBanner, error)
	Banners(ctx context.Context) ([]*model.FeatureBanner, error)
	DeleteBanner(ctx context.Context, bannerID string) error
	SetFeaturedProducts(ctx context.Context, productIDs []string) error
	FeaturedProducts(ctx context.Context) ([]*model.Product, error)
}

type settingsServiceImpl struct {
	bannerRepo  repository.BannerRepository
	productRepo repository.ProductRepository
	images      client.ImageStore
	cache       client.Cache
	log         zerolog.Logger
}

func NewSettingsService(
	bannerRepo repository.BannerRepository,
	productRepo repository.ProductRepository,
	images client.ImageStore,
	cache client.Cache,
	log zerolog.Logger,
) SettingsService {
	return &settingsServiceImpl{
		bannerRepo:  bannerRepo,
		productRepo: productRepo,
		images:      images,
		cache:       cache,
		log:         log,
	}
}

func (s *settingsServiceImpl) AddBanners(ctx context.Context, images []*multipart.FileHeader) ([]*model.FeatureBanner, error) {
	if len(images) == 0 {
		return nil, model.NotFound("No files provided")
	}
	if len(images) > maxUploadImages {
		return nil, model.Invalid(fmt.Sprintf("At most %d images are allowed", maxUploadImages))
	}

	urls, err := uploadImages(ctx, s.images, s.log, images, client.BannerImageFolder)
	if err != nil {
		return nil, err
	}

	banners := make([]*model.FeatureBanner, len(urls))
	for i, url := range urls {
		banners[i] = &model.FeatureBanner{ID: uuid.NewString(), ImageURL: url}
	}
	if err := s.bannerRepo.CreateMany(ctx, banners); err != nil {
		destroyImages(ctx, s.images, s.log, urls)
		return nil, fmt.Errorf("save banners: %w", err)
	}

	s.invalidate(ctx, cacheKeyBanners)
	return banners, nil
}

func (s *settingsServiceImpl) Banners(ctx context.Context) ([]*model.FeatureBanner, error) {
	return cached(ctx, s.cache, s.log, cacheKeyBanners, s.bannerRepo.List)
}

func (s *settingsServiceImpl) DeleteBanner(ctx context.Context, bannerID string) error {
	banner, err := s.bannerRepo.FindByID(ctx, bannerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NotFound("Banner not found")
		}
		return err
	}

	publicID := client.PublicIDFromURL(banner.ImageURL)
	if err := s.images.Destroy(ctx, publicID); err != nil {
		return fmt.Errorf("remove banner image: %w", err)
	}

	if err := s.bannerRepo.Delete(ctx, bannerID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NotFound("Banner not found")
		}
		return err
	}

	s.invalidate(ctx, cacheKeyBanners)
	return nil
}

func (s *settingsServiceImpl) SetFeaturedProducts(ctx context.Context, productIDs []string) error {
	if productIDs == nil {
		return model.Invalid("Invalid product IDs or too many products selected")
	}
	if len(productIDs) > maxFeaturedProducts {
		return model.Invalid(fmt.Sprintf("Invalid product IDs or too many products selected (max %d)", maxFeaturedProducts))
	}

	if err := s.productRepo.SetFeatured(ctx, productIDs); err != nil {
		return fmt.Errorf("set featured products: %w", err)
	}

	s.invalidate(ctx, cacheKeyFeatured)
	return nil
}

func (s *settingsServiceImpl) FeaturedProducts(ctx context.Context) ([]*model.Product, error) {
	return cached(ctx, s.cache, s.log, cacheKeyFeatured, s.productRepo.Featured)
}

func (s *settingsServiceImpl) invalidate(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to invalidate cache")
	}
}

// cached serves key from the cache, falling back to load and repopulating.
// Cache errors degrade to a plain load.
// invalidateFeatured drops the cached featured products. Stock, sales and
// ratings are all part of what that list shows.
func invalidateFeatured(ctx context.Context, cache client.Cache, log zerolog.Logger) {
	if err := cache.Delete(ctx, cacheKeyFeatured); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate featured products cache")
	}
}

func cached[T any](ctx context.Context, cache client.Cache, log zerolog.Logger, key string, load func(context.Context) (T, error)) (T, error) {
	var value T
	hit, err := cache.GetJSON(ctx, key, &value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}
	if hit {
		return value, nil
	}

	value, err = load(ctx)
	if err != nil {
		return value, err
	}

	if err := cache.SetJSON(ctx, key, value); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
	return value, nil
}
