package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"fashion-cart/internal/client"
	"fashion-cart/internal/currency"
	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type ProductService interface {
	Create(ctx context.Context, in *dto.ProductInput, images []*multipart.FileHeader) (*model.Product, error)
	Update(ctx context.Context, productID string, in *dto.ProductUpdate) (*model.Product, error)
	Delete(ctx context.Context, productID string) error
	Get(ctx context.Context, productID string) (*model.Product, error)
	ListAll(ctx context.Context) ([]*model.Product, error)
	Search(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error)
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
	images      client.ImageStore
	cache       client.Cache
	log         zerolog.Logger
}

func NewProductService(productRepo repository.ProductRepository, images client.ImageStore, cache client.Cache, log zerolog.Logger) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
		images:      images,
		cache:       cache,
		log:         log,
	}
}

func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *productServiceImpl) Create(ctx context.Context, in *dto.ProductInput, images []*multipart.FileHeader) (*model.Product, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, model.Invalid("Name and category are required")
	}
	if !currency.IsValidPrice(in.Price) {
		return nil, model.Invalid("Price must be a positive amount")
	}
	if in.Stock < 0 {
		return nil, model.Invalid("Stock cannot be negative")
	}
	if len(images) > maxUploadImages {
		return nil, model.Invalid(fmt.Sprintf("At most %d images are allowed", maxUploadImages))
	}

	urls := cleanList(in.Images)
	if len(images) > 0 {
		uploaded, err := uploadImages(ctx, s.images, s.log, images, client.ProductImageFolder)
		if err != nil {
			return nil, err
		}
		urls = append(urls, uploaded...)
	}

	product := &model.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Brand:       strings.TrimSpace(in.Brand),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Gender:      strings.TrimSpace(in.Gender),
		Sizes:       cleanList(in.Sizes),
		Colors:      cleanList(in.Colors),
		Images:      urls,
		Price:       currency.RoundPrice(in.Price),
		Stock:       in.Stock,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		destroyImages(ctx, s.images, s.log, urls[len(urls)-len(images):])
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *productServiceImpl) Update(ctx context.Context, productID string, in *dto.ProductUpdate) (*model.Product, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, model.Invalid("Name cannot be empty")
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Brand != nil {
		product.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Gender != nil {
		product.Gender = strings.TrimSpace(*in.Gender)
	}
	if in.Sizes != nil {
		product.Sizes = cleanList(in.Sizes)
	}
	if in.Colors != nil {
		product.Colors = cleanList(in.Colors)
	}
	if in.Price != nil {
		if !currency.IsValidPrice(*in.Price) {
			return nil, model.Invalid("Price must be a positive amount")
		}
		product.Price = currency.RoundPrice(*in.Price)
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, model.Invalid("Stock cannot be negative")
		}
		product.Stock = *in.Stock
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.invalidateFeatured(ctx)

	return product, nil
}

func (s *productServiceImpl) Delete(ctx context.Context, productID string) error {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NotFound("Product not found")
		}
		return fmt.Errorf("delete product: %w", err)
	}

	destroyImages(ctx, s.images, s.log, product.Images)
	s.invalidateFeatured(ctx)
	return nil
}

func (s *productServiceImpl) Get(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NotFound("Product not found")
		}
		return nil, err
	}
	return product, nil
}

func (s *productServiceImpl) ListAll(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *productServiceImpl) Search(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, model.Invalid("minPrice cannot exceed maxPrice")
	}

	return s.productRepo.Search(ctx, filter)
}

func (s *productServiceImpl) invalidateFeatured(ctx context.Context) {
	invalidateFeatured(ctx, s.cache, s.log)
}
