package service

import (
	"context"
	"errors"
	"fmt"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type CartService interface {
	Add(ctx context.Context, userID string, req *dto.AddToCartRequest) (*model.CartItem, error)
	Lines(ctx context.Context, userID string) ([]*model.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
	// Merge folds a guest cart into the user's cart. Lines for products that
	// no longer exist are dropped.
	Merge(ctx context.Context, userID string, items []dto.AddToCartRequest) ([]*model.CartLine, error)
}

type cartServiceImpl struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	log         zerolog.Logger
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, log zerolog.Logger) CartService {
	return &cartServiceImpl{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		log:         log,
	}
}

func (s *cartServiceImpl) Add(ctx context.Context, userID string, req *dto.AddToCartRequest) (*model.CartItem, error) {
	if req.ProductID == "" {
		return nil, model.Invalid("Product is required")
	}
	if req.Quantity < 1 {
		return nil, model.Invalid("Quantity must be at least 1")
	}

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NotFound("Product not found")
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	cart, err := s.cartRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}

	existing, err := s.cartRepo.FindItem(ctx, cart.ID, req.ProductID, req.Size, req.Color)
	switch {
	case err == nil:
		existing.Quantity += req.Quantity
		if err := s.cartRepo.UpdateItemQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			return nil, fmt.Errorf("update cart item: %w", err)
		}
		return existing, nil
	case !errors.Is(err, model.ErrNotFound):
		return nil, fmt.Errorf("find cart item: %w", err)
	}

	item := &model.CartItem{
		ID:        uuid.NewString(),
		CartID:    cart.ID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
	}
	if err := s.cartRepo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("create cart item: %w", err)
	}

	return item, nil
}

func (s *cartServiceImpl) Lines(ctx context.Context, userID string) ([]*model.CartLine, error) {
	return s.cartRepo.Lines(ctx, userID)
}

func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity < 1 {
		return model.Invalid("Quantity must be at least 1")
	}

	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	return s.cartRepo.UpdateItemQuantity(ctx, item.ID, quantity)
}

func (s *cartServiceImpl) Remove(ctx context.Context, userID, itemID string) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	return s.cartRepo.DeleteItem(ctx, item.ID)
}

func (s *cartServiceImpl) Clear(ctx context.Context, userID string) error {
	return s.cartRepo.ClearByUser(ctx, nil, userID)
}

func (s *cartServiceImpl) Merge(ctx context.Context, userID string, items []dto.AddToCartRequest) ([]*model.CartLine, error) {
	for i := range items {
		_, err := s.Add(ctx, userID, &items[i])
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidInput) {
			s.log.Debug().Str("product_id", items[i].ProductID).Err(err).Msg("skipping guest cart line")
			continue
		}
		if err != nil {
			return nil, err
		}
	}

	return s.cartRepo.Lines(ctx, userID)
}

func (s *cartServiceImpl) ownedItem(ctx context.Context, userID, itemID string) (*model.CartItem, error) {
	item, err := s.cartRepo.FindItemForUser(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NotFound("Cart item not found!")
		}
		return nil, err
	}
	return item, nil
}
