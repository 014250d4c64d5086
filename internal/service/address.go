package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressService interface {
	Create(ctx context.Context, userID string, in *dto.AddressInput) (*model.Address, error)
	List(ctx context.Context, userID string) ([]*model.Address, error)
	Update(ctx context.Context, userID, addressID string, in *dto.AddressInput) (*model.Address, error)
	Delete(ctx context.Context, userID, addressID string) error
}

type addressServiceImpl struct {
	db          *gorm.DB
	addressRepo repository.AddressRepository
}

func NewAddressService(db *gorm.DB, addressRepo repository.AddressRepository) AddressService {
	return &addressServiceImpl{
		db:          db,
		addressRepo: addressRepo,
	}
}

func validateAddress(in *dto.AddressInput) error {
	fields := []string{in.Name, in.Address, in.City, in.Country, in.PostalCode, in.Phone}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return model.Invalid("All fields are required")
		}
	}
	return nil
}

func (s *addressServiceImpl) Create(ctx context.Context, userID string, in *dto.AddressInput) (*model.Address, error) {
	if err := validateAddress(in); err != nil {
		return nil, err
	}

	address := &model.Address{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       strings.TrimSpace(in.Name),
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		Country:    strings.TrimSpace(in.Country),
		PostalCode: strings.TrimSpace(in.PostalCode),
		Phone:      strings.TrimSpace(in.Phone),
		IsDefault:  in.IsDefault,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := s.addressRepo.CountByUser(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("count addresses: %w", err)
		}
		// the first address is always the default
		if count == 0 {
			address.IsDefault = true
		}

		if address.IsDefault {
			if err := s.addressRepo.ClearDefault(ctx, tx, userID); err != nil {
				return fmt.Errorf("clear default address: %w", err)
			}
		}

		return s.addressRepo.Create(ctx, tx, address)
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

func (s *addressServiceImpl) List(ctx context.Context, userID string) ([]*model.Address, error) {
	return s.addressRepo.ListByUser(ctx, userID)
}

func (s *addressServiceImpl) Update(ctx context.Context, userID, addressID string, in *dto.AddressInput) (*model.Address, error) {
	if err := validateAddress(in); err != nil {
		return nil, err
	}

	address, err := s.addressRepo.FindForUser(ctx, userID, addressID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NotFound("Address not found!")
		}
		return nil, err
	}

	address.Name = strings.TrimSpace(in.Name)
	address.Address = strings.TrimSpace(in.Address)
	address.City = strings.TrimSpace(in.City)
	address.Country = strings.TrimSpace(in.Country)
	address.PostalCode = strings.TrimSpace(in.PostalCode)
	address.Phone = strings.TrimSpace(in.Phone)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.IsDefault && !address.IsDefault {
			if err := s.addressRepo.ClearDefault(ctx, tx, userID); err != nil {
				return fmt.Errorf("clear default address: %w", err)
			}
		}
		// unsetting the default is ignored so the user always keeps one
		address.IsDefault = address.IsDefault || in.IsDefault

		return s.addressRepo.Update(ctx, tx, address)
	})
	if err != nil {
		return nil, err
	}

	return address, nil
}

// Delete removes the address. Removing the default hands that role to the
// newest remaining address.
func (s *addressServiceImpl) Delete(ctx context.Context, userID, addressID string) error {
	address, err := s.addressRepo.FindForUser(ctx, userID, addressID)
	if err == nil {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.addressRepo.Delete(ctx, tx, userID, addressID); err != nil {
				return err
			}
			if !address.IsDefault {
				return nil
			}
			if err := s.addressRepo.PromoteLatest(ctx, tx, userID); err != nil {
				return fmt.Errorf("promote default address: %w", err)
			}
			return nil
		})
	}
	switch {
	case errors.Is(err, model.ErrNotFound):
		return model.NotFound("Address not found!")
	case errors.Is(err, model.ErrInUse):
		return model.NewError(model.ErrInUse, "Address is used by an existing order")
	}
	return err
}
