package repository

import (
	"context"
	"errors"
	"time"

	"fashion-cart/internal/model"

	"gorm.io/gorm"
)

type AddressRepository interface {
	Create(ctx context.Context, tx *gorm.DB, address *model.Address) error
	Update(ctx context.Context, tx *gorm.DB, address *model.Address) error
	Delete(ctx context.Context, tx *gorm.DB, userID, addressID string) error
	FindForUser(ctx context.Context, userID, addressID string) (*model.Address, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Address, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
	ClearDefault(ctx context.Context, tx *gorm.DB, userID string) error
	// PromoteLatest makes the user's newest address the default.
	PromoteLatest(ctx context.Context, tx *gorm.DB, userID string) error
}

type addressRepoImpl struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepoImpl{
		db: db,
	}
}

func (r *addressRepoImpl) Create(ctx context.Context, tx *gorm.DB, address *model.Address) error {
	return tx.WithContext(ctx).Create(address).Error
}

func (r *addressRepoImpl) Update(ctx context.Context, tx *gorm.DB, address *model.Address) error {
	return tx.WithContext(ctx).Save(address).Error
}

func (r *addressRepoImpl) Delete(ctx context.Context, tx *gorm.DB, userID, addressID string) error {
	result := tx.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&model.Address{})
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *addressRepoImpl) FindForUser(ctx context.Context, userID, addressID string) (*model.Address, error) {
	var address model.Address
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		First(&address).Error
	if err != nil {
		return nil, translate(err)
	}

	return &address, nil
}

func (r *addressRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Address, error) {
	var addresses []*model.Address
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("is_default DESC").
		Order("created_at ASC").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}

	return addresses, nil
}

func (r *addressRepoImpl) CountByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&model.Address{}).
		Where("user_id = ?", userID).
		Count(&count).Error

	return count, err
}

func (r *addressRepoImpl) ClearDefault(ctx context.Context, tx *gorm.DB, userID string) error {
	return tx.WithContext(ctx).Model(&model.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Updates(map[string]interface{}{
			"is_default": false,
			"updated_at": time.Now(),
		}).Error
}

func (r *addressRepoImpl) PromoteLatest(ctx context.Context, tx *gorm.DB, userID string) error {
	var latest model.Address
	err := tx.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&latest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	return tx.WithContext(ctx).Model(&latest).
		Updates(map[string]interface{}{
			"is_default": true,
			"updated_at": time.Now(),
		}).Error
}
