package repository

import (
	"context"
	"time"

	"fashion-cart/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CouponRepository interface {
	Create(ctx context.Context, coupon *model.Coupon) error
	Upsert(ctx context.Context, coupons []*model.Coupon) error
	List(ctx context.Context) ([]*model.Coupon, error)
	Delete(ctx context.Context, couponID string) error
	FindByID(ctx context.Context, tx *gorm.DB, couponID string) (*model.Coupon, error)
	FindByCode(ctx context.Context, code string) (*model.Coupon, error)
	Redeem(ctx context.Context, tx *gorm.DB, couponID string, at time.Time) error
}

type couponRepoImpl struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepoImpl{
		db: db,
	}
}

func (r *couponRepoImpl) Create(ctx context.Context, coupon *model.Coupon) error {
	return translate(r.db.WithContext(ctx).Create(coupon).Error)
}

func (r *couponRepoImpl) Upsert(ctx context.Context, coupons []*model.Coupon) error {
	if len(coupons) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"discount_percent", "start_date", "end_date", "usage_limit", "updated_at"}),
	}).Create(&coupons).Error
}

func (r *couponRepoImpl) List(ctx context.Context) ([]*model.Coupon, error) {
	var coupons []*model.Coupon
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&coupons).Error
	if err != nil {
		return nil, err
	}

	return coupons, nil
}

func (r *couponRepoImpl) Delete(ctx context.Context, couponID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", couponID).
		Delete(&model.Coupon{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *couponRepoImpl) FindByID(ctx context.Context, tx *gorm.DB, couponID string) (*model.Coupon, error) {
	if tx == nil {
		tx = r.db
	}

	var coupon model.Coupon
	err := tx.WithContext(ctx).
		Where("id = ?", couponID).
		First(&coupon).Error
	if err != nil {
		return nil, translate(err)
	}

	return &coupon, nil
}

func (r *couponRepoImpl) FindByCode(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&coupon).Error
	if err != nil {
		return nil, translate(err)
	}

	return &coupon, nil
}

// Redeem bumps usage_count only while the coupon is inside its window and
// under its limit, so concurrent checkouts cannot overshoot usage_limit.
func (r *couponRepoImpl) Redeem(ctx context.Context, tx *gorm.DB, couponID string, at time.Time) error {
	result := tx.WithContext(ctx).Model(&model.Coupon{}).
		Where("id = ?", couponID).
		Where("usage_count < usage_limit").
		Where("start_date <= ? AND end_date >= ?", at, at).
		Updates(map[string]interface{}{
			"usage_count": gorm.Expr("usage_count + ?", 1),
			"updated_at":  at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrCouponUnavailable
	}

	return nil
}
