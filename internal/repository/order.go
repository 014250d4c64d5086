package repository

import (
	"context"
	"time"

	"fashion-cart/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	FindForUser(ctx context.Context, userID, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Order, error)
	ListAll(ctx context.Context) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error
	MarkPaidByPaymentIDs(ctx context.Context, tx *gorm.DB, paymentIDs []string) (int64, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Omit("Address", "Coupon").Create(order).Error
}

func (r *orderRepoImpl) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items").
		Preload("Address").
		Preload("Coupon")
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.withDetails(ctx).
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}

	return &order, nil
}

func (r *orderRepoImpl) FindForUser(ctx context.Context, userID, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.withDetails(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}

	return &order, nil
}

func (r *orderRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.withDetails(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) ListAll(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.withDetails(ctx).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	return r.update(ctx, orderID, map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
}

func (r *orderRepoImpl) UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error {
	return r.update(ctx, orderID, map[string]interface{}{
		"payment_status": status,
		"updated_at":     time.Now(),
	})
}

func (r *orderRepoImpl) update(ctx context.Context, orderID string, values map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", orderID).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// MySQL reports zero affected rows when nothing changed
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return model.ErrNotFound
	}
	return nil
}

// MarkPaidByPaymentIDs completes payment for orders still pending whose
// payment id is one of paymentIDs.
func (r *orderRepoImpl) MarkPaidByPaymentIDs(ctx context.Context, tx *gorm.DB, paymentIDs []string) (int64, error) {
	if tx == nil {
		tx = r.db
	}

	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("payment_id IN ?", paymentIDs).
		Where("payment_status = ?", model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentStatusCompleted,
			"updated_at":     time.Now(),
		})

	return result.RowsAffected, result.Error
}
