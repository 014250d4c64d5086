package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "CREDIT_CARD"
	PaymentPaypalWallet   PaymentMethod = "PAYPAL_WALLET"
	PaymentPaypalPayLater PaymentMethod = "PAYPAL_PAY_LATER"
	PaymentVenmo          PaymentMethod = "VENMO"
	PaymentBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCreditCard, PaymentPaypalWallet, PaymentPaypalPayLater,
		PaymentVenmo, PaymentBankTransfer, PaymentCashOnDelivery:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusPending || s == PaymentStatusCompleted
}

type Order struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	UserID        string          `gorm:"size:36;index;not null" json:"userId"`
	AddressID     string          `gorm:"size:36;not null" json:"addressId"`
	CouponID      *string         `gorm:"size:36" json:"couponId,omitempty"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Status        OrderStatus     `gorm:"size:32;index;not null;default:PENDING" json:"status"`
	PaymentMethod PaymentMethod   `gorm:"size:32;not null" json:"paymentMethod"`
	PaymentStatus PaymentStatus   `gorm:"size:32;not null" json:"paymentStatus"`
	PaymentID     *string         `gorm:"size:128;index" json:"paymentId,omitempty"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Address       *Address        `gorm:"foreignKey:AddressID;constraint:OnDelete:RESTRICT" json:"address,omitempty"`
	Coupon        *Coupon         `gorm:"foreignKey:CouponID;constraint:OnDelete:SET NULL" json:"coupon,omitempty"`
	User          *UserSummary    `gorm:"-" json:"user,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type OrderItem struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	OrderID         string          `gorm:"size:36;index;not null" json:"orderId"`
	ProductID       string          `gorm:"size:36;index;not null" json:"productId"`
	ProductName     string          `gorm:"size:255;not null" json:"productName"`
	ProductCategory string          `gorm:"size:128" json:"productCategory"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	Size            string          `gorm:"size:32" json:"size,omitempty"`
	Color           string          `gorm:"size:32" json:"color,omitempty"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}

// LineTotal is price * quantity.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
