package testutil

import (
	"testing"
	"time"

	"fashion-cart/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func CreateUser(t *testing.T, db *gorm.DB, email string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{
		ID:       uuid.NewString(),
		Name:     "User " + email,
		Email:    email,
		Password: "not-a-hash",
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func CreateProduct(t *testing.T, db *gorm.DB, name, price string, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		ID:       uuid.NewString(),
		Name:     name,
		Brand:    "Acme",
		Category: "Shirts",
		Gender:   "Unisex",
		Sizes:    []string{"S", "M"},
		Colors:   []string{"red"},
		Images:   []string{"https://img.example.com/" + name + ".jpg"},
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

func CreateAddress(t *testing.T, db *gorm.DB, userID string) *model.Address {
	t.Helper()
	address := &model.Address{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       "Asha",
		Address:    "12 MG Road",
		City:       "Pune",
		Country:    "India",
		PostalCode: "411001",
		Phone:      "9999999999",
		IsDefault:  true,
	}
	if err := db.Create(address).Error; err != nil {
		t.Fatalf("create address: %v", err)
	}
	return address
}

// CreateCoupon makes a coupon valid from an hour ago until tomorrow.
func CreateCoupon(t *testing.T, db *gorm.DB, code string, percent int64, limit, used int) *model.Coupon {
	t.Helper()
	now := time.Now().UTC()
	coupon := &model.Coupon{
		ID:              uuid.NewString(),
		Code:            code,
		DiscountPercent: decimal.NewFromInt(percent),
		StartDate:       now.Add(-time.Hour),
		EndDate:         now.Add(24 * time.Hour),
		UsageLimit:      limit,
		UsageCount:      used,
	}
	if err := db.Create(coupon).Error; err != nil {
		t.Fatalf("create coupon: %v", err)
	}
	return coupon
}
