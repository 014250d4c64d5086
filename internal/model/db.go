package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// the storefront client reads prices as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type Role string

const (
	RoleUser       Role = "USER"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Email     string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      Role      `gorm:"size:32;not null;default:USER" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserSummary is the slice of a user exposed next to orders and reviews.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type Address struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;index;not null" json:"userId"`
	Name       string    `gorm:"size:128;not null" json:"name"`
	Address    string    `gorm:"size:512;not null" json:"address"`
	City       string    `gorm:"size:128;not null" json:"city"`
	Country    string    `gorm:"size:128;not null" json:"country"`
	PostalCode string    `gorm:"size:32;not null" json:"postalCode"`
	Phone      string    `gorm:"size:32;not null" json:"phone"`
	IsDefault  bool      `gorm:"not null;default:false" json:"isDefault"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Coupon struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	Code            string          `gorm:"size:64;uniqueIndex;not null" json:"code"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"discountPercent"`
	StartDate       time.Time       `gorm:"not null" json:"startDate"`
	EndDate         time.Time       `gorm:"not null" json:"endDate"`
	UsageLimit      int             `gorm:"not null" json:"usageLimit"`
	UsageCount      int             `gorm:"not null;default:0" json:"usageCount"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Active reports whether the coupon can be redeemed at now.
func (c *Coupon) Active(now time.Time) bool {
	return !now.Before(c.StartDate) && !now.After(c.EndDate)
}

func (c *Coupon) Exhausted() bool {
	return c.UsageCount >= c.UsageLimit
}

// Discount is subtotal * percent / 100, rounded to paise.
func (c *Coupon) Discount(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(c.DiscountPercent).Div(decimal.NewFromInt(100)).Round(2)
}

type Review struct {
	ID        string       `gorm:"primaryKey;size:36" json:"id"`
	UserID    string       `gorm:"size:36;not null;uniqueIndex:idx_review_user_product" json:"userId"`
	ProductID string       `gorm:"size:36;not null;uniqueIndex:idx_review_user_product;index" json:"productId"`
	Rating    int          `gorm:"not null" json:"rating"`
	Comment   string       `gorm:"type:text;not null" json:"comment"`
	User      *UserSummary `gorm:"-" json:"user,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type FeatureBanner struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ImageURL  string    `gorm:"size:512;not null" json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type WebhookEvent struct {
	EventID     string `gorm:"primaryKey;size:128;not null"`
	EventType   string `gorm:"size:64;index"`
	ProcessedAt time.Time
	CreatedAt   time.Time
}

// Models lists every table owned by the API, in migration order.
func Models() []any {
	return []any{
		&User{},
		&Address{},
		&Product{},
		&Cart{},
		&CartItem{},
		&Coupon{},
		&Order{},
		&OrderItem{},
		&Review{},
		&FeatureBanner{},
		&WebhookEvent{},
	}
}
