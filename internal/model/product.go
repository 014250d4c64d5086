package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Brand       string          `gorm:"size:128;index" json:"brand"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"size:128;index" json:"category"`
	Gender      string          `gorm:"size:32" json:"gender"`
	Sizes       []string        `gorm:"type:text;serializer:json" json:"sizes"`
	Colors      []string        `gorm:"type:text;serializer:json" json:"colors"`
	Images      []string        `gorm:"type:text;serializer:json" json:"images"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	SoldCount   int             `gorm:"not null;default:0" json:"soldCount"`
	Rating      float64         `gorm:"not null;default:0" json:"rating"`
	IsFeatured  bool            `gorm:"not null;default:false;index" json:"isFeatured"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// FirstImage is what carts and order emails show as a thumbnail.
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

type ProductFilter struct {
	Categories []string
	Brands     []string
	Sizes      []string
	Colors     []string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	SortBy     string
	SortOrder  string
	Page       int
	Limit      int
}

type ProductPage struct {
	Products      []*Product `json:"products"`
	CurrentPage   int        `json:"currentPage"`
	TotalPages    int        `json:"totalPages"`
	TotalProducts int64      `json:"totalProducts"`
}
