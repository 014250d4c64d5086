package dto

import (
	"fashion-cart/internal/model"

	"github.com/shopspring/decimal"
)

type ProductInput struct {
	Name        string          `json:"name" form:"name"`
	Brand       string          `json:"brand" form:"brand"`
	Description string          `json:"description" form:"description"`
	Category    string          `json:"category" form:"category"`
	Gender      string          `json:"gender" form:"gender"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	Images      []string        `json:"images"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
}

// ProductUpdate carries only the fields the admin changed.
type ProductUpdate struct {
	Name        *string          `json:"name"`
	Brand       *string          `json:"brand"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Gender      *string          `json:"gender"`
	Sizes       []string         `json:"sizes"`
	Colors      []string         `json:"colors"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
}

type ProductResponse struct {
	Response
	Product *model.Product `json:"product"`
}

type ProductListResponse struct {
	Response
	Products []*model.Product `json:"products"`
}

type ProductPageResponse struct {
	Response
	*model.ProductPage
}

type CouponInput struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	StartDate       string          `json:"startDate"`
	EndDate         string          `json:"endDate"`
	UsageLimit      int             `json:"usageLimit"`
}

type CouponResponse struct {
	Response
	Coupon *model.Coupon `json:"coupon"`
}

type CouponListResponse struct {
	Response
	CouponList []*model.Coupon `json:"couponList"`
}

type DeletedResponse struct {
	Response
	ID string `json:"id"`
}

type ValidateCouponRequest struct {
	Code     string          `json:"code"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type CouponQuote struct {
	Coupon         *model.Coupon   `json:"coupon"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
}

type ValidateCouponResponse struct {
	Response
	*CouponQuote
}

type ReviewInput struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type ReviewResponse struct {
	Response
	Review *model.Review `json:"review"`
}

type ReviewListResponse struct {
	Response
	Reviews []*model.Review `json:"reviews"`
}

type BannerListResponse struct {
	Response
	Banners []*model.FeatureBanner `json:"banners"`
}

type FeatureProductsRequest struct {
	ProductIDs []string `json:"productIds"`
}

type FeaturedProductsResponse struct {
	Response
	FeaturedProducts []*model.Product `json:"featuredProducts"`
}
