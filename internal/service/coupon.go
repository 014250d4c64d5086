package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fashion-cart/internal/dto"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type CouponService interface {
	Create(ctx context.Context, in *dto.CouponInput) (*model.Coupon, error)
	List(ctx context.Context) ([]*model.Coupon, error)
	Delete(ctx context.Context, couponID string) error
	// Validate applies the storefront's redemption rules to code for a cart
	// subtotal without consuming a use.
	Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*dto.CouponQuote, error)
}

type couponServiceImpl struct {
	couponRepo repository.CouponRepository
	now        func() time.Time
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponServiceImpl{
		couponRepo: couponRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

var couponDateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

func parseCouponDate(v string) (time.Time, error) {
	for _, layout := range couponDateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, model.Invalid(fmt.Sprintf("Invalid date %q", v))
}

func (s *couponServiceImpl) Create(ctx context.Context, in *dto.CouponInput) (*model.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" || in.DiscountPercent.IsZero() || in.StartDate == "" || in.EndDate == "" || in.UsageLimit == 0 {
		return nil, model.Invalid("All fields are required")
	}

	start, err := parseCouponDate(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseCouponDate(in.EndDate)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, model.Invalid("End date must be after start date")
	}
	if in.DiscountPercent.IsNegative() || in.DiscountPercent.GreaterThan(hundred) {
		return nil, model.Invalid("Discount must be between 0 and 100 percent")
	}
	if in.UsageLimit < 0 {
		return nil, model.Invalid("Usage limit must be positive")
	}

	coupon := &model.Coupon{
		ID:              uuid.NewString(),
		Code:            code,
		DiscountPercent: in.DiscountPercent,
		StartDate:       start,
		EndDate:         end,
		UsageLimit:      in.UsageLimit,
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			return nil, model.NewError(model.ErrAlreadyExists, "Coupon code already exists")
		}
		return nil, fmt.Errorf("create coupon: %w", err)
	}

	return coupon, nil
}

func (s *couponServiceImpl) List(ctx context.Context) ([]*model.Coupon, error) {
	return s.couponRepo.List(ctx)
}

func (s *couponServiceImpl) Delete(ctx context.Context, couponID string) error {
	err := s.couponRepo.Delete(ctx, couponID)
	if errors.Is(err, model.ErrNotFound) {
		return model.NotFound("Coupon not found")
	}
	return err
}

func (s *couponServiceImpl) Validate(ctx context.Context, code string, subtotal decimal.Decimal) (*dto.CouponQuote, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, model.Invalid("Invalid coupon code")
	}
	if subtotal.IsNegative() {
		return nil, model.Invalid("Subtotal must not be negative")
	}

	coupon, err := s.couponRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewError(model.ErrCouponUnavailable, "Invalid coupon code")
		}
		return nil, err
	}

	if err := checkRedeemable(coupon, s.now()); err != nil {
		return nil, err
	}

	discount := coupon.Discount(subtotal)
	return &dto.CouponQuote{
		Coupon:         coupon,
		DiscountAmount: discount,
		Total:          subtotal.Sub(discount),
	}, nil
}

// checkRedeemable reports why coupon cannot be used at now, if it cannot.
func checkRedeemable(coupon *model.Coupon, now time.Time) error {
	if !coupon.Active(now) {
		return model.NewError(model.ErrCouponUnavailable, "Coupon is not valid in this time or expired coupon")
	}
	if coupon.Exhausted() {
		return model.NewError(model.ErrCouponUnavailable, "Coupon has reached its usage limit")
	}
	return nil
}
