package seed

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"fashion-cart/internal/currency"
	"fashion-cart/internal/model"
	"fashion-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

type Catalog struct {
	Admin    *Admin    `yaml:"admin"`
	Products []Product `yaml:"products"`
	Coupons  []Coupon  `yaml:"coupons"`
}

type Admin struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// Product omits the id when the catalog does not pin one; a stable id is then
// derived from the name so re-running the seed updates rather than duplicates.
type Product struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Brand       string   `yaml:"brand"`
	Description string   `yaml:"description"`
	Category    string   `yaml:"category"`
	Gender      string   `yaml:"gender"`
	Sizes       []string `yaml:"sizes"`
	Colors      []string `yaml:"colors"`
	Images      []string `yaml:"images"`
	Price       string   `yaml:"price"`
	Stock       int      `yaml:"stock"`
}

type Coupon struct {
	Code            string `yaml:"code"`
	DiscountPercent string `yaml:"discountPercent"`
	StartDate       string `yaml:"startDate"`
	EndDate         string `yaml:"endDate"`
	UsageLimit      int    `yaml:"usageLimit"`
}

type Repositories struct {
	Users    repository.UserRepository
	Products repository.ProductRepository
	Coupons  repository.CouponRepository
}

type Result struct {
	Admin    bool
	Products int
	Coupons  int
}

func Load(r io.Reader) (*Catalog, error) {
	var cat Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cat); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &cat, nil
}

// Apply upserts everything in the catalog. It is idempotent: products match
// on id, coupons on code and the admin on email.
func Apply(ctx context.Context, repos Repositories, cat *Catalog, bcryptCost int) (*Result, error) {
	products, err := buildProducts(cat.Products)
	if err != nil {
		return nil, err
	}
	coupons, err := buildCoupons(cat.Coupons)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	if cat.Admin != nil {
		admin, err := buildAdmin(cat.Admin, bcryptCost)
		if err != nil {
			return nil, err
		}
		if err := repos.Users.Upsert(ctx, admin); err != nil {
			return nil, fmt.Errorf("upsert admin: %w", err)
		}
		res.Admin = true
	}

	if err := repos.Products.Upsert(ctx, products); err != nil {
		return nil, fmt.Errorf("upsert products: %w", err)
	}
	res.Products = len(products)

	if err := repos.Coupons.Upsert(ctx, coupons); err != nil {
		return nil, fmt.Errorf("upsert coupons: %w", err)
	}
	res.Coupons = len(coupons)

	return res, nil
}

func ProductID(p Product) string {
	if p.ID != "" {
		return p.ID
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("fashion-cart:product:"+strings.ToLower(p.Name))).String()
}

func buildAdmin(a *Admin, cost int) (*model.User, error) {
	if a.Email == "" || a.Password == "" {
		return nil, fmt.Errorf("admin: email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	name := a.Name
	if name == "" {
		name = "Super Admin"
	}
	return &model.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    strings.ToLower(strings.TrimSpace(a.Email)),
		Password: string(hash),
		Role:     model.RoleSuperAdmin,
	}, nil
}

func buildProducts(in []Product) ([]*model.Product, error) {
	out := make([]*model.Product, 0, len(in))
	for i, p := range in {
		if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Category) == "" {
			return nil, fmt.Errorf("product %d: name and category are required", i)
		}
		price, err := decimal.NewFromString(p.Price)
		if err != nil || !currency.IsValidPrice(price) {
			return nil, fmt.Errorf("product %q: invalid price %q", p.Name, p.Price)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("product %q: negative stock", p.Name)
		}

		out = append(out, &model.Product{
			ID:          ProductID(p),
			Name:        strings.TrimSpace(p.Name),
			Brand:       p.Brand,
			Description: p.Description,
			Category:    p.Category,
			Gender:      p.Gender,
			Sizes:       nonNil(p.Sizes),
			Colors:      nonNil(p.Colors),
			Images:      nonNil(p.Images),
			Price:       currency.RoundPrice(price),
			Stock:       p.Stock,
		})
	}
	return out, nil
}

func buildCoupons(in []Coupon) ([]*model.Coupon, error) {
	out := make([]*model.Coupon, 0, len(in))
	for _, c := range in {
		code := strings.ToUpper(strings.TrimSpace(c.Code))
		if code == "" {
			return nil, fmt.Errorf("coupon: code is required")
		}
		percent, err := decimal.NewFromString(c.DiscountPercent)
		if err != nil || !percent.IsPositive() || percent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, fmt.Errorf("coupon %s: discount must be in (0, 100]", code)
		}
		start, err := time.Parse(dateLayout, c.StartDate)
		if err != nil {
			return nil, fmt.Errorf("coupon %s: start date: %w", code, err)
		}
		end, err := time.Parse(dateLayout, c.EndDate)
		if err != nil {
			return nil, fmt.Errorf("coupon %s: end date: %w", code, err)
		}
		if !end.After(start) {
			return nil, fmt.Errorf("coupon %s: end date must be after start date", code)
		}
		if c.UsageLimit < 1 {
			return nil, fmt.Errorf("coupon %s: usage limit must be positive", code)
		}

		out = append(out, &model.Coupon{
			ID:              uuid.NewString(),
			Code:            code,
			DiscountPercent: percent,
			StartDate:       start,
			EndDate:         end,
			UsageLimit:      c.UsageLimit,
		})
	}
	return out, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
