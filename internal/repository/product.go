package repository

import (
	"context"
	"encoding/json"
	"math"
	"strings"
	"time"

	"fashion-cart/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Upsert(ctx context.Context, products []*model.Product) error
	Delete(ctx context.Context, productID string) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, tx *gorm.DB, productIDs []string) ([]*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	Search(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID string, quantity int) error
	UpdateRating(ctx context.Context, tx *gorm.DB, productID string, rating float64) error
	SetFeatured(ctx context.Context, productIDs []string) error
	Featured(ctx context.Context) ([]*model.Product, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

var productSortColumns = map[string]string{
	"price":     "price",
	"createdAt": "created_at",
	"name":      "name",
	"rating":    "rating",
	"soldCount": "sold_count",
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	result := r.db.WithContext(ctx).Model(&model.Product{ID: product.ID}).
		Select("name", "brand", "description", "category", "gender", "sizes", "colors", "images", "price", "stock", "updated_at").
		Updates(product)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *productRepoImpl) Upsert(ctx context.Context, products []*model.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "brand", "description", "category", "gender",
			"sizes", "colors", "images", "price", "stock", "updated_at",
		}),
	}).Create(&products).Error
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error
	if err != nil {
		return nil, translate(err)
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, tx *gorm.DB, productIDs []string) ([]*model.Product, error) {
	if tx == nil {
		tx = r.db
	}

	var products []*model.Product
	err := tx.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) List(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Search(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	filters := func(db *gorm.DB) *gorm.DB {
		if len(filter.Categories) > 0 {
			db = db.Where("category IN ?", filter.Categories)
		}
		if len(filter.Brands) > 0 {
			db = db.Where("brand IN ?", filter.Brands)
		}
		if len(filter.Sizes) > 0 {
			sql, args := anyJSONElement("sizes", filter.Sizes)
			db = db.Where(sql, args...)
		}
		if len(filter.Colors) > 0 {
			sql, args := anyJSONElement("colors", filter.Colors)
			db = db.Where(sql, args...)
		}
		if filter.MinPrice != nil {
			db = db.Where("price >= ?", *filter.MinPrice)
		}
		if filter.MaxPrice != nil {
			db = db.Where("price <= ?", *filter.MaxPrice)
		}
		return db
	}

	var total int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Scopes(filters).
		Count(&total).Error
	if err != nil {
		return nil, err
	}

	column, ok := productSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	desc := !strings.EqualFold(filter.SortOrder, "asc")

	var products []*model.Product
	err = r.db.WithContext(ctx).
		Scopes(filters).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	return &model.ProductPage{
		Products:      products,
		CurrentPage:   filter.Page,
		TotalPages:    int(math.Ceil(float64(total) / float64(filter.Limit))),
		TotalProducts: total,
	}, nil
}

// likeEscaper quotes LIKE wildcards. '!' is the escape character because a
// backslash means something different to MySQL and SQLite string literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// anyJSONElement matches rows whose JSON string array column holds any of values.
func anyJSONElement(column string, values []string) (string, []interface{}) {
	conds := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, v := range values {
		// match the element as it is stored, quotes included
		encoded, _ := json.Marshal(v)
		conds[i] = column + " LIKE ? ESCAPE '!'"
		args[i] = "%" + likeEscaper.Replace(string(encoded)) + "%"
	}
	return "(" + strings.Join(conds, " OR ") + ")", args
}

func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, productID string, quantity int) error {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Updates(map[string]interface{}{
			"stock":      gorm.Expr("stock - ?", quantity),
			"sold_count": gorm.Expr("sold_count + ?", quantity),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.WithContext(ctx).Model(&model.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return model.ErrNotFound
	}
	return model.ErrInsufficientStock
}

func (r *productRepoImpl) UpdateRating(ctx context.Context, tx *gorm.DB, productID string, rating float64) error {
	return tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Update("rating", rating).Error
}

func (r *productRepoImpl) SetFeatured(ctx context.Context, productIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Product{}).
			Where("is_featured = ?", true).
			Update("is_featured", false).Error
		if err != nil {
			return err
		}

		if len(productIDs) == 0 {
			return nil
		}
		return tx.Model(&model.Product{}).
			Where("id IN ?", productIDs).
			Update("is_featured", true).Error
	})
}

func (r *productRepoImpl) Featured(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}

	return products, nil
}
