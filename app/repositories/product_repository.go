package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/catalog"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/collection"
	"github.com/shashiranjanraj/storefront/pkg/orm"
)

// ProductRepository reads and writes the catalog tables.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

// FindProductsWithVariants returns every active product by ascending ID,
// each with its variant groups and their options in position order.
func (r *ProductRepository) FindProductsWithVariants(ctx context.Context) ([]catalog.RawProduct, error) {
	var rows []models.Product
	err := orm.New(ctx, r.db).
		Model(&models.Product{}).
		Preload("Variants", byPosition).
		Preload("Variants.VariantType").
		Preload("Variants.Options", byPosition).
		Order("id ASC").
		Get(&rows)
	if err != nil {
		return nil, fmt.Errorf("repositories: find products with variants: %w", err)
	}
	return collection.Map(rows, toRawProduct), nil
}

// Count returns the number of active products.
func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	n, err := orm.New(ctx, r.db).Model(&models.Product{}).Count()
	if err != nil {
		return 0, fmt.Errorf("repositories: count products: %w", err)
	}
	return n, nil
}

// Create inserts p together with its variant groups and options.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("repositories: create product %q: %w", p.Name, err)
	}
	return nil
}

func toRawProduct(p models.Product) catalog.RawProduct {
	raw := catalog.RawProduct{
		ID:          catalog.IDFromUint(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		IsNew:       p.IsNew,
		IsOnSale:    p.IsOnSale,
		Stock:       p.Stock,
		CreatedAt:   timePtr(p.CreatedAt),
		UpdatedAt:   timePtr(p.UpdatedAt),
		Variants:    collection.Map(p.Variants, toRawGroup),
	}
	if p.OriginalPrice.Valid {
		orig := p.OriginalPrice.Decimal
		raw.OriginalPrice = &orig
	}
	return raw
}

func toRawGroup(v models.ProductVariant) catalog.RawVariantGroup {
	return catalog.RawVariantGroup{
		Name: v.VariantType.Name,
		Options: collection.Map(v.Options, func(o models.VariantOption) catalog.RawOption {
			return catalog.RawOption{ID: catalog.IDFromUint(o.ID), Name: o.Name, Image: o.Image}
		}),
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
